package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "LEARNWORDS_"

// Settings backends.
const (
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request handler timeout (ex: 10s)

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	ConfigFile string // optional YAML file with default values

	// Word list
	DefaultSourceURL string        // URL used until the user saves one
	FetchTimeout     time.Duration // whole-request timeout for the word list fetch (default: 30s)
	FetchMaxBytes    int64         // response body cap (default: 10 MiB)
	ReloadInterval   time.Duration // periodic reload, 0 = disabled
	LoadPolicy       string        // "parallel" | "cancel"

	// Speech
	SpeechCommand  string // ex: "espeak-ng -s 140", empty = log only
	SpeechLanguage string // ex: "en-US"

	SettingsBackend string // "redis" | "memory"

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict /api to specific Host headers
	AllowedCIDRS []string // optional, restrict /reload and /infra to specific IPs (e.g. "1.2.3.4, 10.0.0.0/8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)

	RateLimitBurst     int      // per-IP bucket size on /api
	RateLimitPerMin    int      // per-IP refill rate on /api
	CORSAllowedOrigins []string // empty => "*"
}

// Load reads .env, the optional YAML file and the environment, in increasing
// priority. It panics on invalid required values.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Sprintf("❌ FATAL: failed to read .env: %v", err))
	}

	e := env{}
	if path := os.Getenv(EnvPrefix + "CONFIG_FILE"); path != "" {
		file, err := readFile(path)
		if err != nil {
			panic(fmt.Sprintf("❌ FATAL: %v", err))
		}
		e.file = file
	}

	return e.load()
}

func (e env) load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      e.getenv("LISTEN_PORT", ":8080"),
		ShutdownTimeout: e.mustDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  e.mustDuration("REQUEST_TIMEOUT", 10*time.Second),

		// Logging
		LogLevel:  e.getenv("LOG_LEVEL", "info"),
		PrettyLog: e.mustBool("PRETTY_LOG", true),

		ConfigFile: os.Getenv(EnvPrefix + "CONFIG_FILE"),

		// Word list
		DefaultSourceURL: e.getenv("DEFAULT_SOURCE_URL", ""),
		FetchTimeout:     e.mustDuration("FETCH_TIMEOUT", 30*time.Second),
		FetchMaxBytes:    int64(e.getenvInt("FETCH_MAX_BYTES", 10<<20)),
		ReloadInterval:   e.mustDuration("RELOAD_INTERVAL", 0),
		LoadPolicy:       strings.ToLower(e.getenv("LOAD_POLICY", "parallel")),

		// Speech
		SpeechCommand:  e.getenv("SPEECH_COMMAND", ""),
		SpeechLanguage: e.getenv("SPEECH_LANGUAGE", "en-US"),

		SettingsBackend: strings.ToLower(e.getenv("SETTINGS_BACKEND", BackendRedis)),

		// Redis settings
		RedisUser:             e.getenv("REDIS_USERNAME", "default"),
		RedisPasswordRequired: e.mustBool("REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         e.getenv("REDIS_PASSWORD", ""),
		RedisDB:               e.getenvInt("REDIS_DB", 0),
		RedisDT:               e.mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               e.mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               e.mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          e.mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      e.mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         e.getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   e.mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    e.mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    e.getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(e.getenv("ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(e.getenv("ALLOWED_CIDRS", "")),
		TrustProxy:   e.mustBool("TRUST_PROXY", false),

		RateLimitBurst:     e.getenvInt("RATE_LIMIT_BURST", 60),
		RateLimitPerMin:    e.getenvInt("RATE_LIMIT_PER_MIN", 120),
		CORSAllowedOrigins: splitAndTrim(e.getenv("CORS_ALLOWED_ORIGINS", "")),
	}

	switch cfg.SettingsBackend {
	case BackendRedis:
		cfg.RedisAddr = e.requireEnv("REDIS_ADDR")
	case BackendMemory:
		cfg.RedisAddr = e.getenv("REDIS_ADDR", "")
	default:
		panic(fmt.Sprintf("❌ FATAL: %sSETTINGS_BACKEND must be %q or %q, got %q",
			EnvPrefix, BackendRedis, BackendMemory, cfg.SettingsBackend))
	}

	// Validate Redis password configuration
	if cfg.SettingsBackend == BackendRedis && cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: " + EnvPrefix + "REDIS_PASSWORD is required when " + EnvPrefix + "REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	cp := *c
	if cp.RedisPassword != "" {
		cp.RedisPassword = "***REDACTED***"
	}
	if cp.RedisUser != "" {
		cp.RedisUser = "***REDACTED***"
	}
	return cp
}

// env resolves keys from the environment first, then the YAML file.
type env struct {
	file map[string]string // lower-case key without prefix -> raw value
}

func (e env) lookup(key string) string {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		return v
	}
	return e.file[strings.ToLower(key)]
}

// readFile loads a flat YAML mapping such as:
//
//	listen_port: ":9090"
//	load_policy: cancel
//	allowed_cidrs: [10.0.0.0/8, 127.0.0.1]
func readFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	out := make(map[string]string, len(raw))
	for k, v := range raw {
		key := strings.ToLower(strings.TrimPrefix(strings.ToUpper(k), EnvPrefix))
		switch val := v.(type) {
		case nil:
			continue
		case []any:
			parts := make([]string, 0, len(val))
			for _, p := range val {
				parts = append(parts, fmt.Sprint(p))
			}
			out[key] = strings.Join(parts, ",")
		default:
			out[key] = fmt.Sprint(val)
		}
	}
	return out, nil
}

// helpers
func (e env) getenv(key, def string) string {
	if v := e.lookup(key); v != "" {
		return v
	}
	return def
}

func (e env) requireEnv(key string) string {
	v := e.lookup(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s%s is not set", EnvPrefix, key))
	}
	return v
}

func (e env) getenvInt(key string, def int) int {
	if v := e.lookup(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func (e env) mustBool(key string, def bool) bool {
	if v := e.lookup(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func (e env) mustDuration(key string, def time.Duration) time.Duration {
	if v := e.lookup(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
