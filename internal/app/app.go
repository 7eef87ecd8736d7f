package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/learnwords/internal/config"
	"github.com/MrSnakeDoc/learnwords/internal/httpserver"
	"github.com/MrSnakeDoc/learnwords/internal/httpserver/deps"
	"github.com/MrSnakeDoc/learnwords/internal/logger"
	"github.com/MrSnakeDoc/learnwords/internal/redis"
	"github.com/MrSnakeDoc/learnwords/internal/scheduler"
	"github.com/MrSnakeDoc/learnwords/internal/settings"
	"github.com/MrSnakeDoc/learnwords/internal/sources/wordlist"
	"github.com/MrSnakeDoc/learnwords/internal/speech"
	"github.com/MrSnakeDoc/learnwords/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/learnwords/internal/store/redis"
	"github.com/MrSnakeDoc/learnwords/internal/utils"
	"github.com/MrSnakeDoc/learnwords/internal/version"
	"github.com/MrSnakeDoc/learnwords/internal/words"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	words       *words.Store
	reloader    *scheduler.WordReloader
}

// kvBackend is a settings KV that can report its health.
type kvBackend interface {
	settings.KV
	deps.SettingsBackend
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	policy, err := words.ParseLoadPolicy(cfg.LoadPolicy)
	if err != nil {
		loggerClient.Errorf("Invalid configuration: %v", err)
		os.Exit(1)
	}

	// Settings backend - fail fast if Redis is configured but unavailable
	var (
		redisClient *goredis.Client
		kv          kvBackend
	)
	switch cfg.SettingsBackend {
	case config.BackendRedis:
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		redisClient, err = redis.New(context.Background(), redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("Redis initialized successfully")
		kv = redisstore.NewSettingsStore(redisClient)
	default:
		loggerClient.Warn("using in-memory settings, saved source URL is lost on restart")
		kv = memory.NewKV()
	}

	settingsStore := settings.NewStore(kv, cfg.DefaultSourceURL, loggerClient)

	// Speech falls back to logging when the synthesiser is missing
	speaker, err := speech.New(cfg.SpeechCommand, loggerClient)
	speechMode := "log"
	if err != nil {
		loggerClient.Warn("speech command unavailable, falling back to log speaker",
			logger.Error(err))
		speaker = speech.NewLogSpeaker(loggerClient)
	} else if cmd := strings.Fields(cfg.SpeechCommand); len(cmd) > 0 {
		speechMode = "command:" + cmd[0]
	}

	fetcher := wordlist.NewFetcher(wordlist.Options{
		Timeout:   cfg.FetchTimeout,
		MaxBytes:  cfg.FetchMaxBytes,
		UserAgent: version.UserAgent(),
	}, loggerClient)

	wordStore := words.NewStore(fetcher, speaker, loggerClient.With(logger.String("component", "words")), words.Options{
		Policy:   policy,
		Language: cfg.SpeechLanguage,
	})

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewWordReloader(
		settingsStore,
		wordStore,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		TimeNow:         time.Now,
		AllowedHosts:    cfg.AllowedHosts,
		AllowedCIDRS:    cfg.AllowedCIDRS,
		TrustProxy:      cfg.TrustProxy,
		RateLimitBurst:  cfg.RateLimitBurst,
		RateLimitPerMin: cfg.RateLimitPerMin,
		Words:           wordStore,
		Settings:        settingsStore,
		SettingsBackend: kv,
		SpeechMode:      speechMode,
		ReloadTrigger:   reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		words:       wordStore,
		reloader:    reloader,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting LearnWords v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("LearnWords %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.server.Start(); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		// Initial load runs here so health checks answer while it is in flight
		a.reloader.Start(gctx)
		a.logger.Info("word reloader started",
			logger.Duration("interval", a.cfg.ReloadInterval),
			logger.String("status", string(a.words.State().Status)))

		<-gctx.Done()
		a.logger.Info("⏳ Shutting down gracefully...")
		a.reloader.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.server.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	if a.redisClient != nil {
		utils.CloseLogged(a.redisClient, a.logger, "redis")
	}

	if err := a.logger.Sync(); err != nil {
		a.logger.Debug("failed to sync logger", logger.Error(err))
	}

	a.logger.Info("✅ LearnWords stopped cleanly")
	return nil
}
