package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/learnwords/internal/logger"
	"github.com/MrSnakeDoc/learnwords/internal/settings"
	"github.com/MrSnakeDoc/learnwords/internal/words"
)

// SettingsBackend is the health view of the settings KV.
type SettingsBackend interface {
	Ping(ctx context.Context) error
	Backend() string
}

type Deps struct {
	Logger          logger.Logger
	StartTime       time.Time
	Version         string
	Commit          string
	BuildDate       string
	GoVersion       string
	TimeNow         func() time.Time // for testing, defaults to time.Now
	AllowedHosts    []string         // Host headers allowed to access /api
	AllowedCIDRS    []string         // IPs allowed to access /reload and /infra
	TrustProxy      bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RateLimitBurst  int              // per-IP bucket size on /api
	RateLimitPerMin int              // per-IP refill rate on /api
	Words           *words.Store     // word list, status and search query
	Settings        *settings.Store  // persisted source URL
	SettingsBackend SettingsBackend  // KV behind Settings, for /infra
	SpeechMode      string           // "command:<bin>" or "log"
	ReloadTrigger   chan struct{}    // Channel to trigger a word list reload
}
