package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/learnwords/internal/logger"
	"github.com/redis/go-redis/v9"
)

// ConnectOptions configures the settings backend client and how long startup
// waits for it.
type ConnectOptions struct {
	Addr         string // ex: "localhost:6379"
	User         string
	Password     string
	RedisDB      int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int

	ConnectTimeout time.Duration // budget for all attempts (ex: 30s)
	RetryInterval  time.Duration // first backoff, doubled after each failure (ex: 2s)
	MaxWait        time.Duration // backoff cap (ex: 10s)
	PingTimeout    time.Duration // per-attempt PING timeout (ex: 5s)
	WarnThreshold  int           // failed attempts logged at warn before escalating to error
}

func (o ConnectOptions) validate() error {
	switch {
	case o.ConnectTimeout <= 0:
		return fmt.Errorf("ConnectTimeout must be > 0, got %v", o.ConnectTimeout)
	case o.RetryInterval <= 0:
		return fmt.Errorf("RetryInterval must be > 0, got %v", o.RetryInterval)
	case o.MaxWait <= 0:
		return fmt.Errorf("MaxWait must be > 0, got %v", o.MaxWait)
	case o.PingTimeout <= 0:
		return fmt.Errorf("PingTimeout must be > 0, got %v", o.PingTimeout)
	case o.WarnThreshold < 0:
		return fmt.Errorf("WarnThreshold must be >= 0, got %d", o.WarnThreshold)
	}
	return nil
}

// New opens the settings backend client and blocks until it answers PING.
// Failed attempts back off exponentially until ConnectTimeout elapses or ctx
// is cancelled; the client is closed before an error is returned.
func New(ctx context.Context, opts ConnectOptions, log logger.Logger) (*redis.Client, error) {
	if err := opts.validate(); err != nil {
		log.Error("invalid settings backend options", logger.Error(err))
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Username:     opts.User,
		Password:     opts.Password,
		DB:           opts.RedisDB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		PoolSize:     opts.PoolSize,
	})

	w := waiter{opts: opts, logger: log.With(logger.String("addr", opts.Addr))}
	if err := w.wait(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

type waiter struct {
	opts   ConnectOptions
	logger logger.Logger
}

func (w waiter) wait(parent context.Context, client *redis.Client) error {
	ctx, cancel := context.WithTimeout(parent, w.opts.ConnectTimeout)
	defer cancel()

	w.logger.Info("waiting for settings backend",
		logger.Duration("budget", w.opts.ConnectTimeout))

	start := time.Now()
	backoff := w.opts.RetryInterval

	for attempt := 1; ; attempt++ {
		err := w.ping(ctx, client)
		if err == nil {
			w.connected(attempt, time.Since(start))
			return nil
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			if errors.Is(parent.Err(), context.Canceled) {
				w.logger.Warn("settings backend wait cancelled",
					logger.Int("attempts", attempt))
				return fmt.Errorf("settings backend wait cancelled after %d attempts: %w", attempt, parent.Err())
			}
			w.logger.Error("settings backend unreachable, giving up",
				logger.Int("attempts", attempt),
				logger.Duration("budget", w.opts.ConnectTimeout),
				logger.Error(err))
			return fmt.Errorf("settings backend %s unreachable after %d attempts (budget %v): %w",
				w.opts.Addr, attempt, w.opts.ConnectTimeout, err)

		case <-timer.C:
			w.failed(attempt, remaining(ctx), backoff, err)
			backoff = min(backoff*2, w.opts.MaxWait)
		}
	}
}

func (w waiter) ping(ctx context.Context, client *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, w.opts.PingTimeout)
	defer cancel()
	return client.Ping(ctx).Err()
}

func (w waiter) connected(attempts int, elapsed time.Duration) {
	if attempts == 1 {
		w.logger.Info("settings backend ready")
		return
	}
	w.logger.Warn("settings backend ready after retries",
		logger.Int("attempts", attempts),
		logger.Duration("elapsed", elapsed))
}

// failed logs at warn for the first WarnThreshold attempts, then at error.
// The last stretch before the budget runs out is always an error.
func (w waiter) failed(attempt int, left, backoff time.Duration, err error) {
	fields := []logger.Field{
		logger.Int("attempt", attempt),
		logger.Duration("retry_in", backoff),
		logger.Error(err),
	}
	switch {
	case left < 10*time.Second && left < w.opts.ConnectTimeout/2:
		w.logger.Error("settings backend still down, budget nearly spent",
			append(fields, logger.Duration("remaining", left))...)
	case attempt <= w.opts.WarnThreshold:
		w.logger.Warn("settings backend not answering, retrying", fields...)
	default:
		w.logger.Error("settings backend still not answering", fields...)
	}
}

func remaining(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return 0
	}
	return time.Until(deadline)
}
