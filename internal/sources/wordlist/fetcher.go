package wordlist

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/MrSnakeDoc/learnwords/internal/domain"
	"github.com/MrSnakeDoc/learnwords/internal/logger"
	"github.com/MrSnakeDoc/learnwords/internal/utils"
)

const (
	// DefaultTimeout bounds a whole fetch, body included.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxBytes caps the response body (10 MiB).
	DefaultMaxBytes int64 = 10 << 20
)

// Options configures a Fetcher. Zero values fall back to the defaults.
type Options struct {
	Timeout   time.Duration
	MaxBytes  int64
	UserAgent string
}

// Fetcher downloads and decodes a remote word list.
type Fetcher struct {
	client    *http.Client
	maxBytes  int64
	userAgent string
	logger    logger.Logger
}

// NewFetcher creates a Fetcher with its own HTTP client.
func NewFetcher(opts Options, log logger.Logger) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "learnwords"
	}

	client := &http.Client{
		Timeout: opts.Timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   opts.Timeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout: opts.Timeout,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			MaxIdleConns:    4,
			IdleConnTimeout: 90 * time.Second,
		},
	}

	return NewFetcherWithClient(client, opts, log)
}

// NewFetcherWithClient uses the given client as is (tests, custom transports).
func NewFetcherWithClient(client *http.Client, opts Options, log logger.Logger) *Fetcher {
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "learnwords"
	}
	return &Fetcher{
		client:    client,
		maxBytes:  opts.MaxBytes,
		userAgent: opts.UserAgent,
		logger:    log,
	}
}

// Fetch downloads u and decodes it into fresh entries.
func (f *Fetcher) Fetch(ctx context.Context, u *url.URL) ([]domain.WordEntry, error) {
	start := time.Now()

	body, err := f.FetchBody(ctx, u)
	if err != nil {
		f.logger.Warn("word list fetch failed",
			logger.String("url", u.Redacted()),
			logger.Duration("elapsed", time.Since(start)),
			logger.Error(err))
		return nil, err
	}

	entries, err := Decode(body)
	if err != nil {
		f.logger.Warn("word list decode failed",
			logger.String("url", u.Redacted()),
			logger.Int("bytes", len(body)),
			logger.Error(err))
		return nil, err
	}

	f.logger.Debug("word list fetched",
		logger.String("url", u.Redacted()),
		logger.Int("bytes", len(body)),
		logger.Int("entries", len(entries)),
		logger.Duration("elapsed", time.Since(start)))

	return entries, nil
}

// FetchBody performs the GET and returns the raw body. Every failure here,
// including non-2xx responses, is a network error.
func (f *Fetcher) FetchBody(ctx context.Context, u *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, domain.NewNetworkError(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, domain.NewNetworkError(err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewNetworkError(fmt.Errorf("unexpected status %s", resp.Status))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, domain.NewNetworkError(fmt.Errorf("failed to read body: %w", err))
	}
	if int64(len(body)) > f.maxBytes {
		return nil, domain.NewNetworkError(fmt.Errorf("response exceeds %d bytes", f.maxBytes))
	}
	if len(body) == 0 {
		return nil, domain.NewNoDataError()
	}

	return body, nil
}
