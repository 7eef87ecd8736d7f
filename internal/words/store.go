package words

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/learnwords/internal/domain"
	"github.com/MrSnakeDoc/learnwords/internal/index"
	"github.com/MrSnakeDoc/learnwords/internal/logger"
	"github.com/MrSnakeDoc/learnwords/internal/speech"
)

// Source fetches and decodes a remote word list.
type Source interface {
	Fetch(ctx context.Context, u *url.URL) ([]domain.WordEntry, error)
}

// LoadPolicy decides what happens when a load starts while another is in flight.
type LoadPolicy string

const (
	// PolicyParallel lets every fetch finish and apply its result.
	// The last fetch to complete wins.
	PolicyParallel LoadPolicy = "parallel"

	// PolicyCancelPrevious cancels the in-flight fetch when a new load starts.
	// Results of superseded fetches are discarded.
	PolicyCancelPrevious LoadPolicy = "cancel"
)

// ParseLoadPolicy maps a config value to a policy. Empty means parallel.
func ParseLoadPolicy(s string) (LoadPolicy, error) {
	switch LoadPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyParallel:
		return PolicyParallel, nil
	case PolicyCancelPrevious:
		return PolicyCancelPrevious, nil
	default:
		return "", fmt.Errorf("unknown load policy %q (want %q or %q)", s, PolicyParallel, PolicyCancelPrevious)
	}
}

// Options configures a Store.
type Options struct {
	Policy   LoadPolicy
	Language string // speech language tag, defaults to en-US
}

// View is a consistent snapshot for rendering.
type View struct {
	State   domain.LoadState
	Query   string
	Entries []domain.WordEntry // nil while loading
	Total   int                // entries before filtering
}

// Store owns the word list, its loading status and the search query.
//
// Every mutation of (entries, status, query) happens under mu, so readers
// never observe a new list paired with a stale status.
type Store struct {
	index    *index.WordIndex
	source   Source
	speaker  speech.Speaker
	logger   logger.Logger
	policy   LoadPolicy
	language string

	mu             sync.RWMutex
	state          domain.LoadState
	query          string
	generation     uint64
	cancelInFlight context.CancelFunc
}

// NewStore creates a store in the Loading state, as nothing has been fetched yet.
func NewStore(src Source, speaker speech.Speaker, log logger.Logger, opts Options) *Store {
	if opts.Policy == "" {
		opts.Policy = PolicyParallel
	}
	if opts.Language == "" {
		opts.Language = speech.DefaultLanguage
	}
	return &Store{
		index:    index.NewWordIndex(),
		source:   src,
		speaker:  speaker,
		logger:   log,
		policy:   opts.Policy,
		language: opts.Language,
		state:    domain.Loading(),
	}
}

// ─────────────────────────────────────────────────────────────────
// Loading
// ─────────────────────────────────────────────────────────────────

// Load fetches rawURL and blocks until the result has been applied.
// The returned error is also reflected in State().
func (s *Store) Load(ctx context.Context, rawURL string) error {
	run, err := s.begin(ctx, rawURL)
	if err != nil {
		return err
	}
	return run()
}

// LoadAsync switches to Loading before returning and fetches in the background.
// The channel receives exactly one result and is then closed.
func (s *Store) LoadAsync(ctx context.Context, rawURL string) <-chan error {
	done := make(chan error, 1)

	run, err := s.begin(ctx, rawURL)
	if err != nil {
		done <- err
		close(done)
		return done
	}

	go func() {
		defer close(done)
		done <- run()
	}()
	return done
}

// begin validates the URL and applies the synchronous part of a load.
// It returns the fetch step to run next.
func (s *Store) begin(ctx context.Context, rawURL string) (func() error, error) {
	u, urlErr := domain.ParseSourceURL(rawURL)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	gen := s.generation

	if s.policy == PolicyCancelPrevious && s.cancelInFlight != nil {
		s.logger.Debug("cancelling in-flight word list fetch",
			logger.Int64("generation", int64(gen-1)))
		s.cancelInFlight()
		s.cancelInFlight = nil
	}

	if urlErr != nil {
		s.state = domain.Failed(urlErr)
		s.logger.Warn("refusing to load word list",
			logger.String("url", rawURL),
			logger.Error(urlErr))
		return nil, urlErr
	}

	fetchCtx, cancel := context.WithCancel(ctx)
	if s.policy == PolicyCancelPrevious {
		s.cancelInFlight = cancel
	}
	s.state = domain.Loading()

	s.logger.Info("loading word list",
		logger.String("url", u.Redacted()),
		logger.Int64("generation", int64(gen)))

	return func() error {
		defer cancel()
		return s.fetch(fetchCtx, gen, u)
	}, nil
}

func (s *Store) fetch(ctx context.Context, gen uint64, u *url.URL) error {
	start := time.Now()
	entries, err := s.source.Fetch(ctx, u)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.policy == PolicyCancelPrevious {
		if gen != s.generation {
			s.logger.Debug("discarding superseded word list result",
				logger.Int64("generation", int64(gen)),
				logger.Int64("current", int64(s.generation)))
			return domain.ErrSuperseded
		}
		s.cancelInFlight = nil
	}

	if err != nil {
		var le *domain.LoadError
		if !errors.As(err, &le) {
			err = domain.NewNetworkError(err)
		}
		s.state = domain.Failed(err)
		s.logger.Warn("word list load failed",
			logger.String("reason", domain.Reason(err)),
			logger.Duration("elapsed", time.Since(start)),
			logger.Error(err))
		return err
	}

	s.index.Replace(entries)
	s.state = domain.Ready()

	s.logger.Info("word list loaded",
		logger.Int("count", len(entries)),
		logger.Duration("elapsed", time.Since(start)))
	return nil
}

// ─────────────────────────────────────────────────────────────────
// Reads
// ─────────────────────────────────────────────────────────────────

// State returns the current loading state.
func (s *Store) State() domain.LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Filter applies query to the current entries. It does not touch the stored query.
func (s *Store) Filter(query string) []domain.WordEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Filter(s.index.All(), query)
}

// View renders the stored query.
func (s *Store) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewLocked(s.query)
}

// ViewFor renders an explicit query.
func (s *Store) ViewFor(query string) View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewLocked(query)
}

func (s *Store) viewLocked(query string) View {
	v := View{
		State: s.state,
		Query: query,
		Total: s.index.Count(),
	}
	if s.state.Status != domain.StatusLoading {
		v.Entries = domain.Filter(s.index.All(), query)
	}
	return v
}

// Query returns the stored search query.
func (s *Store) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// SetQuery replaces the stored search query.
func (s *Store) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
}

// Count returns the number of loaded entries.
func (s *Store) Count() int {
	return s.index.Count()
}

// LastReload returns when the list was last replaced.
func (s *Store) LastReload() time.Time {
	return s.index.LastReload()
}

// ─────────────────────────────────────────────────────────────────
// User actions
// ─────────────────────────────────────────────────────────────────

// ToggleDisplay flips the shown side of an entry. Unknown IDs are a silent no-op:
// they come from a view rendered before the last reload.
func (s *Store) ToggleDisplay(id uuid.UUID) (domain.WordEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Toggle(id)
}

// DisplayText returns the side currently shown, or "" for an unknown ID.
func (s *Store) DisplayText(id uuid.UUID) string {
	e, ok := s.index.Get(id)
	if !ok {
		return ""
	}
	return e.DisplayText()
}

// Speak pronounces the original text of an entry. Nothing is spoken while the
// translation is shown or when the ID is unknown; spoken reports which case applied.
func (s *Store) Speak(ctx context.Context, id uuid.UUID) (spoken bool, err error) {
	e, ok := s.index.Get(id)
	if !ok || !e.CanSpeak() {
		return false, nil
	}
	if err := s.speaker.Speak(ctx, e.Original, s.language); err != nil {
		return false, fmt.Errorf("failed to speak %q: %w", e.Original, err)
	}
	return true, nil
}
