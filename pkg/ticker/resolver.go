package ticker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"sentimentdata/pkg/fuzzy"
)

// ErrUnresolved means no symbol could be matched, either because the
// reference list is empty or because it could not be loaded.
var ErrUnresolved = errors.New("ticker not resolved")

const DefaultRefreshInterval = 24 * time.Hour

// Resolver maps free-text company names or abbreviations to the best matching
// symbol. The reference list is fetched once and kept until it is older than
// RefreshInterval or Invalidate is called.
type Resolver struct {
	source          Source
	refreshInterval time.Duration
	minScore        int
	now             func() time.Time
	logger          *zap.Logger

	mu       sync.Mutex
	symbols  []Info
	choices  []string
	loadedAt time.Time
}

type Option func(*Resolver)

// WithRefreshInterval sets how long a loaded list is reused. Zero keeps it for
// the life of the process.
func WithRefreshInterval(d time.Duration) Option {
	return func(r *Resolver) {
		r.refreshInterval = d
	}
}

// WithMinScore rejects best matches scoring below score.
func WithMinScore(score int) Option {
	return func(r *Resolver) {
		r.minScore = score
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		r.now = now
	}
}

func NewResolver(source Source, opts ...Option) *Resolver {
	r := &Resolver{
		source:          source,
		refreshInterval: DefaultRefreshInterval,
		now:             time.Now,
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the reference entry that best matches query.
func (r *Resolver) Resolve(ctx context.Context, query string) (Info, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stale() {
		if err := r.load(ctx); err != nil {
			if len(r.symbols) == 0 {
				return Info{}, fmt.Errorf("%w: %v", ErrUnresolved, err)
			}
			r.logger.Warn("symbol list refresh failed, using cached list", zap.Error(err))
			// retry after another interval instead of on every call
			r.loadedAt = r.now()
		}
	}

	if len(r.symbols) == 0 {
		return Info{}, fmt.Errorf("%w: reference list is empty", ErrUnresolved)
	}

	idx, score := fuzzy.ExtractOne(query, r.choices)
	if idx < 0 || score < r.minScore {
		return Info{}, fmt.Errorf("%w: no match for %q", ErrUnresolved, query)
	}

	r.logger.Debug("resolved ticker",
		zap.String("query", query),
		zap.String("symbol", r.symbols[idx].Symbol),
		zap.Int("score", score))

	return r.symbols[idx], nil
}

// Refresh reloads the reference list now.
func (r *Resolver) Refresh(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// Invalidate drops the cached list so the next Resolve reloads it.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.symbols = nil
	r.choices = nil
	r.loadedAt = time.Time{}
}

// Len is the size of the cached list.
func (r *Resolver) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.symbols)
}

func (r *Resolver) stale() bool {
	if r.loadedAt.IsZero() {
		return true
	}
	if r.refreshInterval <= 0 {
		return false
	}
	return r.now().Sub(r.loadedAt) >= r.refreshInterval
}

// load must be called with mu held.
func (r *Resolver) load(ctx context.Context) error {
	symbols, err := r.source.Symbols(ctx)
	if err != nil {
		return err
	}

	choices := make([]string, len(symbols))
	for i, s := range symbols {
		choices[i] = s.Symbol + " " + s.Name
	}

	r.symbols = symbols
	r.choices = choices
	r.loadedAt = r.now()

	r.logger.Info("loaded symbol list", zap.Int("symbols", len(symbols)))
	return nil
}
