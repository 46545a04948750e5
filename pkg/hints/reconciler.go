package hints

import (
	"context"
	"os"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/crates-lsp/pkg/cache"
	"github.com/matzehuels/crates-lsp/pkg/manifest"
	"github.com/matzehuels/crates-lsp/pkg/observability"
)

// Fetcher resolves the latest published version of a crate.
// [crates.Client] satisfies it.
//
// [crates.Client]: github.com/matzehuels/crates-lsp/pkg/integrations/crates.Client
type Fetcher interface {
	LatestVersion(ctx context.Context, crate string) (string, error)
}

// Reconciler produces hints for manifests, sharing one version cache across
// all requests. It is safe for concurrent use.
type Reconciler struct {
	store     cache.Store
	fetcher   Fetcher
	clock     clockwork.Clock
	freshness time.Duration
	logger    *log.Logger

	flight singleflight.Group
}

// Option configures a [Reconciler].
type Option func(*Reconciler)

// WithClock replaces the wall clock used for freshness checks.
func WithClock(c clockwork.Clock) Option {
	return func(r *Reconciler) { r.clock = c }
}

// WithFreshness sets how long a cached version is trusted.
// Non-positive values are ignored.
func WithFreshness(d time.Duration) Option {
	return func(r *Reconciler) {
		if d > 0 {
			r.freshness = d
		}
	}
}

// WithLogger sets the logger for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(r *Reconciler) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Reconciler over store and fetcher.
func New(store cache.Store, fetcher Fetcher, opts ...Option) *Reconciler {
	r := &Reconciler{
		store:     store,
		fetcher:   fetcher,
		clock:     clockwork.NewRealClock(),
		freshness: cache.DefaultFreshness,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store returns the cache shared by this reconciler.
func (r *Reconciler) Store() cache.Store { return r.store }

// ForFile reads the manifest at path and returns its hints. An unreadable
// file, or one that is not a Cargo.toml, yields no hints.
func (r *Reconciler) ForFile(ctx context.Context, path string) []Hint {
	if !manifest.Supports(path) {
		r.logger.Debug("not a cargo manifest", "path", path)
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		r.logger.Error("error opening file", "path", path, "err", err)
		return nil
	}
	return r.reconcile(ctx, path, string(data))
}

// ForText returns the hints for manifest text that is already in memory.
func (r *Reconciler) ForText(ctx context.Context, text string) []Hint {
	return r.reconcile(ctx, "", text)
}

func (r *Reconciler) reconcile(ctx context.Context, path, text string) []Hint {
	start := r.clock.Now()
	logger := r.logger.With("request", uuid.NewString())
	hooks := observability.Hints()
	hooks.OnHintsStart(ctx, path)

	reqs, err := manifest.ParseRequirements([]byte(text), logger)
	if err != nil {
		logger.Warn("skipping manifest", "path", path, "err", err)
		hooks.OnHintsComplete(ctx, path, 0, 0, r.clock.Since(start))
		return nil
	}

	decls := manifest.Locate(text, reqs)
	fetched, failed := r.refresh(ctx, logger, r.staleNames(ctx, logger, decls))

	out := make([]Hint, 0, len(decls))
	for _, d := range decls {
		e, ok := fetched[d.Name]
		if !ok {
			e, ok = r.store.Get(d.Name)
		}
		out = append(out, newHint(d, Label(d.Version, e, ok)))
	}

	logger.Debug("hints ready", "path", path, "hints", len(out), "failed", failed)
	hooks.OnHintsComplete(ctx, path, len(out), failed, r.clock.Since(start))
	return out
}

// staleNames returns each distinct crate in decls whose cache entry is
// missing or older than the freshness window.
func (r *Reconciler) staleNames(ctx context.Context, logger *log.Logger, decls []manifest.Declaration) []string {
	hooks := observability.Cache()
	now := r.clock.Now()
	seen := make(map[string]bool, len(decls))

	var names []string
	for _, d := range decls {
		if seen[d.Name] {
			continue
		}
		seen[d.Name] = true

		e, ok := r.store.Get(d.Name)
		switch {
		case !ok:
			hooks.OnCacheMiss(ctx, d.Name)
		case cache.Fresh(e, now, r.freshness):
			hooks.OnCacheHit(ctx, d.Name)
			continue
		default:
			hooks.OnCacheStale(ctx, d.Name)
			logger.Debug("cache-busting", "crate", d.Name, "refreshed_at", e.RefreshedAt)
		}
		names = append(names, d.Name)
	}
	return names
}

// refresh fetches every name concurrently and waits for all of them. It
// returns the entries that were fetched along with how many fetches failed;
// failures are logged, never returned.
func (r *Reconciler) refresh(ctx context.Context, logger *log.Logger, names []string) (map[string]cache.Entry, int) {
	var (
		g       errgroup.Group
		failed  atomic.Int32
		results = make([]cache.Entry, len(names))
	)
	for i, name := range names {
		g.Go(func() error {
			e, err := r.fetch(ctx, name)
			if err != nil {
				logger.Error("fetch failed", "crate", name, "err", err)
				failed.Add(1)
				return nil
			}
			results[i] = e
			return nil
		})
	}
	_ = g.Wait()

	fetched := make(map[string]cache.Entry, len(names))
	for _, e := range results {
		if e.Name != "" {
			fetched[e.Name] = e
		}
	}
	return fetched, int(failed.Load())
}

// fetch resolves one crate and stores the result. Callers racing on the same
// crate share a single registry call.
func (r *Reconciler) fetch(ctx context.Context, name string) (cache.Entry, error) {
	v, err, _ := r.flight.Do(name, func() (any, error) {
		latest, err := r.fetcher.LatestVersion(ctx, name)
		if err != nil {
			return nil, err
		}
		e := cache.Entry{Name: name, Latest: latest, RefreshedAt: r.clock.Now()}
		r.store.Put(e.Name, e.Latest, e.RefreshedAt)
		observability.Cache().OnCacheSet(ctx, name)
		return e, nil
	})
	if err != nil {
		return cache.Entry{}, err
	}
	return v.(cache.Entry), nil
}
