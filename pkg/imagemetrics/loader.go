package imagemetrics

import (
	"context"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/cache"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/errors"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/observability"
)

// DefaultConcurrency is the number of images measured in parallel.
const DefaultConcurrency = 8

// Loader measures images from disk, consulting a cache keyed by content hash.
type Loader struct {
	Cache       cache.Cache
	Keyer       cache.Keyer
	Logger      *log.Logger
	Concurrency int
}

// NewLoader creates a loader. A nil cache disables caching; a nil keyer uses
// the default key layout.
func NewLoader(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Loader {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{Cache: c, Keyer: keyer, Logger: logger, Concurrency: DefaultConcurrency}
}

// LoadStats reports how a Load went.
type LoadStats struct {
	Measured  int
	CacheHits int
}

// Load measures every path. It fails on the first image that cannot be read
// (IMAGE_NOT_FOUND) or decoded (INVALID_FORMAT).
func (l *Loader) Load(ctx context.Context, paths []string) (Table, error) {
	t, _, err := l.LoadWithStats(ctx, paths)
	return t, err
}

// LoadWithStats is Load plus cache statistics.
func (l *Loader) LoadWithStats(ctx context.Context, paths []string) (Table, LoadStats, error) {
	var (
		mu    sync.Mutex
		table = make(Table, len(paths))
		stats LoadStats
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(l.Concurrency, 1))
	for _, path := range paths {
		g.Go(func() error {
			size, hit, err := l.measure(ctx, path)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			table[path] = size
			stats.Measured++
			if hit {
				stats.CacheHits++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, LoadStats{}, err
	}

	l.Logger.Debug("measured images", "count", stats.Measured, "cache_hits", stats.CacheHits)
	return table, stats, nil
}

func (l *Loader) measure(ctx context.Context, path string) (Size, bool, error) {
	if err := ctx.Err(); err != nil {
		return Size{}, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Size{}, false, errors.Wrap(errors.ErrCodeImageNotFound, err, "read image %s", path)
	}

	hooks := observability.Cache()
	key := l.Keyer.MetricsKey(cache.Hash(data))
	if size, hit, err := cache.GetValue[Size](ctx, l.Cache, key); err == nil && hit {
		hooks.OnCacheHit(ctx, observability.KeyTypeMetrics)
		return size, true, nil
	}
	hooks.OnCacheMiss(ctx, observability.KeyTypeMetrics)

	size, err := Measure(path, data)
	if err != nil {
		return Size{}, false, err
	}
	if err := cache.SetValue(ctx, l.Cache, key, size, cache.TTLMetrics); err != nil {
		l.Logger.Warn("cache metrics", "path", path, "error", err)
	} else {
		hooks.OnCacheSet(ctx, observability.KeyTypeMetrics, len(data))
	}
	return size, false, nil
}
