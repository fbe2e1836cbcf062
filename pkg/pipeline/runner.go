package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bspgen/pkg/buildinfo"
	"github.com/matzehuels/bspgen/pkg/cache"
	"github.com/matzehuels/bspgen/pkg/dungeon"
	"github.com/matzehuels/bspgen/pkg/observability"
)

// Runner executes pipeline runs against a cache.
//
// The Runner holds no per-run state, so one Runner can serve concurrent
// requests.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil logger
// discards output.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute generates a dungeon and renders every requested format.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	cacheable := opts.Config.Split.Seed != 0
	if !cacheable {
		opts.Config.Split.Seed = time.Now().UnixNano()
	}

	hooks := observability.Pipeline()
	genStart := time.Now()
	dopts := opts.Config.Options()
	dopts.Logger = logger
	hooks.OnGenerateStart(ctx, dopts.Policy, dopts.Depth)
	d, err := dungeon.Generate(dopts)
	if err != nil {
		hooks.OnGenerateComplete(ctx, dopts.Policy, 0, time.Since(genStart), err)
		return nil, fmt.Errorf("generate: %w", err)
	}
	result := &Result{
		Dungeon:   d,
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		CacheHit:  cacheable,
	}
	result.Stats.Stats = d.Stats()
	result.Stats.GenerateTime = time.Since(genStart)
	hooks.OnGenerateComplete(ctx, d.Policy, result.Stats.Leaves, result.Stats.GenerateTime, nil)

	logger.Debug("generated dungeon",
		"seed", d.Seed,
		"leaves", result.Stats.Leaves,
		"rooms", result.Stats.Rooms,
		"duration", result.Stats.GenerateTime)

	cacheHooks := observability.Cache()
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	for _, format := range opts.Formats {
		if _, done := result.Artifacts[format]; done {
			continue
		}
		key := artifactKey(format, opts)
		if cacheable && !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				logger.Debug("cache hit", "format", format)
				cacheHooks.OnCacheHit(ctx, format)
				result.Artifacts[format] = data
				continue
			} else if err != nil {
				logger.Warn("cache lookup failed", "format", format, "err", err)
			}
			cacheHooks.OnCacheMiss(ctx, format)
		}

		result.CacheHit = false
		data, err := Render(ctx, d, format, opts)
		if err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data

		if cacheable {
			if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
				logger.Warn("cache store failed", "format", format, "err", err)
			} else {
				cacheHooks.OnCacheSet(ctx, format, len(data))
			}
		}
	}
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)

	logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", result.CacheHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// artifactKey hashes everything that affects the bytes of an artifact. The
// build version is included so renderer changes invalidate old entries.
func artifactKey(format string, opts Options) string {
	return cache.Key("artifact:"+format, buildinfo.Version, opts.Config, opts.Detailed, opts.Siblings)
}
