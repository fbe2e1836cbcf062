package pipeline

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/bspgen/pkg/cache"
	"github.com/matzehuels/bspgen/pkg/config"
	"github.com/matzehuels/bspgen/pkg/errors"
	"github.com/matzehuels/bspgen/pkg/observability"
)

// memCache is an in-memory cache that counts Set calls.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

var _ cache.Cache = (*memCache)(nil)

func seeded(seed int64) config.Config {
	cfg := config.Default()
	cfg.Split.Seed = seed
	return cfg
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		formats []string
		wantErr bool
	}{
		{[]string{"svg"}, false},
		{[]string{"svg", "json", "txt", "dot", "tree"}, false},
		{nil, false},
		{[]string{"png"}, true},
		{[]string{"SVG"}, true},
		{[]string{"svg", ""}, true},
	}

	for _, tt := range tests {
		err := ValidateFormats(tt.formats)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormats(%v) code = %s", tt.formats, errors.GetCode(err))
		}
	}
}

func TestExtensionAndContentType(t *testing.T) {
	if Extension(FormatTree) != "tree.svg" || Extension(FormatJSON) != "json" {
		t.Error("unexpected extensions")
	}
	if ContentType(FormatSVG) != "image/svg+xml" || ContentType(FormatJSON) != "application/json" {
		t.Error("unexpected content types")
	}
	if !strings.HasPrefix(ContentType(FormatTXT), "text/plain") {
		t.Errorf("ContentType(txt) = %q", ContentType(FormatTXT))
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Config:  seeded(42),
		Formats: []string{FormatSVG, FormatJSON, FormatTXT, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(res.Artifacts) != 4 {
		t.Fatalf("got %d artifacts, want 4", len(res.Artifacts))
	}
	if !bytes.HasPrefix(res.Artifacts[FormatSVG], []byte("<svg")) {
		t.Error("svg artifact is not svg")
	}
	if !bytes.HasPrefix(res.Artifacts[FormatJSON], []byte("{")) {
		t.Error("json artifact is not json")
	}
	if string(res.Artifacts[FormatTXT]) != res.Dungeon.String() {
		t.Error("txt artifact should be the ASCII map")
	}
	if !bytes.HasPrefix(res.Artifacts[FormatDOT], []byte("digraph G {")) {
		t.Error("dot artifact is not DOT")
	}
	if res.Dungeon.Seed != 42 {
		t.Errorf("seed = %d, want 42", res.Dungeon.Seed)
	}
	if res.Stats.Leaves != len(res.Dungeon.Tree.Leaves()) {
		t.Errorf("Stats.Leaves = %d", res.Stats.Leaves)
	}
	if res.CacheHit {
		t.Error("NullCache run should not report a cache hit")
	}
}

func TestExecuteDefaultsToSVG(t *testing.T) {
	res, err := NewRunner(nil, nil).Execute(context.Background(), Options{Config: seeded(1)})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, ok := res.Artifacts[FormatSVG]; !ok || len(res.Artifacts) != 1 {
		t.Errorf("artifacts = %v, want svg only", len(res.Artifacts))
	}
}

func TestExecuteInvalid(t *testing.T) {
	r := NewRunner(nil, nil)

	_, err := r.Execute(context.Background(), Options{Config: seeded(1), Formats: []string{"pdf"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format error = %v", err)
	}

	cfg := seeded(1)
	cfg.Map.Width = -1
	_, err = r.Execute(context.Background(), Options{Config: cfg})
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("bad config error = %v", err)
	}
}

func TestExecuteCaching(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil)
	opts := Options{Config: seeded(7), Formats: []string{FormatSVG, FormatTXT}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHit || c.sets != 2 {
		t.Fatalf("first run: hit=%v sets=%d, want miss and 2 sets", first.CacheHit, c.sets)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheHit || c.sets != 2 {
		t.Errorf("second run: hit=%v sets=%d, want hit and no new sets", second.CacheHit, c.sets)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from rendered one")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheHit || c.sets != 4 {
		t.Errorf("refresh run: hit=%v sets=%d, want miss and 4 sets", third.CacheHit, c.sets)
	}

	opts.Refresh = false
	opts.Config.Split.Seed = 8
	if res, _ := r.Execute(ctx, opts); res.CacheHit {
		t.Error("a different seed must not hit the cache")
	}
}

func TestExecuteRandomSeedNotCached(t *testing.T) {
	c := newMemCache()
	res, err := NewRunner(c, nil).Execute(context.Background(), Options{Config: seeded(0)})
	if err != nil {
		t.Fatal(err)
	}
	if res.Dungeon.Seed == 0 {
		t.Error("a seed should have been picked")
	}
	if c.sets != 0 {
		t.Errorf("random-seed runs should not be cached (sets = %d)", c.sets)
	}
}

func TestArtifactKey(t *testing.T) {
	a := artifactKey(FormatDOT, Options{Config: seeded(1)})
	b := artifactKey(FormatDOT, Options{Config: seeded(1), Detailed: true})
	c := artifactKey(FormatSVG, Options{Config: seeded(1)})
	if a == b || a == c {
		t.Error("keys should differ by tree options and format")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks
	mu                  sync.Mutex
	generated, rendered int
	leaves              int
	hits, misses, sets  int
}

func (h *recordingHooks) OnGenerateComplete(_ context.Context, _ string, leaves int, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err == nil {
		h.generated++
		h.leaves = leaves
	}
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, _ []string, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err == nil {
		h.rendered++
	}
}

func (h *recordingHooks) OnCacheHit(context.Context, string)      { h.mu.Lock(); h.hits++; h.mu.Unlock() }
func (h *recordingHooks) OnCacheMiss(context.Context, string)     { h.mu.Lock(); h.misses++; h.mu.Unlock() }
func (h *recordingHooks) OnCacheSet(context.Context, string, int) { h.mu.Lock(); h.sets++; h.mu.Unlock() }

func TestExecuteReportsHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	t.Cleanup(observability.Reset)

	cfg := seeded(8)
	cfg.Split.Policy = "bisect"
	cfg.Split.Depth = 2
	r := NewRunner(newMemCache(), nil)
	opts := Options{Config: cfg, Formats: []string{FormatJSON, FormatTXT}}

	for i := 0; i < 2; i++ {
		if _, err := r.Execute(context.Background(), opts); err != nil {
			t.Fatalf("Execute: %v", err)
		}
	}

	if h.generated != 2 || h.rendered != 2 {
		t.Errorf("generated/rendered = %d/%d, want 2/2", h.generated, h.rendered)
	}
	if h.leaves != 4 {
		t.Errorf("leaves = %d, want 4", h.leaves)
	}
	if h.misses != 2 || h.sets != 2 || h.hits != 2 {
		t.Errorf("misses/sets/hits = %d/%d/%d, want 2/2/2", h.misses, h.sets, h.hits)
	}
}
