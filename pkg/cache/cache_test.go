package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always return a nil miss")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "absent"); err != nil || hit {
		t.Fatalf("Get(absent) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Fatalf("Get(k) = %q, %v, %v", data, hit, err)
	}

	entries, size, err := c.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if entries != 1 || size == 0 {
		t.Errorf("Stats = %d entries, %d bytes", entries, size)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived Delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("second Delete error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry returned a hit")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	_ = c.Set(ctx, "k", []byte("v"), 0)

	if err := os.WriteFile(c.path("k"), []byte("not msgpack"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v", hit, err)
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("corrupt entry was not removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)

	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if n, _, _ := c.Stats(); n != 0 {
		t.Errorf("entries after Clear = %d", n)
	}
}

func TestFileCachePrune(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "keep", []byte("1"), time.Hour)
	_ = c.Set(ctx, "forever", []byte("2"), 0)
	_ = c.Set(ctx, "stale", []byte("3"), time.Minute)
	if err := os.WriteFile(filepath.Join(c.Dir(), "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	now = now.Add(10 * time.Minute)
	removed, err := c.Prune()
	if err != nil {
		t.Fatal(err)
	}
	if removed != 1 {
		t.Errorf("Prune removed %d, want 1", removed)
	}
	if n, _, _ := c.Stats(); n != 2 {
		t.Errorf("entries after Prune = %d, want 2", n)
	}
	if _, err := os.Stat(filepath.Join(c.Dir(), "notes.txt")); err != nil {
		t.Error("Prune touched a file that is not an entry")
	}
}

func TestValueCodec(t *testing.T) {
	type size struct {
		Width, Height int
	}
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := SetValue(ctx, c, "img", size{640, 480}, TTLMetrics); err != nil {
		t.Fatal(err)
	}
	got, hit, err := GetValue[size](ctx, c, "img")
	if err != nil || !hit {
		t.Fatalf("GetValue: hit %v, err %v", hit, err)
	}
	if got != (size{640, 480}) {
		t.Errorf("got %+v", got)
	}

	_ = c.Set(ctx, "bad", []byte{0xc1}, 0)
	if _, hit, _ := GetValue[size](ctx, c, "bad"); hit {
		t.Error("undecodable value returned a hit")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	if got := k.MetricsKey("abc"); got != "metrics:abc" {
		t.Errorf("MetricsKey = %s", got)
	}

	svg := k.ArtifactKey("slide", ArtifactKeyOpts{Format: "svg", Variant: "Default"})
	png := k.ArtifactKey("slide", ArtifactKeyOpts{Format: "png", Variant: "Default"})
	dark := k.ArtifactKey("slide", ArtifactKeyOpts{Format: "svg", Variant: "Default", Dark: true})
	if svg == png || svg == dark {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(svg, "artifact:") {
		t.Errorf("ArtifactKey = %s", svg)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "deck:1:")
	if got := scoped.MetricsKey("h"); got != "deck:1:metrics:h" {
		t.Errorf("MetricsKey = %s", got)
	}
	if got := scoped.ArtifactKey("s", ArtifactKeyOpts{}); !strings.HasPrefix(got, "deck:1:artifact:") {
		t.Errorf("ArtifactKey = %s", got)
	}

	if got := NewScopedKeyer(nil, "p:").MetricsKey("h"); got != "p:metrics:h" {
		t.Errorf("nil inner: %s", got)
	}
}

func TestForDocument(t *testing.T) {
	dir := t.TempDir()
	a := ForDocument(nil, filepath.Join(dir, "a.toml"))
	b := ForDocument(nil, filepath.Join(dir, "b.toml"))

	if a.Prefix() == b.Prefix() {
		t.Error("different documents should get different scopes")
	}
	if !strings.HasPrefix(a.Prefix(), "doc:") {
		t.Errorf("Prefix = %s", a.Prefix())
	}
	if a.MetricsKey("h") != "metrics:h" {
		t.Errorf("metrics keys should stay shared: %s", a.MetricsKey("h"))
	}
	opts := ArtifactKeyOpts{Format: "svg"}
	if a.ArtifactKey("s", opts) == b.ArtifactKey("s", opts) {
		t.Error("artifact keys should be scoped per document")
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("LOGOSLIDEMAKER_TEST_REDIS")
	if addr == "" {
		t.Skip("LOGOSLIDEMAKER_TEST_REDIS not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisConfig{Addr: addr, Prefix: "lsm-test:"})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}
	_ = c.Delete(ctx, "k")
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived Delete")
	}
}

func TestTransient(t *testing.T) {
	if Transient(nil) != nil {
		t.Error("Transient(nil) should return nil")
	}
	err := fmt.Errorf("ping: %w", Transient(ErrUnavailable))
	if !IsTransient(err) {
		t.Error("IsTransient should see through wrapping")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Error("errors.Is should reach the marked error")
	}
	if IsTransient(context.Canceled) {
		t.Error("IsTransient should be false for unmarked errors")
	}
}

func TestBackoffRetry(t *testing.T) {
	ctx := context.Background()
	fast := Backoff{Attempts: 3, Initial: time.Millisecond}

	tests := []struct {
		name      string
		failures  int
		transient bool
		wantCalls int
		wantErr   bool
	}{
		{"success", 0, true, 1, false},
		{"permanent failure", 5, false, 1, true},
		{"recovers", 2, true, 3, false},
		{"exhausted", 5, true, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := fast.Retry(ctx, func() error {
				calls++
				if calls > tt.failures {
					return nil
				}
				if tt.transient {
					return Transient(ErrUnavailable)
				}
				return context.DeadlineExceeded
			})
			if (err != nil) != tt.wantErr || calls != tt.wantCalls {
				t.Errorf("err %v, calls %d; want err %v, calls %d", err, calls, tt.wantErr, tt.wantCalls)
			}
		})
	}
}

func TestBackoffRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Backoff{}.Retry(ctx, func() error { return Transient(ErrUnavailable) })
	if err != context.Canceled {
		t.Errorf("Retry should return the context error: %v", err)
	}
}

func TestParseRedisURL(t *testing.T) {
	cfg, err := ParseRedisURL("redis://:secret@cache.internal:6380/2")
	if err != nil {
		t.Fatalf("ParseRedisURL error: %v", err)
	}
	if cfg.Addr != "cache.internal:6380" || cfg.Password != "secret" || cfg.DB != 2 {
		t.Errorf("ParseRedisURL = %+v", cfg)
	}

	if _, err := ParseRedisURL("http://localhost"); err == nil {
		t.Error("ParseRedisURL should reject non-redis schemes")
	}
}
