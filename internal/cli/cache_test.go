package cli

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/genai-bias/biasplot/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", home)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	// Verify the expected structure: $HOME/.cache/biasplot
	expected := filepath.Join(home, ".cache", "biasplot")
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(xdg, "biasplot"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestClearCache(t *testing.T) {
	dir := t.TempDir()
	c, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	ctx := context.Background()
	for _, k := range []string{"artifact:a", "artifact:b", "reply:c"} {
		if err := c.Set(ctx, k, []byte("x"), time.Hour); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}

	n, err := clearCache(dir)
	if err != nil {
		t.Fatalf("clearCache: %v", err)
	}
	if n != 3 {
		t.Errorf("cleared = %d, want 3", n)
	}
	if _, ok, _ := c.Get(ctx, "artifact:a"); ok {
		t.Error("entry survived clear")
	}
}
