package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileCache_RoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "family-abc", []byte(`{"lanes":{}}`), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, "family-abc")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !hit {
		t.Fatal("Get() hit = false, want true")
	}
	if string(data) != `{"lanes":{}}` {
		t.Errorf("Get() data = %q, want stored payload", data)
	}
}

func TestFileCache_Miss(t *testing.T) {
	c, _ := NewFileCache(t.TempDir())

	data, hit, err := c.Get(context.Background(), "absent")
	if err != nil || hit || data != nil {
		t.Errorf("Get(absent) = %v, %v, %v, want nil, false, nil", data, hit, err)
	}
}

func TestFileCache_Expiry(t *testing.T) {
	c, _ := NewFileCache(t.TempDir())
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get() after expiry = hit %v, err %v, want miss without error", hit, err)
	}
}

func TestFileCache_CorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	c, _ := NewFileCache(dir)
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	h := Hash([]byte("k"))
	path := filepath.Join(dir, h[:2], h[2:]+".json")
	if err := os.WriteFile(path, []byte("{corrupt"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get() on corrupt entry = hit %v, err %v, want miss without error", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry not removed")
	}
}

func TestFileCache_ShardedPaths(t *testing.T) {
	dir := t.TempDir()
	c, _ := NewFileCache(dir)

	if err := c.Set(context.Background(), "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	h := Hash([]byte("k"))
	if _, err := os.Stat(filepath.Join(dir, h[:2], h[2:]+".json")); err != nil {
		t.Errorf("entry not at sharded path: %v", err)
	}
}

func TestFileCache_DeleteAbsent(t *testing.T) {
	c, _ := NewFileCache(t.TempDir())

	if err := c.Delete(context.Background(), "absent"); err != nil {
		t.Errorf("Delete(absent) error = %v, want nil", err)
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get() = hit %v, err %v, want miss without error", hit, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestHash_Stable(t *testing.T) {
	a := Hash([]byte("content"))
	b := Hash([]byte("content"))
	if a != b {
		t.Errorf("Hash not stable: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("len(Hash()) = %d, want 64", len(a))
	}
	if Hash([]byte("other")) == a {
		t.Error("different inputs produced identical hashes")
	}
}

func TestLayoutKey(t *testing.T) {
	if got := LayoutKey("abc"); got != "layout:abc" {
		t.Errorf("LayoutKey(abc) = %q, want %q", got, "layout:abc")
	}
}
