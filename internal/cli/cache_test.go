package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSweepCache_MissingDirIsEmpty(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does-not-exist")

	entries, bytes, err := sweepCache(dir, false)
	if err != nil {
		t.Fatalf("sweepCache() error = %v", err)
	}
	if entries != 0 || bytes != 0 {
		t.Errorf("sweepCache() = (%d, %d), want (0, 0)", entries, bytes)
	}
}

func TestSweepCache_CountsShardedEntries(t *testing.T) {
	dir := t.TempDir()
	writeCacheEntry(t, dir, "ab", "ab12cd.json", 100)
	writeCacheEntry(t, dir, "ab", "ab34ef.json", 50)
	writeCacheEntry(t, dir, "cd", "cd56aa.json", 25)
	writeCacheEntry(t, dir, "cd", "notes.txt", 999) // not a cache entry

	entries, bytes, err := sweepCache(dir, false)
	if err != nil {
		t.Fatalf("sweepCache() error = %v", err)
	}
	if entries != 3 {
		t.Errorf("entries = %d, want 3", entries)
	}
	if bytes != 175 {
		t.Errorf("bytes = %d, want 175", bytes)
	}
}

func TestSweepCache_RemoveDeletesEntriesAndEmptyShards(t *testing.T) {
	dir := t.TempDir()
	writeCacheEntry(t, dir, "ab", "ab12cd.json", 10)
	writeCacheEntry(t, dir, "cd", "cd56aa.json", 10)

	entries, _, err := sweepCache(dir, true)
	if err != nil {
		t.Fatalf("sweepCache() error = %v", err)
	}
	if entries != 2 {
		t.Errorf("entries = %d, want 2", entries)
	}

	if _, err := os.Stat(filepath.Join(dir, "ab")); !os.IsNotExist(err) {
		t.Error("shard directory ab still exists after removal sweep")
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache root should survive the sweep: %v", err)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func writeCacheEntry(t *testing.T, dir, shard, name string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, shard), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, shard, name), make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
}
