package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")
	s, err := New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if _, ok, err := s.Get(ctx, "transactions"); ok || err != nil {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, "transactions", `[{"id":1}]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := s.Get(ctx, "transactions")
	if err != nil || !ok || v != `[{"id":1}]` {
		t.Fatalf("unexpected get: v=%q ok=%v err=%v", v, ok, err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "transactions.json"))
	if err != nil || string(data) != `[{"id":1}]` {
		t.Fatalf("unexpected file content %q (%v)", data, err)
	}

	// A second store on the same directory sees the value.
	s2, _ := New(dir)
	if v, ok, _ := s2.Get(ctx, "transactions"); !ok || v != `[{"id":1}]` {
		t.Fatalf("value not visible to a new store: %q", v)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("temporary files left behind: %v", entries)
	}
}

func TestFileStoreRejectsBadKeys(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, key := range []string{"", "../x", "a/b", ".."} {
		if err := s.Set(context.Background(), key, "v"); err == nil {
			t.Errorf("expected error for key %q", key)
		}
	}
}
