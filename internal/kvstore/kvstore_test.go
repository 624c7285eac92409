package kvstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func runStoreContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "studio:library:v1"); err != nil || ok {
		t.Fatalf("fresh store should miss: ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, "studio:library:v1", `[{"id":"a"}]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := s.Get(ctx, "studio:library:v1")
	if err != nil || !ok {
		t.Fatalf("Get after Set: ok=%v err=%v", ok, err)
	}
	if got != `[{"id":"a"}]` {
		t.Fatalf("value mismatch: %q", got)
	}

	// Set replaces the full value.
	if err := s.Set(ctx, "studio:library:v1", "[]"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got, _, _ := s.Get(ctx, "studio:library:v1"); got != "[]" {
		t.Fatalf("overwrite not applied: %q", got)
	}

	// An empty value is still present.
	if err := s.Set(ctx, "studio:empty", ""); err != nil {
		t.Fatalf("Set empty: %v", err)
	}
	if got, ok, err := s.Get(ctx, "studio:empty"); err != nil || !ok || got != "" {
		t.Fatalf("empty value should exist: got=%q ok=%v err=%v", got, ok, err)
	}
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, NewMemory())
}

func TestFileStore(t *testing.T) {
	s, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	runStoreContract(t, s)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if err := s.Set(ctx, "studio:library:v1", "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	reopened, err := NewFile(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got, ok, err := reopened.Get(ctx, "studio:library:v1"); err != nil || !ok || got != "[]" {
		t.Fatalf("value lost across reopen: got=%q ok=%v err=%v", got, ok, err)
	}
}

func TestFileStoreRejectsTraversal(t *testing.T) {
	s, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	for _, key := range []string{"", "..", "../outside", "a:..:..:etc:passwd"} {
		if err := s.Set(context.Background(), key, "x"); err == nil {
			t.Fatalf("key %q should be rejected", key)
		}
	}
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()
	runStoreContract(t, s)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	ctx := context.Background()

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := s.Set(ctx, "studio:library:v1", "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if got, ok, err := reopened.Get(ctx, "studio:library:v1"); err != nil || !ok || got != "[]" {
		t.Fatalf("value lost across reopen: got=%q ok=%v err=%v", got, ok, err)
	}
}

func TestRedisStore(t *testing.T) {
	srv := miniredis.RunT(t)
	s := NewRedis(srv.Addr(), "", 0)
	defer s.Close()
	runStoreContract(t, s)
}
