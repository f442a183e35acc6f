package fs

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"WishlistX/internal/cli/repo"
)

func newTempStore(t *testing.T) *KVStore {
	t.Helper()
	st, err := New(filepath.Join(t.TempDir(), "WishlistX"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return st
}

func TestKVStore_SetGet_TrimsWhitespace(t *testing.T) {
	st := newTempStore(t)
	ctx := context.Background()
	if err := st.Set(ctx, "wishlistx_auth_token", "tok-123\n\n"); err != nil {
		t.Fatalf("set: %v", err)
	}
	// Дозапишем вручную лишние пробелы в конец файла, чтобы проверить trim
	p := filepath.Join(st.Dir, "wishlistx_auth_token")
	f, _ := os.OpenFile(p, os.O_APPEND|os.O_WRONLY, 0o600)
	_, _ = f.WriteString("  \r\n")
	_ = f.Close()

	got, err := st.Get(ctx, "wishlistx_auth_token")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "tok-123" {
		t.Fatalf("value not trimmed, got %q", got)
	}
}

func TestKVStore_FilePermissionsAndNoTempLeftovers(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}
	st := newTempStore(t)
	if err := st.Set(context.Background(), "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	info, err := os.Stat(filepath.Join(st.Dir, "k"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600, got %v", info.Mode().Perm())
	}
	entries, _ := os.ReadDir(st.Dir)
	if len(entries) != 1 {
		t.Fatalf("temp files must be renamed away, got %d entries", len(entries))
	}
}

func TestKVStore_MissingAndRemove(t *testing.T) {
	st := newTempStore(t)
	ctx := context.Background()
	if _, err := st.Get(ctx, "absent"); err != repo.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	_ = st.Set(ctx, "k", "v")
	if err := st.Remove(ctx, "k"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	// повторное удаление не ошибка
	if err := st.Remove(ctx, "k"); err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if _, err := st.Get(ctx, "k"); err != repo.ErrNotFound {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
}

func TestKVStore_RejectsUnsafeKeys(t *testing.T) {
	st := newTempStore(t)
	if err := st.Set(context.Background(), "../escape", "x"); err == nil {
		t.Fatalf("expected error for path-like key")
	}
	if _, err := New(""); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}
