package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "progress.json")

	st, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	if err := st.Put(ctx, "malla", `["A","B"]`); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	_ = st.Close()

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	got, err := reopened.Get(ctx, "malla")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != `["A","B"]` {
		t.Errorf("Get = %q after reopen", got)
	}
	if reopened.Path() != path {
		t.Errorf("Path = %q, want %q", reopened.Path(), path)
	}
}

func TestFileStore_DeletePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "progress.json")

	st, _ := NewFileStore(path)
	_ = st.Put(ctx, "malla", "x")
	_ = st.Delete(ctx, "malla")

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if _, err := reopened.Get(ctx, "malla"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound after delete+reopen, got %v", err)
	}
}

func TestFileStore_EmptyFileIsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileStore(path); err != nil {
		t.Errorf("empty file should open cleanly, got %v", err)
	}
}

func TestFileStore_CorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	if err := os.WriteFile(path, []byte("{garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileStore(path); err == nil {
		t.Error("expected decode error for corrupt store file")
	}
}

func TestFileStore_MissingDirectoryFailsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "progress.json")

	st, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	if err := st.Put(context.Background(), "k", "v"); err == nil {
		t.Error("expected write error when directory does not exist")
	}
}

func TestFileStore_FailedWriteKeepsPreviousState(t *testing.T) {
	ctx := context.Background()

	t.Run("put of new key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "progress.json")
		st, err := NewFileStore(path)
		if err != nil {
			t.Fatalf("NewFileStore failed: %v", err)
		}

		if err := st.Put(ctx, "k", `["A"]`); err == nil {
			t.Fatal("expected write error")
		}
		if _, err := st.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get after failed Put: err = %v, want ErrNotFound", err)
		}
	})

	t.Run("put over existing key", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "data")
		if err := os.Mkdir(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		st, err := NewFileStore(filepath.Join(dir, "progress.json"))
		if err != nil {
			t.Fatalf("NewFileStore failed: %v", err)
		}
		if err := st.Put(ctx, "k", `["A"]`); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if err := os.RemoveAll(dir); err != nil {
			t.Fatal(err)
		}

		if err := st.Put(ctx, "k", `["A","B"]`); err == nil {
			t.Fatal("expected write error")
		}
		got, err := st.Get(ctx, "k")
		if err != nil || got != `["A"]` {
			t.Errorf("Get after failed Put = %q, %v; want [\"A\"]", got, err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "data")
		if err := os.Mkdir(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		st, err := NewFileStore(filepath.Join(dir, "progress.json"))
		if err != nil {
			t.Fatalf("NewFileStore failed: %v", err)
		}
		if err := st.Put(ctx, "k", "v"); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if err := os.RemoveAll(dir); err != nil {
			t.Fatal(err)
		}

		if err := st.Delete(ctx, "k"); err == nil {
			t.Fatal("expected write error")
		}
		if got, err := st.Get(ctx, "k"); err != nil || got != "v" {
			t.Errorf("Get after failed Delete = %q, %v; want v", got, err)
		}
	})
}
