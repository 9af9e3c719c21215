package fsutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func noTemps(t *testing.T, dir, name string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "."+name+".tmp-") {
			t.Fatalf("temp file left behind: %q", e.Name())
		}
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()

	for _, content := range []string{"first", "second"} {
		if err := WriteFileAtomic(dir, "a.jpg", []byte(content)); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}
		got, err := os.ReadFile(filepath.Join(dir, "a.jpg"))
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != content {
			t.Errorf("content = %q, want %q", got, content)
		}
	}
	noTemps(t, dir, "a.jpg")
}

func TestWriteFileAtomicCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Contact-Sheets")
	if err := WriteFileAtomic(dir, "a.jpg", []byte("x")); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.jpg")); err != nil {
		t.Errorf("file not written: %v", err)
	}
}

func TestWriteFileAtomicRenameFailure(t *testing.T) {
	dir := t.TempDir()

	old := renameFunc
	renameFunc = func(string, string) error { return os.ErrPermission }
	defer func() { renameFunc = old }()

	if err := WriteFileAtomic(dir, "a.jpg", []byte("x")); err == nil {
		t.Fatal("WriteFileAtomic() should fail when rename fails")
	}
	noTemps(t, dir, "a.jpg")
	if _, err := os.Stat(filepath.Join(dir, "a.jpg")); !os.IsNotExist(err) {
		t.Errorf("final file should not exist, stat err = %v", err)
	}
}

func TestMoveReplace(t *testing.T) {
	tests := []struct {
		name     string
		existing bool
	}{
		{"fresh destination", false},
		{"overwrite destination", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, "a.jpg")
			dst := filepath.Join(dir, "old", "a.jpg")
			if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(src, []byte("new"), 0o644); err != nil {
				t.Fatal(err)
			}
			if tt.existing {
				if err := os.WriteFile(dst, []byte("stale"), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			if err := MoveReplace(src, dst); err != nil {
				t.Fatalf("MoveReplace() error = %v", err)
			}
			got, err := os.ReadFile(dst)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != "new" {
				t.Errorf("destination = %q, want %q", got, "new")
			}
			if _, err := os.Stat(src); !os.IsNotExist(err) {
				t.Errorf("source still exists")
			}
		})
	}
}

func TestMoveReplaceDirectoryDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	dst := filepath.Join(dir, "b")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(dst, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := MoveReplace(src, dst); err == nil {
		t.Error("MoveReplace() onto a directory should fail")
	}
}
