package utils

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")

	if err := WriteFileAtomic(path, []byte("hello"), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("unexpected content %q", data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600, got %o", info.Mode().Perm())
	}
}

func TestWriteFileAtomicOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")

	if err := WriteFileAtomic(path, []byte("first"), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("second"), 0600); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("expected second write to win, got %q", data)
	}
}

func TestWriteFileAtomicFailedCommitKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.senv")

	if err := os.WriteFile(path, []byte("prior container"), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	// Fail after the replacement bytes are fully written to the temp file.
	original := commitFile
	commitFile = func(oldpath, newpath string) error {
		return errors.New("simulated crash")
	}
	t.Cleanup(func() { commitFile = original })

	if err := WriteFileAtomic(path, []byte("replacement"), 0600); err == nil {
		t.Fatal("expected the interrupted write to fail")
	}

	// The prior file must survive byte-for-byte.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "prior container" {
		t.Errorf("prior file was damaged: %q", data)
	}

	// And the aborted temp file must be cleaned up.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "backup.senv" {
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
		t.Errorf("expected only the prior file to remain, found %v", names)
	}
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "out.bin")

	if err := WriteFileAtomic(path, []byte("data"), 0600); err == nil {
		t.Fatal("expected error for missing parent directory")
	}

	// No temp file debris may be left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty directory, found %d entries", len(entries))
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	content := bytes.Repeat([]byte{0xab}, 1024)
	if err := os.WriteFile(src, content, 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if err := CopyFile(src, dst, 0600); err != nil {
		t.Fatalf("copy failed: %v", err)
	}

	copied, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !bytes.Equal(copied, content) {
		t.Error("copy is not byte-identical")
	}
}

func TestFormatPaths(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	formatted := FormatPaths([]string{".env", ".env.prod"})
	if !strings.Contains(formatted, ".env") || !strings.Contains(formatted, ".env.prod") {
		t.Errorf("formatted output missing paths: %q", formatted)
	}
	if !strings.HasSuffix(formatted, "\n") {
		t.Error("formatted output should end with a newline")
	}
}
