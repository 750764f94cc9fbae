package configfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aalvaropc/libris/internal/domain"
)

func TestFindConfig_FindsFileFromNestedDir(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "proj")
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	want := filepath.Join(root, FileName)
	if err := os.WriteFile(want, []byte("libris:\n  cache:\n    driver: memory\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	f := &Finder{ConfigFile: FileName}
	got, err := f.FindConfig(nested)
	if err != nil {
		t.Fatalf("FindConfig returned error: %v", err)
	}
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestFindConfig_FallsBackToUserDir(t *testing.T) {
	tmp := t.TempDir()
	userDir := filepath.Join(tmp, "user")
	work := filepath.Join(tmp, "work")
	_ = os.MkdirAll(userDir, 0o755)
	_ = os.MkdirAll(work, 0o755)

	want := filepath.Join(userDir, FileName)
	if err := os.WriteFile(want, []byte("libris: {}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	f := &Finder{ConfigFile: FileName, UserDir: func() (string, error) { return userDir, nil }}
	got, err := f.FindConfig(work)
	if err != nil {
		t.Fatalf("FindConfig returned error: %v", err)
	}
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestFindConfig_NotFound(t *testing.T) {
	tmp := t.TempDir()
	_ = os.MkdirAll(filepath.Join(tmp, "a", "b"), 0o755)

	f := &Finder{
		ConfigFile: FileName,
		UserDir:    func() (string, error) { return "", errors.New("no home") },
	}
	_, err := f.FindConfig(filepath.Join(tmp, "a", "b"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not found kind, got %v", err)
	}
}

func TestFindConfig_EmptyStartDir(t *testing.T) {
	_, err := NewFinder().FindConfig("")
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}
}
