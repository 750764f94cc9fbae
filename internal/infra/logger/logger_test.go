package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestSetupWritesJSONLines(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	cleanup, err := Setup(Config{Dir: dir, Debug: true})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}
	if err := IsReady(); err != nil {
		t.Fatalf("expected ready logger: %v", err)
	}
	if Path() != filepath.Join(dir, FileName) {
		t.Fatalf("unexpected path %s", Path())
	}

	L().Debug("books.fetch.failed", "reason", "offline")
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	var msgs []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("expected JSON line, got %q", sc.Text())
		}
		msgs = append(msgs, rec["msg"].(string))
	}
	if len(msgs) != 2 || msgs[0] != "logger.initialized" || msgs[1] != "books.fetch.failed" {
		t.Fatalf("unexpected log records: %v", msgs)
	}
}

func TestCleanupFallsBackToDiscard(t *testing.T) {
	cleanup, err := Setup(Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}
	_ = cleanup()

	if IsReady() == nil {
		t.Fatalf("expected logger to be torn down")
	}
	if Path() != "" || !InitTime().IsZero() {
		t.Fatalf("expected state reset after cleanup")
	}
	L().Info("ignored")
}
