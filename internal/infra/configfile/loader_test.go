package configfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aalvaropc/libris/internal/domain"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "libris:\n  cache:\n    masking: false\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Cache.Masking {
		t.Fatalf("expected masking=false")
	}
	if cfg.Cache.Driver != domain.CacheFile {
		t.Fatalf("expected default driver=file, got=%s", cfg.Cache.Driver)
	}
	if cfg.API.BaseURL != "http://localhost:8000/" {
		t.Fatalf("expected default base url, got=%s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Fatalf("expected default timeout, got=%s", cfg.API.Timeout)
	}
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `libris:
  api:
    base_url: https://library.example.com/api/
    timeout: 5s
    rate_limit: 2.5
    burst: 3
  cache:
    driver: SQLite
    path: /tmp/libris.db
  log:
    debug: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.API.BaseURL != "https://library.example.com/api/" || cfg.API.Timeout != 5*time.Second {
		t.Fatalf("unexpected api config: %+v", cfg.API)
	}
	if cfg.API.RateLimit != 2.5 || cfg.API.Burst != 3 {
		t.Fatalf("unexpected rate limit: %+v", cfg.API)
	}
	if cfg.Cache.Driver != domain.CacheSQLite || cfg.Cache.Path != "/tmp/libris.db" || !cfg.Cache.Masking {
		t.Fatalf("unexpected cache config: %+v", cfg.Cache)
	}
	if !cfg.Log.Debug {
		t.Fatalf("expected debug logging")
	}
}

func TestLoad_InvalidFields(t *testing.T) {
	cases := map[string]string{
		"api.base_url": "libris:\n  api:\n    base_url: ftp://x\n",
		"api.timeout":  "libris:\n  api:\n    timeout: soon\n",
		"api.burst":    "libris:\n  api:\n    burst: 0\n",
		"cache.driver": "libris:\n  cache:\n    driver: redis\n",
	}
	for field, content := range cases {
		path := writeConfig(t, t.TempDir(), content)
		_, err := Load(path)
		if !domain.IsKind(err, domain.KindInvalidConfig) {
			t.Fatalf("%s: expected invalid config, got %v", field, err)
		}
		if !strings.Contains(err.Error(), field) {
			t.Fatalf("%s: expected field name in error, got %v", field, err)
		}
	}
}

func TestLoad_BrokenYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "libris: [\n")
	if _, err := Load(path); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}
}

type stubLocator struct {
	path string
	err  error
}

func (s stubLocator) FindConfig(string) (string, error) { return s.path, s.err }

func TestResolve_Order(t *testing.T) {
	dir := t.TempDir()
	explicit := writeConfig(t, dir, "libris:\n  api:\n    base_url: http://explicit:1/\n")

	res, err := Resolve(explicit, dir, stubLocator{err: &domain.OpError{Kind: domain.KindNotFound}})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if res.Path != explicit || res.Config.API.BaseURL != "http://explicit:1/" {
		t.Fatalf("expected explicit file to win, got %+v", res)
	}

	res, err = Resolve("", dir, stubLocator{err: &domain.OpError{Kind: domain.KindNotFound}})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if res.Path != "" || res.Config.API.BaseURL != domain.DefaultConfig().API.BaseURL {
		t.Fatalf("expected defaults, got %+v", res)
	}

	res, err = Resolve("", dir, stubLocator{path: explicit})
	if err != nil || res.Path != explicit {
		t.Fatalf("expected located file, got %+v (%v)", res, err)
	}
}

func TestResolve_EnvOverride(t *testing.T) {
	t.Setenv(EnvBaseURL, "https://env.example.com/")

	res, err := Resolve("", t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if res.Config.API.BaseURL != "https://env.example.com/" {
		t.Fatalf("expected env override, got %s", res.Config.API.BaseURL)
	}

	t.Setenv(EnvBaseURL, "nope")
	if _, err := Resolve("", t.TempDir(), nil); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid env override, got %v", err)
	}
}

func TestStateDirHonoursXDG(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/xdg-state")
	dir, err := StateDir()
	if err != nil {
		t.Fatalf("StateDir error: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-state", "libris") {
		t.Fatalf("unexpected state dir %s", dir)
	}
}
