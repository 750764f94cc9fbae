package kvstore

import (
	"fmt"
	"path/filepath"

	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/infra/configfile"
	"github.com/aalvaropc/libris/internal/ports"
)

const (
	defaultFileName   = "cache.json"
	defaultSQLiteName = "cache.db"
)

// Open builds the store selected by cfg.Driver. An empty path resolves to
// the per-user state dir.
func Open(cfg domain.CacheConfig) (ports.KVStore, error) {
	switch cfg.Driver {
	case domain.CacheMemory:
		return NewMemoryStore(), nil

	case domain.CacheSQLite:
		path, err := resolvePath(cfg.Path, defaultSQLiteName)
		if err != nil {
			return nil, err
		}
		return OpenSQLite(path)

	case domain.CacheFile, "":
		path, err := resolvePath(cfg.Path, defaultFileName)
		if err != nil {
			return nil, err
		}
		return NewFileStore(path), nil

	default:
		return nil, &domain.OpError{
			Op:   "kvstore.open",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("unknown cache driver %q: %w", cfg.Driver, domain.ErrInvalidConfig),
		}
	}
}

// Location describes where a store keeps its data, for display.
func Location(s ports.KVStore) string {
	switch st := s.(type) {
	case *FileStore:
		return st.Path()
	case *SQLiteStore:
		return st.Path()
	case *MemoryStore:
		return "(memory)"
	default:
		return ""
	}
}

func resolvePath(path, name string) (string, error) {
	if path != "" {
		return path, nil
	}
	dir, err := configfile.StateDir()
	if err != nil {
		return "", &domain.OpError{Op: "kvstore.open", Kind: domain.KindExecution, Err: err}
	}
	return filepath.Join(dir, name), nil
}
