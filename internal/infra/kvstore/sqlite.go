package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/ports"
)

const schema = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
)`

// SQLiteStore keeps keys in a single sqlite table.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

var _ ports.KVStore = (*SQLiteStore)(nil)

// OpenSQLite opens (and creates if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, &domain.OpError{
				Op:   "kvstore.sqlite.mkdir",
				Kind: domain.KindExecution,
				Path: dir,
				Err:  err,
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &domain.OpError{Op: "kvstore.sqlite.open", Kind: domain.KindExecution, Path: path, Err: err}
	}
	// One writer; also keeps ":memory:" on a single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, &domain.OpError{Op: "kvstore.sqlite.migrate", Kind: domain.KindExecution, Path: path, Err: err}
	}
	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var v []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &domain.OpError{Op: "kvstore.sqlite.get", Kind: domain.KindExecution, Path: key, Err: err}
	}
	return v, true, nil
}

func (s *SQLiteStore) Put(ctx context.Context, entries map[string][]byte) error {
	return s.inTx(ctx, "kvstore.sqlite.put", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO kv (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for k, v := range entries {
			if v == nil {
				v = []byte{}
			}
			if _, err := stmt.ExecContext(ctx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Delete(ctx context.Context, keys ...string) error {
	return s.inTx(ctx, "kvstore.sqlite.delete", func(tx *sql.Tx) error {
		for _, k := range keys {
			if _, err := tx.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) inTx(ctx context.Context, op string, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &domain.OpError{Op: op, Kind: domain.KindExecution, Path: s.path, Err: err}
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return &domain.OpError{Op: op, Kind: domain.KindExecution, Path: s.path, Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &domain.OpError{Op: op, Kind: domain.KindExecution, Path: s.path, Err: err}
	}
	return nil
}
