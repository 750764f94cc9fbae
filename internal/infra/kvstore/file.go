package kvstore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/ports"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FileStore keeps every key in one JSON object on disk. The file is read
// on first use and rewritten whole on every change.
type FileStore struct {
	path string

	mu     sync.Mutex
	loaded bool
	data   map[string]string
}

var _ ports.KVStore = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, false, err
	}
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

func (s *FileStore) Put(_ context.Context, entries map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A corrupt file is replaced rather than blocking every later write.
	if err := s.load(); err != nil && !domain.IsKind(err, domain.KindInvalidResponse) {
		return err
	}

	next := cloneData(s.data)
	for k, v := range entries {
		next[k] = string(v)
	}
	if err := s.flush(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

func (s *FileStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil && !domain.IsKind(err, domain.KindInvalidResponse) {
		return err
	}

	next := cloneData(s.data)
	for _, k := range keys {
		delete(next, k)
	}
	if err := s.flush(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) load() error {
	if s.loaded {
		return nil
	}

	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.data = map[string]string{}
		s.loaded = true
		return nil
	}
	if err != nil {
		return &domain.OpError{
			Op:   "kvstore.file.read",
			Kind: domain.KindExecution,
			Path: s.path,
			Err:  err,
		}
	}

	data := map[string]string{}
	if len(b) > 0 {
		if err := json.Unmarshal(b, &data); err != nil {
			s.data = map[string]string{}
			return &domain.OpError{
				Op:   "kvstore.file.decode",
				Kind: domain.KindInvalidResponse,
				Path: s.path,
				Err:  err,
			}
		}
	}
	s.data = data
	s.loaded = true
	return nil
}

func (s *FileStore) flush(data map[string]string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return &domain.OpError{
			Op:   "kvstore.file.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return &domain.OpError{
			Op:   "kvstore.file.marshal",
			Kind: domain.KindExecution,
			Path: s.path,
			Err:  err,
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return &domain.OpError{
			Op:   "kvstore.file.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "kvstore.file.rename",
			Kind: domain.KindExecution,
			Path: s.path,
			Err:  err,
		}
	}
	s.loaded = true
	return nil
}

func cloneData(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
