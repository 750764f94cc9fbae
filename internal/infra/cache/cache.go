// Package cache persists the last known library snapshot and the session
// token on top of a key-value store.
package cache

import (
	"context"
	"errors"
	"log/slog"

	jsoniter "github.com/json-iterator/go"

	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/ports"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store keys. They match what older installs already have on disk.
const (
	KeyBooks       = "cached_books"
	KeyUsers       = "cached_users"
	KeyLoans       = "cached_loans"
	KeyCurrentUser = "current_user"
	KeyToken       = "auth_token"
)

type Store struct {
	kv      ports.KVStore
	masking bool
	log     *slog.Logger
}

var _ ports.LibraryCache = (*Store)(nil)

type Option func(*Store)

// WithMasking drops user passwords from the persisted copy.
func WithMasking(enabled bool) Option {
	return func(s *Store) { s.masking = enabled }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

func New(kv ports.KVStore, opts ...Option) *Store {
	s := &Store{
		kv:      kv,
		masking: true,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load decodes every key it can. Missing keys give empty lists and a nil
// user; undecodable keys are reported together in the returned error.
func (s *Store) Load(ctx context.Context) (ports.Snapshot, error) {
	snap := ports.Snapshot{
		Books: []domain.Book{},
		Users: []domain.User{},
		Loans: []domain.Loan{},
	}

	var errs []error
	read := func(key string, dst any) {
		if err := s.read(ctx, key, dst); err != nil {
			s.log.Warn("cache.load.failed", "key", key, "error", err)
			errs = append(errs, err)
		}
	}

	read(KeyBooks, &snap.Books)
	read(KeyUsers, &snap.Users)
	read(KeyLoans, &snap.Loans)
	read(KeyCurrentUser, &snap.CurrentUser)

	// A stored JSON null decodes into a nil slice.
	if snap.Books == nil {
		snap.Books = []domain.Book{}
	}
	if snap.Users == nil {
		snap.Users = []domain.User{}
	}
	if snap.Loans == nil {
		snap.Loans = []domain.Loan{}
	}

	return snap, errors.Join(errs...)
}

func (s *Store) read(ctx context.Context, key string, dst any) error {
	b, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return &domain.OpError{Op: "cache.load", Kind: domain.KindExecution, Path: key, Err: err}
	}
	if !ok || len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return &domain.OpError{Op: "cache.load", Kind: domain.KindInvalidResponse, Path: key, Err: err}
	}
	return nil
}

// Save writes books, users, loans and the current user as one batch.
// snap is never modified.
func (s *Store) Save(ctx context.Context, snap ports.Snapshot) error {
	users := snap.Users
	current := snap.CurrentUser
	if s.masking {
		users = maskUsers(users)
		if current != nil {
			u := maskUser(*current)
			current = &u
		}
	}

	entries := map[string][]byte{}
	for key, v := range map[string]any{
		KeyBooks:       orEmpty(snap.Books),
		KeyUsers:       orEmpty(users),
		KeyLoans:       orEmpty(snap.Loans),
		KeyCurrentUser: current,
	} {
		b, err := json.Marshal(v)
		if err != nil {
			return &domain.OpError{Op: "cache.save", Kind: domain.KindExecution, Path: key, Err: err}
		}
		entries[key] = b
	}

	if err := s.kv.Put(ctx, entries); err != nil {
		s.log.Error("cache.save.failed", "error", err)
		return &domain.OpError{Op: "cache.save", Kind: domain.KindExecution, Err: err}
	}
	s.log.Debug("cache.saved",
		"books", len(snap.Books), "users", len(snap.Users), "loans", len(snap.Loans),
		"current_user", current != nil,
	)
	return nil
}

// Token returns the stored session token, or "" when there is none.
func (s *Store) Token(ctx context.Context) (string, error) {
	b, ok, err := s.kv.Get(ctx, KeyToken)
	if err != nil {
		return "", &domain.OpError{Op: "cache.token", Kind: domain.KindExecution, Path: KeyToken, Err: err}
	}
	if !ok {
		return "", nil
	}
	return string(b), nil
}

// SaveToken stores token; an empty token removes it.
func (s *Store) SaveToken(ctx context.Context, token string) error {
	var err error
	if token == "" {
		err = s.kv.Delete(ctx, KeyToken)
	} else {
		err = s.kv.Put(ctx, map[string][]byte{KeyToken: []byte(token)})
	}
	if err != nil {
		return &domain.OpError{Op: "cache.token.save", Kind: domain.KindExecution, Path: KeyToken, Err: err}
	}
	return nil
}

func (s *Store) ClearSession(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeyToken, KeyCurrentUser); err != nil {
		return &domain.OpError{Op: "cache.session.clear", Kind: domain.KindExecution, Err: err}
	}
	return nil
}

// maskUsers returns copies without passwords (does NOT mutate the input).
func maskUsers(in []domain.User) []domain.User {
	if in == nil {
		return nil
	}
	out := make([]domain.User, len(in))
	for i, u := range in {
		out[i] = maskUser(u)
	}
	return out
}

func maskUser(u domain.User) domain.User {
	c := u.Clone()
	c.Password = nil
	return c
}

func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
