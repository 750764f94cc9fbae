package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/ports"
)

// Init loads the cached snapshot into state and then refreshes from the API.
func (l *Library) Init(ctx context.Context) error {
	l.Restore(ctx)
	return l.RefreshData(ctx)
}

// Restore loads the cached snapshot into state without touching the API.
func (l *Library) Restore(ctx context.Context) {
	snap := l.loadCache(ctx)
	l.update(func(s *State) {
		s.Books = snap.Books
		s.Users = snap.Users
		s.Loans = snap.Loans
		s.CurrentUser = snap.CurrentUser
	})
	l.log.Info("library.cache.loaded",
		"books", len(snap.Books), "users", len(snap.Users), "loans", len(snap.Loans),
		"current_user", snap.CurrentUser != nil,
	)
}

// RefreshData fetches books, users and loans concurrently. Each applies its
// own fallback, so one failing collection does not stop the others.
func (l *Library) RefreshData(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return l.FetchBooks(ctx) })
	g.Go(func() error { return l.FetchUsers(ctx) })
	g.Go(func() error { return l.FetchLoans(ctx) })
	return g.Wait()
}

func (l *Library) FetchBooks(ctx context.Context) error {
	books, err := l.api.ListBooks(ctx)

	var failure error
	if err != nil {
		failure = l.fail("books.fetch.failed", "Failed to load books", err)
		books = l.loadCache(ctx).Books
	}
	if len(books) == 0 {
		books = domain.SeedBooks()
		l.log.Info("books.seeded", "count", len(books))
	}

	l.update(func(s *State) { s.Books = books })
	l.persist(ctx)
	return failure
}

func (l *Library) FetchUsers(ctx context.Context) error {
	users, err := l.api.ListUsers(ctx)

	var failure error
	if err != nil {
		failure = l.fail("users.fetch.failed", "Failed to load users", err)
		users = l.loadCache(ctx).Users
	}
	if len(users) == 0 {
		users = domain.SeedUsers()
		l.log.Info("users.seeded", "count", len(users))
	}

	l.update(func(s *State) { s.Users = users })
	l.persist(ctx)
	return failure
}

// FetchLoans has no seed data: on failure the cached loans (possibly none) are used.
func (l *Library) FetchLoans(ctx context.Context) error {
	loans, err := l.api.ListLoans(ctx)
	if err != nil {
		failure := l.fail("loans.fetch.failed", "Failed to load loans", err)
		cached := l.loadCache(ctx).Loans
		l.update(func(s *State) { s.Loans = cached })
		return failure
	}

	if loans == nil {
		loans = []domain.Loan{}
	}
	l.update(func(s *State) { s.Loans = loans })
	l.persist(ctx)
	return nil
}

func (l *Library) loadCache(ctx context.Context) ports.Snapshot {
	snap, err := l.cache.Load(ctx)
	if err != nil {
		// Load still returns every key it could decode.
		l.log.Warn("cache.load.partial", "error", err)
	}
	return snap
}
