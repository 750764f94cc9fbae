package ports

import (
	"context"

	"github.com/aalvaropc/libris/internal/domain"
)

// Snapshot is the last-known state persisted between sessions.
type Snapshot struct {
	Books       []domain.Book
	Users       []domain.User
	Loans       []domain.Loan
	CurrentUser *domain.User
}

// LibraryCache persists the library snapshot and the session token.
type LibraryCache interface {
	TokenSource

	// Load returns whatever could be decoded; err reports the keys that could not.
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
	SaveToken(ctx context.Context, token string) error
	// ClearSession forgets the token and the current user.
	ClearSession(ctx context.Context) error
}
