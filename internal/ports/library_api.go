package ports

import (
	"context"

	"github.com/aalvaropc/libris/internal/domain"
)

// LibraryAPI is the REST contract of the library service.
type LibraryAPI interface {
	ListBooks(ctx context.Context) ([]domain.Book, error)
	GetBook(ctx context.Context, id int) (domain.Book, error)
	CreateBook(ctx context.Context, book domain.Book) (domain.Book, error)
	UpdateBook(ctx context.Context, id int, book domain.Book) (domain.Book, error)
	DeleteBook(ctx context.Context, id int) error

	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id int) (domain.User, error)
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
	UpdateUser(ctx context.Context, id int, user domain.User) (domain.User, error)
	DeleteUser(ctx context.Context, id int) error

	ListLoans(ctx context.Context) ([]domain.Loan, error)
	CreateLoan(ctx context.Context, loan domain.Loan) (domain.Loan, error)
	UpdateLoan(ctx context.Context, id int, loan domain.Loan) (domain.Loan, error)
	// ReturnLoan closes a loan; the service answers with a status map.
	ReturnLoan(ctx context.Context, id int) (map[string]string, error)

	Login(ctx context.Context, creds domain.User) (domain.Token, error)
	Register(ctx context.Context, user domain.User) (domain.Token, error)
}

// TokenSource yields the bearer token attached to API requests ("" = none).
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
