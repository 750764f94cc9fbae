package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aalvaropc/libris/internal/domain"
)

func (c *Client) ListBooks(ctx context.Context) ([]domain.Book, error) {
	var out []domain.Book
	if err := c.do(ctx, "apiclient.books.list", http.MethodGet, "books", nil, &out); err != nil {
		return nil, err
	}
	return orEmpty(out), nil
}

func (c *Client) GetBook(ctx context.Context, id int) (domain.Book, error) {
	var out domain.Book
	err := c.do(ctx, "apiclient.books.get", http.MethodGet, itemPath("books", id), nil, &out)
	return out, err
}

func (c *Client) CreateBook(ctx context.Context, book domain.Book) (domain.Book, error) {
	var out domain.Book
	err := c.do(ctx, "apiclient.books.create", http.MethodPost, "books", book, &out)
	return out, err
}

func (c *Client) UpdateBook(ctx context.Context, id int, book domain.Book) (domain.Book, error) {
	var out domain.Book
	err := c.do(ctx, "apiclient.books.update", http.MethodPut, itemPath("books", id), book, &out)
	return out, err
}

func (c *Client) DeleteBook(ctx context.Context, id int) error {
	return c.do(ctx, "apiclient.books.delete", http.MethodDelete, itemPath("books", id), nil, nil)
}

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := c.do(ctx, "apiclient.users.list", http.MethodGet, "users", nil, &out); err != nil {
		return nil, err
	}
	return orEmpty(out), nil
}

func (c *Client) GetUser(ctx context.Context, id int) (domain.User, error) {
	var out domain.User
	err := c.do(ctx, "apiclient.users.get", http.MethodGet, itemPath("users", id), nil, &out)
	return out, err
}

func (c *Client) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	var out domain.User
	err := c.do(ctx, "apiclient.users.create", http.MethodPost, "users", user, &out)
	return out, err
}

func (c *Client) UpdateUser(ctx context.Context, id int, user domain.User) (domain.User, error) {
	var out domain.User
	err := c.do(ctx, "apiclient.users.update", http.MethodPut, itemPath("users", id), user, &out)
	return out, err
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.do(ctx, "apiclient.users.delete", http.MethodDelete, itemPath("users", id), nil, nil)
}

func (c *Client) ListLoans(ctx context.Context) ([]domain.Loan, error) {
	var out []domain.Loan
	if err := c.do(ctx, "apiclient.loans.list", http.MethodGet, "loans", nil, &out); err != nil {
		return nil, err
	}
	return orEmpty(out), nil
}

func (c *Client) CreateLoan(ctx context.Context, loan domain.Loan) (domain.Loan, error) {
	var out domain.Loan
	err := c.do(ctx, "apiclient.loans.create", http.MethodPost, "loans", loan, &out)
	return out, err
}

func (c *Client) UpdateLoan(ctx context.Context, id int, loan domain.Loan) (domain.Loan, error) {
	var out domain.Loan
	err := c.do(ctx, "apiclient.loans.update", http.MethodPut, itemPath("loans", id), loan, &out)
	return out, err
}

// ReturnLoan closes the loan. Non-string values in the answer are rendered
// as text; a 2xx answer whose body cannot be decoded still counts as returned.
func (c *Client) ReturnLoan(ctx context.Context, id int) (map[string]string, error) {
	var raw map[string]any
	err := c.do(ctx, "apiclient.loans.return", http.MethodDelete, itemPath("loans", id), nil, &raw)
	switch {
	case domain.IsKind(err, domain.KindInvalidResponse):
		c.log.Warn("apiclient.loans.return.body_ignored", "loan_id", id, "error", err)
		return map[string]string{}, nil
	case err != nil:
		return nil, err
	}
	return stringValues(raw), nil
}

func (c *Client) Login(ctx context.Context, creds domain.User) (domain.Token, error) {
	var out domain.Token
	err := c.do(ctx, "apiclient.login", http.MethodPost, "login", creds, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, user domain.User) (domain.Token, error) {
	var out domain.Token
	err := c.do(ctx, "apiclient.register", http.MethodPost, "register", user, &out)
	return out, err
}

func stringValues(in map[string]any) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch t := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = t
		case map[string]any, []any:
			b, err := json.Marshal(t)
			if err != nil {
				out[k] = fmt.Sprint(t)
				continue
			}
			out[k] = string(b)
		default:
			out[k] = fmt.Sprint(t)
		}
	}
	return out
}

func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
