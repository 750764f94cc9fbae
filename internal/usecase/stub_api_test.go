package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/infra/cache"
	"github.com/aalvaropc/libris/internal/infra/kvstore"
	"github.com/aalvaropc/libris/internal/ports"
)

var errOffline = errors.New("dial tcp: connection refused")

// stubAPI is a hand-written ports.LibraryAPI with per-call overrides.
type stubAPI struct {
	mu sync.Mutex

	books []domain.Book
	users []domain.User
	loans []domain.Loan
	token string

	errs  map[string]error
	calls map[string]int

	createdLoan domain.Loan
}

var _ ports.LibraryAPI = (*stubAPI)(nil)

func newStubAPI() *stubAPI {
	return &stubAPI{
		books: []domain.Book{},
		users: []domain.User{},
		loans: []domain.Loan{},
		token: "tok",
		errs:  map[string]error{},
		calls: map[string]int{},
	}
}

func (s *stubAPI) fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[op] = err
}

func (s *stubAPI) count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *stubAPI) hit(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[op]++
	return s.errs[op]
}

func (s *stubAPI) ListBooks(context.Context) ([]domain.Book, error) {
	if err := s.hit("ListBooks"); err != nil {
		return nil, err
	}
	return append([]domain.Book{}, s.books...), nil
}

func (s *stubAPI) GetBook(_ context.Context, id int) (domain.Book, error) {
	if err := s.hit("GetBook"); err != nil {
		return domain.Book{}, err
	}
	b, _ := domain.FindBook(s.books, id)
	return b, nil
}

func (s *stubAPI) CreateBook(_ context.Context, b domain.Book) (domain.Book, error) {
	if err := s.hit("CreateBook"); err != nil {
		return domain.Book{}, err
	}
	b.ID = 100
	return b, nil
}

func (s *stubAPI) UpdateBook(_ context.Context, id int, b domain.Book) (domain.Book, error) {
	if err := s.hit("UpdateBook"); err != nil {
		return domain.Book{}, err
	}
	b.ID = id
	return b, nil
}

func (s *stubAPI) DeleteBook(context.Context, int) error { return s.hit("DeleteBook") }

func (s *stubAPI) ListUsers(context.Context) ([]domain.User, error) {
	if err := s.hit("ListUsers"); err != nil {
		return nil, err
	}
	return append([]domain.User{}, s.users...), nil
}

func (s *stubAPI) GetUser(_ context.Context, id int) (domain.User, error) {
	if err := s.hit("GetUser"); err != nil {
		return domain.User{}, err
	}
	u, _ := domain.FindUser(s.users, id)
	return u, nil
}

func (s *stubAPI) CreateUser(_ context.Context, u domain.User) (domain.User, error) {
	if err := s.hit("CreateUser"); err != nil {
		return domain.User{}, err
	}
	u.ID = 200
	return u, nil
}

func (s *stubAPI) UpdateUser(_ context.Context, id int, u domain.User) (domain.User, error) {
	if err := s.hit("UpdateUser"); err != nil {
		return domain.User{}, err
	}
	u.ID = id
	return u, nil
}

func (s *stubAPI) DeleteUser(context.Context, int) error { return s.hit("DeleteUser") }

func (s *stubAPI) ListLoans(context.Context) ([]domain.Loan, error) {
	if err := s.hit("ListLoans"); err != nil {
		return nil, err
	}
	return append([]domain.Loan{}, s.loans...), nil
}

func (s *stubAPI) CreateLoan(_ context.Context, l domain.Loan) (domain.Loan, error) {
	if err := s.hit("CreateLoan"); err != nil {
		return domain.Loan{}, err
	}
	l.ID = 300
	s.mu.Lock()
	s.createdLoan = l
	s.mu.Unlock()
	return l, nil
}

func (s *stubAPI) UpdateLoan(_ context.Context, id int, l domain.Loan) (domain.Loan, error) {
	if err := s.hit("UpdateLoan"); err != nil {
		return domain.Loan{}, err
	}
	l.ID = id
	return l, nil
}

func (s *stubAPI) ReturnLoan(context.Context, int) (map[string]string, error) {
	if err := s.hit("ReturnLoan"); err != nil {
		return nil, err
	}
	return map[string]string{"message": "ok"}, nil
}

func (s *stubAPI) Login(context.Context, domain.User) (domain.Token, error) {
	if err := s.hit("Login"); err != nil {
		return domain.Token{}, err
	}
	return domain.Token{Token: s.token}, nil
}

func (s *stubAPI) Register(context.Context, domain.User) (domain.Token, error) {
	if err := s.hit("Register"); err != nil {
		return domain.Token{}, err
	}
	return domain.Token{Token: s.token}, nil
}

var fixedDay = time.Date(2024, 5, 17, 10, 0, 0, 0, time.UTC)

func newTestLibrary(api ports.LibraryAPI) (*Library, *cache.Store, *kvstore.MemoryStore) {
	kv := kvstore.NewMemoryStore()
	c := cache.New(kv, cache.WithMasking(false))
	lib := NewLibrary(api, c, WithClock(func() time.Time { return fixedDay }))
	return lib, c, kv
}

func strPtr(s string) *string { return &s }
