// Package fakeapi is an in-memory library service for integration tests.
// It follows the REST contract the client expects, including the "Invalid credentials" login error.
package fakeapi

import (
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"

	"github.com/aalvaropc/libris/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Route names accepted by Fail.
const (
	RouteListBooks  = "books.list"
	RouteGetBook    = "books.get"
	RouteCreateBook = "books.create"
	RouteUpdateBook = "books.update"
	RouteDeleteBook = "books.delete"
	RouteListUsers  = "users.list"
	RouteGetUser    = "users.get"
	RouteCreateUser = "users.create"
	RouteUpdateUser = "users.update"
	RouteDeleteUser = "users.delete"
	RouteListLoans  = "loans.list"
	RouteCreateLoan = "loans.create"
	RouteUpdateLoan = "loans.update"
	RouteReturnLoan = "loans.return"
	RouteLogin      = "login"
	RouteRegister   = "register"
)

type failure struct {
	status int
	detail string
}

// Server keeps books, users and loans in memory behind a gorilla/mux router.
type Server struct {
	mu sync.Mutex

	books map[int]domain.Book
	users map[int]domain.User
	loans map[int]domain.Loan
	next  int

	tokens   map[string]int
	failures map[string]failure
	hits     map[string]int
	lastAuth string

	router *mux.Router
}

func New() *Server {
	s := &Server{
		books:    map[int]domain.Book{},
		users:    map[int]domain.User{},
		loans:    map[int]domain.Loan{},
		tokens:   map[string]int{},
		failures: map[string]failure{},
		hits:     map[string]int{},
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.observe)

	r.HandleFunc("/books", s.listBooks).Methods("GET").Name(RouteListBooks)
	r.HandleFunc("/books", s.createBook).Methods("POST").Name(RouteCreateBook)
	r.HandleFunc("/books/{id:[0-9]+}", s.getBook).Methods("GET").Name(RouteGetBook)
	r.HandleFunc("/books/{id:[0-9]+}", s.updateBook).Methods("PUT").Name(RouteUpdateBook)
	r.HandleFunc("/books/{id:[0-9]+}", s.deleteBook).Methods("DELETE").Name(RouteDeleteBook)

	r.HandleFunc("/users", s.listUsers).Methods("GET").Name(RouteListUsers)
	r.HandleFunc("/users", s.createUser).Methods("POST").Name(RouteCreateUser)
	r.HandleFunc("/users/{id:[0-9]+}", s.getUser).Methods("GET").Name(RouteGetUser)
	r.HandleFunc("/users/{id:[0-9]+}", s.updateUser).Methods("PUT").Name(RouteUpdateUser)
	r.HandleFunc("/users/{id:[0-9]+}", s.deleteUser).Methods("DELETE").Name(RouteDeleteUser)

	r.HandleFunc("/loans", s.listLoans).Methods("GET").Name(RouteListLoans)
	r.HandleFunc("/loans", s.createLoan).Methods("POST").Name(RouteCreateLoan)
	r.HandleFunc("/loans/{id:[0-9]+}", s.updateLoan).Methods("PUT").Name(RouteUpdateLoan)
	r.HandleFunc("/loans/{id:[0-9]+}", s.returnLoan).Methods("DELETE").Name(RouteReturnLoan)

	r.HandleFunc("/login", s.login).Methods("POST").Name(RouteLogin)
	r.HandleFunc("/register", s.register).Methods("POST").Name(RouteRegister)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// observe records hits and the Authorization header, and serves injected failures.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := ""
		if route := mux.CurrentRoute(r); route != nil {
			name = route.GetName()
		}

		s.mu.Lock()
		s.hits[name]++
		s.lastAuth = r.Header.Get("Authorization")
		f, failing := s.failures[name]
		s.mu.Unlock()

		if failing {
			writeDetail(w, f.status, f.detail)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Fail makes every request to route answer with status and a {"detail": ...} body.
func (s *Server) Fail(route string, status int, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, detail: detail}
}

// Recover removes an injected failure.
func (s *Server) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

// Hits reports how many requests matched route.
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

// LastAuthorization returns the Authorization header of the latest request.
func (s *Server) LastAuthorization() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAuth
}

// PutBooks stores books as-is, keeping their ids.
func (s *Server) PutBooks(books ...domain.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range books {
		s.books[b.ID] = b
		s.bump(b.ID)
	}
}

func (s *Server) PutUsers(users ...domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.users[u.ID] = u.Clone()
		s.bump(u.ID)
	}
}

func (s *Server) PutLoans(loans ...domain.Loan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range loans {
		s.loans[l.ID] = l
		s.bump(l.ID)
	}
}

func (s *Server) Books() []domain.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedBooks(s.books)
}

func (s *Server) Loans() []domain.Loan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedLoans(s.loans)
}

func (s *Server) bump(id int) {
	if id > s.next {
		s.next = id
	}
}

func (s *Server) newID() int {
	s.next++
	return s.next
}

func (s *Server) issueToken(userID int) domain.Token {
	tok := uuid.NewString()
	s.tokens[tok] = userID
	return domain.Token{Token: tok}
}

func pathID(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func sortedBooks(m map[int]domain.Book) []domain.Book {
	out := make([]domain.Book, 0, len(m))
	for _, b := range m {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortedUsers(m map[int]domain.User) []domain.User {
	out := make([]domain.User, 0, len(m))
	for _, u := range m {
		out = append(out, u.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortedLoans(m map[int]domain.Loan) []domain.Loan {
	out := make([]domain.Loan, 0, len(m))
	for _, l := range m {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
