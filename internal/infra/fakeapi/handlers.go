package fakeapi

import (
	"net/http"
	"time"

	"github.com/aalvaropc/libris/internal/domain"
)

func (s *Server) listBooks(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	out := sortedBooks(s.books)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getBook(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	b, ok := s.books[pathID(r)]
	s.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "Book not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) createBook(w http.ResponseWriter, r *http.Request) {
	var b domain.Book
	if !decode(w, r, &b) {
		return
	}
	s.mu.Lock()
	b.ID = s.newID()
	s.books[b.ID] = b
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) updateBook(w http.ResponseWriter, r *http.Request) {
	var b domain.Book
	if !decode(w, r, &b) {
		return
	}
	id := pathID(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.books[id]; !ok {
		writeDetail(w, http.StatusNotFound, "Book not found")
		return
	}
	b.ID = id
	s.books[id] = b
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) deleteBook(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.books[id]; !ok {
		writeDetail(w, http.StatusNotFound, "Book not found")
		return
	}
	delete(s.books, id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Book deleted"})
}

func (s *Server) listUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	out := sortedUsers(s.users)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	u, ok := s.users[pathID(r)]
	s.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var u domain.User
	if !decode(w, r, &u) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := domain.FindUserByName(sortedUsers(s.users), u.Username); taken {
		writeDetail(w, http.StatusBadRequest, "Username already registered")
		return
	}
	u.ID = s.newID()
	s.users[u.ID] = u.Clone()
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	var u domain.User
	if !decode(w, r, &u) {
		return
	}
	id := pathID(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.users[id]
	if !ok {
		writeDetail(w, http.StatusNotFound, "User not found")
		return
	}
	u.ID = id
	if u.Password == nil {
		u.Password = prev.Password
	}
	s.users[id] = u.Clone()
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		writeDetail(w, http.StatusNotFound, "User not found")
		return
	}
	delete(s.users, id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

func (s *Server) listLoans(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	out := sortedLoans(s.loans)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createLoan(w http.ResponseWriter, r *http.Request) {
	var l domain.Loan
	if !decode(w, r, &l) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.books[l.BookID]
	if !ok {
		writeDetail(w, http.StatusNotFound, "Book not found")
		return
	}
	if !b.Available {
		writeDetail(w, http.StatusBadRequest, "Book is not available")
		return
	}
	l.ID = s.newID()
	s.loans[l.ID] = l
	b.Available = false
	s.books[b.ID] = b
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) updateLoan(w http.ResponseWriter, r *http.Request) {
	var l domain.Loan
	if !decode(w, r, &l) {
		return
	}
	id := pathID(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.loans[id]; !ok {
		writeDetail(w, http.StatusNotFound, "Loan not found")
		return
	}
	l.ID = id
	s.loans[id] = l
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) returnLoan(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.loans[id]
	if !ok {
		writeDetail(w, http.StatusNotFound, "Loan not found")
		return
	}
	if !l.Active() {
		writeDetail(w, http.StatusBadRequest, "Book already returned")
		return
	}
	s.loans[id] = l.Returned(time.Now())
	if b, ok := s.books[l.BookID]; ok {
		b.Available = true
		s.books[b.ID] = b
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Book returned successfully"})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds domain.User
	if !decode(w, r, &creds) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := domain.FindUserByName(sortedUsers(s.users), creds.Username)
	if !ok || u.Password == nil || creds.Password == nil || *u.Password != *creds.Password {
		writeDetail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, s.issueToken(u.ID))
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var u domain.User
	if !decode(w, r, &u) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if u.Username == "" || u.Password == nil {
		writeDetail(w, http.StatusBadRequest, "Username and password are required")
		return
	}
	if _, taken := domain.FindUserByName(sortedUsers(s.users), u.Username); taken {
		writeDetail(w, http.StatusBadRequest, "Username already registered")
		return
	}
	u.ID = s.newID()
	s.users[u.ID] = u.Clone()
	writeJSON(w, http.StatusOK, s.issueToken(u.ID))
}
