package usecase

import "github.com/aalvaropc/libris/internal/domain"

func (l *Library) Book(id int) (domain.Book, bool) {
	var b domain.Book
	var ok bool
	l.view(func(s State) { b, ok = domain.FindBook(s.Books, id) })
	return b, ok
}

func (l *Library) User(id int) (domain.User, bool) {
	var u domain.User
	var ok bool
	l.view(func(s State) { u, ok = domain.FindUser(s.Users, id) })
	return u.Clone(), ok
}

func (l *Library) SearchBooks(query string) []domain.Book {
	var out []domain.Book
	l.view(func(s State) { out = domain.SearchBooks(s.Books, query) })
	return out
}

// LoansForCurrentUser returns the active loans of the logged-in user.
func (l *Library) LoansForCurrentUser() []domain.Loan {
	out := []domain.Loan{}
	l.view(func(s State) {
		if s.CurrentUser != nil {
			out = domain.ActiveLoansForUser(s.Loans, s.CurrentUser.ID)
		}
	})
	return out
}

func (l *Library) Stats() domain.Stats {
	var st domain.Stats
	l.view(func(s State) { st = domain.ComputeStats(s.Books, s.Users, s.Loans) })
	return st
}

func (l *Library) IsBookTaken(bookID int) bool {
	var taken bool
	l.view(func(s State) { taken = domain.IsBookTaken(s.Loans, bookID) })
	return taken
}
