package domain

import "time"

// DateLayout is the ISO local date format used for issue and return dates.
const DateLayout = "2006-01-02"

// Loan links a book to a user. A nil ReturnDate means the book is still out.
type Loan struct {
	ID         int     `json:"id"`
	BookID     int     `json:"book_id"`
	UserID     int     `json:"user_id"`
	IssueDate  string  `json:"issue_date"`
	ReturnDate *string `json:"return_date"`
}

// Token is the credential returned by login and register.
type Token struct {
	Token string `json:"token"`
}

// NewLoan builds an open loan issued on the given day.
func NewLoan(bookID, userID int, issued time.Time) Loan {
	return Loan{
		BookID:    bookID,
		UserID:    userID,
		IssueDate: issued.Format(DateLayout),
	}
}

// Active reports whether the book has not been returned yet.
func (l Loan) Active() bool { return l.ReturnDate == nil }

// Returned returns a copy of l closed on the given day.
func (l Loan) Returned(on time.Time) Loan {
	d := on.Format(DateLayout)
	l.ReturnDate = &d
	return l
}

func FindLoan(loans []Loan, id int) (Loan, bool) {
	for _, l := range loans {
		if l.ID == id {
			return l, true
		}
	}
	return Loan{}, false
}

// IsBookTaken reports whether an active loan exists for the book.
func IsBookTaken(loans []Loan, bookID int) bool {
	for _, l := range loans {
		if l.BookID == bookID && l.Active() {
			return true
		}
	}
	return false
}

// ActiveLoansForUser returns the loans the user still has to return.
func ActiveLoansForUser(loans []Loan, userID int) []Loan {
	out := []Loan{}
	for _, l := range loans {
		if l.UserID == userID && l.Active() {
			out = append(out, l)
		}
	}
	return out
}

// LoansForUser returns every loan (open or closed) of the user.
func LoansForUser(loans []Loan, userID int) []Loan {
	out := []Loan{}
	for _, l := range loans {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out
}
