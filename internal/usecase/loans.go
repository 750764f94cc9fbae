package usecase

import (
	"context"
	"fmt"

	"github.com/aalvaropc/libris/internal/domain"
)

const msgNotAvailable = "Not available"

// IssueBook lends a book to a user. Unknown or unavailable books are
// rejected locally without calling the API.
func (l *Library) IssueBook(ctx context.Context, bookID, userID int) (domain.Loan, error) {
	var book domain.Book
	var ok bool
	l.view(func(s State) { book, ok = domain.FindBook(s.Books, bookID) })

	if !ok || !book.Available {
		return domain.Loan{}, l.failWith("loans.issue.rejected", msgNotAvailable, domain.ErrUnavailable)
	}

	created, err := l.api.CreateLoan(ctx, domain.NewLoan(bookID, userID, l.now()))
	if err != nil {
		return domain.Loan{}, l.fail("loans.issue.failed", "Failed to issue book", err)
	}

	l.update(func(s *State) {
		s.Loans = append(s.Loans, created)
		for i := range s.Books {
			if s.Books[i].ID == bookID {
				s.Books[i].Available = false
			}
		}
	})
	l.persist(ctx)
	l.notify("Book issued")
	l.log.Info("loans.issued", "loan_id", created.ID, "book_id", bookID, "user_id", userID)
	return created, nil
}

// ReturnBook closes a loan known locally, marks its book available and
// reloads loans from the API.
func (l *Library) ReturnBook(ctx context.Context, loanID int) error {
	var loan domain.Loan
	var ok bool
	l.view(func(s State) { loan, ok = domain.FindLoan(s.Loans, loanID) })

	if !ok {
		err := fmt.Errorf("loan %d not found: %w", loanID, domain.ErrLoanNotFound)
		return l.failWith("loans.return.failed", fmt.Sprintf("Failed to return book: loan %d not found", loanID), err)
	}

	resp, err := l.api.ReturnLoan(ctx, loanID)
	if err != nil {
		return l.fail("loans.return.failed", "Failed to return book", err)
	}
	l.log.Debug("loans.return.response", "loan_id", loanID, "response", resp)

	day := l.now()
	l.update(func(s *State) {
		for i := range s.Loans {
			if s.Loans[i].ID == loanID {
				s.Loans[i] = s.Loans[i].Returned(day)
			}
		}
		for i := range s.Books {
			if s.Books[i].ID == loan.BookID {
				s.Books[i].Available = true
			}
		}
	})
	l.persist(ctx)
	l.notify("Book returned")

	// The return already happened; a failed refresh only leaves the list stale.
	if err := l.FetchLoans(ctx); err != nil {
		l.log.Warn("loans.return.refresh.failed", "loan_id", loanID, "error", err)
	}
	return nil
}
