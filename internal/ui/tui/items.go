package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/list"

	"github.com/aalvaropc/libris/internal/domain"
)

type menuItem struct {
	title  string
	desc   string
	target screen
}

func (m menuItem) Title() string       { return m.title }
func (m menuItem) Description() string { return m.desc }
func (m menuItem) FilterValue() string { return m.title }

type bookItem struct {
	book      domain.Book
	available bool
}

func (b bookItem) Title() string { return b.book.Title }
func (b bookItem) Description() string {
	return fmt.Sprintf("%s · %d · %s", b.book.Author, b.book.PublicationYear, availabilityLabel(b.available))
}

// FilterValue makes the list filter search title and author.
func (b bookItem) FilterValue() string { return b.book.Title + " " + b.book.Author }

type userItem struct {
	user   domain.User
	active int
}

func (u userItem) Title() string { return u.user.Username }
func (u userItem) Description() string {
	return fmt.Sprintf("%s · %d active loan(s)", u.user.Email, u.active)
}
func (u userItem) FilterValue() string { return u.user.Username + " " + u.user.Email }

type loanItem struct {
	loan  domain.Loan
	book  string
	owner string
}

func (l loanItem) Title() string { return l.book }
func (l loanItem) Description() string {
	status := "out since " + l.loan.IssueDate
	if l.loan.ReturnDate != nil {
		status = "returned " + *l.loan.ReturnDate
	}
	return fmt.Sprintf("#%d · %s · %s", l.loan.ID, l.owner, status)
}
func (l loanItem) FilterValue() string { return l.book + " " + l.owner }

func newList(title string, filtering bool) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(filtering)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return l
}

func menuItems() []list.Item {
	return []list.Item{
		menuItem{"Books", "Browse and search the catalogue", screenBooks},
		menuItem{"Users", "Library members", screenUsers},
		menuItem{"Loans", "Every loan, active and returned", screenLoans},
		menuItem{"Issue book", "Lend an available book", screenIssueBook},
		menuItem{"Return book", "Your active loans", screenReturn},
		menuItem{"Profile", "Email and logout", screenProfile},
		menuItem{"Stats", "Catalogue summary", screenStats},
		menuItem{"Settings", "Config, cache and logs", screenSettings},
		menuItem{"Refresh", "Reload everything from the service", screenHome},
		menuItem{"Quit", "Exit libris", screenHome},
	}
}

func bookItems(books []domain.Book, loans []domain.Loan, onlyAvailable bool) []list.Item {
	out := make([]list.Item, 0, len(books))
	for _, b := range books {
		avail := isAvailable(b, loans)
		if onlyAvailable && !avail {
			continue
		}
		out = append(out, bookItem{book: b, available: avail})
	}
	return out
}

func userItems(users []domain.User, loans []domain.Loan) []list.Item {
	out := make([]list.Item, 0, len(users))
	for _, u := range users {
		out = append(out, userItem{user: u, active: len(domain.ActiveLoansForUser(loans, u.ID))})
	}
	return out
}

func loanItems(loans []domain.Loan, books []domain.Book, users []domain.User) []list.Item {
	out := make([]list.Item, 0, len(loans))
	for _, l := range loans {
		title := "Book #" + strconv.Itoa(l.BookID)
		if b, ok := domain.FindBook(books, l.BookID); ok {
			title = b.Title
		}
		owner := "user #" + strconv.Itoa(l.UserID)
		if u, ok := domain.FindUser(users, l.UserID); ok {
			owner = u.Username
		}
		out = append(out, loanItem{loan: l, book: title, owner: owner})
	}
	return out
}
