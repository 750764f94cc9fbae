package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/aalvaropc/libris/internal/domain"
)

const (
	formatPretty = "pretty"
	formatJSON   = "json"
)

func addFormatFlag(cmd *cobra.Command, format *string) {
	cmd.Flags().StringVar(format, "format", formatPretty, "Output format: pretty|json")
}

func checkFormat(format string) error {
	switch format {
	case formatPretty, formatJSON, "":
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderTable(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(w, t.Render())
}

func printBooks(w io.Writer, books []domain.Book, loans []domain.Loan, format string) error {
	if format == formatJSON {
		return printJSON(w, books)
	}
	rows := make([][]string, 0, len(books))
	for _, b := range books {
		rows = append(rows, []string{
			strconv.Itoa(b.ID), b.Title, b.Author, strconv.Itoa(b.PublicationYear), b.ISBN,
			availability(b, loans),
		})
	}
	renderTable(w, []string{"ID", "TITLE", "AUTHOR", "YEAR", "ISBN", "STATUS"}, rows)
	return nil
}

func printBook(w io.Writer, b domain.Book, loans []domain.Loan, format string) error {
	if format == formatJSON {
		return printJSON(w, b)
	}
	fmt.Fprintf(w, "ID:       %d\n", b.ID)
	fmt.Fprintf(w, "Title:    %s\n", b.Title)
	fmt.Fprintf(w, "Author:   %s\n", b.Author)
	fmt.Fprintf(w, "Year:     %d\n", b.PublicationYear)
	fmt.Fprintf(w, "ISBN:     %s\n", b.ISBN)
	fmt.Fprintf(w, "Status:   %s\n", availability(b, loans))
	if b.Description != nil && *b.Description != "" {
		fmt.Fprintf(w, "\n%s\n", *b.Description)
	}
	return nil
}

// availability prefers loan data: a book with an open loan is taken even if
// the catalogue flag lags behind.
func availability(b domain.Book, loans []domain.Loan) string {
	if domain.IsBookTaken(loans, b.ID) || !b.Available {
		return "taken"
	}
	return "available"
}

func printUsers(w io.Writer, users []domain.User, format string) error {
	if format == formatJSON {
		return printJSON(w, publicUsers(users))
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{strconv.Itoa(u.ID), u.Username, u.Email, deref(u.Phone)})
	}
	renderTable(w, []string{"ID", "USERNAME", "EMAIL", "PHONE"}, rows)
	return nil
}

func printUser(w io.Writer, u domain.User, loans []domain.Loan, format string) error {
	if format == formatJSON {
		return printJSON(w, publicUsers([]domain.User{u})[0])
	}
	fmt.Fprintf(w, "ID:       %d\n", u.ID)
	fmt.Fprintf(w, "Username: %s\n", u.Username)
	fmt.Fprintf(w, "Email:    %s\n", u.Email)
	if u.Phone != nil {
		fmt.Fprintf(w, "Phone:    %s\n", *u.Phone)
	}
	active := domain.ActiveLoansForUser(loans, u.ID)
	fmt.Fprintf(w, "Loans:    %d active / %d total\n", len(active), len(domain.LoansForUser(loans, u.ID)))
	return nil
}

// publicUsers never prints passwords.
func publicUsers(users []domain.User) []domain.User {
	out := make([]domain.User, len(users))
	for i, u := range users {
		c := u.Clone()
		c.Password = nil
		out[i] = c
	}
	return out
}

func printLoans(w io.Writer, loans []domain.Loan, books []domain.Book, users []domain.User, format string) error {
	if format == formatJSON {
		return printJSON(w, loans)
	}
	rows := make([][]string, 0, len(loans))
	for _, l := range loans {
		title := "#" + strconv.Itoa(l.BookID)
		if b, ok := domain.FindBook(books, l.BookID); ok {
			title = b.Title
		}
		who := "#" + strconv.Itoa(l.UserID)
		if u, ok := domain.FindUser(users, l.UserID); ok {
			who = u.Username
		}
		returned := "-"
		if l.ReturnDate != nil {
			returned = *l.ReturnDate
		}
		rows = append(rows, []string{strconv.Itoa(l.ID), title, who, l.IssueDate, returned})
	}
	renderTable(w, []string{"ID", "BOOK", "USER", "ISSUED", "RETURNED"}, rows)
	return nil
}

func printStats(w io.Writer, s domain.Stats, format string) error {
	if format == formatJSON {
		return printJSON(w, s)
	}
	fmt.Fprintf(w, "Books:        %d (%d available)\n", s.TotalBooks, s.AvailableBooks)
	fmt.Fprintf(w, "Users:        %d\n", s.TotalUsers)
	fmt.Fprintf(w, "Loans:        %d (%d active)\n", s.TotalLoans, s.ActiveLoans)
	return nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func parseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, arg)
	}
	return id, nil
}
