package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSeedBooksAreFreshCopies(t *testing.T) {
	a := SeedBooks()
	a[0].Title = "changed"

	b := SeedBooks()
	if b[0].Title != "The Great Gatsby" {
		t.Fatalf("expected seed data to be immutable, got %q", b[0].Title)
	}
	if len(b) != 2 || b[1].ISBN != "978-0451524935" {
		t.Fatalf("unexpected seed books: %+v", b)
	}
}

func TestSeedUsers(t *testing.T) {
	users := SeedUsers()
	if len(users) != 2 {
		t.Fatalf("expected 2 seed users, got %d", len(users))
	}
	if users[0].Username != "john_doe" || users[1].Username != "jane_smith" {
		t.Fatalf("unexpected seed users: %+v", users)
	}
}

func TestSearchBooks(t *testing.T) {
	books := SeedBooks()

	cases := []struct {
		query string
		want  int
	}{
		{"", 2},
		{"   ", 2},
		{"gatsby", 1},
		{"ORWELL", 1},
		{"tolkien", 0},
	}
	for _, c := range cases {
		if got := SearchBooks(books, c.query); len(got) != c.want {
			t.Errorf("SearchBooks(%q) = %d books, want %d", c.query, len(got), c.want)
		}
	}
}

func TestIsBookTakenAndActiveLoans(t *testing.T) {
	returned := "2024-01-10"
	loans := []Loan{
		{ID: 1, BookID: 1, UserID: 7, IssueDate: "2024-01-01", ReturnDate: &returned},
		{ID: 2, BookID: 2, UserID: 7, IssueDate: "2024-01-02"},
		{ID: 3, BookID: 3, UserID: 8, IssueDate: "2024-01-03"},
	}

	if IsBookTaken(loans, 1) {
		t.Fatalf("expected returned book to be free")
	}
	if !IsBookTaken(loans, 2) {
		t.Fatalf("expected book 2 to be taken")
	}

	active := ActiveLoansForUser(loans, 7)
	if len(active) != 1 || active[0].ID != 2 {
		t.Fatalf("expected only loan 2 active for user 7, got %+v", active)
	}
	if all := LoansForUser(loans, 7); len(all) != 2 {
		t.Fatalf("expected 2 loans for user 7, got %d", len(all))
	}
}

func TestLoanReturnedDoesNotMutate(t *testing.T) {
	day := time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC)
	l := NewLoan(4, 9, day)
	if l.IssueDate != "2024-03-05" || !l.Active() {
		t.Fatalf("unexpected new loan: %+v", l)
	}

	closed := l.Returned(day.AddDate(0, 0, 3))
	if closed.ReturnDate == nil || *closed.ReturnDate != "2024-03-08" {
		t.Fatalf("expected return date 2024-03-08, got %v", closed.ReturnDate)
	}
	if !l.Active() {
		t.Fatalf("expected original loan untouched")
	}
}

func TestLoanJSONNames(t *testing.T) {
	b, err := json.Marshal(Loan{ID: 1, BookID: 2, UserID: 3, IssueDate: "2024-01-01"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":1,"book_id":2,"user_id":3,"issue_date":"2024-01-01","return_date":null}`
	if string(b) != want {
		t.Fatalf("expected %s, got %s", want, b)
	}
}

func TestComputeStats(t *testing.T) {
	books := SeedBooks()
	books[1].Available = false
	s := ComputeStats(books, SeedUsers(), []Loan{{ID: 1, BookID: 2}})

	if s.TotalBooks != 2 || s.AvailableBooks != 1 || s.TotalUsers != 2 || s.ActiveLoans != 1 {
		t.Fatalf("unexpected stats: %+v", s)
	}
}

func TestUserCloneDetachesPointers(t *testing.T) {
	u := SeedUsers()[0]
	c := u.Clone()
	*c.Password = "other"
	if *u.Password != "password123" {
		t.Fatalf("expected clone to not share password pointer")
	}
}

func TestLoginStates(t *testing.T) {
	if IdleLogin().Status != LoginIdle || LoadingLogin().Status != LoginLoading || SuccessLogin().Status != LoginSuccess {
		t.Fatalf("unexpected constructor statuses")
	}
	st := FailedLogin("Invalid credentials")
	if st.Status != LoginError || st.Message != "Invalid credentials" {
		t.Fatalf("unexpected failed state: %+v", st)
	}
}
