package tui

import (
	"strings"
	"testing"

	"github.com/aalvaropc/libris/internal/domain"
)

func TestClampString(t *testing.T) {
	if got := clampString("héllo", 10); got != "héllo" {
		t.Fatalf("expected untouched string, got %q", got)
	}
	if got := clampString("héllo wörld", 5); got != "héllo…" {
		t.Fatalf("expected rune-aware clamp, got %q", got)
	}
	if got := clampString("abc", 0); got != "" {
		t.Fatalf("expected empty string for zero width, got %q", got)
	}
}

func TestBookDetailHonoursActiveLoans(t *testing.T) {
	b := domain.SeedBooks()[0]
	th := DefaultTheme()

	free := renderBookDetail(th, b, nil, 80)
	if !strings.Contains(free, "Available") {
		t.Fatalf("expected available book, got:\n%s", free)
	}

	loans := []domain.Loan{{ID: 1, BookID: b.ID, UserID: 1, IssueDate: "2024-05-17"}}
	taken := renderBookDetail(th, b, loans, 80)
	if !strings.Contains(taken, "Taken") {
		t.Fatalf("expected open loan to mark the book taken, got:\n%s", taken)
	}
	if !strings.Contains(taken, "American dream") {
		t.Fatalf("expected description in detail view")
	}
}

func TestUserDetailListsActiveLoans(t *testing.T) {
	u := domain.SeedUsers()[0]
	returned := "2024-05-20"
	loans := []domain.Loan{
		{ID: 1, BookID: 2, UserID: u.ID, IssueDate: "2024-05-17"},
		{ID: 2, BookID: 1, UserID: u.ID, IssueDate: "2024-05-01", ReturnDate: &returned},
	}

	out := renderUserDetail(DefaultTheme(), u, loans, domain.SeedBooks())
	if !strings.Contains(out, "1984 (since 2024-05-17)") {
		t.Fatalf("expected active loan listed, got:\n%s", out)
	}
	if strings.Contains(out, "Gatsby") {
		t.Fatalf("returned loans must not be listed")
	}
	if strings.Contains(out, "password123") {
		t.Fatalf("password must never be rendered")
	}
}

func TestSettingsShowsCacheAndLog(t *testing.T) {
	d := Deps{Config: domain.DefaultConfig(), CacheAt: "/tmp/cache.json", LogPath: "/tmp/libris.log"}
	out := renderSettings(DefaultTheme(), d)

	for _, want := range []string{"(defaults)", "http://localhost:8000/", "file at /tmp/cache.json", "/tmp/libris.log"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in settings, got:\n%s", want, out)
		}
	}
}
