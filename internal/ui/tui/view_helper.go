package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aalvaropc/libris/internal/buildinfo"
	"github.com/aalvaropc/libris/internal/domain"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// isAvailable trusts an open loan over the catalogue flag.
func isAvailable(b domain.Book, loans []domain.Loan) bool {
	return b.Available && !domain.IsBookTaken(loans, b.ID)
}

func availabilityLabel(available bool) string {
	if available {
		return "Available"
	}
	return "Taken"
}

func renderBookDetail(t Theme, b domain.Book, loans []domain.Loan, width int) string {
	var sb strings.Builder
	sb.WriteString(t.Title.Render(b.Title))
	sb.WriteString("\n")
	sb.WriteString(t.Subtitle.Render(b.Author))
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "Year:   %d\n", b.PublicationYear)
	fmt.Fprintf(&sb, "ISBN:   %s\n", b.ISBN)
	if isAvailable(b, loans) {
		sb.WriteString("Status: " + t.Available.Render(availabilityLabel(true)) + "\n")
	} else {
		sb.WriteString("Status: " + t.Taken.Render(availabilityLabel(false)) + "\n")
	}
	if b.ImageURL != nil {
		sb.WriteString("Cover:  " + clampString(*b.ImageURL, max(width-12, 20)) + "\n")
	}
	if d := deref(b.Description); d != "" {
		sb.WriteString("\n")
		sb.WriteString(d)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderUserDetail(t Theme, u domain.User, loans []domain.Loan, books []domain.Book) string {
	var sb strings.Builder
	sb.WriteString(t.Title.Render(u.Username))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Email:  %s\n", u.Email)
	if u.Phone != nil {
		fmt.Fprintf(&sb, "Phone:  %s\n", *u.Phone)
	}
	if u.CreatedAt != nil {
		fmt.Fprintf(&sb, "Since:  %s\n", *u.CreatedAt)
	}

	active := domain.ActiveLoansForUser(loans, u.ID)
	sb.WriteString("\n")
	if len(active) == 0 {
		sb.WriteString(t.Subtitle.Render("No books on loan"))
		return sb.String()
	}
	sb.WriteString("On loan:\n")
	for _, l := range active {
		title := fmt.Sprintf("Book #%d", l.BookID)
		if b, ok := domain.FindBook(books, l.BookID); ok {
			title = b.Title
		}
		fmt.Fprintf(&sb, "  - %s (since %s)\n", title, l.IssueDate)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderStats(t Theme, s domain.Stats) string {
	var sb strings.Builder
	sb.WriteString(t.Title.Render("Stats"))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Books:  %d (%d available)\n", s.TotalBooks, s.AvailableBooks)
	fmt.Fprintf(&sb, "Users:  %d\n", s.TotalUsers)
	fmt.Fprintf(&sb, "Loans:  %d (%d active)", s.TotalLoans, s.ActiveLoans)
	return sb.String()
}

func renderSettings(t Theme, d Deps) string {
	orDefault := func(s, def string) string {
		if s == "" {
			return def
		}
		return s
	}

	var sb strings.Builder
	sb.WriteString(t.Title.Render("Settings"))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Config:      %s\n", orDefault(d.ConfigPath, "(defaults)"))
	fmt.Fprintf(&sb, "Service:     %s\n", d.Config.API.BaseURL)
	fmt.Fprintf(&sb, "Timeout:     %s\n", d.Config.API.Timeout)
	if d.Config.API.RateLimit > 0 {
		fmt.Fprintf(&sb, "Rate limit:  %.1f req/s (burst %d)\n", d.Config.API.RateLimit, d.Config.API.Burst)
	}
	fmt.Fprintf(&sb, "Cache:       %s at %s\n", d.Config.Cache.Driver, orDefault(d.CacheAt, "(memory)"))
	fmt.Fprintf(&sb, "Masking:     %t\n", d.Config.Cache.Masking)
	fmt.Fprintf(&sb, "Log:         %s\n", orDefault(d.LogPath, "(disabled)"))
	fmt.Fprintf(&sb, "Debug:       %t\n\n", d.Debug)
	sb.WriteString(t.Subtitle.Render(buildinfo.String()))
	return sb.String()
}
