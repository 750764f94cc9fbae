package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/usecase"
)

func TestUserMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"failure", &usecase.Failure{Message: "Not available", Err: domain.ErrUnavailable}, "Not available"},
		{"wrapped failure", fmt.Errorf("tui: %w", &usecase.Failure{Message: "Invalid credentials"}), "Invalid credentials"},
		{"timeout", fmt.Errorf("op: %w", context.DeadlineExceeded), "Request timed out"},
		{"not logged in", fmt.Errorf("whoami: %w", domain.ErrNotLoggedIn), "Not logged in"},
		{"http", &domain.OpError{Op: "apiclient.books.list", Kind: domain.KindHTTP, Err: errors.New("HTTP 503 - maintenance")}, "HTTP 503 - maintenance"},
		{"unreachable", &domain.OpError{Op: "apiclient.books.list", Kind: domain.KindExecution, Err: errors.New("dial tcp: refused")}, "Service unreachable"},
		{"cache", &domain.OpError{Op: "cache.session.clear", Kind: domain.KindExecution, Err: errors.New("disk full")}, "Local cache unavailable"},
		{"bad body", &domain.OpError{Op: "apiclient.users.list", Kind: domain.KindInvalidResponse}, "Unexpected response from the service"},
		{"yaml line", &domain.OpError{Op: "configfile.load", Kind: domain.KindInvalidConfig, Path: "/x/libris.yaml", Err: errors.New("yaml: line 7: did not find expected key")}, "Invalid config"},
		{"config", &domain.OpError{Op: "configfile.load", Kind: domain.KindInvalidConfig, Err: errors.New("api.timeout: must be positive")}, "Invalid config"},
		{"config missing", &domain.OpError{Op: "configfile.find", Kind: domain.KindNotFound}, "Config not found"},
		{"plain", errors.New("boom"), "Unexpected error (see logs)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := userMessage(c.err); got != c.want {
				t.Fatalf("userMessage() = %q, want %q", got, c.want)
			}
		})
	}
}
