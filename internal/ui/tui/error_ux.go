package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/usecase"
)

func userMessage(err error) string {
	if err == nil {
		return ""
	}

	// View-model failures already carry the text meant for the user.
	var f *usecase.Failure
	if errors.As(err, &f) {
		return f.Message
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "Request timed out"
	}
	if errors.Is(err, domain.ErrNotLoggedIn) {
		return "Not logged in"
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {

		case domain.KindNotFound:
			if strings.HasPrefix(oe.Op, "configfile") {
				return "Config not found"
			}
			return "Not found"

		case domain.KindHTTP:
			return domain.Reason(err)

		case domain.KindExecution:
			switch {
			case strings.HasPrefix(oe.Op, "apiclient"):
				return "Service unreachable"
			case strings.HasPrefix(oe.Op, "cache"), strings.HasPrefix(oe.Op, "kvstore"):
				return "Local cache unavailable"
			}
			return "Unexpected error (see logs)"

		case domain.KindInvalidResponse:
			return "Unexpected response from the service"

		case domain.KindInvalidConfig:
			return "Invalid config"

		default:
			return "Unexpected error (see logs)"
		}
	}

	return "Unexpected error (see logs)"
}
