package tui

import (
	"log/slog"

	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/usecase"
)

type Deps struct {
	Library *usecase.Library

	// Shown on the settings screen.
	Config     domain.Config
	ConfigPath string
	CacheAt    string
	LogPath    string

	Logger *slog.Logger
	Debug  bool
}
