package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/infra/apiclient"
	"github.com/aalvaropc/libris/internal/infra/cache"
	"github.com/aalvaropc/libris/internal/infra/configfile"
	"github.com/aalvaropc/libris/internal/infra/kvstore"
	"github.com/aalvaropc/libris/internal/infra/logger"
	"github.com/aalvaropc/libris/internal/ports"
	"github.com/aalvaropc/libris/internal/usecase"
)

// appCtx is everything a command needs, wired from the resolved config.
type appCtx struct {
	cfg     domain.Config
	cfgPath string

	store   ports.KVStore
	cacheAt string
	logPath string
	log     *slog.Logger

	lib *usecase.Library

	closers []func() error
}

func loadApp(opts *rootOptions) (*appCtx, error) {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	wd, _ = filepath.Abs(wd)

	res, err := configfile.Resolve(opts.configPath, wd, configfile.NewFinder())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := res.Config
	if u := strings.TrimSpace(opts.baseURL); u != "" {
		cfg.API.BaseURL = u
	}
	if opts.debug {
		cfg.Log.Debug = true
	}

	app := &appCtx{cfg: cfg, cfgPath: res.Path}

	logDir := cfg.Log.Dir
	if logDir == "" {
		if dir, err := configfile.StateDir(); err == nil {
			logDir = filepath.Join(dir, "logs")
		}
	}
	// Logging is best effort: a read-only home must not block the client.
	if cleanup, err := logger.Setup(logger.Config{Dir: logDir, Debug: cfg.Log.Debug}); err == nil {
		app.closers = append(app.closers, cleanup)
		app.logPath = logger.Path()
	}
	app.log = logger.L()

	store, err := kvstore.Open(cfg.Cache)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("open cache: %w", err)
	}
	app.store = store
	app.cacheAt = kvstore.Location(store)
	app.closers = append([]func() error{store.Close}, app.closers...)

	libCache := cache.New(store,
		cache.WithMasking(cfg.Cache.Masking),
		cache.WithLogger(app.log),
	)

	api, err := apiclient.NewFromConfig(cfg.API,
		apiclient.WithTokenSource(libCache),
		apiclient.WithLogger(app.log),
	)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("api client: %w", err)
	}

	app.lib = usecase.NewLibrary(api, libCache, usecase.WithLogger(app.log))
	app.log.Info("app.ready",
		"config", res.Path, "base_url", api.BaseURL(),
		"cache_driver", string(cfg.Cache.Driver), "cache", app.cacheAt,
	)
	return app, nil
}

func (a *appCtx) Close() {
	for _, c := range a.closers {
		_ = c()
	}
	a.closers = nil
}
