package configfile

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aalvaropc/libris/internal/domain"
)

// apply maps parsed values on top of cfg. Unset fields keep their defaults.
func apply(path string, y yamlConfig, cfg domain.Config) (domain.Config, error) {
	api := y.Libris.API
	if s := strings.TrimSpace(api.BaseURL); s != "" {
		if err := validateBaseURL(s); err != nil {
			return cfg, invalidField(path, "api.base_url", err.Error())
		}
		cfg.API.BaseURL = s
	}
	if s := strings.TrimSpace(api.Timeout); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			return cfg, invalidField(path, "api.timeout", "expected a positive duration like 15s")
		}
		cfg.API.Timeout = d
	}
	if api.RateLimit != nil {
		if *api.RateLimit < 0 {
			return cfg, invalidField(path, "api.rate_limit", "must be >= 0")
		}
		cfg.API.RateLimit = *api.RateLimit
	}
	if api.Burst != nil {
		if *api.Burst < 1 {
			return cfg, invalidField(path, "api.burst", "must be >= 1")
		}
		cfg.API.Burst = *api.Burst
	}

	c := y.Libris.Cache
	if s := strings.TrimSpace(c.Driver); s != "" {
		d, err := parseDriver(s)
		if err != nil {
			return cfg, invalidField(path, "cache.driver", err.Error())
		}
		cfg.Cache.Driver = d
	}
	if s := strings.TrimSpace(c.Path); s != "" {
		cfg.Cache.Path = s
	}
	if c.Masking != nil {
		cfg.Cache.Masking = *c.Masking
	}

	if y.Libris.Log.Debug != nil {
		cfg.Log.Debug = *y.Libris.Log.Debug
	}
	if s := strings.TrimSpace(y.Libris.Log.Dir); s != "" {
		cfg.Log.Dir = s
	}

	return cfg, nil
}

func validateBaseURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func parseDriver(s string) (domain.CacheDriver, error) {
	switch d := domain.CacheDriver(strings.ToLower(s)); d {
	case domain.CacheFile, domain.CacheSQLite, domain.CacheMemory:
		return d, nil
	default:
		return "", fmt.Errorf("unknown driver %q (want file, sqlite or memory)", s)
	}
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "configfile.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
