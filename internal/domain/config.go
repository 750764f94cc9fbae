package domain

import "time"

// Config represents the libris client configuration loaded from libris.yaml.
type Config struct {
	API   APIConfig
	Cache CacheConfig
	Log   LogConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration

	// RateLimit is the maximum number of requests per second (0 = unlimited).
	RateLimit float64
	Burst     int
}

// CacheDriver selects the key-value backend for the local cache.
type CacheDriver string

const (
	CacheFile   CacheDriver = "file"
	CacheSQLite CacheDriver = "sqlite"
	CacheMemory CacheDriver = "memory"
)

type CacheConfig struct {
	Driver CacheDriver
	// Path is the cache file or database. Empty means the per-user state dir.
	Path string
	// Masking drops user passwords from the persisted copy.
	Masking bool
}

type LogConfig struct {
	Debug bool
	// Dir holds libris.log. Empty means the per-user state dir.
	Dir string
}

// DefaultConfig provides sane defaults if libris.yaml is missing or partial.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000/",
			Timeout: 30 * time.Second,
			Burst:   1,
		},
		Cache: CacheConfig{
			Driver:  CacheFile,
			Masking: true,
		},
	}
}
