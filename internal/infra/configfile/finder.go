package configfile

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/ports"
)

const FileName = "libris.yaml"

// Finder locates libris.yaml by searching upward from a directory, then in
// the per-user config dir.
type Finder struct {
	ConfigFile string // defaults to "libris.yaml"

	// UserDir returns the per-user fallback directory. Nil disables it.
	UserDir func() (string, error)
}

var _ ports.ConfigLocator = (*Finder)(nil)

func NewFinder() *Finder {
	return &Finder{ConfigFile: FileName, UserDir: ConfigDir}
}

func (f *Finder) FindConfig(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "configfile.find",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("startDir is empty"),
		}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "configfile.find",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	// If user passes a file path, use its directory.
	info, statErr := os.Stat(abs)
	if statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	cur := filepath.Clean(abs)
	for {
		cfgPath := filepath.Join(cur, f.ConfigFile)
		if _, err := os.Stat(cfgPath); err == nil {
			return cfgPath, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}

	if f.UserDir != nil {
		if dir, err := f.UserDir(); err == nil {
			cfgPath := filepath.Join(dir, f.ConfigFile)
			if _, err := os.Stat(cfgPath); err == nil {
				return cfgPath, nil
			}
		}
	}

	return "", &domain.OpError{
		Op:   "configfile.find",
		Kind: domain.KindNotFound,
		Err:  domain.ErrNotFound,
	}
}
