package configfile

import (
	_ "embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aalvaropc/libris/internal/domain"
)

//go:embed template/libris.yaml
var templateYAML []byte

// ErrExists is returned by WriteTemplate when the file is already there.
var ErrExists = errors.New("libris.yaml already exists")

// WriteTemplate writes a commented libris.yaml into dir. Existing files are
// kept unless force is set.
func WriteTemplate(dir string, force bool) (string, error) {
	root := filepath.Clean(dir)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", &domain.OpError{Op: "configfile.init", Kind: domain.KindExecution, Path: root, Err: err}
	}

	dst := filepath.Join(root, FileName)
	if !force {
		if _, err := os.Stat(dst); err == nil {
			return dst, &domain.OpError{Op: "configfile.init", Kind: domain.KindInvalidRequest, Path: dst, Err: ErrExists}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", &domain.OpError{Op: "configfile.init", Kind: domain.KindExecution, Path: dst, Err: err}
		}
	}

	if err := os.WriteFile(dst, templateYAML, 0o644); err != nil {
		return "", &domain.OpError{Op: "configfile.init", Kind: domain.KindExecution, Path: dst, Err: err}
	}
	return dst, nil
}
