package configfile

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/ports"
)

// EnvBaseURL overrides api.base_url when set.
const EnvBaseURL = "LIBRIS_BASE_URL"

// Load reads one libris.yaml and applies it over defaults.
func Load(path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "configfile.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "configfile.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return apply(path, y, cfg)
}

// Resolved is the effective configuration and where it came from
// ("" when only defaults apply).
type Resolved struct {
	Config domain.Config
	Path   string
}

// Resolve picks the config file: explicit path first, then the locator
// starting at startDir, then defaults. The environment override is applied last.
func Resolve(explicit, startDir string, loc ports.ConfigLocator) (Resolved, error) {
	var out Resolved

	switch {
	case strings.TrimSpace(explicit) != "":
		cfg, err := Load(explicit)
		if err != nil {
			return out, err
		}
		out = Resolved{Config: cfg, Path: explicit}

	default:
		out.Config = domain.DefaultConfig()
		if loc != nil {
			path, err := loc.FindConfig(startDir)
			switch {
			case err == nil:
				cfg, err := Load(path)
				if err != nil {
					return out, err
				}
				out = Resolved{Config: cfg, Path: path}
			case !domain.IsKind(err, domain.KindNotFound):
				return out, err
			}
		}
	}

	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		if err := validateBaseURL(v); err != nil {
			return out, invalidField(EnvBaseURL, "api.base_url", err.Error())
		}
		out.Config.API.BaseURL = v
	}
	return out, nil
}
