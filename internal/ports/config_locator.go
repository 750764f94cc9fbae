package ports

// ConfigLocator finds the libris.yaml to use starting from an arbitrary directory.
type ConfigLocator interface {
	FindConfig(startDir string) (string, error)
}
