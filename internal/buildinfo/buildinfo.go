package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("libris %s (commit=%s, date=%s)", Version, Commit, Date)
}

// UserAgent is sent on every API request.
func UserAgent() string {
	return "libris/" + Version
}
