package buildinfo

import "fmt"

// Set with -ldflags "-X github.com/bartolsthoorn/chipnet/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("chipnet %s (commit=%s, date=%s)", Version, Commit, Date)
}
