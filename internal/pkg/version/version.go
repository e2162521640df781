// Package version carries build metadata, overridable at link time:
//
//	go build -ldflags "-X hostgen/internal/pkg/version.Version=v1.2.3"
package version

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns a one-line human readable version description.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
