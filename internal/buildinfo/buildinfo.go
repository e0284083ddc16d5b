package buildinfo

import "fmt"

// Set via -ldflags at build time
var (
	Version    = "dev"
	BuildTime  string // when the binary was compiled
	CommitHash string // short git commit hash
)

// String formats the build stamp for --version
func String() string {
	s := Version
	if CommitHash != "" {
		s += fmt.Sprintf(" (commit %s)", CommitHash)
	}
	if BuildTime != "" {
		s += fmt.Sprintf(" built %s", BuildTime)
	}
	return s
}
