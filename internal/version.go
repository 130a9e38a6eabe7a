package internal

import "fmt"

// Set at build time with -ldflags "-X github.com/modelscout/modelscout/internal.Version=..."
var (
	Version = ""
	Commit  = ""
)

func PrintableVersion() string {
	if Version == "" {
		return "dev"
	}
	if Commit != "" {
		return fmt.Sprintf("%s (%s)", Version, Commit)
	}
	return Version
}
