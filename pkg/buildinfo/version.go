// Package buildinfo reports the version the binary was built from.
//
// The variables are stamped by the release build:
//
//	go build -ldflags "-X github.com/jcoliz/LogoSlideMaker-sub000/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/jcoliz/LogoSlideMaker-sub000/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/jcoliz/LogoSlideMaker-sub000/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	// Version is the semantic version, "dev" for local builds.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Info is the build information in a form suitable for JSON responses.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Current returns the stamped build information.
func Current() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
