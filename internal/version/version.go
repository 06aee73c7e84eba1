// Package version provides build-time information for hexword.
//
// Values are injected with ldflags, for example:
//
//	-ldflags "-X github.com/jmylchreest/hexword/internal/version.Version=1.2.0
//	          -X github.com/jmylchreest/hexword/internal/version.DefaultMode=enhanced"
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/jmylchreest/hexword/internal/colour"
)

var (
	// Version is the semantic version of the build.
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "unknown"

	// Date is the build date in RFC3339 format.
	Date = "unknown"

	// DefaultMode is the colour mode used when neither the config file,
	// HEXWORD_MODE nor --mode selects one. An unknown value reads as basic.
	DefaultMode = string(colour.ModeBasic)
)

// Info describes a hexword build.
type Info struct {
	Version     string   `json:"version"`
	Commit      string   `json:"commit"`
	Date        string   `json:"date"`
	DefaultMode string   `json:"default_mode"`
	Modes       []string `json:"modes"`
	GoVersion   string   `json:"go_version"`
	Platform    string   `json:"platform"`
}

// GetInfo returns the build information.
func GetInfo() Info {
	modes := colour.Modes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = m.String()
	}

	return Info{
		Version:     Version,
		Commit:      Commit,
		Date:        Date,
		DefaultMode: BuildMode().String(),
		Modes:       names,
		GoVersion:   runtime.Version(),
		Platform:    runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// BuildMode parses DefaultMode, falling back to basic.
func BuildMode() colour.Mode {
	m, err := colour.ParseMode(DefaultMode)
	if err != nil {
		return colour.ModeBasic
	}
	return m
}

// String returns a human-readable version line.
func String() string {
	info := GetInfo()

	var b strings.Builder
	fmt.Fprintf(&b, "hexword version %s (", info.Version)
	if info.Commit != "unknown" && info.Date != "unknown" {
		fmt.Fprintf(&b, "commit: %s, built: %s, ", shortCommit(info.Commit), info.Date)
	}
	fmt.Fprintf(&b, "modes: %s, default: %s, %s, %s)",
		strings.Join(info.Modes, "/"), info.DefaultMode, info.GoVersion, info.Platform)
	return b.String()
}

// Short returns the bare version for cobra's --version.
func Short() string {
	return Version
}

func shortCommit(c string) string {
	if len(c) > 8 {
		return c[:8]
	}
	return c
}
