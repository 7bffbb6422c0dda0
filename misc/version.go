// Package misc holds build time program identification.
package misc

import (
	"os"
	"path/filepath"
	"strings"
)

// Set with -ldflags "-X axnav/misc.version=... -X axnav/misc.gitHash=..."
var (
	version = "dev"
	gitHash = "unknown"
	appName = ""
)

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns git commit hash program was built from.
func GetGitHash() string {
	return gitHash
}

// GetAppName returns program name derived from executable unless overwritten
// at build time.
func GetAppName() string {
	if len(appName) > 0 {
		return appName
	}
	return strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0]))
}
