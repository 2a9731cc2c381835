package version

import (
	"fmt"
	"runtime"
)

// Set with -ldflags at build time.
var (
	Version   = "dev"
	GitCommit string
)

func Info() string {
	commit := GitCommit
	if commit == "" {
		commit = "unknown"
	}
	return fmt.Sprintf("watchbili %s (%s) %s %s/%s", Version, commit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
