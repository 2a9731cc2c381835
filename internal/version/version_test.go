package version_test

import (
	"runtime"
	"strings"
	"testing"

	"github.com/lightningstudio/watchbili/internal/version"
)

func TestInfo(t *testing.T) {
	s := version.Info()
	if !strings.HasPrefix(s, "watchbili "+version.Version) {
		t.Errorf("Info() = %s", s)
	}
	if !strings.Contains(s, runtime.GOOS) {
		t.Errorf("Info() lacks GOOS: %s", s)
	}
}
