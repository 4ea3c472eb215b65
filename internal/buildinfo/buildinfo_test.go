package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func stamp(t *testing.T, version, commit string, rev string) {
	t.Helper()
	oldV, oldC, oldR := Version, Commit, readBuildInfo
	t.Cleanup(func() { Version, Commit, readBuildInfo = oldV, oldC, oldR })
	Version, Commit = version, commit
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		if rev == "" {
			return nil, false
		}
		return &debug.BuildInfo{Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: rev}}}, true
	}
}

func TestShort(t *testing.T) {
	tests := []struct {
		name, version, commit, rev, want string
	}{
		{"version wins", "v1.2.0", "abc", "def", "v1.2.0"},
		{"ldflags commit", "dev", "0123456789abcdef", "", "0123456789ab"},
		{"vcs revision", "dev", "unknown", "fedcba9876543210", "fedcba987654"},
		{"nothing", "dev", "unknown", "", "dev"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stamp(t, tt.version, tt.commit, tt.rev)
			if got := Short(); got != tt.want {
				t.Fatalf("Short() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLong(t *testing.T) {
	stamp(t, "v0.3.1", "unknown", "cafe")
	got := Long()
	if !strings.HasPrefix(got, "v0.3.1 (commit cafe, built ") {
		t.Fatalf("Long() = %q", got)
	}
}
