package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFillFrom(t *testing.T) {
	tests := []struct {
		name                  string
		version, commit, date string
		info                  debug.BuildInfo
		wantVersion           string
		wantCommit            string
	}{
		{
			name:        "module version",
			version:     "dev",
			commit:      "none",
			date:        "unknown",
			info:        debug.BuildInfo{Main: debug.Module{Version: "v0.3.0"}},
			wantVersion: "v0.3.0",
			wantCommit:  "none",
		},
		{
			name:        "devel build keeps placeholder",
			version:     "dev",
			commit:      "none",
			date:        "unknown",
			info:        debug.BuildInfo{Main: debug.Module{Version: "(devel)"}, Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}}},
			wantVersion: "dev",
			wantCommit:  "abc123",
		},
		{
			name:        "ldflags win",
			version:     "v1.0.0",
			commit:      "deadbeef",
			date:        "2026-01-01",
			info:        debug.BuildInfo{Main: debug.Module{Version: "v0.3.0"}, Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}}},
			wantVersion: "v1.0.0",
			wantCommit:  "deadbeef",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saved := [3]string{Version, Commit, Date}
			defer func() { Version, Commit, Date = saved[0], saved[1], saved[2] }()

			Version, Commit, Date = tt.version, tt.commit, tt.date
			fillFrom(&tt.info)
			if Version != tt.wantVersion {
				t.Errorf("Version = %q, want %q", Version, tt.wantVersion)
			}
			if Commit != tt.wantCommit {
				t.Errorf("Commit = %q, want %q", Commit, tt.wantCommit)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} version ") {
		t.Errorf("Template() = %q", got)
	}
	if !strings.Contains(String(), "commit: "+Commit) {
		t.Errorf("String() = %q, missing commit", String())
	}
}
