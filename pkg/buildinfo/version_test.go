package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func stamp(t *testing.T, version, commit, date string) {
	t.Helper()
	oldV, oldC, oldD := Version, Commit, Date
	Version, Commit, Date = version, commit, date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })
}

func TestResolve(t *testing.T) {
	embedded := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	tests := []struct {
		name    string
		version string
		commit  string
		bi      *debug.BuildInfo
		want    Info
	}{
		{"no embedded info", "dev", "none", nil, Info{Version: "dev", Commit: "none", Date: "unknown"}},
		{"unstamped", "dev", "none", embedded, Info{Version: "v0.4.0", Commit: "abc123", Date: "2026-01-02T03:04:05Z", Dirty: true}},
		{"stamped wins", "v1.2.3", "fff", embedded, Info{Version: "v1.2.3", Commit: "fff", Date: "2026-01-02T03:04:05Z", Dirty: true}},
		{"devel module", "dev", "none", &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, Info{Version: "dev", Commit: "none", Date: "unknown"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stamp(t, tt.version, tt.commit, "unknown")
			if got := resolve(tt.bi); got != tt.want {
				t.Errorf("resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestInfoString(t *testing.T) {
	s := Info{Version: "v1.2.3", Commit: "abc", Date: "today", Dirty: true}.String()
	for _, want := range []string{"version: v1.2.3", "commit: abc (modified)", "built: today"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func TestTemplate(t *testing.T) {
	stamp(t, "v9.9.9", "c0ffee", "now")
	if tpl := Template(); !strings.HasPrefix(tpl, "{{.Name}} version: v9.9.9") {
		t.Errorf("Template() = %q", tpl)
	}
}
