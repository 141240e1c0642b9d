package buildinfo

import (
	"strings"
	"testing"
)

func TestInfoPrefersStampedValues(t *testing.T) {
	defer func(v, c string) { Version, Commit = v, c }(Version, Commit)

	Version, Commit = "v1.4.0", "0123456789abcdef"
	version, commit := Info()
	if version != "v1.4.0" || commit != "0123456789abcdef" {
		t.Errorf("Info() = %q, %q", version, commit)
	}
	if got := Template(); !strings.Contains(got, "v1.4.0 (0123456,") {
		t.Errorf("Template() = %q, want short commit", got)
	}
}

func TestInfoUnstamped(t *testing.T) {
	version, commit := Info()
	if version == "" || commit == "" {
		t.Errorf("Info() = %q, %q, want non-empty fallbacks", version, commit)
	}
	if !strings.HasPrefix(Template(), "{{.Name}} ") {
		t.Errorf("Template() = %q", Template())
	}
}
