package cli

import (
	"io"
	"testing"

	"github.com/matzehuels/refdoc/pkg/buildinfo"
)

func TestSetVersion(t *testing.T) {
	oldV, oldC, oldD := buildinfo.Version, buildinfo.Commit, buildinfo.Date
	defer func() { buildinfo.Version, buildinfo.Commit, buildinfo.Date = oldV, oldC, oldD }()

	SetVersion("1.0.0", "abc123", "2024-01-01")

	if buildinfo.Version != "1.0.0" {
		t.Errorf("version = %q, want %q", buildinfo.Version, "1.0.0")
	}
	if buildinfo.Commit != "abc123" {
		t.Errorf("commit = %q, want %q", buildinfo.Commit, "abc123")
	}
	if buildinfo.Date != "2024-01-01" {
		t.Errorf("date = %q, want %q", buildinfo.Date, "2024-01-01")
	}

	root := New(io.Discard, LogInfo).RootCommand()
	if root.Version != "1.0.0" {
		t.Errorf("root version = %q, want %q", root.Version, "1.0.0")
	}
}

func TestSetVersionEmptyKeepsDefaults(t *testing.T) {
	oldV, oldC, oldD := buildinfo.Version, buildinfo.Commit, buildinfo.Date
	defer func() { buildinfo.Version, buildinfo.Commit, buildinfo.Date = oldV, oldC, oldD }()

	SetVersion("", "", "")

	if buildinfo.Version != oldV || buildinfo.Commit != oldC || buildinfo.Date != oldD {
		t.Errorf("empty SetVersion should keep defaults, got %q %q %q",
			buildinfo.Version, buildinfo.Commit, buildinfo.Date)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	for _, name := range []string{"generate", "index", "watch", "cache", "completion"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
