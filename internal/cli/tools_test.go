package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--log-file", filepath.Join(dir, "reconpipe.log")))
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute %q: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestCheckScopeCommand(t *testing.T) {
	out := execute(t, "check-scope", "--scope", "google.com, *.example.com, 192.168.1.0/24",
		"google.com", "api.example.com", "192.168.1.40", "evil.com")

	for _, want := range []string{
		"google.com: in scope",
		"api.example.com: in scope",
		"192.168.1.40: in scope",
		"evil.com: out of scope",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestExtractTargetCommand(t *testing.T) {
	out := execute(t, "extract-target", "--scope", "google.com",
		"nmap google.com && gobuster dir -u http://evil.com && whoami")

	for _, want := range []string{
		`"nmap google.com": google.com (in scope: true)`,
		`"gobuster dir -u http://evil.com": http://evil.com (in scope: false)`,
		`"whoami": no target`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
