package deps

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"
)

func TestIsInstalled(t *testing.T) {
	found := func(string) (string, error) { return "/usr/bin/tool", nil }
	missing := func(string) (string, error) { return "", exec.ErrNotFound }
	probeOK := func(context.Context, string) error { return nil }
	probeFail := func(context.Context, string) error { return errors.New("exit status 1") }

	testCases := []struct {
		name     string
		checker  *Checker
		tool     string
		expected bool
	}{
		{name: "Found on PATH", checker: &Checker{GOOS: "linux", LookPath: found}, tool: "nmap", expected: true},
		{name: "Missing on linux never probes WSL", checker: &Checker{GOOS: "linux", LookPath: missing, ProbeWSL: probeOK}, tool: "nmap", expected: false},
		{name: "Missing on windows but present in WSL", checker: &Checker{GOOS: "windows", LookPath: missing, ProbeWSL: probeOK}, tool: "gobuster", expected: true},
		{name: "Missing everywhere on windows", checker: &Checker{GOOS: "windows", LookPath: missing, ProbeWSL: probeFail}, tool: "gobuster", expected: false},
		{name: "Blank tool name", checker: &Checker{GOOS: "linux", LookPath: found}, tool: "  ", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.checker.IsInstalled(context.Background(), tc.tool); got != tc.expected {
				t.Errorf("IsInstalled(%q) = %v, want %v", tc.tool, got, tc.expected)
			}
		})
	}
}

func TestIsInstalledOnHost(t *testing.T) {
	c := NewChecker()
	if _, err := exec.LookPath("sh"); err == nil && !c.IsInstalled(context.Background(), "sh") {
		t.Error("expected sh to be reported as installed")
	}
	if c.IsInstalled(context.Background(), "nonexistent_tool_reconpipe") {
		t.Error("expected a nonexistent tool to be reported as missing")
	}
}

func TestNewCheckerProbeTimeout(t *testing.T) {
	if got := NewChecker().ProbeTimeout; got != 10*time.Second {
		t.Errorf("expected a 10s WSL probe bound, got %s", got)
	}
}
