// Package deps answers whether an external tool can be run on this host.
package deps

import (
	"context"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"reconpipe/internal/logger"
)

// Same bound as a command run.
const defaultProbeTimeout = 10 * time.Second

// Checker looks a tool up on PATH, then on windows inside WSL.
// Every probe failure means "not installed".
type Checker struct {
	GOOS         string
	LookPath     func(file string) (string, error)
	ProbeWSL     func(ctx context.Context, tool string) error
	ProbeTimeout time.Duration
}

func NewChecker() *Checker {
	return &Checker{
		GOOS:         runtime.GOOS,
		LookPath:     exec.LookPath,
		ProbeWSL:     probeWSL,
		ProbeTimeout: defaultProbeTimeout,
	}
}

func (c *Checker) IsInstalled(ctx context.Context, tool string) bool {
	tool = strings.TrimSpace(tool)
	if tool == "" {
		return false
	}
	lookPath := c.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if _, err := lookPath(tool); err == nil {
		return true
	}

	if c.GOOS != "windows" || c.ProbeWSL == nil {
		return false
	}
	timeout := c.ProbeTimeout
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := c.ProbeWSL(probeCtx, tool); err != nil {
		logger.Log.Printf("[Deps] WSL probe for %s failed: %v", tool, err)
		return false
	}
	return true
}

func probeWSL(ctx context.Context, tool string) error {
	return exec.CommandContext(ctx, "wsl", "which", tool).Run()
}
