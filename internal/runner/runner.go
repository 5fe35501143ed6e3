// Package runner executes planner commands under a hard wall-clock timeout.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"reconpipe/internal/logger"
)

const (
	DefaultPollInterval = 100 * time.Millisecond
	defaultKillGrace    = 500 * time.Millisecond
	pipeDrainDelay      = 2 * time.Second
)

var ErrTimeout = errors.New("timeout expired")

type TimeoutError struct {
	Command string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command %q: %v after %s", e.Command, ErrTimeout, e.Timeout)
}

func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }

type Result struct {
	Command  string
	Argv     []string
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

type Runner struct {
	GOOS         string
	LookPath     func(file string) (string, error)
	PollInterval time.Duration
	KillGrace    time.Duration
}

func New(pollInterval time.Duration) *Runner {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Runner{
		GOOS:         runtime.GOOS,
		LookPath:     exec.LookPath,
		PollInterval: pollInterval,
		KillGrace:    defaultKillGrace,
	}
}

// Run starts command in its own process group and polls it until it exits or
// timeout elapses. On timeout every descendant is terminated before the
// parent, and a *TimeoutError is returned alongside whatever output was read.
// A nonzero exit is not an error; check Result.ExitCode.
func (r *Runner) Run(ctx context.Context, command string, timeout time.Duration) (Result, error) {
	argv := ShellArgs(r.GOOS, command, r.LookPath)
	res := Result{Command: command, Argv: argv, ExitCode: -1}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = pipeDrainDelay
	configureProcess(cmd)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return res, fmt.Errorf("start %q: %w", strings.Join(argv, " "), err)
	}
	logger.Log.Printf("[Runner] started pid %d: %s", cmd.Process.Pid, command)

	done := make(chan struct{})
	var waitErr error
	var g errgroup.Group

	g.Go(func() error {
		waitErr = cmd.Wait()
		close(done)
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(r.pollInterval())
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				r.terminate(cmd.Process.Pid, done)
				return ctx.Err()
			case <-ticker.C:
				if timeout > 0 && time.Since(start) > timeout {
					logger.Log.Printf("[Runner] pid %d exceeded %s, terminating process tree", cmd.Process.Pid, timeout)
					r.terminate(cmd.Process.Pid, done)
					return &TimeoutError{Command: command, Timeout: timeout}
				}
			}
		}
	})

	runErr := g.Wait()
	res.Duration = time.Since(start)
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}
	if runErr != nil {
		return res, runErr
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return res, fmt.Errorf("wait %q: %w", command, waitErr)
	}
	return res, nil
}

func (r *Runner) pollInterval() time.Duration {
	if r.PollInterval <= 0 {
		return DefaultPollInterval
	}
	return r.PollInterval
}

// terminate sends a polite stop to the tree, gives it KillGrace to exit and
// then kills whatever is left of the process group.
func (r *Runner) terminate(pid int, done <-chan struct{}) {
	terminateTree(pid)
	grace := r.KillGrace
	if grace <= 0 {
		grace = defaultKillGrace
	}
	select {
	case <-done:
	case <-time.After(grace):
	}
	killGroup(pid)
}
