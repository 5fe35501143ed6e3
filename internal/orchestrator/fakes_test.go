package orchestrator

import (
	"context"
	"time"

	"reconpipe/internal/audit"
	"reconpipe/internal/runner"
	"reconpipe/internal/scope"
)

var testScope = scope.Scope{"google.com", "*.example.com", "192.168.1.0/24"}

// cannedPlanner answers from fixed functions and counts calls.
type cannedPlanner struct {
	breakdown    []string
	breakdownErr error
	command      func(task string) string
	deps         func(command string) []string
	alternative  func(task string) string
	mine         func(output string) []string
	prioritize   func(tasks []string) []string

	alternativeCalls []string
	mineCalls        int
	prioritizeCalls  int
}

func (p *cannedPlanner) Breakdown(context.Context, string, scope.Scope) ([]string, error) {
	return p.breakdown, p.breakdownErr
}

func (p *cannedPlanner) CommandFor(_ context.Context, task string, _ scope.Scope) (string, error) {
	if p.command == nil {
		return task, nil
	}
	return p.command(task), nil
}

func (p *cannedPlanner) DependenciesOf(_ context.Context, command string) ([]string, error) {
	if p.deps == nil {
		return nil, nil
	}
	return p.deps(command), nil
}

func (p *cannedPlanner) AlternativeFor(_ context.Context, task string, _ scope.Scope) (string, error) {
	p.alternativeCalls = append(p.alternativeCalls, task)
	if p.alternative == nil {
		return "", nil
	}
	return p.alternative(task), nil
}

func (p *cannedPlanner) MineTasks(_ context.Context, output string, _ scope.Scope) ([]string, error) {
	p.mineCalls++
	if p.mine == nil {
		return nil, nil
	}
	return p.mine(output), nil
}

func (p *cannedPlanner) Prioritize(_ context.Context, tasks []string) ([]string, error) {
	p.prioritizeCalls++
	if p.prioritize == nil {
		return tasks, nil
	}
	return p.prioritize(tasks), nil
}

type fakeChecker struct {
	missing map[string]bool
}

func (c fakeChecker) IsInstalled(_ context.Context, tool string) bool {
	return !c.missing[tool]
}

type fakeRunner struct {
	run   func(command string) (runner.Result, error)
	calls []string
}

func (r *fakeRunner) Run(_ context.Context, command string, _ time.Duration) (runner.Result, error) {
	r.calls = append(r.calls, command)
	if r.run == nil {
		return runner.Result{Command: command, Stdout: "ok"}, nil
	}
	return r.run(command)
}

type memorySink struct {
	begun   []string
	entries []audit.Entry
}

func (s *memorySink) Begin(_ context.Context, runID string, _ scope.Scope) error {
	s.begun = append(s.begun, runID)
	return nil
}

func (s *memorySink) Record(_ context.Context, e audit.Entry) error {
	s.entries = append(s.entries, e)
	return nil
}

func (s *memorySink) Close() error { return nil }
