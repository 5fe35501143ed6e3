// Package orchestrator drives a run: it pops one task per step, gates it on
// tool availability and scope, executes it and feeds successful output back
// into the queue, all under fixed iteration, retry and generation caps.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reconpipe/internal/audit"
	"reconpipe/internal/logger"
	"reconpipe/internal/metrics"
	"reconpipe/internal/runner"
	"reconpipe/internal/scope"
)

type Planner interface {
	Breakdown(ctx context.Context, instruction string, s scope.Scope) ([]string, error)
	CommandFor(ctx context.Context, task string, s scope.Scope) (string, error)
	DependenciesOf(ctx context.Context, command string) ([]string, error)
	AlternativeFor(ctx context.Context, task string, s scope.Scope) (string, error)
	MineTasks(ctx context.Context, output string, s scope.Scope) ([]string, error)
	Prioritize(ctx context.Context, tasks []string) ([]string, error)
}

type DependencyChecker interface {
	IsInstalled(ctx context.Context, tool string) bool
}

type CommandRunner interface {
	Run(ctx context.Context, command string, timeout time.Duration) (runner.Result, error)
}

type Limits struct {
	MaxIterations  int
	MaxRetries     int
	MaxGenerations int
	CommandTimeout time.Duration
}

func DefaultLimits() Limits {
	return Limits{
		MaxIterations:  50,
		MaxRetries:     3,
		MaxGenerations: 5,
		CommandTimeout: 10 * time.Second,
	}
}

// Transition tells the caller whether another Step is worthwhile.
type Transition int

const (
	Continue Transition = iota
	Done
)

type Orchestrator struct {
	planner   Planner
	deps      DependencyChecker
	runner    CommandRunner
	sink      audit.Sink
	collector *metrics.Collector
	limits    Limits
	now       func() time.Time
}

type Option func(*Orchestrator)

func WithLimits(l Limits) Option {
	return func(o *Orchestrator) { o.limits = l }
}

func WithAuditSink(s audit.Sink) Option {
	return func(o *Orchestrator) {
		if s != nil {
			o.sink = s
		}
	}
}

func WithCollector(c *metrics.Collector) Option {
	return func(o *Orchestrator) { o.collector = c }
}

func New(p Planner, d DependencyChecker, r CommandRunner, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		planner: p,
		deps:    d,
		runner:  r,
		sink:    audit.Nop{},
		limits:  DefaultLimits(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Begin breaks the instruction down into the initial queue.
func (o *Orchestrator) Begin(ctx context.Context, instruction string, s scope.Scope) (*RunState, error) {
	tasks, err := o.planner.Breakdown(ctx, instruction, s)
	if err != nil {
		return nil, fmt.Errorf("break down instruction: %w", err)
	}
	st := NewRunState(instruction, s, tasks)
	logger.Log.Printf("[Orchestrator] Run %s started with %d task(s): %q", st.ID, len(tasks), tasks)
	if err := o.sink.Begin(ctx, st.ID, st.Scope); err != nil {
		logger.Log.Printf("[Orchestrator] Run %s: audit begin failed: %v", st.ID, err)
	}
	return st, nil
}

// Run plans and drives a run to completion.
func (o *Orchestrator) Run(ctx context.Context, instruction string, s scope.Scope) (*RunState, error) {
	st, err := o.Begin(ctx, instruction, s)
	if err != nil {
		return nil, err
	}
	o.Drive(ctx, st)
	return st, nil
}

// Drive steps st until the queue drains, the iteration cap is hit or ctx
// is cancelled.
func (o *Orchestrator) Drive(ctx context.Context, st *RunState) {
	for st.Queue.Len() > 0 && st.RecursionCount < o.limits.MaxIterations {
		if err := ctx.Err(); err != nil {
			logger.Log.Printf("[Orchestrator] Run %s interrupted: %v", st.ID, err)
			break
		}
		if o.Step(ctx, st) == Done {
			break
		}
	}
	st.Metrics.End = o.now()
	st.Metrics.Generations = st.GenerationCount
	st.Metrics.Retries = st.GlobalRetryCount
	st.Metrics.Finalize()
	logger.Log.Printf("[Orchestrator] Run %s finished: %d iteration(s), %d record(s), %d retries, %d generation(s), %d task(s) left",
		st.ID, st.RecursionCount, len(st.records), st.GlobalRetryCount, st.GenerationCount, st.Queue.Len())
}

// Step runs one iteration against st.
func (o *Orchestrator) Step(ctx context.Context, st *RunState) Transition {
	if st.RecursionCount >= o.limits.MaxIterations {
		logger.Log.Printf("[Orchestrator] Recursion limit reached (%d). Stopping execution.", st.RecursionCount)
		return Done
	}
	st.RecursionCount++

	it := metrics.IterationMetrics{Iteration: st.RecursionCount, Start: o.now()}
	recordsBefore := len(st.records)
	defer func() {
		it.End = o.now()
		it.Records = len(st.records) - recordsBefore
		it.Finalize()
		st.Metrics.Iterations = append(st.Metrics.Iterations, it)
		if o.collector != nil {
			o.collector.ObserveIteration(it)
			o.collector.SetCounters(st.GenerationCount, st.GlobalRetryCount)
		}
	}()

	o.prioritizeQueue(ctx, st)

	task, ok := st.Queue.PopFront()
	if !ok {
		logger.Log.Printf("[Orchestrator] Queue empty after %d iteration(s)", st.RecursionCount)
		return Done
	}
	st.setOriginal(task)
	it.Task = task
	logger.Log.Printf("[Orchestrator] Executing: %s", task)

	command, err := o.planner.CommandFor(ctx, task, st.Scope)
	if err != nil {
		logger.Log.Printf("[Orchestrator] No command for %q: %v", task, err)
	}
	it.Command = command
	logger.Log.Printf("[Orchestrator] Running command: %s", command)

	deps, err := o.planner.DependenciesOf(ctx, command)
	if err != nil {
		logger.Log.Printf("[Orchestrator] Dependency lookup failed for %q: %v", command, err)
	}
	logger.Log.Printf("[Orchestrator] Dependencies: %q", deps)

	for _, dep := range deps {
		if o.deps.IsInstalled(ctx, dep) {
			continue
		}
		o.fail(ctx, st, task, ErrDependencyMissing, fmt.Sprintf("Dependency %s is not installed.", dep))
		o.retryWithAlternative(ctx, st)
		return Continue
	}

	for _, sub := range scope.SplitCommands(command) {
		o.execute(ctx, st, task, sub)
	}
	return Continue
}

// prioritizeQueue re-ranks the queue. An empty or failed answer keeps the
// current order rather than wiping planned work; a literal replace with the
// empty answer would end the run at the next queue check.
func (o *Orchestrator) prioritizeQueue(ctx context.Context, st *RunState) {
	if st.Queue.Len() == 0 {
		return
	}
	logger.Log.Printf("[Orchestrator] Original task list: %q", st.Queue.Items())
	ranked, err := o.planner.Prioritize(ctx, st.Queue.Items())
	switch {
	case err != nil:
		logger.Log.Printf("[Orchestrator] Prioritization failed, keeping order: %v", err)
	case len(ranked) == 0:
		logger.Log.Printf("[Orchestrator] Prioritization returned nothing, keeping order")
	default:
		st.Queue.Replace(ranked)
		logger.Log.Printf("[Orchestrator] Prioritized task list: %q", ranked)
	}
}

// retryWithAlternative follows a dependency failure: either the branch is
// out of retries, or an alternative for the original task jumps the queue.
func (o *Orchestrator) retryWithAlternative(ctx context.Context, st *RunState) {
	original, _ := st.OriginalTask()
	if st.GlobalRetryCount >= o.limits.MaxRetries {
		logger.Log.Printf("[Orchestrator] Skipping task after %d total retries: %s", o.limits.MaxRetries, original)
		return
	}
	alt, err := o.planner.AlternativeFor(ctx, original, st.Scope)
	if err != nil {
		logger.Log.Printf("[Orchestrator] Alternative lookup failed for %q: %v", original, err)
	}
	if alt == "" {
		logger.Log.Printf("[Orchestrator] No alternative task generated. Skipping task: %s", original)
		return
	}
	st.Queue.PushFront(alt)
	logger.Log.Printf("[Orchestrator] Retrying with alternative task (%d/%d): %s", st.GlobalRetryCount, o.limits.MaxRetries, alt)
}

// execute handles one sub-command. Every outcome is recorded; none stops
// the remaining sub-commands.
func (o *Orchestrator) execute(ctx context.Context, st *RunState, task, command string) {
	target, ok := scope.ExtractTarget(command)
	if !ok {
		logger.Log.Printf("[Orchestrator] No valid target found in command: %s", command)
		o.fail(ctx, st, task, ErrNoTargetFound, "No valid target found in command")
		return
	}
	if !st.Scope.Contains(target) {
		logger.Log.Printf("[Orchestrator] Target %s is out of scope, skipping: %s", target, command)
		o.fail(ctx, st, task, ErrOutOfScope, fmt.Sprintf("Target %s is out of scope", target))
		return
	}

	res, err := o.runner.Run(ctx, command, o.limits.CommandTimeout)
	switch {
	case errors.Is(err, runner.ErrTimeout):
		logger.Log.Printf("[Orchestrator] Task timeout expired: %s", task)
		o.fail(ctx, st, task, ErrTimeout, "Timeout expired")
	case err != nil:
		logger.Log.Printf("[Orchestrator] Error executing %q: %v", command, err)
		o.record(ctx, st, task, StatusError+": "+err.Error(), fmt.Errorf("%w: %v", ErrExecution, err))
		o.countRetry(st)
	case res.ExitCode != 0:
		logger.Log.Printf("[Orchestrator] Command exited %d: %s", res.ExitCode, command)
		o.fail(ctx, st, task, ErrNonZeroExit, res.Stderr)
	default:
		o.record(ctx, st, task, StatusSuccess+": "+res.Stdout, nil)
		o.mine(ctx, st, res.Stdout)
	}
}

// mine appends the single best follow-up task, while generations remain.
func (o *Orchestrator) mine(ctx context.Context, st *RunState, output string) {
	if st.GenerationCount >= o.limits.MaxGenerations {
		logger.Log.Printf("[Orchestrator] Max generations reached. No new tasks will be generated.")
		return
	}
	mined, err := o.planner.MineTasks(ctx, output, st.Scope)
	if err != nil {
		logger.Log.Printf("[Orchestrator] Task mining failed: %v", err)
	}
	if len(mined) == 0 {
		logger.Log.Printf("[Orchestrator] No new tasks generated from the output.")
		return
	}
	logger.Log.Printf("[Orchestrator] Generated new tasks based on output: %q", mined)

	top := mined[0]
	ranked, err := o.planner.Prioritize(ctx, mined)
	if err != nil {
		logger.Log.Printf("[Orchestrator] Ranking mined tasks failed, taking the first: %v", err)
	} else if len(ranked) > 0 {
		top = ranked[0]
	}
	st.Queue.PushBack(top)
	st.GenerationCount++
	logger.Log.Printf("[Orchestrator] Adding the most important task: %s (generation %d)", top, st.GenerationCount)
}

func (o *Orchestrator) fail(ctx context.Context, st *RunState, task string, kind error, detail string) {
	o.record(ctx, st, task, StatusFailed+": "+detail, kind)
	o.countRetry(st)
}

func (o *Orchestrator) countRetry(st *RunState) {
	st.GlobalRetryCount++
	logger.Log.Printf("[Orchestrator] Global retry count: %d", st.GlobalRetryCount)
}

func (o *Orchestrator) record(ctx context.Context, st *RunState, task, result string, kind error) {
	rec := ExecutionRecord{Task: task, Result: result, Kind: kind, At: o.now()}
	st.appendRecord(rec)
	if o.collector != nil {
		o.collector.ObserveRecord(KindName(kind))
	}
	entry := audit.Entry{RunID: st.ID, At: rec.At, Task: task, Result: result, Kind: KindName(kind)}
	if err := o.sink.Record(ctx, entry); err != nil {
		logger.Log.Printf("[Orchestrator] Run %s: audit write failed: %v", st.ID, err)
	}
}
