package orchestrator

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"reconpipe/internal/metrics"
	"reconpipe/internal/scope"
)

const (
	StatusSuccess = "Success"
	StatusFailed  = "Failed"
	StatusError   = "Error"
)

// ExecutionRecord is one attempt at one task. Result carries its outcome as
// a "Success: ", "Failed: " or "Error: " prefix.
type ExecutionRecord struct {
	Task   string
	Result string
	Kind   error
	At     time.Time
}

// Status reads the outcome tag back from the result text.
func (r ExecutionRecord) Status() string {
	switch {
	case strings.HasPrefix(r.Result, StatusSuccess):
		return StatusSuccess
	case strings.HasPrefix(r.Result, StatusFailed):
		return StatusFailed
	default:
		return StatusError
	}
}

// RunState is everything one run mutates. Records can only be appended.
type RunState struct {
	ID          string
	Instruction string
	Scope       scope.Scope
	Queue       *TaskQueue

	GenerationCount  int
	GlobalRetryCount int
	RecursionCount   int

	originalTask string
	originalSet  bool
	records      []ExecutionRecord

	Metrics metrics.RunMetrics
}

func NewRunState(instruction string, s scope.Scope, tasks []string) *RunState {
	id := uuid.New().String()[:8]
	return &RunState{
		ID:          id,
		Instruction: instruction,
		Scope:       append(scope.Scope(nil), s...),
		Queue:       NewTaskQueue(tasks),
		Metrics:     metrics.RunMetrics{RunID: id, Start: time.Now()},
	}
}

// OriginalTask is the first task popped in this run, if any.
func (st *RunState) OriginalTask() (string, bool) {
	return st.originalTask, st.originalSet
}

func (st *RunState) setOriginal(task string) {
	if st.originalSet {
		return
	}
	st.originalTask = task
	st.originalSet = true
}

// Records returns a copy of the execution records in append order.
func (st *RunState) Records() []ExecutionRecord {
	return append([]ExecutionRecord(nil), st.records...)
}

func (st *RunState) appendRecord(rec ExecutionRecord) {
	st.records = append(st.records, rec)
}
