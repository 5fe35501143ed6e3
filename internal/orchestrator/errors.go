package orchestrator

import "errors"

// Failure classes. Each one becomes an ExecutionRecord and a retry count,
// never an error returned from Step.
var (
	ErrDependencyMissing = errors.New("dependency missing")
	ErrNoTargetFound     = errors.New("no target found")
	ErrOutOfScope        = errors.New("target out of scope")
	ErrNonZeroExit       = errors.New("nonzero exit")
	ErrTimeout           = errors.New("timeout expired")
	ErrExecution         = errors.New("execution error")
)

// KindName is the stable label used in audit rows and metrics.
func KindName(kind error) string {
	switch {
	case kind == nil:
		return "success"
	case errors.Is(kind, ErrDependencyMissing):
		return "dependency_missing"
	case errors.Is(kind, ErrNoTargetFound):
		return "no_target"
	case errors.Is(kind, ErrOutOfScope):
		return "out_of_scope"
	case errors.Is(kind, ErrNonZeroExit):
		return "nonzero_exit"
	case errors.Is(kind, ErrTimeout):
		return "timeout"
	default:
		return "error"
	}
}
