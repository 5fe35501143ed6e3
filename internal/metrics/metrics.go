package metrics

import "time"

type IterationMetrics struct {
	Iteration  int       `json:"iteration"`
	Task       string    `json:"task"`
	Command    string    `json:"command,omitempty"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	DurationMs int64     `json:"duration_ms"`
	Records    int       `json:"records"`
}

type RunMetrics struct {
	RunID       string             `json:"run_id"`
	Start       time.Time          `json:"start"`
	End         time.Time          `json:"end"`
	DurationMs  int64              `json:"duration_ms"`
	Generations int                `json:"generations"`
	Retries     int                `json:"retries"`
	Iterations  []IterationMetrics `json:"iterations"`
}

// Compute derived fields for an iteration.
func (i *IterationMetrics) Finalize() {
	i.DurationMs = i.End.Sub(i.Start).Milliseconds()
}

func (r *RunMetrics) Finalize() {
	r.DurationMs = r.End.Sub(r.Start).Milliseconds()
}
