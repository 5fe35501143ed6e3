package display

import (
	"fmt"
	"strings"

	"reconpipe/internal/metrics"
)

const maxTaskColumn = 40

func FormatRunMetrics(rm *metrics.RunMetrics) string {
	if rm == nil {
		return "No metrics available."
	}
	var sb strings.Builder
	sb.WriteString("Execution metrics:\n")
	sb.WriteString(fmt.Sprintf("- Total: %d ms  (iterations=%d, retries=%d, generations=%d)\n",
		rm.DurationMs, len(rm.Iterations), rm.Retries, rm.Generations))
	for _, it := range rm.Iterations {
		sb.WriteString(fmt.Sprintf("    • #%-3d %-43s %6d ms  [%d record(s)]\n",
			it.Iteration, formatValueForDisplay(it.Task, maxTaskColumn), it.DurationMs, it.Records))
	}
	return sb.String()
}
