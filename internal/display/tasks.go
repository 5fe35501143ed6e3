package display

import (
	"fmt"
	"strings"

	"reconpipe/internal/scope"
)

// FormatTaskList shows the breakdown an operator confirms before a run.
func FormatTaskList(instruction string, s scope.Scope, tasks []string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Received instruction: %s\n", instruction))
	sb.WriteString(fmt.Sprintf("Scope: %s\n", s))
	sb.WriteString("Proposed tasks:\n")
	sb.WriteString("--------------------------------------------------\n")
	if len(tasks) == 0 {
		sb.WriteString("  (none)\n")
	}
	for i, task := range tasks {
		sb.WriteString(fmt.Sprintf("  %2d. %s\n", i+1, formatValueForDisplay(task, maxResultLength)))
	}
	sb.WriteString("--------------------------------------------------")
	return sb.String()
}
