package display

import (
	"fmt"
	"strings"

	"reconpipe/internal/orchestrator"
	"reconpipe/internal/utils"
)

const maxResultLength = 300

type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Errored   int
}

// Summarize counts records by their outcome tag.
func Summarize(records []orchestrator.ExecutionRecord) Summary {
	s := Summary{Total: len(records)}
	for _, rec := range records {
		switch rec.Status() {
		case orchestrator.StatusSuccess:
			s.Succeeded++
		case orchestrator.StatusFailed:
			s.Failed++
		default:
			s.Errored++
		}
	}
	return s
}

// stdout report (results truncated)
func FormatReport(st *orchestrator.RunState) string {
	return formatReportInternal(st, maxResultLength)
}

// full report (no truncation), used for logs
func FormatReportFull(st *orchestrator.RunState) string {
	return formatReportInternal(st, -1)
}

func formatReportInternal(st *orchestrator.RunState, limit int) string {
	var sb strings.Builder
	records := st.Records()

	sb.WriteString(titleStyle.Render("Cybersecurity Pipeline Final Report") + "\n")
	sb.WriteString("--------------------------------------------------\n")
	sb.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Run:"), st.ID))
	sb.WriteString(fmt.Sprintf("%s %s\n\n", labelStyle.Render("Scope:"), st.Scope))

	sb.WriteString(titleStyle.Render("Executed Tasks") + "\n")
	for i, rec := range records {
		status := rec.Status()
		sb.WriteString(fmt.Sprintf("%d. Task: %s\n", i+1, rec.Task))
		sb.WriteString(fmt.Sprintf("   Status: %s\n", statusStyle(status).Render(status)))
		sb.WriteString(fmt.Sprintf("   Result: %s\n\n", formatValueForDisplay(rec.Result, limit)))
	}

	s := Summarize(records)
	sb.WriteString(titleStyle.Render("Summary") + "\n")
	sb.WriteString(fmt.Sprintf("- Total Tasks Executed: %d\n", s.Total))
	sb.WriteString(fmt.Sprintf("- Tasks Succeeded: %d\n", s.Succeeded))
	sb.WriteString(fmt.Sprintf("- Tasks Failed: %d\n", s.Failed))
	sb.WriteString(fmt.Sprintf("- Tasks Errored: %d\n", s.Errored))
	if left := st.Queue.Len(); left > 0 {
		sb.WriteString(fmt.Sprintf("- Tasks Left Unexecuted: %d\n", left))
	}
	sb.WriteString("--------------------------------------------------")
	return sb.String()
}

// Limit a value's stdout length (limit < 0 means no limit)
func formatValueForDisplay(value any, limit int) string {
	s := fmt.Sprintf("%v", value)
	s = strings.ReplaceAll(s, "\n", "\\n")
	return utils.Truncate(s, limit)
}
