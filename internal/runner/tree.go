package runner

import (
	"github.com/shirou/gopsutil/v3/process"

	"reconpipe/internal/logger"
)

// terminateTree stops every descendant of pid, then pid itself. Grandchildren
// (a scanner's helper tools) would otherwise outlive their parent.
func terminateTree(pid int) {
	parent, err := process.NewProcess(int32(pid))
	if err != nil {
		logger.Log.Printf("[Runner] pid %d already gone: %v", pid, err)
		return
	}
	for _, child := range descendants(parent) {
		if err := child.Terminate(); err != nil {
			logger.Log.Printf("[Runner] terminate child %d: %v", child.Pid, err)
		}
	}
	if err := parent.Terminate(); err != nil {
		logger.Log.Printf("[Runner] terminate %d: %v", pid, err)
	}
}

func descendants(p *process.Process) []*process.Process {
	children, err := p.Children()
	if err != nil {
		return nil
	}
	out := make([]*process.Process, 0, len(children))
	for _, c := range children {
		out = append(out, c)
		out = append(out, descendants(c)...)
	}
	return out
}
