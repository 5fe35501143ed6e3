package audit

import (
	"context"
	"fmt"
	"os"
	"sync"

	"reconpipe/internal/scope"
)

// FileSink writes the plain-text audit log. The file is recreated for each
// run and every entry is synced before Record returns.
type FileSink struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

func OpenFile(path string) (*FileSink, error) {
	if path == "" {
		return nil, fmt.Errorf("audit file path is empty")
	}
	return &FileSink{path: path}, nil
}

func (s *FileSink) Begin(_ context.Context, _ string, sc scope.Scope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.f != nil {
		s.f.Close()
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	s.f = f
	header := fmt.Sprintf("Cybersecurity Pipeline Audit Log \n\nScope: %s\n\nTask Execution Log\n", sc)
	return s.write(header)
}

func (s *FileSink) Record(_ context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.f == nil {
		return fmt.Errorf("audit log %s: record before begin", s.path)
	}
	return s.write(fmt.Sprintf("[%s] Task: %s\n   Result: %s\n\n", e.At.Format(TimeLayout), e.Task, e.Result))
}

func (s *FileSink) write(text string) error {
	if _, err := s.f.WriteString(text); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return s.f.Sync()
}

func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}
