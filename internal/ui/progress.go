package ui

import (
	"fmt"
	"io"
)

// Steps reports progress through a fixed, strictly sequential pipeline,
// one line per completed step.
type Steps struct {
	out   io.Writer
	total int
	done  int
}

// NewSteps creates a reporter for a pipeline of total steps.
func NewSteps(out io.Writer, total int) *Steps {
	return &Steps{out: out, total: total}
}

// Done marks the next step as completed and prints it.
func (s *Steps) Done(label string) {
	s.done++
	_, _ = fmt.Fprintf(s.out, "[%d/%d] %s\n", s.done, s.total, label)
}

// Log prints an informational message between steps.
func (s *Steps) Log(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format+"\n", args...)
}
