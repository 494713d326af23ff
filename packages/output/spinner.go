package output

import (
	"fmt"
	"sync"
	"time"

	"github.com/abdul-hamid-achik/vercel-env-push/packages/vercel"
	"github.com/pterm/pterm"
)

const pushingText = "Pushing environment variables"

// Spinner shows push progress. It implements vercel.Observer so it can be
// attached to a Syncer directly.
type Spinner struct {
	console *Console
	printer *pterm.SpinnerPrinter // nil when animation is disabled

	mu       sync.Mutex
	total    int
	done     int
	failed   int
	finished bool
}

func newSpinner(c *Console, total int) *Spinner {
	s := &Spinner{console: c, total: total}

	if *c.spinner {
		printer, err := pterm.DefaultSpinner.
			WithWriter(c.writer).
			WithRemoveWhenDone(false).
			Start(s.text())
		if err == nil {
			s.printer = printer
			return s
		}
	}

	fmt.Fprintf(c.writer, "%s...\n", pushingText)
	return s
}

func (s *Spinner) text() string {
	return fmt.Sprintf("%s (%d/%d)", pushingText, s.done, s.total)
}

func (s *Spinner) PhaseStarted(vercel.OperationKind, int) {}

func (s *Spinner) OperationStarted(vercel.Operation) {}

func (s *Spinner) OperationFinished(_ vercel.Operation, outcome vercel.Outcome, _ time.Duration, _ error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.done++
	if outcome == vercel.OutcomeFailed {
		s.failed++
	}
	if s.printer != nil && !s.finished {
		s.printer.UpdateText(s.text())
	}
}

// Done returns the number of settled operations
func (s *Spinner) Done() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Succeed stops the spinner with a success message
func (s *Spinner) Succeed(message string) {
	if !s.finish() {
		return
	}
	if s.printer != nil {
		s.printer.Success(message)
		return
	}
	s.console.Success("%s", message)
}

// Fail stops the spinner with a failure message
func (s *Spinner) Fail(message string) {
	if !s.finish() {
		return
	}
	if s.printer != nil {
		s.printer.Fail(message)
		return
	}
	fmt.Fprintf(s.console.writer, "%s %s\n", s.console.red.Sprint("✗"), message)
}

func (s *Spinner) finish() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return false
	}
	s.finished = true
	return true
}
