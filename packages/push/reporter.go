package push

import (
	"time"

	"github.com/abdul-hamid-achik/vercel-env-push/packages/core/env"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/output"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/vercel"
)

// Progress tracks sync operations and is finalized exactly once
type Progress interface {
	vercel.Observer
	Succeed(message string)
	Fail(message string)
}

// Reporter is the interactive side of a push. It is only used when
// Options.Interactive is set.
type Reporter interface {
	Start(file string, environments []string)
	Preview(vars *env.Vars)
	Confirm(question string) (bool, error)
	Progress(total int) Progress
}

type consoleReporter struct {
	*output.Console
}

// ConsoleReporter adapts an output.Console to a Reporter
func ConsoleReporter(c *output.Console) Reporter {
	return consoleReporter{Console: c}
}

func (r consoleReporter) Progress(total int) Progress {
	return r.Console.Progress(total)
}

type nopReporter struct{}

func (nopReporter) Start(string, []string)       {}
func (nopReporter) Preview(*env.Vars)            {}
func (nopReporter) Confirm(string) (bool, error) { return true, nil }
func (nopReporter) Progress(int) Progress        { return nopProgress{} }

type nopProgress struct{}

func (nopProgress) PhaseStarted(vercel.OperationKind, int)                                   {}
func (nopProgress) OperationStarted(vercel.Operation)                                        {}
func (nopProgress) OperationFinished(vercel.Operation, vercel.Outcome, time.Duration, error) {}
func (nopProgress) Succeed(string)                                                           {}
func (nopProgress) Fail(string)                                                              {}
