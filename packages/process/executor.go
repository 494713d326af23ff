package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Command describes a single external command invocation
type Command struct {
	Name  string
	Args  []string
	Stdin string
	Dir   string
	Env   []string // appended to os.Environ()
}

// String renders the command line for diagnostics. Stdin is never included.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result holds the captured output of a successful command
type Result struct {
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Executor runs commands. Implementations must be safe for concurrent use.
type Executor interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// ExitError is returned when a command ran but exited with a non-zero code
type ExitError struct {
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *ExitError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = strings.TrimSpace(e.Stdout)
	}
	if msg == "" {
		return fmt.Sprintf("command %q exited with code %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("command %q exited with code %d: %s", e.Command, e.ExitCode, msg)
}

// IsExitError reports whether err wraps an *ExitError
func IsExitError(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}

// StderrContains reports whether err wraps an *ExitError whose stderr
// contains substr
func StderrContains(err error, substr string) bool {
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	return strings.Contains(exitErr.Stderr, substr)
}

// OSExecutor runs commands with os/exec
type OSExecutor struct{}

// NewOSExecutor creates an executor backed by os/exec
func NewOSExecutor() *OSExecutor {
	return &OSExecutor{}
}

// Run executes the command and waits for it to exit
func (e *OSExecutor) Run(ctx context.Context, cmd Command) (*Result, error) {
	execCmd := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	execCmd.Dir = cmd.Dir
	execCmd.Env = append(os.Environ(), cmd.Env...)

	if cmd.Stdin != "" {
		execCmd.Stdin = strings.NewReader(cmd.Stdin)
	}

	var stdout, stderr bytes.Buffer
	execCmd.Stdout = &stdout
	execCmd.Stderr = &stderr

	start := time.Now()
	err := execCmd.Run()
	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		return nil, &ExitError{
			Command:  cmd.String(),
			ExitCode: exitErr.ExitCode(),
			Stdout:   result.Stdout,
			Stderr:   result.Stderr,
		}
	}

	if ctx.Err() != nil {
		return nil, fmt.Errorf("command %q interrupted: %w", cmd.Name, ctx.Err())
	}

	return nil, fmt.Errorf("failed to run command %q: %w", cmd.Name, err)
}
