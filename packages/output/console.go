package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abdul-hamid-achik/vercel-env-push/packages/core/env"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/metrics"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// Console renders the interactive push flow on a terminal
type Console struct {
	writer  io.Writer
	input   *bufio.Reader
	noColor bool
	// spinner is nil until decided by NewConsole
	spinner *bool
	project string

	green  *color.Color
	red    *color.Color
	yellow *color.Color
	cyan   *color.Color
	bold   *color.Color
	dim    *color.Color
}

// ConsoleOption configures a Console
type ConsoleOption func(*Console)

// WithWriter sets the output writer
func WithWriter(w io.Writer) ConsoleOption {
	return func(c *Console) {
		c.writer = w
	}
}

// WithInput sets where confirmation answers are read from
func WithInput(r io.Reader) ConsoleOption {
	return func(c *Console) {
		c.input = bufio.NewReader(r)
	}
}

// WithNoColor disables colored output
func WithNoColor(noColor bool) ConsoleOption {
	return func(c *Console) {
		c.noColor = noColor
	}
}

// WithSpinner forces the animated spinner on or off. By default it is
// enabled only when the writer is a terminal.
func WithSpinner(enabled bool) ConsoleOption {
	return func(c *Console) {
		c.spinner = &enabled
	}
}

// WithProject names the linked Vercel project in the header
func WithProject(name string) ConsoleOption {
	return func(c *Console) {
		c.project = name
	}
}

// NewConsole creates a Console writing to stdout and reading from stdin
func NewConsole(opts ...ConsoleOption) *Console {
	c := &Console{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.input == nil {
		c.input = bufio.NewReader(os.Stdin)
	}

	if c.spinner == nil {
		enabled := IsTerminal(c.writer)
		c.spinner = &enabled
	}

	color.NoColor = c.noColor
	if c.noColor {
		pterm.DisableColor()
	}

	c.green = color.New(color.FgGreen)
	c.red = color.New(color.FgRed)
	c.yellow = color.New(color.FgYellow)
	c.cyan = color.New(color.FgCyan)
	c.bold = color.New(color.Bold)
	c.dim = color.New(color.Faint)

	return c
}

// IsTerminal reports whether w is a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Start prints the push header
func (c *Console) Start(file string, environments []string) {
	fmt.Fprintf(c.writer, "Preparing environment variables push from '%s' to %s.\n",
		c.cyan.Sprint(file), c.cyan.Sprint(FormatList(environments)))

	if c.project != "" {
		fmt.Fprintf(c.writer, "Linked project: %s\n", c.bold.Sprint(c.project))
	}
}

// Preview prints a table of the variables about to be pushed with their
// values redacted
func (c *Console) Preview(vars *env.Vars) {
	fmt.Fprintf(c.writer, "\nThe following %s will be pushed:\n",
		Pluralize(vars.Len(), "environment variable", "environment variables"))

	rows := make([][]string, 0, vars.Len())
	vars.Each(func(key, value string) {
		rows = append(rows, []string{key, Redact(value)})
	})

	c.Table([]string{"Variable", "Value"}, rows)
}

// Table renders rows under headers
func (c *Console) Table(headers []string, rows [][]string) {
	data := pterm.TableData{headers}
	data = append(data, rows...)

	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		// fall back to tab separated rows
		for _, row := range data {
			fmt.Fprintln(c.writer, strings.Join(row, "\t"))
		}
		return
	}
	fmt.Fprintln(c.writer, rendered)
}

// Confirm asks whether to proceed. An empty answer accepts; input that ends
// before any answer declines.
func (c *Console) Confirm(question string) (bool, error) {
	fmt.Fprintf(c.writer, "%s %s ", c.bold.Sprint(question), c.dim.Sprint("(Y/n)"))

	answer, err := c.input.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	if err == io.EOF && answer == "" {
		fmt.Fprintln(c.writer)
		return false, nil
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "", "y", "yes":
		return true, nil
	}
	return false, nil
}

// Progress starts a progress indicator for total operations
func (c *Console) Progress(total int) *Spinner {
	return newSpinner(c, total)
}

// Summary prints per-operation statistics
func (c *Console) Summary(s metrics.Summary) {
	fmt.Fprintln(c.writer)
	c.bold.Fprintln(c.writer, "OPERATIONS")
	fmt.Fprintf(c.writer, "  removed: %d | skipped: %d | added: %d | ",
		s.Removed, s.Skipped, s.Added)
	if s.Failed > 0 {
		c.red.Fprintf(c.writer, "failed: %d", s.Failed)
	} else {
		fmt.Fprintf(c.writer, "failed: %d", s.Failed)
	}
	fmt.Fprintln(c.writer)

	fmt.Fprintf(c.writer, "  p50: %s | p95: %s | max: %s | total: %s\n",
		formatLatency(s.P50), formatLatency(s.P95), formatLatency(s.Max), formatLatency(s.Duration))
}

// DryRun notes that nothing was pushed
func (c *Console) DryRun() {
	c.yellow.Fprintln(c.writer, "\nDry run, no environment variables were pushed.")
}

// Info prints a plain message
func (c *Console) Info(format string, args ...any) {
	fmt.Fprintf(c.writer, format+"\n", args...)
}

// Success prints a message prefixed with a check mark
func (c *Console) Success(format string, args ...any) {
	fmt.Fprintf(c.writer, "%s %s\n", c.green.Sprint("✓"), fmt.Sprintf(format, args...))
}

// Warn prints a highlighted warning
func (c *Console) Warn(format string, args ...any) {
	fmt.Fprintf(c.writer, "%s %s\n", c.yellow.Sprint("!"), fmt.Sprintf(format, args...))
}

// Error prints an error
func (c *Console) Error(err error) {
	fmt.Fprintf(c.writer, "%s %v\n", c.red.Sprint("Error:"), err)
}

// Header prints the tool name and version
func (c *Console) Header(version string) {
	fmt.Fprintf(c.writer, "%s %s\n", c.bold.Sprint("vercel-env-push"), version)
}

// Writer returns the underlying writer
func (c *Console) Writer() io.Writer {
	return c.writer
}
