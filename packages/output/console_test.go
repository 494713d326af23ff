package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abdul-hamid-achik/vercel-env-push/packages/core/env"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/metrics"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/vercel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(input string, opts ...ConsoleOption) (*Console, *bytes.Buffer) {
	var buf bytes.Buffer
	opts = append([]ConsoleOption{
		WithWriter(&buf),
		WithInput(strings.NewReader(input)),
		WithNoColor(true),
	}, opts...)
	return NewConsole(opts...), &buf
}

func TestRedact(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"a", "*"},
		{"abcd", "****"},
		{"abcde", "a***e"},
		{"abcdefghijklmnopqrstuvwxyz", "a" + strings.Repeat("*", 24) + "z"},
		{"héllo wörld", "h*********d"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Redact(tt.input))
		})
	}
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "variable", Pluralize(1, "variable"))
	assert.Equal(t, "variables", Pluralize(0, "variable"))
	assert.Equal(t, "variables", Pluralize(2, "variable"))
	assert.Equal(t, "entries", Pluralize(3, "entry", "entries"))
	assert.Equal(t, "entry", Pluralize(1, "entry", "entries"))
}

func TestFormatList(t *testing.T) {
	assert.Equal(t, "", FormatList(nil))
	assert.Equal(t, "production", FormatList([]string{"production"}))
	assert.Equal(t, "preview & production", FormatList([]string{"preview", "production"}))
	assert.Equal(t, "development, preview, & production", FormatList([]string{"development", "preview", "production"}))
}

func TestConsoleStart(t *testing.T) {
	c, buf := newTestConsole("", WithProject("my-app"))
	c.Start(".env.local", []string{"preview", "production"})

	assert.Contains(t, buf.String(), "Preparing environment variables push from '.env.local' to preview & production.")
	assert.Contains(t, buf.String(), "Linked project: my-app")
}

func TestConsolePreviewRedactsValues(t *testing.T) {
	c, buf := newTestConsole("")

	vars := env.NewVars()
	vars.Set("API_KEY", "supersecretvalue")
	vars.Set("PIN", "1234")
	c.Preview(vars)

	out := buf.String()
	assert.Contains(t, out, "The following environment variables will be pushed:")
	assert.Contains(t, out, "API_KEY")
	assert.Contains(t, out, "s**************e")
	assert.Contains(t, out, "****")
	assert.NotContains(t, out, "supersecretvalue")
	assert.NotContains(t, out, "1234")
}

func TestConsoleConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"\n", true},
		{"y\n", true},
		{"YES\n", true},
		{"  yes  \n", true},
		{"n\n", false},
		{"no\n", false},
		{"maybe\n", false},
		{"y", true},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			c, buf := newTestConsole(tt.input)
			got, err := c.Confirm("Push?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, buf.String(), "Push? (Y/n)")
		})
	}
}

func TestSpinnerWithoutTerminal(t *testing.T) {
	c, buf := newTestConsole("")
	s := c.Progress(2)

	op := vercel.Operation{Kind: vercel.OperationRemove, Environment: "production", Key: "A"}
	s.OperationFinished(op, vercel.OutcomeSucceeded, time.Millisecond, nil)
	s.OperationFinished(op, vercel.OutcomeFailed, time.Millisecond, errors.New("boom"))
	assert.Equal(t, 2, s.Done())

	s.Fail("Failed to push environment variables.")
	s.Succeed("ignored once finished")

	out := buf.String()
	assert.Contains(t, out, "Pushing environment variables...")
	assert.Contains(t, out, "✗ Failed to push environment variables.")
	assert.NotContains(t, out, "ignored once finished")
}

func TestConsoleSummary(t *testing.T) {
	c, buf := newTestConsole("")
	c.Summary(metrics.Summary{Removed: 2, Skipped: 1, Added: 3, P50: 2 * time.Millisecond, Duration: 3 * time.Second})

	out := buf.String()
	assert.Contains(t, out, "removed: 2 | skipped: 1 | added: 3 | failed: 0")
	assert.Contains(t, out, "p50: 2ms")
	assert.Contains(t, out, "total: 3.00s")
}
