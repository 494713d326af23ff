package vercel

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/abdul-hamid-achik/vercel-env-push/packages/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExecutor struct {
	mu       sync.Mutex
	commands []process.Command
	err      error
}

func (e *recordingExecutor) Run(_ context.Context, cmd process.Command) (*process.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.commands = append(e.commands, cmd)
	if e.err != nil {
		return nil, e.err
	}
	return &process.Result{}, nil
}

func TestClientCommands(t *testing.T) {
	tests := []struct {
		name       string
		opts       []ClientOption
		wantRemove []string
		wantAdd    []string
	}{
		{
			name:       "defaults",
			wantRemove: []string{"--yes", "vercel", "env", "rm", "API_KEY", "production", "-y"},
			wantAdd:    []string{"--yes", "vercel", "env", "add", "API_KEY", "production"},
		},
		{
			name:       "branch and token",
			opts:       []ClientOption{WithBranch("feature"), WithToken("secret-token")},
			wantRemove: []string{"--yes", "vercel", "env", "rm", "API_KEY", "production", "feature", "-y", "-t", "secret-token"},
			wantAdd:    []string{"--yes", "vercel", "env", "add", "API_KEY", "production", "feature", "-t", "secret-token"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(&recordingExecutor{}, tt.opts...)

			rm := c.RemoveCommand("production", "API_KEY")
			assert.Equal(t, "npx", rm.Name)
			assert.Equal(t, tt.wantRemove, rm.Args)
			assert.Empty(t, rm.Stdin)

			add := c.AddCommand("production", "API_KEY", "s3cr3t")
			assert.Equal(t, "npx", add.Name)
			assert.Equal(t, tt.wantAdd, add.Args)
			assert.Equal(t, "s3cr3t", add.Stdin)
		})
	}
}

func TestClientCustomCLI(t *testing.T) {
	c := NewClient(&recordingExecutor{}, WithCLI([]string{"vercel"}), WithDir("/app"))

	cmd := c.RemoveCommand("preview", "KEY")
	assert.Equal(t, "vercel", cmd.Name)
	assert.Equal(t, []string{"env", "rm", "KEY", "preview", "-y"}, cmd.Args)
	assert.Equal(t, "/app", cmd.Dir)

	// an empty prefix keeps the default
	c = NewClient(&recordingExecutor{}, WithCLI(nil))
	assert.Equal(t, "npx", c.RemoveCommand("preview", "KEY").Name)
}

func TestClientValueNeverInArgs(t *testing.T) {
	exec := &recordingExecutor{}
	c := NewClient(exec)

	require.NoError(t, c.Add(context.Background(), "production", "KEY", "very-secret-value"))

	require.Len(t, exec.commands, 1)
	assert.NotContains(t, exec.commands[0].Args, "very-secret-value")
	assert.NotContains(t, exec.commands[0].String(), "very-secret-value")
	assert.Equal(t, "very-secret-value", exec.commands[0].Stdin)
}

func TestClientPropagatesExecutorError(t *testing.T) {
	want := &process.ExitError{Command: "npx", ExitCode: 1, Stderr: "boom"}
	c := NewClient(&recordingExecutor{err: want})

	err := c.Remove(context.Background(), "production", "KEY")
	var exitErr *process.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, "boom", exitErr.Stderr)
}

func TestMaskToken(t *testing.T) {
	args := []string{"env", "rm", "KEY", "production", "-y", "-t", "secret"}
	masked := MaskToken(args)

	assert.Equal(t, []string{"env", "rm", "KEY", "production", "-y", "-t", "***"}, masked)
	assert.Equal(t, "secret", args[6])

	assert.Equal(t, []string{"--token", "***"}, MaskToken([]string{"--token", "x"}))
	assert.Equal(t, []string{"-t"}, MaskToken([]string{"-t"}))
}
