package vercel

import (
	"context"
	"slices"

	"github.com/abdul-hamid-achik/vercel-env-push/packages/logging"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/process"
	"github.com/rs/zerolog"
)

// NotFoundMarker is what `vercel env rm` prints on stderr when the variable
// does not exist in the target environment
const NotFoundMarker = "was not found"

// DefaultCLI runs the Vercel CLI through npx without an install prompt
var DefaultCLI = []string{"npx", "--yes", "vercel"}

// Commander removes and adds single environment variables
type Commander interface {
	Remove(ctx context.Context, environment, key string) error
	Add(ctx context.Context, environment, key, value string) error
}

// Client invokes the Vercel CLI as a subprocess
type Client struct {
	exec   process.Executor
	cli    []string
	branch string
	token  string
	dir    string
	logger zerolog.Logger
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithCLI sets the command prefix used to reach the Vercel CLI
func WithCLI(cli []string) ClientOption {
	return func(c *Client) {
		if len(cli) > 0 {
			c.cli = slices.Clone(cli)
		}
	}
}

// WithBranch scopes preview variables to a git branch
func WithBranch(branch string) ClientOption {
	return func(c *Client) {
		c.branch = branch
	}
}

// WithToken forwards an access token to every invocation
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithDir runs the CLI from dir, where the linked .vercel project lives
func WithDir(dir string) ClientOption {
	return func(c *Client) {
		c.dir = dir
	}
}

// NewClient creates a Client using exec to run commands
func NewClient(exec process.Executor, opts ...ClientOption) *Client {
	c := &Client{
		exec:   exec,
		cli:    slices.Clone(DefaultCLI),
		logger: logging.GetLogger("vercel"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RemoveCommand builds `vercel env rm <key> <env> [branch] -y [-t token]`
func (c *Client) RemoveCommand(environment, key string) process.Command {
	args := append(c.baseArgs(), "env", "rm", key, environment)
	if c.branch != "" {
		args = append(args, c.branch)
	}
	args = append(args, "-y")
	args = append(args, c.tokenArgs()...)

	return process.Command{Name: c.cli[0], Args: args, Dir: c.dir}
}

// AddCommand builds `vercel env add <key> <env> [branch] [-t token]` with
// the value piped through stdin
func (c *Client) AddCommand(environment, key, value string) process.Command {
	args := append(c.baseArgs(), "env", "add", key, environment)
	if c.branch != "" {
		args = append(args, c.branch)
	}
	args = append(args, c.tokenArgs()...)

	return process.Command{Name: c.cli[0], Args: args, Stdin: value, Dir: c.dir}
}

func (c *Client) Remove(ctx context.Context, environment, key string) error {
	return c.run(ctx, c.RemoveCommand(environment, key))
}

func (c *Client) Add(ctx context.Context, environment, key, value string) error {
	return c.run(ctx, c.AddCommand(environment, key, value))
}

func (c *Client) run(ctx context.Context, cmd process.Command) error {
	c.logger.Debug().
		Str("command", cmd.Name).
		Strs("args", MaskToken(cmd.Args)).
		Msg("Executing command")

	result, err := c.exec.Run(ctx, cmd)
	if err != nil {
		c.logger.Debug().Err(err).Strs("args", MaskToken(cmd.Args)).Msg("Command failed")
		return err
	}

	c.logger.Trace().Dur("duration", result.Duration).Msg("Command succeeded")
	return nil
}

func (c *Client) baseArgs() []string {
	return slices.Clone(c.cli[1:])
}

func (c *Client) tokenArgs() []string {
	if c.token == "" {
		return nil
	}
	return []string{"-t", c.token}
}

// MaskToken returns a copy of args with the value following -t/--token hidden
func MaskToken(args []string) []string {
	masked := slices.Clone(args)
	for i := 0; i < len(masked)-1; i++ {
		if masked[i] == "-t" || masked[i] == "--token" {
			masked[i+1] = "***"
			i++
		}
	}
	return masked
}
