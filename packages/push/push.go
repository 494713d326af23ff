package push

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/abdul-hamid-achik/vercel-env-push/packages/core/env"
	apperrors "github.com/abdul-hamid-achik/vercel-env-push/packages/errors"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/logging"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/metrics"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/output"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/process"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/ratelimit"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/vercel"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ConfirmQuestion is asked before anything is pushed
const ConfirmQuestion = "Do you want to push these environment variables?"

// Transform rewrites the parsed variables before they are previewed and
// pushed. It may add, remove or rename keys. Its error is returned as is.
type Transform func(ctx context.Context, vars *env.Vars) (*env.Vars, error)

// Options controls a single push
type Options struct {
	// DryRun stops after the preview without running any CLI command
	DryRun bool
	// Interactive enables the header, preview, confirmation and spinner
	Interactive bool
	// Yes skips the confirmation prompt
	Yes bool
	// Branch scopes a preview push to a git branch
	Branch string
	// Token is forwarded to the Vercel CLI
	Token string
	// AllowCustomEnv accepts custom environment names
	AllowCustomEnv bool
	// PrePush runs once after parsing
	PrePush Transform
}

// Result describes a finished, aborted or failed push
type Result struct {
	ID           string
	File         string
	Environments []string
	Keys         []string
	DryRun       bool
	StartedAt    time.Time
	Duration     time.Duration
	Stats        metrics.Summary
}

// Pusher runs pushes. A Pusher may be reused; every push gets its own rate
// limiter and metrics.
type Pusher struct {
	executor  process.Executor
	cli       []string
	dir       string
	rateLimit ratelimit.Config
	reporter  Reporter
	observers []vercel.Observer
	logger    zerolog.Logger
}

// Option configures a Pusher
type Option func(*Pusher)

// WithExecutor sets how CLI commands are run
func WithExecutor(exec process.Executor) Option {
	return func(p *Pusher) {
		p.executor = exec
	}
}

// WithCLI sets the Vercel CLI command prefix
func WithCLI(cli []string) Option {
	return func(p *Pusher) {
		if len(cli) > 0 {
			p.cli = slices.Clone(cli)
		}
	}
}

// WithDir runs the Vercel CLI from dir
func WithDir(dir string) Option {
	return func(p *Pusher) {
		p.dir = dir
	}
}

// WithRateLimit sets the admission limits for CLI invocations
func WithRateLimit(cfg ratelimit.Config) Option {
	return func(p *Pusher) {
		p.rateLimit = cfg
	}
}

// WithReporter sets the interactive reporter
func WithReporter(r Reporter) Option {
	return func(p *Pusher) {
		if r != nil {
			p.reporter = r
		}
	}
}

// WithObserver attaches an extra observer to every sync
func WithObserver(obs vercel.Observer) Option {
	return func(p *Pusher) {
		if obs != nil {
			p.observers = append(p.observers, obs)
		}
	}
}

// NewPusher creates a Pusher using the OS executor, npx and the default
// rate limit unless overridden
func NewPusher(opts ...Option) *Pusher {
	p := &Pusher{
		executor:  process.NewOSExecutor(),
		cli:       slices.Clone(vercel.DefaultCLI),
		rateLimit: ratelimit.DefaultConfig(),
		logger:    logging.GetLogger("push"),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.reporter == nil {
		p.reporter = ConsoleReporter(output.NewConsole())
	}
	return p
}

// PushEnvVars pushes the variables of file to environments with a default
// Pusher
func PushEnvVars(ctx context.Context, file string, environments []string, opts Options) error {
	_, err := NewPusher().Push(ctx, file, environments, opts)
	return err
}

// Push validates the request, parses file and replaces the variables of
// every environment. The returned Result is never nil.
func (p *Pusher) Push(ctx context.Context, file string, environments []string, opts Options) (*Result, error) {
	result := &Result{
		ID:        uuid.NewString(),
		File:      file,
		DryRun:    opts.DryRun,
		StartedAt: time.Now(),
	}
	defer func() {
		result.Duration = time.Since(result.StartedAt)
	}()

	logger := p.logger.With().Str("run", result.ID).Logger()

	envs, err := vercel.ValidateEnvironments(environments, vercel.ValidateOptions{
		AllowCustomEnv: opts.AllowCustomEnv,
		Branch:         opts.Branch,
	})
	if err != nil {
		return result, err
	}
	result.Environments = envs

	if err := env.ValidateFile(file); err != nil {
		return result, err
	}

	reporter := p.reporter
	if !opts.Interactive {
		reporter = nopReporter{}
	}

	reporter.Start(file, envs)
	logger.Info().
		Str("file", file).
		Strs("environments", envs).
		Str("branch", opts.Branch).
		Bool("dryRun", opts.DryRun).
		Msg("Starting push")

	vars, err := env.ParseEnvFile(file)
	if err != nil {
		return result, err
	}

	if opts.PrePush != nil {
		logger.Debug().Int("keys", vars.Len()).Msg("Running pre-push transform")
		vars, err = opts.PrePush(ctx, vars.Clone())
		if err != nil {
			return result, err
		}
		if vars == nil {
			vars = env.NewVars()
		}
	}
	result.Keys = vars.Keys()

	reporter.Preview(vars)

	if opts.DryRun {
		logger.Info().Int("keys", vars.Len()).Msg("Dry run, skipping push")
		return result, nil
	}

	if opts.Interactive && !opts.Yes {
		confirmed, err := reporter.Confirm(ConfirmQuestion)
		if err != nil {
			return result, err
		}
		if !confirmed {
			return result, apperrors.New(apperrors.ErrUserAborted, "User aborted.")
		}
	}

	total := vars.Len() * len(envs)
	progress := reporter.Progress(2 * total)

	m := metrics.New()
	observers := vercel.Observers{m, progress}
	observers = append(observers, p.observers...)

	client := vercel.NewClient(p.executor,
		vercel.WithCLI(p.cli),
		vercel.WithBranch(opts.Branch),
		vercel.WithToken(opts.Token),
		vercel.WithDir(p.dir),
	)
	syncer := vercel.NewSyncer(client, ratelimit.New(p.rateLimit), vercel.WithObserver(observers))

	m.Start()
	err = syncer.Replace(ctx, envs, vars)
	m.Stop()
	result.Stats = m.GetSummary()

	if err != nil {
		progress.Fail("Failed to push environment variables.")
		logger.Debug().Err(err).Msg("Push failed")
		return result, err
	}

	progress.Succeed(fmt.Sprintf("Pushed %d %s to %s.",
		total, output.Pluralize(total, "environment variable"), output.FormatList(envs)))
	logger.Info().Int("count", total).Dur("duration", result.Stats.Duration).Msg("Push completed")

	return result, nil
}
