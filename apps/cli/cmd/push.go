package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/abdul-hamid-achik/vercel-env-push/packages/core/config"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/history"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/hook"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/logging"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/output"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/process"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/project"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/push"
	"github.com/spf13/cobra"
)

var (
	dryRunFlag         bool
	yesFlag            bool
	branchFlag         string
	tokenFlag          string
	allowCustomEnvFlag bool
	prePushFlag        string
	nonInteractiveFlag bool
	watchFlag          bool
	historyFlag        string
)

func registerPushFlags(c *cobra.Command) {
	c.Flags().BoolVar(&dryRunFlag, "dry-run", false, "List environment variables without pushing them")
	c.Flags().BoolVar(&dryRunFlag, "dry", false, "Alias for --dry-run")
	c.Flags().BoolVarP(&yesFlag, "yes", "y", getEnvBool("VERCEL_ENV_PUSH_YES", false), "Skip the confirmation prompt (env: VERCEL_ENV_PUSH_YES)")
	c.Flags().StringVarP(&branchFlag, "branch", "b", "", "Git branch to scope preview environment variables to")
	// no env default here, it would show the token in --help
	c.Flags().StringVarP(&tokenFlag, "token", "t", "", "Vercel access token (env: VERCEL_TOKEN)")
	c.Flags().BoolVar(&allowCustomEnvFlag, "allow-custom-env", false, "Allow custom environment names")
	c.Flags().StringVar(&prePushFlag, "pre-push", getEnvString("VERCEL_ENV_PUSH_PRE_PUSH", ""), "Shell command that rewrites the variables (dotenv on stdin and stdout) (env: VERCEL_ENV_PUSH_PRE_PUSH)")
	c.Flags().BoolVar(&nonInteractiveFlag, "non-interactive", getEnvBool("CI", false), "Disable the header, preview, prompt and spinner (env: CI)")
	c.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Push again whenever the file changes")
	c.Flags().StringVar(&historyFlag, "history", "", "Record pushes in a SQLite journal (optionally at the given path)")
	c.Flags().Lookup("history").NoOptDefVal = defaultHistory

	_ = c.Flags().MarkHidden("dry")
}

func pushCommand(cmd *cobra.Command, args []string) error {
	file := args[0]
	environments := args[1:]
	logger := logging.GetLogger("cli")

	cfg, err := config.Load(configFlag)
	if err != nil {
		return err
	}

	noColor := noColorFlag || cfg.GetNoColor()
	allowCustomEnv := cfg.GetAllowCustomEnv()
	if cmd.Flags().Changed("allow-custom-env") {
		allowCustomEnv = allowCustomEnvFlag
	}

	token := tokenFlag
	if token == "" {
		token = os.Getenv("VERCEL_TOKEN")
	}

	historyPath := cfg.History
	if historyFlag != "" {
		historyPath = historyFlag
	}

	consoleOpts := []output.ConsoleOption{
		output.WithWriter(cmd.OutOrStdout()),
		output.WithInput(cmd.InOrStdin()),
		output.WithNoColor(noColor),
	}
	if linked, err := project.Find("."); err == nil {
		consoleOpts = append(consoleOpts, output.WithProject(linked.DisplayName()))
	} else {
		logger.Debug().Err(err).Msg("No linked Vercel project")
	}
	console := output.NewConsole(consoleOpts...)

	var transform push.Transform
	if prePushFlag != "" {
		transform = hook.Command(prePushFlag, process.NewOSExecutor())
	}

	pusher := push.NewPusher(
		push.WithCLI(cfg.CLIArgs()),
		push.WithRateLimit(cfg.RateLimitConfig()),
		push.WithReporter(push.ConsoleReporter(console)),
	)

	opts := push.Options{
		DryRun:         dryRunFlag,
		Interactive:    !nonInteractiveFlag,
		Yes:            yesFlag,
		Branch:         branchFlag,
		Token:          token,
		AllowCustomEnv: allowCustomEnv,
		PrePush:        transform,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := func() error {
		result, err := pusher.Push(ctx, file, environments, opts)
		recordHistory(ctx, historyPath, result, err)

		if verboseFlag > 0 && result.Stats.Total() > 0 {
			console.Summary(result.Stats)
		}
		if err == nil && opts.DryRun && opts.Interactive {
			console.DryRun()
		}
		return err
	}

	err = run()
	if !watchFlag {
		return err
	}
	if err != nil {
		console.Error(err)
	}

	return watchFile(ctx, file, console, run, err)
}

// defaultHistory selects the journal under the user config directory
const defaultHistory = "default"

func resolveHistoryPath(path string) (string, error) {
	if path == defaultHistory {
		return history.DefaultPath()
	}
	return path, nil
}

func recordHistory(ctx context.Context, path string, result *push.Result, pushErr error) {
	if path == "" {
		return
	}
	logger := logging.GetLogger("history")

	path, err := resolveHistoryPath(path)
	if err != nil {
		logger.Warn().Err(err).Msg("Unable to locate push history")
		return
	}

	store, err := history.Open(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Unable to open push history")
		return
	}
	defer store.Close()

	// record even when the push context was cancelled
	if err := store.Record(context.WithoutCancel(ctx), history.FromResult(result, pushErr)); err != nil {
		logger.Warn().Err(err).Msg("Unable to record push")
	}
}
