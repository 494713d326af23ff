package cmd

import (
	"os"

	"github.com/abdul-hamid-achik/vercel-env-push/packages/logging"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/output"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	verboseFlag int // 0=off, 1=-v, 2=-vv, 3=-vvv
	noColorFlag bool
	configFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "vercel-env-push <file> <env> [...otherEnvs]",
	Short: "Push environment variables from a .env file to Vercel.",
	Long: `vercel-env-push reads a dotenv file and replaces the matching
environment variables of one or more Vercel environments using the
Vercel CLI.

Every variable is first removed from each environment and then added
back with its new value, so stale values never linger.

Known environments: development, preview, production.

Examples:
  vercel-env-push .env.local production
  vercel-env-push .env.local preview production --dry-run
  vercel-env-push .env.preview preview --branch feature-x
  vercel-env-push .env staging --allow-custom-env --yes`,
	Args:          cobra.MinimumNArgs(2),
	RunE:          pushCommand,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetupLogger(verboseFlag, noColorFlag)
	},
}

// Execute runs the CLI and exits with ExitFailure on any error
func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		output.NewConsole(
			output.WithWriter(os.Stderr),
			output.WithNoColor(noColorFlag),
		).Error(err)
		os.Exit(ExitFailure)
	}
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verboseFlag, "verbose", "v", "Verbose output (-v, -vv, -vvv for more detail)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", getEnvBool("NO_COLOR", false), "Disable colored output (env: NO_COLOR)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", getEnvString("VERCEL_ENV_PUSH_CONFIG", ""), "Path to config file (env: VERCEL_ENV_PUSH_CONFIG)")

	registerPushFlags(rootCmd)

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
}

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
