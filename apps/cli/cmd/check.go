package cmd

import (
	"github.com/abdul-hamid-achik/vercel-env-push/packages/core/config"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/core/env"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/output"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/vercel"
	"github.com/spf13/cobra"
)

var (
	checkBranchFlag         string
	checkAllowCustomEnvFlag bool
)

var checkCmd = &cobra.Command{
	Use:   "check <file> [env...]",
	Short: "Parse a .env file and validate environments without pushing",
	Long: `Parse and expand a .env file, then validate the given environments,
without running the Vercel CLI.

Examples:
  vercel-env-push check .env.local
  vercel-env-push check .env.local preview production
  vercel-env-push check .env.preview preview --branch feature-x`,
	Args: cobra.MinimumNArgs(1),
	RunE: checkCommand,
}

func init() {
	checkCmd.Flags().StringVarP(&checkBranchFlag, "branch", "b", "", "Git branch the push would be scoped to")
	checkCmd.Flags().BoolVar(&checkAllowCustomEnvFlag, "allow-custom-env", false, "Allow custom environment names")
}

func checkCommand(cmd *cobra.Command, args []string) error {
	file := args[0]
	environments := args[1:]

	cfg, err := config.Load(configFlag)
	if err != nil {
		return err
	}

	console := output.NewConsole(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithNoColor(noColorFlag || cfg.GetNoColor()),
	)

	if len(environments) > 0 {
		allowCustomEnv := cfg.GetAllowCustomEnv()
		if cmd.Flags().Changed("allow-custom-env") {
			allowCustomEnv = checkAllowCustomEnvFlag
		}

		if _, err := vercel.ValidateEnvironments(environments, vercel.ValidateOptions{
			AllowCustomEnv: allowCustomEnv,
			Branch:         checkBranchFlag,
		}); err != nil {
			return err
		}
		console.Success("Environments: %s", output.FormatList(environments))
	}

	if err := env.ValidateFile(file); err != nil {
		return err
	}

	vars, err := env.ParseEnvFile(file)
	if err != nil {
		return err
	}

	console.Preview(vars)
	console.Success("Valid: %s (%d %s)", file, vars.Len(), output.Pluralize(vars.Len(), "variable"))

	return nil
}
