package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/vercel-env-push/packages/core/config"
	"github.com/spf13/cobra"
)

var (
	forceInit  bool
	initFormat string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a vercel-env-push config file",
	Long: `Create a config file with the default settings in the current directory.

This creates:
  .vercel-env-push.json   - or .vercel-env-push.yaml with --format yaml

Examples:
  vercel-env-push init
  vercel-env-push init --format yaml
  vercel-env-push init --force`,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing config file")
	initCmd.Flags().StringVar(&initFormat, "format", "json", "Config file format: json or yaml")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	var name string
	switch initFormat {
	case "json":
		name = ".vercel-env-push.json"
	case "yaml", "yml":
		name = ".vercel-env-push.yaml"
	default:
		return fmt.Errorf("unknown config format: %s (use json or yaml)", initFormat)
	}

	if !forceInit {
		if existing := config.FindConfigFile(cwd); existing != "" {
			return fmt.Errorf("file already exists: %s (use --force to overwrite)", existing)
		}
	}

	configFile := filepath.Join(cwd, name)
	if err := config.DefaultConfig().SaveConfig(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)
	fmt.Fprintf(cmd.OutOrStdout(), "\nRun 'vercel-env-push .env.local production --dry-run' to preview a push.\n")

	return nil
}
