package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abdul-hamid-achik/vercel-env-push/packages/core/config"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/history"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/output"
	"github.com/spf13/cobra"
)

var (
	historyLimitFlag int
	historyPathFlag  string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded pushes",
	Long: `List pushes recorded with --history (or the "history" config setting).
Without --path the configured journal is read, falling back to the
default one under the user config directory. Only variable names are
recorded, never values.

Examples:
  vercel-env-push history
  vercel-env-push history --limit 5 --path ./pushes.db`,
	Args: cobra.NoArgs,
	RunE: historyCommand,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimitFlag, "limit", "n", 20, "Number of entries to show (0 for all)")
	historyCmd.Flags().StringVar(&historyPathFlag, "path", "", "Path to the history journal")
}

func historyCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return err
	}

	path := historyPathFlag
	if path == "" {
		path = cfg.History
	}
	if path == "" {
		path = defaultHistory
	}
	path, err = resolveHistoryPath(path)
	if err != nil {
		return fmt.Errorf("failed to locate history journal: %w", err)
	}

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(cmd.Context(), historyLimitFlag)
	if err != nil {
		return err
	}

	console := output.NewConsole(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithNoColor(noColorFlag || cfg.GetNoColor()),
	)

	if len(entries) == 0 {
		console.Info("No pushes recorded in %s", store.Path())
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.StartedAt.Local().Format("2006-01-02 15:04:05"),
			string(e.Status),
			e.File,
			strings.Join(e.Environments, ", "),
			strconv.Itoa(len(e.Keys)),
			e.Duration.String(),
		})
	}
	console.Table([]string{"Started", "Status", "File", "Environments", "Variables", "Duration"}, rows)

	return nil
}
