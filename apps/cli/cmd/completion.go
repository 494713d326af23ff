package cmd

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for vercel-env-push.

To load completions:

Bash:
  $ source <(vercel-env-push completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ vercel-env-push completion bash > /etc/bash_completion.d/vercel-env-push
  # macOS:
  $ vercel-env-push completion bash > $(brew --prefix)/etc/bash_completion.d/vercel-env-push

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ vercel-env-push completion zsh > "${fpath[1]}/_vercel-env-push"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ vercel-env-push completion fish | source

  # To load completions for each session, execute once:
  $ vercel-env-push completion fish > ~/.config/fish/completions/vercel-env-push.fish

PowerShell:
  PS> vercel-env-push completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> vercel-env-push completion powershell > vercel-env-push.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletionV2(out, true)
		case "zsh":
			return cmd.Root().GenZshCompletion(out)
		case "fish":
			return cmd.Root().GenFishCompletion(out, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
