package cmd

// Exit codes for the vercel-env-push CLI
const (
	// ExitSuccess indicates the push (or subcommand) completed
	ExitSuccess = 0

	// ExitFailure indicates any error surfaced to the top level
	ExitFailure = 1
)
