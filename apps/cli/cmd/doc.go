// Package cmd implements the vercel-env-push CLI commands using Cobra.
//
// The root command pushes a .env file to one or more Vercel environments.
//
// Available subcommands:
//   - check: Parse a file and validate environments without pushing
//   - history: List pushes recorded in the SQLite journal
//   - init: Create a config file with the default settings
//   - version: Show version information
//   - completion: Generate shell completion scripts
package cmd
