// Package process runs external commands for vercel-env-push.
//
// It provides functionality for:
//   - Running one command to completion with captured stdout/stderr
//   - Piping input through stdin so secrets never appear in argv
//   - Classifying failures: non-zero exits become *ExitError carrying the
//     captured output, anything else (missing executable, I/O) is a plain error
package process
