// Package env reads dotenv files for vercel-env-push.
//
// It provides functionality for:
//   - Parsing KEY=VALUE files (quotes, comments, export prefix, multiline values)
//   - Expanding ${KEY} and $KEY references against the same file only
//   - Keeping variables in file order so every run schedules work identically
//
// Expansion never reads the process environment.
package env
