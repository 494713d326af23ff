// Package config handles configuration loading and management for
// vercel-env-push.
//
// It provides functionality for:
//   - Loading .vercel-env-push.json, .vercel-env-push.yaml or .yml files,
//     checked against an embedded JSON schema
//   - Default configuration values
//   - VERCEL_ENV_PUSH_* environment overrides and struct validation
package config
