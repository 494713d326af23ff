// Package vercel drives the Vercel CLI to replace a project's environment
// variables.
//
// It provides functionality for:
//   - Validating target environment names and branch pairing
//   - Building `vercel env rm` / `vercel env add` invocations
//   - Replacing remote variables with a remove phase followed by an add
//     phase, each fanned out concurrently behind a shared rate limiter
//
// Every scheduled operation runs to completion. When a phase has failures,
// the one scheduled first is reported, regardless of completion order.
package vercel
