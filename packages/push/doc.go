// Package push composes validation, parsing and syncing into the single
// operation that pushes a dotenv file to Vercel environments.
//
// The sequence is: validate environments, check the file, parse and expand
// it, apply the optional pre-push transform, preview, stop on dry run,
// confirm, then replace every variable in every environment.
package push
