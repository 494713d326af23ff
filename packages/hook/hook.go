// Package hook builds pre-push transforms from shell commands.
//
// The command receives the parsed variables as a dotenv document on stdin
// and must print the variables to push, also as dotenv, on stdout.
package hook

import (
	"context"
	"runtime"
	"slices"
	"sort"

	"github.com/abdul-hamid-achik/vercel-env-push/packages/core/env"
	apperrors "github.com/abdul-hamid-achik/vercel-env-push/packages/errors"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/logging"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/process"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/push"
	"github.com/joho/godotenv"
)

// Shell returns the interpreter and flag used to run a command line
func Shell() (string, string) {
	if runtime.GOOS == "windows" {
		return "cmd", "/C"
	}
	return "sh", "-c"
}

// Command returns a transform that pipes the variables through command
func Command(command string, exec process.Executor) push.Transform {
	logger := logging.GetLogger("hook")

	return func(ctx context.Context, vars *env.Vars) (*env.Vars, error) {
		input, err := godotenv.Marshal(vars.Map())
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrHookFailed, "Unable to serialize environment variables for the pre-push command.")
		}

		shell, flag := Shell()
		cmd := process.Command{
			Name:  shell,
			Args:  []string{flag, command},
			Stdin: input + "\n",
		}

		logger.Debug().Str("command", command).Int("keys", vars.Len()).Msg("Running pre-push command")

		result, err := exec.Run(ctx, cmd)
		if err != nil {
			return nil, apperrors.Wrapf(err, apperrors.ErrHookFailed, "Pre-push command '%s' failed.", command).
				WithDetail("command", command)
		}

		values, err := godotenv.Unmarshal(result.Stdout)
		if err != nil {
			return nil, apperrors.Wrapf(err, apperrors.ErrHookFailed, "Pre-push command '%s' printed invalid dotenv output.", command).
				WithDetail("command", command)
		}

		return merge(vars.Keys(), values), nil
	}
}

// merge orders the transformed values: keys that survived keep their
// original position, new keys follow in sorted order
func merge(original []string, values map[string]string) *env.Vars {
	out := env.NewVars()
	for _, key := range original {
		if value, ok := values[key]; ok {
			out.Set(key, value)
		}
	}

	var added []string
	for key := range values {
		if !slices.Contains(original, key) {
			added = append(added, key)
		}
	}
	sort.Strings(added)

	for _, key := range added {
		out.Set(key, values[key])
	}
	return out
}
