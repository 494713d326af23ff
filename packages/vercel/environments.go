package vercel

import (
	"regexp"
	"slices"

	apperrors "github.com/abdul-hamid-achik/vercel-env-push/packages/errors"
)

const (
	EnvDevelopment = "development"
	EnvPreview     = "preview"
	EnvProduction  = "production"
)

// KnownEnvironments are the environments every Vercel project has
var KnownEnvironments = []string{EnvDevelopment, EnvPreview, EnvProduction}

var customEnvironmentPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateOptions relaxes or tightens environment validation
type ValidateOptions struct {
	AllowCustomEnv bool
	Branch         string
}

// IsKnownEnvironment reports whether name is one of KnownEnvironments
func IsKnownEnvironment(name string) bool {
	return slices.Contains(KnownEnvironments, name)
}

// ValidateEnvironments checks requested environments and returns them
// unchanged when valid. Checks run in order: non-empty list, each name known
// (or a valid custom name when allowed), then branch pairing.
func ValidateEnvironments(envs []string, opts ValidateOptions) ([]string, error) {
	if len(envs) == 0 {
		return nil, apperrors.New(apperrors.ErrEmptyEnvironmentList, "No environments specified.")
	}

	for _, name := range envs {
		if IsKnownEnvironment(name) {
			continue
		}

		if !opts.AllowCustomEnv {
			return nil, apperrors.Newf(apperrors.ErrUnknownEnvironment, "Unknown environment '%s' specified.", name).
				WithDetail("environment", name)
		}

		if !customEnvironmentPattern.MatchString(name) {
			return nil, apperrors.Newf(apperrors.ErrUnknownEnvironment, "Invalid custom environment '%s' specified.", name).
				WithDetail("environment", name).
				WithDetail("custom", true)
		}
	}

	if opts.Branch != "" && (len(envs) != 1 || envs[0] != EnvPreview) {
		return nil, apperrors.New(apperrors.ErrBranchNotApplicable, "Only the preview environment can be specified when specifying a branch.").
			WithDetail("branch", opts.Branch)
	}

	return slices.Clone(envs), nil
}
