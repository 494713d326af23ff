package config

import (
	"strings"

	"github.com/abdul-hamid-achik/vercel-env-push/packages/ratelimit"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/vercel"
)

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	limits := ratelimit.DefaultConfig()
	return &Config{
		CLI:           strings.Join(vercel.DefaultCLI, " "),
		RateLimit:     limits.Limit,
		RateWindow:    Duration(limits.Window),
		MaxConcurrent: 0, // unbounded
		History:       "",
	}
}

// IsDefault returns true if the config matches defaults
func (c *Config) IsDefault() bool {
	defaults := DefaultConfig()
	return c.CLI == defaults.CLI &&
		c.RateLimit == defaults.RateLimit &&
		c.RateWindow == defaults.RateWindow &&
		c.MaxConcurrent == defaults.MaxConcurrent &&
		c.AllowCustomEnv == nil &&
		c.History == defaults.History &&
		c.NoColor == nil
}
