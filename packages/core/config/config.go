package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/abdul-hamid-achik/vercel-env-push/packages/errors"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/ratelimit"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv
const EnvPrefix = "VERCEL_ENV_PUSH"

//go:embed schema.json
var schemaJSON []byte

// Config represents the vercel-env-push configuration
type Config struct {
	CLI            string   `json:"cli,omitempty" yaml:"cli,omitempty" envconfig:"CLI" validate:"required"`
	RateLimit      int      `json:"rateLimit,omitempty" yaml:"rateLimit,omitempty" envconfig:"RATE_LIMIT" validate:"min=0"`
	RateWindow     Duration `json:"rateWindow,omitempty" yaml:"rateWindow,omitempty" envconfig:"RATE_WINDOW" validate:"min=0,required_with=RateLimit"`
	MaxConcurrent  int      `json:"maxConcurrent,omitempty" yaml:"maxConcurrent,omitempty" envconfig:"MAX_CONCURRENT" validate:"min=0"`
	AllowCustomEnv *bool    `json:"allowCustomEnv,omitempty" yaml:"allowCustomEnv,omitempty" envconfig:"ALLOW_CUSTOM_ENV"`
	History        string   `json:"history,omitempty" yaml:"history,omitempty" envconfig:"HISTORY"`
	NoColor        *bool    `json:"noColor,omitempty" yaml:"noColor,omitempty" envconfig:"NO_COLOR"`
}

// Duration is a time.Duration written as "10s" in config files and
// environment variables
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// BoolPtr returns a pointer to b
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetAllowCustomEnv returns the custom environment setting, defaulting to false
func (c *Config) GetAllowCustomEnv() bool {
	return getBool(c.AllowCustomEnv, false)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// CLIArgs splits the CLI command prefix into its words
func (c *Config) CLIArgs() []string {
	return strings.Fields(c.CLI)
}

// RateLimitConfig returns the admission limits for CLI invocations
func (c *Config) RateLimitConfig() ratelimit.Config {
	return ratelimit.Config{
		Limit:         c.RateLimit,
		Window:        time.Duration(c.RateWindow),
		MaxConcurrent: c.MaxConcurrent,
	}
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".vercel-env-push.json",
	".vercel-env-push.yaml",
	".vercel-env-push.yml",
}

// Load reads the config file (or searches for one when path is empty),
// overlays environment variables and validates the result
func Load(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	// Search for config file in current directory
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	if path := FindConfigFile(dir); path != "" {
		return loadConfigFromFile(path)
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

// FindConfigFile returns the first config file present in dir, or ""
func FindConfigFile(dir string) string {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
	}
	return ""
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrConfigInvalid, "Unable to read config file '%s'.", path)
	}

	doc, err := toJSON(path, data)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrConfigInvalid, "Unable to parse config file '%s'.", path)
	}

	if err := validateSchema(doc); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrConfigInvalid, "Invalid config file '%s'.", path).
			WithDetail("path", path)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(doc, config); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrConfigInvalid, "Invalid config file '%s'.", path)
	}

	return config, nil
}

// toJSON normalizes a JSON or YAML document to JSON
func toJSON(path string, data []byte) ([]byte, error) {
	if !isYAML(path) {
		return data, nil
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return json.Marshal(doc)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func validateSchema(doc []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return err
	}

	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(errs, "; "))
}

// ApplyEnv overlays VERCEL_ENV_PUSH_* environment variables
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return apperrors.Wrap(err, apperrors.ErrConfigInvalid, "Invalid configuration in environment variables.")
	}
	return nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return apperrors.Wrapf(err, apperrors.ErrConfigInvalid, "Configuration validation failed: %v", err)
	}
	return nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.CLI != "" {
		result.CLI = other.CLI
	}
	if other.RateLimit > 0 {
		result.RateLimit = other.RateLimit
	}
	if other.RateWindow > 0 {
		result.RateWindow = other.RateWindow
	}
	if other.MaxConcurrent > 0 {
		result.MaxConcurrent = other.MaxConcurrent
	}
	if other.History != "" {
		result.History = other.History
	}

	// Boolean flags - only override if explicitly set in other config
	if other.AllowCustomEnv != nil {
		result.AllowCustomEnv = other.AllowCustomEnv
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	return &result
}

// SaveConfig saves the configuration to a file, as YAML when the extension
// asks for it
func (c *Config) SaveConfig(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
