package env

import (
	"fmt"
	"os"

	apperrors "github.com/abdul-hamid-achik/vercel-env-push/packages/errors"
)

// ValidateFile checks that path points to a readable regular file
func ValidateFile(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return apperrors.Newf(apperrors.ErrFileNotFound, "No file found at '%s'.", path).
			WithDetail("path", path)
	}
	return nil
}

// ParseEnvFile reads, parses and expands a dotenv file. The file must exist;
// call ValidateFile first for a friendly error.
func ParseEnvFile(path string) (*Vars, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open env file: %w", err)
	}
	defer file.Close()

	entries, err := Parse(file)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, apperrors.Newf(apperrors.ErrEmptyEnvFile, "No environment variables found in '%s'.", path).
			WithDetail("path", path)
	}

	vars, err := Expand(entries)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrExpansion, "Unable to parse and expand environment variables in '%s'.", path).
			WithDetail("path", path)
	}

	return vars, nil
}
