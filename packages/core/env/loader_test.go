package env

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/abdul-hamid-achik/vercel-env-push/packages/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateFile(t *testing.T) {
	path := writeEnvFile(t, "A=1")
	assert.NoError(t, ValidateFile(path))

	err := ValidateFile("./fixtures/unknown")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrFileNotFound))
	assert.Equal(t, "No file found at './fixtures/unknown'.", err.Error())

	err = ValidateFile(t.TempDir())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrFileNotFound))
}

func TestParseEnvFile(t *testing.T) {
	path := writeEnvFile(t, "keyA=valueA\nkeyAExpanded=${keyA}\nkeyB=valueB\n")

	vars, err := ParseEnvFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"keyA", "keyAExpanded", "keyB"}, vars.Keys())
	assert.Equal(t, map[string]string{
		"keyA":         "valueA",
		"keyAExpanded": "valueA",
		"keyB":         "valueB",
	}, vars.Map())
}

func TestParseEnvFileEmpty(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero bytes", ""},
		{"only comments", "# first\n# second\n"},
		{"comments and blank lines", "\n\n# just a comment\n\n   \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeEnvFile(t, tt.content)

			_, err := ParseEnvFile(path)
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.ErrEmptyEnvFile))
			assert.Equal(t, "No environment variables found in '"+path+"'.", err.Error())
		})
	}
}

func TestParseEnvFileExpansionError(t *testing.T) {
	path := writeEnvFile(t, "keyA=${keyUndefined}\n")

	_, err := ParseEnvFile(path)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrExpansion))
	assert.Equal(t, "Unable to parse and expand environment variables in '"+path+"'.", err.Error())

	var undefined *UndefinedReferenceError
	assert.ErrorAs(t, err, &undefined)
}

func TestParseEnvFileMissing(t *testing.T) {
	_, err := ParseEnvFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
