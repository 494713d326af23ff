package vercel

import (
	"testing"

	apperrors "github.com/abdul-hamid-achik/vercel-env-push/packages/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEnvironments(t *testing.T) {
	tests := []struct {
		name     string
		envs     []string
		opts     ValidateOptions
		wantCode apperrors.ErrorCode
		wantMsg  string
	}{
		{
			name:     "empty list",
			envs:     nil,
			wantCode: apperrors.ErrEmptyEnvironmentList,
			wantMsg:  "No environments specified.",
		},
		{
			name:     "unknown environment",
			envs:     []string{"production", "staging"},
			wantCode: apperrors.ErrUnknownEnvironment,
			wantMsg:  "Unknown environment 'staging' specified.",
		},
		{
			name:     "known names are case sensitive",
			envs:     []string{"Production"},
			wantCode: apperrors.ErrUnknownEnvironment,
			wantMsg:  "Unknown environment 'Production' specified.",
		},
		{
			name:     "malformed custom environment",
			envs:     []string{"qa env"},
			opts:     ValidateOptions{AllowCustomEnv: true},
			wantCode: apperrors.ErrUnknownEnvironment,
			wantMsg:  "Invalid custom environment 'qa env' specified.",
		},
		{
			name:     "branch with production",
			envs:     []string{"production"},
			opts:     ValidateOptions{Branch: "feature"},
			wantCode: apperrors.ErrBranchNotApplicable,
			wantMsg:  "Only the preview environment can be specified when specifying a branch.",
		},
		{
			name:     "branch with preview and another environment",
			envs:     []string{"preview", "development"},
			opts:     ValidateOptions{Branch: "feature"},
			wantCode: apperrors.ErrBranchNotApplicable,
			wantMsg:  "Only the preview environment can be specified when specifying a branch.",
		},
		{
			name:     "unknown name reported before branch pairing",
			envs:     []string{"staging"},
			opts:     ValidateOptions{Branch: "feature"},
			wantCode: apperrors.ErrUnknownEnvironment,
			wantMsg:  "Unknown environment 'staging' specified.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateEnvironments(tt.envs, tt.opts)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, apperrors.IsCode(err, tt.wantCode), "got code %s", apperrors.GetCode(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestValidateEnvironmentsValid(t *testing.T) {
	tests := []struct {
		name string
		envs []string
		opts ValidateOptions
	}{
		{"all known", []string{"development", "preview", "production"}, ValidateOptions{}},
		{"preview with branch", []string{"preview"}, ValidateOptions{Branch: "feature"}},
		{"custom allowed", []string{"staging", "QA_2", "pre-release"}, ValidateOptions{AllowCustomEnv: true}},
		{"custom mixed with known", []string{"production", "staging"}, ValidateOptions{AllowCustomEnv: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateEnvironments(tt.envs, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.envs, got)
		})
	}
}

func TestValidateEnvironmentsReturnsCopy(t *testing.T) {
	envs := []string{"production"}
	got, err := ValidateEnvironments(envs, ValidateOptions{})
	require.NoError(t, err)

	got[0] = "changed"
	assert.Equal(t, "production", envs[0])
}
