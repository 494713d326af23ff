package env

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected map[string]string
	}{
		{
			name:     "no references",
			content:  "A=hello",
			expected: map[string]string{"A": "hello"},
		},
		{
			name:     "braced reference",
			content:  "keyA=valueA\nkeyAExpanded=${keyA}",
			expected: map[string]string{"keyA": "valueA", "keyAExpanded": "valueA"},
		},
		{
			name:     "bare reference",
			content:  "HOST=example.com\nURL=https://$HOST/api",
			expected: map[string]string{"HOST": "example.com", "URL": "https://example.com/api"},
		},
		{
			name:     "forward reference",
			content:  "URL=${HOST}:${PORT}\nHOST=localhost\nPORT=8080",
			expected: map[string]string{"URL": "localhost:8080", "HOST": "localhost", "PORT": "8080"},
		},
		{
			name:     "chained references",
			content:  "A=a\nB=${A}b\nC=${B}c",
			expected: map[string]string{"A": "a", "B": "ab", "C": "abc"},
		},
		{
			name:     "default for undefined",
			content:  "A=${MISSING:-fallback}",
			expected: map[string]string{"A": "fallback"},
		},
		{
			name:     "dash default keeps empty value",
			content:  "EMPTY=\nA=${EMPTY-fallback}",
			expected: map[string]string{"EMPTY": "", "A": ""},
		},
		{
			name:     "colon dash default replaces empty value",
			content:  "EMPTY=\nA=${EMPTY:-fallback}",
			expected: map[string]string{"EMPTY": "", "A": "fallback"},
		},
		{
			name:     "dash default for undefined",
			content:  "A=${MISSING-fallback}",
			expected: map[string]string{"A": "fallback"},
		},
		{
			name:     "dash inside default",
			content:  "A=${MISSING-a-b}",
			expected: map[string]string{"A": "a-b"},
		},
		{
			name:     "nested default reference",
			content:  "B=bee\nC=${A:-${B}}",
			expected: map[string]string{"B": "bee", "C": "bee"},
		},
		{
			name:     "nested default with suffix",
			content:  "B=b\nA=${MISSING:-${B}x}y",
			expected: map[string]string{"B": "b", "A": "bxy"},
		},
		{
			name:     "doubly nested default",
			content:  "A=${X:-${Y:-deep}}",
			expected: map[string]string{"A": "deep"},
		},
		{
			name:     "dollar without name is kept",
			content:  "A=cost $5 ${}",
			expected: map[string]string{"A": "cost $5 ${}"},
		},
		{
			name:     "escaped dollar",
			content:  `PRICE=\$5`,
			expected: map[string]string{"PRICE": "$5"},
		},
		{
			name:     "escaped dollar in double quotes",
			content:  `PRICE="\${NOT_A_REF}"`,
			expected: map[string]string{"PRICE": "${NOT_A_REF}"},
		},
		{
			name:     "single quotes are not expanded",
			content:  "A=a\nB='${A}'",
			expected: map[string]string{"A": "a", "B": "${A}"},
		},
		{
			name:     "double quotes are expanded",
			content:  "A=a\nB=\"${A} b\"",
			expected: map[string]string{"A": "a", "B": "a b"},
		},
		{
			name:     "later assignment wins",
			content:  "A=first\nB=${A}\nA=second",
			expected: map[string]string{"A": "second", "B": "second"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars, err := Expand(ParseString(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, vars.Map())
		})
	}
}

func TestExpandUndefinedReference(t *testing.T) {
	_, err := Expand(ParseString("A=${MISSING}"))
	require.Error(t, err)

	var undefined *UndefinedReferenceError
	require.ErrorAs(t, err, &undefined)
	assert.Equal(t, "A", undefined.Key)
	assert.Equal(t, "MISSING", undefined.Reference)
}

func TestExpandNestedDefaultUndefined(t *testing.T) {
	_, err := Expand(ParseString("C=${A:-${B}}"))

	var undefined *UndefinedReferenceError
	require.ErrorAs(t, err, &undefined)
	assert.Equal(t, "B", undefined.Reference)
}

func TestExpandUnterminatedReference(t *testing.T) {
	for _, content := range []string{
		"B=b\nA=${B",
		"A=${MISSING:-${B}",
		"A=${B!}",
	} {
		t.Run(content, func(t *testing.T) {
			_, err := Expand(ParseString(content))

			var unterminated *UnterminatedReferenceError
			require.ErrorAs(t, err, &unterminated)
			assert.Equal(t, "A", unterminated.Key)
		})
	}
}

func TestExpandDoesNotReadProcessEnvironment(t *testing.T) {
	t.Setenv("VEP_TEST_FROM_PROCESS", "leaked")
	require.Equal(t, "leaked", os.Getenv("VEP_TEST_FROM_PROCESS"))

	_, err := Expand(ParseString("A=${VEP_TEST_FROM_PROCESS}"))

	var undefined *UndefinedReferenceError
	require.ErrorAs(t, err, &undefined)
	assert.Equal(t, "VEP_TEST_FROM_PROCESS", undefined.Reference)
}

func TestExpandCycle(t *testing.T) {
	_, err := Expand(ParseString("A=${B}\nB=${A}"))
	require.Error(t, err)

	var cycle *CycleError
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, []string{"A", "B", "A"}, cycle.Path)
}

func TestExpandSelfReference(t *testing.T) {
	_, err := Expand(ParseString("A=${A}"))

	var cycle *CycleError
	require.ErrorAs(t, err, &cycle)
}

func TestExpandKeepsOrder(t *testing.T) {
	vars, err := Expand(ParseString("Z=1\nA=2\nM=${Z}"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Z", "A", "M"}, vars.Keys())
}
