package analysis

import (
	"encoding/json"
	"testing"

	apperrors "readiness-service/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare object",
			input: `{"a": 1}`,
			want:  `{"a": 1}`,
		},
		{
			name:  "surrounded by prose",
			input: "Here is your analysis:\n{\"a\": 1}\nLet me know if you need more.",
			want:  `{"a": 1}`,
		},
		{
			name:  "markdown fenced",
			input: "```json\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "nested objects",
			input: `{"Scores": {"Financial Planning": 70}, "Band": "Good"}`,
			want:  `{"Scores": {"Financial Planning": 70}, "Band": "Good"}`,
		},
		{
			name:  "brace inside string value",
			input: `{"note": "use {placeholders} carefully"} trailing`,
			want:  `{"note": "use {placeholders} carefully"}`,
		},
		{
			name:  "escaped quote inside string",
			input: `{"note": "she said \"go\" loudly"}`,
			want:  `{"note": "she said \"go\" loudly"}`,
		},
		{
			name:  "trailing prose with stray brace",
			input: `{"a": 1} and here is an unmatched } brace`,
			want:  `{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, json.Valid([]byte(got)))
		})
	}
}

func TestExtractJSONObjectFailures(t *testing.T) {
	for _, input := range []string{
		"",
		"no json here at all",
		`{"unterminated": 1`,
	} {
		_, err := ExtractJSONObject(input)
		require.Error(t, err, "input %q", input)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeMalformedUpstreamResponse))
	}
}
