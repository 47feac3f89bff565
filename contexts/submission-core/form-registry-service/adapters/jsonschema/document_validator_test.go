package jsonschemaadapter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentValidatorAcceptsWellFormedDocument(t *testing.T) {
	validator, err := NewDocumentValidator()
	require.NoError(t, err)

	problems := validator.ValidateDocument([]byte(`{
		"kind": "survey",
		"title": "Profile",
		"fields": [
			{"name": "age", "kind": "number", "label": "Age", "required": true, "constraints": {"min": 18}},
			{"name": "gender", "kind": "radio", "constraints": {"options": [{"value": "female"}, {"value": "male"}]}}
		],
		"conditional_logic": [{"condition": "gender == \"female\"", "required_field_names": ["age"]}]
	}`))
	assert.Empty(t, problems)
}

func TestDocumentValidatorReportsStructuralProblems(t *testing.T) {
	validator := MustDocumentValidator()

	problems := validator.ValidateDocument([]byte(`{
		"kind": "quiz",
		"fields": [{"name": "1bad", "kind": "hologram", "constraints": {"min_length": -1}}]
	}`))
	require.NotEmpty(t, problems)

	joined := strings.Join(problems, "\n")
	assert.Contains(t, joined, "/kind")
	assert.Contains(t, joined, "/fields/0/name")
	assert.Contains(t, joined, "/fields/0/kind")
	assert.Contains(t, joined, "/fields/0/constraints/min_length")
	assert.Contains(t, joined, "title")
}

func TestDocumentValidatorRejectsInvalidJSON(t *testing.T) {
	problems := MustDocumentValidator().ValidateDocument([]byte(`{"kind":`))
	assert.Equal(t, []string{"document must be valid JSON"}, problems)
}
