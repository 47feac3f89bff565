package formschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckConfigAcceptsWellFormedConfigs(t *testing.T) {
	assert.Empty(t, CheckConfig(taskConfig()))

	survey := surveyConfig()
	survey.Fields = survey.Fields[:5]
	assert.Empty(t, CheckConfig(survey))
}

func TestCheckConfigReportsAuthoringMistakes(t *testing.T) {
	cfg := FormConfig{
		Kind:  FormKindSurvey,
		Title: " ",
		Fields: []FieldSpec{
			{Name: "a", Kind: FieldText, Constraints: Constraints{Pattern: "("}},
			{Name: "a", Kind: FieldScreenshot},
			{Name: "b", Kind: FieldSelect},
			{Name: "c", Kind: FieldNumber, Constraints: Constraints{Min: floatPtr(5), Max: floatPtr(1)}},
		},
		Pages:            []Page{{Title: "p", FieldNames: []string{"zzz"}}},
		ConditionalLogic: []ConditionalRule{{Condition: "a == 1 && b == 2", RequiredFieldNames: []string{"ghost"}}},
		Requirements:     []Requirement{{Kind: RequirementMinFollowers, Threshold: 10}},
	}

	assert.Equal(t, []string{
		"title is required",
		`field "a" has an invalid pattern`,
		`field "a" is declared more than once`,
		`field "a" has kind "screenshot" not allowed in survey forms`,
		`field "b" needs at least one option`,
		`field "c" has min above max`,
		`page 0 references undeclared field "zzz"`,
		"conditional rule 0 has an unsupported condition",
		`requirement 0 has kind "min_followers" not allowed in survey forms`,
	}, CheckConfig(cfg))
}

func TestCheckConfigRejectsUnknownKind(t *testing.T) {
	problems := CheckConfig(FormConfig{Kind: "quiz", Title: "x", Fields: []FieldSpec{{Name: "a", Kind: FieldText}}})
	assert.Equal(t, []string{`unknown form kind "quiz"`}, problems)
}
