package formschema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
}

func surveyConfig() FormConfig {
	return FormConfig{
		ID:    "survey-v1",
		Kind:  FormKindSurvey,
		Title: "Participant profile",
		Fields: []FieldSpec{
			{Name: "name", Label: "Name", Kind: FieldText, Required: true, Constraints: Constraints{MaxLength: 20}},
			{Name: "age", Label: "Age", Kind: FieldNumber, Required: true, Constraints: Constraints{Min: floatPtr(18), Max: floatPtr(80)}},
			{Name: "gender", Label: "Gender", Kind: FieldRadio, Required: true, Constraints: Constraints{Options: []Option{{Value: "female"}, {Value: "male"}}}},
			{Name: "pregnancy_status", Label: "Pregnancy status", Kind: FieldSelect, Constraints: Constraints{Options: []Option{{Value: "yes"}, {Value: "no"}}}},
			{Name: "email", Label: "Email", Kind: FieldEmail},
			{Name: "website", Label: "Website", Kind: FieldURL},
		},
		Pages: []Page{
			{Title: "Basics", FieldNames: []string{"name", "age"}},
			{Title: "Details", FieldNames: []string{"gender", "pregnancy_status", "email"}},
		},
		ConditionalLogic: []ConditionalRule{
			{Condition: `gender == "female"`, RequiredFieldNames: []string{"pregnancy_status"}},
			{Condition: `gender == "male"`, HiddenFieldNames: []string{"pregnancy_status"}},
		},
	}
}

func TestValidateAggregatesEveryError(t *testing.T) {
	result := NewValidator(fixedNow).Validate(Payload{
		"age":   "abc",
		"email": "not-an-email",
	}, surveyConfig())

	assert.False(t, result.IsValid)
	assert.Equal(t, []string{
		"Name is required",
		"Age must be a number",
		"Gender is required",
		"Email must be a valid email address",
	}, result.Errors)
}

func TestValidateNumericBoundScenario(t *testing.T) {
	v := NewValidator(fixedNow)
	base := Payload{"name": "Ann", "gender": "male"}

	cases := map[any]bool{float64(15): false, float64(30): true, "abc": false}
	for age, ok := range cases {
		data := Payload{}
		for k, val := range base {
			data[k] = val
		}
		data["age"] = age
		result := v.Validate(data, surveyConfig())
		assert.Equal(t, ok, result.IsValid, "age=%v errors=%v", age, result.Errors)
	}
}

func TestValidateConditionalRequirement(t *testing.T) {
	v := NewValidator(fixedNow)
	cfg := surveyConfig()

	missing := v.Validate(Payload{"name": "Ann", "age": float64(30), "gender": "female"}, cfg)
	assert.Equal(t, []string{`Pregnancy status is required when gender == "female"`}, missing.Errors)

	present := v.Validate(Payload{"name": "Ann", "age": float64(30), "gender": "female", "pregnancy_status": "no"}, cfg)
	assert.True(t, present.IsValid, present.Errors)

	hidden := v.Validate(Payload{"name": "Bob", "age": float64(30), "gender": "male", "pregnancy_status": "no"}, cfg)
	assert.Equal(t, []string{`Pregnancy status must be empty when gender == "male"`}, hidden.Errors)
}

func TestValidateSkipsKindsOutsideTheCatalog(t *testing.T) {
	result := NewValidator(fixedNow).Validate(Payload{
		"name":    "Ann",
		"age":     float64(30),
		"gender":  "male",
		"website": "not a url",
	}, surveyConfig())

	assert.True(t, result.IsValid, result.Errors)
	assert.NotNil(t, result.Errors)
}

func TestValidateVisibleWhenRemovesFieldFromScope(t *testing.T) {
	cfg := FormConfig{
		Kind:  FormKindSurvey,
		Title: "Employment",
		Fields: []FieldSpec{
			{Name: "employed", Label: "Employed", Kind: FieldRadio, Required: true, Constraints: Constraints{Options: []Option{{Value: "yes"}, {Value: "no"}}}},
			{Name: "employer", Label: "Employer", Kind: FieldText, Required: true, VisibleWhen: `employed == "yes"`},
		},
	}
	v := NewValidator(fixedNow)

	assert.True(t, v.Validate(Payload{"employed": "no"}, cfg).IsValid)
	assert.Equal(t, []string{"Employer is required"}, v.Validate(Payload{"employed": "yes"}, cfg).Errors)
}

func TestValidatePageLimitsScope(t *testing.T) {
	v := NewValidator(fixedNow)
	cfg := surveyConfig()

	first, err := v.ValidatePage(Payload{"name": "Ann", "age": float64(30)}, cfg, 0)
	require.NoError(t, err)
	assert.True(t, first.IsValid, first.Errors)

	second, err := v.ValidatePage(Payload{"gender": "female"}, cfg, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{`Pregnancy status is required when gender == "female"`}, second.Errors)

	_, err = v.ValidatePage(Payload{}, cfg, 2)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
}

func taskConfig() FormConfig {
	return FormConfig{
		ID:    "task-v1",
		Kind:  FormKindTask,
		Title: "Promote the launch",
		Fields: []FieldSpec{
			{Name: "post_url", Label: "Post link", Kind: FieldSocialMediaLink, Required: true, Constraints: Constraints{Platform: "douyin"}},
			{Name: "proof", Label: "Screenshot", Kind: FieldScreenshot, Required: true, Constraints: Constraints{MaxFiles: 3}},
		},
		Requirements: []Requirement{
			{Kind: RequirementMinFollowers, Threshold: 1000},
			{Kind: RequirementAccountAge, Threshold: 6},
			{Kind: RequirementContentQuality, Threshold: 10},
			{Kind: RequirementEngagementRate, Threshold: 2.5},
		},
	}
}

func TestValidateTaskRequirements(t *testing.T) {
	v := NewValidator(fixedNow)
	proof := []any{map[string]any{"name": "a.png", "url": "https://cdn/a.png"}}

	passing := v.Validate(Payload{
		"post_url":             "https://www.douyin.com/video/1",
		"proof":                proof,
		"followers_count":      "1500 fans",
		"account_created_date": "2025-12-15",
		"content_description":  "a long enough description",
		"engagement_rate":      "3.1%",
	}, taskConfig())
	assert.True(t, passing.IsValid, passing.Errors)

	failing := v.Validate(Payload{
		"post_url":             "https://www.douyin.com/video/1",
		"proof":                proof,
		"followers_count":      "lots",
		"account_created_date": "2026-01-01",
		"content_description":  "short",
		"engagement_rate":      float64(1),
	}, taskConfig())
	assert.Equal(t, []string{
		"follower count must be at least 1000",
		"account must be at least 6 months old",
		"content description must be at least 10 characters",
		"engagement rate must be at least 2.5%",
	}, failing.Errors)
}

func TestValidateRequirementsIgnoredForSurveys(t *testing.T) {
	cfg := surveyConfig()
	cfg.Requirements = []Requirement{{Kind: RequirementMinFollowers, Threshold: 1000}}

	result := NewValidator(fixedNow).Validate(Payload{"name": "Ann", "age": float64(30), "gender": "male"}, cfg)
	assert.True(t, result.IsValid, result.Errors)
}

func TestValidateAccountAgeRejectsUnparseableDate(t *testing.T) {
	cfg := FormConfig{Kind: FormKindTask, Title: "t", Requirements: []Requirement{{Kind: RequirementAccountAge, Threshold: 1}}}
	result := NewValidator(fixedNow).Validate(Payload{"account_created_date": "long ago"}, cfg)
	assert.Equal(t, []string{"account must be at least 1 months old"}, result.Errors)
}

func TestRequiredTreatsZeroAndFalseAsPresent(t *testing.T) {
	cfg := FormConfig{
		Kind:  FormKindSurvey,
		Title: "t",
		Fields: []FieldSpec{
			{Name: "count", Label: "Count", Kind: FieldNumber, Required: true},
			{Name: "tags", Label: "Tags", Kind: FieldCheckbox, Required: true},
		},
	}
	result := NewValidator(fixedNow).Validate(Payload{"count": float64(0), "tags": []any{}}, cfg)
	assert.Equal(t, []string{"Tags is required"}, result.Errors)
}

func TestConditionalRulesApplyToFieldsWithoutSpec(t *testing.T) {
	cfg := FormConfig{
		ID:     "survey-rules-only",
		Kind:   FormKindSurvey,
		Title:  "Rules only",
		Fields: []FieldSpec{{Name: "gender", Label: "Gender", Kind: FieldText}},
		ConditionalLogic: []ConditionalRule{
			{Condition: `gender == "female"`, RequiredFieldNames: []string{"pregnancy_status"}},
			{Condition: `gender == "male"`, HiddenFieldNames: []string{"pregnancy_status"}},
		},
	}
	require.Empty(t, CheckConfig(cfg))
	v := NewValidator(fixedNow)

	missing := v.Validate(Payload{"gender": "female"}, cfg)
	assert.False(t, missing.IsValid)
	assert.Equal(t, []string{`pregnancy_status is required when gender == "female"`}, missing.Errors)

	hidden := v.Validate(Payload{"gender": "male", "pregnancy_status": "yes"}, cfg)
	assert.False(t, hidden.IsValid)
	assert.Equal(t, []string{`pregnancy_status must be empty when gender == "male"`}, hidden.Errors)

	assert.True(t, v.Validate(Payload{"gender": "female", "pregnancy_status": "no"}, cfg).IsValid)
	assert.True(t, v.Validate(Payload{"gender": "other"}, cfg).IsValid)
}
