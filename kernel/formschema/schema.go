// Package formschema is the data-driven form model shared by the registry,
// survey and task contexts, together with the engine that validates
// submitted payloads against it.
//
// Everything here is pure: no I/O, no clocks other than the one injected
// into Validator, no logging.
package formschema

import "time"

type FormKind string

const (
	FormKindSurvey FormKind = "survey"
	FormKindTask   FormKind = "task"
)

func (k FormKind) Valid() bool {
	return k == FormKindSurvey || k == FormKindTask
}

type FieldKind string

const (
	FieldText            FieldKind = "text"
	FieldTextarea        FieldKind = "textarea"
	FieldNumber          FieldKind = "number"
	FieldEmail           FieldKind = "email"
	FieldPhone           FieldKind = "phone"
	FieldURL             FieldKind = "url"
	FieldSelect          FieldKind = "select"
	FieldRadio           FieldKind = "radio"
	FieldCheckbox        FieldKind = "checkbox"
	FieldDate            FieldKind = "date"
	FieldFile            FieldKind = "file"
	FieldScreenshot      FieldKind = "screenshot"
	FieldSocialMediaLink FieldKind = "social_media_link"
)

// FieldKinds lists every kind the engine knows how to validate.
func FieldKinds() []FieldKind {
	return []FieldKind{
		FieldText,
		FieldTextarea,
		FieldNumber,
		FieldEmail,
		FieldPhone,
		FieldURL,
		FieldSelect,
		FieldRadio,
		FieldCheckbox,
		FieldDate,
		FieldFile,
		FieldScreenshot,
		FieldSocialMediaLink,
	}
}

type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Constraints holds every per-kind knob. A zero integer limit is unset; Min
// and Max are pointers because zero is a meaningful numeric bound.
type Constraints struct {
	MinLength int      `json:"min_length,omitempty" yaml:"min_length,omitempty"`
	MaxLength int      `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	Pattern   string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Min       *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Options   []Option `json:"options,omitempty" yaml:"options,omitempty"`
	MinFiles  int      `json:"min_files,omitempty" yaml:"min_files,omitempty"`
	MaxFiles  int      `json:"max_files,omitempty" yaml:"max_files,omitempty"`
	Platform  string   `json:"platform,omitempty" yaml:"platform,omitempty"`
	MinDate   string   `json:"min_date,omitempty" yaml:"min_date,omitempty"`
	MaxDate   string   `json:"max_date,omitempty" yaml:"max_date,omitempty"`
}

type FieldSpec struct {
	Name        string      `json:"name" yaml:"name"`
	Kind        FieldKind   `json:"kind" yaml:"kind"`
	Label       string      `json:"label" yaml:"label"`
	Required    bool        `json:"required,omitempty" yaml:"required,omitempty"`
	Constraints Constraints `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	// VisibleWhen takes the field out of scope when the condition is false.
	VisibleWhen string `json:"visible_when,omitempty" yaml:"visible_when,omitempty"`
}

// DisplayName is the label used in messages, falling back to the name.
func (f FieldSpec) DisplayName() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

type Page struct {
	Title      string   `json:"title" yaml:"title"`
	FieldNames []string `json:"field_names" yaml:"field_names"`
}

type ConditionalRule struct {
	Condition          string   `json:"condition" yaml:"condition"`
	RequiredFieldNames []string `json:"required_field_names,omitempty" yaml:"required_field_names,omitempty"`
	HiddenFieldNames   []string `json:"hidden_field_names,omitempty" yaml:"hidden_field_names,omitempty"`
}

type RequirementKind string

const (
	RequirementMinFollowers   RequirementKind = "min_followers"
	RequirementAccountAge     RequirementKind = "account_age"
	RequirementContentQuality RequirementKind = "content_quality"
	RequirementEngagementRate RequirementKind = "engagement_rate"
)

type Requirement struct {
	Kind      RequirementKind `json:"kind" yaml:"kind"`
	FieldName string          `json:"field_name,omitempty" yaml:"field_name,omitempty"`
	Threshold float64         `json:"threshold" yaml:"threshold"`
}

// FormConfig is one immutable version of a form. Edits publish a new one.
type FormConfig struct {
	ID               string            `json:"id" yaml:"id"`
	Kind             FormKind          `json:"kind" yaml:"kind"`
	Title            string            `json:"title" yaml:"title"`
	Description      string            `json:"description,omitempty" yaml:"description,omitempty"`
	Version          int               `json:"version" yaml:"version"`
	Fields           []FieldSpec       `json:"fields" yaml:"fields"`
	Pages            []Page            `json:"pages,omitempty" yaml:"pages,omitempty"`
	ConditionalLogic []ConditionalRule `json:"conditional_logic,omitempty" yaml:"conditional_logic,omitempty"`
	Requirements     []Requirement     `json:"requirements,omitempty" yaml:"requirements,omitempty"`
	IsActive         bool              `json:"is_active" yaml:"is_active"`
	CreatedBy        string            `json:"created_by,omitempty" yaml:"created_by,omitempty"`
	CreatedAt        time.Time         `json:"created_at" yaml:"-"`
	ActivatedAt      *time.Time        `json:"activated_at,omitempty" yaml:"-"`
}

// Field looks up a field by name.
func (c FormConfig) Field(name string) (FieldSpec, bool) {
	for _, field := range c.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldSpec{}, false
}

// FileDescriptor describes an uploaded object. Bytes live in object storage.
type FileDescriptor struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	ContentType string `json:"content_type,omitempty"`
	SizeBytes   int64  `json:"size_bytes,omitempty"`
}

// Payload is submitted form data keyed by field name, as decoded from JSON.
type Payload map[string]any

// Result is the outcome of validating a payload. Errors is never nil.
type Result struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}
