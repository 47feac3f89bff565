package jsonschemaadapter

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "https://taskhall.schemas.local/form-config.schema.json"

//go:embed form_config.schema.json
var formConfigSchema string

// DocumentValidator checks authored form documents against the embedded
// JSON Schema before they are decoded into typed configs.
type DocumentValidator struct {
	schema *jsonschema.Schema
}

func NewDocumentValidator() (*DocumentValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, strings.NewReader(formConfigSchema)); err != nil {
		return nil, fmt.Errorf("form config schema load failed: %w", err)
	}
	compiled, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("form config schema compile failed: %w", err)
	}
	return &DocumentValidator{schema: compiled}, nil
}

// MustDocumentValidator panics when the embedded schema is broken.
func MustDocumentValidator() *DocumentValidator {
	validator, err := NewDocumentValidator()
	if err != nil {
		panic(err)
	}
	return validator
}

func (v *DocumentValidator) ValidateDocument(raw []byte) []string {
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return []string{"document must be valid JSON"}
	}

	err = v.schema.Validate(instance)
	if err == nil {
		return nil
	}
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return []string{err.Error()}
	}

	problems := make([]string, 0)
	collectLeaves(validationErr, &problems)
	sort.Strings(problems)
	return problems
}

func collectLeaves(err *jsonschema.ValidationError, out *[]string) {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		*out = append(*out, fmt.Sprintf("%s: %s", location, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectLeaves(cause, out)
	}
}
