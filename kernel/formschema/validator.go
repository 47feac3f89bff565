package formschema

import (
	"fmt"
	"time"

	"taskhall/kernel/faults"
)

var ErrPageOutOfRange = faults.New(faults.ErrInvalidInput, faults.CodeInvalidInput, "page index is out of range")

// Validator applies a FormConfig to submitted data. It never stops at the
// first problem: every message is collected in declaration order.
type Validator struct {
	Now func() time.Time
}

func NewValidator(now func() time.Time) Validator {
	return Validator{Now: now}
}

// Validate checks the whole form, then conditional rules, then (task forms
// only) the requirements.
func (v Validator) Validate(data Payload, cfg FormConfig) Result {
	scope := make(map[string]bool, len(cfg.Fields))
	for _, field := range cfg.Fields {
		scope[field.Name] = true
	}

	errs := v.validateFields(data, cfg, scope)
	errs = append(errs, validateConditionalRules(data, cfg, nil)...)
	errs = append(errs, v.validateRequirements(data, cfg)...)
	return newResult(errs)
}

// ValidatePage checks the fields of one page plus the conditional rules that
// name them. Requirements are left to the final submission.
func (v Validator) ValidatePage(data Payload, cfg FormConfig, pageIndex int) (Result, error) {
	if pageIndex < 0 || pageIndex >= len(cfg.Pages) {
		return Result{}, ErrPageOutOfRange
	}
	scope := make(map[string]bool)
	for _, name := range cfg.Pages[pageIndex].FieldNames {
		scope[name] = true
	}

	errs := v.validateFields(data, cfg, scope)
	errs = append(errs, validateConditionalRules(data, cfg, scope)...)
	return newResult(errs), nil
}

func (v Validator) validateFields(data Payload, cfg FormConfig, scope map[string]bool) []string {
	catalog := catalogOrDefault(cfg.Kind)
	errs := make([]string, 0)
	for _, field := range cfg.Fields {
		if !scope[field.Name] {
			continue
		}
		if field.VisibleWhen != "" && !EvaluateCondition(data, field.VisibleWhen) {
			continue
		}

		value, present := data[field.Name]
		blank := !present || IsBlank(value)
		if field.Required && blank {
			errs = append(errs, fmt.Sprintf("%s is required", field.DisplayName()))
		}
		if blank || !catalog.Permits(field.Kind) {
			continue
		}
		errs = append(errs, ValidateField(value, field)...)
	}
	return errs
}

// validateConditionalRules applies every rule whose condition holds. Named
// fields need no FieldSpec. A nil scope applies the rules to every name; a
// page scope limits them to the names on that page.
func validateConditionalRules(data Payload, cfg FormConfig, scope map[string]bool) []string {
	inScope := func(name string) bool { return scope == nil || scope[name] }
	var errs []string
	for _, rule := range cfg.ConditionalLogic {
		if !EvaluateCondition(data, rule.Condition) {
			continue
		}
		for _, name := range rule.RequiredFieldNames {
			if inScope(name) && fieldBlank(data, name) {
				errs = append(errs, fmt.Sprintf("%s is required when %s", displayName(cfg, name), rule.Condition))
			}
		}
		for _, name := range rule.HiddenFieldNames {
			if inScope(name) && !fieldBlank(data, name) {
				errs = append(errs, fmt.Sprintf("%s must be empty when %s", displayName(cfg, name), rule.Condition))
			}
		}
	}
	return errs
}

func (v Validator) validateRequirements(data Payload, cfg FormConfig) []string {
	if cfg.Kind != FormKindTask {
		return nil
	}
	catalog := TaskCatalog()
	now := v.now()
	var errs []string
	for _, req := range cfg.Requirements {
		check, ok := catalog.Requirement(req.Kind)
		if !ok {
			continue
		}
		errs = append(errs, check(data, req, now)...)
	}
	return errs
}

func (v Validator) now() time.Time {
	if v.Now == nil {
		return time.Now().UTC()
	}
	return v.Now().UTC()
}

func catalogOrDefault(kind FormKind) Catalog {
	if catalog, ok := CatalogFor(kind); ok {
		return catalog
	}
	return Catalog{FieldKinds: FieldKinds()}
}

func displayName(cfg FormConfig, name string) string {
	if field, ok := cfg.Field(name); ok {
		return field.DisplayName()
	}
	return name
}

func newResult(errs []string) Result {
	if errs == nil {
		errs = []string{}
	}
	return Result{IsValid: len(errs) == 0, Errors: errs}
}
