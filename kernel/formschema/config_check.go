package formschema

import (
	"fmt"
	"regexp"
	"strings"
)

// CheckConfig reports authoring mistakes that would make a form unusable.
// An empty slice means the config may be stored.
func CheckConfig(cfg FormConfig) []string {
	problems := make([]string, 0)

	catalog, ok := CatalogFor(cfg.Kind)
	if !ok {
		problems = append(problems, fmt.Sprintf("unknown form kind %q", cfg.Kind))
		catalog = Catalog{FieldKinds: FieldKinds()}
	}
	if strings.TrimSpace(cfg.Title) == "" {
		problems = append(problems, "title is required")
	}
	if len(cfg.Fields) == 0 {
		problems = append(problems, "at least one field is required")
	}

	declared := make(map[string]bool, len(cfg.Fields))
	for i, field := range cfg.Fields {
		if strings.TrimSpace(field.Name) == "" {
			problems = append(problems, fmt.Sprintf("field %d has no name", i))
			continue
		}
		if declared[field.Name] {
			problems = append(problems, fmt.Sprintf("field %q is declared more than once", field.Name))
		}
		declared[field.Name] = true

		if !catalog.Permits(field.Kind) {
			problems = append(problems, fmt.Sprintf("field %q has kind %q not allowed in %s forms", field.Name, field.Kind, catalog.Kind))
		}
		problems = append(problems, checkConstraints(field)...)
		if field.VisibleWhen != "" {
			if _, ok := ParseCondition(field.VisibleWhen); !ok {
				problems = append(problems, fmt.Sprintf("field %q has an unsupported visible_when condition", field.Name))
			}
		}
	}

	for i, page := range cfg.Pages {
		if len(page.FieldNames) == 0 {
			problems = append(problems, fmt.Sprintf("page %d has no fields", i))
		}
		for _, name := range page.FieldNames {
			if !declared[name] {
				problems = append(problems, fmt.Sprintf("page %d references undeclared field %q", i, name))
			}
		}
	}

	for i, rule := range cfg.ConditionalLogic {
		if _, ok := ParseCondition(rule.Condition); !ok {
			problems = append(problems, fmt.Sprintf("conditional rule %d has an unsupported condition", i))
		}
	}

	for i, req := range cfg.Requirements {
		if _, ok := catalog.Requirement(req.Kind); !ok {
			problems = append(problems, fmt.Sprintf("requirement %d has kind %q not allowed in %s forms", i, req.Kind, catalog.Kind))
		}
		if req.Threshold < 0 {
			problems = append(problems, fmt.Sprintf("requirement %d has a negative threshold", i))
		}
	}

	return problems
}

func checkConstraints(field FieldSpec) []string {
	var problems []string
	rules := field.Constraints
	if rules.Pattern != "" {
		if _, err := regexp.Compile(rules.Pattern); err != nil {
			problems = append(problems, fmt.Sprintf("field %q has an invalid pattern", field.Name))
		}
	}
	if rules.MinLength > 0 && rules.MaxLength > 0 && rules.MinLength > rules.MaxLength {
		problems = append(problems, fmt.Sprintf("field %q has min_length above max_length", field.Name))
	}
	if rules.Min != nil && rules.Max != nil && *rules.Min > *rules.Max {
		problems = append(problems, fmt.Sprintf("field %q has min above max", field.Name))
	}
	if rules.MinFiles > 0 && rules.MaxFiles > 0 && rules.MinFiles > rules.MaxFiles {
		problems = append(problems, fmt.Sprintf("field %q has min_files above max_files", field.Name))
	}
	if rules.MinDate != "" {
		if _, ok := parseDate(rules.MinDate); !ok {
			problems = append(problems, fmt.Sprintf("field %q has an invalid min_date", field.Name))
		}
	}
	if rules.MaxDate != "" {
		if _, ok := parseDate(rules.MaxDate); !ok {
			problems = append(problems, fmt.Sprintf("field %q has an invalid max_date", field.Name))
		}
	}
	switch field.Kind {
	case FieldSelect, FieldRadio, FieldCheckbox:
		if len(rules.Options) == 0 {
			problems = append(problems, fmt.Sprintf("field %q needs at least one option", field.Name))
		}
	}
	return problems
}
