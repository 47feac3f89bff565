package formschema

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestConditionEqualityProperties checks that == and != are complementary for
// every parseable condition and that a composed expression is always false.
func TestConditionEqualityProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("== and != are complementary", prop.ForAll(
		func(field string, literal string, actual string) bool {
			data := Payload{field: actual}
			eq := EvaluateCondition(data, fmt.Sprintf(`%s == "%s"`, field, literal))
			ne := EvaluateCondition(data, fmt.Sprintf(`%s != "%s"`, field, literal))
			return eq != ne && eq == (actual == literal)
		},
		gen.Identifier(),
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("composed expressions evaluate to false", prop.ForAll(
		func(left string, right string, value string) bool {
			data := Payload{left: value, right: value}
			for _, joiner := range []string{"&&", "||", "and", ","} {
				expr := fmt.Sprintf(`%s == "%s" %s %s == "%s"`, left, value, joiner, right, value)
				if EvaluateCondition(data, expr) {
					return false
				}
			}
			return true
		},
		gen.Identifier(),
		gen.Identifier(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// TestNumericBoundProperties checks the number kind against its bounds for
// arbitrary values.
func TestNumericBoundProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	spec := FieldSpec{
		Name:        "age",
		Label:       "Age",
		Kind:        FieldNumber,
		Constraints: Constraints{Min: floatPtr(18), Max: floatPtr(65)},
	}

	properties.Property("values inside [min,max] pass and outside fail", prop.ForAll(
		func(value int) bool {
			errs := ValidateField(float64(value), spec)
			inside := value >= 18 && value <= 65
			return (len(errs) == 0) == inside
		},
		gen.IntRange(-100, 200),
	))

	properties.Property("string and numeric forms agree", prop.ForAll(
		func(value int) bool {
			fromNumber := ValidateField(float64(value), spec)
			fromString := ValidateField(fmt.Sprintf("%d", value), spec)
			return fmt.Sprint(fromNumber) == fmt.Sprint(fromString)
		},
		gen.IntRange(-100, 200),
	))

	properties.TestingRun(t)
}
