package formschema

import (
	"regexp"
	"strings"
)

type Operator string

const (
	OpEquals    Operator = "=="
	OpNotEquals Operator = "!="
)

// Condition is a parsed `<field> (==|!=) <literal>` comparison.
type Condition struct {
	Field    string
	Operator Operator
	Literal  string
}

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	bareLiteral       = regexp.MustCompile(`^[^\s'"=!&|()]+$`)
)

// ParseCondition accepts exactly one binary comparison. Boolean composition,
// other operators and malformed operands are rejected.
func ParseCondition(expr string) (Condition, bool) {
	expr = strings.TrimSpace(expr)
	if strings.Count(expr, "==")+strings.Count(expr, "!=") != 1 {
		return Condition{}, false
	}

	op := OpEquals
	idx := strings.Index(expr, string(OpEquals))
	if idx < 0 {
		op = OpNotEquals
		idx = strings.Index(expr, string(OpNotEquals))
	}

	field := strings.TrimSpace(expr[:idx])
	rest := strings.TrimSpace(expr[idx+len(op):])
	if !identifierPattern.MatchString(field) {
		return Condition{}, false
	}

	literal, ok := parseLiteral(rest)
	if !ok {
		return Condition{}, false
	}
	return Condition{Field: field, Operator: op, Literal: literal}, true
}

func parseLiteral(raw string) (string, bool) {
	if len(raw) >= 2 {
		quote := raw[0]
		if (quote == '"' || quote == '\'') && raw[len(raw)-1] == quote {
			inner := raw[1 : len(raw)-1]
			if strings.ContainsAny(inner, `"'`) {
				return "", false
			}
			return inner, true
		}
	}
	if bareLiteral.MatchString(raw) {
		return raw, true
	}
	return "", false
}

// Holds compares the named value strictly: only a string equal to the literal
// counts as equal.
func (c Condition) Holds(data Payload) bool {
	text, isString := data[c.Field].(string)
	equal := isString && text == c.Literal
	if c.Operator == OpEquals {
		return equal
	}
	return !equal
}

// EvaluateCondition never fails: an expression outside the grammar is false.
func EvaluateCondition(data Payload, expr string) bool {
	condition, ok := ParseCondition(expr)
	if !ok {
		return false
	}
	return condition.Holds(data)
}
