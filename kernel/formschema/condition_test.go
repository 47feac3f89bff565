package formschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConditionAcceptsSingleComparison(t *testing.T) {
	cases := []struct {
		expr string
		want Condition
	}{
		{`gender == "female"`, Condition{Field: "gender", Operator: OpEquals, Literal: "female"}},
		{`gender=='female'`, Condition{Field: "gender", Operator: OpEquals, Literal: "female"}},
		{`  plan != "free"  `, Condition{Field: "plan", Operator: OpNotEquals, Literal: "free"}},
		{`count == 3`, Condition{Field: "count", Operator: OpEquals, Literal: "3"}},
		{`note == ""`, Condition{Field: "note", Operator: OpEquals, Literal: ""}},
	}
	for _, tc := range cases {
		got, ok := ParseCondition(tc.expr)
		require.True(t, ok, tc.expr)
		assert.Equal(t, tc.want, got, tc.expr)
	}
}

func TestParseConditionRejectsEverythingElse(t *testing.T) {
	for _, expr := range []string{
		`a == 1 && b == 2`,
		`a == "1" || b == "2"`,
		`a > 1`,
		`a === "x"`,
		`a !== "x"`,
		`a == b == c`,
		`== "x"`,
		`a.b == "x"`,
		`a == "unterminated`,
		`a == "x" "y"`,
		`a == x y`,
		`(a == "x")`,
		``,
	} {
		_, ok := ParseCondition(expr)
		assert.False(t, ok, expr)
	}
}

func TestEvaluateConditionComparesStrictly(t *testing.T) {
	data := Payload{"gender": "female", "age": float64(3)}

	assert.True(t, EvaluateCondition(data, `gender == "female"`))
	assert.False(t, EvaluateCondition(data, `gender != "female"`))
	assert.False(t, EvaluateCondition(data, `age == "3"`))
	assert.True(t, EvaluateCondition(data, `age != "3"`))
	assert.False(t, EvaluateCondition(data, `missing == "x"`))
	assert.True(t, EvaluateCondition(data, `missing != "x"`))
	assert.False(t, EvaluateCondition(data, `a == 1 && b == 2`))
}
