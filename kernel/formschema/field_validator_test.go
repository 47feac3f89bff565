package formschema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestValidateFieldTable(t *testing.T) {
	colours := []Option{{Value: "red"}, {Value: "blue"}}

	cases := []struct {
		name  string
		spec  FieldSpec
		value any
		want  []string
	}{
		{
			name:  "text within bounds",
			spec:  FieldSpec{Name: "nick", Label: "Nickname", Kind: FieldText, Constraints: Constraints{MinLength: 2, MaxLength: 5}},
			value: "abc",
		},
		{
			name:  "text counts characters not bytes",
			spec:  FieldSpec{Name: "nick", Label: "Nickname", Kind: FieldText, Constraints: Constraints{MaxLength: 2}},
			value: "小红",
		},
		{
			name:  "text too short and pattern mismatch both reported",
			spec:  FieldSpec{Name: "code", Label: "Code", Kind: FieldText, Constraints: Constraints{MinLength: 3, Pattern: `^\d+$`}},
			value: "a",
			want:  []string{"Code must be at least 3 characters", "Code has an invalid format"},
		},
		{
			name:  "textarea too long",
			spec:  FieldSpec{Name: "bio", Label: "Bio", Kind: FieldTextarea, Constraints: Constraints{MaxLength: 3}},
			value: "abcd",
			want:  []string{"Bio must be at most 3 characters"},
		},
		{
			name:  "number below min",
			spec:  FieldSpec{Name: "age", Label: "Age", Kind: FieldNumber, Constraints: Constraints{Min: floatPtr(18), Max: floatPtr(60)}},
			value: float64(15),
			want:  []string{"Age must be at least 18"},
		},
		{
			name:  "number string coerced",
			spec:  FieldSpec{Name: "age", Label: "Age", Kind: FieldNumber, Constraints: Constraints{Min: floatPtr(18), Max: floatPtr(60)}},
			value: "30",
		},
		{
			name:  "json number coerced",
			spec:  FieldSpec{Name: "age", Label: "Age", Kind: FieldNumber, Constraints: Constraints{Max: floatPtr(60)}},
			value: json.Number("61"),
			want:  []string{"Age must be at most 60"},
		},
		{
			name:  "number not numeric",
			spec:  FieldSpec{Name: "age", Label: "Age", Kind: FieldNumber, Constraints: Constraints{Min: floatPtr(18)}},
			value: "abc",
			want:  []string{"Age must be a number"},
		},
		{
			name:  "zero min bound is enforced",
			spec:  FieldSpec{Name: "score", Label: "Score", Kind: FieldNumber, Constraints: Constraints{Min: floatPtr(0)}},
			value: float64(-1),
			want:  []string{"Score must be at least 0"},
		},
		{
			name:  "email valid",
			spec:  FieldSpec{Name: "email", Label: "Email", Kind: FieldEmail},
			value: "a@b.co",
		},
		{
			name:  "email invalid",
			spec:  FieldSpec{Name: "email", Label: "Email", Kind: FieldEmail},
			value: "a@b",
			want:  []string{"Email must be a valid email address"},
		},
		{
			name:  "phone valid",
			spec:  FieldSpec{Name: "phone", Label: "Phone", Kind: FieldPhone},
			value: "13812345678",
		},
		{
			name:  "phone invalid prefix",
			spec:  FieldSpec{Name: "phone", Label: "Phone", Kind: FieldPhone},
			value: "12812345678",
			want:  []string{"Phone must be a valid mobile number"},
		},
		{
			name:  "url valid",
			spec:  FieldSpec{Name: "link", Label: "Link", Kind: FieldURL},
			value: "https://example.com/a?b=c",
		},
		{
			name:  "url relative rejected",
			spec:  FieldSpec{Name: "link", Label: "Link", Kind: FieldURL},
			value: "/relative/path",
			want:  []string{"Link must be a valid URL"},
		},
		{
			name:  "select in options",
			spec:  FieldSpec{Name: "colour", Label: "Colour", Kind: FieldSelect, Constraints: Constraints{Options: colours}},
			value: "red",
		},
		{
			name:  "radio outside options",
			spec:  FieldSpec{Name: "colour", Label: "Colour", Kind: FieldRadio, Constraints: Constraints{Options: colours}},
			value: "green",
			want:  []string{"Colour has an invalid option"},
		},
		{
			name:  "select without options accepts anything",
			spec:  FieldSpec{Name: "colour", Label: "Colour", Kind: FieldSelect},
			value: "green",
		},
		{
			name:  "checkbox reports each invalid element",
			spec:  FieldSpec{Name: "colours", Label: "Colours", Kind: FieldCheckbox, Constraints: Constraints{Options: colours}},
			value: []any{"red", "green", "pink"},
			want:  []string{"Colours contains an invalid option", "Colours contains an invalid option"},
		},
		{
			name:  "checkbox must be a list",
			spec:  FieldSpec{Name: "colours", Label: "Colours", Kind: FieldCheckbox, Constraints: Constraints{Options: colours}},
			value: "red",
			want:  []string{"Colours must be a list of options"},
		},
		{
			name:  "date equal to bounds is allowed",
			spec:  FieldSpec{Name: "dob", Label: "Birthday", Kind: FieldDate, Constraints: Constraints{MinDate: "2000-01-01", MaxDate: "2000-12-31"}},
			value: "2000-01-01",
		},
		{
			name:  "date before min",
			spec:  FieldSpec{Name: "dob", Label: "Birthday", Kind: FieldDate, Constraints: Constraints{MinDate: "2000-01-01"}},
			value: "1999-12-31",
			want:  []string{"Birthday must not be earlier than 2000-01-01"},
		},
		{
			name:  "date after max",
			spec:  FieldSpec{Name: "dob", Label: "Birthday", Kind: FieldDate, Constraints: Constraints{MaxDate: "2000-12-31"}},
			value: "2001-01-01",
			want:  []string{"Birthday must not be later than 2000-12-31"},
		},
		{
			name:  "date unparseable",
			spec:  FieldSpec{Name: "dob", Label: "Birthday", Kind: FieldDate},
			value: "yesterday",
			want:  []string{"Birthday must be a valid date"},
		},
		{
			name:  "file count bounds",
			spec:  FieldSpec{Name: "docs", Label: "Documents", Kind: FieldFile, Constraints: Constraints{MaxFiles: 1}},
			value: []any{map[string]any{"name": "a"}, map[string]any{"name": "b"}},
			want:  []string{"Documents accepts at most 1 files"},
		},
		{
			name:  "file below min",
			spec:  FieldSpec{Name: "docs", Label: "Documents", Kind: FieldFile, Constraints: Constraints{MinFiles: 2}},
			value: []any{map[string]any{"name": "a"}},
			want:  []string{"Documents requires at least 2 files"},
		},
		{
			name:  "file must be a list",
			spec:  FieldSpec{Name: "docs", Label: "Documents", Kind: FieldFile},
			value: "a.pdf",
			want:  []string{"Documents must be a list of files"},
		},
		{
			name:  "screenshot must not be a scalar",
			spec:  FieldSpec{Name: "proof", Label: "Proof", Kind: FieldScreenshot},
			value: "shot.png",
			want:  []string{"Proof requires at least one screenshot"},
		},
		{
			name:  "screenshot with one element",
			spec:  FieldSpec{Name: "proof", Label: "Proof", Kind: FieldScreenshot},
			value: []FileDescriptor{{Name: "shot.png", URL: "https://cdn/shot.png"}},
		},
		{
			name:  "social link on platform host",
			spec:  FieldSpec{Name: "post", Label: "Post", Kind: FieldSocialMediaLink, Constraints: Constraints{Platform: "bilibili"}},
			value: "https://www.bilibili.com/video/BV1",
		},
		{
			name:  "social link on other host",
			spec:  FieldSpec{Name: "post", Label: "Post", Kind: FieldSocialMediaLink, Constraints: Constraints{Platform: "weibo"}},
			value: "https://evil.example/weibo.com",
			want:  []string{"Post must be a valid weibo link"},
		},
		{
			name:  "social link with unknown platform passes through",
			spec:  FieldSpec{Name: "post", Label: "Post", Kind: FieldSocialMediaLink, Constraints: Constraints{Platform: "myspace"}},
			value: "anything at all",
		},
		{
			name:  "social link without platform passes through",
			spec:  FieldSpec{Name: "post", Label: "Post", Kind: FieldSocialMediaLink},
			value: "anything at all",
		},
		{
			name:  "label falls back to name",
			spec:  FieldSpec{Name: "email", Kind: FieldEmail},
			value: "nope",
			want:  []string{"email must be a valid email address"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateField(tc.value, tc.spec)
			if len(tc.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(nil))
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank([]any{}))
	assert.False(t, IsBlank(" "))
	assert.False(t, IsBlank(float64(0)))
	assert.False(t, IsBlank(false))
	assert.False(t, IsBlank([]any{"x"}))
}

func TestNumberAcceptsDecimalLiteralsOnly(t *testing.T) {
	unbounded := FieldSpec{Name: "score", Label: "Score", Kind: FieldNumber}
	for _, text := range []string{"inf", "-inf", "infinity", "0x1p-2", "0x10", "0b101", "1_000", "NaN", "12abc", "1e"} {
		assert.Equal(t, []string{"Score must be a number"}, ValidateField(text, unbounded), "value %q", text)
	}
	for _, text := range []string{"42", " -3.5 ", ".5", "5.", "1e3", "+7", "Infinity", "-Infinity", "1e400"} {
		assert.Empty(t, ValidateField(text, unbounded), "value %q", text)
	}

	bounded := FieldSpec{Name: "age", Label: "Age", Kind: FieldNumber, Constraints: Constraints{Max: floatPtr(60)}}
	assert.Equal(t, []string{"Age must be a number"}, ValidateField("inf", bounded))
	assert.Equal(t, []string{"Age must be at most 60"}, ValidateField("Infinity", bounded))
}
