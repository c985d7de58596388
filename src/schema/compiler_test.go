package schema

import (
	"testing"

	"Backend-Formforge/src/models"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func singleFieldSchema(field models.FormField) models.FormSchema {
	return models.FormSchema{
		Steps: []models.FormStep{
			{ID: "s1", Title: "Step 1", Fields: []models.FormField{field}},
		},
		Settings: models.DefaultFormSettings(),
	}
}

func TestCompileStructuralErrors(t *testing.T) {
	t.Run("UnknownFieldType", func(t *testing.T) {
		_, err := Compile(singleFieldSchema(models.FormField{
			ID: "f1", Type: "slider", Label: "Rating",
		}))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown field type")
	})

	t.Run("DuplicateFieldID", func(t *testing.T) {
		s := models.FormSchema{
			Steps: []models.FormStep{
				{ID: "s1", Title: "A", Fields: []models.FormField{{ID: "f1", Type: "text", Label: "One"}}},
				{ID: "s2", Title: "B", Fields: []models.FormField{{ID: "f1", Type: "text", Label: "Two"}}},
			},
		}
		_, err := Compile(s)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate field id")
	})

	t.Run("InvalidPattern", func(t *testing.T) {
		_, err := Compile(singleFieldSchema(models.FormField{
			ID: "f1", Type: "text", Label: "Code",
			Validation: &models.FieldValidation{Pattern: "(unclosed"},
		}))
		assert.Error(t, err)
	})
}

func TestNumberValidation(t *testing.T) {
	validator, err := Compile(singleFieldSchema(models.FormField{
		ID: "age", Type: "number", Label: "Age", Required: true,
		Validation: &models.FieldValidation{Min: floatPtr(18), Max: floatPtr(65)},
	}))
	assert.NoError(t, err)

	t.Run("BelowMinimumFails", func(t *testing.T) {
		result := validator.Validate(map[string]interface{}{"age": 17})
		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors, "age")
	})

	t.Run("AtMinimumPasses", func(t *testing.T) {
		result := validator.Validate(map[string]interface{}{"age": 18})
		assert.True(t, result.Valid)
		assert.Empty(t, result.Errors)
	})

	t.Run("NonNumericFails", func(t *testing.T) {
		result := validator.Validate(map[string]interface{}{"age": "abc"})
		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors, "age")
	})

	t.Run("NumericStringCoerces", func(t *testing.T) {
		result := validator.Validate(map[string]interface{}{"age": "42"})
		assert.True(t, result.Valid)
	})

	t.Run("RequiredMissingFails", func(t *testing.T) {
		result := validator.Validate(map[string]interface{}{})
		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors, "age")
	})
}

func TestEmailValidation(t *testing.T) {
	validator, err := Compile(singleFieldSchema(models.FormField{
		ID: "email", Type: "email", Label: "Email", Required: false,
	}))
	assert.NoError(t, err)

	t.Run("MissingOptionalPasses", func(t *testing.T) {
		result := validator.Validate(map[string]interface{}{})
		assert.True(t, result.Valid)
	})

	t.Run("EmptyStringOptionalPasses", func(t *testing.T) {
		// Form controls default to empty string, not undefined.
		result := validator.Validate(map[string]interface{}{"email": ""})
		assert.True(t, result.Valid)
	})

	t.Run("MalformedFails", func(t *testing.T) {
		result := validator.Validate(map[string]interface{}{"email": "not-an-email"})
		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors, "email")
	})

	t.Run("WellFormedPasses", func(t *testing.T) {
		result := validator.Validate(map[string]interface{}{"email": "alice@example.com"})
		assert.True(t, result.Valid)
	})
}

func TestTextLengthAndPattern(t *testing.T) {
	validator, err := Compile(singleFieldSchema(models.FormField{
		ID: "code", Type: "text", Label: "Code", Required: true,
		Validation: &models.FieldValidation{
			MinLength: intPtr(3),
			MaxLength: intPtr(5),
			Pattern:   "^[A-Z]+$",
		},
	}))
	assert.NoError(t, err)

	cases := []struct {
		name  string
		value interface{}
		valid bool
	}{
		{"TooShort", "AB", false},
		{"TooLong", "ABCDEF", false},
		{"PatternMismatch", "abcd", false},
		{"Valid", "ABCD", true},
		{"NonString", 12, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := validator.Validate(map[string]interface{}{"code": tc.value})
			assert.Equal(t, tc.valid, result.Valid)
		})
	}
}

func TestCustomMessageOverride(t *testing.T) {
	validator, err := Compile(singleFieldSchema(models.FormField{
		ID: "name", Type: "text", Label: "Name", Required: true,
		Validation: &models.FieldValidation{MinLength: intPtr(2), CustomMessage: "Please tell us your name"},
	}))
	assert.NoError(t, err)

	result := validator.Validate(map[string]interface{}{"name": "x"})
	assert.False(t, result.Valid)
	assert.Equal(t, "Please tell us your name", result.Errors["name"])
}

func TestSelectAndRadioValidation(t *testing.T) {
	field := models.FormField{
		ID: "topic", Type: "select", Label: "Topic", Required: true,
		Options: []models.FieldOption{
			{Value: "a", Label: "A"},
			{Value: "b", Label: "B"},
		},
	}

	validator, err := Compile(singleFieldSchema(field))
	assert.NoError(t, err)

	t.Run("MemberPasses", func(t *testing.T) {
		result := validator.Validate(map[string]interface{}{"topic": "a"})
		assert.True(t, result.Valid)
	})

	t.Run("NonMemberFails", func(t *testing.T) {
		result := validator.Validate(map[string]interface{}{"topic": "z"})
		assert.False(t, result.Valid)
	})

	t.Run("ZeroOptionsAcceptsAnyString", func(t *testing.T) {
		loose := field
		loose.Options = nil
		v, err := Compile(singleFieldSchema(loose))
		assert.NoError(t, err)

		result := v.Validate(map[string]interface{}{"topic": "anything"})
		assert.True(t, result.Valid)
	})

	t.Run("RadioIsItsOwnType", func(t *testing.T) {
		radio := field
		radio.Type = "radio"
		v, err := Compile(singleFieldSchema(radio))
		assert.NoError(t, err)

		result := v.Validate(map[string]interface{}{"topic": "b"})
		assert.True(t, result.Valid)
		result = v.Validate(map[string]interface{}{"topic": "z"})
		assert.False(t, result.Valid)
	})
}

func TestCheckboxValidation(t *testing.T) {
	t.Run("PlainCheckboxWantsBool", func(t *testing.T) {
		v, err := Compile(singleFieldSchema(models.FormField{
			ID: "agree", Type: "checkbox", Label: "Agree", Required: true,
		}))
		assert.NoError(t, err)

		assert.True(t, v.Validate(map[string]interface{}{"agree": true}).Valid)
		assert.False(t, v.Validate(map[string]interface{}{"agree": "yes"}).Valid)
	})

	t.Run("MultiselectChecksMembership", func(t *testing.T) {
		v, err := Compile(singleFieldSchema(models.FormField{
			ID: "tags", Type: "checkbox", Label: "Tags", Required: true,
			Options: []models.FieldOption{
				{Value: "go", Label: "Go"},
				{Value: "js", Label: "JS"},
			},
		}))
		assert.NoError(t, err)

		assert.True(t, v.Validate(map[string]interface{}{"tags": []interface{}{"go", "js"}}).Valid)
		assert.False(t, v.Validate(map[string]interface{}{"tags": []interface{}{"go", "rust"}}).Valid)
	})
}

func TestDateAndFileValidation(t *testing.T) {
	s := models.FormSchema{
		Steps: []models.FormStep{{
			ID: "s1", Title: "S",
			Fields: []models.FormField{
				{ID: "when", Type: "date", Label: "When", Required: true},
				{ID: "doc", Type: "file", Label: "Document", Required: false},
			},
		}},
	}
	validator, err := Compile(s)
	assert.NoError(t, err)

	t.Run("DateNeedsNonEmptyString", func(t *testing.T) {
		assert.False(t, validator.Validate(map[string]interface{}{"when": ""}).Valid)
		assert.True(t, validator.Validate(map[string]interface{}{"when": "2026-01-15"}).Valid)
	})

	t.Run("FileIsOpaqueString", func(t *testing.T) {
		result := validator.Validate(map[string]interface{}{
			"when": "2026-01-15",
			"doc":  "3f8e2c10-aaaa-bbbb-cccc-1234567890ab",
		})
		assert.True(t, result.Valid)
	})
}

func TestValidateFieldsSubset(t *testing.T) {
	s := models.FormSchema{
		Steps: []models.FormStep{
			{ID: "s1", Title: "Step 1", Fields: []models.FormField{
				{ID: "name", Type: "text", Label: "Name", Required: true},
			}},
			{ID: "s2", Title: "Step 2", Fields: []models.FormField{
				{ID: "email", Type: "email", Label: "Email", Required: true},
			}},
		},
	}
	validator, err := Compile(s)
	assert.NoError(t, err)

	// Per-step validation only looks at the named field ids, so the missing
	// email on step two doesn't block step one.
	result := validator.ValidateFields(map[string]interface{}{"name": "Alice"}, []string{"name"})
	assert.True(t, result.Valid)

	result = validator.Validate(map[string]interface{}{"name": "Alice"})
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "email")
	assert.NotContains(t, result.Errors, "name")
}

func TestAllInvalidFieldsReported(t *testing.T) {
	s := models.FormSchema{
		Steps: []models.FormStep{{
			ID: "s1", Title: "S",
			Fields: []models.FormField{
				{ID: "name", Type: "text", Label: "Name", Required: true},
				{ID: "email", Type: "email", Label: "Email", Required: true},
				{ID: "age", Type: "number", Label: "Age", Required: true},
			},
		}},
	}
	validator, err := Compile(s)
	assert.NoError(t, err)

	result := validator.Validate(map[string]interface{}{"email": "nope", "age": "NaN"})
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 3)
}
