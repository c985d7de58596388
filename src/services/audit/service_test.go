package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringify(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"Nil", nil, ""},
		{"String", "hello", "hello"},
		{"BoolTrue", true, "true"},
		{"BoolFalse", false, "false"},
		{"WholeFloat", float64(42), "42"},
		{"FractionalFloat", 3.5, "3.5"},
		{"Int", 7, "7"},
		{"Int64", int64(7), "7"},
		{"StringArray", []interface{}{"a", "b"}, `["a","b"]`},
		{"Map", map[string]interface{}{"k": "v"}, `{"k":"v"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Stringify(tc.value))
		})
	}

	t.Run("NoChangeUnderTypeDrift", func(t *testing.T) {
		// BSON decodes a stored 42 as float64 while a fresh request may
		// carry an int; both must stringify identically so a re-save of
		// the same value never produces a history entry.
		assert.Equal(t, Stringify(42), Stringify(float64(42)))
		assert.Equal(t, Stringify(int64(42)), Stringify(float64(42)))
	})

	t.Run("NilAndEmptyStringCoincide", func(t *testing.T) {
		assert.Equal(t, Stringify(nil), Stringify(""))
	})
}

func TestIsApplicationField(t *testing.T) {
	for _, field := range []string{"fullName", "email", "phone", "status", "notes"} {
		assert.True(t, isApplicationField(field), field)
	}
	assert.False(t, isApplicationField("salary"))
	assert.False(t, isApplicationField(""))
}
