package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldTypeRegistry(t *testing.T) {
	t.Run("AllTenTypesRegistered", func(t *testing.T) {
		assert.Len(t, FieldTypeNames(), 10)
		for _, name := range []string{"text", "email", "url", "textarea", "number", "date", "select", "radio", "checkbox", "file"} {
			_, ok := LookupFieldType(name)
			assert.True(t, ok, name)
		}
	})

	t.Run("UnknownTypeNotFound", func(t *testing.T) {
		_, ok := LookupFieldType("slider")
		assert.False(t, ok)
	})

	t.Run("OptionRules", func(t *testing.T) {
		sel, _ := LookupFieldType(FieldTypeSelect)
		assert.True(t, sel.RequiresOptions)

		radio, _ := LookupFieldType(FieldTypeRadio)
		assert.True(t, radio.RequiresOptions)

		// A checkbox can carry options (multiselect) but renders fine
		// without them.
		cb, _ := LookupFieldType(FieldTypeCheckbox)
		assert.False(t, cb.RequiresOptions)
		assert.True(t, cb.AllowsOptions)
	})

	t.Run("ValueKinds", func(t *testing.T) {
		num, _ := LookupFieldType(FieldTypeNumber)
		assert.Equal(t, ValueNumber, num.Kind)
		assert.True(t, num.RangeRules)
		assert.False(t, num.LengthRules)

		file, _ := LookupFieldType(FieldTypeFile)
		assert.Equal(t, ValueFileRef, file.Kind)
	})
}
