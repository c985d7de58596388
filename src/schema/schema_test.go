package schema

import (
	"testing"

	"Backend-Formforge/src/models"

	"github.com/stretchr/testify/assert"
)

func validDraftSchema() models.FormSchema {
	return models.FormSchema{
		Steps: []models.FormStep{
			{
				ID:    "contact",
				Title: "Contact",
				Fields: []models.FormField{
					{ID: "name", Type: "text", Label: "Full Name", Required: true},
					{ID: "email", Type: "email", Label: "Email", Required: true},
				},
			},
			{
				ID:    "details",
				Title: "Details",
				Fields: []models.FormField{
					{
						ID: "topic", Type: "select", Label: "Topic", Required: true,
						Options: []models.FieldOption{
							{Value: "support", Label: "Support"},
							{Value: "sales", Label: "Sales"},
						},
					},
				},
			},
		},
		Settings: models.DefaultFormSettings(),
	}
}

func TestValidatePublish(t *testing.T) {
	t.Run("ValidSchemaHasNoProblems", func(t *testing.T) {
		problems := ValidatePublish(validDraftSchema())
		assert.Empty(t, problems)
	})

	t.Run("EmptyStepsRejected", func(t *testing.T) {
		problems := ValidatePublish(models.FormSchema{})
		assert.Len(t, problems, 1)
		assert.Contains(t, problems[0], "at least one step")
	})

	t.Run("StepWithoutFieldsRejected", func(t *testing.T) {
		s := validDraftSchema()
		s.Steps[1].Fields = nil
		problems := ValidatePublish(s)
		assert.Len(t, problems, 1)
		assert.Contains(t, problems[0], "no fields")
	})

	t.Run("DuplicateStepIDRejected", func(t *testing.T) {
		s := validDraftSchema()
		s.Steps[1].ID = s.Steps[0].ID
		problems := ValidatePublish(s)
		assert.Len(t, problems, 1)
		assert.Contains(t, problems[0], "duplicate step id")
	})

	t.Run("DuplicateFieldIDRejected", func(t *testing.T) {
		s := validDraftSchema()
		s.Steps[1].Fields[0].ID = "name"
		problems := ValidatePublish(s)
		assert.Len(t, problems, 1)
		assert.Contains(t, problems[0], `duplicate field id "name"`)
	})

	t.Run("MissingLabelRejected", func(t *testing.T) {
		s := validDraftSchema()
		s.Steps[0].Fields[0].Label = ""
		problems := ValidatePublish(s)
		assert.Len(t, problems, 1)
		assert.Contains(t, problems[0], "has no label")
	})

	t.Run("UnknownTypeRejected", func(t *testing.T) {
		s := validDraftSchema()
		s.Steps[0].Fields[0].Type = "slider"
		problems := ValidatePublish(s)
		assert.Len(t, problems, 1)
		assert.Contains(t, problems[0], "unknown type")
	})

	t.Run("SelectWithoutOptionsRejected", func(t *testing.T) {
		s := validDraftSchema()
		s.Steps[1].Fields[0].Options = nil
		problems := ValidatePublish(s)
		assert.Len(t, problems, 1)
		assert.Contains(t, problems[0], "needs at least one option")
	})

	t.Run("OptionMissingLabelRejected", func(t *testing.T) {
		s := validDraftSchema()
		s.Steps[1].Fields[0].Options[0].Label = ""
		problems := ValidatePublish(s)
		assert.Len(t, problems, 1)
		assert.Contains(t, problems[0], "option without value or label")
	})

	t.Run("AllProblemsReportedTogether", func(t *testing.T) {
		s := validDraftSchema()
		s.Steps[0].Fields[0].Label = ""
		s.Steps[0].Fields[1].Type = "slider"
		s.Steps[1].Fields[0].Options = nil
		problems := ValidatePublish(s)
		assert.Len(t, problems, 3)
	})
}
