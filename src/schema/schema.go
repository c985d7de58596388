package schema

import (
	"fmt"

	"Backend-Formforge/src/models"
)

// ValidatePublish runs the publish-time structural gate over a draft schema
// and returns every problem found. Drafts may be transiently invalid while
// being edited; this gate only runs when a version is about to be frozen.
func ValidatePublish(s models.FormSchema) []string {
	var problems []string

	if len(s.Steps) == 0 {
		return []string{"schema must contain at least one step"}
	}

	stepIDs := map[string]bool{}
	fieldIDs := map[string]bool{}

	for i, step := range s.Steps {
		stepName := step.Title
		if stepName == "" {
			stepName = fmt.Sprintf("step %d", i+1)
		}

		if step.ID == "" {
			problems = append(problems, fmt.Sprintf("%s has no id", stepName))
		} else if stepIDs[step.ID] {
			problems = append(problems, fmt.Sprintf("duplicate step id %q", step.ID))
		}
		stepIDs[step.ID] = true

		if len(step.Fields) == 0 {
			problems = append(problems, fmt.Sprintf("%s has no fields", stepName))
		}

		for _, field := range step.Fields {
			problems = append(problems, validatePublishField(field, fieldIDs)...)
		}
	}

	return problems
}

func validatePublishField(field models.FormField, seen map[string]bool) []string {
	var problems []string

	name := field.Label
	if name == "" {
		name = field.ID
	}

	if field.ID == "" {
		problems = append(problems, "a field has no id")
	} else if seen[field.ID] {
		// Field ids must be unique across the entire schema because
		// submission data is keyed by them.
		problems = append(problems, fmt.Sprintf("duplicate field id %q", field.ID))
	}
	seen[field.ID] = true

	if field.Label == "" {
		problems = append(problems, fmt.Sprintf("field %q has no label", field.ID))
	}

	info, ok := LookupFieldType(field.Type)
	if !ok {
		problems = append(problems, fmt.Sprintf("field %q has unknown type %q", name, field.Type))
		return problems
	}

	if info.RequiresOptions && len(field.Options) == 0 {
		problems = append(problems, fmt.Sprintf("field %q needs at least one option", name))
	}

	for _, opt := range field.Options {
		if opt.Value == "" || opt.Label == "" {
			problems = append(problems, fmt.Sprintf("field %q has an option without value or label", name))
			break
		}
	}

	return problems
}
