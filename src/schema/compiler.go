package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"Backend-Formforge/src/models"
)

// emailPattern is intentionally loose; real deliverability is not the
// validator's job.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationResult is the structured pass/fail outcome. Errors maps field id
// to message so the UI can flag every invalid field at once; validation never
// panics or returns a Go error to the caller.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

type fieldRule struct {
	field   models.FormField
	info    FieldTypeInfo
	pattern *regexp.Regexp
	options map[string]bool // option values for select/radio/checkbox
}

// Validator is a compiled form schema: one rule per field across all steps,
// addressable by field id for per-step validation.
type Validator struct {
	rules map[string]*fieldRule
	order []string
}

// Compile synthesizes per-field validation rules from a schema. It fails with
// a structural error on an unrecognized field type, a duplicate field id, or
// an invalid regex pattern; these are authoring bugs, not user input problems.
func Compile(s models.FormSchema) (*Validator, error) {
	v := &Validator{rules: map[string]*fieldRule{}}

	for _, step := range s.Steps {
		for _, field := range step.Fields {
			info, ok := LookupFieldType(field.Type)
			if !ok {
				return nil, fmt.Errorf("field %q: unknown field type %q", field.ID, field.Type)
			}
			if _, dup := v.rules[field.ID]; dup {
				return nil, fmt.Errorf("duplicate field id %q", field.ID)
			}

			rule := &fieldRule{field: field, info: info}

			if field.Validation != nil && field.Validation.Pattern != "" && info.LengthRules {
				re, err := regexp.Compile(field.Validation.Pattern)
				if err != nil {
					return nil, fmt.Errorf("field %q: invalid pattern: %v", field.ID, err)
				}
				rule.pattern = re
			}

			if info.AllowsOptions && len(field.Options) > 0 {
				rule.options = make(map[string]bool, len(field.Options))
				for _, opt := range field.Options {
					rule.options[opt.Value] = true
				}
			}

			v.rules[field.ID] = rule
			v.order = append(v.order, field.ID)
		}
	}

	return v, nil
}

// Validate checks a complete payload against every field in the schema.
func (v *Validator) Validate(data map[string]interface{}) ValidationResult {
	return v.ValidateFields(data, v.order)
}

// ValidateFields checks only the named field ids — the per-step "Next" button
// path in a multi-step flow. Unknown ids are ignored.
func (v *Validator) ValidateFields(data map[string]interface{}, fieldIDs []string) ValidationResult {
	errs := map[string]string{}

	for _, id := range fieldIDs {
		rule, ok := v.rules[id]
		if !ok {
			continue
		}
		if msg := rule.check(data[id]); msg != "" {
			errs[id] = msg
		}
	}

	if len(errs) > 0 {
		return ValidationResult{Valid: false, Errors: errs}
	}
	return ValidationResult{Valid: true}
}

// check returns "" on pass or a user-facing message on failure.
func (r *fieldRule) check(value interface{}) string {
	// Form controls default to empty string, not undefined, so "" counts as
	// absent for every type.
	if value == nil || value == "" {
		if r.field.Required {
			return r.message("%s is required")
		}
		return ""
	}

	switch r.info.Kind {
	case ValueNumber:
		return r.checkNumber(value)
	case ValueBool:
		return r.checkCheckbox(value)
	default:
		return r.checkString(value)
	}
}

func (r *fieldRule) checkString(value interface{}) string {
	str, ok := value.(string)
	if !ok {
		return r.message("%s must be text")
	}

	switch r.field.Type {
	case FieldTypeEmail:
		if !emailPattern.MatchString(str) {
			return r.message("%s must be a valid email address")
		}
	case FieldTypeDate:
		if strings.TrimSpace(str) == "" {
			return r.message("%s is required")
		}
		return ""
	case FieldTypeSelect, FieldTypeRadio:
		// Zero options degrades to accepting any string; an authoring-time
		// edge case, not hardened here.
		if r.options != nil && !r.options[str] {
			return r.message("%s has an invalid selection")
		}
		return ""
	case FieldTypeFile:
		// Opaque storage reference; upload validity is the blob store's
		// concern.
		return ""
	}

	if val := r.field.Validation; val != nil {
		if val.MinLength != nil && len(str) < *val.MinLength {
			return r.message(fmt.Sprintf("%%s must be at least %d characters", *val.MinLength))
		}
		if val.MaxLength != nil && len(str) > *val.MaxLength {
			return r.message(fmt.Sprintf("%%s must be at most %d characters", *val.MaxLength))
		}
		if r.pattern != nil && !r.pattern.MatchString(str) {
			return r.message("%s has an invalid format")
		}
	}

	return ""
}

func (r *fieldRule) checkNumber(value interface{}) string {
	num, ok := coerceNumber(value)
	if !ok {
		return r.message("%s must be a number")
	}

	if val := r.field.Validation; val != nil {
		if val.Min != nil && num < *val.Min {
			return r.message(fmt.Sprintf("%%s must be at least %v", *val.Min))
		}
		if val.Max != nil && num > *val.Max {
			return r.message(fmt.Sprintf("%%s must be at most %v", *val.Max))
		}
	}

	return ""
}

// checkCheckbox accepts a boolean, or a string array when the field carries
// options (multiselect rendering of a checkbox group).
func (r *fieldRule) checkCheckbox(value interface{}) string {
	if _, ok := value.(bool); ok {
		return ""
	}

	if r.options != nil {
		items, ok := toStringSlice(value)
		if !ok {
			return r.message("%s has an invalid selection")
		}
		for _, item := range items {
			if !r.options[item] {
				return r.message("%s has an invalid selection")
			}
		}
		return ""
	}

	return r.message("%s must be true or false")
}

// message formats the default message with the field label, or returns the
// author-supplied custom message verbatim.
func (r *fieldRule) message(format string) string {
	if r.field.Validation != nil && r.field.Validation.CustomMessage != "" {
		return r.field.Validation.CustomMessage
	}
	label := r.field.Label
	if label == "" {
		label = r.field.ID
	}
	return fmt.Sprintf(format, label)
}

func coerceNumber(value interface{}) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func toStringSlice(value interface{}) ([]string, bool) {
	switch items := value.(type) {
	case []string:
		return items, true
	case []interface{}:
		out := make([]string, 0, len(items))
		for _, item := range items {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	default:
		return nil, false
	}
}
