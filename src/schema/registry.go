package schema

// Field types — the closed set. Compiling a schema with a type outside this
// set fails with a structural error; nothing silently defaults.
const (
	FieldTypeText     = "text"
	FieldTypeEmail    = "email"
	FieldTypeURL      = "url"
	FieldTypeTextarea = "textarea"
	FieldTypeNumber   = "number"
	FieldTypeDate     = "date"
	FieldTypeSelect   = "select"
	FieldTypeRadio    = "radio"
	FieldTypeCheckbox = "checkbox"
	FieldTypeFile     = "file"
)

// ValueKind is the shape of the value a field type produces in submission
// data.
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueNumber
	ValueBool
	ValueStringArray
	ValueFileRef // opaque storage id, stored as string
)

// FieldTypeInfo declares, per type, which validation keys are meaningful and
// whether an options array is required. Both the compiler and any renderer
// consult this table; no other component re-implements type semantics.
type FieldTypeInfo struct {
	Type            string
	Kind            ValueKind
	LengthRules     bool // minLength / maxLength / pattern
	RangeRules      bool // min / max
	RequiresOptions bool // select, radio
	AllowsOptions   bool // checkbox-as-multiselect also allows them
}

var fieldTypes = map[string]FieldTypeInfo{
	FieldTypeText:     {Type: FieldTypeText, Kind: ValueString, LengthRules: true},
	FieldTypeEmail:    {Type: FieldTypeEmail, Kind: ValueString, LengthRules: true},
	FieldTypeURL:      {Type: FieldTypeURL, Kind: ValueString, LengthRules: true},
	FieldTypeTextarea: {Type: FieldTypeTextarea, Kind: ValueString, LengthRules: true},
	FieldTypeNumber:   {Type: FieldTypeNumber, Kind: ValueNumber, RangeRules: true},
	FieldTypeDate:     {Type: FieldTypeDate, Kind: ValueString},
	FieldTypeSelect:   {Type: FieldTypeSelect, Kind: ValueString, RequiresOptions: true, AllowsOptions: true},
	FieldTypeRadio:    {Type: FieldTypeRadio, Kind: ValueString, RequiresOptions: true, AllowsOptions: true},
	FieldTypeCheckbox: {Type: FieldTypeCheckbox, Kind: ValueBool, AllowsOptions: true},
	FieldTypeFile:     {Type: FieldTypeFile, Kind: ValueFileRef},
}

// LookupFieldType returns the registry entry for a type name.
func LookupFieldType(t string) (FieldTypeInfo, bool) {
	info, ok := fieldTypes[t]
	return info, ok
}

// FieldTypeNames returns every registered type name.
func FieldTypeNames() []string {
	names := make([]string, 0, len(fieldTypes))
	for name := range fieldTypes {
		names = append(names, name)
	}
	return names
}
