package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Form statuses
const (
	FormStatusDraft     = "draft"
	FormStatusPublished = "published"
	FormStatusArchived  = "archived"
)

// --- Form ---
// Mutable authoring entity. DraftSchema is the working copy; published versions
// live in FormVersion and are never touched by draft edits.
type Form struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Name             string              `bson:"name" json:"name"`
	Slug             string              `bson:"slug" json:"slug"`
	Description      string              `bson:"description,omitempty" json:"description,omitempty"`
	Status           string              `bson:"status" json:"status"` // draft | published | archived
	DraftSchema      FormSchema          `bson:"draftSchema" json:"draftSchema"`
	CurrentVersionID *primitive.ObjectID `bson:"currentVersionId,omitempty" json:"currentVersionId,omitempty"`
	CreatedAt        time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// --- FormVersion ---
// Immutable snapshot created on publish. Schema and Version never change after
// insert; submissions reference this document forever.
type FormVersion struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FormID      primitive.ObjectID `bson:"formId" json:"formId"`
	Version     int                `bson:"version" json:"version"` // starts at 1, +1 per publish
	Schema      FormSchema         `bson:"schema" json:"schema"`
	PublishedAt time.Time          `bson:"publishedAt" json:"publishedAt"`
}

// --- FormSchema ---
type FormSchema struct {
	Steps    []FormStep   `bson:"steps" json:"steps"`
	Settings FormSettings `bson:"settings" json:"settings"`
}

type FormStep struct {
	ID          string      `bson:"id" json:"id"`
	Title       string      `bson:"title" json:"title"`
	Description string      `bson:"description,omitempty" json:"description,omitempty"`
	Fields      []FormField `bson:"fields" json:"fields"`
}

// FormField ids are unique across the whole schema, not just the step, because
// submission data is a flat map keyed by field id.
type FormField struct {
	ID          string           `bson:"id" json:"id"`
	Type        string           `bson:"type" json:"type"`
	Label       string           `bson:"label" json:"label"`
	Description string           `bson:"description,omitempty" json:"description,omitempty"`
	Placeholder string           `bson:"placeholder,omitempty" json:"placeholder,omitempty"`
	Required    bool             `bson:"required" json:"required"`
	Validation  *FieldValidation `bson:"validation,omitempty" json:"validation,omitempty"`
	Options     []FieldOption    `bson:"options,omitempty" json:"options,omitempty"`
}

type FieldValidation struct {
	MinLength     *int     `bson:"minLength,omitempty" json:"minLength,omitempty"`
	MaxLength     *int     `bson:"maxLength,omitempty" json:"maxLength,omitempty"`
	Pattern       string   `bson:"pattern,omitempty" json:"pattern,omitempty"`
	Min           *float64 `bson:"min,omitempty" json:"min,omitempty"`
	Max           *float64 `bson:"max,omitempty" json:"max,omitempty"`
	CustomMessage string   `bson:"customMessage,omitempty" json:"customMessage,omitempty"`
}

type FieldOption struct {
	Value string `bson:"value" json:"value"`
	Label string `bson:"label" json:"label"`
}

type FormSettings struct {
	SubmitButtonText string `bson:"submitButtonText" json:"submitButtonText"`
	SuccessMessage   string `bson:"successMessage" json:"successMessage"`
	WelcomeMessage   string `bson:"welcomeMessage,omitempty" json:"welcomeMessage,omitempty"`
}

// DefaultFormSettings returns the settings a brand-new form starts with.
func DefaultFormSettings() FormSettings {
	return FormSettings{
		SubmitButtonText: "Submit",
		SuccessMessage:   "Thank you for your submission!",
	}
}

// EmptyFormSchema returns the draft schema of a freshly created form.
func EmptyFormSchema() FormSchema {
	return FormSchema{
		Steps:    []FormStep{},
		Settings: DefaultFormSettings(),
	}
}

// --- Request DTOs ---

type CreateFormRequest struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug" validate:"required"`
	Description string `json:"description,omitempty"`
}

// UpdateFormRequest is a partial update; nil fields are left untouched.
// DraftSchema arrives as raw JSON so the parse check happens in the service
// (drafts may be transiently invalid while being edited).
type UpdateFormRequest struct {
	Name        *string         `json:"name,omitempty"`
	Slug        *string         `json:"slug,omitempty"`
	Description *string         `json:"description,omitempty"`
	DraftSchema json.RawMessage `json:"draftSchema,omitempty" swaggertype:"string"`
}

// PublicForm is the only shape the public submission UI ever sees. It carries
// the current published version's schema, never the draft.
type PublicForm struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Slug        string             `json:"slug"`
	Description string             `json:"description,omitempty"`
	VersionID   primitive.ObjectID `json:"versionId"`
	Version     int                `json:"version"`
	Schema      FormSchema         `json:"schema"`
}

// FormVersionSummary is version metadata without the schema body.
type FormVersionSummary struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	FormID      primitive.ObjectID `bson:"formId" json:"formId"`
	Version     int                `bson:"version" json:"version"`
	PublishedAt time.Time          `bson:"publishedAt" json:"publishedAt"`
}
