package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission statuses. Unlike the form lifecycle these are informational and
// any status may be overwritten with any other.
const (
	SubmissionStatusNew         = "new"
	SubmissionStatusUnderReview = "under_review"
	SubmissionStatusAccepted    = "accepted"
	SubmissionStatusRejected    = "rejected"
)

// SubmissionStatuses is the closed set accepted by status updates.
var SubmissionStatuses = []string{
	SubmissionStatusNew,
	SubmissionStatusUnderReview,
	SubmissionStatusAccepted,
	SubmissionStatusRejected,
}

// Submission is permanently bound to the FormVersion it was created against,
// never to the mutable Form, so its data stays interpretable after later
// publishes. Data is a flat map keyed by field id; values are string, number,
// boolean or []string depending on field type.
type Submission struct {
	ID            primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	FormVersionID primitive.ObjectID     `bson:"formVersionId" json:"formVersionId"`
	Data          map[string]interface{} `bson:"data" json:"data"`
	Status        string                 `bson:"status" json:"status"`
	Notes         string                 `bson:"notes,omitempty" json:"notes,omitempty"`
	SubmittedAt   time.Time              `bson:"submittedAt" json:"submittedAt"`
}

// SubmissionSummary is the list-view projection: no data payload, plus the
// resolved form name/slug/version for display.
type SubmissionSummary struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	FormVersionID primitive.ObjectID `bson:"formVersionId" json:"formVersionId"`
	Status        string             `bson:"status" json:"status"`
	SubmittedAt   time.Time          `bson:"submittedAt" json:"submittedAt"`
	FormName      string             `bson:"formName" json:"formName"`
	FormSlug      string             `bson:"formSlug" json:"formSlug"`
	FormVersion   int                `bson:"formVersion" json:"formVersion"`
}

// SubmissionFilters เก็บค่าการกรองสำหรับรายการ submission
type SubmissionFilters struct {
	FormID string `json:"formId" query:"formId"`
	Status string `json:"status" query:"status"`
}

type CreateSubmissionRequest struct {
	FormVersionID string                 `json:"formVersionId" validate:"required"`
	Data          map[string]interface{} `json:"data" validate:"required"`
}

type UpdateSubmissionStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type UpdateSubmissionNotesRequest struct {
	Notes string `json:"notes"`
}

// SubmissionExport bundles raw submission data with the schema of the first
// submission's version so callers can map field ids to labels and option
// display values before flattening to tabular form.
type SubmissionExport struct {
	Submissions []Submission `json:"submissions"`
	Schema      *FormSchema  `json:"schema,omitempty"`
}
