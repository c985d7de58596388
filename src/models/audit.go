package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApplicationFieldHistory บันทึกประวัติการแก้ไขฟิลด์ของ Application
// One record per effective change; no-op edits insert nothing.
type ApplicationFieldHistory struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ApplicationID primitive.ObjectID `bson:"applicationId" json:"applicationId"`
	Field         string             `bson:"field" json:"field"`
	OldValue      string             `bson:"oldValue" json:"oldValue"`
	NewValue      string             `bson:"newValue" json:"newValue"`
	ChangedAt     time.Time          `bson:"changedAt" json:"changedAt"`
}

// SubmissionFieldHistory is the generic variant for dynamic-schema
// submissions. FieldLabel is the human-readable label captured at edit time,
// because the schema (and hence the label) may change later; the record stays
// self-describing regardless of current schema state.
type SubmissionFieldHistory struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SubmissionID primitive.ObjectID `bson:"submissionId" json:"submissionId"`
	FieldID      string             `bson:"fieldId" json:"fieldId"`
	FieldLabel   string             `bson:"fieldLabel" json:"fieldLabel"`
	OldValue     string             `bson:"oldValue" json:"oldValue"`
	NewValue     string             `bson:"newValue" json:"newValue"`
	ChangedAt    time.Time          `bson:"changedAt" json:"changedAt"`
}

// UpdateFieldRequest is the body of the audit-trailed edit endpoints.
// FieldLabel is only meaningful for submissions.
type UpdateFieldRequest struct {
	Field      string      `json:"field" validate:"required"`
	Value      interface{} `json:"value"`
	FieldLabel string      `json:"fieldLabel,omitempty"`
}

// UpdateFieldResult reports whether the edit actually changed anything.
type UpdateFieldResult struct {
	Changed bool `json:"changed"`
}
