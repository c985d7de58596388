package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application is the legacy fixed-schema applicant record that predates the
// dynamic form engine. Its fields are a closed set; admin edits go through the
// audit trail exactly like dynamic submissions do.
type Application struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName  string             `bson:"fullName" json:"fullName"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Status    string             `bson:"status" json:"status"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ApplicationFields are the editable field names accepted by the audit-trailed
// field update path.
var ApplicationFields = []string{"fullName", "email", "phone", "status", "notes"}
