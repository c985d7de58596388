package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Upload is the metadata record for one stored blob. Submission data for a
// `file` field stores only StorageID; resolving it to a URL or metadata is
// always a separate call.
type Upload struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StorageID   string             `bson:"storageId" json:"storageId"`
	ContentType string             `bson:"contentType" json:"contentType"`
	Size        int64              `bson:"size" json:"size"`
	Checksum    string             `bson:"checksum" json:"checksum"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// UploadMetadata is the boundary shape returned to callers.
type UploadMetadata struct {
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	Checksum    string `json:"checksum"`
}
