package submissions

import (
	DB "Backend-Formforge/src/database"
	"Backend-Formforge/src/models"
	"Backend-Formforge/src/schema"
	"Backend-Formforge/src/services/forms"
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrFormArchived       = errors.New("form is archived and no longer accepts submissions")
	ErrInvalidStatus      = errors.New("invalid submission status")
)

// ValidationFailedError carries the field-scoped error map across the service
// boundary without losing it to a flat string.
type ValidationFailedError struct {
	Errors map[string]string
}

func (e *ValidationFailedError) Error() string {
	return "submission data failed validation"
}

// CreateSubmission accepts a public submission against a specific immutable
// FormVersion. The owning form must not be archived; the data must pass the
// validator compiled from that version's schema — not from the current draft.
func CreateSubmission(ctx context.Context, versionID primitive.ObjectID, data map[string]interface{}) (*models.Submission, error) {
	var version models.FormVersion
	err := DB.FormVersionCollection.FindOne(ctx, bson.M{"_id": versionID}).Decode(&version)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, forms.ErrVersionNotFound
		}
		return nil, err
	}

	form, err := forms.GetFormByID(ctx, version.FormID)
	if err != nil {
		return nil, err
	}
	if form.Status == models.FormStatusArchived {
		return nil, ErrFormArchived
	}

	validator, err := schema.Compile(version.Schema)
	if err != nil {
		// A published schema that no longer compiles is a server bug, not a
		// user error.
		return nil, err
	}
	if result := validator.Validate(data); !result.Valid {
		return nil, &ValidationFailedError{Errors: result.Errors}
	}

	submission := &models.Submission{
		ID:            primitive.NewObjectID(),
		FormVersionID: versionID,
		Data:          data,
		Status:        models.SubmissionStatusNew,
		SubmittedAt:   time.Now(),
	}

	if _, err := DB.SubmissionCollection.InsertOne(ctx, submission); err != nil {
		return nil, err
	}

	log.Printf("[submission] inserted id=%s form=%s version=%d", submission.ID.Hex(), form.Slug, version.Version)
	return submission, nil
}

// GetSubmissionByID returns one submission with its full data payload.
func GetSubmissionByID(ctx context.Context, id primitive.ObjectID) (*models.Submission, error) {
	var submission models.Submission
	err := DB.SubmissionCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&submission)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return &submission, nil
}

// UpdateStatus overwrites the status. Any status is reachable from any other;
// unlike the form lifecycle there is no transition restriction.
func UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Submission, error) {
	if !isValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	result := DB.SubmissionCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var submission models.Submission
	if err := result.Decode(&submission); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return &submission, nil
}

// UpdateNotes overwrites the free-text notes; notes edits are not audited.
func UpdateNotes(ctx context.Context, id primitive.ObjectID, notes string) (*models.Submission, error) {
	result := DB.SubmissionCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"notes": notes}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var submission models.Submission
	if err := result.Decode(&submission); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return &submission, nil
}

// GetSubmissions lists summaries for the dashboard, newest first, filtered by
// owning form and/or status. The data payload is deliberately omitted from
// list views.
func GetSubmissions(ctx context.Context, filters models.SubmissionFilters, params models.PaginationParams) (*models.PaginatedResponse, error) {
	params.Normalize()

	match := bson.M{}
	if filters.Status != "" {
		match["status"] = filters.Status
	}
	if filters.FormID != "" {
		formOID, err := primitive.ObjectIDFromHex(filters.FormID)
		if err != nil {
			return nil, forms.ErrFormNotFound
		}
		versionIDs, err := versionIDsForForm(ctx, formOID)
		if err != nil {
			return nil, err
		}
		match["formVersionId"] = bson.M{"$in": versionIDs}
	}

	total, err := DB.SubmissionCollection.CountDocuments(ctx, match)
	if err != nil {
		return nil, err
	}

	// Join through formVersions to forms so each row carries the resolved
	// name/slug/version for display.
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "submittedAt", Value: -1}}}},
		bson.D{{Key: "$skip", Value: params.GetSkip()}},
		bson.D{{Key: "$limit", Value: int64(params.Limit)}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "formVersions",
			"localField":   "formVersionId",
			"foreignField": "_id",
			"as":           "version",
		}}},
		bson.D{{Key: "$unwind", Value: "$version"}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "forms",
			"localField":   "version.formId",
			"foreignField": "_id",
			"as":           "form",
		}}},
		bson.D{{Key: "$unwind", Value: "$form"}},
		bson.D{{Key: "$project", Value: bson.M{
			"_id":           1,
			"formVersionId": 1,
			"status":        1,
			"submittedAt":   1,
			"formName":      "$form.name",
			"formSlug":      "$form.slug",
			"formVersion":   "$version.version",
		}}},
	}

	cursor, err := DB.SubmissionCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	summaries := []models.SubmissionSummary{}
	if err = cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}

	return models.NewPaginatedResponse(summaries, total, params), nil
}

// ExportSubmissions returns raw data for the given ids plus the schema
// belonging to the first submission's version. Callers are expected to have
// pre-filtered the ids to a single form; the schema lets them map field ids
// to labels and option display values before flattening to CSV.
func ExportSubmissions(ctx context.Context, ids []primitive.ObjectID) (*models.SubmissionExport, error) {
	cursor, err := DB.SubmissionCollection.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	subs := []models.Submission{}
	if err = cursor.All(ctx, &subs); err != nil {
		return nil, err
	}

	export := &models.SubmissionExport{Submissions: subs}
	if len(subs) == 0 {
		return export, nil
	}

	var version models.FormVersion
	err = DB.FormVersionCollection.FindOne(ctx, bson.M{"_id": subs[0].FormVersionID}).Decode(&version)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, forms.ErrVersionNotFound
		}
		return nil, err
	}
	export.Schema = &version.Schema

	return export, nil
}

func versionIDsForForm(ctx context.Context, formID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cursor, err := DB.FormVersionCollection.Find(ctx,
		bson.M{"formId": formID},
		options.Find().SetProjection(bson.M{"_id": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	ids := []primitive.ObjectID{}
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, cursor.Err()
}

func isValidStatus(status string) bool {
	for _, s := range models.SubmissionStatuses {
		if s == status {
			return true
		}
	}
	return false
}
