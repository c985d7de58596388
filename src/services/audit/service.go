package audit

import (
	DB "Backend-Formforge/src/database"
	"Backend-Formforge/src/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrEntityNotFound = errors.New("entity not found")
	ErrUnknownField   = errors.New("unknown field")
)

// UpdateSubmissionField is the only write path for admin edits to submission
// data. The patch and its history record land in one transaction; a no-op
// edit (stringified old == new) writes nothing at all. fieldLabel is captured
// as supplied at call time so the history entry stays readable after the
// schema changes.
func UpdateSubmissionField(ctx context.Context, submissionID primitive.ObjectID, fieldID string, newValue interface{}, fieldLabel string) (*models.UpdateFieldResult, error) {
	var submission models.Submission
	err := DB.SubmissionCollection.FindOne(ctx, bson.M{"_id": submissionID}).Decode(&submission)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrEntityNotFound
		}
		return nil, err
	}

	oldStr := Stringify(submission.Data[fieldID])
	newStr := Stringify(newValue)
	if oldStr == newStr {
		return &models.UpdateFieldResult{Changed: false}, nil
	}

	record := models.SubmissionFieldHistory{
		ID:           primitive.NewObjectID(),
		SubmissionID: submissionID,
		FieldID:      fieldID,
		FieldLabel:   fieldLabel,
		OldValue:     oldStr,
		NewValue:     newStr,
		ChangedAt:    time.Now(),
	}

	err = DB.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		_, err := DB.SubmissionCollection.UpdateOne(sc,
			bson.M{"_id": submissionID},
			bson.M{"$set": bson.M{"data." + fieldID: newValue}},
		)
		if err != nil {
			return err
		}
		_, err = DB.SubmissionFieldHistoryCollection.InsertOne(sc, record)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &models.UpdateFieldResult{Changed: true}, nil
}

// UpdateApplicationField is the fixed-schema sibling of
// UpdateSubmissionField for the legacy Application entity. The field name
// must be one of the known editable fields; no label is recorded because the
// schema never changes.
func UpdateApplicationField(ctx context.Context, applicationID primitive.ObjectID, field string, newValue interface{}) (*models.UpdateFieldResult, error) {
	if !isApplicationField(field) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	var app models.Application
	err := DB.ApplicationCollection.FindOne(ctx, bson.M{"_id": applicationID}).Decode(&app)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrEntityNotFound
		}
		return nil, err
	}

	oldStr := applicationFieldValue(&app, field)
	newStr := Stringify(newValue)
	if oldStr == newStr {
		return &models.UpdateFieldResult{Changed: false}, nil
	}

	record := models.ApplicationFieldHistory{
		ID:            primitive.NewObjectID(),
		ApplicationID: applicationID,
		Field:         field,
		OldValue:      oldStr,
		NewValue:      newStr,
		ChangedAt:     time.Now(),
	}

	err = DB.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		_, err := DB.ApplicationCollection.UpdateOne(sc,
			bson.M{"_id": applicationID},
			bson.M{"$set": bson.M{field: newStr, "updatedAt": time.Now()}},
		)
		if err != nil {
			return err
		}
		_, err = DB.ApplicationFieldHistoryCollection.InsertOne(sc, record)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &models.UpdateFieldResult{Changed: true}, nil
}

// GetSubmissionHistory returns a submission's audit records newest-first.
func GetSubmissionHistory(ctx context.Context, submissionID primitive.ObjectID) ([]models.SubmissionFieldHistory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "changedAt", Value: -1}})
	cursor, err := DB.SubmissionFieldHistoryCollection.Find(ctx, bson.M{"submissionId": submissionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.SubmissionFieldHistory{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetApplicationHistory returns an application's audit records newest-first.
func GetApplicationHistory(ctx context.Context, applicationID primitive.ObjectID) ([]models.ApplicationFieldHistory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "changedAt", Value: -1}})
	cursor, err := DB.ApplicationFieldHistoryCollection.Find(ctx, bson.M{"applicationId": applicationID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.ApplicationFieldHistory{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Stringify normalizes a field value for before/after comparison. Missing and
// nil both become "", so setting an absent field to "" is a no-op.
func Stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		// Arrays and anything else compare by their JSON encoding.
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}

func isApplicationField(field string) bool {
	for _, f := range models.ApplicationFields {
		if f == field {
			return true
		}
	}
	return false
}

func applicationFieldValue(app *models.Application, field string) string {
	switch field {
	case "fullName":
		return app.FullName
	case "email":
		return app.Email
	case "phone":
		return app.Phone
	case "status":
		return app.Status
	case "notes":
		return app.Notes
	default:
		return ""
	}
}
