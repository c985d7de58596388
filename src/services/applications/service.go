package applications

import (
	DB "Backend-Formforge/src/database"
	"Backend-Formforge/src/models"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrApplicationNotFound = errors.New("application not found")

// CreateApplication inserts a legacy fixed-schema applicant record.
func CreateApplication(ctx context.Context, app *models.Application) (*models.Application, error) {
	now := time.Now()
	app.ID = primitive.NewObjectID()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = models.SubmissionStatusNew
	}

	if _, err := DB.ApplicationCollection.InsertOne(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// GetApplications lists applications newest-first.
func GetApplications(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse, error) {
	params.Normalize()

	filter := bson.M{}
	if params.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"fullName": bson.M{"$regex": params.Search, "$options": "i"}},
			bson.M{"email": bson.M{"$regex": params.Search, "$options": "i"}},
		}
	}

	total, err := DB.ApplicationCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := DB.ApplicationCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	apps := []models.Application{}
	if err = cursor.All(ctx, &apps); err != nil {
		return nil, err
	}

	return models.NewPaginatedResponse(apps, total, params), nil
}

// GetApplicationByID returns one application.
func GetApplicationByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error) {
	var app models.Application
	err := DB.ApplicationCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&app)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}
