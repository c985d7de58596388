package database

import (
	"context"
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const dbName = "FormforgeDB"

var (
	client     *mongo.Client
	once       sync.Once // ConnectMongoDB runs only once
	connectErr error

	FormCollection                    *mongo.Collection
	FormVersionCollection             *mongo.Collection
	SubmissionCollection              *mongo.Collection
	SubmissionFieldHistoryCollection  *mongo.Collection
	ApplicationCollection             *mongo.Collection
	ApplicationFieldHistoryCollection *mongo.Collection
	AdminCollection                   *mongo.Collection
	UploadCollection                  *mongo.Collection
)

// ConnectMongoDB เชื่อมต่อกับ MongoDB แค่ครั้งเดียว
func ConnectMongoDB() error {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Warning: No .env file found")
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("❌ MONGO_URI environment variable not set. Please create a .env file and set it.")
	}

	once.Do(func() {
		clientOptions := options.Client().ApplyURI(mongoURI)

		client, connectErr = mongo.Connect(context.TODO(), clientOptions)
		if connectErr != nil {
			log.Fatal("❌ Failed to connect to MongoDB:", connectErr)
			return
		}

		connectErr = client.Ping(context.TODO(), readpref.Primary())
		if connectErr != nil {
			log.Fatal("❌ MongoDB ping failed:", connectErr)
			return
		}

		db := client.Database(dbName)
		FormCollection = db.Collection("forms")
		FormVersionCollection = db.Collection("formVersions")
		SubmissionCollection = db.Collection("submissions")
		SubmissionFieldHistoryCollection = db.Collection("submissionFieldHistory")
		ApplicationCollection = db.Collection("applications")
		ApplicationFieldHistoryCollection = db.Collection("applicationFieldHistory")
		AdminCollection = db.Collection("admins")
		UploadCollection = db.Collection("uploads")

		if err := EnsureIndexes(context.TODO()); err != nil {
			log.Fatal("❌ Failed to create indexes:", err)
			return
		}

		log.Println("✅ MongoDB connected successfully")
	})

	return connectErr
}

// EnsureIndexes creates the indexes the services rely on. The unique
// (formId, version) index is what serializes concurrent publishes: two racing
// publishes computing the same next version cannot both insert.
func EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	_, err := FormCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = FormVersionCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "formId", Value: 1}, {Key: "version", Value: -1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = SubmissionCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "formVersionId", Value: 1}, {Key: "submittedAt", Value: -1}},
	})
	if err != nil {
		return err
	}

	_, err = SubmissionFieldHistoryCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "submissionId", Value: 1}, {Key: "changedAt", Value: -1}},
	})
	if err != nil {
		return err
	}

	_, err = ApplicationFieldHistoryCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "applicationId", Value: 1}, {Key: "changedAt", Value: -1}},
	})
	if err != nil {
		return err
	}

	_, err = UploadCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "storageId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// WithTransaction runs fn inside a MongoDB transaction. Used wherever a field
// patch and its audit record (or a version insert and the form status flip)
// must land together or not at all.
func WithTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	if client == nil {
		return mongo.ErrClientDisconnected
	}

	session, err := client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// GetCollection รับ Collection จาก MongoDB
func GetCollection(collectionName string) *mongo.Collection {
	if client == nil {
		log.Fatal("❌ MongoDB client is nil")
	}
	return client.Database(dbName).Collection(collectionName)
}
