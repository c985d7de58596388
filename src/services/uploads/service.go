package uploads

import (
	DB "Backend-Formforge/src/database"
	"Backend-Formforge/src/models"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrUploadNotFound = errors.New("upload not found")
	ErrUploadExists   = errors.New("upload already stored")
)

// Store is the blob-store boundary. Submission data for a `file` field holds
// only the storage id string; URLs and metadata are always resolved through
// here.
type Store interface {
	GenerateUploadRef() string
	Put(ctx context.Context, handle string, data []byte, contentType string) (string, error)
	GetURL(ctx context.Context, storageID string) (string, error)
	Delete(ctx context.Context, storageID string) error
	GetMetadata(ctx context.Context, storageID string) (*models.UploadMetadata, error)
}

// DiskStore keeps blob bytes on local disk and metadata in MongoDB.
type DiskStore struct {
	Dir string
}

// NewDiskStore creates the upload directory if needed.
func NewDiskStore() (*DiskStore, error) {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{Dir: dir}, nil
}

// GenerateUploadRef hands out an opaque handle the client uploads against.
func (s *DiskStore) GenerateUploadRef() string {
	return uuid.NewString()
}

// Put stores the bytes under the handle and records metadata. The handle
// becomes the storage id. A handle can be stored exactly once; the bytes are
// written to a temp file first so a re-PUT can never clobber an existing blob.
func (s *DiskStore) Put(ctx context.Context, handle string, data []byte, contentType string) (string, error) {
	if _, err := uuid.Parse(handle); err != nil {
		return "", errors.New("invalid upload handle")
	}

	tmp, err := s.stage(handle, data)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(data)
	upload := models.Upload{
		ID:          primitive.NewObjectID(),
		StorageID:   handle,
		ContentType: contentType,
		Size:        int64(len(data)),
		Checksum:    hex.EncodeToString(sum[:]),
		CreatedAt:   time.Now(),
	}

	// The unique storageId index decides who owns the handle, so concurrent
	// or repeated PUTs lose here without ever touching the stored blob.
	if _, err := DB.UploadCollection.InsertOne(ctx, upload); err != nil {
		os.Remove(tmp)
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrUploadExists
		}
		return "", err
	}

	if err := s.publish(tmp, handle); err != nil {
		DB.UploadCollection.DeleteOne(ctx, bson.M{"storageId": handle})
		os.Remove(tmp)
		return "", err
	}

	return handle, nil
}

// stage writes the bytes next to the final location under a temp name. The
// blob at the final path, if any, is never touched.
func (s *DiskStore) stage(handle string, data []byte) (string, error) {
	tmp := s.path(handle) + ".part-" + uuid.NewString()
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", err
	}
	return tmp, nil
}

// publish moves a staged blob to its final location.
func (s *DiskStore) publish(tmp, handle string) error {
	return os.Rename(tmp, s.path(handle))
}

func (s *DiskStore) GetURL(ctx context.Context, storageID string) (string, error) {
	if _, err := s.GetMetadata(ctx, storageID); err != nil {
		return "", err
	}
	return "/uploads/files/" + storageID, nil
}

func (s *DiskStore) Delete(ctx context.Context, storageID string) error {
	if _, err := DB.UploadCollection.DeleteOne(ctx, bson.M{"storageId": storageID}); err != nil {
		return err
	}
	err := os.Remove(s.path(storageID))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *DiskStore) GetMetadata(ctx context.Context, storageID string) (*models.UploadMetadata, error) {
	var upload models.Upload
	err := DB.UploadCollection.FindOne(ctx, bson.M{"storageId": storageID}).Decode(&upload)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUploadNotFound
		}
		return nil, err
	}
	return &models.UploadMetadata{
		ContentType: upload.ContentType,
		Size:        upload.Size,
		Checksum:    upload.Checksum,
	}, nil
}

// FilePath resolves the on-disk location for serving blob bytes.
func (s *DiskStore) FilePath(storageID string) (string, error) {
	if _, err := uuid.Parse(storageID); err != nil {
		return "", ErrUploadNotFound
	}
	return s.path(storageID), nil
}

func (s *DiskStore) path(storageID string) string {
	return filepath.Join(s.Dir, storageID)
}

// SweepUnreferenced deletes blobs referenced by no submission and older than
// maxAge. Every string (and string-array element) in submission data counts
// as a potential reference, so a blob is only removed when nothing could be
// pointing at it.
func (s *DiskStore) SweepUnreferenced(ctx context.Context, maxAge time.Duration) (int, error) {
	referenced, err := referencedStorageIDs(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	cursor, err := DB.UploadCollection.Find(ctx, bson.M{"createdAt": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	deleted := 0
	for cursor.Next(ctx) {
		var upload models.Upload
		if err := cursor.Decode(&upload); err != nil {
			return deleted, err
		}
		if referenced[upload.StorageID] {
			continue
		}
		if err := s.Delete(ctx, upload.StorageID); err != nil {
			log.Println("⚠️ Failed to sweep upload", upload.StorageID, ":", err)
			continue
		}
		deleted++
	}

	return deleted, cursor.Err()
}

func referencedStorageIDs(ctx context.Context) (map[string]bool, error) {
	cursor, err := DB.SubmissionCollection.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"data": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	referenced := map[string]bool{}
	for cursor.Next(ctx) {
		var doc struct {
			Data map[string]interface{} `bson:"data"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		for _, value := range doc.Data {
			switch v := value.(type) {
			case string:
				referenced[v] = true
			case []interface{}:
				for _, item := range v {
					if str, ok := item.(string); ok {
						referenced[str] = true
					}
				}
			}
		}
	}
	return referenced, cursor.Err()
}
