package jobs

import (
	"Backend-Formforge/src/services/uploads"
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"
)

// HandleSweepUploadsTask deletes uploaded blobs that no submission references
// and that are older than the payload's age limit. Blobs younger than the
// limit are kept so an in-flight submission never loses its file.
func HandleSweepUploadsTask(ctx context.Context, t *asynq.Task) error {
	var payload SweepUploadsPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Println("❌ Payload decode error:", err)
		return err
	}
	if payload.MaxAgeHours <= 0 {
		payload.MaxAgeHours = 24
	}

	store, err := uploads.NewDiskStore()
	if err != nil {
		return err
	}

	deleted, err := store.SweepUnreferenced(ctx, time.Duration(payload.MaxAgeHours)*time.Hour)
	if err != nil {
		log.Println("❌ Upload sweep failed:", err)
		return err
	}

	log.Printf("✅ Upload sweep done: %d unreferenced blobs deleted", deleted)
	return nil
}
