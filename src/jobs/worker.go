package jobs

import (
	"Backend-Formforge/src/database"
	"log"

	"github.com/hibiken/asynq"
)

// StartWorker runs the asynq worker and the periodic scheduler. The daily
// sweep is the only recurring task; everything else in the system is
// request/response.
func StartWorker() {
	if database.RedisURI == "" {
		log.Println("⚠️ Redis not available. Background worker will not start.")
		return
	}

	redisOpt := asynq.RedisClientOpt{Addr: database.RedisURI}

	srv := asynq.NewServer(redisOpt, asynq.Config{Concurrency: 2})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSweepUploads, HandleSweepUploadsTask)

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Fatal("❌ Asynq worker failed:", err)
		}
	}()

	scheduler := asynq.NewScheduler(redisOpt, nil)

	task, err := NewSweepUploadsTask(24)
	if err != nil {
		log.Fatal("❌ Failed to build sweep task:", err)
	}
	if _, err := scheduler.Register("0 3 * * *", task); err != nil {
		log.Fatal("❌ Failed to schedule upload sweep:", err)
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Fatal("❌ Asynq scheduler failed:", err)
		}
	}()

	log.Println("✅ Background worker started (daily upload sweep at 03:00)")
}
