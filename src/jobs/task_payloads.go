package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeSweepUploads = "uploads:sweep"

type SweepUploadsPayload struct {
	MaxAgeHours int `json:"max_age_hours"`
}

func NewSweepUploadsTask(maxAgeHours int) (*asynq.Task, error) {
	payload, err := json.Marshal(SweepUploadsPayload{MaxAgeHours: maxAgeHours})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSweepUploads, payload), nil
}
