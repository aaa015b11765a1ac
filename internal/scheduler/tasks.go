package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskNarrationPrewarm = "narration.prewarm"

type NarrationPrewarmPayload struct {
	Species string `json:"species"`
}

func NewNarrationPrewarmTask(payload NarrationPrewarmPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNarrationPrewarm, data), nil
}

func ParseNarrationPrewarmPayload(task *asynq.Task) (NarrationPrewarmPayload, error) {
	var payload NarrationPrewarmPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return NarrationPrewarmPayload{}, err
	}
	return payload, nil
}
