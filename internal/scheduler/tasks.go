package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskListingsCacheWarm = "listings.cache.warm"

type ListingsCacheWarmPayload struct {
	Reason string `json:"reason"`
}

func NewListingsCacheWarmTask(payload ListingsCacheWarmPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskListingsCacheWarm, data), nil
}

func ParseListingsCacheWarmPayload(task *asynq.Task) (ListingsCacheWarmPayload, error) {
	var payload ListingsCacheWarmPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ListingsCacheWarmPayload{}, err
	}
	return payload, nil
}
