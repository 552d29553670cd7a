package queue

import (
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"
)

func EnqueueAssetDeletion(asynqClient *asynq.Client, payload DeleteAssetPayload) error {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypeDeleteAsset, taskPayload)

	_, err = asynqClient.Enqueue(task, asynq.MaxRetry(5))
	if err != nil {
		return err
	}

	log.Printf("Task scheduled: %+v", payload)
	return nil
}
