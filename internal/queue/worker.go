package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/hibiken/asynq"
	"github.com/telvana/streampanel/internal/apperrors"
)

func (j *Queue) HandleDeleteAssetTask(ctx context.Context, task *asynq.Task) error {
	var payload DeleteAssetPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	key := payload.Key
	if key == "" {
		if payload.FileName == "" {
			return errors.New("delete task needs a key or file name")
		}
		resolved, err := j.cdn.ResolveKey(ctx, payload.FileName)
		if err != nil {
			if apperrors.IsNotFound(err) {
				// Nothing left to delete; do not retry.
				log.Printf("CDN object for %q already gone", payload.FileName)
				return nil
			}
			return err
		}
		key = resolved
	}

	if err := j.cdn.Delete(ctx, key); err != nil {
		log.Printf("Error deleting CDN object %s: %v", key, err)
		return err
	}
	return nil
}
