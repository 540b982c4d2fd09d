package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// TaskDeleteBlob is the job type name stored in Redis.
const TaskDeleteBlob = "storage:delete_blob"

type DeleteBlobPayload struct {
	URL string `json:"url"`
}

// NewDeleteBlobTask builds a low priority task that removes the blob at url.
func NewDeleteBlobTask(url string) (*asynq.Task, error) {
	payload, err := json.Marshal(DeleteBlobPayload{URL: url})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskDeleteBlob,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}

// EnqueueImageCleanup schedules removal of an image that is no longer referenced.
// Empty URLs and URLs outside the storage container are ignored.
func (j *JobService) EnqueueImageCleanup(ctx context.Context, url string) error {
	if url == "" || !j.blobs.Owns(url) {
		return nil
	}

	task, err := NewDeleteBlobTask(url)
	if err != nil {
		return fmt.Errorf("building delete blob task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueueing delete blob task: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("url", url).
		Msg("enqueued image cleanup")
	return nil
}

func (j *JobService) handleDeleteBlobTask(ctx context.Context, t *asynq.Task) error {
	var p DeleteBlobPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal delete blob payload: %w: %w", err, asynq.SkipRetry)
	}

	j.logger.Info().
		Str("type", TaskDeleteBlob).
		Str("url", p.URL).
		Msg("Processing delete blob task")

	if !j.blobs.Owns(p.URL) {
		return fmt.Errorf("refusing to delete %q: %w", p.URL, asynq.SkipRetry)
	}

	// The image may have been reused between enqueue and now.
	if j.refs == nil {
		return errors.New("image references not configured")
	}
	inUse, err := j.refs.ImageInUse(ctx, p.URL)
	if err != nil {
		return fmt.Errorf("checking image references: %w", err)
	}
	if inUse {
		j.logger.Info().
			Str("type", TaskDeleteBlob).
			Str("url", p.URL).
			Msg("Blob still referenced, skipping delete")
		return nil
	}

	if err := j.blobs.Delete(ctx, p.URL); err != nil {
		j.logger.Error().
			Str("type", TaskDeleteBlob).
			Str("url", p.URL).
			Err(err).
			Msg("Failed to delete blob")
		return err
	}

	j.logger.Info().
		Str("type", TaskDeleteBlob).
		Str("url", p.URL).
		Msg("Successfully deleted blob")

	return nil
}
