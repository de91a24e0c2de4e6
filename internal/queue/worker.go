package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/socialflow/internal/auth"
)

func (j *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode %s payload: %w: %w", TaskTypePublishPost, err, asynq.SkipRetry)
	}

	ctx = auth.WithPrincipal(ctx, payload.UserID)
	published, err := j.posts.Publish(ctx, payload.PostID, j.now())
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	if published {
		slog.Info("post published", "post_id", payload.PostID)
	} else {
		slog.Info("post no longer due, skipping", "post_id", payload.PostID)
	}
	return nil
}
