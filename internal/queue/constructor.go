package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/socialflow/internal/auth"
	"github.com/maheshrc27/socialflow/internal/models"
)

// Enqueuer is implemented by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Scheduler enqueues a publish task for every Scheduled post it is handed.
type Scheduler struct {
	client Enqueuer
}

func NewScheduler(client Enqueuer) *Scheduler {
	return &Scheduler{client: client}
}

// TaskID is unique per post and date, so rescheduling a post enqueues a new
// task while repeated saves with the same date do not.
func TaskID(post models.Post) string {
	return fmt.Sprintf("publish:%s:%d", post.ID, post.Date.Unix())
}

// SchedulePublish enqueues the post for publication at its date. A post whose
// date has passed is processed right away.
func (s *Scheduler) SchedulePublish(ctx context.Context, post models.Post) error {
	if post.Date == nil {
		return errors.New("post has no date to schedule")
	}

	userID, _ := auth.PrincipalID(ctx)
	taskPayload, err := json.Marshal(PublishPostPayload{PostID: post.ID, UserID: userID})
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypePublishPost, taskPayload)
	_, err = s.client.EnqueueContext(ctx, task,
		asynq.ProcessAt(*post.Date),
		asynq.TaskID(TaskID(post)),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return err
	}

	slog.Info("publication scheduled", "post_id", post.ID, "at", post.Date.UTC())
	return nil
}
