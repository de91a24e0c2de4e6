package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/maheshrc27/socialflow/internal/bulk"
	"github.com/maheshrc27/socialflow/internal/models"
)

// DuePublisher is the slice of the post service the sweep needs.
type DuePublisher interface {
	PublishDue(ctx context.Context, now time.Time) (bulk.Result[models.Post], error)
}

// PublishDueJob marks due Scheduled posts Published when no task queue is
// available to do it at the exact date.
type PublishDueJob struct {
	ps      DuePublisher
	timeout time.Duration
	now     func() time.Time
}

func NewPublishDueJob(ps DuePublisher) *PublishDueJob {
	return &PublishDueJob{
		ps:      ps,
		timeout: 50 * time.Second,
		now:     time.Now,
	}
}

// Schedule is the cron spec the sweep runs on.
const Schedule = "@every 00h01m00s"

func (j *PublishDueJob) PublishDuePosts() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	result, err := j.ps.PublishDue(ctx, j.now())
	if err != nil {
		slog.Info(err.Error())
		return
	}
	if result.Total == 0 {
		return
	}
	slog.Info("due posts published", "published", len(result.Succeeded), "failed", result.FailedCount)
}
