// Package queue delays post publication through asynq until the post date.
package queue

import (
	"context"
	"time"
)

// Publisher is the slice of the post service the worker needs.
type Publisher interface {
	Publish(ctx context.Context, id string, now time.Time) (bool, error)
}

type Queue struct {
	posts Publisher
	now   func() time.Time
}

func NewQueue(posts Publisher) *Queue {
	return &Queue{posts: posts, now: time.Now}
}

const TaskTypePublishPost = "post:publish"

type PublishPostPayload struct {
	PostID string `json:"post_id"`
	UserID string `json:"user_id,omitempty"`
}
