package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/maheshrc27/socialflow/internal/bulk"
	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/maheshrc27/socialflow/internal/store"
)

// PublishScheduler arranges for a Scheduled post to be published at its date.
type PublishScheduler interface {
	SchedulePublish(ctx context.Context, post models.Post) error
}

// BatchResult is the outcome of a bulk post creation. Campaign is set when
// the batch came from a program and its campaign was saved.
type BatchResult struct {
	bulk.Result[models.Post]
	Campaign *models.Campaign `json:"campaign,omitempty"`
}

type PostService interface {
	List(ctx context.Context) ([]models.Post, error)
	Create(ctx context.Context, post models.Post) (models.Post, error)
	Update(ctx context.Context, post models.Post) (models.Post, error)
	Remove(ctx context.Context, id string) error
	CreateBatch(ctx context.Context, posts []models.Post, policy bulk.Policy) BatchResult
	UpdateStatus(ctx context.Context, ids []string, status models.PostStatus) (bulk.Result[models.Post], error)
	RemoveMany(ctx context.Context, ids []string) bulk.Result[string]
	Publish(ctx context.Context, id string, now time.Time) (bool, error)
	PublishDue(ctx context.Context, now time.Time) (bulk.Result[models.Post], error)
}

type postService struct {
	posts     store.EntityStore[models.Post]
	campaigns store.EntityStore[models.Campaign]
	scheduler PublishScheduler
	policy    bulk.Policy
	now       func() time.Time
}

// NewPostService wires the post stores. scheduler may be nil; policy paces
// multi-select operations.
func NewPostService(
	posts store.EntityStore[models.Post],
	campaigns store.EntityStore[models.Campaign],
	scheduler PublishScheduler,
	policy bulk.Policy) PostService {
	return &postService{
		posts:     posts,
		campaigns: campaigns,
		scheduler: scheduler,
		policy:    policy,
		now:       time.Now,
	}
}

func (s *postService) List(ctx context.Context) ([]models.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *postService) Create(ctx context.Context, post models.Post) (models.Post, error) {
	post.ID = ""
	created, err := s.posts.Create(ctx, post)
	if err != nil {
		return models.Post{}, fmt.Errorf("create post: %w", err)
	}
	s.schedule(ctx, created)
	return created, nil
}

func (s *postService) Update(ctx context.Context, post models.Post) (models.Post, error) {
	updated, err := s.posts.Update(ctx, post)
	if err != nil {
		return models.Post{}, fmt.Errorf("update post: %w", err)
	}
	s.schedule(ctx, updated)
	return updated, nil
}

func (s *postService) Remove(ctx context.Context, id string) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove post: %w", err)
	}
	return nil
}

// CreateBatch saves posts one at a time. When the posts belong to a program
// and at least one was saved, a campaign spanning the saved posts is created
// too; a campaign failure does not change the post outcome.
func (s *postService) CreateBatch(ctx context.Context, posts []models.Post, policy bulk.Policy) BatchResult {
	result := BatchResult{
		Result: bulk.Run(ctx, "create posts", posts, s.Create, policy),
	}

	if len(posts) == 0 || posts[0].ProgramID == "" || len(result.Succeeded) == 0 {
		return result
	}

	campaign := ProgramCampaign(posts[0], result.Succeeded, s.now())
	saved, err := s.campaigns.Create(ctx, campaign)
	if err != nil {
		slog.Error("failed to save program campaign", "program_id", posts[0].ProgramID, "error", err)
		return result
	}
	result.Campaign = &saved
	return result
}

// UpdateStatus changes the status of the posts with the given ids.
func (s *postService) UpdateStatus(ctx context.Context, ids []string, status models.PostStatus) (bulk.Result[models.Post], error) {
	posts, err := s.List(ctx)
	if err != nil {
		return bulk.Result[models.Post]{}, err
	}

	byID := make(map[string]models.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}

	return bulk.Run(ctx, "update post status", ids, func(ctx context.Context, id string) (models.Post, error) {
		post, ok := byID[id]
		if !ok {
			return models.Post{}, store.NotFound("post", id)
		}
		post.Status = status
		return s.Update(ctx, post)
	}, s.policy), nil
}

func (s *postService) RemoveMany(ctx context.Context, ids []string) bulk.Result[string] {
	return bulk.Run(ctx, "remove posts", ids, func(ctx context.Context, id string) (string, error) {
		return id, s.Remove(ctx, id)
	}, s.policy)
}

// Publish marks the post Published if it is still Scheduled and due. A post
// that no longer exists is not an error.
func (s *postService) Publish(ctx context.Context, id string, now time.Time) (bool, error) {
	posts, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	for _, p := range posts {
		if p.ID != id {
			continue
		}
		if !p.DueAt(now) {
			return false, nil
		}
		p.Status = models.PostStatusPublished
		if _, err := s.posts.Update(ctx, p); err != nil {
			return false, fmt.Errorf("publish post: %w", err)
		}
		return true, nil
	}
	return false, nil
}

// PublishDue marks every due Scheduled post Published.
func (s *postService) PublishDue(ctx context.Context, now time.Time) (bulk.Result[models.Post], error) {
	posts, err := s.List(ctx)
	if err != nil {
		return bulk.Result[models.Post]{}, err
	}

	var due []models.Post
	for _, p := range posts {
		if p.DueAt(now) {
			due = append(due, p)
		}
	}

	return bulk.Run(ctx, "publish due posts", due, func(ctx context.Context, p models.Post) (models.Post, error) {
		p.Status = models.PostStatusPublished
		return s.posts.Update(ctx, p)
	}, s.policy), nil
}

func (s *postService) schedule(ctx context.Context, post models.Post) {
	if s.scheduler == nil || post.Status != models.PostStatusScheduled || post.Date == nil {
		return
	}
	if err := s.scheduler.SchedulePublish(ctx, post); err != nil {
		slog.Error("failed to schedule post publication", "post_id", post.ID, "error", err)
	}
}

// ProgramCampaign derives the campaign of a generated program from its saved
// posts. Posts without a date count as now.
func ProgramCampaign(program models.Post, saved []models.Post, now time.Time) models.Campaign {
	now = now.UTC()
	start, end := now, now
	for i, p := range saved {
		d := now
		if p.Date != nil {
			d = p.Date.UTC()
		}
		if i == 0 || d.Before(start) {
			start = d
		}
		if i == 0 || d.After(end) {
			end = d
		}
	}

	name := program.ProgramName
	if name == "" {
		name = "New program"
	}
	platform := string(program.Platform)
	if platform == "" {
		platform = "multiple platforms"
	}

	return models.Campaign{
		Name:        name,
		StartDate:   start,
		EndDate:     end,
		Color:       ProgramCampaignColor,
		Description: fmt.Sprintf("Content program for %s (%d posts)", platform, len(saved)),
	}
}

const ProgramCampaignColor = "#6366f1"
