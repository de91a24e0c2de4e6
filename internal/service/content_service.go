package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/maheshrc27/socialflow/internal/advice"
	"github.com/maheshrc27/socialflow/internal/bulk"
	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/maheshrc27/socialflow/internal/transfer"
	"github.com/maheshrc27/socialflow/pkg/utils"
)

var ErrAdviceDisabled = errors.New("content advisor is not configured")

// ContentService covers post import/export and drafting content with the
// text generator.
type ContentService interface {
	Export(ctx context.Context) (transfer.ExportEnvelope, error)
	Import(ctx context.Context, data []byte) (BatchResult, error)
	Generate(ctx context.Context, req transfer.GenerateRequest) (BatchResult, error)
	Advice(ctx context.Context, req transfer.AdviceRequest) (transfer.Advice, error)
	CampaignIdeas(ctx context.Context, req transfer.CampaignIdeasRequest) ([]transfer.CampaignIdea, error)
}

type contentService struct {
	posts      PostService
	generator  advice.Generator
	importing  bulk.Policy
	generation bulk.Policy
	now        func() time.Time
}

// NewContentService wires the post service. generator may be nil, which
// disables advice and makes generation produce structural placeholders.
func NewContentService(posts PostService, generator advice.Generator, importPolicy, generationPolicy bulk.Policy) ContentService {
	return &contentService{
		posts:      posts,
		generator:  generator,
		importing:  importPolicy,
		generation: generationPolicy,
		now:        time.Now,
	}
}

func (s *contentService) Export(ctx context.Context) (transfer.ExportEnvelope, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return transfer.ExportEnvelope{}, err
	}
	return transfer.NewExport(posts, s.now()), nil
}

func (s *contentService) Import(ctx context.Context, data []byte) (BatchResult, error) {
	posts, err := transfer.ParseImport(data, s.now().UTC())
	if err != nil {
		return BatchResult{}, err
	}
	return s.posts.CreateBatch(ctx, posts, s.importing), nil
}

// Generate drafts a program of req.Count posts and saves them as Drafts
// tagged with a fresh program id.
func (s *contentService) Generate(ctx context.Context, req transfer.GenerateRequest) (BatchResult, error) {
	if req.Count < 1 {
		return BatchResult{}, fmt.Errorf("generate posts: count must be positive, got %d", req.Count)
	}
	now := s.now()
	programID := utils.NewProgramID(now)
	programName := fmt.Sprintf("%s program - %s", req.Niche, now.Format(time.DateOnly))
	platform := models.ParsePlatform(req.Platform)
	dates := SpreadDates(req.StartDate, req.EndDate, req.Count)

	drafts := PatternPosts(req.Niche, req.Count)
	if s.generator != nil {
		generated, err := s.generator.GeneratePosts(ctx, req)
		if err != nil {
			return BatchResult{}, err
		}
		drafts = generated
	}

	posts := make([]models.Post, 0, len(drafts))
	for i, d := range drafts {
		date := dates[min(i, len(dates)-1)]
		if d.Date != "" {
			if parsed, err := transfer.ParseDate(d.Date, date); err == nil {
				date = parsed
			} else {
				slog.Info("generated post has an unreadable date", "date", d.Date, "index", i)
			}
		}
		title := d.Title
		if title == "" {
			title = fmt.Sprintf("Post %d - %s", i+1, req.Niche)
		}
		posts = append(posts, models.Post{
			Title:       title,
			Content:     d.Content,
			Date:        &date,
			Platform:    platform,
			Status:      models.PostStatusDraft,
			ProgramID:   programID,
			ProgramName: programName,
		})
	}

	return s.posts.CreateBatch(ctx, posts, s.generation), nil
}

func (s *contentService) Advice(ctx context.Context, req transfer.AdviceRequest) (transfer.Advice, error) {
	if s.generator == nil {
		return transfer.Advice{}, ErrAdviceDisabled
	}
	return s.generator.Advice(ctx, req.Platform, req.Niche)
}

func (s *contentService) CampaignIdeas(ctx context.Context, req transfer.CampaignIdeasRequest) ([]transfer.CampaignIdea, error) {
	if s.generator == nil {
		return nil, ErrAdviceDisabled
	}
	return s.generator.CampaignIdeas(ctx, req.Niche)
}

// SpreadDates returns count UTC instants evenly spaced from start to end,
// both included. A single post lands on start.
func SpreadDates(start, end time.Time, count int) []time.Time {
	if count < 1 {
		return nil
	}
	start, end = start.UTC(), end.UTC()
	dates := make([]time.Time, count)
	if count == 1 {
		dates[0] = start
		return dates
	}
	interval := end.Sub(start) / time.Duration(count-1)
	for i := range dates {
		dates[i] = start.Add(time.Duration(i) * interval)
	}
	return dates
}

// PatternPosts drafts structural placeholders to be filled in by hand.
func PatternPosts(niche string, count int) []transfer.GeneratedPost {
	posts := make([]transfer.GeneratedPost, count)
	for i := range posts {
		posts[i] = transfer.GeneratedPost{
			Title:   fmt.Sprintf("Post %d - %s", i+1, niche),
			Content: fmt.Sprintf("[Outline] Goal of this post: grow engagement in %s.", niche),
		}
	}
	return posts
}
