package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/maheshrc27/socialflow/internal/models"
)

var ErrInvalidImport = errors.New("import must be a non-empty array of posts or an object with a \"posts\" array")

type ExportedPost struct {
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	Platform    string  `json:"platform"`
	Status      string  `json:"status"`
	Date        string  `json:"date"`
	ImageURL    *string `json:"imageUrl"`
	ProgramID   *string `json:"programId"`
	ProgramName *string `json:"programName"`
}

type ExportEnvelope struct {
	Posts      []ExportedPost `json:"posts"`
	ExportedAt time.Time      `json:"exportedAt"`
	TotalPosts int            `json:"totalPosts"`
}

// NewExport converts posts into the portable export format. Posts without a
// date are exported with an empty date.
func NewExport(posts []models.Post, now time.Time) ExportEnvelope {
	out := ExportEnvelope{
		Posts:      make([]ExportedPost, 0, len(posts)),
		ExportedAt: now.UTC(),
		TotalPosts: len(posts),
	}
	for _, p := range posts {
		exported := ExportedPost{
			Title:       p.Title,
			Content:     p.Content,
			Platform:    string(p.Platform),
			Status:      string(p.Status),
			ImageURL:    optional(p.ImageURL),
			ProgramID:   optional(p.ProgramID),
			ProgramName: optional(p.ProgramName),
		}
		if p.Date != nil {
			exported.Date = p.Date.UTC().Format(time.RFC3339Nano)
		}
		out.Posts = append(out.Posts, exported)
	}
	return out
}

type importedPost struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Platform    string `json:"platform"`
	Status      string `json:"status"`
	Date        string `json:"date"`
	ImageURL    string `json:"imageUrl"`
	ProgramID   string `json:"programId"`
	ProgramName string `json:"programName"`
}

var importDateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"}

// ParseImport reads posts from either a bare JSON array or an export
// envelope. Missing titles become "Post N", missing status Draft and missing
// dates now.
func ParseImport(data []byte, now time.Time) ([]models.Post, error) {
	trimmed := bytes.TrimSpace(data)
	var raw []importedPost
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidImport, err)
		}
	} else {
		var envelope struct {
			Posts []importedPost `json:"posts"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidImport, err)
		}
		raw = envelope.Posts
	}
	if len(raw) == 0 {
		return nil, ErrInvalidImport
	}

	posts := make([]models.Post, 0, len(raw))
	for i, p := range raw {
		date, err := ParseDate(p.Date, now)
		if err != nil {
			return nil, fmt.Errorf("%w: post %d: %w", ErrInvalidImport, i+1, err)
		}
		title := strings.TrimSpace(p.Title)
		if title == "" {
			title = fmt.Sprintf("Post %d", i+1)
		}
		posts = append(posts, models.Post{
			Title:       title,
			Content:     p.Content,
			Date:        &date,
			Platform:    models.ParsePlatform(p.Platform),
			Status:      parseStatus(p.Status),
			ImageURL:    p.ImageURL,
			ProgramID:   p.ProgramID,
			ProgramName: p.ProgramName,
		})
	}
	return posts, nil
}

// ParseDate accepts RFC 3339 and the shorter layouts spreadsheets produce.
// An empty value yields now. The result is in UTC.
func ParseDate(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return now.UTC(), nil
	}
	for _, layout := range importDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

func parseStatus(value string) models.PostStatus {
	switch s := models.PostStatus(value); s {
	case models.PostStatusScheduled, models.PostStatusPublished:
		return s
	default:
		return models.PostStatusDraft
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
