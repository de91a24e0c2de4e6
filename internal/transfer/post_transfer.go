package transfer

import (
	"time"

	"github.com/maheshrc27/socialflow/internal/models"
)

type PostInput struct {
	Title       string            `json:"title" validate:"required,max=300"`
	Content     string            `json:"content"`
	Date        *time.Time        `json:"date"`
	Platform    string            `json:"platform"`
	Status      models.PostStatus `json:"status" validate:"omitempty,oneof=Draft Scheduled Published"`
	ImageURL    string            `json:"imageUrl" validate:"omitempty,url"`
	ProgramID   string            `json:"programId"`
	ProgramName string            `json:"programName"`
}

func (in PostInput) ToPost(id string) models.Post {
	post := models.Post{
		ID:          id,
		Title:       in.Title,
		Content:     in.Content,
		Date:        utcRef(in.Date),
		Status:      in.Status,
		ImageURL:    in.ImageURL,
		ProgramID:   in.ProgramID,
		ProgramName: in.ProgramName,
	}
	if in.Platform != "" {
		post.Platform = models.ParsePlatform(in.Platform)
	}
	return post
}

type BulkCreateInput struct {
	Posts []PostInput `json:"posts" validate:"required,min=1,dive"`
}

type BulkStatusInput struct {
	IDs    []string          `json:"ids" validate:"required,min=1,dive,required"`
	Status models.PostStatus `json:"status" validate:"required,oneof=Draft Scheduled Published"`
}

type BulkDeleteInput struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

type CampaignInput struct {
	Name        string    `json:"name" validate:"required,max=200"`
	StartDate   time.Time `json:"startDate" validate:"required"`
	EndDate     time.Time `json:"endDate" validate:"required,gtefield=StartDate"`
	Color       string    `json:"color" validate:"required,hexcolor"`
	Description string    `json:"description"`
}

func (in CampaignInput) ToCampaign(id string) models.Campaign {
	return models.Campaign{
		ID:          id,
		Name:        in.Name,
		StartDate:   in.StartDate.UTC(),
		EndDate:     in.EndDate.UTC(),
		Color:       in.Color,
		Description: in.Description,
	}
}

type StudioInput struct {
	Name      string              `json:"name" validate:"required,max=200"`
	URL       string              `json:"url" validate:"required,url"`
	ImageURL  string              `json:"imageUrl" validate:"omitempty,url"`
	ImageSize string              `json:"imageSize"`
	UsageTips string              `json:"usageTips"`
	Status    models.StudioStatus `json:"status" validate:"omitempty,oneof=ready under_development"`
}

func (in StudioInput) ToStudio(id string) models.StudioLink {
	status := in.Status
	if status == "" {
		status = models.StudioStatusReady
	}
	return models.StudioLink{
		ID:        id,
		Name:      in.Name,
		URL:       in.URL,
		ImageURL:  in.ImageURL,
		ImageSize: in.ImageSize,
		UsageTips: in.UsageTips,
		Status:    status,
	}
}

// utcRef stores dates in UTC whatever offset the client sent.
func utcRef(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
