package transfer

import "time"

type AdviceRequest struct {
	Platform string `json:"platform" validate:"required"`
	Niche    string `json:"niche" validate:"required,max=200"`
}

type Advice struct {
	Platform     string   `json:"platform"`
	BestTimes    []string `json:"bestTimes"`
	Tips         []string `json:"tips"`
	ContentIdeas []string `json:"contentIdeas"`
}

type CampaignIdeasRequest struct {
	Niche string `json:"niche" validate:"required,max=200"`
}

type CampaignIdea struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Month       int    `json:"month"`
	Color       string `json:"color"`
}

type GenerateRequest struct {
	Niche     string    `json:"niche" validate:"required,max=200"`
	Platform  string    `json:"platform" validate:"required"`
	Count     int       `json:"count" validate:"required,min=1,max=180"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required,gtefield=StartDate"`
}

// GeneratedPost is one post drafted by the text generator.
type GeneratedPost struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"`
}
