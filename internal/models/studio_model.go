package models

type StudioStatus string

const (
	StudioStatusReady            StudioStatus = "ready"
	StudioStatusUnderDevelopment StudioStatus = "under_development"
)

// StudioLink is a bookmarked external design studio.
type StudioLink struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	URL       string       `json:"url"`
	ImageURL  string       `json:"imageUrl"`
	ImageSize string       `json:"imageSize"`
	UsageTips string       `json:"usageTips"`
	Status    StudioStatus `json:"status"`
}

func (s StudioLink) EntityID() string { return s.ID }

func (s StudioLink) WithID(id string) StudioLink {
	s.ID = id
	return s
}
