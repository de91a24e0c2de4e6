package models

import (
	"strings"
	"time"
)

type Platform string

const (
	PlatformInstagram Platform = "Instagram"
	PlatformLinkedIn  Platform = "LinkedIn"
	PlatformX         Platform = "X (Twitter)"
	PlatformTikTok    Platform = "TikTok"
	PlatformFacebook  Platform = "Facebook"
	PlatformWhatsApp  Platform = "WhatsApp"
	PlatformTelegram  Platform = "Telegram"
	PlatformSnapchat  Platform = "Snapchat"
	PlatformYouTube   Platform = "YouTube"
	PlatformThreads   Platform = "Threads"
	PlatformPinterest Platform = "Pinterest"
)

var Platforms = []Platform{
	PlatformInstagram,
	PlatformLinkedIn,
	PlatformX,
	PlatformTikTok,
	PlatformFacebook,
	PlatformWhatsApp,
	PlatformTelegram,
	PlatformSnapchat,
	PlatformYouTube,
	PlatformThreads,
	PlatformPinterest,
}

// ParsePlatform maps loose platform names ("twitter", "x", "linkedin") onto
// a known Platform. Unknown or empty names fall back to Instagram.
func ParsePlatform(name string) Platform {
	lower := strings.ToLower(strings.TrimSpace(name))
	switch lower {
	case "":
		return PlatformInstagram
	case "twitter", "x":
		return PlatformX
	}
	for _, p := range Platforms {
		if strings.ToLower(string(p)) == lower {
			return p
		}
	}
	return PlatformInstagram
}

type PostStatus string

const (
	PostStatusDraft     PostStatus = "Draft"
	PostStatusScheduled PostStatus = "Scheduled"
	PostStatusPublished PostStatus = "Published"
)

type Post struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Platform    Platform   `json:"platform,omitempty"`
	Status      PostStatus `json:"status,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	ProgramID   string     `json:"programId,omitempty"`
	ProgramName string     `json:"programName,omitempty"`
}

func (p Post) EntityID() string { return p.ID }

func (p Post) WithID(id string) Post {
	p.ID = id
	return p
}

// DueAt reports whether a scheduled post has reached its publication date.
func (p Post) DueAt(now time.Time) bool {
	return p.Status == PostStatusScheduled && p.Date != nil && !p.Date.After(now)
}

type Campaign struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Color       string    `json:"color"`
	Description string    `json:"description"`
}

func (c Campaign) EntityID() string { return c.ID }

func (c Campaign) WithID(id string) Campaign {
	c.ID = id
	return c
}
