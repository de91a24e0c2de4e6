package models

import "time"

type MediaFolder struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	ParentID *string   `json:"parentId"`
	Date     time.Time `json:"date"`
}

func (f MediaFolder) EntityID() string { return f.ID }

func (f MediaFolder) WithID(id string) MediaFolder {
	f.ID = id
	return f
}

type MediaItem struct {
	ID       string    `json:"id"`
	URL      string    `json:"url"`
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	Date     time.Time `json:"date"`
	FolderID *string   `json:"folderId"`
	Width    *int      `json:"width,omitempty"`
	Height   *int      `json:"height,omitempty"`
	Size     *int64    `json:"size,omitempty"`
}

func (m MediaItem) EntityID() string { return m.ID }

func (m MediaItem) WithID(id string) MediaItem {
	m.ID = id
	return m
}

// InFolder reports whether the item sits directly in folderID (nil = root).
func (m MediaItem) InFolder(folderID *string) bool {
	return SameFolder(m.FolderID, folderID)
}

// SameFolder compares two nullable folder references.
func SameFolder(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Upload is a file received for the media library.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}
