package remote

import (
	"fmt"
	"strconv"
	"time"

	"github.com/maheshrc27/socialflow/internal/models"
)

// Table names of the remote schema.
const (
	TablePosts        = "posts"
	TableCampaigns    = "campaigns"
	TableMediaItems   = "media_items"
	TableMediaFolders = "media_folders"
	TableStudios      = "design_studios"
)

// codec translates one entity type to and from its table row.
type codec[E any] struct {
	table   string
	kind    string
	orderBy string
	encode  func(E) Row
	decode  func(Row) (E, error)
}

var postCodec = codec[models.Post]{
	table:   TablePosts,
	kind:    "post",
	orderBy: "created_at ASC",
	encode:  EncodePost,
	decode:  DecodePost,
}

var campaignCodec = codec[models.Campaign]{
	table:   TableCampaigns,
	kind:    "campaign",
	orderBy: "created_at ASC",
	encode:  EncodeCampaign,
	decode:  DecodeCampaign,
}

var mediaItemCodec = codec[models.MediaItem]{
	table:   TableMediaItems,
	kind:    "media item",
	orderBy: "created_at DESC",
	encode:  EncodeMediaItem,
	decode:  DecodeMediaItem,
}

var mediaFolderCodec = codec[models.MediaFolder]{
	table:   TableMediaFolders,
	kind:    "media folder",
	orderBy: "created_at DESC",
	encode:  EncodeMediaFolder,
	decode:  DecodeMediaFolder,
}

var studioCodec = codec[models.StudioLink]{
	table:   TableStudios,
	kind:    "studio",
	orderBy: "created_at DESC",
	encode:  EncodeStudio,
	decode:  DecodeStudio,
}

func EncodePost(p models.Post) Row {
	return Row{
		"title":        p.Title,
		"content":      nullString(p.Content),
		"date":         nullTime(p.Date),
		"platform":     nullString(string(p.Platform)),
		"status":       nullString(string(p.Status)),
		"image_url":    nullString(p.ImageURL),
		"program_id":   nullString(p.ProgramID),
		"program_name": nullString(p.ProgramName),
	}
}

func DecodePost(r Row) (models.Post, error) {
	date, err := optTime(r, "date")
	if err != nil {
		return models.Post{}, err
	}
	return models.Post{
		ID:          idOf(r),
		Title:       str(r, "title"),
		Content:     str(r, "content"),
		Date:        date,
		Platform:    models.Platform(str(r, "platform")),
		Status:      models.PostStatus(str(r, "status")),
		ImageURL:    str(r, "image_url"),
		ProgramID:   str(r, "program_id"),
		ProgramName: str(r, "program_name"),
	}, nil
}

func EncodeCampaign(c models.Campaign) Row {
	return Row{
		"name":        c.Name,
		"description": c.Description,
		"start_date":  formatTime(c.StartDate),
		"end_date":    formatTime(c.EndDate),
		"color":       c.Color,
	}
}

func DecodeCampaign(r Row) (models.Campaign, error) {
	start, err := reqTime(r, "start_date")
	if err != nil {
		return models.Campaign{}, err
	}
	end, err := reqTime(r, "end_date")
	if err != nil {
		return models.Campaign{}, err
	}
	return models.Campaign{
		ID:          idOf(r),
		Name:        str(r, "name"),
		Description: str(r, "description"),
		StartDate:   start,
		EndDate:     end,
		Color:       str(r, "color"),
	}, nil
}

func EncodeMediaItem(m models.MediaItem) Row {
	return Row{
		"name":       m.Name,
		"url":        m.URL,
		"type":       m.Type,
		"created_at": formatTime(m.Date),
		"folder_id":  nullRef(m.FolderID),
		"width":      nullInt(m.Width),
		"height":     nullInt(m.Height),
		"size":       nullInt64(m.Size),
	}
}

func DecodeMediaItem(r Row) (models.MediaItem, error) {
	date, err := reqTime(r, "created_at")
	if err != nil {
		return models.MediaItem{}, err
	}
	width, err := optInt(r, "width")
	if err != nil {
		return models.MediaItem{}, err
	}
	height, err := optInt(r, "height")
	if err != nil {
		return models.MediaItem{}, err
	}
	size, err := optInt64(r, "size")
	if err != nil {
		return models.MediaItem{}, err
	}
	return models.MediaItem{
		ID:       idOf(r),
		URL:      str(r, "url"),
		Name:     str(r, "name"),
		Type:     str(r, "type"),
		Date:     date,
		FolderID: optRef(r, "folder_id"),
		Width:    width,
		Height:   height,
		Size:     size,
	}, nil
}

func EncodeMediaFolder(f models.MediaFolder) Row {
	return Row{
		"name":       f.Name,
		"parent_id":  nullRef(f.ParentID),
		"created_at": formatTime(f.Date),
	}
}

func DecodeMediaFolder(r Row) (models.MediaFolder, error) {
	date, err := reqTime(r, "created_at")
	if err != nil {
		return models.MediaFolder{}, err
	}
	return models.MediaFolder{
		ID:       idOf(r),
		Name:     str(r, "name"),
		ParentID: optRef(r, "parent_id"),
		Date:     date,
	}, nil
}

func EncodeStudio(s models.StudioLink) Row {
	return Row{
		"name":       s.Name,
		"url":        s.URL,
		"image_url":  s.ImageURL,
		"image_size": s.ImageSize,
		"usage_tips": s.UsageTips,
		"status":     string(s.Status),
	}
}

func DecodeStudio(r Row) (models.StudioLink, error) {
	return models.StudioLink{
		ID:        idOf(r),
		Name:      str(r, "name"),
		URL:       str(r, "url"),
		ImageURL:  str(r, "image_url"),
		ImageSize: str(r, "image_size"),
		UsageTips: str(r, "usage_tips"),
		Status:    models.StudioStatus(str(r, "status")),
	}, nil
}

// Dates travel as RFC 3339 strings in UTC.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullRef(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullInt(n *int) any {
	if n == nil {
		return nil
	}
	return int64(*n)
}

func nullInt64(n *int64) any {
	if n == nil {
		return nil
	}
	return *n
}

func idOf(r Row) string {
	switch v := r["id"].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func str(r Row, key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func optRef(r Row, key string) *string {
	if r[key] == nil {
		return nil
	}
	s := str(r, key)
	if s == "" {
		s = fmt.Sprint(r[key])
	}
	return &s
}

func parseTime(key string, v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, fmt.Errorf("column %s: %w", key, err)
		}
		return parsed, nil
	case []byte:
		return parseTime(key, string(t))
	default:
		return time.Time{}, fmt.Errorf("column %s: unexpected type %T", key, v)
	}
}

func reqTime(r Row, key string) (time.Time, error) {
	if r[key] == nil {
		return time.Time{}, fmt.Errorf("column %s: missing value", key)
	}
	return parseTime(key, r[key])
}

func optTime(r Row, key string) (*time.Time, error) {
	if r[key] == nil {
		return nil, nil
	}
	t, err := parseTime(key, r[key])
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func optInt64(r Row, key string) (*int64, error) {
	var n int64
	switch v := r[key].(type) {
	case nil:
		return nil, nil
	case int64:
		n = v
	case int:
		n = int64(v)
	case int32:
		n = int64(v)
	case float64:
		n = int64(v)
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", key, err)
		}
		n = parsed
	default:
		return nil, fmt.Errorf("column %s: unexpected type %T", key, v)
	}
	return &n, nil
}

func optInt(r Row, key string) (*int, error) {
	n, err := optInt64(r, key)
	if err != nil || n == nil {
		return nil, err
	}
	v := int(*n)
	return &v, nil
}
