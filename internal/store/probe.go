package store

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"github.com/maheshrc27/socialflow/internal/models"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DescribeUpload builds the metadata record for an upload: MIME type (sniffed
// when the client sent none), byte size and, for images, pixel dimensions.
// The caller fills in ID and URL.
func DescribeUpload(up models.Upload, folderID *string, now time.Time) models.MediaItem {
	mime := strings.TrimSpace(up.ContentType)
	if mime == "" || mime == "application/octet-stream" {
		if kind, err := filetype.Match(up.Data); err == nil && kind != types.Unknown {
			mime = kind.MIME.Value
		}
	}
	if mime == "" {
		mime = "application/octet-stream"
	}

	size := int64(len(up.Data))
	item := models.MediaItem{
		Name:     up.Name,
		Type:     mime,
		Date:     now,
		FolderID: folderID,
		Size:     &size,
	}

	if strings.HasPrefix(mime, "image/") {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(up.Data))
		if err != nil {
			slog.Info("could not read image dimensions", "name", up.Name, "type", mime, "error", err)
			return item
		}
		width, height := cfg.Width, cfg.Height
		item.Width = &width
		item.Height = &height
	}
	return item
}
