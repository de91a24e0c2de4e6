package store

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/maheshrc27/socialflow/internal/models"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestDescribeUpload(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	folder := "f1"
	img := pngBytes(t, 12, 7)

	tests := []struct {
		name       string
		up         models.Upload
		wantType   string
		wantWidth  int
		wantHeight int
	}{
		{"declared image", models.Upload{Name: "a.png", ContentType: "image/png", Data: img}, "image/png", 12, 7},
		{"sniffed image", models.Upload{Name: "a.bin", Data: img}, "image/png", 12, 7},
		{"text", models.Upload{Name: "a.txt", ContentType: "text/plain", Data: []byte("hi")}, "text/plain", 0, 0},
		{"unknown", models.Upload{Name: "a.dat", Data: []byte{0x00, 0x01}}, "application/octet-stream", 0, 0},
		{"broken image", models.Upload{Name: "b.png", ContentType: "image/png", Data: []byte("nope")}, "image/png", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := DescribeUpload(tt.up, &folder, now)
			if item.Type != tt.wantType {
				t.Fatalf("type: got %q want %q", item.Type, tt.wantType)
			}
			if item.Size == nil || *item.Size != int64(len(tt.up.Data)) {
				t.Fatalf("size: got %v want %d", item.Size, len(tt.up.Data))
			}
			if !item.Date.Equal(now) || item.Name != tt.up.Name || item.FolderID != &folder {
				t.Fatalf("unexpected item %+v", item)
			}
			if tt.wantWidth == 0 {
				if item.Width != nil || item.Height != nil {
					t.Fatalf("expected no dimensions, got %v x %v", item.Width, item.Height)
				}
				return
			}
			if item.Width == nil || *item.Width != tt.wantWidth || *item.Height != tt.wantHeight {
				t.Fatalf("dimensions: got %v x %v", item.Width, item.Height)
			}
		})
	}
}
