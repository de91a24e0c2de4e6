package remote

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/maheshrc27/socialflow/internal/store"
)

type mediaStore struct {
	*Table[models.MediaItem]
	objects ObjectStore
	now     func() time.Time
}

func newMediaStore(gw Gateway, objects ObjectStore) *mediaStore {
	return &mediaStore{
		Table:   newTable(gw, mediaItemCodec),
		objects: objects,
		now:     time.Now,
	}
}

// ObjectKey is the bucket path for an upload: {user_id}/{unix_ms}-{filename}.
func ObjectKey(userID string, at time.Time, filename string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_").Replace(filename)
	return fmt.Sprintf("%s/%d-%s", userID, at.UnixMilli(), safe)
}

// Upload stores the bytes, then records the metadata. A failed metadata insert
// leaves the object in the bucket.
func (s *mediaStore) Upload(ctx context.Context, up models.Upload, folderID *string) (models.MediaItem, error) {
	userID, err := principal(ctx)
	if err != nil {
		return models.MediaItem{}, err
	}

	now := s.now().UTC()
	item := store.DescribeUpload(up, folderID, now)
	key := ObjectKey(userID, now, up.Name)

	if err := s.objects.Put(ctx, key, up.Data, item.Type); err != nil {
		return models.MediaItem{}, fmt.Errorf("upload %s: %w", up.Name, err)
	}
	item.URL = s.objects.PublicURL(key)

	saved, err := s.Create(ctx, item)
	if err != nil {
		slog.Error("media metadata insert failed, object left in storage", "key", key, "error", err)
		return models.MediaItem{}, fmt.Errorf("record %s: %w", up.Name, err)
	}
	return saved, nil
}

// Delete removes the record, then its object. Object removal failures are
// logged; the record is already gone.
func (s *mediaStore) Delete(ctx context.Context, id string) error {
	row, err := s.remove(ctx, id)
	if err != nil {
		return err
	}

	key, ok := s.objects.KeyFromURL(str(row, "url"))
	if !ok {
		slog.Warn("media url is not in the bucket, skipping object removal", "id", id, "url", str(row, "url"))
		return nil
	}
	if err := s.objects.Remove(ctx, key); err != nil {
		slog.Error("failed to delete media object", "key", key, "error", err)
	}
	return nil
}
