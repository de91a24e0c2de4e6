package local

import (
	"context"
	"time"

	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/maheshrc27/socialflow/internal/store"
)

type mediaStore struct {
	*Collection[models.MediaItem]
	blobs *BlobRegistry
}

func newMediaStore(kv *KV, blobs *BlobRegistry) *mediaStore {
	c := NewCollection[models.MediaItem](kv, "media_items", "media item")
	c.prepend = true
	return &mediaStore{Collection: c, blobs: blobs}
}

// Upload wraps the bytes in an ephemeral reference and records the metadata.
func (s *mediaStore) Upload(ctx context.Context, up models.Upload, folderID *string) (models.MediaItem, error) {
	item := store.DescribeUpload(up, folderID, time.Now().UTC())
	item.URL = s.blobs.Register(up.Data, item.Type)

	saved, err := s.Create(ctx, item)
	if err != nil {
		s.blobs.Release(item.URL)
		return models.MediaItem{}, err
	}
	return saved, nil
}

// Delete removes the record and releases its ephemeral reference.
func (s *mediaStore) Delete(ctx context.Context, id string) error {
	removed, err := s.remove(ctx, id)
	if err != nil {
		return err
	}
	s.blobs.Release(removed.URL)
	return nil
}
