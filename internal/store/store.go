// Package store defines the persistence contract shared by the local and
// remote backends.
package store

import (
	"context"
	"errors"

	"github.com/maheshrc27/socialflow/internal/models"
)

// Entity is implemented by every persisted model.
type Entity[E any] interface {
	EntityID() string
	WithID(id string) E
}

// EntityStore is the uniform CRUD contract for one entity type.
type EntityStore[E any] interface {
	List(ctx context.Context) ([]E, error)
	// Create persists e and returns it with the store-assigned id.
	Create(ctx context.Context, e E) (E, error)
	Update(ctx context.Context, e E) (E, error)
	Delete(ctx context.Context, id string) error
}

// MediaStore adds binary upload to the media item contract. Delete on a
// MediaStore also disposes of the item's blob.
type MediaStore interface {
	EntityStore[models.MediaItem]
	Upload(ctx context.Context, up models.Upload, folderID *string) (models.MediaItem, error)
}

type Mode string

const (
	ModeLocal  Mode = "local"
	ModeRemote Mode = "remote"
)

// Stores bundles one store per entity type for a single backend.
type Stores struct {
	Mode      Mode
	Posts     EntityStore[models.Post]
	Campaigns EntityStore[models.Campaign]
	Media     MediaStore
	Folders   EntityStore[models.MediaFolder]
	Studios   EntityStore[models.StudioLink]

	closers []func() error
}

// OnClose registers a release hook run by Close in reverse order.
func (s *Stores) OnClose(fn func() error) {
	s.closers = append(s.closers, fn)
}

func (s *Stores) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
