// Package local implements the persistence contract on the device running
// the service: JSON collections in a SQLite key-value namespace and
// process-lifetime blob references for uploads.
package local

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/maheshrc27/socialflow/internal/store"
)

var ErrDataDirLocked = errors.New("local data directory is in use by another process")

// Backend is an opened local store.
type Backend struct {
	Stores *store.Stores
	Blobs  *BlobRegistry
}

// Open locks dir for this process and opens every collection in it.
func Open(dir string) (*Backend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, "socialflow.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock data directory: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", dir, ErrDataDirLocked)
	}

	kv, err := OpenKV(dir)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	blobs := NewBlobRegistry()
	stores := &store.Stores{
		Mode:      store.ModeLocal,
		Posts:     NewCollection[models.Post](kv, "posts", "post"),
		Campaigns: NewCollection[models.Campaign](kv, "campaigns", "campaign"),
		Media:     newMediaStore(kv, blobs),
		Folders:   NewCollection[models.MediaFolder](kv, "media_folders", "media folder"),
		Studios:   NewCollection[models.StudioLink](kv, "studios", "studio"),
	}
	stores.OnClose(lock.Unlock)
	stores.OnClose(kv.Close)

	return &Backend{Stores: stores, Blobs: blobs}, nil
}
