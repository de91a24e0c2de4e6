// Package backend selects the persistence implementation once at startup.
package backend

import (
	"context"
	"log/slog"

	cfg "github.com/maheshrc27/socialflow/configs"
	"github.com/maheshrc27/socialflow/internal/store"
	"github.com/maheshrc27/socialflow/internal/store/local"
	"github.com/maheshrc27/socialflow/internal/store/remote"
)

// BlobSource serves locally held media content. It is nil in remote mode,
// where media URLs point at the bucket.
type BlobSource interface {
	Open(ref string) ([]byte, string, bool)
}

type Backend struct {
	*store.Stores
	Blobs BlobSource
}

// Open returns the remote backend when c configures one and the local
// backend otherwise.
func Open(ctx context.Context, c cfg.Config) (*Backend, error) {
	if c.RemoteEnabled() {
		stores, err := remote.Open(ctx, c)
		if err != nil {
			return nil, err
		}
		slog.Info("persistence backend selected", "mode", stores.Mode, "bucket", c.R2.BucketName)
		return &Backend{Stores: stores}, nil
	}

	slog.Warn("remote backend not configured, storing data locally", "data_dir", c.DataDir)
	lb, err := local.Open(c.DataDir)
	if err != nil {
		return nil, err
	}
	return &Backend{Stores: lb.Stores, Blobs: lb.Blobs}, nil
}
