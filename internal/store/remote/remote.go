// Package remote implements the persistence contract on a PostgreSQL
// database plus an S3-compatible bucket for media content.
package remote

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/lib/pq"
	cfg "github.com/maheshrc27/socialflow/configs"
	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/maheshrc27/socialflow/internal/store"
)

//go:embed schema.sql
var schema string

// New assembles the remote stores over an existing gateway and object store.
func New(gw Gateway, objects ObjectStore) *store.Stores {
	return &store.Stores{
		Mode:      store.ModeRemote,
		Posts:     newTable(gw, postCodec),
		Campaigns: newTable(gw, campaignCodec),
		Media:     newMediaStore(gw, objects),
		Folders:   newTable(gw, mediaFolderCodec),
		Studios:   newTable(gw, studioCodec),
	}
}

// Open connects to the database and bucket named in c and applies the schema.
func Open(ctx context.Context, c cfg.Config) (*store.Stores, error) {
	db, err := sql.Open("postgres", c.PostgresURI)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, store.Unavailable("ping database", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	objects, err := NewR2ObjectStore(ctx, c.R2)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	stores := New(NewSQLGateway(db), objects)
	stores.OnClose(db.Close)
	return stores, nil
}

var _ store.MediaStore = (*mediaStore)(nil)
var _ store.EntityStore[models.Post] = (*Table[models.Post])(nil)
