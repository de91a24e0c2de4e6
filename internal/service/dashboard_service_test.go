package service

import (
	"context"
	"errors"
	"testing"

	"github.com/maheshrc27/socialflow/internal/auth"
	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/maheshrc27/socialflow/internal/store"
	"github.com/maheshrc27/socialflow/internal/testsupport"
)

func TestDashboardLoadsEveryCollection(t *testing.T) {
	stores := testsupport.LocalBackend(t).Stores
	ctx := context.Background()

	if _, err := stores.Posts.Create(ctx, models.Post{Title: "p"}); err != nil {
		t.Fatalf("create post: %v", err)
	}
	if _, err := stores.Studios.Create(ctx, models.StudioLink{Name: "s"}); err != nil {
		t.Fatalf("create studio: %v", err)
	}

	d, err := NewDashboardService(stores).Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if d.Mode != store.ModeLocal || len(d.Posts) != 1 || len(d.Studios) != 1 {
		t.Fatalf("unexpected dashboard %+v", d)
	}
	if d.Campaigns == nil || d.Media == nil || d.Folders == nil {
		t.Fatal("empty collections should load as empty lists")
	}
}

func TestDashboardRequiresPrincipalRemotely(t *testing.T) {
	stores, _, _ := testsupport.RemoteStores()
	svc := NewDashboardService(stores)

	if _, err := svc.Load(context.Background()); !errors.Is(err, store.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
	d, err := svc.Load(auth.WithPrincipal(context.Background(), "u1"))
	if err != nil || d.Mode != store.ModeRemote {
		t.Fatalf("unexpected dashboard %+v (%v)", d, err)
	}
}
