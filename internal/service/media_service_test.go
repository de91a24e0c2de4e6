package service

import (
	"context"
	"errors"
	"testing"

	"github.com/maheshrc27/socialflow/internal/bulk"
	"github.com/maheshrc27/socialflow/internal/media"
	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/maheshrc27/socialflow/internal/store"
	"github.com/maheshrc27/socialflow/internal/testsupport"
)

func TestBrowseFolder(t *testing.T) {
	stores := testsupport.LocalBackend(t).Stores
	svc := NewMediaService(stores.Media, stores.Folders, bulk.Policy{})
	ctx := context.Background()

	brand, err := svc.CreateFolder(ctx, "Brand", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	logos, err := svc.CreateFolder(ctx, "Logos", &brand.ID)
	if err != nil {
		t.Fatalf("create child: %v", err)
	}

	result, err := svc.Upload(ctx, []models.Upload{
		{Name: "a.txt", ContentType: "text/plain", Data: []byte("a")},
		{Name: "b.txt", ContentType: "text/plain", Data: []byte("b")},
	}, &logos.ID)
	if err != nil || result.Err() != nil {
		t.Fatalf("upload: %v / %v", err, result.Err())
	}

	view, err := svc.Browse(ctx, &logos.ID)
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if view.Folder == nil || view.Folder.ID != logos.ID {
		t.Fatalf("unexpected folder %+v", view.Folder)
	}
	if len(view.Breadcrumbs) != 2 || view.Breadcrumbs[0].ID != brand.ID {
		t.Fatalf("unexpected breadcrumbs %+v", view.Breadcrumbs)
	}
	if view.Stats != (media.Stats{Folders: 0, Files: 2}) || len(view.Items) != 2 {
		t.Fatalf("unexpected listing %+v", view)
	}

	root, err := svc.Browse(ctx, nil)
	if err != nil {
		t.Fatalf("browse root: %v", err)
	}
	if root.Folder != nil || len(root.Breadcrumbs) != 0 || root.Stats != (media.Stats{Folders: 1, Files: 0}) {
		t.Fatalf("unexpected root listing %+v", root)
	}

	missing := "missing"
	if _, err := svc.Browse(ctx, &missing); !errors.Is(err, media.ErrFolderNotFound) {
		t.Fatalf("expected ErrFolderNotFound, got %v", err)
	}
}

func TestUploadToMissingFolderStoresNothing(t *testing.T) {
	stores := testsupport.LocalBackend(t).Stores
	svc := NewMediaService(stores.Media, stores.Folders, bulk.Policy{})
	ctx := context.Background()

	missing := "missing"
	_, err := svc.Upload(ctx, []models.Upload{{Name: "a.txt", Data: []byte("a")}}, &missing)
	if !errors.Is(err, media.ErrFolderNotFound) {
		t.Fatalf("expected ErrFolderNotFound, got %v", err)
	}
	items, _ := svc.ListItems(ctx)
	if len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
}

func TestMoveItemAndRemoveFolder(t *testing.T) {
	stores := testsupport.LocalBackend(t).Stores
	svc := NewMediaService(stores.Media, stores.Folders, bulk.Policy{})
	ctx := context.Background()

	folder, _ := svc.CreateFolder(ctx, "Inbox", nil)
	result, _ := svc.Upload(ctx, []models.Upload{{Name: "a.txt", Data: []byte("a")}}, nil)
	item := result.Succeeded[0]

	moved, err := svc.MoveItem(ctx, item.ID, &folder.ID)
	if err != nil || moved.FolderID == nil || *moved.FolderID != folder.ID {
		t.Fatalf("move: %+v (%v)", moved, err)
	}
	if _, err := svc.MoveItem(ctx, "missing", nil); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	deleted, err := svc.RemoveFolder(ctx, folder.ID)
	if err != nil {
		t.Fatalf("remove folder: %v", err)
	}
	if len(deleted.MovedItems) != 1 || deleted.MovedItems[0].FolderID != nil {
		t.Fatalf("item not moved to root: %+v", deleted)
	}

	if err := svc.RemoveItem(ctx, item.ID); err != nil {
		t.Fatalf("remove item: %v", err)
	}
}

type countingMedia struct {
	store.MediaStore
	lists int
}

func (c *countingMedia) List(ctx context.Context) ([]models.MediaItem, error) {
	c.lists++
	return c.MediaStore.List(ctx)
}

func TestMoveItemReadsMediaOnce(t *testing.T) {
	stores := testsupport.LocalBackend(t).Stores
	items := &countingMedia{MediaStore: stores.Media}
	svc := NewMediaService(items, stores.Folders, bulk.Policy{})
	ctx := context.Background()

	folder, _ := svc.CreateFolder(ctx, "Inbox", nil)
	result, _ := svc.Upload(ctx, []models.Upload{{Name: "a.txt", Data: []byte("a")}}, nil)

	items.lists = 0
	moved, err := svc.MoveItem(ctx, result.Succeeded[0].ID, &folder.ID)
	if err != nil || moved.FolderID == nil || *moved.FolderID != folder.ID {
		t.Fatalf("move: %+v (%v)", moved, err)
	}
	if items.lists != 1 {
		t.Fatalf("expected one media listing, got %d", items.lists)
	}
}
