package local_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/maheshrc27/socialflow/internal/store"
	"github.com/maheshrc27/socialflow/internal/store/local"
	"github.com/maheshrc27/socialflow/internal/testsupport"
)

func TestPostRoundTrip(t *testing.T) {
	b := testsupport.LocalBackend(t)
	ctx := context.Background()

	date := time.Date(2024, 3, 5, 9, 30, 0, 123456789, time.UTC)
	created, err := b.Stores.Posts.Create(ctx, models.Post{
		Title:    "Launch",
		Content:  "We are live",
		Date:     &date,
		Platform: models.PlatformLinkedIn,
		Status:   models.PostStatusScheduled,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(created.ID, "local-") {
		t.Fatalf("expected local id, got %q", created.ID)
	}

	posts, err := b.Stores.Posts.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	got := posts[0]
	if got.ID != created.ID || got.Title != "Launch" || got.Content != "We are live" {
		t.Fatalf("unexpected post %+v", got)
	}
	if got.Date == nil || !got.Date.Equal(date) {
		t.Fatalf("date did not survive: %v", got.Date)
	}
	if got.Platform != models.PlatformLinkedIn || got.Status != models.PostStatusScheduled {
		t.Fatalf("unexpected platform/status %q/%q", got.Platform, got.Status)
	}
}

func TestUpdateAndDeleteMissingRecord(t *testing.T) {
	b := testsupport.LocalBackend(t)
	ctx := context.Background()

	_, err := b.Stores.Campaigns.Update(ctx, models.Campaign{ID: "local-1-missing", Name: "x"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("update: expected ErrNotFound, got %v", err)
	}
	if err := b.Stores.Studios.Delete(ctx, "local-1-missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("delete: expected ErrNotFound, got %v", err)
	}
}

func TestUpdateReplacesRecord(t *testing.T) {
	b := testsupport.LocalBackend(t)
	ctx := context.Background()

	first, err := b.Stores.Studios.Create(ctx, models.StudioLink{Name: "Canva", URL: "https://canva.com"})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := b.Stores.Studios.Create(ctx, models.StudioLink{Name: "Figma", URL: "https://figma.com"})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	first.Status = models.StudioStatusUnderDevelopment
	if _, err := b.Stores.Studios.Update(ctx, first); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := b.Stores.Studios.Delete(ctx, second.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	studios, err := b.Stores.Studios.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(studios) != 1 || studios[0].ID != first.ID {
		t.Fatalf("unexpected studios %+v", studios)
	}
	if studios[0].Status != models.StudioStatusUnderDevelopment {
		t.Fatalf("status not updated: %q", studios[0].Status)
	}
}

func TestCorruptCollectionReadsEmpty(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	kv, err := local.OpenKV(dir)
	if err != nil {
		t.Fatalf("open kv: %v", err)
	}
	if err := kv.Put(ctx, "posts", "{not json"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatalf("close kv: %v", err)
	}

	b, err := local.Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer b.Stores.Close()

	posts, err := b.Stores.Posts.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("expected empty collection, got %d posts", len(posts))
	}

	// the next write replaces the damaged value
	if _, err := b.Stores.Posts.Create(ctx, models.Post{Title: "fresh"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	posts, err = b.Stores.Posts.List(ctx)
	if err != nil || len(posts) != 1 {
		t.Fatalf("expected 1 post after rewrite, got %d (%v)", len(posts), err)
	}
}

func TestDataSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	b, err := local.Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	parent := "folder-1"
	if _, err := b.Stores.Folders.Create(ctx, models.MediaFolder{Name: "Brand", ParentID: &parent, Date: time.Now().UTC()}); err != nil {
		t.Fatalf("create folder: %v", err)
	}
	if err := b.Stores.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	b, err = local.Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b.Stores.Close()

	folders, err := b.Stores.Folders.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(folders) != 1 || folders[0].ParentID == nil || *folders[0].ParentID != parent {
		t.Fatalf("unexpected folders %+v", folders)
	}
}

func TestDataDirLock(t *testing.T) {
	dir := t.TempDir()

	b, err := local.Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer b.Stores.Close()

	if _, err := local.Open(dir); !errors.Is(err, local.ErrDataDirLocked) {
		t.Fatalf("expected ErrDataDirLocked, got %v", err)
	}
}

func TestUploadRegistersAndReleasesBlob(t *testing.T) {
	b := testsupport.LocalBackend(t)
	ctx := context.Background()

	item, err := b.Stores.Media.Upload(ctx, models.Upload{
		Name:        "notes.txt",
		ContentType: "text/plain",
		Data:        []byte("hello"),
	}, nil)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasPrefix(item.URL, "blob:") {
		t.Fatalf("expected blob reference, got %q", item.URL)
	}
	if item.Size == nil || *item.Size != 5 {
		t.Fatalf("expected size 5, got %v", item.Size)
	}

	data, contentType, ok := b.Blobs.Open(item.URL)
	if !ok || string(data) != "hello" || contentType != "text/plain" {
		t.Fatalf("blob not readable: ok=%v type=%q data=%q", ok, contentType, data)
	}

	if err := b.Stores.Media.Delete(ctx, item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, ok := b.Blobs.Open(item.URL); ok {
		t.Fatal("blob still registered after delete")
	}
	if b.Blobs.Len() != 0 {
		t.Fatalf("expected no blobs, got %d", b.Blobs.Len())
	}
}

func TestMediaListsNewestFirst(t *testing.T) {
	b := testsupport.LocalBackend(t)
	ctx := context.Background()

	for _, name := range []string{"a.txt", "b.txt"} {
		if _, err := b.Stores.Media.Upload(ctx, models.Upload{Name: name, ContentType: "text/plain", Data: []byte(name)}, nil); err != nil {
			t.Fatalf("upload %s: %v", name, err)
		}
	}

	items, err := b.Stores.Media.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].Name != "b.txt" {
		t.Fatalf("expected newest first, got %+v", items)
	}
}
