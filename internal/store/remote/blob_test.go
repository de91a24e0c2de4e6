package remote_test

import (
	"context"
	"errors"
	"testing"

	cfg "github.com/maheshrc27/socialflow/configs"
	"github.com/maheshrc27/socialflow/internal/store/remote"
)

func TestR2ObjectStoreRequiresPublicURL(t *testing.T) {
	r2 := cfg.R2{AccountID: "acct", AccessKey: "ak", SecretKey: "sk", BucketName: "media"}

	if _, err := remote.NewR2ObjectStore(context.Background(), r2); !errors.Is(err, remote.ErrNoPublicURL) {
		t.Fatalf("expected ErrNoPublicURL, got %v", err)
	}
	r2.PublicURL = "/"
	if _, err := remote.NewR2ObjectStore(context.Background(), r2); !errors.Is(err, remote.ErrNoPublicURL) {
		t.Fatalf("a bare slash is not a base URL, got %v", err)
	}
}

func TestR2ObjectStorePublicURL(t *testing.T) {
	objects, err := remote.NewR2ObjectStore(context.Background(), cfg.R2{
		AccountID:  "acct",
		AccessKey:  "ak",
		SecretKey:  "sk",
		BucketName: "media",
		PublicURL:  "https://media.example.test/",
	})
	if err != nil {
		t.Fatalf("new object store: %v", err)
	}

	url := objects.PublicURL("u1/1700000000000-a.png")
	if url != "https://media.example.test/u1/1700000000000-a.png" {
		t.Fatalf("unexpected public URL %q", url)
	}
	if key, ok := objects.KeyFromURL(url); !ok || key != "u1/1700000000000-a.png" {
		t.Fatalf("unexpected key %q (%v)", key, ok)
	}
	if _, ok := objects.KeyFromURL("https://elsewhere.test/u1/a.png"); ok {
		t.Fatal("foreign URLs must not map to a key")
	}
}
