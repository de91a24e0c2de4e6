package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	cfg "github.com/maheshrc27/socialflow/configs"
	"github.com/maheshrc27/socialflow/internal/store"
)

// ObjectStore holds the binary content of media items.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Remove(ctx context.Context, key string) error
	PublicURL(key string) string
	// KeyFromURL reverses PublicURL; ok is false for foreign URLs.
	KeyFromURL(url string) (key string, ok bool)
}

// R2ObjectStore stores media in an S3-compatible bucket (Cloudflare R2 by
// default).
type R2ObjectStore struct {
	client     *s3.Client
	bucket     string
	publicBase string
}

var ErrNoPublicURL = errors.New("object storage needs MEDIA_PUBLIC_URL to build media links")

// NewR2ObjectStore builds the S3 client once from configuration.
func NewR2ObjectStore(ctx context.Context, r2 cfg.R2) (*R2ObjectStore, error) {
	publicBase := strings.TrimRight(r2.PublicURL, "/")
	if publicBase == "" {
		return nil, ErrNoPublicURL
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r2.AccessKey, r2.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("load object storage config: %w", err)
	}

	endpoint := r2.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2.AccountID)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = r2.Endpoint != ""
	})

	return &R2ObjectStore{
		client:     client,
		bucket:     r2.BucketName,
		publicBase: publicBase,
	}, nil
}

func (r *R2ObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}

	if _, err := r.client.PutObject(ctx, input); err != nil {
		slog.Info(err.Error())
		return store.Unavailable("put object", err)
	}
	return nil
}

func (r *R2ObjectStore) Remove(ctx context.Context, key string) error {
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		slog.Info(err.Error())
		return store.Unavailable("delete object", err)
	}
	return nil
}

func (r *R2ObjectStore) PublicURL(key string) string {
	return r.publicBase + "/" + key
}

func (r *R2ObjectStore) KeyFromURL(url string) (string, bool) {
	prefix := r.publicBase + "/"
	if !strings.HasPrefix(url, prefix) || len(url) == len(prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}
