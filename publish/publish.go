// Package publish uploads fixture files to MinIO or any S3-compatible store.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yourusername/go-relgen/config"
)

func NewClient(cfg config.ObjectStoreConfig) (*minio.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}
	return client, nil
}

type Uploader struct {
	client *minio.Client
	bucket string
	prefix string
	log    *slog.Logger
}

// NewUploader stores objects under prefix (e.g. "fixtures/") in bucket.
func NewUploader(client *minio.Client, bucket, prefix string, log *slog.Logger) *Uploader {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Uploader{client: client, bucket: bucket, prefix: prefix, log: log}
}

// Key maps a local file to its object name.
func (u *Uploader) Key(localPath string) string {
	return path.Join(u.prefix, filepath.Base(localPath))
}

func (u *Uploader) EnsureBucket(ctx context.Context) error {
	exists, err := u.client.BucketExists(ctx, u.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", u.bucket, err)
	}
	if exists {
		return nil
	}
	if err := u.client.MakeBucket(ctx, u.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", u.bucket, err)
	}
	u.log.Info("✅ Created bucket", "bucket", u.bucket)
	return nil
}

// Publish uploads each file in order. Objects uploaded before a failure are
// left in place.
func (u *Uploader) Publish(ctx context.Context, paths []string) error {
	if err := u.EnsureBucket(ctx); err != nil {
		return err
	}
	for _, p := range paths {
		key := u.Key(p)
		info, err := u.client.FPutObject(ctx, u.bucket, key, p, minio.PutObjectOptions{
			ContentType: ContentType(p),
		})
		if err != nil {
			return fmt.Errorf("failed to upload %s: %w", p, err)
		}
		u.log.Info("✅ Uploaded", "bucket", u.bucket, "key", key, "bytes", info.Size)
	}
	return nil
}

func ContentType(name string) string {
	switch {
	case strings.HasSuffix(name, ".lz4"):
		return "application/x-lz4"
	case strings.HasSuffix(name, ".zst"):
		return "application/zstd"
	case strings.HasSuffix(name, ".yaml"):
		return "application/yaml"
	default:
		return "text/plain"
	}
}
