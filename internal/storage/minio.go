package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"doccms/internal/config"
)

const codeNoSuchKey = "NoSuchKey"

// minioStorage implements the Storage interface using an S3-compatible backend (MinIO, AWS S3, etc.).
// Documents are stored as objects named prefix+name.
// It is safe for concurrent use by multiple goroutines.
type minioStorage struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewMinIO creates a new S3-compatible storage client backed by MinIO.
// It validates connectivity and ensures the bucket exists (creates it if missing).
func NewMinIO(cfg config.MinIOConfig) (Storage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	tr, err := minio.DefaultTransport(cfg.UseSSL)
	if err != nil {
		return nil, fmt.Errorf("create minio transport: %w", err)
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Transport: otelhttp.NewTransport(tr),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ms := &minioStorage{client: cli, bucket: cfg.Bucket, prefix: cfg.Prefix}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ensure bucket exists.
	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return ms, nil
}

func (m *minioStorage) key(name string) string {
	return m.prefix + name
}

// List returns the objects directly under the prefix. Nested keys are not documents.
func (m *minioStorage) List(ctx context.Context) ([]ObjectInfo, error) {
	var out []ObjectInfo
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Prefix: m.prefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects: %w", obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, m.prefix)
		if name == "" || strings.Contains(name, "/") {
			continue
		}
		out = append(out, ObjectInfo{
			Key:          name,
			Size:         obj.Size,
			ContentType:  obj.ContentType,
			LastModified: obj.LastModified,
		})
	}
	return out, nil
}

// Put uploads an object using streaming I/O only (no local disk).
// A single PutObject replaces the object atomically.
func (m *minioStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	info, err := m.client.PutObject(ctx, m.bucket, m.key(key), r, opt.Size, minio.PutObjectOptions{
		ContentType: opt.ContentType,
	})
	if err != nil {
		return ObjectInfo{}, err
	}
	return ObjectInfo{
		Key:          key,
		Size:         info.Size,
		ContentType:  opt.ContentType,
		LastModified: time.Now(), // MinIO PutObjectInfo doesn't return LastModified
	}, nil
}

// Get downloads an object content as a ReadCloser along with basic info.
func (m *minioStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, m.key(key), minio.GetObjectOptions{})
	if err != nil {
		return nil, ObjectInfo{}, translate(err)
	}
	// Fetch stat to populate info; avoid reading content into memory.
	st, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, ObjectInfo{}, translate(err)
	}
	return obj, ObjectInfo{
		Key:          key,
		Size:         st.Size,
		ContentType:  st.ContentType,
		LastModified: st.LastModified,
	}, nil
}

// Touch uploads an empty object only when the key is absent.
func (m *minioStorage) Touch(ctx context.Context, key string) error {
	_, err := m.client.StatObject(ctx, m.bucket, m.key(key), minio.StatObjectOptions{})
	if err == nil {
		return nil
	}
	if err := translate(err); !errors.Is(err, ErrObjectNotFound) {
		return err
	}
	_, err = m.client.PutObject(ctx, m.bucket, m.key(key), bytes.NewReader(nil), 0, minio.PutObjectOptions{})
	return err
}

// Delete removes an object by key. S3 deletes are silent for missing keys,
// so the object is stat'ed first.
func (m *minioStorage) Delete(ctx context.Context, key string) error {
	if _, err := m.client.StatObject(ctx, m.bucket, m.key(key), minio.StatObjectOptions{}); err != nil {
		return translate(err)
	}
	return m.client.RemoveObject(ctx, m.bucket, m.key(key), minio.RemoveObjectOptions{})
}

func translate(err error) error {
	if minio.ToErrorResponse(err).Code == codeNoSuchKey {
		return ErrObjectNotFound
	}
	return err
}
