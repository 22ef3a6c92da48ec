package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"leaseintake/internal/config"
	"leaseintake/internal/logger"
)

// maxPresignExpiry is the S3 limit for presigned URLs.
const maxPresignExpiry = 7 * 24 * time.Hour

// objectAPI is the subset of *minio.Client used after start-up.
type objectAPI interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
}

// minioStorage implements Storage on an S3-compatible backend (MinIO, AWS S3, etc.).
// It is safe for concurrent use by multiple goroutines.
type minioStorage struct {
	client        objectAPI
	bucket        string
	publicBaseURL string
	presignExpiry time.Duration
	now           func() time.Time
}

// NewMinIO creates the storage client, ensures the bucket exists and, when a
// public base URL is configured, grants anonymous read on the bucket so text
// extraction can fetch files by URL.
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

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	if cfg.PublicBaseURL != "" {
		if err := cli.SetBucketPolicy(ctx, cfg.Bucket, publicReadPolicy(cfg.Bucket)); err != nil {
			// Files stay reachable if the bucket is already public or fronted by a CDN.
			logger.WithContext(ctx).Warn("storage.bucket_policy_failed", "bucket", cfg.Bucket, "error", err)
		}
	}

	return newMinioStorage(cli, cfg), nil
}

func newMinioStorage(cli objectAPI, cfg config.MinIOConfig) *minioStorage {
	expiry := cfg.PresignExpiry
	if expiry <= 0 || expiry > maxPresignExpiry {
		expiry = maxPresignExpiry
	}
	return &minioStorage{
		client:        cli,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		presignExpiry: expiry,
		now:           time.Now,
	}
}

// publicReadPolicy allows anonymous GetObject on every key of bucket.
func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, bucket)
}

// Put streams r to the bucket; nothing touches local disk.
func (m *minioStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	putOpts := minio.PutObjectOptions{
		ContentType:  opt.ContentType,
		UserMetadata: opt.Metadata,
	}
	if opt.FileName != "" {
		putOpts.ContentDisposition = mime.FormatMediaType("inline", map[string]string{"filename": opt.FileName})
	}
	info, err := m.client.PutObject(ctx, m.bucket, key, r, opt.Size, putOpts)
	if err != nil {
		return ObjectInfo{}, err
	}
	return ObjectInfo{
		Key:          key,
		Size:         info.Size,
		ETag:         info.ETag,
		ContentType:  opt.ContentType,
		LastModified: m.now(), // UploadInfo carries no LastModified for single-part uploads
		Metadata:     opt.Metadata,
	}, nil
}

// ObjectURL prefers the configured public base URL; otherwise it presigns for the configured expiry.
func (m *minioStorage) ObjectURL(ctx context.Context, key string) (string, error) {
	if m.publicBaseURL != "" {
		return PublicURL(m.publicBaseURL, m.bucket, key), nil
	}
	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, m.presignExpiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return u.String(), nil
}

// PublicURL joins base, bucket and key, escaping each key segment.
func PublicURL(base, bucket, key string) string {
	segs := strings.Split(key, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(bucket) + "/" + strings.Join(segs, "/")
}
