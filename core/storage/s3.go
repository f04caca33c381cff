package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"storage-kit/core/account"
	"storage-kit/core/httpx"
	"storage-kit/core/policy"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const amzStorageClass = "X-Amz-Storage-Class"

// minioAPI is the subset of the MinIO client used by the s3 driver.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	CopyObject(ctx context.Context, dst minio.CopyDestOptions, src minio.CopySrcOptions) (minio.UploadInfo, error)
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// s3Client stores blobs in an S3-compatible service (AWS S3, MinIO). Containers are buckets.
type s3Client struct {
	api    minioAPI
	region string
}

func newS3Client(cfg Config, acct *account.Account, pol policy.Policy) (*s3Client, error) {
	raw := acct.BlobEndpoints().Primary
	if raw == "" {
		return nil, fmt.Errorf("%w: account has no blob endpoint", account.ErrConfiguration)
	}

	// Minio expects endpoint without scheme
	secure := !strings.HasPrefix(raw, "http://")
	endpoint := strings.TrimPrefix(raw, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimRight(endpoint, "/")

	retries := pol.RetryCount
	if retries < 0 {
		retries = 0
	}

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:      credentials.NewStaticV4(acct.Name(), acct.Key(), ""),
		Secure:     secure,
		Region:     cfg.Region,
		Transport:  httpx.NewTransport(cfg.TimeoutSeconds),
		MaxRetries: retries + 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &s3Client{api: &minioClientWrapper{Client: minioClient}, region: cfg.Region}, nil
}

type minioClientWrapper struct {
	*minio.Client
}

// GetObject stats the object up front so a missing key fails here rather than on first Read.
func (c *minioClientWrapper) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	obj, err := c.Client.GetObject(ctx, bucketName, objectName, opts)
	if err != nil {
		return nil, err
	}
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, err
	}
	return obj, nil
}

func (c *s3Client) ContainerExists(ctx context.Context, container string) (bool, error) {
	exists, err := c.api.BucketExists(ctx, container)
	if err != nil {
		return false, fmt.Errorf("failed to check bucket %s: %w", container, err)
	}
	return exists, nil
}

func (c *s3Client) CreateContainer(ctx context.Context, container string) error {
	exists, err := c.ContainerExists(ctx, container)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := c.api.MakeBucket(ctx, container, minio.MakeBucketOptions{Region: c.region}); err != nil {
		switch minio.ToErrorResponse(err).Code {
		case "BucketAlreadyOwnedByYou", "BucketAlreadyExists":
			return nil
		}
		return fmt.Errorf("failed to create bucket %s: %w", container, err)
	}
	return nil
}

func (c *s3Client) Upload(ctx context.Context, container, key string, r io.Reader, opts PutOptions) error {
	putOpts := minio.PutObjectOptions{
		ContentType:  opts.ContentType,
		UserMetadata: opts.Metadata,
	}
	if _, err := c.api.PutObject(ctx, container, key, r, opts.Size, putOpts); err != nil {
		return fmt.Errorf("failed to upload %s/%s: %w", container, key, err)
	}
	return nil
}

func (c *s3Client) Download(ctx context.Context, container, key string) (io.ReadCloser, error) {
	body, err := c.api.GetObject(ctx, container, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, wrapS3Error(err, "download", container, key)
	}
	return body, nil
}

func (c *s3Client) Delete(ctx context.Context, container, key string) (bool, error) {
	if _, err := c.api.StatObject(ctx, container, key, minio.StatObjectOptions{}); err != nil {
		if isS3NotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s/%s: %w", container, key, err)
	}
	if err := c.api.RemoveObject(ctx, container, key, minio.RemoveObjectOptions{}); err != nil {
		return false, fmt.Errorf("failed to delete %s/%s: %w", container, key, err)
	}
	return true, nil
}

// SetTier rewrites the object onto itself with a new storage class.
func (c *s3Client) SetTier(ctx context.Context, container, key string, tier Tier) error {
	class, ok := s3StorageClass(tier)
	if !ok {
		return fmt.Errorf("tier %s cannot be set", tier)
	}

	info, err := c.api.StatObject(ctx, container, key, minio.StatObjectOptions{})
	if err != nil {
		return wrapS3Error(err, "set tier of", container, key)
	}

	meta := make(map[string]string, len(info.UserMetadata)+1)
	for k, v := range info.UserMetadata {
		meta[k] = v
	}
	meta[amzStorageClass] = class

	dst := minio.CopyDestOptions{
		Bucket:          container,
		Object:          key,
		UserMetadata:    meta,
		ReplaceMetadata: true,
		ContentType:     info.ContentType,
	}
	src := minio.CopySrcOptions{Bucket: container, Object: key}
	if _, err := c.api.CopyObject(ctx, dst, src); err != nil {
		return wrapS3Error(err, "set tier of", container, key)
	}
	return nil
}

func (c *s3Client) Properties(ctx context.Context, container, key string) (*Properties, error) {
	info, err := c.api.StatObject(ctx, container, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, wrapS3Error(err, "fetch properties of", container, key)
	}
	props := &Properties{
		Key:          key,
		Size:         info.Size,
		ContentType:  info.ContentType,
		ETag:         info.ETag,
		LastModified: info.LastModified,
		Tier:         tierFromS3(info.StorageClass),
	}
	if len(info.UserMetadata) > 0 {
		props.Metadata = make(map[string]string, len(info.UserMetadata))
		for k, v := range info.UserMetadata {
			props.Metadata[k] = v
		}
	}
	return props, nil
}

func (c *s3Client) Exists(ctx context.Context, container, key string) (bool, error) {
	if _, err := c.api.StatObject(ctx, container, key, minio.StatObjectOptions{}); err != nil {
		if isS3NotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s/%s: %w", container, key, err)
	}
	return true, nil
}

func (c *s3Client) List(ctx context.Context, container, prefix string) ([]string, error) {
	keys := []string{}
	opts := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}
	for obj := range c.api.ListObjects(ctx, container, opts) {
		if obj.Err != nil {
			if isS3NotFound(obj.Err) {
				return []string{}, nil
			}
			return nil, fmt.Errorf("failed to list %s/%s: %w", container, prefix, obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

func wrapS3Error(err error, op, container, key string) error {
	if isS3NotFound(err) {
		return fmt.Errorf("%s %s/%s: %w", op, container, key, ErrNotFound)
	}
	return fmt.Errorf("failed to %s %s/%s: %w", op, container, key, err)
}

func isS3NotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case minio.NoSuchKey, minio.NoSuchBucket, "NotFound":
		return true
	}
	return false
}

func s3StorageClass(t Tier) (string, bool) {
	switch t {
	case TierHot:
		return "STANDARD", true
	case TierCool:
		return "STANDARD_IA", true
	case TierArchive:
		return "GLACIER", true
	default:
		return "", false
	}
}

func tierFromS3(class string) Tier {
	switch strings.ToUpper(class) {
	case "", "STANDARD", "REDUCED_REDUNDANCY":
		return TierHot
	case "STANDARD_IA", "ONEZONE_IA", "INTELLIGENT_TIERING":
		return TierCool
	case "GLACIER", "GLACIER_IR", "DEEP_ARCHIVE":
		return TierArchive
	default:
		return TierUnspecified
	}
}
