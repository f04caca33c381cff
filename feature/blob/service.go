package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"storage-kit/core/policy"
	"storage-kit/core/storage"
	"storage-kit/core/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "storage-kit/feature/blob"

// UploadOptions controls how Upload writes an object.
type UploadOptions struct {
	// Tier is applied with a second call after the upload. TierUnspecified keeps the account default.
	Tier storage.Tier
	// DeleteExisting removes the current object before uploading.
	DeleteExisting bool
	// ContentType is stored with the object.
	ContentType string
	// Metadata is stored as user metadata.
	Metadata map[string]string
}

// Service is the object store facade bound to one account.
type Service struct {
	client storage.Client
	policy policy.Policy
	logger *zap.Logger
	tracer trace.Tracer
}

// NewService creates a new blob service.
func NewService(client storage.Client, pol policy.Policy, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		policy: pol,
		logger: logger,
		tracer: telemetry.Tracer(tracerName),
	}
}

// begin normalises the container, bounds ctx with the policy timeout and opens a span.
func (s *Service) begin(ctx context.Context, op, container, key string) (context.Context, string, func(error)) {
	container = strings.ToLower(container)
	ctx, cancel := s.policy.WithTimeout(ctx)
	ctx, span := s.tracer.Start(ctx, "blob."+op, trace.WithAttributes(
		attribute.String("blob.container", container),
		attribute.String("blob.key", key),
	))

	return ctx, container, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.logger.Error("Blob operation failed",
				zap.String("op", op),
				zap.String("container", container),
				zap.String("key", key),
				zap.Error(err),
			)
		}
		span.End()
		cancel()
	}
}

// Upload writes r to container/key, creating the container when missing.
func (s *Service) Upload(ctx context.Context, container, key string, r io.Reader, opts UploadOptions) (err error) {
	ctx, container, end := s.begin(ctx, "upload", container, key)
	defer func() { end(err) }()

	if err = s.client.CreateContainer(ctx, container); err != nil {
		return err
	}
	if opts.DeleteExisting {
		if _, err = s.client.Delete(ctx, container, key); err != nil {
			return err
		}
	}

	size := int64(-1)
	if seeker, ok := r.(io.Seeker); ok {
		if size, err = seeker.Seek(0, io.SeekEnd); err != nil {
			return fmt.Errorf("failed to measure payload: %w", err)
		}
		if _, err = seeker.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("failed to rewind payload: %w", err)
		}
	}

	err = s.client.Upload(ctx, container, key, r, storage.PutOptions{
		ContentType: opts.ContentType,
		Size:        size,
		Metadata:    opts.Metadata,
	})
	if err != nil {
		return err
	}

	if opts.Tier != storage.TierUnspecified {
		if err = s.client.SetTier(ctx, container, key, opts.Tier); err != nil {
			return err
		}
	}

	s.logger.Debug("Blob uploaded",
		zap.String("container", container),
		zap.String("key", key),
		zap.Int64("size", size),
		zap.Stringer("tier", opts.Tier),
	)
	return nil
}

// UploadBytes uploads data as-is.
func (s *Service) UploadBytes(ctx context.Context, container, key string, data []byte, opts UploadOptions) error {
	return s.Upload(ctx, container, key, bytes.NewReader(data), opts)
}

// UploadText uploads text as UTF-8.
func (s *Service) UploadText(ctx context.Context, container, key, text string, opts UploadOptions) error {
	if opts.ContentType == "" {
		opts.ContentType = "text/plain; charset=utf-8"
	}
	return s.Upload(ctx, container, key, strings.NewReader(text), opts)
}

// Download returns the full content of container/key.
func (s *Service) Download(ctx context.Context, container, key string) (data []byte, err error) {
	ctx, container, end := s.begin(ctx, "download", container, key)
	defer func() { end(err) }()

	rc, err := s.client.Download(ctx, container, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err = io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", container, key, err)
	}
	return data, nil
}

// DownloadText returns the content of container/key as a string.
func (s *Service) DownloadText(ctx context.Context, container, key string) (string, error) {
	data, err := s.Download(ctx, container, key)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Delete removes container/key and reports whether it existed.
func (s *Service) Delete(ctx context.Context, container, key string) (deleted bool, err error) {
	ctx, container, end := s.begin(ctx, "delete", container, key)
	defer func() { end(err) }()

	return s.client.Delete(ctx, container, key)
}

// SetTier moves container/key to tier. TierUnspecified leaves the object untouched.
func (s *Service) SetTier(ctx context.Context, container, key string, tier storage.Tier) (err error) {
	if tier == storage.TierUnspecified {
		return nil
	}
	ctx, container, end := s.begin(ctx, "set_tier", container, key)
	defer func() { end(err) }()

	return s.client.SetTier(ctx, container, key, tier)
}

// Properties returns the object properties. Missing objects yield storage.ErrNotFound.
func (s *Service) Properties(ctx context.Context, container, key string) (props *storage.Properties, err error) {
	ctx, container, end := s.begin(ctx, "properties", container, key)
	defer func() { end(err) }()

	return s.client.Properties(ctx, container, key)
}

// Exists reports whether container/key exists.
func (s *Service) Exists(ctx context.Context, container, key string) (ok bool, err error) {
	ctx, container, end := s.begin(ctx, "exists", container, key)
	defer func() { end(err) }()

	return s.client.Exists(ctx, container, key)
}

// ContainerExists reports whether the container exists.
func (s *Service) ContainerExists(ctx context.Context, container string) (ok bool, err error) {
	ctx, container, end := s.begin(ctx, "container_exists", container, "")
	defer func() { end(err) }()

	return s.client.ContainerExists(ctx, container)
}

// List returns every key under prefix. No match returns an empty slice.
func (s *Service) List(ctx context.Context, container, prefix string) (keys []string, err error) {
	ctx, container, end := s.begin(ctx, "list", container, prefix)
	defer func() { end(err) }()

	keys, err = s.client.List(ctx, container, prefix)
	if err != nil {
		return nil, err
	}
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}
