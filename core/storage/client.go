package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"storage-kit/core/account"
	"storage-kit/core/policy"
)

// ErrNotFound is returned when a container or object is missing on a read path.
var ErrNotFound = errors.New("not found")

// Drivers accepted by Config.Driver.
const (
	DriverAzure  = "azure"
	DriverS3     = "s3"
	DriverMemory = "memory"
)

// Client defines the blob operations a storage driver must provide.
type Client interface {
	// ContainerExists checks if a container exists.
	ContainerExists(ctx context.Context, container string) (bool, error)
	// CreateContainer creates a container, succeeding if it is already there.
	CreateContainer(ctx context.Context, container string) error
	// Upload writes an object, replacing any previous content.
	Upload(ctx context.Context, container, key string, r io.Reader, opts PutOptions) error
	// Download streams an object.
	Download(ctx context.Context, container, key string) (io.ReadCloser, error)
	// Delete removes an object if present and reports whether it existed.
	Delete(ctx context.Context, container, key string) (bool, error)
	// SetTier moves an object to another access tier.
	SetTier(ctx context.Context, container, key string, tier Tier) error
	// Properties fetches object attributes.
	Properties(ctx context.Context, container, key string) (*Properties, error)
	// Exists checks if an object exists.
	Exists(ctx context.Context, container, key string) (bool, error)
	// List returns the keys starting with prefix, at any depth.
	List(ctx context.Context, container, prefix string) ([]string, error)
}

// PutOptions carries optional upload attributes.
type PutOptions struct {
	// ContentType is stored with the object when set.
	ContentType string
	// Size is the payload length, or -1 when unknown.
	Size int64
	// Metadata is stored as user metadata.
	Metadata map[string]string
}

// Properties describes a stored object.
type Properties struct {
	Key          string            `json:"key"`
	Size         int64             `json:"size"`
	ContentType  string            `json:"content_type,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	LastModified time.Time         `json:"last_modified"`
	CreatedAt    time.Time         `json:"created_at,omitempty"`
	Tier         Tier              `json:"tier"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// NewClient creates the storage driver selected by cfg for the given account.
func NewClient(cfg Config, acct *account.Account, pol policy.Policy) (Client, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", DriverAzure:
		c, err := newAzureClient(cfg, acct, pol)
		if err != nil {
			return nil, err
		}
		return c, nil
	case DriverS3:
		c, err := newS3Client(cfg, acct, pol)
		if err != nil {
			return nil, err
		}
		return c, nil
	case DriverMemory:
		return NewMemoryClient(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
