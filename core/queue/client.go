package queue

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"storage-kit/core/account"
	"storage-kit/core/policy"
)

var (
	// ErrNotFound is returned when a queue does not exist.
	ErrNotFound = errors.New("queue not found")
	// ErrInvalidArgument is returned when the service rejects a TTL or visibility delay.
	ErrInvalidArgument = errors.New("invalid argument")
)

const (
	// NeverExpire as a TTL keeps the message until it is deleted.
	NeverExpire = -1 * time.Second
	// DefaultTTL is applied by the service when no TTL is sent.
	DefaultTTL = 7 * 24 * time.Hour
	// MaxVisibilityDelay is the largest initial visibility delay the service accepts.
	MaxVisibilityDelay = 7 * 24 * time.Hour
)

// Drivers accepted by Config.Driver.
const (
	DriverAzure  = "azure"
	DriverMemory = "memory"
)

// Client defines the queue operations a driver must provide.
type Client interface {
	// QueueExists checks if a queue exists.
	QueueExists(ctx context.Context, queue string) (bool, error)
	// CreateQueue creates a queue, succeeding if it is already there.
	CreateQueue(ctx context.Context, queue string) error
	// Enqueue adds a message. A nil ttl or delay leaves the service default in place.
	Enqueue(ctx context.Context, queue, message string, ttl, delay *time.Duration) (*Receipt, error)
}

// Receipt describes an enqueued message.
type Receipt struct {
	MessageID     string    `json:"message_id"`
	InsertedAt    time.Time `json:"inserted_at"`
	ExpiresAt     time.Time `json:"expires_at"`
	NextVisibleAt time.Time `json:"next_visible_at"`
}

// Config holds configuration for the queue provider.
type Config struct {
	// Driver selects the backend: azure or memory.
	Driver string `mapstructure:"driver" default:"azure"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// NewClient creates the queue driver selected by cfg for the given account.
func NewClient(cfg Config, acct *account.Account, pol policy.Policy) (Client, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", DriverAzure:
		c, err := newAzureClient(cfg, acct, pol)
		if err != nil {
			return nil, err
		}
		return c, nil
	case DriverMemory:
		return NewMemoryClient(), nil
	default:
		return nil, fmt.Errorf("unknown queue driver %q", cfg.Driver)
	}
}

// seconds converts a duration to the whole seconds the service expects. Only NeverExpire maps
// to -1; any other negative value stays below -1 so the service rejects it.
func seconds(d *time.Duration) *int32 {
	if d == nil {
		return nil
	}
	if *d == NeverExpire {
		v := int32(-1)
		return &v
	}
	secs := int64(d.Round(time.Second) / time.Second)
	switch {
	case secs > math.MaxInt32:
		secs = math.MaxInt32
	case secs < math.MinInt32:
		secs = math.MinInt32
	case *d < 0 && secs >= -1:
		// must not round onto NeverExpire
		secs = -2
	}
	v := int32(secs)
	return &v
}
