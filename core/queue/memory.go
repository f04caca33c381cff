package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// maxExpiry is what the service reports for messages that never expire.
var maxExpiry = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

// Message is a queued message held by MemoryClient.
type Message struct {
	Receipt
	Text string
}

// MemoryClient implements Client in process memory, validating TTL and delay the way the service does.
type MemoryClient struct {
	mu     sync.Mutex
	queues map[string][]Message
	now    func() time.Time
}

// NewMemoryClient returns an empty in-memory queue store.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		queues: make(map[string][]Message),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryClient) QueueExists(_ context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.queues[name]
	return ok, nil
}

func (m *MemoryClient) CreateQueue(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.queues[name]; !ok {
		m.queues[name] = nil
	}
	return nil
}

func (m *MemoryClient) Enqueue(_ context.Context, name, message string, ttl, delay *time.Duration) (*Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.queues[name]; !ok {
		return nil, fmt.Errorf("enqueue to %s: %w", name, ErrNotFound)
	}

	now := m.now()
	life := DefaultTTL
	if ttl != nil {
		life = *ttl
	}
	var wait time.Duration
	if delay != nil {
		wait = *delay
	}

	switch {
	case life == 0 || (life < 0 && life != NeverExpire):
		return nil, fmt.Errorf("ttl %s: %w", life, ErrInvalidArgument)
	case wait < 0 || wait > MaxVisibilityDelay:
		return nil, fmt.Errorf("delay %s: %w", wait, ErrInvalidArgument)
	case life > 0 && wait >= life:
		return nil, fmt.Errorf("delay %s must be shorter than ttl %s: %w", wait, life, ErrInvalidArgument)
	}

	expires := maxExpiry
	if life > 0 {
		expires = now.Add(life)
	}
	msg := Message{
		Receipt: Receipt{
			MessageID:     uuid.NewString(),
			InsertedAt:    now,
			ExpiresAt:     expires,
			NextVisibleAt: now.Add(wait),
		},
		Text: message,
	}
	m.queues[name] = append(m.queues[name], msg)

	r := msg.Receipt
	return &r, nil
}

// Messages returns a copy of everything enqueued to name, oldest first.
func (m *MemoryClient) Messages(name string) []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.queues[name]))
	copy(out, m.queues[name])
	return out
}
