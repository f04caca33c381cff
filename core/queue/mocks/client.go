package mocks

import (
	"context"
	"time"

	"storage-kit/core/queue"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of queue.Client.
type Client struct {
	mock.Mock
}

// QueueExists mocks the QueueExists method.
func (m *Client) QueueExists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// CreateQueue mocks the CreateQueue method.
func (m *Client) CreateQueue(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// Enqueue mocks the Enqueue method.
func (m *Client) Enqueue(ctx context.Context, name, message string, ttl, delay *time.Duration) (*queue.Receipt, error) {
	args := m.Called(ctx, name, message, ttl, delay)
	if r, ok := args.Get(0).(*queue.Receipt); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
