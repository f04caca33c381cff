package mocks

import (
	"context"
	"io"

	"storage-kit/core/storage"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of storage.Client
type Client struct {
	mock.Mock
}

func (m *Client) ContainerExists(ctx context.Context, container string) (bool, error) {
	args := m.Called(ctx, container)
	return args.Bool(0), args.Error(1)
}

func (m *Client) CreateContainer(ctx context.Context, container string) error {
	args := m.Called(ctx, container)
	return args.Error(0)
}

func (m *Client) Upload(ctx context.Context, container, key string, r io.Reader, opts storage.PutOptions) error {
	args := m.Called(ctx, container, key, r, opts)
	return args.Error(0)
}

func (m *Client) Download(ctx context.Context, container, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, container, key)
	if rc, ok := args.Get(0).(io.ReadCloser); ok {
		return rc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) Delete(ctx context.Context, container, key string) (bool, error) {
	args := m.Called(ctx, container, key)
	return args.Bool(0), args.Error(1)
}

func (m *Client) SetTier(ctx context.Context, container, key string, tier storage.Tier) error {
	args := m.Called(ctx, container, key, tier)
	return args.Error(0)
}

func (m *Client) Properties(ctx context.Context, container, key string) (*storage.Properties, error) {
	args := m.Called(ctx, container, key)
	if props, ok := args.Get(0).(*storage.Properties); ok {
		return props, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) Exists(ctx context.Context, container, key string) (bool, error) {
	args := m.Called(ctx, container, key)
	return args.Bool(0), args.Error(1)
}

func (m *Client) List(ctx context.Context, container, prefix string) ([]string, error) {
	args := m.Called(ctx, container, prefix)
	if keys, ok := args.Get(0).([]string); ok {
		return keys, args.Error(1)
	}
	return nil, args.Error(1)
}
