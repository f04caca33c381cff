package storage

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

type memoryObject struct {
	props Properties
	data  []byte
}

// MemoryClient implements Client backed by process memory. Intended for tests and local runs.
type MemoryClient struct {
	mu         sync.RWMutex
	containers map[string]map[string]memoryObject
}

// NewMemoryClient returns an empty in-memory store.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{containers: make(map[string]map[string]memoryObject)}
}

func (m *MemoryClient) ContainerExists(_ context.Context, container string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.containers[container]
	return ok, nil
}

func (m *MemoryClient) CreateContainer(_ context.Context, container string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.containers[container]; !ok {
		m.containers[container] = make(map[string]memoryObject)
	}
	return nil
}

func (m *MemoryClient) Upload(ctx context.Context, container, key string, r io.Reader, opts PutOptions) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read payload for %s/%s: %w", container, key, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	objs, ok := m.containers[container]
	if !ok {
		return fmt.Errorf("upload %s/%s: container %w", container, key, ErrNotFound)
	}

	sum := md5.Sum(b)
	now := time.Now().UTC()
	created := now
	if prev, ok := objs[key]; ok {
		created = prev.props.CreatedAt
	}
	objs[key] = memoryObject{
		data: b,
		props: Properties{
			Key:          key,
			Size:         int64(len(b)),
			ContentType:  opts.ContentType,
			ETag:         hex.EncodeToString(sum[:]),
			LastModified: now,
			CreatedAt:    created,
			Tier:         TierHot,
			Metadata:     cloneMetadata(opts.Metadata),
		},
	}
	return nil
}

func (m *MemoryClient) Download(_ context.Context, container, key string) (io.ReadCloser, error) {
	obj, err := m.lookup(container, key)
	if err != nil {
		return nil, fmt.Errorf("download %s/%s: %w", container, key, err)
	}
	dataCopy := make([]byte, len(obj.data))
	copy(dataCopy, obj.data)
	return io.NopCloser(bytes.NewReader(dataCopy)), nil
}

func (m *MemoryClient) Delete(_ context.Context, container, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	objs, ok := m.containers[container]
	if !ok {
		return false, nil
	}
	_, ok = objs[key]
	if ok {
		delete(objs, key)
	}
	return ok, nil
}

func (m *MemoryClient) SetTier(_ context.Context, container, key string, tier Tier) error {
	if tier == TierUnspecified {
		return fmt.Errorf("tier %s cannot be set", tier)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	objs, ok := m.containers[container]
	if !ok {
		return fmt.Errorf("set tier of %s/%s: %w", container, key, ErrNotFound)
	}
	obj, ok := objs[key]
	if !ok {
		return fmt.Errorf("set tier of %s/%s: %w", container, key, ErrNotFound)
	}
	obj.props.Tier = tier
	objs[key] = obj
	return nil
}

func (m *MemoryClient) Properties(_ context.Context, container, key string) (*Properties, error) {
	obj, err := m.lookup(container, key)
	if err != nil {
		return nil, fmt.Errorf("fetch properties of %s/%s: %w", container, key, err)
	}
	props := obj.props
	props.Metadata = cloneMetadata(props.Metadata)
	return &props, nil
}

func (m *MemoryClient) Exists(_ context.Context, container, key string) (bool, error) {
	_, err := m.lookup(container, key)
	return err == nil, nil
}

func (m *MemoryClient) List(_ context.Context, container, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := []string{}
	for k := range m.containers[container] {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryClient) lookup(container, key string) (memoryObject, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	objs, ok := m.containers[container]
	if !ok {
		return memoryObject{}, ErrNotFound
	}
	obj, ok := objs[key]
	if !ok {
		return memoryObject{}, ErrNotFound
	}
	return obj, nil
}

func cloneMetadata(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
