package queue_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"storage-kit/core/policy"
	corequeue "storage-kit/core/queue"
	"storage-kit/core/queue/mocks"
	"storage-kit/feature/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dur(d time.Duration) *time.Duration { return &d }

func TestService_Enqueue(t *testing.T) {
	ctx := context.Background()
	mem := corequeue.NewMemoryClient()
	svc := queue.NewService(mem, policy.Default(), zap.NewNop())

	before := time.Now().UTC()
	r, err := svc.Enqueue(ctx, "Jobs", "hello", queue.EnqueueOptions{})
	require.NoError(t, err)
	assert.WithinDuration(t, before.Add(corequeue.DefaultTTL), r.ExpiresAt, 5*time.Second)

	r, err = svc.Enqueue(ctx, "jobs", "forever", queue.EnqueueOptions{TTL: dur(corequeue.NeverExpire)})
	require.NoError(t, err)
	assert.Equal(t, 9999, r.ExpiresAt.Year())

	exists, err := mem.QueueExists(ctx, "jobs")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Len(t, mem.Messages("jobs"), 2)

	_, err = svc.Enqueue(ctx, "jobs", "late", queue.EnqueueOptions{InitialDelay: dur(8 * 24 * time.Hour)})
	assert.ErrorIs(t, err, corequeue.ErrInvalidArgument)
}

func TestService_EnqueueForwardsOptions(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	svc := queue.NewService(client, policy.Default(), zap.NewNop())

	ttl := dur(time.Hour)
	delay := dur(time.Minute)
	client.On("CreateQueue", mock.Anything, "orders").Return(nil).Once()
	client.On("Enqueue", mock.Anything, "orders", "msg", ttl, delay).
		Return(&corequeue.Receipt{MessageID: "id-1"}, nil).Once()

	r, err := svc.Enqueue(ctx, "ORDERS", "msg", queue.EnqueueOptions{TTL: ttl, InitialDelay: delay})
	require.NoError(t, err)
	assert.Equal(t, "id-1", r.MessageID)
	client.AssertExpectations(t)
}

func TestService_EnqueueCreateFails(t *testing.T) {
	client := new(mocks.Client)
	svc := queue.NewService(client, policy.Default(), zap.NewNop())

	boom := errors.New("boom")
	client.On("CreateQueue", mock.Anything, "orders").Return(boom)

	_, err := svc.Enqueue(context.Background(), "orders", "msg", queue.EnqueueOptions{})
	assert.ErrorIs(t, err, boom)
	client.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
