package queue

import (
	"context"
	"strings"
	"time"

	"storage-kit/core/policy"
	"storage-kit/core/queue"
	"storage-kit/core/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// EnqueueOptions controls message lifetime.
type EnqueueOptions struct {
	// TTL defaults to queue.DefaultTTL when nil. queue.NeverExpire keeps the message forever.
	TTL *time.Duration
	// InitialDelay hides the message for the given duration. Nil makes it visible immediately.
	InitialDelay *time.Duration
}

// Service is the queue facade bound to one account.
type Service struct {
	client queue.Client
	policy policy.Policy
	logger *zap.Logger
	tracer trace.Tracer
}

// NewService creates a new queue service.
func NewService(client queue.Client, pol policy.Policy, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		policy: pol,
		logger: logger,
		tracer: telemetry.Tracer("storage-kit/feature/queue"),
	}
}

// Enqueue adds message to the named queue, creating the queue when missing.
func (s *Service) Enqueue(ctx context.Context, name, message string, opts EnqueueOptions) (receipt *queue.Receipt, err error) {
	name = strings.ToLower(name)
	ctx, cancel := s.policy.WithTimeout(ctx)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "queue.enqueue", trace.WithAttributes(attribute.String("queue.name", name)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.logger.Error("Enqueue failed", zap.String("queue", name), zap.Error(err))
		}
		span.End()
	}()

	if err = s.client.CreateQueue(ctx, name); err != nil {
		return nil, err
	}
	receipt, err = s.client.Enqueue(ctx, name, message, opts.TTL, opts.InitialDelay)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Message enqueued",
		zap.String("queue", name),
		zap.String("message_id", receipt.MessageID),
		zap.Time("expires_at", receipt.ExpiresAt),
	)
	return receipt, nil
}
