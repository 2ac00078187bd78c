package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/velo-paris-dashboard/internal/domain"
	"github.com/velo-paris-dashboard/internal/domain/repository"
)

const (
	defaultBlockTimeout   = time.Second
	defaultPendingMinIdle = 30 * time.Second
	readBatchSize         = 10

	// XADD MAXLEN ~: стрим обрезается примерно до этой длины
	streamMaxLen = 1000
)

type streamRepository struct {
	client         *redis.Client
	logger         *zap.Logger
	blockTimeout   time.Duration
	pendingMinIdle time.Duration
}

type StreamOption func(*streamRepository)

// WithPendingMinIdle - сколько сообщение должно провисеть неподтверждённым, чтобы его забрал другой consumer;
// d <= 0 оставляет значение по умолчанию
func WithPendingMinIdle(d time.Duration) StreamOption {
	return func(r *streamRepository) {
		if d > 0 {
			r.pendingMinIdle = d
		}
	}
}

// NewStreamRepository создает StreamRepository; blockTimeout <= 0 - одна секунда
func NewStreamRepository(client *redis.Client, blockTimeout time.Duration, logger *zap.Logger, opts ...StreamOption) repository.StreamRepository {
	if blockTimeout <= 0 {
		blockTimeout = defaultBlockTimeout
	}
	r := &streamRepository{
		client:         client,
		logger:         logger,
		blockTimeout:   blockTimeout,
		pendingMinIdle: defaultPendingMinIdle,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateConsumerGroup создаёт consumer group для стрима
func (r *streamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	// "$" - только новые сообщения; MKSTREAM создаст стрим при необходимости
	err := r.client.XGroupCreateMkStream(ctx, stream, group, "$").Err()
	if err != nil {
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			r.logger.Debug("Consumer group already exists",
				zap.String("stream", stream),
				zap.String("group", group))
			return nil
		}
		r.logger.Error("Failed to create consumer group",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	r.logger.Info("Consumer group created",
		zap.String("stream", stream),
		zap.String("group", group))
	return nil
}

// ConsumeStream читает новые сообщения стрима; канал закрывается при отмене контекста.
// Сначала и затем при каждом пустом чтении забирает себе pending сообщения,
// которые никто не подтвердил дольше pendingMinIdle.
func (r *streamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	msgChan := make(chan domain.StreamMessage, readBatchSize)

	go func() {
		defer close(msgChan)

		if !r.claimPending(ctx, msgChan, stream, group, consumer) {
			return
		}

		for {
			if ctx.Err() != nil {
				r.logger.Info("Stream consumer stopped",
					zap.String("stream", stream),
					zap.String("consumer", consumer))
				return
			}

			result, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
				Group:    group,
				Consumer: consumer,
				Streams:  []string{stream, ">"},
				Count:    readBatchSize,
				Block:    r.blockTimeout,
			}).Result()
			if err != nil {
				if err == redis.Nil {
					if !r.claimPending(ctx, msgChan, stream, group, consumer) {
						return
					}
					continue
				}
				if ctx.Err() != nil {
					return
				}
				r.logger.Error("Failed to read from stream",
					zap.String("stream", stream),
					zap.Error(err))
				select {
				case <-time.After(time.Second):
				case <-ctx.Done():
					return
				}
				continue
			}

			for _, s := range result {
				if !r.deliver(ctx, msgChan, stream, group, s.Messages) {
					return
				}
			}
		}
	}()

	return msgChan, nil
}

// claimPending - XAUTOCLAIM по всему pending списку группы; false - контекст отменён
func (r *streamRepository) claimPending(ctx context.Context, out chan<- domain.StreamMessage, stream, group, consumer string) bool {
	start := "0-0"
	for {
		messages, next, err := r.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   stream,
			Group:    group,
			Consumer: consumer,
			MinIdle:  r.pendingMinIdle,
			Start:    start,
			Count:    readBatchSize,
		}).Result()
		if err != nil {
			if ctx.Err() != nil {
				return false
			}
			r.logger.Warn("Failed to claim pending messages",
				zap.String("stream", stream),
				zap.Error(err))
			return true
		}

		if len(messages) > 0 {
			r.logger.Info("Claimed pending messages",
				zap.String("stream", stream),
				zap.Int("count", len(messages)))
		}
		if !r.deliver(ctx, out, stream, group, messages) {
			return false
		}
		if next == "0-0" || next == "" {
			return true
		}
		start = next
	}
}

func (r *streamRepository) deliver(ctx context.Context, out chan<- domain.StreamMessage, stream, group string, messages []redis.XMessage) bool {
	for _, msg := range messages {
		data, ok := msg.Values["data"].(string)
		if !ok {
			r.logger.Warn("Message does not contain 'data' field",
				zap.String("message_id", msg.ID))
			// иначе оно навсегда останется в pending
			_ = r.client.XAck(ctx, stream, group, msg.ID).Err()
			continue
		}

		select {
		case out <- domain.StreamMessage{ID: msg.ID, Data: data}:
		case <-ctx.Done():
			return false
		}
	}
	return true
}

// AckMessage подтверждает обработку сообщения
func (r *streamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	err := r.client.XAck(ctx, stream, group, messageID).Err()
	if err != nil {
		r.logger.Error("Failed to acknowledge message",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.String("message_id", messageID),
			zap.Error(err))
		return fmt.Errorf("failed to acknowledge message: %w", err)
	}

	r.logger.Debug("Message acknowledged",
		zap.String("message_id", messageID))
	return nil
}

// PublishToStream сериализует data в JSON и кладёт в поле "data"
func (r *streamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	id, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]interface{}{
			"data": string(jsonData),
		},
	}).Result()
	if err != nil {
		r.logger.Error("Failed to publish to stream",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	r.logger.Debug("Message published to stream",
		zap.String("stream", stream),
		zap.String("message_id", id))
	return nil
}
