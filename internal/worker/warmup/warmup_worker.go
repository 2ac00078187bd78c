package warmup

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/velo-paris-dashboard/internal/domain"
	"github.com/velo-paris-dashboard/internal/domain/repository"
	"github.com/velo-paris-dashboard/internal/worker"
)

const defaultRetryDelay = 500 * time.Millisecond

// MessageHandler обрабатывает одно сообщение стрима (usecase.WarmupUseCase)
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg domain.StreamMessage) error
}

// ViewWarmupWorker считает запрошенные представления и кладёт их в кеш
type ViewWarmupWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	handler      MessageHandler
	consumerName string
	maxRetries   int
	retryDelay   time.Duration
}

type Option func(*ViewWarmupWorker)

// WithRetryDelay - пауза между попытками обработать сообщение
func WithRetryDelay(d time.Duration) Option {
	return func(w *ViewWarmupWorker) {
		w.retryDelay = d
	}
}

// NewViewWarmupWorker; maxRetries < 1 означает одну попытку
func NewViewWarmupWorker(
	streamRepo repository.StreamRepository,
	handler MessageHandler,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
	opts ...Option,
) *ViewWarmupWorker {
	hostname, _ := os.Hostname()

	w := &ViewWarmupWorker{
		BaseWorker:   worker.NewBaseWorker("view-warmup", consumerGroup, logger),
		streamRepo:   streamRepo,
		handler:      handler,
		consumerName: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
		maxRetries:   maxRetries,
		retryDelay:   defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start читает стрим до остановки воркера, отмены контекста или закрытия канала
func (w *ViewWarmupWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting ViewWarmupWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_retries", w.maxRetries))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamViewWarmup, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	messages, err := w.streamRepo.ConsumeStream(consumeCtx, domain.StreamViewWarmup, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-messages:
			if !ok {
				logger.Info("Stream closed")
				return nil
			}
			w.process(ctx, msg)
		}
	}
}

// process делает до maxRetries попыток и подтверждает сообщение в любом случае,
// иначе оно навсегда останется в pending
func (w *ViewWarmupWorker) process(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger().With(zap.String("message_id", msg.ID))

	attempts := w.maxRetries
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = w.handler.HandleMessage(ctx, msg); err == nil {
			break
		}

		logger.Warn("Failed to handle message",
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt < attempts && !w.Pause(ctx, w.retryDelay) {
			// без XACK сообщение остаётся в pending; его заберёт XAUTOCLAIM в ConsumeStream
			return
		}
	}
	if err != nil {
		logger.Error("Giving up on message", zap.Int("attempts", attempts), zap.Error(err))
	}

	if ackErr := w.streamRepo.AckMessage(ctx, domain.StreamViewWarmup, w.ConsumerGroup(), msg.ID); ackErr != nil {
		logger.Error("Failed to ack message", zap.Error(ackErr))
	}
}
