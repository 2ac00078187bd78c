package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/velo-paris-dashboard/internal/domain"
	"github.com/velo-paris-dashboard/internal/domain/repository"
	"github.com/velo-paris-dashboard/internal/pkg/errors"
	"github.com/velo-paris-dashboard/internal/usecase/dto"
)

// WarmupUseCase публикует и обрабатывает запросы на предварительный расчёт представлений
type WarmupUseCase struct {
	views      *ViewUseCase
	streamRepo repository.StreamRepository
	logger     *zap.Logger
}

// NewWarmupUseCase; streamRepo может быть nil, если Redis выключен
func NewWarmupUseCase(views *ViewUseCase, streamRepo repository.StreamRepository, logger *zap.Logger) *WarmupUseCase {
	return &WarmupUseCase{
		views:      views,
		streamRepo: streamRepo,
		logger:     logger,
	}
}

// RequestWarmup публикует по одному событию на каждое представление;
// без force воркер пропускает уже закешированные
func (uc *WarmupUseCase) RequestWarmup(ctx context.Context, force bool) (*dto.WarmupResponse, error) {
	if uc.streamRepo == nil {
		return nil, errors.ErrWarmupUnavailable
	}

	version := uc.views.DatasetVersion()
	resp := &dto.WarmupResponse{DatasetVersion: version}

	for _, key := range domain.ViewKeys() {
		event := domain.ViewWarmupEvent{
			RequestID:      uuid.New(),
			Kind:           key,
			DatasetVersion: version,
			Force:          force,
		}
		if err := uc.streamRepo.PublishToStream(ctx, domain.StreamViewWarmup, event); err != nil {
			return nil, fmt.Errorf("publish warmup %s: %w", key, err)
		}
		resp.Requests = append(resp.Requests, dto.WarmupTicket{
			RequestID: event.RequestID.String(),
			Kind:      key,
		})
	}

	uc.logger.Info("View warm-up requested",
		zap.String("dataset_version", version),
		zap.Int("views", len(resp.Requests)))

	return resp, nil
}

// HandleMessage обрабатывает одно сообщение стрима.
// Событие для другой версии датасета пропускается: кеш этой версии воркеру недоступен.
func (uc *WarmupUseCase) HandleMessage(ctx context.Context, msg domain.StreamMessage) error {
	var event domain.ViewWarmupEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return fmt.Errorf("unmarshal warmup event: %w", err)
	}

	if event.DatasetVersion != "" && event.DatasetVersion != uc.views.DatasetVersion() {
		uc.logger.Warn("Skipping warm-up for another dataset version",
			zap.String("request_id", event.RequestID.String()),
			zap.String("event_version", event.DatasetVersion),
			zap.String("loaded_version", uc.views.DatasetVersion()))
		return nil
	}

	warmed := true
	var err error
	if event.Force {
		err = uc.views.Warm(ctx, event.Kind)
	} else {
		warmed, err = uc.views.WarmIfMissing(ctx, event.Kind)
	}
	if err != nil {
		return fmt.Errorf("warm view %s: %w", event.Kind, err)
	}

	uc.logger.Debug("View warm-up handled",
		zap.String("request_id", event.RequestID.String()),
		zap.String("kind", event.Kind),
		zap.Bool("warmed", warmed))
	return nil
}
