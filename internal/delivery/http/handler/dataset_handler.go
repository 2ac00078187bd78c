package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/velo-paris-dashboard/internal/pkg/errors"
	"github.com/velo-paris-dashboard/internal/pkg/utils"
	"github.com/velo-paris-dashboard/internal/pkg/validator"
	"github.com/velo-paris-dashboard/internal/usecase"
	"github.com/velo-paris-dashboard/internal/usecase/dto"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker - зависимость, которую можно проверить (Redis, PostgreSQL)
type HealthChecker interface {
	Health(ctx context.Context) error
}

// DatasetHandler - сводка по загруженной таблице и состояние сервиса
type DatasetHandler struct {
	datasetUC *usecase.DatasetUseCase
	checks    map[string]HealthChecker
	logger    *zap.Logger
}

// NewDatasetHandler; checks может быть пустым, если внешних зависимостей нет
func NewDatasetHandler(datasetUC *usecase.DatasetUseCase, checks map[string]HealthChecker, logger *zap.Logger) *DatasetHandler {
	return &DatasetHandler{
		datasetUC: datasetUC,
		checks:    checks,
		logger:    logger,
	}
}

// Health godoc
// @Summary Service health
// @Description Таблица загружена всегда; недоступная зависимость переводит статус в degraded
// @Tags System
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.HealthResponse}
// @Router /api/v1/health [get]
func (h *DatasetHandler) Health(c *fiber.Ctx) error {
	table := h.datasetUC.Table()
	resp := dto.HealthResponse{
		Status:         "healthy",
		DatasetVersion: table.Version(),
		Rows:           table.Len(),
	}

	if len(h.checks) > 0 {
		resp.Dependencies = make(map[string]string, len(h.checks))
	}
	for name, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Context(), healthCheckTimeout)
		err := check.Health(ctx)
		cancel()

		if err != nil {
			h.logger.Warn("Dependency health check failed", zap.String("dependency", name), zap.Error(err))
			resp.Dependencies[name] = "unavailable"
			resp.Status = "degraded"
			continue
		}
		resp.Dependencies[name] = "ok"
	}

	return utils.SendSuccess(c, resp, nil)
}

// Summary godoc
// @Summary Dataset summary
// @Tags Dataset
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.DatasetSummary}
// @Router /api/v1/dataset [get]
func (h *DatasetHandler) Summary(c *fiber.Ctx) error {
	summary := h.datasetUC.Summary(c.Context())
	return utils.SendSuccess(c, summary, &utils.Meta{
		Total:          summary.Rows,
		DatasetVersion: summary.Version,
	})
}

// Preview godoc
// @Summary First rows of the dataset
// @Tags Dataset
// @Produce json
// @Param limit query int false "1-100, default 10"
// @Success 200 {object} utils.SuccessResponse{data=dto.PreviewResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/dataset/preview [get]
func (h *DatasetHandler) Preview(c *fiber.Ctx) error {
	var req dto.PreviewRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result := h.datasetUC.Preview(c.Context(), req)
	limit := req.Limit
	if limit == 0 {
		limit = usecase.DefaultPreviewLimit
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
		Limit: limit,
	})
}
