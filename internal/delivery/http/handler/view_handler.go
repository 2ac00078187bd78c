package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/velo-paris-dashboard/internal/domain"
	"github.com/velo-paris-dashboard/internal/pkg/errors"
	"github.com/velo-paris-dashboard/internal/pkg/utils"
	"github.com/velo-paris-dashboard/internal/pkg/validator"
	"github.com/velo-paris-dashboard/internal/usecase"
	"github.com/velo-paris-dashboard/internal/usecase/dto"
)

// ViewHandler отдаёт описания графиков и карт для выбора на странице визуализации
type ViewHandler struct {
	viewUC   *usecase.ViewUseCase
	warmupUC *usecase.WarmupUseCase
	logger   *zap.Logger
}

// NewViewHandler - создание нового ViewHandler
func NewViewHandler(viewUC *usecase.ViewUseCase, warmupUC *usecase.WarmupUseCase, logger *zap.Logger) *ViewHandler {
	return &ViewHandler{
		viewUC:   viewUC,
		warmupUC: warmupUC,
		logger:   logger,
	}
}

// GetViews godoc
// @Summary Both dashboard selections
// @Description Представления для значения выпадающего списка и радиокнопки; пустое значение - ничего не выбрано
// @Tags Views
// @Produce json
// @Param visualization query string false "none, installs-by-year, track-length, counter-map, threshold-map"
// @Param period query string false "day, week, month, year"
// @Success 200 {object} utils.SuccessResponse{data=dto.ViewPairResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/views [get]
func (h *ViewHandler) GetViews(c *fiber.Ctx) error {
	var req dto.ViewRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.viewUC.GetPair(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		DatasetVersion: h.viewUC.DatasetVersion(),
	})
}

// GetVisualization godoc
// @Summary Visualization by kind
// @Tags Views
// @Produce json
// @Param kind path string true "none, installs-by-year, track-length, counter-map, threshold-map"
// @Success 200 {object} utils.SuccessResponse{data=dto.ViewResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/views/visualizations/{kind} [get]
func (h *ViewHandler) GetVisualization(c *fiber.Ctx) error {
	kind, ok := domain.ParseVisualizationKind(c.Params("kind"))
	if !ok {
		return utils.SendError(c, errors.ErrInvalidView.WithDetails(map[string]interface{}{
			"visualization": c.Params("kind"),
		}))
	}

	result, err := h.viewUC.GetVisualization(c.Context(), kind)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		DatasetVersion: h.viewUC.DatasetVersion(),
	})
}

// GetPeriod godoc
// @Summary Temporal view by period
// @Tags Views
// @Produce json
// @Param kind path string true "day, week, month, year"
// @Success 200 {object} utils.SuccessResponse{data=dto.ViewResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/views/periods/{kind} [get]
func (h *ViewHandler) GetPeriod(c *fiber.Ctx) error {
	kind, ok := domain.ParsePeriodKind(c.Params("kind"))
	if !ok {
		return utils.SendError(c, errors.ErrInvalidPeriod.WithDetails(map[string]interface{}{
			"period": c.Params("kind"),
		}))
	}

	result, err := h.viewUC.GetPeriod(c.Context(), kind)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		DatasetVersion: h.viewUC.DatasetVersion(),
	})
}

// RequestWarmup godoc
// @Summary Request cache warm-up
// @Description Публикует по одному запросу на каждое представление в Redis Stream; обрабатывает воркер
// @Tags Views
// @Produce json
// @Param force query bool false "recompute views that are already cached"
// @Success 202 {object} utils.SuccessResponse{data=dto.WarmupResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/views/warmup [post]
func (h *ViewHandler) RequestWarmup(c *fiber.Ctx) error {
	var req dto.WarmupRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	result, err := h.warmupUC.RequestWarmup(c.Context(), req.Force)
	if err != nil {
		h.logger.Error("Failed to request warm-up", zap.Error(err))
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusAccepted)
	return utils.SendSuccess(c, result, &utils.Meta{
		Total:          len(result.Requests),
		DatasetVersion: result.DatasetVersion,
	})
}
