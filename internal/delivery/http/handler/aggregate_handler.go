package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/velo-paris-dashboard/internal/pkg/errors"
	"github.com/velo-paris-dashboard/internal/pkg/utils"
	"github.com/velo-paris-dashboard/internal/pkg/validator"
	"github.com/velo-paris-dashboard/internal/usecase"
	"github.com/velo-paris-dashboard/internal/usecase/dto"
)

// AggregateHandler - агрегаты таблицы без оформления в график
type AggregateHandler struct {
	aggregateUC *usecase.AggregateUseCase
	logger      *zap.Logger
}

func NewAggregateHandler(aggregateUC *usecase.AggregateUseCase, logger *zap.Logger) *AggregateHandler {
	return &AggregateHandler{
		aggregateUC: aggregateUC,
		logger:      logger,
	}
}

// DailyTotals godoc
// @Summary Sum of hourly counts per date
// @Tags Aggregates
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.DateCount}
// @Router /api/v1/aggregates/daily [get]
func (h *AggregateHandler) DailyTotals(c *fiber.Ctx) error {
	result := h.aggregateUC.DailyTotals(c.Context())
	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result)})
}

// InstallsByYear godoc
// @Summary Rows per installation year
// @Tags Aggregates
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.YearCount}
// @Router /api/v1/aggregates/installs-by-year [get]
func (h *AggregateHandler) InstallsByYear(c *fiber.Ctx) error {
	result := h.aggregateUC.InstallsByYear(c.Context())
	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result)})
}

// Counters godoc
// @Summary Distinct counters with their first known location
// @Tags Aggregates
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Counter}
// @Router /api/v1/aggregates/counters [get]
func (h *AggregateHandler) Counters(c *fiber.Ctx) error {
	result := h.aggregateUC.Counters(c.Context())
	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result)})
}

// CounterTotals godoc
// @Summary Totals per counter classified against the 75th percentile
// @Tags Aggregates
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.CounterTotalsResponse}
// @Router /api/v1/aggregates/counter-totals [get]
func (h *AggregateHandler) CounterTotals(c *fiber.Ctx) error {
	result := h.aggregateUC.CounterTotals(c.Context())
	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result.Counters)})
}

// HourlyMeans godoc
// @Summary Mean hourly count per time of day
// @Tags Aggregates
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.TimeOfDayMean}
// @Router /api/v1/aggregates/hourly [get]
func (h *AggregateHandler) HourlyMeans(c *fiber.Ctx) error {
	result := h.aggregateUC.HourlyMeans(c.Context())
	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result)})
}

// WindowDaily godoc
// @Summary Daily totals inside [start, end)
// @Tags Aggregates
// @Produce json
// @Param start query string true "YYYY-MM-DD"
// @Param end query string true "YYYY-MM-DD, exclusive"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.DateCount}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/aggregates/window [get]
func (h *AggregateHandler) WindowDaily(c *fiber.Ctx) error {
	var req dto.WindowRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.aggregateUC.WindowDaily(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result)})
}

// MonthlyTotals godoc
// @Summary Sum of hourly counts per calendar month
// @Tags Aggregates
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.MonthCount}
// @Router /api/v1/aggregates/monthly [get]
func (h *AggregateHandler) MonthlyTotals(c *fiber.Ctx) error {
	result := h.aggregateUC.MonthlyTotals(c.Context())
	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result)})
}

// WeekdayTotals godoc
// @Summary Totals per weekday inside a day-of-month range
// @Description По умолчанию первая неделя июня (month=6, from=1, to=7)
// @Tags Aggregates
// @Produce json
// @Param month query int false "1-12"
// @Param from query int false "first day of month, inclusive"
// @Param to query int false "last day of month, inclusive; default from+6"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.WeekdayCount}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/aggregates/weekday [get]
func (h *AggregateHandler) WeekdayTotals(c *fiber.Ctx) error {
	var req dto.WeekdayRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.aggregateUC.WeekdayTotals(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result)})
}
