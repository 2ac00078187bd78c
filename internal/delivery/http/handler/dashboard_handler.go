package handler

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/velo-paris-dashboard/internal/pkg/errors"
	"github.com/velo-paris-dashboard/internal/pkg/utils"
	"github.com/velo-paris-dashboard/internal/pkg/validator"
	"github.com/velo-paris-dashboard/internal/usecase"
	"github.com/velo-paris-dashboard/internal/usecase/dto"
	"github.com/velo-paris-dashboard/web"
)

const dashboardTemplate = "dashboard.html"

// DashboardHandler - рендеринг HTML страницы дашборда
type DashboardHandler struct {
	dashboardUC *usecase.DashboardUseCase
	templates   *template.Template
	logger      *zap.Logger
}

// NewDashboardHandler разбирает встроенные шаблоны один раз при старте
func NewDashboardHandler(dashboardUC *usecase.DashboardUseCase, logger *zap.Logger) (*DashboardHandler, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse dashboard templates: %w", err)
	}

	return &DashboardHandler{
		dashboardUC: dashboardUC,
		templates:   tmpl,
		logger:      logger,
	}, nil
}

// Render - страница по ?page=, на странице визуализации ещё ?visualization= и ?period=
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	var req dto.DashboardRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	page, err := h.dashboardUC.Build(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, dashboardTemplate, page); err != nil {
		h.logger.Error("Failed to render dashboard", zap.String("page", string(page.Page)), zap.Error(err))
		return utils.SendError(c, err)
	}

	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.Send(buf.Bytes())
}
