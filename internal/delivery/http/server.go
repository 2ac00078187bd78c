package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/velo-paris-dashboard/internal/config"
	"github.com/velo-paris-dashboard/internal/delivery/http/handler"
	"github.com/velo-paris-dashboard/internal/delivery/http/middleware"
	"github.com/velo-paris-dashboard/internal/pkg/errors"
	"github.com/velo-paris-dashboard/internal/pkg/utils"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	dashboardHandler *handler.DashboardHandler
	datasetHandler   *handler.DatasetHandler
	viewHandler      *handler.ViewHandler
	aggregateHandler *handler.AggregateHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	dashboardHandler *handler.DashboardHandler,
	datasetHandler *handler.DatasetHandler,
	viewHandler *handler.ViewHandler,
	aggregateHandler *handler.AggregateHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Velo Paris Dashboard",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:              app,
		config:           cfg,
		logger:           logger,
		dashboardHandler: dashboardHandler,
		datasetHandler:   datasetHandler,
		viewHandler:      viewHandler,
		aggregateHandler: aggregateHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - для тестов через app.Test
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// HTML дашборд
	s.app.Get("/", s.dashboardHandler.Render)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.datasetHandler.Health)

	// Dataset routes
	api.Get("/dataset", s.datasetHandler.Summary)
	api.Get("/dataset/preview", s.datasetHandler.Preview)

	// View routes
	views := api.Group("/views")
	views.Get("/", s.viewHandler.GetViews)
	views.Get("/visualizations/:kind", s.viewHandler.GetVisualization)
	views.Get("/periods/:kind", s.viewHandler.GetPeriod)
	views.Post("/warmup", s.viewHandler.RequestWarmup)

	// Aggregate routes
	aggregates := api.Group("/aggregates")
	aggregates.Get("/daily", s.aggregateHandler.DailyTotals)
	aggregates.Get("/installs-by-year", s.aggregateHandler.InstallsByYear)
	aggregates.Get("/counters", s.aggregateHandler.Counters)
	aggregates.Get("/counter-totals", s.aggregateHandler.CounterTotals)
	aggregates.Get("/hourly", s.aggregateHandler.HourlyMeans)
	aggregates.Get("/window", s.aggregateHandler.WindowDaily)
	aggregates.Get("/monthly", s.aggregateHandler.MonthlyTotals)
	aggregates.Get("/weekday", s.aggregateHandler.WeekdayTotals)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки, не обработанные хендлерами (404 маршрута, паника)
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		appErr := errors.ErrInternalServer

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			appErr = errors.New(errorCode(code), e.Message, code)
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(utils.ErrorResponse{Error: appErr})
	}
}

func errorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusBadRequest:
		return "INVALID_REQUEST"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
