package bootstrap

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rdkadakkal/Yusen-Report/internal/config"
	"github.com/rdkadakkal/Yusen-Report/internal/handler"
	"github.com/rdkadakkal/Yusen-Report/internal/logger"
	"github.com/rdkadakkal/Yusen-Report/internal/report"
	"github.com/rdkadakkal/Yusen-Report/internal/service"
)

type App struct {
	Echo *echo.Echo
}

func NewApp() *App {
	return &App{
		Echo: echo.New(),
	}
}

func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}

	// Initialize logging
	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH, config.DefaultEnvConfig.LOG_LEVEL)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	// Resolve the report layout: defaults unless a template file is
	// configured.
	tmpl := report.DefaultTemplate()
	if path := config.DefaultEnvConfig.REPORT_TEMPLATE_PATH; path != "" {
		loaded, err := report.LoadTemplate(path)
		if err != nil {
			return fmt.Errorf("failed to load report template: %w", err)
		}
		tmpl = loaded
		logger.InfoLog(ctx, "Report template loaded from %s", path)
	}

	// Initialize dependencies
	svc := service.NewSummaryReportService(tmpl,
		service.WithPreviewRows(config.DefaultEnvConfig.PREVIEW_ROW_LIMIT))
	summaryHandler := handler.NewSummaryHandler(svc)

	// Register Middlewares
	a.RegisterMiddlewares()

	// Register Routes
	a.RegisterRoutes(summaryHandler)

	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
	a.Echo.Use(middleware.BodyLimit(fmt.Sprintf("%dM", config.DefaultEnvConfig.MAX_UPLOAD_MB)))
}

func (a *App) RegisterRoutes(summaryHandler *handler.SummaryHandler) {
	api := a.Echo.Group("/api/v1")
	api.POST("/tracking/preview", summaryHandler.PreviewHandler)
	api.POST("/tracking/report", summaryHandler.DownloadHandler)
	api.GET("/tenants/required", summaryHandler.RequiredTenantsHandler)
}

func (a *App) Run() error {
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}
