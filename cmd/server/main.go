package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fynchlabs/toast-insights/internal/application/service"
	"github.com/fynchlabs/toast-insights/internal/config"
	"github.com/fynchlabs/toast-insights/internal/infrastructure/toast"
	"github.com/fynchlabs/toast-insights/internal/infrastructure/webhook"
	"github.com/fynchlabs/toast-insights/internal/presentation/http/handler"
	"github.com/fynchlabs/toast-insights/internal/presentation/http/routes"
)

// Upper bound on one queued report job, fetch included.
const taskTimeout = 10 * time.Minute

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := logrus.New()
	if cfg.App.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	// Each report run gets a client bound to its location's restaurant
	clients := func(restaurantGUID string) service.ToastAPI {
		return toast.NewClient(cfg.Toast, restaurantGUID, logger)
	}

	notifier := webhook.NewNotifier(cfg.Webhooks.Timeout, logger)
	reporter := webhook.NewErrorReporter(notifier, cfg.Webhooks.ErrorURL, logger)

	// Initialize services
	tipsService := service.NewTipsService(clients, logger)
	ordersService := service.NewOrdersService(clients, logger)
	taskService := service.NewTaskService(notifier, reporter, taskTimeout, logger)

	// Initialize handlers and routes
	router := routes.Setup(&routes.Handlers{
		Tips:   handler.NewTipsHandler(tipsService, taskService),
		Orders: handler.NewOrdersHandler(ordersService, taskService),
		Task:   handler.NewTaskHandler(taskService),
	}, &routes.Deps{
		Cfg: cfg,
		Log: logger,
	})

	logger.Infof("Starting %s on port %s", cfg.App.Name, cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		logger.Fatalf("Server exited: %v", err)
	}
}
