package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/prperemyshlev/task-manager/internal/config"
	"github.com/prperemyshlev/task-manager/internal/handler"
	"github.com/prperemyshlev/task-manager/internal/repository"
	"github.com/prperemyshlev/task-manager/internal/service"
	"github.com/prperemyshlev/task-manager/internal/utils"
	"github.com/prperemyshlev/task-manager/pkg/observability"
)

const serviceName = "task-manager"

type App struct {
	infra  Infrastructure
	config *config.Config
	router *gin.Engine
	server *http.Server
}

// NewApp wires repositories, services and handlers on top of the infrastructure
func NewApp(infra Infrastructure, cfg *config.Config) (*App, error) {
	repos := repository.NewRepositories(infra.Postgres())

	tokenIssuer, err := utils.NewTokenIssuer(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.TokenExpirationInMinutes)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpirationInDays)*24*time.Hour,
	)
	if err != nil {
		return nil, err
	}

	passwordHasher := utils.NewPasswordHasher(cfg.Password.Time, cfg.Password.Memory, cfg.Password.Threads)

	metrics, err := observability.NewMetrics(infra.MeterProvider())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	authService, err := service.NewAuthService(repos.User, passwordHasher, tokenIssuer, metrics, infra.Logger())
	if err != nil {
		return nil, err
	}
	taskService := service.NewTaskService(repos.Task, metrics, infra.Logger())

	authHandler := handler.NewAuthHandler(authService, infra.Logger())
	taskHandler := handler.NewTaskHandler(taskService, infra.Logger())
	healthChecker := NewHealthChecker(infra)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName, otelgin.WithMeterProvider(infra.MeterProvider())))
	router.Use(handler.LoggerMiddleware(infra.Logger()))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	setupRoutes(router, authHandler, taskHandler, authService, healthChecker, infra.MetricsHandler())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:  infra,
		config: cfg,
		router: router,
		server: srv,
	}, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func setupRoutes(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	taskHandler *handler.TaskHandler,
	authService service.AuthService,
	healthChecker *HealthChecker,
	metricsHandler http.Handler,
) {
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", healthChecker.Handler)

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh-token", authHandler.Refresh)
			auth.GET("/me", handler.AuthMiddleware(authService), authHandler.GetMe)
		}

		tasks := api.Group("/tasks", handler.AuthMiddleware(authService))
		{
			tasks.GET("", taskHandler.List)
			tasks.POST("", taskHandler.Create)
			tasks.GET("/:id", taskHandler.Get)
			tasks.PUT("/:id", taskHandler.Update)
			tasks.DELETE("/:id", taskHandler.Delete)
		}
	}
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		a.infra.Logger().Error("Shutdown error", zap.Error(err))
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout.Duration)
	defer cancel()

	// the server drains in-flight requests before the pool closes
	serverErr := a.server.Shutdown(ctx)
	infraErr := a.infra.Shutdown(ctx)

	if err := errors.Join(serverErr, infraErr); err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
