package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"habitloop/internal/api/handlers"
	"habitloop/internal/api/middleware"
	"habitloop/internal/api/routes"
	"habitloop/internal/app"
	"habitloop/internal/domain/habits"
	"habitloop/internal/domain/progress"
	"habitloop/internal/infrastructure/store"
	"habitloop/pkg/config"
	"habitloop/pkg/logger"
)

// RequestLoggerMiddleware logs all incoming HTTP requests
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("Request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func newStore(cfg *config.Config, log *logger.Logger) (store.Store, func(), error) {
	switch cfg.Store.Backend {
	case "redis":
		rs, err := store.NewRedisStore(&store.RedisConfig{
			Addr:        fmt.Sprintf("%s:%d", cfg.Store.Redis.Host, cfg.Store.Redis.Port),
			Password:    cfg.Store.Redis.Password,
			DB:          cfg.Store.Redis.DB,
			KeyPrefix:   cfg.Store.Redis.KeyPrefix,
			ConnTimeout: cfg.Store.Timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Info("Using redis store",
			zap.String("host", cfg.Store.Redis.Host),
			zap.Int("port", cfg.Store.Redis.Port))
		return rs, func() { rs.Close() }, nil
	case "memory":
		log.Warn("Using in-memory store, data will not survive restarts")
		return store.NewMemoryStore(), func() {}, nil
	case "sqlite":
		gs, err := store.NewSQLiteStore(cfg.Store.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Using sqlite store", zap.String("path", cfg.Store.SQLite.Path))
		return gs, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown store backend %q", store.ErrInvalidConfig, cfg.Store.Backend)
	}
}

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.NewLogger(cfg.Logging.Level)
	defer log.Sync()

	log.Info("Configuration loaded successfully")
	log.Info("Server mode: " + cfg.Server.Mode)

	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware(log))
	router.Use(middleware.NewMetricsMiddleware().CollectMetrics())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", "Content-Encoding"},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	st, closeStore, err := newStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize store", zap.Error(err))
	}
	defer closeStore()

	repo := habits.NewRepository(st, log)
	engine := progress.NewEngine(st, log)
	tracker := app.NewTracker(repo, engine, log)

	if err := tracker.Start(context.Background()); err != nil {
		log.Fatal("Failed to initialize user progress", zap.Error(err))
	}

	habitsHandler := handlers.NewHabitsHandler(tracker, log)
	progressHandler := handlers.NewProgressHandler(tracker, log)

	routes.SetupHealthRoutes(router, st)
	routes.NewHabitsRoutes(habitsHandler).RegisterRoutes(router)
	routes.NewProgressRoutes(progressHandler).RegisterRoutes(router)

	for _, route := range router.Routes() {
		log.Debug("Route registered",
			zap.String("method", route.Method),
			zap.String("path", route.Path),
		)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info(fmt.Sprintf("Server starting on port %d", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited properly")
}
