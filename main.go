// File: voyago/main.go
package main

import (
	"context"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"voyago/config"
	"voyago/handlers"
	"voyago/middleware"
	"voyago/routes"
	"voyago/services/itinerary"
	"voyago/services/planner"
	"voyago/services/registry"
	"voyago/utils"
	"voyago/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: failed to load configuration: %v", err)
	}

	utils.InitializeLogger(cfg.Env, cfg.LogLevel)
	logger := utils.GetLogger()
	defer logger.Sync()

	// Credentials are checked before anything else; a missing key is fatal
	// before the first planning call.
	if err := cfg.RequireCredentials(); err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	toolRegistry, err := registry.New(cfg)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to build tool registry: %v", err)
	}

	var backend planner.PlannerBackend
	switch cfg.PlannerBackend {
	case "gemini":
		backend, err = planner.NewGeminiBackend(cfg, logger)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize Gemini backend: %v", err)
		}
	default:
		backend = planner.NewOpenAIBackend(cfg, logger)
	}

	plannerService := &planner.DefaultPlannerSession{
		Cfg:      cfg,
		Registry: toolRegistry,
		Backend:  backend,
		Logger:   logger,
	}

	var store itinerary.Store
	if cfg.RedisAddr != "" {
		redisStore, err := itinerary.NewRedisStore(cfg)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to connect to Redis: %v", err)
		}
		store = redisStore
		logger.Info("Using Redis itinerary store")
	} else {
		store = itinerary.NewMemoryStore(cfg.ItineraryTTL())
		logger.Info("Using in-memory itinerary store")
	}

	renderer := &itinerary.Renderer{Logger: logger}
	plannerHandler := handlers.NewPlannerHandler(cfg, plannerService, toolRegistry, store, renderer)

	// Create the Gin router.
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	router.Use(cors.New(routes.CORSConfig()))
	router.SetHTMLTemplate(template.Must(template.ParseFS(web.Templates, "templates/*.html")))

	routes.RegisterRoutes(router, plannerHandler)

	// Start the HTTP server.
	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
