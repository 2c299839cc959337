package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notebooklm-bridge/internal/config"
	"notebooklm-bridge/internal/handlers"
	"notebooklm-bridge/internal/health"
	"notebooklm-bridge/internal/jobs"
	"notebooklm-bridge/internal/logging"
	"notebooklm-bridge/internal/middleware"
	"notebooklm-bridge/internal/services"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

// upstreamFailureThreshold is the number of consecutive failures before an
// upstream endpoint is reported unhealthy
const upstreamFailureThreshold = 3

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize structured logging (JSON in production, text in dev)
	logging.Init()

	log.Printf("🚀 Starting %s...", config.ServiceName)

	// Load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found or error loading it: %v", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	cfg := config.Load()
	log.Printf("📋 Configuration loaded (Port: %s, Environment: %s, Upstream: %s)", cfg.Port, cfg.Environment, cfg.BaseURL)

	aliases, err := config.LoadFieldAliases(cfg.AliasesFile)
	if err != nil {
		log.Fatalf("❌ Failed to load field aliases: %v", err)
	}
	if cfg.AliasesFile != "" {
		log.Printf("✅ Field aliases loaded from %s", cfg.AliasesFile)
	}

	// Optional shared cache tier
	var cacheBackend services.CacheBackend
	var redisService *services.RedisService
	if cfg.RedisURL != "" {
		redisService, err = services.NewRedisService(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable, using in-process notebook cache only: %v", err)
		} else {
			cacheBackend = redisService
			log.Println("✅ Redis notebook cache tier enabled")
		}
	}

	credentialService := services.NewCredentialService(cfg.AuthFile)
	if os.Getenv(config.AuthJSONEnv) != "" {
		log.Printf("🔑 Credentials will be read from %s", config.AuthJSONEnv)
	} else if credentialService.AuthFileExists() {
		log.Printf("🔑 Credentials will be read from %s", credentialService.AuthFilePath())
	} else {
		log.Printf("⚠️  No credentials found. Run 'notebooklm-mcp-auth' or set %s", config.AuthJSONEnv)
	}

	healthService := health.NewService(upstreamFailureThreshold)
	client := services.NewNotebookLMClient(cfg.BaseURL, cfg.UpstreamRateLimit, logging.NewUpstreamLogger())
	notebookCache := services.NewNotebookCache(cfg.NotebookCacheTTL, cacheBackend)
	notebookService := services.NewNotebookService(credentialService, client, notebookCache, aliases, healthService, cfg.ListTimeout)
	queryService := services.NewQueryService(credentialService, client, notebookService, aliases, healthService, cfg.QueryTimeout)

	app := fiber.New(fiber.Config{
		AppName:      config.ServiceName,
		ReadTimeout:  90 * time.Second, // queries may wait up to 60s upstream, twice with the fallback
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	// Prometheus metrics middleware
	prometheus := fiberprometheus.New("notebooklm_bridge")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)
	log.Println("📊 Prometheus metrics endpoint enabled at /metrics")

	// Fiber's CORS middleware does not allow AllowCredentials with wildcard origins
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Request-ID",
		AllowCredentials: cfg.AllowedOrigins != "*",
	}))
	log.Printf("🔒 [SECURITY] CORS allowed origins: %s", cfg.AllowedOrigins)

	rateLimitConfig := middleware.LoadRateLimitConfig(cfg.RateLimitGlobal, cfg.Environment)
	app.Use(middleware.GlobalRateLimiter(rateLimitConfig))
	app.Use("/query", middleware.QueryRateLimiter(rateLimitConfig))
	log.Printf("🛡️  [RATE-LIMIT] Global=%d/min, Query=%d/min", rateLimitConfig.GlobalMax, rateLimitConfig.QueryMax)

	handlers.RegisterRoutes(app, &handlers.Handlers{
		Health:    handlers.NewHealthHandler(credentialService, healthService),
		Notebooks: handlers.NewNotebookHandler(notebookService),
		Query:     handlers.NewQueryHandler(queryService),
	})

	// Background jobs
	var cacheWarmer *jobs.CacheWarmer
	var authWatcher *jobs.AuthFileWatcher
	if notebookCache.Enabled() {
		if cfg.NotebookCacheRefresh > 0 {
			cacheWarmer, err = jobs.NewCacheWarmer(notebookService, cfg.NotebookCacheRefresh, cfg.ListTimeout)
			if err == nil {
				err = cacheWarmer.Start()
			}
			if err != nil {
				log.Printf("⚠️  Cache warmer disabled: %v", err)
				cacheWarmer = nil
			}
		}

		authWatcher = jobs.NewAuthFileWatcher(credentialService.AuthFilePath(), notebookService)
		if err := authWatcher.Start(); err != nil {
			log.Printf("⚠️  Auth file watcher disabled: %v", err)
			authWatcher = nil
		}
	}

	log.Printf("✅ Server ready on port %s", cfg.Port)
	log.Printf("📡 Health check: http://localhost:%s/health", cfg.Port)

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("\n🛑 Shutting down server...")

		if cacheWarmer != nil {
			if err := cacheWarmer.Stop(); err != nil {
				log.Printf("⚠️ Error stopping cache warmer: %v", err)
			}
		}

		if authWatcher != nil {
			if err := authWatcher.Stop(); err != nil {
				log.Printf("⚠️ Error stopping auth file watcher: %v", err)
			}
		}

		// Shutdown Fiber
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.Printf("⚠️ Error shutting down server: %v", err)
		}

		if redisService != nil {
			if err := redisService.Close(); err != nil {
				log.Printf("⚠️ Error closing Redis: %v", err)
			}
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
