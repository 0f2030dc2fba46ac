package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	financeapp "github.com/mfg/backend/internal/application/finance"
	productionapp "github.com/mfg/backend/internal/application/production"
	salesapp "github.com/mfg/backend/internal/application/sales"
	"github.com/mfg/backend/internal/domain/production"
	"github.com/mfg/backend/internal/infrastructure/config"
	"github.com/mfg/backend/internal/infrastructure/event"
	"github.com/mfg/backend/internal/infrastructure/logger"
	"github.com/mfg/backend/internal/infrastructure/persistence"
	"github.com/mfg/backend/internal/infrastructure/telemetry"
	"github.com/mfg/backend/internal/interfaces/http/handler"
	"github.com/mfg/backend/internal/interfaces/http/middleware"
	"github.com/mfg/backend/internal/interfaces/http/router"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//	@title			Costing & Finance API
//	@version		1.0
//	@description	Production batch costing, sales margin tracking and finance engine for small manufacturers

//	@contact.name	API Support
//	@contact.email	support@mfg.example.com

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting costing backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Register database query tracing
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:          true,
			LogFullSQL:       cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh:  cfg.Telemetry.DBSlowQueryThresh,
			DBSystem:         "postgresql",
			WithoutVariables: !cfg.Telemetry.DBLogFullSQL,
		}, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	// Initialize repositories
	batchRepo := persistence.NewGormBatchRepository(db.DB)
	overheadRateRepo := persistence.NewGormOverheadRateRepository(db.DB)
	inventoryRepo := persistence.NewGormInventoryItemRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	saleStore := persistence.NewGormSaleProcessingStore(db.DB)
	cashflowRepo := persistence.NewGormCashflowRepository(db.DB)
	ownerRepo := persistence.NewGormOwnerRepository(db.DB)
	budgetRepo := persistence.NewGormBudgetPlanRepository(db.DB)
	zakatRepo := persistence.NewGormZakatRecordRepository(db.DB)

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	// Cashflow ledger changes -> owner investment recalculation
	ownerInvestmentHandler := financeapp.NewOwnerInvestmentHandler(ownerRepo, log)
	eventBus.Subscribe(ownerInvestmentHandler)

	log.Info("Event handlers registered",
		zap.Strings("owner_investment_events", ownerInvestmentHandler.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Domain services
	costingService := production.NewCostingService(batchRepo, overheadRateRepo)

	// Application services
	batchService := productionapp.NewBatchService(batchRepo, inventoryRepo, costingService, eventBus, log)
	overheadRateService := productionapp.NewOverheadRateService(overheadRateRepo)
	saleService := salesapp.NewSaleService(saleRepo, batchRepo, saleStore, eventBus, log)
	cashflowService := financeapp.NewCashflowService(cashflowRepo, eventBus, log)
	ownerService := financeapp.NewOwnerService(ownerRepo, log)
	budgetService := financeapp.NewBudgetService(budgetRepo, cashflowRepo, batchRepo, log)
	zakatService := financeapp.NewZakatService(
		zakatRepo,
		cashflowRepo,
		saleRepo,
		inventoryRepo,
		decimal.NewFromFloat(cfg.Zakat.NisabThreshold),
		decimal.NewFromFloat(cfg.Zakat.Rate),
		log,
	)
	dashboardService := financeapp.NewDashboardService(
		cashflowRepo, batchRepo, inventoryRepo, cfg.Dashboard.RecentBatchLimit, log,
	)

	// Initialize HTTP handlers
	batchHandler := handler.NewBatchHandler(batchService)
	overheadRateHandler := handler.NewOverheadRateHandler(overheadRateService)
	saleHandler := handler.NewSaleHandler(saleService)
	cashflowHandler := handler.NewCashflowHandler(cashflowService)
	ownerHandler := handler.NewOwnerHandler(ownerService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	zakatHandler := handler.NewZakatHandler(zakatService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing - OpenTelemetry spans (if enabled)
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	// 9. Tenant - Resolve tenant from header/subdomain
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.Tracing())
		engine.Use(middleware.SpanErrorMarker())
	}
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Tenant resolution. Production requires an explicit tenant on every
	// API request; other environments fall back to the default dev tenant.
	tenantConfig := middleware.DefaultTenantConfig()
	tenantConfig.SkipPaths = append(tenantConfig.SkipPaths,
		"/api/v1/ping",
		"/api/v1/system/ping",
		"/api/v1/system/info",
	)
	tenantConfig.Required = cfg.App.Env == "production"
	engine.Use(middleware.TenantMiddlewareWithConfig(tenantConfig))

	// Health check endpoints (outside API versioning)
	engine.GET("/health", healthHandler(db, log))
	engine.GET("/healthz", systemHandler.Health)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Production domain (batches, overhead rates)
	productionRoutes := router.NewDomainGroup("production", "/production")
	productionRoutes.POST("/batches", batchHandler.Create)
	productionRoutes.GET("/batches", batchHandler.List)
	productionRoutes.GET("/batches/:id", batchHandler.GetByID)
	productionRoutes.POST("/batches/:id/direct-costs", batchHandler.AddDirectCost)
	productionRoutes.POST("/batches/:id/start", batchHandler.Start)
	productionRoutes.POST("/batches/:id/submit-qc", batchHandler.SubmitQualityCheck)
	productionRoutes.POST("/batches/:id/calculate-costs", batchHandler.CalculateCosts)
	productionRoutes.POST("/batches/:id/complete", batchHandler.Complete)

	productionRoutes.POST("/overhead-rates", overheadRateHandler.Create)
	productionRoutes.GET("/overhead-rates", overheadRateHandler.List)
	productionRoutes.GET("/overhead-rates/:id", overheadRateHandler.GetByID)
	productionRoutes.POST("/overhead-rates/:id/deactivate", overheadRateHandler.Deactivate)

	// Sales domain
	salesRoutes := router.NewDomainGroup("sales", "/sales")
	salesRoutes.POST("", saleHandler.Create)
	salesRoutes.GET("", saleHandler.List)
	salesRoutes.GET("/summary", saleHandler.GetSummary)
	salesRoutes.GET("/:id", saleHandler.GetByID)
	salesRoutes.POST("/:id/payments", saleHandler.RecordPayment)

	// Finance domain (cashflow ledger, owners, budgets, zakat)
	financeRoutes := router.NewDomainGroup("finance", "/finance")
	financeRoutes.POST("/cashflows", cashflowHandler.Create)
	financeRoutes.GET("/cashflows", cashflowHandler.List)
	financeRoutes.GET("/cashflows/:id", cashflowHandler.GetByID)
	financeRoutes.PUT("/cashflows/:id", cashflowHandler.Update)
	financeRoutes.DELETE("/cashflows/:id", cashflowHandler.Delete)

	financeRoutes.POST("/owners", ownerHandler.Create)
	financeRoutes.GET("/owners", ownerHandler.List)
	financeRoutes.GET("/owners/:id", ownerHandler.GetByID)
	financeRoutes.PUT("/owners/:id", ownerHandler.Update)
	financeRoutes.DELETE("/owners/:id", ownerHandler.Delete)
	financeRoutes.POST("/owners/:id/recalculate-investment", ownerHandler.RecalculateInvestment)

	financeRoutes.POST("/budgets", budgetHandler.Create)
	financeRoutes.GET("/budgets", budgetHandler.List)
	financeRoutes.GET("/budgets/:id", budgetHandler.GetByID)
	financeRoutes.PUT("/budgets/:id", budgetHandler.Update)
	financeRoutes.DELETE("/budgets/:id", budgetHandler.Delete)
	financeRoutes.POST("/budgets/:id/update-actuals", budgetHandler.UpdateActuals)
	financeRoutes.GET("/budgets/:id/variances", budgetHandler.GetVariances)
	financeRoutes.GET("/budgets/:id/break-even", budgetHandler.GetBreakEven)

	financeRoutes.POST("/zakat/calculate", zakatHandler.Calculate)
	financeRoutes.GET("/zakat", zakatHandler.List)
	financeRoutes.GET("/zakat/:id", zakatHandler.GetByID)
	financeRoutes.POST("/zakat/:id/payments", zakatHandler.RecordPayment)

	// Dashboard
	dashboardRoutes := router.NewDomainGroup("dashboard", "/dashboard")
	dashboardRoutes.GET("/stats", dashboardHandler.GetStats)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(productionRoutes).
		Register(salesRoutes).
		Register(financeRoutes).
		Register(dashboardRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
