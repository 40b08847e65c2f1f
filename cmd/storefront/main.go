package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	cartApi "github.com/ridloal/storefront/internal/cart/api"
	cartRepository "github.com/ridloal/storefront/internal/cart/repository"
	cartService "github.com/ridloal/storefront/internal/cart/service"
	catalogApi "github.com/ridloal/storefront/internal/catalog/api"
	catalogRepository "github.com/ridloal/storefront/internal/catalog/repository"
	catalogService "github.com/ridloal/storefront/internal/catalog/service"
	checkoutApi "github.com/ridloal/storefront/internal/checkout/api"
	checkoutRepository "github.com/ridloal/storefront/internal/checkout/repository"
	checkoutService "github.com/ridloal/storefront/internal/checkout/service"
	"github.com/ridloal/storefront/internal/messaging"
	"github.com/ridloal/storefront/internal/platform/config"
	"github.com/ridloal/storefront/internal/platform/database"
	"github.com/ridloal/storefront/internal/platform/logger"
	sessionApi "github.com/ridloal/storefront/internal/session/api"
	sessionRepository "github.com/ridloal/storefront/internal/session/repository"
	sessionService "github.com/ridloal/storefront/internal/session/service"
	telemetryApi "github.com/ridloal/storefront/internal/telemetry/api"
	telemetryService "github.com/ridloal/storefront/internal/telemetry/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load Config
	config.LoadEnvFile()
	cfg := config.LoadStorefrontConfig()
	logger.Setup(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("Starting Storefront Service...")

	// Setup State Store
	stateStore, db, err := setupStateStore(cfg.State)
	if err != nil {
		logger.Error("Failed to set up visitor state store", err, nil)
		return
	}
	if db != nil {
		defer db.Close()
	}

	// Setup Dependencies
	productRepository, err := catalogRepository.NewStaticProductRepository(cfg.CatalogPath)
	if err != nil {
		logger.Error("Failed to load product catalog", err, nil)
		return
	}
	linker := messaging.NewWhatsAppLinker(cfg.WhatsAppNumber)

	visitorSvc := sessionService.NewVisitorService(cfg.Visitor.TokenSecret, cfg.Visitor.TokenTTL)
	productSvc := catalogService.NewProductService(productRepository, linker)
	cartSvc := cartService.NewCartService(cartRepository.NewCartRepository(stateStore), productRepository)
	checkoutSvc := checkoutService.NewCheckoutService(cartSvc, checkoutRepository.NewPaymentRepository(stateStore), linker, cfg.SubmitDelay)
	simulator := telemetryService.NewSimulator()
	recommender := telemetryService.NewRecommender(productRepository, cfg.RecommendDelay, nil)

	// Initialize Schedulers
	purger := sessionService.NewStatePurger(stateStore, cfg.State.IdleTTL)
	purger.Start()
	defer purger.Stop()
	if err := simulator.Start(); err != nil {
		logger.Error("Failed to start telemetry simulator", err, nil)
		return
	}
	defer simulator.Stop()

	// Setup Gin Router
	router := gin.Default()
	router.Use(cors.New(corsConfig(cfg.AllowOrigins)))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "state_store": cfg.State.Backend})
	})

	apiV1 := router.Group("/api/v1", sessionApi.VisitorMiddleware(visitorSvc))
	sessionApi.NewVisitorHandler().RegisterRoutes(apiV1)
	catalogApi.NewProductHandler(productSvc).RegisterRoutes(apiV1)
	cartApi.NewCartHandler(cartSvc).RegisterRoutes(apiV1)
	checkoutApi.NewCheckoutHandler(checkoutSvc).RegisterRoutes(apiV1)
	telemetryApi.NewTelemetryHandler(simulator, recommender).RegisterRoutes(apiV1)

	srv := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Storefront Service running on port " + cfg.Server.Port)
		if errSrv := srv.ListenAndServe(); errSrv != nil && !errors.Is(errSrv, http.ErrServerClosed) {
			logger.Error("Failed to run Storefront Service server", errSrv, nil)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down Storefront Service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Storefront Service forced to shutdown", err, nil)
	}
}

// setupStateStore memilih backend state visitor; db nil untuk backend memory
func setupStateStore(cfg config.StateConfig) (sessionRepository.StateStore, *sql.DB, error) {
	switch cfg.Backend {
	case "postgres":
		db, err := database.Connect(cfg.DB.DSN)
		if err != nil {
			return nil, nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := sessionRepository.EnsureSchema(ctx, db, cfg.DB.Table); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("Visitor state stored in PostgreSQL table " + cfg.DB.Table)
		return sessionRepository.NewPostgresStateStore(db, cfg.DB.Table), db, nil
	case "", "memory":
		logger.Info("Visitor state stored in memory")
		return sessionRepository.NewMemoryStateStore(), nil, nil
	default:
		return nil, nil, errors.New("unknown STATE_STORE backend: " + cfg.Backend)
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", sessionApi.HeaderName},
		ExposeHeaders: []string{"Content-Length", "Location", sessionApi.HeaderName},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
