package server

import (
	"fmt"
	"net/http"
	"time"

	"scanbook/internal/barcode"
	"scanbook/internal/catalog"
	"scanbook/internal/config"
	custommiddleware "scanbook/internal/middleware"
	"scanbook/internal/registry"
	"scanbook/internal/sheets"
	"scanbook/internal/storage"
	"scanbook/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, redisClient *redis.Client) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env == "development"))
	router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
		Window:            time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
		KeyPrefix:         "rate_limit",
	}, logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize the persistent store and the catalog core
	store := storage.NewRedis(redisClient)
	merchants := registry.NewMerchantRegistry(store, logger)
	categories := registry.NewCategoryRegistry(store, logger)
	products := catalog.NewProductCatalog(store, logger)
	maintenance := catalog.NewMaintenance(store, logger)
	codec := barcode.NewCodec(merchants, categories, products, logger)
	syncSettings := sheets.NewSettingsStore(store, logger)

	// Initialize handlers
	merchantHandler := transport.NewMerchantHandler(merchants, logger)
	catalogHandler := transport.NewCatalogHandler(categories, products, maintenance, logger)
	barcodeHandler := transport.NewBarcodeHandler(codec, logger)
	syncHandler := transport.NewSyncHandler(syncSettings, logger)

	// Register routes
	merchantHandler.RegisterRoutes(router)
	catalogHandler.RegisterRoutes(router)
	barcodeHandler.RegisterRoutes(router)
	syncHandler.RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// Close redis connection
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
