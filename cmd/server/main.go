package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	catalogapp "github.com/stylehub/backend/internal/application/catalog"
	domaincatalog "github.com/stylehub/backend/internal/domain/catalog"
	"github.com/stylehub/backend/internal/infrastructure/auth"
	"github.com/stylehub/backend/internal/infrastructure/cache"
	"github.com/stylehub/backend/internal/infrastructure/config"
	"github.com/stylehub/backend/internal/infrastructure/logger"
	mongodb "github.com/stylehub/backend/internal/infrastructure/persistence/mongo"
	"github.com/stylehub/backend/internal/interfaces/http/handler"
	"github.com/stylehub/backend/internal/interfaces/http/middleware"
	"github.com/stylehub/backend/internal/interfaces/http/router"

	_ "github.com/stylehub/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			StyleHub Catalog API
//	@version		1.0
//	@description	Administrative backend for the StyleHub fashion catalog: categories, products and product variants.

//	@contact.name	API Support
//	@contact.url	https://github.com/stylehub/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

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

	log.Info("Starting StyleHub Catalog Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Connect to MongoDB and bootstrap indexes
	db, err := mongodb.Connect(context.Background(), mongodb.Config{
		URI:            cfg.Mongo.URI,
		Database:       cfg.Mongo.Database,
		ConnectTimeout: cfg.Mongo.ConnectTimeout,
	}, log)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := db.Client().Disconnect(context.Background()); err != nil {
			log.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()

	if err := mongodb.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatal("Failed to create MongoDB indexes", zap.Error(err))
	}

	// View history store: Redis when configured, in-memory otherwise
	var viewHistory domaincatalog.ViewHistory
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisHistory, err := cache.NewRedisViewHistory(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisHistory.Close(); err != nil {
				log.Error("Error closing Redis connection", zap.Error(err))
			}
		}()
		viewHistory = redisHistory
		redisClient = redisHistory.GetClient()
		log.Info("Redis view history enabled",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	} else {
		viewHistory = cache.NewInMemoryViewHistory()
		log.Warn("Redis not configured, using in-memory view history")
	}

	// Initialize repositories
	categoryRepo := mongodb.NewMongoCategoryRepository(db)
	productRepo := mongodb.NewMongoProductRepository(db)
	variantRepo := mongodb.NewMongoVariantRepository(db)

	// Initialize application services
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, variantRepo)
	variantService := catalogapp.NewVariantService(variantRepo, productRepo, viewHistory)

	// JWT validation; tokens are issued by the identity service
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize HTTP handlers
	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService)
	variantHandler := handler.NewVariantHandler(variantService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

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
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler.Health)

	// Swagger documentation endpoint with production protection
	swaggerAuth := middleware.JWTAuthMiddleware(jwtService)
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, swaggerAuth),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Catalog reads are public; a present token still supplies the user
	// identity that the view history endpoints key on.
	r.Use(middleware.OptionalJWTAuthMiddleware(jwtService))

	// Mutations require a valid token
	requireAuth := middleware.JWTAuthMiddleware(jwtService)

	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")

	// Category routes
	catalogRoutes.POST("/categories", requireAuth, categoryHandler.Create)
	catalogRoutes.GET("/categories", categoryHandler.List)
	catalogRoutes.GET("/categories/:id", categoryHandler.GetByID)
	catalogRoutes.GET("/categories/:id/ancestors", categoryHandler.Ancestors)
	catalogRoutes.PATCH("/categories/:id", requireAuth, categoryHandler.Update)
	catalogRoutes.DELETE("/categories/:id", requireAuth, categoryHandler.Delete)

	// Product routes
	catalogRoutes.POST("/products", requireAuth, productHandler.Create)
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.POST("/products/bulk-delete", requireAuth, productHandler.BulkDelete)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)
	catalogRoutes.GET("/products/:id/colors", variantHandler.ColorsByProduct)
	catalogRoutes.PATCH("/products/:id", requireAuth, productHandler.Update)
	catalogRoutes.DELETE("/products/:id", requireAuth, productHandler.Delete)

	// Variant routes
	catalogRoutes.POST("/variants", requireAuth, variantHandler.Create)
	catalogRoutes.GET("/variants", variantHandler.List)
	catalogRoutes.GET("/variants/representative", variantHandler.Representative)
	catalogRoutes.GET("/variants/products-unique", variantHandler.ProductsUnique)
	catalogRoutes.GET("/variants/recently-viewed", variantHandler.RecentlyViewed)
	catalogRoutes.POST("/variants/recently-viewed", variantHandler.RecordView)
	catalogRoutes.GET("/variants/by-color/:color", variantHandler.ByColor)
	catalogRoutes.GET("/variants/by-category/:id", variantHandler.ByCategory)
	catalogRoutes.GET("/variants/:id", variantHandler.GetByID)
	catalogRoutes.GET("/variants/:id/colors", variantHandler.ColorsByVariant)
	catalogRoutes.GET("/variants/:id/related", variantHandler.Related)
	catalogRoutes.PATCH("/variants/:id", requireAuth, variantHandler.Update)
	catalogRoutes.DELETE("/variants/:id", requireAuth, variantHandler.Delete)

	r.Register(catalogRoutes)
	r.Setup()

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
