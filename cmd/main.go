package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"orderpad-service/internal/config"
	"orderpad-service/internal/events"
	"orderpad-service/internal/handlers"
	"orderpad-service/internal/middleware"
	"orderpad-service/internal/models"
	"orderpad-service/internal/repository"
	"orderpad-service/internal/services"
	"orderpad-service/internal/storage"
	"orderpad-service/internal/workers"
)

// @title Orderpad Service API
// @version 1.0
// @description Order entry and master data API for an apparel trading business

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.App.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	// Initialize database
	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Auto-migrate database schema
	if err := migrateDatabase(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize Redis client (optional - graceful degradation if Redis unavailable)
	var redisClient *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("Warning: Failed to parse Redis URL: %v", err)
			log.Println("Continuing without Redis...")
		} else {
			redisClient = redis.NewClient(opt)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := redisClient.Ping(ctx).Err(); err != nil {
				log.Printf("Warning: Failed to connect to Redis: %v", err)
				log.Println("Continuing without Redis...")
				redisClient = nil
			} else {
				log.Println("Connected to Redis")
			}
		}
	} else {
		log.Println("REDIS_URL not configured, caching and drafts disabled")
	}

	// Initialize repositories
	varietyRepo := repository.NewVarietyRepository(db, redisClient)
	itemRepo := repository.NewItemRepository(db, redisClient)
	customerRepo := repository.NewCustomerRepository(db, redisClient)
	colorRepo := repository.NewColorRepository(db, redisClient)
	orderRepo := repository.NewOrderRepository(db)

	// Initialize NATS events publisher
	var eventsPublisher *events.Publisher
	if cfg.App.NATSURL != "" {
		eventsPublisher, err = events.NewPublisher(cfg.App.NATSURL, logger)
		if err != nil {
			log.Printf("WARNING: Failed to initialize NATS events publisher: %v (continuing without events)", err)
			eventsPublisher = nil
		} else {
			log.Println("NATS events publisher initialized")
		}
	} else {
		log.Println("NATS_URL not configured, events disabled")
	}

	// Initialize image uploader: Drive when credentials are configured,
	// local directory otherwise
	var uploader storage.Uploader
	if cfg.Upload.DriveCredentialsFile != "" && cfg.Upload.DriveFolderID != "" {
		uploader, err = storage.NewDriveUploader(context.Background(), cfg.Upload.DriveCredentialsFile, cfg.Upload.DriveFolderID)
		if err != nil {
			log.Printf("WARNING: Failed to initialize Drive uploader: %v (falling back to local storage)", err)
		} else {
			log.Println("Google Drive uploader initialized")
		}
	}
	if uploader == nil {
		uploader, err = storage.NewLocalUploader(cfg.Upload.Dir, "/uploads")
		if err != nil {
			log.Fatalf("Failed to initialize local uploader: %v", err)
		}
	}

	// Initialize services
	masterDataService := services.NewMasterDataService(varietyRepo, itemRepo, customerRepo, colorRepo, logger)
	draftService := services.NewDraftService(redisClient, logger)
	sheetService := services.NewSheetService()

	var publisher services.OrderEventPublisher
	if eventsPublisher != nil {
		publisher = eventsPublisher
	}
	orderService := services.NewOrderService(orderRepo, masterDataService, draftService, publisher, logger)

	// Warm the catalog snapshot so the first submission does not pay for it
	if err := masterDataService.Reload(context.Background()); err != nil {
		log.Printf("WARNING: Failed to preload catalog: %v (will retry on first use)", err)
	}

	// Initialize handlers
	varietyHandler := handlers.NewVarietyHandler(masterDataService, logger)
	itemHandler := handlers.NewItemHandler(masterDataService, logger)
	customerHandler := handlers.NewCustomerHandler(masterDataService, logger)
	colorHandler := handlers.NewColorHandler(masterDataService, logger)
	catalogHandler := handlers.NewCatalogHandler(masterDataService, logger)
	orderHandler := handlers.NewOrderHandler(orderService, sheetService, logger)
	draftHandler := handlers.NewDraftHandler(draftService, logger)
	uploadHandler := handlers.NewUploadHandler(uploader, logger)
	healthHandler := handlers.NewHealthHandler(db, redisClient)

	// Start the draft expiration worker when drafts have a backend
	var draftWorker *workers.DraftExpirationWorker
	if redisClient != nil {
		draftWorker = workers.NewDraftExpirationWorker(redisClient, cfg.Draft.SweepInterval, cfg.Draft.TTL, logger)
		draftWorker.Start()
	}

	// Setup router
	router := setupRouter(cfg, logger,
		varietyHandler, itemHandler, customerHandler, colorHandler,
		catalogHandler, orderHandler, draftHandler, uploadHandler, healthHandler)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutting down Orderpad Service...")

		if draftWorker != nil {
			draftWorker.Stop()
		}
		if eventsPublisher != nil {
			eventsPublisher.Close()
		}

		log.Println("Orderpad service stopped")
		os.Exit(0)
	}()

	// Start server
	log.Printf("Starting Orderpad Service on %s", cfg.GetServerAddress())
	if err := router.Run(cfg.GetServerAddress()); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initDatabase initializes the database connection
func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	return db, nil
}

// migrateDatabase runs database migrations
func migrateDatabase(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Variety{},
		&models.Item{},
		&models.Customer{},
		&models.Color{},
		&models.Order{},
		&models.OrderRow{},
	)
}

// setupRouter configures the Gin router with middleware and routes
func setupRouter(
	cfg *config.Config,
	logger *logrus.Logger,
	varietyHandler *handlers.VarietyHandler,
	itemHandler *handlers.ItemHandler,
	customerHandler *handlers.CustomerHandler,
	colorHandler *handlers.ColorHandler,
	catalogHandler *handlers.CatalogHandler,
	orderHandler *handlers.OrderHandler,
	draftHandler *handlers.DraftHandler,
	uploadHandler *handlers.UploadHandler,
	healthHandler *handlers.HealthHandler,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS())

	// Health check endpoints
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Locally stored uploads
	router.Static("/uploads", cfg.Upload.Dir)

	// API routes behind the shared API key
	api := router.Group("/api/v1")
	api.Use(middleware.APIKeyAuth(cfg.App.APIKey))
	{
		varieties := api.Group("/varieties")
		{
			varieties.GET("", varietyHandler.List)
			varieties.POST("", varietyHandler.Save)
			varieties.DELETE("/:id", varietyHandler.Delete)
		}

		items := api.Group("/items")
		{
			items.GET("", itemHandler.List)
			items.POST("", itemHandler.Save)
			items.DELETE("/:id", itemHandler.Delete)
		}

		customers := api.Group("/customers")
		{
			customers.GET("", customerHandler.List)
			customers.POST("", customerHandler.Save)
			customers.DELETE("/:id", customerHandler.Delete)
		}

		colors := api.Group("/colors")
		{
			colors.GET("", colorHandler.List)
			colors.POST("", colorHandler.Save)
			colors.DELETE("/:id", colorHandler.Delete)
		}

		api.GET("/catalog", catalogHandler.Get)

		orders := api.Group("/orders")
		{
			orders.GET("", orderHandler.List)
			orders.POST("", orderHandler.Submit)
			orders.POST("/preview", orderHandler.Preview)
			orders.GET("/:batchId", orderHandler.Get)
			orders.GET("/:batchId/sheet", orderHandler.Sheet)
		}

		drafts := api.Group("/drafts")
		{
			drafts.GET("/:deviceId", draftHandler.Get)
			drafts.PUT("/:deviceId", draftHandler.Save)
			drafts.DELETE("/:deviceId", draftHandler.Delete)
		}

		api.POST("/uploads", uploadHandler.Upload)
	}

	return router
}
