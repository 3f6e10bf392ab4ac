package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"voltbay.backend/internal/config"
	"voltbay.backend/internal/infrastructure/gateway"
	"voltbay.backend/internal/infrastructure/jobs"
	"voltbay.backend/internal/infrastructure/repositories"
	"voltbay.backend/internal/interfaces/http/handlers"
	"voltbay.backend/internal/interfaces/http/middleware"
	"voltbay.backend/internal/usecases"
	"voltbay.backend/pkg/jwt"
	"voltbay.backend/pkg/logger"
	"voltbay.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)
	bidRepo := repositories.NewBidRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	walletRepo := repositories.NewWalletRepository(db)
	listingRepo := repositories.NewEnterpriseListingRepository(db)
	quoteRepo := repositories.NewQuoteRequestRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize payment gateway client
	stripeClient := gateway.NewStripeClient(cfg.Payment.SecretKey)

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService)
	productUsecase := usecases.NewProductUsecase(productRepo, categoryRepo)
	auctionUsecase := usecases.NewAuctionUsecase(productRepo, bidRepo, uow)
	paymentUsecase := usecases.NewPaymentUsecase(paymentRepo, orderRepo, productRepo, uow, stripeClient, usecases.PaymentConfigOptions{
		PublicKey:     cfg.Payment.PublicKey,
		MinimumAmount: cfg.Payment.MinimumAmount,
		Currency:      cfg.Payment.Currency,
		FeePercent:    cfg.Payment.FeePercent,
	})
	walletUsecase := usecases.NewWalletUsecase(walletRepo, orderRepo, uow)
	orderUsecase := usecases.NewOrderUsecase(orderRepo, paymentRepo, walletRepo, uow)
	enterpriseUsecase := usecases.NewEnterpriseUsecase(listingRepo, quoteRepo, cfg.Enterprise.QuoteRequestTTL)
	adminUsecase := usecases.NewAdminUsecase(userRepo, productRepo, orderRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	productHandler := handlers.NewProductHandler(productUsecase, auctionUsecase)
	paymentHandler := handlers.NewPaymentHandler(paymentUsecase)
	walletHandler := handlers.NewWalletHandler(walletUsecase)
	orderHandler := handlers.NewOrderHandler(orderUsecase)
	enterpriseHandler := handlers.NewEnterpriseHandler(enterpriseUsecase)
	adminHandler := handlers.NewAdminHandler(adminUsecase)

	// Create auth middleware
	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	settlementJob := jobs.NewAuctionSettlementJob(productRepo, bidRepo, orderRepo, uow, cfg.Payment.FeePercent, cfg.Jobs.SettlementInterval)
	go settlementJob.Start(ctx)

	quoteExpiryJob := jobs.NewQuoteRequestExpiryJob(quoteRepo, cfg.Jobs.QuoteExpiryInterval)
	go quoteExpiryJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	r.GET("/metrics", middleware.MetricsHandler())
	registerAPIV1Routes(r, routeDeps{
		authHandler:       authHandler,
		productHandler:    productHandler,
		paymentHandler:    paymentHandler,
		walletHandler:     walletHandler,
		orderHandler:      orderHandler,
		enterpriseHandler: enterpriseHandler,
		adminHandler:      adminHandler,
		authMiddleware:    authMiddleware,
	})

	// Print all registered routes for debugging
	log.Println("📋 Registered Routes:")
	for _, route := range r.Routes() {
		log.Printf("   %s %s", route.Method, route.Path)
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		settlementJob.Stop()
		quoteExpiryJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 VoltBay Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
