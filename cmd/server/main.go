package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging
	"time"    // Token ttl arithmetic

	"arb_backend/internal/api"        // Custom package for API handlers
	"arb_backend/internal/config"     // Custom package for configuration
	"arb_backend/internal/middleware" // Custom package for middleware
	"arb_backend/internal/service"    // Business services
	"arb_backend/internal/store"      // Persistence layer

	"github.com/gin-contrib/cors"  // CORS middleware
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// A missing signing secret is a configuration error, refuse to serve
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}

	// Connect to the database. TranslateError makes duplicate-key and
	// foreign-key violations detectable as gorm sentinel errors.
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Wire stores and services
	userStore := store.NewGormUserStore(db)
	walletStore := store.NewGormWalletStore(db)
	authSvc := service.NewAuthService(userStore, cfg.JWTSecret, time.Duration(cfg.TokenTTLMin)*time.Minute)
	ledgerSvc := service.NewLedgerService(walletStore)

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Allow all origins so the development frontend can talk to the API
	r.Use(cors.Default())

	// Auth routes
	authGroup := r.Group("/auth")
	authGroup.POST("/register", api.RegisterHandler(authSvc)) // Registration endpoint
	authGroup.POST("/login", api.LoginHandler(authSvc))       // Login endpoint
	authGroup.GET("/me", middleware.JWTAuthMiddleware(cfg.JWTSecret), api.MeHandler(authSvc))

	// Wallet routes
	walletGroup := r.Group("/wallets")
	walletGroup.POST("", api.CreateWalletHandler(ledgerSvc, redisClient))      // Get-or-create wallet endpoint
	walletGroup.GET("/:user_id", api.GetWalletHandler(ledgerSvc, redisClient)) // Get wallet endpoint
	walletGroup.POST("/deposit", api.DepositHandler(ledgerSvc, redisClient))   // Deposit endpoint

	// Root and debug routes
	r.GET("/", api.RootHandler())                                       // Liveness endpoint
	r.GET("/debug/users", api.ListUsersHandler(userStore, redisClient)) // Development-only user listing

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
