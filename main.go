package main

import (
	"fmt"
	"log"
	"time"

	"authly-be/internal/cache"
	"authly-be/internal/config"
	"authly-be/internal/controllers"
	"authly-be/internal/database"
	"authly-be/internal/jwt"
	"authly-be/internal/middleware"
	"authly-be/internal/notifier"
	"authly-be/internal/password"
	"authly-be/internal/repository"
	"authly-be/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// Connect to database, or fall back to the in-memory store for local
	// development when no DATABASE_URL is configured
	var userRepo repository.UserRepository
	if cfg.DatabaseURL != "" {
		db, err := database.NewConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := database.RunMigrations(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Println("Connected to database, migrations applied")

		userRepo = repository.NewUserRepository(db)
	} else {
		log.Println("Warning: no DATABASE_URL set, using in-memory user store (data is lost on restart)")
		userRepo = repository.NewMemoryUserRepository()
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		var err error
		cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis (%v). Continuing without cache.", err)
			cacheClient = nil
		} else {
			log.Println("Connected to Redis cache")
		}
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTTTLHours)*time.Hour,
	)

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		jwtService,
		password.NewBcryptHasher(cfg.BcryptCost),
		notifier.NewLogNotifier(cfg.FrontendURL),
		cacheClient,
		time.Duration(cfg.ResetTokenTTLMinutes)*time.Minute,
		cfg.SignupRequiredFields,
	)

	// Initialize controllers
	authController := controllers.NewAuthController(authService)

	// Create a Gin router
	router := gin.Default()

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := router.Group("/api")
	{
		api.POST("/signup", authController.Signup)
		api.POST("/login", authController.Login)
		api.POST("/forgot-password", authController.ForgotPassword)
		api.POST("/reset-password", authController.ResetPassword)

		// Protected routes - require a valid session token
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(jwtService))
		{
			protected.GET("/dashboard", authController.Dashboard)
			protected.GET("/check-auth", authController.CheckAuth)
		}

		// Diagnostic route; never mounted unless explicitly enabled
		if cfg.DebugEndpoints {
			log.Println("Warning: debug endpoints enabled, /api/check-users is reachable")
			api.GET("/check-users", authController.CheckUsers)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Server starting on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
