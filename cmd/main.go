package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"creator-platform/internal/auth"
	"creator-platform/internal/blockchain"
	"creator-platform/internal/config"
	"creator-platform/internal/database"
	"creator-platform/internal/handlers"
	"creator-platform/internal/jobs"
	"creator-platform/internal/oauth"
	"creator-platform/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize TRON client
	tronClient := blockchain.NewTronClient(
		cfg.Tron.NodeURL,
		cfg.Tron.PrivateKey,
		cfg.Tron.OwnerAddress,
		cfg.Tron.USDTContract,
		cfg.Tron.FeeLimit,
	)

	// Initialize OAuth providers
	googleProvider := oauth.NewGoogleProvider(
		cfg.Google.ClientID,
		cfg.Google.ClientSecret,
		cfg.Google.RedirectURL,
	)
	appleProvider := oauth.NewAppleProvider(
		cfg.Apple.ClientID,
		cfg.Apple.ClientSecret,
		cfg.Apple.RedirectURL,
	)

	// Initialize services
	authService := services.NewAuthService(database.GetDB())
	creatorService := services.NewCreatorService(database.GetDB())
	paymentService := services.NewPaymentService(database.GetDB(), tronClient)
	notificationService := services.NewNotificationService(database.GetDB())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, googleProvider, appleProvider, cfg.Server.FrontendURL)
	creatorHandler := handlers.NewCreatorHandler(creatorService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Start the daily reminder sweep
	reminderJob := jobs.NewReminderJob(notificationService)
	reminderJob.Start(24 * time.Hour)
	log.Println("Early bird reminder job started")

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Welcome and health endpoints
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the creator platform backend!"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Authentication routes
	authRoutes := router.Group("/api/auth")
	{
		authRoutes.POST("/signup", authHandler.Signup)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.GET("/google", authHandler.GoogleRedirect)
		authRoutes.GET("/google/callback", authHandler.GoogleCallback)
		authRoutes.GET("/apple", authHandler.AppleRedirect)
		authRoutes.GET("/apple/callback", authHandler.AppleCallback)
	}

	// Creator routes
	api := router.Group("/api")
	{
		api.GET("/creators", creatorHandler.ListCreators)
		api.POST("/creators/register", creatorHandler.Register)
		api.PUT("/creators/:id/conditions", creatorHandler.UpdateConditions)
		api.GET("/creators/:id/status", creatorHandler.GetStatus)
		api.GET("/creators/:id/notifications", notificationHandler.ListNotifications)

		api.POST("/payment/confirm", paymentHandler.ConfirmPayment)

		api.POST("/notifications/send", notificationHandler.SendNotification)
		api.GET("/notifications/send-reminders", notificationHandler.SendReminders)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
