package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/finacore/financials-api/config"
	"github.com/finacore/financials-api/handlers"
	"github.com/finacore/financials-api/middleware"
	"github.com/finacore/financials-api/routes"
	"github.com/finacore/financials-api/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// The database only backs the snapshot cache and classification rules;
	// the service can run without it, deriving on every request.
	var db *sql.DB
	if os.Getenv("DATABASE_URL") != "" {
		var err error
		db, err = config.InitDB()
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer db.Close()

		log.Println("✅ Database connected successfully")

		if err := config.RunMigrations(db); err != nil {
			log.Fatal("Failed to run migrations:", err)
		}

		go scheduleSnapshotCleaning(db)
	} else {
		log.Println("⚠️ DATABASE_URL not set, running without snapshot cache")
	}

	wsHandler := handlers.NewWSHandler()

	router := gin.Default()

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	corsConfig := cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"GET", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	router.Use(func(c *gin.Context) {
		start := time.Now()
		log.Printf("📨 %s %s from %s", c.Request.Method, c.Request.URL.Path, c.ClientIP())
		c.Next()
		duration := time.Since(start)
		log.Printf("✅ %s %s - %d (%v)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), duration)
	})

	router.Use(middleware.RateLimiter())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/ws/reports", wsHandler.HandleWS)

		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			routes.SetupReportRoutes(protected, db, wsHandler)
			if db != nil {
				routes.SetupClassificationRoutes(protected, db)
			}
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 Server starting on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func scheduleSnapshotCleaning(db *sql.DB) {
	snapshots := services.NewSnapshotService(db)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	cleanExpiredSnapshots(snapshots)
	for range ticker.C {
		cleanExpiredSnapshots(snapshots)
	}
}

func cleanExpiredSnapshots(snapshots *services.SnapshotService) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	rows, err := snapshots.CleanExpired(ctx)
	if err != nil {
		log.Printf("❌ Snapshot cleanup failed: %v", err)
		return
	}
	if rows > 0 {
		log.Printf("🧹 Cleaned %d expired report snapshots", rows)
	}
}
