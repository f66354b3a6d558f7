package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"gigboard/internal/database"
	"gigboard/internal/middleware"
	"gigboard/internal/modules/auth"
	"gigboard/internal/modules/bid"
	"gigboard/internal/modules/gig"
	"gigboard/internal/modules/notification"
	jwtsvc "gigboard/internal/pkg/jwt"
	"gigboard/internal/repository"
	"gigboard/internal/ws"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	gigRepo := repository.NewGigRepository(db)
	bidRepo := repository.NewBidRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)

	hub := ws.NewHub()
	wsHandler := ws.NewHandler(hub, j)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	gigService := gig.NewService(gigRepo)
	gigHandler := gig.NewHandler(gigService)

	notifService := notification.NewService(notifRepo, hub)
	notifHandler := notification.NewHandler(notifService)

	bidService := bid.NewService(bidRepo, gigRepo, notifService)
	bidHandler := bid.NewHandler(bidService)

	r := gin.Default()
	r.Use(middleware.RequestID())

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/ws/notifications", wsHandler.HandleWebSocket)

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		gigHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			gigHandler.RegisterProtectedRoutes(protected)
			bidHandler.RegisterRoutes(protected)
			notifHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
