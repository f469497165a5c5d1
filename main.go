package main

import (
	"context"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/neofit/paycalc_backend/config"
	"github.com/neofit/paycalc_backend/controllers"
	"github.com/neofit/paycalc_backend/middleware"
	"github.com/neofit/paycalc_backend/models"
	"github.com/neofit/paycalc_backend/repositories"
	"github.com/neofit/paycalc_backend/routes"
	"github.com/neofit/paycalc_backend/websocket"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	// Connect to Redis
	config.ConnectRedis()
	defer config.CloseRedis()

	// Connect to database
	client := config.ConnectDB()

	// Load engine configuration
	engineConfig := config.LoadEngineConfig()

	// Create WebSocket hub and mirror saved records to connected clients
	wsHub := websocket.NewHub()
	go wsHub.Run()

	salesRepo := repositories.NewSalesRepository(client)
	go salesRepo.Watch(context.Background(), func(record models.DailyRecord) {
		wsHub.NotifySalesUpdate(record)
	})

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator
	customValidator := &CustomValidator{validator: validator.New()}
	e.Validator = customValidator

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.Secure())
	e.Use(rateLimiter.Middleware())
	e.Use(middleware.SecurityHeaders())

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "Paycalc Backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	})

	// Initialize controllers
	authController := controllers.NewAuthController(client)

	// Register routes
	routes.RegisterAuthRoutes(e, client, authController)
	routes.RegisterSalesRoutes(e, client, engineConfig, wsHub)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}
