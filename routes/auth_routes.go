package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/neofit/paycalc_backend/controllers"
	"github.com/neofit/paycalc_backend/middleware"
)

// RegisterAuthRoutes sets up authentication routes
func RegisterAuthRoutes(e *echo.Echo, db *mongo.Client, authController *controllers.AuthController) {
	// Public authentication routes
	e.POST("/api/auth/login", authController.Login)

	// Authenticated profile route
	auth := e.Group("/api/auth")
	auth.Use(middleware.JWTMiddleware())
	auth.GET("/me", authController.GetCurrentStaff)

	// Staff management is admin only
	auth.POST("/staff", authController.CreateStaff, middleware.RequireUserType("admin"))
}
