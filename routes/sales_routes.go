package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/neofit/paycalc_backend/controllers"
	"github.com/neofit/paycalc_backend/middleware"
	"github.com/neofit/paycalc_backend/models"
	ws "github.com/neofit/paycalc_backend/websocket"
)

// RegisterSalesRoutes sets up the sales, report and admin routes
func RegisterSalesRoutes(e *echo.Echo, db *mongo.Client, cfg models.EngineConfig, hub *ws.Hub) {
	salesController := controllers.NewSalesController(db)
	approvalController := controllers.NewApprovalController(db, cfg)
	reportController := controllers.NewReportController(db, cfg)
	adminController := controllers.NewAdminController(db)

	// Daily sales records
	sales := e.Group("/api/sales")
	sales.Use(middleware.JWTMiddleware())
	sales.GET("", salesController.GetSalesRange)
	sales.GET("/:date", salesController.GetDailyRecord)
	sales.POST("/:date/details", salesController.AddSaleDetail)
	sales.DELETE("/:date/details/:id", salesController.RemoveSaleDetail)
	sales.POST("/:date/approve", approvalController.ApproveDay)
	sales.POST("/:date/unlock", approvalController.UnlockDay)

	// Derived reports
	reports := e.Group("/api/reports")
	reports.Use(middleware.JWTMiddleware())
	reports.GET("/month", reportController.GetMonthReport)
	reports.GET("/incentive", reportController.GetIncentiveReport)
	reports.GET("/week", reportController.GetCurrentWeek)
	reports.GET("/trend", reportController.GetTrend)

	// Maintenance
	admin := e.Group("/api/admin")
	admin.Use(middleware.JWTMiddleware(), middleware.RequireUserType("admin"))
	admin.POST("/repair-amounts", adminController.RepairAmounts)

	// Live record updates
	e.GET("/api/ws", func(c echo.Context) error {
		userID, _ := c.Get("userId").(string)
		return ws.HandleWebSocket(c, hub, userID)
	}, middleware.JWTMiddleware())
}
