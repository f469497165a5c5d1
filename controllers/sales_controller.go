// controllers/sales_controller.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/neofit/paycalc_backend/calc"
	"github.com/neofit/paycalc_backend/config"
	"github.com/neofit/paycalc_backend/middleware"
	"github.com/neofit/paycalc_backend/models"
	"github.com/neofit/paycalc_backend/repositories"
)

// SalesController manages daily sales records and their line items
type SalesController struct {
	DB   *mongo.Client
	Repo *repositories.SalesRepository
}

// NewSalesController creates a new sales controller
func NewSalesController(db *mongo.Client) *SalesController {
	return &SalesController{
		DB:   db,
		Repo: repositories.NewSalesRepository(db),
	}
}

func parseDateKey(raw string) (string, error) {
	t, err := time.Parse(models.DateKeyLayout, raw)
	if err != nil {
		return "", err
	}
	return t.Format(models.DateKeyLayout), nil
}

// GetSalesRange returns the stored records between start and end date keys
func (sc *SalesController) GetSalesRange(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	startKey, err := parseDateKey(c.QueryParam("start"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid start date, expected YYYY-MM-DD",
		})
	}
	endKey, err := parseDateKey(c.QueryParam("end"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid end date, expected YYYY-MM-DD",
		})
	}
	if endKey < startKey {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "End date must not precede start date",
		})
	}

	records, err := sc.Repo.FetchRange(ctx, startKey, endKey)
	if err != nil {
		config.GetLogger().Errorf("Failed to fetch sales range %s..%s: %v", startKey, endKey, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch sales records",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Sales records retrieved successfully",
		Data:    records,
	})
}

// GetDailyRecord returns one day's record, implicit-empty when absent
func (sc *SalesController) GetDailyRecord(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	dateKey, err := parseDateKey(c.Param("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid date, expected YYYY-MM-DD",
		})
	}

	record, err := sc.Repo.Get(ctx, dateKey)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch sales record",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Sales record retrieved successfully",
		Data:    record,
	})
}

// AddSaleDetail appends a line item to a pending day
func (sc *SalesController) AddSaleDetail(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	dateKey, err := parseDateKey(c.Param("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid date, expected YYYY-MM-DD",
		})
	}

	var req models.AddSaleDetailRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid sale detail: " + err.Error(),
		})
	}

	record, err := sc.Repo.Get(ctx, dateKey)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch sales record",
		})
	}

	email := middleware.ExtractEmail(c)
	if record.CreatedBy == "" {
		record.CreatedBy = email
	}

	detail := models.SaleDetail{
		ID:           uuid.New().String(),
		CustomerName: req.CustomerName,
		Product:      req.Product,
		Price:        req.Price,
		Category:     req.Category,
		Timestamp:    time.Now().Format(time.RFC3339),
	}

	updated, err := calc.AddDetail(record, detail)
	if err != nil {
		if errors.Is(err, calc.ErrRecordLocked) {
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "Record is locked, unlock it before editing",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to add sale detail",
		})
	}

	updated.ModifiedBy = email
	if err := sc.Repo.Save(ctx, updated); err != nil {
		config.GetLogger().Errorf("Failed to save record %s: %v", dateKey, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save sales record",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Sale detail added successfully",
		Data:    updated,
	})
}

// RemoveSaleDetail drops a line item from a pending day
func (sc *SalesController) RemoveSaleDetail(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	dateKey, err := parseDateKey(c.Param("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid date, expected YYYY-MM-DD",
		})
	}

	detailID := c.Param("id")
	if detailID == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Detail id is required",
		})
	}

	record, err := sc.Repo.Get(ctx, dateKey)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch sales record",
		})
	}

	updated, err := calc.RemoveDetail(record, detailID)
	if err != nil {
		if errors.Is(err, calc.ErrRecordLocked) {
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "Record is locked, unlock it before editing",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to remove sale detail",
		})
	}

	updated.ModifiedBy = middleware.ExtractEmail(c)
	if err := sc.Repo.Save(ctx, updated); err != nil {
		config.GetLogger().Errorf("Failed to save record %s: %v", dateKey, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save sales record",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Sale detail removed successfully",
		Data:    updated,
	})
}
