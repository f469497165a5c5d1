// controllers/admin_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/neofit/paycalc_backend/calc"
	"github.com/neofit/paycalc_backend/config"
	"github.com/neofit/paycalc_backend/middleware"
	"github.com/neofit/paycalc_backend/models"
	"github.com/neofit/paycalc_backend/repositories"
)

// AdminController hosts maintenance operations on the sales collection
type AdminController struct {
	DB   *mongo.Client
	Repo *repositories.SalesRepository
}

// NewAdminController creates a new admin controller
func NewAdminController(db *mongo.Client) *AdminController {
	return &AdminController{
		DB:   db,
		Repo: repositories.NewSalesRepository(db),
	}
}

// RepairAmounts rewrites corrupted numeric fields across a date range.
// Every stored amount and detail price is re-normalized; when a record has
// details, its amount is reset to their sum. Only changed documents are
// written back.
func (ac *AdminController) RepairAmounts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
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

	records, err := ac.Repo.FetchRange(ctx, startKey, endKey)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch sales records",
		})
	}

	email := middleware.ExtractEmail(c)
	results := []models.RepairResult{}

	for _, record := range records {
		repaired := record
		repaired.Details = calc.NormalizeDetails(record.Details)

		if len(repaired.Details) > 0 {
			sum := 0.0
			for _, detail := range repaired.Details {
				sum += detail.Price
			}
			repaired.Amount = sum
		} else {
			repaired.Amount = calc.NormalizeAmount(record.Amount)
		}

		if repaired.Amount == record.Amount && !detailsChanged(record.Details, repaired.Details) {
			continue
		}

		repaired.ModifiedBy = email
		if err := ac.Repo.Save(ctx, repaired); err != nil {
			config.GetLogger().Errorf("Failed to repair record %s: %v", record.Date, err)
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to save repaired record " + record.Date,
			})
		}

		results = append(results, models.RepairResult{
			Date:      record.Date,
			OldAmount: record.Amount,
			NewAmount: repaired.Amount,
		})
	}

	config.GetLogger().Infof("Repair pass %s..%s rewrote %d record(s)", startKey, endKey, len(results))

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Repair pass completed",
		Data:    results,
	})
}

func detailsChanged(before, after []models.SaleDetail) bool {
	if len(before) != len(after) {
		return true
	}
	for i := range before {
		if before[i].Price != after[i].Price {
			return true
		}
	}
	return false
}
