// controllers/approval_controller.go
package controllers

import (
	"context"
	"errors"
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

// ApprovalController gates the approved/pending transitions of daily records
type ApprovalController struct {
	DB     *mongo.Client
	Repo   *repositories.SalesRepository
	Config models.EngineConfig
}

// NewApprovalController creates a new approval controller
func NewApprovalController(db *mongo.Client, cfg models.EngineConfig) *ApprovalController {
	return &ApprovalController{
		DB:     db,
		Repo:   repositories.NewSalesRepository(db),
		Config: cfg,
	}
}

func (ac *ApprovalController) transition(c echo.Context, apply func(models.DailyRecord, string, string) (models.DailyRecord, error), successMessage string) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	dateKey, err := parseDateKey(c.Param("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid date, expected YYYY-MM-DD",
		})
	}

	var req models.ApprovalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Password is required",
		})
	}

	record, err := ac.Repo.Get(ctx, dateKey)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch sales record",
		})
	}

	email := middleware.ExtractEmail(c)
	updated, err := apply(record, req.Password, email)
	if err != nil {
		if errors.Is(err, calc.ErrIncorrectPassword) {
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: "Incorrect approval password",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update approval state",
		})
	}

	if err := ac.Repo.Save(ctx, updated); err != nil {
		config.GetLogger().Errorf("Failed to save record %s: %v", dateKey, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save sales record",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: successMessage,
		Data:    updated,
	})
}

// ApproveDay marks a day's record as approved
func (ac *ApprovalController) ApproveDay(c echo.Context) error {
	return ac.transition(c, func(record models.DailyRecord, password, email string) (models.DailyRecord, error) {
		return calc.Approve(record, password, ac.Config, email)
	}, "Record approved successfully")
}

// UnlockDay returns an approved record to pending
func (ac *ApprovalController) UnlockDay(c echo.Context) error {
	return ac.transition(c, func(record models.DailyRecord, password, email string) (models.DailyRecord, error) {
		return calc.Unlock(record, password, ac.Config, email)
	}, "Record unlocked successfully")
}
