// controllers/report_controller.go
package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/neofit/paycalc_backend/calc"
	"github.com/neofit/paycalc_backend/config"
	"github.com/neofit/paycalc_backend/models"
	"github.com/neofit/paycalc_backend/repositories"
)

const monthReportCacheTTL = 5 * time.Minute

// ReportController derives monthly, weekly and trend reports from the
// stored daily records
type ReportController struct {
	DB     *mongo.Client
	Repo   *repositories.SalesRepository
	Config models.EngineConfig
}

// NewReportController creates a new report controller
func NewReportController(db *mongo.Client, cfg models.EngineConfig) *ReportController {
	return &ReportController{
		DB:     db,
		Repo:   repositories.NewSalesRepository(db),
		Config: cfg,
	}
}

func parseYearMonth(c echo.Context) (int, time.Month, error) {
	now := time.Now()

	year := now.Year()
	if raw := c.QueryParam("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1970 || parsed > 9999 {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "invalid year")
		}
		year = parsed
	}

	month := now.Month()
	if raw := c.QueryParam("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "invalid month")
		}
		month = time.Month(parsed)
	}

	return year, month, nil
}

func (rc *ReportController) fetchMonth(ctx context.Context, year int, month time.Month) (map[string]models.DailyRecord, error) {
	startKey := calc.DateKey(year, month, 1)
	endKey := calc.DateKey(year, month, calc.DaysInMonth(year, month))
	return rc.Repo.FetchRange(ctx, startKey, endKey)
}

// monthReport builds the month aggregate, going through the Redis cache
// when it is available.
func (rc *ReportController) monthReport(ctx context.Context, year int, month time.Month) (models.MonthlyReport, error) {
	cacheKey := repositories.MonthCacheKey(year, int(month))
	rdb := config.GetRedisClient()

	if rdb != nil {
		cached, err := rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var report models.MonthlyReport
			if err := json.Unmarshal([]byte(cached), &report); err == nil {
				return report, nil
			}
		} else if err != redis.Nil {
			config.GetLogger().Warnf("Redis get failed for %s: %v", cacheKey, err)
		}
	}

	records, err := rc.fetchMonth(ctx, year, month)
	if err != nil {
		return models.MonthlyReport{}, err
	}

	report := calc.AggregateMonth(records, year, month)

	if rdb != nil {
		if payload, err := json.Marshal(report); err == nil {
			if err := rdb.Set(ctx, cacheKey, payload, monthReportCacheTTL).Err(); err != nil {
				config.GetLogger().Warnf("Redis set failed for %s: %v", cacheKey, err)
			}
		}
	}

	return report, nil
}

// GetMonthReport returns week buckets, month total and category breakdown
func (rc *ReportController) GetMonthReport(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	year, month, err := parseYearMonth(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid year or month",
		})
	}

	report, err := rc.monthReport(ctx, year, month)
	if err != nil {
		config.GetLogger().Errorf("Failed to build month report %04d-%02d: %v", year, month, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to build month report",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Month report retrieved successfully",
		Data:    report,
	})
}

// GetIncentiveReport returns the incentive rate and payout for a month and
// employee type. The rate is always recomputed from the threshold table,
// only the month aggregate may come from cache.
func (rc *ReportController) GetIncentiveReport(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	year, month, err := parseYearMonth(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid year or month",
		})
	}

	employeeType := models.EmployeeType(c.QueryParam("type"))
	if employeeType == "" {
		employeeType = models.EmployeeFullTime
	}
	if _, ok := rc.Config.IncentiveRates[employeeType]; !ok {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Unknown employee type",
		})
	}

	report, err := rc.monthReport(ctx, year, month)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to build month report",
		})
	}

	rate := calc.IncentiveRate(report.Total, employeeType, rc.Config)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Incentive report retrieved successfully",
		Data: models.IncentiveReport{
			Year:         year,
			Month:        int(month),
			EmployeeType: employeeType,
			MonthTotal:   report.Total,
			Rate:         rate,
			Amount:       report.Total * rate / 100,
		},
	})
}

// GetCurrentWeek returns the approved total of the weekday-anchored window
// containing today
func (rc *ReportController) GetCurrentWeek(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	today := time.Now()
	records, err := rc.fetchMonth(ctx, today.Year(), today.Month())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch sales records",
		})
	}

	total := calc.CurrentWeekTotal(records, today)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Current week total retrieved successfully",
		Data: map[string]interface{}{
			"date":  today.Format(models.DateKeyLayout),
			"total": total,
		},
	})
}

// GetTrend returns trailing month overviews ending at the requested month
func (rc *ReportController) GetTrend(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	year, month, err := parseYearMonth(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid year or month",
		})
	}

	count := 6
	if raw := c.QueryParam("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 24 {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid months count, expected 1-24",
			})
		}
		count = parsed
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(count - 1), 0)
	startKey := calc.DateKey(first.Year(), first.Month(), 1)
	endKey := calc.DateKey(year, month, calc.DaysInMonth(year, month))

	records, err := rc.Repo.FetchRange(ctx, startKey, endKey)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch sales records",
		})
	}

	overviews := calc.TrailingMonths(records, year, month, count)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Trend retrieved successfully",
		Data:    overviews,
	})
}
