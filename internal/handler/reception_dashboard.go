package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/repository"
	"github.com/iliyamo/hotel-room-reservation/internal/utils"
)

// DashboardHandler serves the reception front-desk summary.
type DashboardHandler struct {
	Reports *repository.ReportRepo
}

func NewDashboardHandler(reports *repository.ReportRepo) *DashboardHandler {
	return &DashboardHandler{Reports: reports}
}

// Dashboard returns today's arrivals, today's departures and the
// current occupancy snapshot in one response. "Today" is the UTC
// date; all stored dates are UTC midnights so the windows line up.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	today := utils.Today()

	arrivals, err := h.Reports.TodayArrivals(ctx, today)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	departures, err := h.Reports.TodayDepartures(ctx, today)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	occupancy, err := h.Reports.Occupancy(ctx, today)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"date":       today.Format(utils.DateLayout),
		"arrivals":   arrivals,
		"departures": departures,
		"occupancy":  occupancy,
	})
}
