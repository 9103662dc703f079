// Package api exposes the timesheet over HTTP.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hyaku122/kintai-final/internal/attendance"
	"github.com/hyaku122/kintai-final/internal/timesheet"
	"github.com/hyaku122/kintai-final/pkg/dateutil"
	"go.uber.org/zap"
)

// Handler serves the timesheet endpoints
type Handler struct {
	manager *timesheet.Manager
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(manager *timesheet.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		manager: manager,
		logger:  logger,
	}
}

// Router builds the gin engine with every route registered.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware(), LoggerMiddleware(h.logger))

	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	api.GET("/days/:date", h.GetDay)
	api.GET("/months/:year/:month", h.GetMonth)
	api.GET("/holidays/:year", h.GetHolidays)
	api.PUT("/records/:date", h.PutRecord)
	api.GET("/company-holidays", h.ListCompanyHolidays)
	api.POST("/company-holidays", h.AddCompanyHoliday)
	api.DELETE("/company-holidays/:date", h.DeleteCompanyHoliday)

	return r
}

type companyHolidayRequest struct {
	Date string `json:"date" binding:"required"`
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, Success(gin.H{"status": "ok"}))
}

func (h *Handler) GetDay(c *gin.Context) {
	view, err := h.manager.Day(c.Param("date"))
	if err != nil {
		h.fail(c, err, "Failed to load day")
		return
	}
	h.ok(c, view)
}

func (h *Handler) GetMonth(c *gin.Context) {
	year, err := parseInt(c.Param("year"))
	if err != nil {
		h.fail(c, err, "Invalid year")
		return
	}
	month, err := parseInt(c.Param("month"))
	if err != nil {
		h.fail(c, err, "Invalid month")
		return
	}

	summary, err := h.manager.Month(year, time.Month(month))
	if err != nil {
		h.fail(c, err, "Failed to summarize month")
		return
	}
	h.ok(c, summary)
}

func (h *Handler) GetHolidays(c *gin.Context) {
	year, err := parseInt(c.Param("year"))
	if err != nil {
		h.fail(c, err, "Invalid year")
		return
	}
	h.ok(c, h.manager.Holidays(year))
}

func (h *Handler) PutRecord(c *gin.Context) {
	var req timesheet.RecordUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	view, err := h.manager.Apply(c.Param("date"), req)
	if err != nil {
		h.fail(c, err, "Failed to update record")
		return
	}
	h.ok(c, view)
}

func (h *Handler) ListCompanyHolidays(c *gin.Context) {
	h.ok(c, h.manager.CompanyHolidays())
}

func (h *Handler) AddCompanyHoliday(c *gin.Context) {
	var req companyHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond(c, http.StatusBadRequest, err, "Invalid request: date required")
		return
	}

	added, err := h.manager.AddCompanyHolidays(req.Date)
	if err != nil {
		h.fail(c, err, "Failed to add company holiday")
		return
	}
	h.ok(c, gin.H{"added": added, "dates": h.manager.CompanyHolidays()})
}

func (h *Handler) DeleteCompanyHoliday(c *gin.Context) {
	key := c.Param("date")
	removed, err := h.manager.RemoveCompanyHoliday(key)
	if err != nil {
		h.fail(c, err, "Failed to remove company holiday")
		return
	}
	if !removed {
		h.respond(c, http.StatusNotFound, fmt.Errorf("%s is not a company holiday", key), "Not found")
		return
	}
	h.ok(c, gin.H{"removed": key, "dates": h.manager.CompanyHolidays()})
}

func (h *Handler) ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Success(data))
}

// fail picks the status from the error: bad input is 400, anything else 500.
func (h *Handler) fail(c *gin.Context, err error, msg string) {
	h.respond(c, statusFor(err), err, msg)
}

func (h *Handler) respond(c *gin.Context, status int, err error, msg string) {
	fields := []zap.Field{
		zap.String("request_id", c.GetString("request_id")),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, fields...)
	} else {
		h.logger.Warn(msg, fields...)
	}
	c.JSON(status, Failure(status, msg+": "+err.Error()))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, dateutil.ErrInvalidDate),
		errors.Is(err, attendance.ErrMalformedTime),
		errors.Is(err, attendance.ErrUnknownWorkKind),
		errors.Is(err, attendance.ErrInputNotAllowed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", dateutil.ErrInvalidDate, s)
	}
	return n, nil
}
