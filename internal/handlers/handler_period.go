package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dharmawipraja/accounting-api-sub000/internal/apperrors"
	portssvc "github.com/dharmawipraja/accounting-api-sub000/internal/core/ports/services"
	"github.com/dharmawipraja/accounting-api-sub000/internal/middleware"
)

// periodHandler handles HTTP requests for period closing.
type periodHandler struct {
	closingService portssvc.ClosingSvcFacade
}

func newPeriodHandler(cs portssvc.ClosingSvcFacade) *periodHandler {
	return &periodHandler{closingService: cs}
}

// registerPeriodRoutes registers routes related to yearly period results.
func registerPeriodRoutes(rg *gin.RouterGroup, closingService portssvc.ClosingSvcFacade) {
	h := newPeriodHandler(closingService)

	periods := rg.Group("/periods")
	{
		periods.POST("/:year/close", h.closePeriod)
		periods.POST("/:year/lock", h.lockPeriod)
	}
}

func yearParam(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1900 || year > 9999 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return 0, false
	}
	return year, true
}

func (h *periodHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, ok := yearParam(c)
	if !ok {
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.closingService.ClosePeriod(c.Request.Context(), year, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrPeriodClosed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrResultAccountNotFound):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Period closing failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Period closing failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *periodHandler) lockPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, ok := yearParam(c)
	if !ok {
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.closingService.LockPeriod(c.Request.Context(), year, actorID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Period result not found"})
		case errors.Is(err, apperrors.ErrPeriodClosed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Period lock failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Period lock failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"year": year, "closed": true})
}
