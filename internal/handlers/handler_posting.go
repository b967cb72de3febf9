package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dharmawipraja/accounting-api-sub000/internal/apperrors"
	portssvc "github.com/dharmawipraja/accounting-api-sub000/internal/core/ports/services"
	"github.com/dharmawipraja/accounting-api-sub000/internal/dto"
	"github.com/dharmawipraja/accounting-api-sub000/internal/middleware"
)

// postingHandler handles HTTP requests for the posting and unposting engines.
type postingHandler struct {
	postingService portssvc.PostingSvcFacade
	closingService portssvc.ClosingSvcFacade
}

func newPostingHandler(ps portssvc.PostingSvcFacade, cs portssvc.ClosingSvcFacade) *postingHandler {
	return &postingHandler{postingService: ps, closingService: cs}
}

// registerPostingRoutes registers routes related to posting, unposting and
// balance application.
func registerPostingRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade, closingService portssvc.ClosingSvcFacade) {
	h := newPostingHandler(postingService, closingService)

	posting := rg.Group("/posting")
	{
		posting.POST("/post", h.postForDate)
		posting.POST("/unpost", h.unpostForDate)
		posting.POST("/apply-balances", h.applyBalances)
		posting.POST("/revert-balances", h.revertBalances)
	}
}

func bindPostingRequest(c *gin.Context) (time.Time, string, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind posting request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return time.Time{}, "", false
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date: " + err.Error()})
		return time.Time{}, "", false
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return time.Time{}, "", false
	}
	return date, actorID, true
}

func (h *postingHandler) postForDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	date, actorID, ok := bindPostingRequest(c)
	if !ok {
		return
	}

	result, err := h.postingService.PostForDate(c.Request.Context(), date, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAlreadyPosted), errors.Is(err, apperrors.ErrNothingToPost):
			logger.Warn("Posting run rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrAccountsNotFound):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Posting run failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Posting failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *postingHandler) unpostForDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	date, actorID, ok := bindPostingRequest(c)
	if !ok {
		return
	}

	result, err := h.postingService.UnpostForDate(c.Request.Context(), date, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrCannotUnpost), errors.Is(err, apperrors.ErrNothingToUnpost):
			logger.Warn("Unposting run rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Unposting run failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unposting failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *postingHandler) applyBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	date, actorID, ok := bindPostingRequest(c)
	if !ok {
		return
	}

	result, err := h.closingService.ApplyBalancesUpTo(c.Request.Context(), date, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAccountDetailNotFound):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Balance application failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Balance application failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *postingHandler) revertBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	date, actorID, ok := bindPostingRequest(c)
	if !ok {
		return
	}

	result, err := h.closingService.RevertBalancesFor(c.Request.Context(), date, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrPeriodClosed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrAccountDetailNotFound):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Balance reversal failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Balance reversal failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
