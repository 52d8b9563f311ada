package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CategorySummary returns per-category totals for the month, sorted by
// total descending. The aggregation happens in the database.
func (h *Handler) CategorySummary(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	month, year, errs := monthYearParams(c)
	if len(errs) > 0 {
		badRequest(c, errs)
		return
	}

	from, to := monthWindow(month, year, time.Now())
	summary, err := h.TransactionRepo.CategorySummary(c.Request.Context(), userID, from, to)
	if err != nil {
		serverError(c, "failed to compute category summary", err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
