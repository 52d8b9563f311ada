package handlers

import (
	"net/http"
	"time"

	"finance_tracker/internal/domain"

	"github.com/gin-gonic/gin"
)

// monthYearParams validates the optional month/year pair shared by the
// dashboard and analytics endpoints.
func monthYearParams(c *gin.Context) (month, year int, errs []FieldError) {
	month, ok := intParam(c, "month", 0, 1, 12)
	if !ok {
		errs = append(errs, FieldError{Field: "month", Message: "must be an integer between 1 and 12"})
	}
	year, ok = intParam(c, "year", 0, 2000, 2100)
	if !ok {
		errs = append(errs, FieldError{Field: "year", Message: "must be an integer between 2000 and 2100"})
	}
	return month, year, errs
}

// Dashboard returns the month's income/expense totals, their balance and
// the five most recent transactions overall.
func (h *Handler) Dashboard(c *gin.Context) {
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
	ctx := c.Request.Context()

	income, expense, err := h.TransactionRepo.SumByType(ctx, userID, from, to)
	if err != nil {
		serverError(c, "failed to compute monthly totals", err)
		return
	}

	recent, err := h.TransactionRepo.Recent(ctx, userID, 5)
	if err != nil {
		serverError(c, "failed to load recent transactions", err)
		return
	}
	if recent == nil {
		recent = []*domain.Transaction{}
	}

	c.JSON(http.StatusOK, domain.DashboardSummary{
		Balance:            income - expense,
		TotalIncome:        income,
		TotalExpense:       expense,
		RecentTransactions: recent,
	})
}
