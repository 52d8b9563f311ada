package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"finance_tracker/internal/domain"
	"finance_tracker/internal/logger"
	"finance_tracker/internal/repository"

	"github.com/gin-gonic/gin"
)

// queryFilter builds the repository filter from the request's optional
// startDate/endDate/category/description params. withDescription is false
// for the CSV export, which does not filter on description.
func queryFilter(c *gin.Context, userID int64, withDescription bool) (repository.TransactionFilter, []FieldError) {
	filter := repository.TransactionFilter{UserID: userID}
	var errs []FieldError

	if raw := c.Query("startDate"); raw != "" {
		if t, ok := parseDateParam(raw); ok {
			filter.StartDate = &t
		} else {
			errs = append(errs, FieldError{Field: "startDate", Message: "must be a valid date"})
		}
	}
	if raw := c.Query("endDate"); raw != "" {
		if t, ok := parseDateParam(raw); ok {
			filter.EndDate = &t
		} else {
			errs = append(errs, FieldError{Field: "endDate", Message: "must be a valid date"})
		}
	}
	filter.Category = c.Query("category")
	if withDescription {
		filter.Description = c.Query("description")
	}

	return filter, errs
}

// ListTransactions returns one page of the caller's transactions, newest
// first, with pagination metadata.
func (h *Handler) ListTransactions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	filter, errs := queryFilter(c, userID, true)

	page, ok := intParam(c, "page", 1, 1, math.MaxInt32)
	if !ok {
		errs = append(errs, FieldError{Field: "page", Message: "must be an integer of at least 1"})
	}
	limit, ok := intParam(c, "limit", 10, 1, 100)
	if !ok {
		errs = append(errs, FieldError{Field: "limit", Message: "must be an integer between 1 and 100"})
	}
	if len(errs) > 0 {
		badRequest(c, errs)
		return
	}

	ctx := c.Request.Context()
	transactions, total, err := h.TransactionRepo.List(ctx, filter, page, limit)
	if err != nil {
		serverError(c, "failed to list transactions", err)
		return
	}
	if transactions == nil {
		transactions = []*domain.Transaction{}
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": transactions,
		"pagination": domain.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

type createTransactionRequest struct {
	Date        string   `json:"date" binding:"required"`
	Description string   `json:"description" binding:"required,min=1,max=200"`
	Amount      *float64 `json:"amount" binding:"required,gte=0.01"`
	Category    string   `json:"category" binding:"required,min=1"`
	Type        string   `json:"type" binding:"required,oneof=Income Expense"`
}

// CreateTransaction validates the payload and persists a new transaction
// owned by the caller. The owner always comes from the token, never from
// the payload.
func (h *Handler) CreateTransaction(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, bindingErrors(err))
		return
	}

	date, ok := parseDateParam(req.Date)
	if !ok {
		badRequest(c, []FieldError{{Field: "date", Message: "must be a valid date"}})
		return
	}

	tx := &domain.Transaction{
		UserID:      userID,
		Date:        date,
		Description: req.Description,
		Amount:      *req.Amount,
		Category:    req.Category,
		Type:        req.Type,
	}

	if err := h.TransactionRepo.Create(c.Request.Context(), tx); err != nil {
		serverError(c, "failed to create transaction", err)
		return
	}

	c.JSON(http.StatusCreated, tx)
}

type updateTransactionRequest struct {
	Date        *string  `json:"date"`
	Description *string  `json:"description" binding:"omitempty,min=1,max=200"`
	Amount      *float64 `json:"amount" binding:"omitempty,gte=0.01"`
	Category    *string  `json:"category" binding:"omitempty,min=1"`
	Type        *string  `json:"type" binding:"omitempty,oneof=Income Expense"`
}

// UpdateTransaction applies a partial update. A transaction that does not
// exist or belongs to someone else is a 404 either way.
func (h *Handler) UpdateTransaction(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	var req updateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, bindingErrors(err))
		return
	}

	upd := repository.TransactionUpdate{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Type:        req.Type,
	}
	if req.Date != nil {
		date, ok := parseDateParam(*req.Date)
		if !ok {
			badRequest(c, []FieldError{{Field: "date", Message: "must be a valid date"}})
			return
		}
		upd.Date = &date
	}

	tx, err := h.TransactionRepo.Update(c.Request.Context(), id, userID, upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		serverError(c, "failed to update transaction", err)
		return
	}

	c.JSON(http.StatusOK, tx)
}

// DeleteTransaction removes the caller's transaction.
func (h *Handler) DeleteTransaction(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	if err := h.TransactionRepo.Delete(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		serverError(c, "failed to delete transaction", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

// ExportTransactionsCSV streams the unpaginated filtered list as a CSV
// attachment, same ordering as the list endpoint.
func (h *Handler) ExportTransactionsCSV(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	filter, errs := queryFilter(c, userID, false)
	if len(errs) > 0 {
		badRequest(c, errs)
		return
	}

	transactions, err := h.TransactionRepo.ListAll(c.Request.Context(), filter)
	if err != nil {
		serverError(c, "failed to export transactions", err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="transactions.csv"`)
	c.Status(http.StatusOK)

	if err := writeTransactionsCSV(c.Writer, transactions); err != nil {
		logger.Error("csv write failed", "error", err)
	}
}
