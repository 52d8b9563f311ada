package handlers

import (
	"encoding/csv"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"
	"unicode"

	"finance_tracker/internal/domain"
	"finance_tracker/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldError names the offending input field, mirroring the shape clients
// already consume for 400 responses.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func badRequest(c *gin.Context, errs []FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
}

func serverError(c *gin.Context, msg string, err error) {
	logger.Error(msg, "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
}

// bindingErrors converts a gin binding failure into per-field errors.
// Anything that is not a validator error (malformed JSON and the like)
// becomes a single "body" error.
func bindingErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Message: "invalid request body"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   lowerFirst(fe.Field()),
			Message: validationMessage(fe),
		})
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of " + fe.Param()
	case "gte", "min":
		return "must be at least " + fe.Param()
	case "lte", "max":
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// parseDateParam accepts RFC3339 timestamps or plain calendar dates.
func parseDateParam(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// intParam parses an optional integer query param with inclusive bounds.
// Missing params return def with ok=true.
func intParam(c *gin.Context, name string, def, min, max int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min || n > max {
		return 0, false
	}
	return n, true
}

// monthWindow returns the inclusive date range covering one calendar month.
// Zero month/year resolve to now's month and year.
func monthWindow(month, year int, now time.Time) (time.Time, time.Time) {
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// writeTransactionsCSV serializes transactions in the export column order.
func writeTransactionsCSV(w io.Writer, txs []*domain.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"date", "description", "amount", "category", "type"}); err != nil {
		return err
	}
	for _, tx := range txs {
		record := []string{
			tx.Date.Format(time.RFC3339),
			tx.Description,
			strconv.FormatFloat(tx.Amount, 'f', -1, 64),
			tx.Category,
			tx.Type,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
