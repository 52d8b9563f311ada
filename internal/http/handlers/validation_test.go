package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// Router with a stubbed identity; handlers are reached with user_id already
// set, the way the JWT middleware leaves it. Only invalid inputs are sent,
// so the nil repositories are never touched.
func newValidationTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{}

	r := gin.New()
	authed := r.Group("/", func(c *gin.Context) {
		c.Set("user_id", int64(1))
		c.Next()
	})
	authed.GET("/transactions", h.ListTransactions)
	authed.POST("/transactions", h.CreateTransaction)
	authed.PUT("/transactions/:id", h.UpdateTransaction)
	authed.GET("/transactions/export/csv", h.ExportTransactionsCSV)
	authed.GET("/dashboard", h.Dashboard)
	authed.GET("/analytics/category-summary", h.CategorySummary)
	authed.PATCH("/user/preferences", h.UpdatePreferences)
	r.POST("/auth/register", h.Register)
	return r
}

type errorsResponse struct {
	Errors []FieldError `json:"errors"`
}

func requestJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, errorsResponse) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp errorsResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func hasFieldError(resp errorsResponse, field string) bool {
	for _, fe := range resp.Errors {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func TestCreateTransactionZeroAmount(t *testing.T) {
	r := newValidationTestRouter()

	w, resp := requestJSON(t, r, http.MethodPost, "/transactions",
		`{"date":"2025-01-15","description":"Grocery","amount":0,"category":"Food","type":"Expense"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	if !hasFieldError(resp, "amount") {
		t.Fatalf("expected an error referencing amount, got %+v", resp.Errors)
	}
}

func TestCreateTransactionBadType(t *testing.T) {
	r := newValidationTestRouter()

	w, resp := requestJSON(t, r, http.MethodPost, "/transactions",
		`{"date":"2025-01-15","description":"Grocery","amount":10,"category":"Food","type":"Transfer"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	if !hasFieldError(resp, "type") {
		t.Fatalf("expected an error referencing type, got %+v", resp.Errors)
	}
}

func TestCreateTransactionMissingFields(t *testing.T) {
	r := newValidationTestRouter()

	w, resp := requestJSON(t, r, http.MethodPost, "/transactions", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	for _, field := range []string{"date", "description", "amount", "category", "type"} {
		if !hasFieldError(resp, field) {
			t.Fatalf("expected an error for %s, got %+v", field, resp.Errors)
		}
	}
}

func TestCreateTransactionLongDescription(t *testing.T) {
	r := newValidationTestRouter()

	long := strings.Repeat("x", 201)
	w, resp := requestJSON(t, r, http.MethodPost, "/transactions",
		`{"date":"2025-01-15","description":"`+long+`","amount":10,"category":"Food","type":"Expense"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	if !hasFieldError(resp, "description") {
		t.Fatalf("expected an error referencing description, got %+v", resp.Errors)
	}
}

func TestCreateTransactionBadDate(t *testing.T) {
	r := newValidationTestRouter()

	w, resp := requestJSON(t, r, http.MethodPost, "/transactions",
		`{"date":"not-a-date","description":"Grocery","amount":10,"category":"Food","type":"Expense"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	if !hasFieldError(resp, "date") {
		t.Fatalf("expected an error referencing date, got %+v", resp.Errors)
	}
}

func TestUpdateTransactionBadAmount(t *testing.T) {
	r := newValidationTestRouter()

	w, resp := requestJSON(t, r, http.MethodPut, "/transactions/5", `{"amount":0.001}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	if !hasFieldError(resp, "amount") {
		t.Fatalf("expected an error referencing amount, got %+v", resp.Errors)
	}
}

func TestListTransactionsBadPagination(t *testing.T) {
	r := newValidationTestRouter()

	for _, path := range []string{
		"/transactions?page=0",
		"/transactions?page=abc",
		"/transactions?limit=0",
		"/transactions?limit=101",
	} {
		w, _ := requestJSON(t, r, http.MethodGet, path, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 got %d", path, w.Code)
		}
	}
}

func TestListTransactionsBadDates(t *testing.T) {
	r := newValidationTestRouter()

	w, resp := requestJSON(t, r, http.MethodGet, "/transactions?startDate=nope", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	if !hasFieldError(resp, "startDate") {
		t.Fatalf("expected an error referencing startDate, got %+v", resp.Errors)
	}
}

func TestDashboardBadMonthYear(t *testing.T) {
	r := newValidationTestRouter()

	for _, path := range []string{
		"/dashboard?month=0",
		"/dashboard?month=13",
		"/dashboard?year=1999",
		"/dashboard?year=2101",
		"/analytics/category-summary?month=13",
		"/analytics/category-summary?year=3000",
	} {
		w, _ := requestJSON(t, r, http.MethodGet, path, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 got %d", path, w.Code)
		}
	}
}

func TestExportBadDates(t *testing.T) {
	r := newValidationTestRouter()

	w, resp := requestJSON(t, r, http.MethodGet, "/transactions/export/csv?endDate=garbage", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	if !hasFieldError(resp, "endDate") {
		t.Fatalf("expected an error referencing endDate, got %+v", resp.Errors)
	}
}

func TestPreferencesBadBody(t *testing.T) {
	r := newValidationTestRouter()

	w, _ := requestJSON(t, r, http.MethodPatch, "/user/preferences", `{"darkMode":"yes"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestRegisterBadEmail(t *testing.T) {
	r := newValidationTestRouter()

	w, resp := requestJSON(t, r, http.MethodPost, "/auth/register",
		`{"username":"demo","email":"not-an-email","password":"secret1"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	if !hasFieldError(resp, "email") {
		t.Fatalf("expected an error referencing email, got %+v", resp.Errors)
	}
}
