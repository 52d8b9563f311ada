package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"finance_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

func newJWTTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "middleware-test-secret")
	service.InitJWT()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWT(), func(c *gin.Context) {
		uid, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": uid})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTMissingHeader(t *testing.T) {
	r := newJWTTestRouter(t)

	if w := doRequest(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}
}

func TestJWTMalformedHeader(t *testing.T) {
	r := newJWTTestRouter(t)

	for _, header := range []string{"Bearer", "Bearer ", "Token abc", "abc"} {
		if w := doRequest(r, header); w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401 got %d", header, w.Code)
		}
	}
}

func TestJWTInvalidToken(t *testing.T) {
	r := newJWTTestRouter(t)

	if w := doRequest(r, "Bearer not-a-real-token"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}
}

func TestJWTValidToken(t *testing.T) {
	r := newJWTTestRouter(t)

	token, err := service.GenerateJWT(99)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	w := doRequest(r, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
}
