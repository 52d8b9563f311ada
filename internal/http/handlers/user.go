package handlers

import (
	"errors"
	"net/http"

	"finance_tracker/internal/repository"

	"github.com/gin-gonic/gin"
)

// Profile returns the caller's user record. The password hash never
// serializes (json:"-" on the domain type). A missing row is only
// possible when the account was removed out of band (there is no delete
// route), so the 404 branch is effectively unreachable.
func (h *Handler) Profile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.UserRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		serverError(c, "failed to load profile", err)
		return
	}

	c.JSON(http.StatusOK, user)
}

type preferencesRequest struct {
	DarkMode *bool `json:"darkMode"`
}

// UpdatePreferences applies a partial preferences patch and returns the
// updated record.
func (h *Handler) UpdatePreferences(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req preferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, []FieldError{{Field: "darkMode", Message: "must be a boolean"}})
		return
	}

	user, err := h.UserRepo.UpdatePreferences(c.Request.Context(), userID, req.DarkMode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		serverError(c, "failed to update preferences", err)
		return
	}

	c.JSON(http.StatusOK, user)
}
