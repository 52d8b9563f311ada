package handlers

import (
	"finance_tracker/internal/repository"
	"finance_tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB              *pgxpool.Pool
	TransactionRepo *repository.TransactionRepository
	UserRepo        *repository.UserRepository
	AuthService     *service.AuthService
}

func NewHandler(db *pgxpool.Pool) *Handler {
	return &Handler{
		DB:              db,
		TransactionRepo: repository.NewTransactionRepository(db),
		UserRepo:        repository.NewUserRepository(db),
		AuthService:     service.NewAuthService(db),
	}
}

// getUserID pulls the authenticated user id set by the JWT middleware,
// which always stores an int64.
func getUserID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	userID, ok := uidVal.(int64)
	return userID, ok
}
