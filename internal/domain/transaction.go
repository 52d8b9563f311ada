package domain

import "time"

// Transaction types
const (
	TypeIncome  = "Income"
	TypeExpense = "Expense"
)

type Transaction struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"userId"`
	Date        time.Time `db:"date" json:"date"`
	Description string    `db:"description" json:"description"`
	Amount      float64   `db:"amount" json:"amount"`
	Category    string    `db:"category" json:"category"`
	Type        string    `db:"type" json:"type"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// Pagination metadata returned alongside transaction lists.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// CategorySummary is one row of the per-category aggregation.
type CategorySummary struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// DashboardSummary holds monthly totals plus the latest transactions.
type DashboardSummary struct {
	Balance            float64        `json:"balance"`
	TotalIncome        float64        `json:"totalIncome"`
	TotalExpense       float64        `json:"totalExpense"`
	RecentTransactions []*Transaction `json:"recentTransactions"`
}
