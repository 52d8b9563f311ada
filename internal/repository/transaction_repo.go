package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"finance_tracker/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// TransactionFilter narrows list/export queries. UserID is always applied;
// the rest are optional. Category and Description are case-insensitive
// substring matches.
type TransactionFilter struct {
	UserID      int64
	StartDate   *time.Time
	EndDate     *time.Time
	Category    string
	Description string
}

// TransactionUpdate carries a partial update; nil fields are left untouched.
type TransactionUpdate struct {
	Date        *time.Time
	Description *string
	Amount      *float64
	Category    *string
	Type        *string
}

func (f TransactionFilter) where() (string, []any) {
	conds := []string{"user_id = $1"}
	args := []any{f.UserID}

	if f.StartDate != nil {
		args = append(args, *f.StartDate)
		conds = append(conds, fmt.Sprintf("date >= $%d", len(args)))
	}
	if f.EndDate != nil {
		args = append(args, *f.EndDate)
		conds = append(conds, fmt.Sprintf("date <= $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, "%"+f.Category+"%")
		conds = append(conds, fmt.Sprintf("category ILIKE $%d", len(args)))
	}
	if f.Description != "" {
		args = append(args, "%"+f.Description+"%")
		conds = append(conds, fmt.Sprintf("description ILIKE $%d", len(args)))
	}

	return strings.Join(conds, " AND "), args
}

// List returns one page of matching transactions, newest first, plus the
// total match count for pagination.
func (r *TransactionRepository) List(ctx context.Context, filter TransactionFilter, page, limit int) ([]*domain.Transaction, int, error) {
	where, args := filter.where()

	var total int
	if err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM transactions WHERE "+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	args = append(args, limit, offset)
	rows, err := r.db.Query(ctx,
		fmt.Sprintf(
			`SELECT id, user_id, date, description, amount, category, type, created_at
			 FROM transactions
			 WHERE %s
			 ORDER BY date DESC
			 LIMIT $%d OFFSET $%d`,
			where, len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result, err := scanTransactions(rows)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

// ListAll returns every matching transaction, newest first. Used by the
// CSV export.
func (r *TransactionRepository) ListAll(ctx context.Context, filter TransactionFilter) ([]*domain.Transaction, error) {
	where, args := filter.where()

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, date, description, amount, category, type, created_at
		 FROM transactions
		 WHERE `+where+`
		 ORDER BY date DESC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// Create inserts a new transaction
func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO transactions (user_id, date, description, amount, category, type)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		tx.UserID, tx.Date, tx.Description, tx.Amount, tx.Category, tx.Type,
	).Scan(&tx.ID, &tx.CreatedAt)
}

// Update applies a partial update scoped to {id, userID}. A transaction
// owned by someone else scans as ErrNotFound, same as a missing one.
func (r *TransactionRepository) Update(ctx context.Context, id, userID int64, upd TransactionUpdate) (*domain.Transaction, error) {
	var sets []string
	args := []any{id, userID}

	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if upd.Date != nil {
		set("date", *upd.Date)
	}
	if upd.Description != nil {
		set("description", *upd.Description)
	}
	if upd.Amount != nil {
		set("amount", *upd.Amount)
	}
	if upd.Category != nil {
		set("category", *upd.Category)
	}
	if upd.Type != nil {
		set("type", *upd.Type)
	}

	query := `SELECT id, user_id, date, description, amount, category, type, created_at
		 FROM transactions WHERE id = $1 AND user_id = $2`
	if len(sets) > 0 {
		query = fmt.Sprintf(
			`UPDATE transactions SET %s
			 WHERE id = $1 AND user_id = $2
			 RETURNING id, user_id, date, description, amount, category, type, created_at`,
			strings.Join(sets, ", "))
	}

	var tx domain.Transaction
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&tx.ID, &tx.UserID, &tx.Date, &tx.Description, &tx.Amount, &tx.Category, &tx.Type, &tx.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// Delete removes a transaction scoped to {id, userID}.
func (r *TransactionRepository) Delete(ctx context.Context, id, userID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SumByType returns income and expense totals inside [from, to].
func (r *TransactionRepository) SumByType(ctx context.Context, userID int64, from, to time.Time) (income, expense float64, err error) {
	err = r.db.QueryRow(ctx,
		`SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'Income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'Expense'), 0)
		 FROM transactions
		 WHERE user_id = $1 AND date >= $2 AND date <= $3`,
		userID, from, to,
	).Scan(&income, &expense)
	return income, expense, err
}

// Recent returns the user's latest transactions regardless of date window.
func (r *TransactionRepository) Recent(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, date, description, amount, category, type, created_at
		 FROM transactions
		 WHERE user_id = $1
		 ORDER BY date DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// CategorySummary groups in-window transactions by category, summed and
// sorted by total descending. The grouping runs in the database.
func (r *TransactionRepository) CategorySummary(ctx context.Context, userID int64, from, to time.Time) ([]domain.CategorySummary, error) {
	rows, err := r.db.Query(ctx,
		`SELECT category, SUM(amount) AS total
		 FROM transactions
		 WHERE user_id = $1 AND date >= $2 AND date <= $3
		 GROUP BY category
		 ORDER BY total DESC`,
		userID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.CategorySummary{}
	for rows.Next() {
		var row domain.CategorySummary
		if err := rows.Scan(&row.Category, &row.Total); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// Helper to scan rows into Transaction slice
func scanTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var result []*domain.Transaction

	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.Date, &tx.Description, &tx.Amount, &tx.Category, &tx.Type, &tx.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &tx)
	}

	return result, rows.Err()
}
