// Package storage implements the SQLite persistence layer for transactions
// and budgets. The (category, month) uniqueness of budgets is enforced here,
// at the schema level — the analytics engine never assumes it.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"spendwise/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateTransaction inserts a transaction and returns its generated ID.
func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) (string, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (amount, date, description, category) VALUES (?, ?, ?, ?)`,
		t.Amount, t.Date, t.Description, t.Category)
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("transaction insert id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"amount", t.Amount,
		"date", t.Date,
		"category", t.Category)

	return strconv.FormatInt(id, 10), nil
}

// ListTransactions returns every transaction, newest date first. Within the
// same date, later inserts come first, so the head of the list is always the
// most recent spending.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount, date, description, category
		 FROM transactions
		 ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListTransactionsByMonth returns the transactions whose date falls in the
// given YYYY-MM month, newest first.
func (r *SQLiteRepository) ListTransactionsByMonth(ctx context.Context, monthKey string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount, date, description, category
		 FROM transactions
		 WHERE date LIKE ? || '-%'
		 ORDER BY date DESC, id DESC`, monthKey)
	if err != nil {
		return nil, fmt.Errorf("list transactions by month: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]core.Transaction, error) {
	var out []core.Transaction
	for rows.Next() {
		var (
			id int64
			t  core.Transaction
		)
		if err := rows.Scan(&id, &t.Amount, &t.Date, &t.Description, &t.Category); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.ID = strconv.FormatInt(id, 10)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// GetTransaction retrieves a single transaction by ID.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	numID, err := parseID(id)
	if err != nil {
		return core.Transaction{}, err
	}

	var t core.Transaction
	err = r.db.QueryRowContext(ctx,
		`SELECT amount, date, description, category FROM transactions WHERE id = ?`, numID).
		Scan(&t.Amount, &t.Date, &t.Description, &t.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	t.ID = id
	return t, nil
}

// UpdateTransaction replaces a transaction's mutable fields.
func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	numID, err := parseID(t.ID)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET amount = ?, date = ?, description = ?, category = ? WHERE id = ?`,
		t.Amount, t.Date, t.Description, t.Category, numID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return requireRow(res)
}

// DeleteTransaction removes a transaction by ID.
func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) error {
	numID, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, numID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireRow(res)
}

// CreateBudget inserts a budget and returns its generated ID. A second
// budget for the same (category, month) pair fails with ErrDuplicateBudget.
func (r *SQLiteRepository) CreateBudget(ctx context.Context, b core.Budget) (string, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (category, monthly_limit, month) VALUES (?, ?, ?)`,
		b.Category, b.MonthlyLimit, b.Month)
	if err != nil {
		if isUniqueViolation(err) {
			return "", core.ErrDuplicateBudget
		}
		return "", fmt.Errorf("insert budget: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("budget insert id: %w", err)
	}

	slog.InfoContext(ctx, "Budget saved",
		"id", id,
		"category", b.Category,
		"month", b.Month,
		"monthly_limit", b.MonthlyLimit)

	return strconv.FormatInt(id, 10), nil
}

// ListBudgets returns every budget, most recent month first.
func (r *SQLiteRepository) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, category, monthly_limit, month FROM budgets ORDER BY month DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	return scanBudgets(rows)
}

// ListBudgetsByMonth returns the budgets applicable to one month, in
// insertion order.
func (r *SQLiteRepository) ListBudgetsByMonth(ctx context.Context, monthKey string) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, category, monthly_limit, month FROM budgets WHERE month = ? ORDER BY id ASC`, monthKey)
	if err != nil {
		return nil, fmt.Errorf("list budgets by month: %w", err)
	}
	defer rows.Close()

	return scanBudgets(rows)
}

func scanBudgets(rows *sql.Rows) ([]core.Budget, error) {
	var out []core.Budget
	for rows.Next() {
		var (
			id int64
			b  core.Budget
		)
		if err := rows.Scan(&id, &b.Category, &b.MonthlyLimit, &b.Month); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		b.ID = strconv.FormatInt(id, 10)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}
	return out, nil
}

// GetBudget retrieves a single budget by ID.
func (r *SQLiteRepository) GetBudget(ctx context.Context, id string) (core.Budget, error) {
	numID, err := parseID(id)
	if err != nil {
		return core.Budget{}, err
	}

	var b core.Budget
	err = r.db.QueryRowContext(ctx,
		`SELECT category, monthly_limit, month FROM budgets WHERE id = ?`, numID).
		Scan(&b.Category, &b.MonthlyLimit, &b.Month)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{}, core.ErrNotFound
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("get budget: %w", err)
	}
	b.ID = id
	return b, nil
}

// UpdateBudget replaces a budget's mutable fields.
func (r *SQLiteRepository) UpdateBudget(ctx context.Context, b core.Budget) error {
	numID, err := parseID(b.ID)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE budgets SET category = ?, monthly_limit = ?, month = ? WHERE id = ?`,
		b.Category, b.MonthlyLimit, b.Month, numID)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrDuplicateBudget
		}
		return fmt.Errorf("update budget: %w", err)
	}
	return requireRow(res)
}

// DeleteBudget removes a budget by ID.
func (r *SQLiteRepository) DeleteBudget(ctx context.Context, id string) error {
	numID, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, numID)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return requireRow(res)
}

func parseID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, core.ErrNotFound
	}
	return n, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
