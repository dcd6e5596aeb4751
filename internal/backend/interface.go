package backend

import (
	"context"

	"spendwise/internal/core"
)

// TransactionStore persists discretionary spending records.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, t core.Transaction) (string, error)
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	ListTransactionsByMonth(ctx context.Context, monthKey string) ([]core.Transaction, error)
	GetTransaction(ctx context.Context, id string) (core.Transaction, error)
	UpdateTransaction(ctx context.Context, t core.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
}

// BudgetStore persists per-category monthly limits.
type BudgetStore interface {
	CreateBudget(ctx context.Context, b core.Budget) (string, error)
	ListBudgets(ctx context.Context) ([]core.Budget, error)
	ListBudgetsByMonth(ctx context.Context, monthKey string) ([]core.Budget, error)
	GetBudget(ctx context.Context, id string) (core.Budget, error)
	UpdateBudget(ctx context.Context, b core.Budget) error
	DeleteBudget(ctx context.Context, id string) error
}

// Store is the unified persistence interface the services work against.
type Store interface {
	TransactionStore
	BudgetStore
}

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// BackendResult contains the store instance and optional cleanup function.
type BackendResult struct {
	Store   Store
	Cleanup CleanupFunc
}

// Factory creates stores based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string
}

// BackendType represents the type of backend.
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer.
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid.
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
