// Package memory provides a mutex-guarded in-memory store useful for
// development and tests. It honors the same ordering and error contract as
// the SQLite repository.
package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"spendwise/internal/core"
)

type Store struct {
	mu           sync.Mutex
	nextID       int64
	transactions []core.Transaction
	budgets      []core.Budget
}

func New() *Store {
	return &Store{nextID: 1}
}

func (s *Store) allocID() string {
	id := strconv.FormatInt(s.nextID, 10)
	s.nextID++
	return id
}

func (s *Store) CreateTransaction(_ context.Context, t core.Transaction) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.allocID()
	s.transactions = append(s.transactions, t)
	return t.ID, nil
}

// ListTransactions returns transactions newest date first; within a date,
// later inserts come first.
func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.transactions))
	copy(out, s.transactions)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out, nil
}

func (s *Store) ListTransactionsByMonth(ctx context.Context, monthKey string) ([]core.Transaction, error) {
	all, err := s.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]core.Transaction, 0, len(all))
	for _, t := range all {
		if strings.HasPrefix(t.Date, monthKey+"-") {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) GetTransaction(_ context.Context, id string) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Transaction{}, core.ErrNotFound
}

func (s *Store) UpdateTransaction(_ context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transactions {
		if s.transactions[i].ID == t.ID {
			s.transactions[i] = t
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) CreateBudget(_ context.Context, b core.Budget) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.budgets {
		if existing.Category == b.Category && existing.Month == b.Month {
			return "", core.ErrDuplicateBudget
		}
	}
	b.ID = s.allocID()
	s.budgets = append(s.budgets, b)
	return b.ID, nil
}

// ListBudgets returns budgets most recent month first.
func (s *Store) ListBudgets(_ context.Context) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Budget, len(s.budgets))
	copy(out, s.budgets)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Month > out[j].Month
	})
	return out, nil
}

// ListBudgetsByMonth returns the month's budgets in insertion order.
func (s *Store) ListBudgetsByMonth(_ context.Context, monthKey string) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Budget, 0, len(s.budgets))
	for _, b := range s.budgets {
		if b.Month == monthKey {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Store) GetBudget(_ context.Context, id string) (core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.budgets {
		if b.ID == id {
			return b, nil
		}
	}
	return core.Budget{}, core.ErrNotFound
}

func (s *Store) UpdateBudget(_ context.Context, b core.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.budgets {
		if existing.ID != b.ID && existing.Category == b.Category && existing.Month == b.Month {
			return core.ErrDuplicateBudget
		}
	}
	for i := range s.budgets {
		if s.budgets[i].ID == b.ID {
			s.budgets[i] = b
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) DeleteBudget(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.budgets {
		if s.budgets[i].ID == id {
			s.budgets = append(s.budgets[:i], s.budgets[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}
