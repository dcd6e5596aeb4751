// Package services orchestrates record writes and derived analytics on top
// of the storage backends.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"spendwise/internal/amqp"
	"spendwise/internal/backend"
	"spendwise/internal/core"
)

// EventPublisher publishes record change events. *amqp.Client satisfies it.
type EventPublisher interface {
	PublishRecordChanged(ctx context.Context, entity, id, month string) error
}

// Invalidator drops cached analytics for a month after its records change.
type Invalidator interface {
	InvalidateMonth(monthKey string)
}

// RecordService validates and persists transactions and budgets, then
// invalidates derived caches and publishes change events. Event publishing is
// best effort: the write already succeeded locally, so a broker failure is
// logged and swallowed.
type RecordService struct {
	store       backend.Store
	publisher   EventPublisher
	invalidator Invalidator
}

func NewRecordService(store backend.Store, publisher EventPublisher, invalidator Invalidator) *RecordService {
	return &RecordService{
		store:       store,
		publisher:   publisher,
		invalidator: invalidator,
	}
}

func (s *RecordService) CreateTransaction(ctx context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}

	id, err := s.store.CreateTransaction(ctx, t)
	if err != nil {
		return "", fmt.Errorf("save transaction: %w", err)
	}

	s.recordChanged(ctx, amqp.EntityTransaction, id, monthOfDate(t.Date))
	return id, nil
}

func (s *RecordService) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx)
}

func (s *RecordService) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	return s.store.GetTransaction(ctx, id)
}

func (s *RecordService) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}

	// The date may move the record to another month; both months' caches go
	// stale.
	old, err := s.store.GetTransaction(ctx, t.ID)
	if err != nil {
		return err
	}

	if err := s.store.UpdateTransaction(ctx, t); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}

	if oldMonth := monthOfDate(old.Date); oldMonth != monthOfDate(t.Date) {
		s.invalidate(oldMonth)
	}
	s.recordChanged(ctx, amqp.EntityTransaction, t.ID, monthOfDate(t.Date))
	return nil
}

func (s *RecordService) DeleteTransaction(ctx context.Context, id string) error {
	old, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	s.recordChanged(ctx, amqp.EntityTransaction, id, monthOfDate(old.Date))
	return nil
}

func (s *RecordService) CreateBudget(ctx context.Context, b core.Budget) (string, error) {
	if err := b.Validate(); err != nil {
		return "", err
	}

	id, err := s.store.CreateBudget(ctx, b)
	if err != nil {
		return "", err
	}

	s.recordChanged(ctx, amqp.EntityBudget, id, b.Month)
	return id, nil
}

func (s *RecordService) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	return s.store.ListBudgets(ctx)
}

func (s *RecordService) GetBudget(ctx context.Context, id string) (core.Budget, error) {
	return s.store.GetBudget(ctx, id)
}

func (s *RecordService) UpdateBudget(ctx context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}

	old, err := s.store.GetBudget(ctx, b.ID)
	if err != nil {
		return err
	}

	if err := s.store.UpdateBudget(ctx, b); err != nil {
		return err
	}

	if old.Month != b.Month {
		s.invalidate(old.Month)
	}
	s.recordChanged(ctx, amqp.EntityBudget, b.ID, b.Month)
	return nil
}

func (s *RecordService) DeleteBudget(ctx context.Context, id string) error {
	old, err := s.store.GetBudget(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteBudget(ctx, id); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}

	s.recordChanged(ctx, amqp.EntityBudget, id, old.Month)
	return nil
}

func (s *RecordService) recordChanged(ctx context.Context, entity, id, month string) {
	s.invalidate(month)

	if s.publisher == nil {
		slog.DebugContext(ctx, "Event publisher not available, skipping change event",
			"entity", entity, "id", id)
		return
	}
	if err := s.publisher.PublishRecordChanged(ctx, entity, id, month); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change event",
			"entity", entity, "id", id, "month", month, "error", err)
	}
}

func (s *RecordService) invalidate(month string) {
	if s.invalidator != nil {
		s.invalidator.InvalidateMonth(month)
	}
}

// monthOfDate reduces a YYYY-MM-DD date string to its YYYY-MM month key.
func monthOfDate(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}
