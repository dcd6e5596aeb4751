package core

import (
	"errors"
	"strings"
	"time"
)

const (
	// DateLayout is the canonical form of a transaction date.
	DateLayout = "2006-01-02"
	// MonthLayout is the canonical form of a month key.
	MonthLayout = "2006-01"
)

type (
	// Transaction is a single spending record. It is owned by the storage
	// layer; the analytics engine treats it as read-only input.
	Transaction struct {
		ID          string  `json:"id"`
		Amount      float64 `json:"amount"`
		Date        string  `json:"date"` // YYYY-MM-DD
		Description string  `json:"description"`
		Category    string  `json:"category"`
	}

	// Budget is a monthly spending limit for one category. At most one
	// budget exists per (category, month) pair — enforced by storage, never
	// assumed by the engine.
	Budget struct {
		ID           string  `json:"id"`
		Category     string  `json:"category"`
		MonthlyLimit float64 `json:"monthlyLimit"`
		Month        string  `json:"month"` // YYYY-MM
	}
)

var (
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidLimit     = errors.New("monthly limit cannot be negative")
	ErrInvalidDate      = errors.New("date must be YYYY-MM-DD")
	ErrInvalidMonth     = errors.New("month must be YYYY-MM")
	ErrEmptyDescription = errors.New("empty description")
	ErrLongDescription  = errors.New("description too long (max 200 characters)")
	ErrEmptyCategory    = errors.New("empty category")

	// ErrNotFound is returned by stores when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateBudget is returned by stores on a second budget for the
	// same (category, month) pair.
	ErrDuplicateBudget = errors.New("budget already exists for category and month")
)

// ValidMonthKey reports whether s is a well-formed YYYY-MM month key.
func ValidMonthKey(s string) bool {
	if len(s) != len(MonthLayout) {
		return false
	}
	_, err := time.Parse(MonthLayout, s)
	return err == nil
}

// Validate fails fast on malformed records at the ingestion boundary.
// The analytics engine never validates; records reaching it are assumed clean.
func (t Transaction) Validate() error {
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	if len(t.Date) != len(DateLayout) {
		return ErrInvalidDate
	}
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return ErrInvalidDate
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return ErrLongDescription
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (b Budget) Validate() error {
	if b.MonthlyLimit < 0 {
		return ErrInvalidLimit
	}
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if !ValidMonthKey(b.Month) {
		return ErrInvalidMonth
	}
	return nil
}
