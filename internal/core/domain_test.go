package core

import (
	"errors"
	"testing"
)

func TestTransaction_Validate(t *testing.T) {
	valid := Transaction{
		ID:          "t1",
		Amount:      12.50,
		Date:        "2024-03-15",
		Description: "Lunch",
		Category:    "Food & Dining",
	}

	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{
			name:    "valid transaction",
			mutate:  func(*Transaction) {},
			wantErr: nil,
		},
		{
			name:    "zero amount",
			mutate:  func(tx *Transaction) { tx.Amount = 0 },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			mutate:  func(tx *Transaction) { tx.Amount = -5 },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "malformed date",
			mutate:  func(tx *Transaction) { tx.Date = "15/03/2024" },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "date without day",
			mutate:  func(tx *Transaction) { tx.Date = "2024-03" },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "impossible date",
			mutate:  func(tx *Transaction) { tx.Date = "2024-13-40" },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "blank description",
			mutate:  func(tx *Transaction) { tx.Description = "   " },
			wantErr: ErrEmptyDescription,
		},
		{
			name:    "blank category",
			mutate:  func(tx *Transaction) { tx.Category = "" },
			wantErr: ErrEmptyCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)
			err := tx.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBudget_Validate(t *testing.T) {
	valid := Budget{ID: "b1", Category: "Food & Dining", MonthlyLimit: 300, Month: "2024-03"}

	tests := []struct {
		name    string
		mutate  func(*Budget)
		wantErr error
	}{
		{
			name:    "valid budget",
			mutate:  func(*Budget) {},
			wantErr: nil,
		},
		{
			name:    "zero limit is allowed",
			mutate:  func(b *Budget) { b.MonthlyLimit = 0 },
			wantErr: nil,
		},
		{
			name:    "negative limit",
			mutate:  func(b *Budget) { b.MonthlyLimit = -1 },
			wantErr: ErrInvalidLimit,
		},
		{
			name:    "blank category",
			mutate:  func(b *Budget) { b.Category = " " },
			wantErr: ErrEmptyCategory,
		},
		{
			name:    "full date instead of month key",
			mutate:  func(b *Budget) { b.Month = "2024-03-01" },
			wantErr: ErrInvalidMonth,
		},
		{
			name:    "month out of range",
			mutate:  func(b *Budget) { b.Month = "2024-13" },
			wantErr: ErrInvalidMonth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid
			tt.mutate(&b)
			err := b.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidMonthKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"2024-03", true},
		{"1999-12", true},
		{"2024-3", false},
		{"2024-00", false},
		{"2024-03-15", false},
		{"", false},
		{"march24", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := ValidMonthKey(tt.key); got != tt.want {
				t.Errorf("ValidMonthKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}
