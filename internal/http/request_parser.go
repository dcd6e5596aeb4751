// This file implements utilities for parsing and validating HTTP request
// data: month query parameters, JSON bodies, and input sanitization.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"spendwise/internal/config"
	"spendwise/internal/core"
)

// maxBodyBytes caps request bodies; records are tiny.
const maxBodyBytes = 1 << 16

var errInvalidMonthParam = errors.New("month must be YYYY-MM")

// parseMonthParam extracts the month query parameter, falling back to
// defaultMonth when absent. A present but malformed value is an error.
func parseMonthParam(r *http.Request, defaultMonth string) (string, error) {
	v := strings.TrimSpace(r.URL.Query().Get("month"))
	if v == "" {
		return defaultMonth, nil
	}
	if !core.ValidMonthKey(v) {
		return "", errInvalidMonthParam
	}
	return v, nil
}

// decodeJSON parses a JSON request body into dst, rejecting unknown fields
// and oversized payloads.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// checkCategory rejects categories outside the canonical list. The engine
// itself is category-open; only the write boundary enforces the enum.
func checkCategory(w http.ResponseWriter, name string) bool {
	if config.KnownCategory(name) {
		return true
	}
	writeError(w, http.StatusUnprocessableEntity, "unknown category: "+name)
	return false
}

// transactionRequest is the write payload for transactions.
type transactionRequest struct {
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

func (req transactionRequest) toTransaction(id string) core.Transaction {
	return core.Transaction{
		ID:          id,
		Amount:      req.Amount,
		Date:        strings.TrimSpace(req.Date),
		Description: sanitizeInput(req.Description),
		Category:    sanitizeInput(req.Category),
	}
}

// budgetRequest is the write payload for budgets.
type budgetRequest struct {
	Category     string  `json:"category"`
	MonthlyLimit float64 `json:"monthlyLimit"`
	Month        string  `json:"month"`
}

func (req budgetRequest) toBudget(id string) core.Budget {
	return core.Budget{
		ID:           id,
		Category:     sanitizeInput(req.Category),
		MonthlyLimit: req.MonthlyLimit,
		Month:        strings.TrimSpace(req.Month),
	}
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
