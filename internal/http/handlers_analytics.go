package http

import (
	"net/http"
)

// monthFromQuery resolves the month parameter, defaulting to the analytics
// clock's current month. Responds with 422 and returns false on a malformed
// value.
func (s *Server) monthFromQuery(w http.ResponseWriter, r *http.Request) (string, bool) {
	monthKey, err := parseMonthParam(r, s.analytics.CurrentMonth())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return "", false
	}
	return monthKey, true
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	// Unlike the month-scoped endpoints, the dashboard covers all records
	// unless a month filter is given.
	monthKey, err := parseMonthParam(r, "")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	stats, err := s.analytics.Dashboard(r.Context(), monthKey)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	monthKey, ok := s.monthFromQuery(w, r)
	if !ok {
		return
	}

	perf, err := s.analytics.Performance(r.Context(), monthKey)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, perf)
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	monthKey, ok := s.monthFromQuery(w, r)
	if !ok {
		return
	}

	rows, err := s.analytics.Comparison(r.Context(), monthKey)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	monthKey, ok := s.monthFromQuery(w, r)
	if !ok {
		return
	}

	counts, err := s.analytics.Status(r.Context(), monthKey)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := s.analytics.Insights(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, insights)
}

func (s *Server) handleMonthlySeries(w http.ResponseWriter, r *http.Request) {
	series, err := s.analytics.MonthlySeries(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}
