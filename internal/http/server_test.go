package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spendwise/internal/memory"
	"spendwise/internal/services"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()

	store := memory.New()
	analytics := services.NewAnalyticsService(store, 10, time.Minute)
	analytics.SetClock(func() time.Time {
		return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	})
	records := services.NewRecordService(store, nil, analytics)

	srv := NewServer("127.0.0.1:0", records, analytics)
	t.Cleanup(func() { srv.rateLimiter.stop() })
	return srv, store
}

func doRequest(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := doRequest(srv, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, rec.Code)
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, httptest.NewRequest(http.MethodGet, "/api/transactions", nil))
	wantHeaders := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"Content-Security-Policy": "default-src 'none'",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
	}
	for name, want := range wantHeaders {
		if got := rec.Header().Get(name); got != want {
			t.Errorf("header %s = %q, want %q", name, got, want)
		}
	}
}

func TestUnknownRoute(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestRateLimitOnWrites(t *testing.T) {
	srv, _ := newTestServer(t)

	var lastCode int
	for i := 0; i < 61; i++ {
		req := httptest.NewRequest(http.MethodDelete, "/api/transactions/999", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		lastCode = doRequest(srv, req).Code
	}
	if lastCode != http.StatusTooManyRequests {
		t.Errorf("request 61 status = %d, want 429", lastCode)
	}

	// Reads are not rate limited.
	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	req.RemoteAddr = "203.0.113.7:1234"
	if code := doRequest(srv, req).Code; code != http.StatusOK {
		t.Errorf("GET after limit status = %d, want 200", code)
	}
}

func TestRateLimiterStopZeroValue(t *testing.T) {
	// stop must be safe without a cleanup channel, and safe to call twice.
	var rl rateLimiter
	rl.stop()
	rl.stop()
}

func TestExtractClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "direct connection",
			remoteAddr: "203.0.113.7:1234",
			want:       "203.0.113.7",
		},
		{
			name:       "forwarded header from trusted proxy",
			remoteAddr: "127.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"},
			want:       "203.0.113.9",
		},
		{
			name:       "forwarded header from untrusted peer is ignored",
			remoteAddr: "203.0.113.7:1234",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.1"},
			want:       "203.0.113.7",
		},
		{
			name:       "real-ip header from trusted proxy",
			remoteAddr: "192.168.1.10:4321",
			headers:    map[string]string{"X-Real-IP": "203.0.113.11"},
			want:       "203.0.113.11",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for name, value := range tt.headers {
				req.Header.Set(name, value)
			}
			if got := extractClientIP(req); got != tt.want {
				t.Errorf("extractClientIP() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDetectSuspiciousRequest(t *testing.T) {
	metrics := &securityMetrics{}

	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	if detectSuspiciousRequest(req, metrics) {
		t.Error("normal request flagged as suspicious")
	}

	req = httptest.NewRequest(http.MethodGet, "/.env", nil)
	if !detectSuspiciousRequest(req, metrics) {
		t.Error("probe request not flagged")
	}
	if metrics.suspiciousRequests != 1 {
		t.Errorf("suspiciousRequests = %d, want 1", metrics.suspiciousRequests)
	}
}
