package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(perMinute int) (*Limiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)}
	rl := NewLimiter(Config{RequestsPerMinute: perMinute})
	rl.now = clock.now
	return rl, clock
}

func TestAllowWithinWindow(t *testing.T) {
	rl, clock := newTestLimiter(3)

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Fatal("fourth request in the window should be rejected")
	}
	if !rl.Allow("5.6.7.8") {
		t.Fatal("other clients have their own window")
	}

	clock.advance(time.Minute)
	if !rl.Allow("1.2.3.4") {
		t.Fatal("a new window should reset the count")
	}
	if got := rl.GetMetrics().TotalHits; got != 1 {
		t.Fatalf("TotalHits = %d, want 1", got)
	}
}

func TestDefaultsApplied(t *testing.T) {
	rl := NewLimiter(Config{})
	if rl.requestsPerMinute != DefaultConfig().RequestsPerMinute {
		t.Fatalf("requestsPerMinute = %d", rl.requestsPerMinute)
	}
	if rl.cleanupInterval != DefaultConfig().CleanupInterval {
		t.Fatalf("cleanupInterval = %v", rl.cleanupInterval)
	}
}

func TestCleanupStaleEntries(t *testing.T) {
	rl, clock := newTestLimiter(10)
	rl.Allow("old")
	clock.advance(11 * time.Minute)
	rl.Allow("new")

	if removed := rl.cleanupStaleEntries(); removed != 1 {
		t.Fatalf("removed %d entries, want 1", removed)
	}
	if rl.ActiveClients() != 1 {
		t.Fatalf("ActiveClients = %d, want 1", rl.ActiveClients())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	rl := NewLimiter(Config{CleanupInterval: time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rl.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestMiddlewareLimitsListedMethods(t *testing.T) {
	rl, _ := newTestLimiter(1)
	ip := func(*http.Request) string { return "9.9.9.9" }
	h := rl.Middleware(ip, nil, http.MethodPost)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	send := func(method string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(method, "/transaction", nil))
		return rr
	}

	if rr := send(http.MethodPost); rr.Code != http.StatusNoContent {
		t.Fatalf("first POST status=%d", rr.Code)
	}
	rr := send(http.MethodPost)
	if rr.Code != http.StatusTooManyRequests || rr.Header().Get("Retry-After") != "60" {
		t.Fatalf("second POST status=%d retry=%q", rr.Code, rr.Header().Get("Retry-After"))
	}
	for i := 0; i < 3; i++ {
		if rr := send(http.MethodGet); rr.Code != http.StatusNoContent {
			t.Fatalf("GET should pass through, status=%d", rr.Code)
		}
	}
}
