package trace

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"saldo/internal/log"
)

func TestMiddlewareAssignsRequestID(t *testing.T) {
	m := NewMiddleware(nil, nil)
	var seen string
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		if log.FromContext(r.Context()) == nil {
			t.Error("logger missing from context")
		}
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/transactions", nil))

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("request id %q is not a UUID", seen)
	}
	if rr.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("header %q does not echo %q", rr.Header().Get(RequestIDHeader), seen)
	}
}

func TestMiddlewareKeepsValidIncomingID(t *testing.T) {
	m := NewMiddleware(nil, nil)
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	id := uuid.NewString()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, id)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	if rr.Header().Get(RequestIDHeader) != id {
		t.Fatalf("incoming id not kept")
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, "<script>")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	if rr.Header().Get(RequestIDHeader) == "<script>" {
		t.Fatalf("invalid incoming id should be replaced")
	}
}

func TestMiddlewareCountsServerErrors(t *testing.T) {
	m := NewMiddleware(nil, func(*http.Request) string { return "1.1.1.1" })
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/boom" {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))

	for _, p := range []string{"/ok", "/boom", "/ok"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	got := m.GetMetrics()
	if got.TotalRequests != 3 || got.ServerErrors != 1 {
		t.Fatalf("metrics = %+v", got)
	}
}

func TestGetRequestIDMissing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if GetRequestID(r.Context()) != "" {
		t.Fatal("expected empty id")
	}
}
