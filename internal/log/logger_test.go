package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelDebug, JSON: true, Output: &buf, Component: ComponentClient})
	l.Info("fetched", FieldCount, 3)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	if rec[FieldComponent] != ComponentClient {
		t.Fatalf("component = %v", rec[FieldComponent])
	}
	if rec[FieldCount] != float64(3) {
		t.Fatalf("count = %v", rec[FieldCount])
	}

	buf.Reset()
	l.WithComponent(ComponentCache).Debug("hit")
	if !strings.Contains(buf.String(), `"component":"cache"`) {
		t.Fatalf("expected cache component, got %s", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelWarn, Output: &buf})
	l.Info("hidden")
	l.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestContextMiddleware(t *testing.T) {
	if FromContext(context.Background()).Component() != "unknown" {
		t.Fatalf("missing logger should fall back to default")
	}

	var buf bytes.Buffer
	base := New(Config{Output: &buf, Component: ComponentHTTP})
	var seen *Logger
	h := Middleware(base)(RequestIDMiddleware(func(*http.Request) string { return "req-1" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = FromContext(r.Context())
			seen.Info("inside")
		})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == nil || seen.Component() != ComponentHTTP {
		t.Fatalf("logger not propagated")
	}
	if !strings.Contains(buf.String(), "request_id=req-1") {
		t.Fatalf("request id missing: %q", buf.String())
	}
}
