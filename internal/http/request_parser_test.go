package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"saldo/internal/form"
)

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantErr     string
	}{
		{"valid", "application/json", `{"amount": 2.5, "type": "gasto", "description": "pan"}`, ""},
		{"charset param", "application/json; charset=utf-8", `{"amount": 1}`, ""},
		{"no content type", "", `{"amount": 1}`, ""},
		{"form encoded", "application/x-www-form-urlencoded", `amount=1`, errUnsupportedMediaType.Error()},
		{"empty body", "application/json", ``, errEmptyBody.Error()},
		{"wrong field type", "application/json", `{"amount": "1"}`, `field "amount" has the wrong type`},
		{"truncated", "application/json", `{"amount": 1`, "malformed JSON"},
		{"trailing object", "application/json", `{"amount": 1}{"amount": 2}`, errTrailingData.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/transaction", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}

			var p form.Payload
			err := DecodeJSON(httptest.NewRecorder(), req, &p)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestDecodeJSON_TooLarge(t *testing.T) {
	body := `{"description": "` + strings.Repeat("a", maxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/transaction", strings.NewReader(body))

	var p form.Payload
	err := DecodeJSON(httptest.NewRecorder(), req, &p)
	if err == nil || !strings.Contains(err.Error(), "exceeds") {
		t.Fatalf("expected size error, got %v", err)
	}
}

func TestRequireMethod(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		allowed []string
		wantErr bool
	}{
		{"POST allowed", http.MethodPost, []string{http.MethodPost}, false},
		{"GET allowed with multiple", http.MethodGet, []string{http.MethodGet, http.MethodHead}, false},
		{"GET not allowed", http.MethodGet, []string{http.MethodPost}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/test", nil)
			result := RequireMethod(req, tt.allowed...)

			if tt.wantErr && result == nil {
				t.Error("Expected error response but got nil")
			}
			if !tt.wantErr && result != nil {
				t.Error("Expected nil but got error response")
			}
		})
	}
}

func TestRequirePOST(t *testing.T) {
	postReq := httptest.NewRequest(http.MethodPost, "/test", nil)
	if result := RequirePOST(postReq); result != nil {
		t.Error("RequirePOST should allow POST requests")
	}

	getReq := httptest.NewRequest(http.MethodGet, "/test", nil)
	if result := RequirePOST(getReq); result == nil {
		t.Error("RequirePOST should reject GET requests")
	}
}

func TestRequireGET(t *testing.T) {
	tests := []struct {
		method  string
		wantErr bool
	}{
		{http.MethodGet, false},
		{http.MethodHead, false},
		{http.MethodPost, true},
		{http.MethodDelete, true},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/test", nil)
			result := RequireGET(req)

			if tt.wantErr && result == nil {
				t.Error("Expected error response but got nil")
			}
			if !tt.wantErr && result != nil {
				t.Error("Expected nil but got error response")
			}
		})
	}
}
