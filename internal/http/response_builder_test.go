package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSONResponseBuilder_Basic(t *testing.T) {
	w := httptest.NewRecorder()

	NewJSONResponse().Data(map[string]int{"id": 1}).Write(w)

	if w.Code != http.StatusOK {
		t.Errorf("Status code = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if w.Body.String() != `{"id":1}` {
		t.Errorf("Body = %q", w.Body.String())
	}
}

func TestJSONResponseBuilder_NoData(t *testing.T) {
	w := httptest.NewRecorder()

	NewJSONResponse().Status(http.StatusNoContent).Header("X-Test", "yes").Write(w)

	if w.Code != http.StatusNoContent {
		t.Errorf("Status code = %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("Body should be empty, got %q", w.Body.String())
	}
	if w.Header().Get("X-Test") != "yes" {
		t.Errorf("custom header missing")
	}
}

func TestJSONResponseBuilder_UnencodableData(t *testing.T) {
	w := httptest.NewRecorder()

	NewJSONResponse().Data(make(chan int)).Write(w)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Status code = %d, want 500", w.Code)
	}
	if w.Body.String() != `{}` {
		t.Errorf("Body = %q", w.Body.String())
	}
}

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name       string
		builder    *JSONResponseBuilder
		wantStatus int
		wantBody   string
	}{
		{
			name:       "bad request",
			builder:    BadRequestError("Invalid input"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"Invalid input"}`,
		},
		{
			name:       "unprocessable entity",
			builder:    UnprocessableEntityError("invalid", map[string]string{"amount": "required"}),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"message":"invalid","fields":{"amount":"required"}}`,
		},
		{
			name:       "conflict",
			builder:    ConflictError("taken"),
			wantStatus: http.StatusConflict,
			wantBody:   `{"message":"taken"}`,
		},
		{
			name:       "internal server error has no message",
			builder:    InternalServerError(),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{}`,
		},
		{
			name:       "not found",
			builder:    NotFoundError("Resource not found"),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"message":"Resource not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.builder.Write(w)

			if w.Code != tt.wantStatus {
				t.Errorf("Status code = %d, want %d", w.Code, tt.wantStatus)
			}
			if w.Body.String() != tt.wantBody {
				t.Errorf("Body = %q, want %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestMethodNotAllowedError(t *testing.T) {
	w := httptest.NewRecorder()

	MethodNotAllowedError("GET, HEAD").Write(w)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Status code = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
	if w.Header().Get("Allow") != "GET, HEAD" {
		t.Errorf("Allow header = %q, want %q", w.Header().Get("Allow"), "GET, HEAD")
	}
}

func TestTooManyRequestsError(t *testing.T) {
	w := httptest.NewRecorder()

	TooManyRequestsError().Write(w)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Status code = %d", w.Code)
	}
}
