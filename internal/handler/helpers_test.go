package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/dnfxyg-commits/fanfei-uav-platform/internal/service"
)

// ---------------------------------------------------------------------------
// writeServiceError tests
// ---------------------------------------------------------------------------

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"wrapped invalid credentials", fmt.Errorf("login: %w", service.ErrInvalidCredentials), http.StatusUnauthorized},
		{"invalid token", service.ErrInvalidToken, http.StatusUnauthorized},
		{"already initialized", service.ErrAlreadyInitialized, http.StatusForbidden},
		{"username taken", service.ErrUsernameTaken, http.StatusConflict},
		{"unknown error", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r := httptest.NewRequest("POST", "/api/auth/login", nil)
			writeServiceError(rr, r, logger, tt.err)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}

			var resp struct {
				Error struct {
					Code    int    `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("decode error envelope: %v", err)
			}
			if resp.Error.Code != tt.wantStatus {
				t.Errorf("error.code = %d, want %d", resp.Error.Code, tt.wantStatus)
			}
			if resp.Error.Message == "" {
				t.Error("error.message is empty")
			}
		})
	}
}

// Collaborator failures must not leak detail to the client.
func TestWriteServiceErrorHidesInternalDetail(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rr := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/auth/users", nil)

	writeServiceError(rr, r, logger, errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Internal server error") {
		t.Errorf("body = %s, want it to contain %q", body, "Internal server error")
	}
	if strings.Contains(body, "10.0.0.5") {
		t.Errorf("body leaks internal detail: %s", body)
	}
}

// ---------------------------------------------------------------------------
// urlID tests
// ---------------------------------------------------------------------------

func TestURLID(t *testing.T) {
	// urlID reads the chi route context, so exercise it through a router.
	tests := []struct {
		name    string
		path    string
		want    int64
		wantErr bool
	}{
		{"parses id", "/items/42", 42, false},
		{"rejects non-numeric", "/items/abc", 0, true},
		{"rejects float", "/items/4.2", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID int64
			var gotErr error
			mux := newTestRouter(func(w http.ResponseWriter, r *http.Request) {
				gotID, gotErr = urlID(r)
			})

			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, httptest.NewRequest("GET", tt.path, nil))

			if tt.wantErr {
				if gotErr == nil {
					t.Errorf("urlID(%q) succeeded, want error", tt.path)
				}
				return
			}
			if gotErr != nil {
				t.Fatalf("urlID(%q): %v", tt.path, gotErr)
			}
			if gotID != tt.want {
				t.Errorf("urlID(%q) = %d, want %d", tt.path, gotID, tt.want)
			}
		})
	}
}

func newTestRouter(h http.HandlerFunc) http.Handler {
	r := chi.NewRouter()
	r.Get("/items/{id}", h)
	return r
}
