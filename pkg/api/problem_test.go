package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"portal-hq/chronicle/pkg/actions"
	"portal-hq/chronicle/pkg/auth"
)

// TestProblemFromError tests the domain error to status mapping.
func TestProblemFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "unauthenticated",
			err:        &auth.UnauthenticatedError{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "forbidden",
			err:        &auth.ForbiddenError{RequestedUserID: "alice"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "validation",
			err:        actions.NewValidationError("page", "page must be >= 1"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "storage",
			err:        actions.NewStorageError("sqlite", "query", errors.New("disk I/O error")),
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "wrapped forbidden",
			err:        fmt.Errorf("handling request: %w", &auth.ForbiddenError{RequestedUserID: "alice"}),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "unknown",
			err:        errors.New("something else"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problem := ProblemFromError(tt.err)
			if problem.Status != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, problem.Status)
			}
			if problem.Title != http.StatusText(tt.wantStatus) {
				t.Errorf("Expected title %q, got %q", http.StatusText(tt.wantStatus), problem.Title)
			}
		})
	}
}

// TestProblemFromError_NoInternalDetail tests that storage failures never
// leak their cause into the response body.
func TestProblemFromError_NoInternalDetail(t *testing.T) {
	problem := ProblemFromError(actions.NewStorageError("sqlite", "query", errors.New("secret path /data/actions.db")))
	if problem.Detail != "an internal error occurred" {
		t.Errorf("Expected generic detail, got %q", problem.Detail)
	}
}

// TestWriteProblem tests the serialized problem shape.
func TestWriteProblem(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteProblem(rec, NewProblem(http.StatusForbidden, "nope"))

	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != ProblemContentType {
		t.Errorf("Expected content type %q, got %q", ProblemContentType, got)
	}

	var problem Problem
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if problem.Status != http.StatusForbidden || problem.Title != "Forbidden" || problem.Detail != "nope" {
		t.Errorf("Unexpected problem body: %+v", problem)
	}
}
