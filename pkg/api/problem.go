package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"portal-hq/chronicle/pkg/actions"
	"portal-hq/chronicle/pkg/auth"
)

// ProblemContentType is the media type for problem responses, per RFC 9457.
const ProblemContentType = "application/problem+json"

// Problem is the error response body for all non-2xx responses.
type Problem struct {
	// Type is a URI reference identifying the problem type.
	Type string `json:"type"`

	// Title is a short, human-readable summary of the problem type.
	Title string `json:"title"`

	// Status is the HTTP status code.
	Status int `json:"status"`

	// Detail is a human-readable explanation specific to this occurrence.
	Detail string `json:"detail,omitempty"`
}

// NewProblem builds a problem for the given status code with the standard
// title for that status.
func NewProblem(status int, detail string) *Problem {
	return &Problem{
		Type:   "about:blank",
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
}

// ProblemFromError maps a domain error to a problem response. Storage
// failures and unknown errors map to 500 with no internal detail exposed.
func ProblemFromError(err error) *Problem {
	var unauthenticated *auth.UnauthenticatedError
	if errors.As(err, &unauthenticated) {
		return NewProblem(http.StatusUnauthorized, "a valid identity assertion is required")
	}

	var forbidden *auth.ForbiddenError
	if errors.As(err, &forbidden) {
		return NewProblem(http.StatusForbidden, "the requested user does not match the authenticated user")
	}

	var validation *actions.ValidationError
	if errors.As(err, &validation) {
		return NewProblem(http.StatusBadRequest, validation.Error())
	}

	return NewProblem(http.StatusInternalServerError, "an internal error occurred")
}

// WriteProblem serializes a problem to the response writer. Encoding
// failures are logged, there is nothing further to send the client.
func WriteProblem(w http.ResponseWriter, problem *Problem) {
	w.Header().Set("Content-Type", ProblemContentType)
	w.WriteHeader(problem.Status)
	if err := json.NewEncoder(w).Encode(problem); err != nil {
		slog.Error("failed to encode problem response", "error", err)
	}
}

// WriteError maps err to a problem and writes it. Internal errors are
// logged before the sanitized response goes out.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	problem := ProblemFromError(err)
	if problem.Status >= 500 {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	WriteProblem(w, problem)
}
