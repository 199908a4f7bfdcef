package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"portal-hq/chronicle/pkg/actions/query"
	"portal-hq/chronicle/pkg/actions/retention"
	"portal-hq/chronicle/pkg/actions/storage"
	"portal-hq/chronicle/pkg/api"
	"portal-hq/chronicle/pkg/auth"
	"portal-hq/chronicle/pkg/config"
	"portal-hq/chronicle/pkg/telemetry/metrics"
)

// newTestHandler builds the full route/middleware stack over memory storage.
func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Storage.Backend = "memory"

	store := storage.NewMemoryStorage()
	t.Cleanup(func() { store.Close() })

	engine := query.NewEngine(store, &query.Config{
		DefaultPageSize: cfg.History.DefaultPageSize,
		MaxPageSize:     cfg.History.MaxPageSize,
	})
	sweeper := retention.NewSweeper(store, &retention.Config{
		SaveIntervalHours: cfg.History.SaveIntervalHours,
		SweepSchedule:     cfg.History.SweepSchedule,
	})
	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	srv := NewServer(cfg, store, engine, sweeper, auth.NewGuard(), collector)
	return srv.Handler()
}

// identityHeader builds the X-Auth-Identity value for a subject.
func identityHeader(t *testing.T, subject string) string {
	t.Helper()

	claims := jwt.RegisteredClaims{Subject: subject}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("SignedString() failed: %v", err)
	}
	return "Bearer " + token
}

func doRequest(handler http.Handler, method, path, identity, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if identity != "" {
		req.Header.Set(auth.IdentityHeader, identity)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// TestServer_CreateAndList tests the create/list round trip.
func TestServer_CreateAndList(t *testing.T) {
	handler := newTestHandler(t)
	alice := identityHeader(t, "alice")

	payload := `{"type":"page_visit","page":"/home"}`
	body := fmt.Sprintf(`{"actionCreatedAt":%q,"action":%s}`, time.Now().UTC().Format(time.RFC3339), payload)

	rec := doRequest(handler, http.MethodPost, "/v1/actions/alice", alice, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 from create, got %d: %s", rec.Code, rec.Body)
	}

	var created api.ActionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to decode create response: %v", err)
	}
	if string(created.Action) != payload {
		t.Errorf("Expected payload returned verbatim, got %s", created.Action)
	}
	if created.SaveInterval != 72 {
		t.Errorf("Expected save interval 72, got %d", created.SaveInterval)
	}

	rec = doRequest(handler, http.MethodGet, "/v1/actions/alice", alice, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 from list, got %d: %s", rec.Code, rec.Body)
	}

	var list api.ActionsListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("Failed to decode list response: %v", err)
	}
	if len(list.ActionsList) != 1 || list.TotalCount != 1 {
		t.Errorf("Expected 1 action with total 1, got %d/%d", len(list.ActionsList), list.TotalCount)
	}
	if string(list.ActionsList[0].Action) != payload {
		t.Errorf("Expected stored payload back, got %s", list.ActionsList[0].Action)
	}
}

// TestServer_OwnershipEnforced tests the 401/403 split on self-service routes.
func TestServer_OwnershipEnforced(t *testing.T) {
	handler := newTestHandler(t)

	// No identity at all
	rec := doRequest(handler, http.MethodGet, "/v1/actions/alice", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without identity, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != api.ProblemContentType {
		t.Errorf("Expected problem content type, got %q", got)
	}

	// Bob addressing alice's history
	bob := identityHeader(t, "bob")
	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		rec = doRequest(handler, method, "/v1/actions/alice", bob, "")
		if rec.Code != http.StatusForbidden {
			t.Errorf("Expected 403 for %s as bob, got %d", method, rec.Code)
		}
	}

	rec = doRequest(handler, http.MethodPost, "/v1/actions/alice", bob, `{"action":{}}`)
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for POST as bob, got %d", rec.Code)
	}

	// The problem body never names bob
	if strings.Contains(rec.Body.String(), "bob") {
		t.Errorf("Problem detail leaked the caller subject: %s", rec.Body)
	}
}

// TestServer_DeleteScopedToUser tests on-demand deletion through the API.
func TestServer_DeleteScopedToUser(t *testing.T) {
	handler := newTestHandler(t)
	alice := identityHeader(t, "alice")
	bob := identityHeader(t, "bob")

	old := time.Now().UTC().Add(-100 * time.Hour).Format(time.RFC3339)
	for _, tc := range []struct{ user, identity string }{
		{"alice", alice},
		{"bob", bob},
	} {
		body := fmt.Sprintf(`{"actionCreatedAt":%q,"action":{"n":1}}`, old)
		rec := doRequest(handler, http.MethodPost, "/v1/actions/"+tc.user, tc.identity, body)
		if rec.Code != http.StatusOK {
			t.Fatalf("Create for %s failed: %d", tc.user, rec.Code)
		}
	}

	rec := doRequest(handler, http.MethodDelete, "/v1/actions/alice?deleteAfterHours=24", alice, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("Expected 204 from delete, got %d: %s", rec.Code, rec.Body)
	}

	// Alice's window is empty now, bob's is not
	rec = doRequest(handler, http.MethodGet, "/v1/actions/alice?showLastHours=200", alice, "")
	var list api.ActionsListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("Failed to decode list response: %v", err)
	}
	if list.TotalCount != 0 {
		t.Errorf("Expected alice emptied, got total %d", list.TotalCount)
	}

	rec = doRequest(handler, http.MethodGet, "/v1/actions/bob?showLastHours=200", bob, "")
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("Failed to decode list response: %v", err)
	}
	if list.TotalCount != 1 {
		t.Errorf("Expected bob untouched, got total %d", list.TotalCount)
	}
}

// TestServer_ValidationProblems tests 400 responses for bad parameters.
func TestServer_ValidationProblems(t *testing.T) {
	handler := newTestHandler(t)
	alice := identityHeader(t, "alice")

	for _, path := range []string{
		"/v1/actions/alice?page=0",
		"/v1/actions/alice?page=-3",
		"/v1/actions/alice?page=abc",
		"/v1/actions/alice?pageSize=0",
		"/v1/actions/alice?showLastHours=x",
	} {
		rec := doRequest(handler, http.MethodGet, path, alice, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for %s, got %d", path, rec.Code)
		}
	}

	// Malformed body and missing action payload
	rec := doRequest(handler, http.MethodPost, "/v1/actions/alice", alice, "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed body, got %d", rec.Code)
	}
	rec = doRequest(handler, http.MethodPost, "/v1/actions/alice", alice, `{"actionCreatedAt":"2026-01-01T00:00:00Z"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing action, got %d", rec.Code)
	}
}

// TestServer_ListAll tests the operator-wide view without identity.
func TestServer_ListAll(t *testing.T) {
	handler := newTestHandler(t)
	alice := identityHeader(t, "alice")
	bob := identityHeader(t, "bob")

	now := time.Now().UTC().Format(time.RFC3339)
	doRequest(handler, http.MethodPost, "/v1/actions/alice", alice, fmt.Sprintf(`{"actionCreatedAt":%q,"action":{"n":1}}`, now))
	doRequest(handler, http.MethodPost, "/v1/actions/bob", bob, fmt.Sprintf(`{"actionCreatedAt":%q,"action":{"n":2}}`, now))

	rec := doRequest(handler, http.MethodGet, "/v1/actions", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 from operator list, got %d: %s", rec.Code, rec.Body)
	}

	var list api.ActionsListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("Failed to decode list response: %v", err)
	}
	if list.TotalCount != 2 {
		t.Errorf("Expected 2 actions across users, got %d", list.TotalCount)
	}
}

// TestServer_RequestIDEcho tests X-Request-ID propagation.
func TestServer_RequestIDEcho(t *testing.T) {
	handler := newTestHandler(t)

	// Client-provided ID is echoed
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "client-chosen-id")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "client-chosen-id" {
		t.Errorf("Expected client request ID echoed, got %q", got)
	}

	// Otherwise one is generated
	rec = doRequest(handler, http.MethodGet, "/health", "", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("Expected a generated request ID header")
	}
}

// TestServer_HealthAndReady tests the probe endpoints.
func TestServer_HealthAndReady(t *testing.T) {
	handler := newTestHandler(t)

	for _, path := range []string{"/health", "/ready"} {
		rec := doRequest(handler, http.MethodGet, path, "", "")
		if rec.Code != http.StatusOK {
			t.Errorf("Expected 200 from %s, got %d", path, rec.Code)
		}
	}
}

// TestServer_Metrics tests that the exposition endpoint answers.
func TestServer_Metrics(t *testing.T) {
	handler := newTestHandler(t)

	// Generate at least one request metric first
	doRequest(handler, http.MethodGet, "/health", "", "")

	rec := doRequest(handler, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 from metrics, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "chronicle_http_requests_total") {
		t.Error("Expected request counter in exposition output")
	}
}
