package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"portal-hq/chronicle/pkg/actions"
	"portal-hq/chronicle/pkg/actions/query"
	"portal-hq/chronicle/pkg/actions/retention"
	"portal-hq/chronicle/pkg/api"
	"portal-hq/chronicle/pkg/auth"
	"portal-hq/chronicle/pkg/telemetry/metrics"
)

// maxBodyBytes caps create request bodies.
const maxBodyBytes = 1 << 20 // 1MB

// ActionsHandler serves the action history endpoints.
type ActionsHandler struct {
	storage   actions.Storage
	engine    *query.Engine
	sweeper   *retention.Sweeper
	guard     *auth.Guard
	mapper    *api.RecordMapper
	collector *metrics.Collector
	logger    *slog.Logger

	saveIntervalHours int
}

// NewActionsHandler creates the handler for the /v1/actions routes.
func NewActionsHandler(
	storage actions.Storage,
	engine *query.Engine,
	sweeper *retention.Sweeper,
	guard *auth.Guard,
	collector *metrics.Collector,
	saveIntervalHours int,
) *ActionsHandler {
	return &ActionsHandler{
		storage:           storage,
		engine:            engine,
		sweeper:           sweeper,
		guard:             guard,
		mapper:            api.NewRecordMapper(saveIntervalHours),
		collector:         collector,
		logger:            slog.Default().With("component", "api.actions"),
		saveIntervalHours: saveIntervalHours,
	}
}

// Create handles POST /v1/actions/{userId}.
func (h *ActionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if err := h.authorize(r, userID); err != nil {
		api.WriteError(w, r, err)
		return
	}

	var req api.CreateActionRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		api.WriteError(w, r, actions.NewValidationError("body", "request body is not valid JSON"))
		return
	}
	if len(req.Action) == 0 {
		api.WriteError(w, r, actions.NewValidationError("action", "action payload is required"))
		return
	}
	if req.UserID != "" && req.UserID != userID {
		api.WriteError(w, r, actions.NewValidationError("userId", "body userId does not match the path"))
		return
	}

	record := h.mapper.ToRecord(userID, &req)
	stored, err := h.storage.Insert(r.Context(), record)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	h.collector.RecordActionCreated()

	writeJSON(w, http.StatusOK, h.mapper.ToResponse(stored))
}

// ListForUser handles GET /v1/actions/{userId}.
func (h *ActionsHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if err := h.authorize(r, userID); err != nil {
		api.WriteError(w, r, err)
		return
	}

	params, err := h.listParams(r)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	result, err := h.engine.ListForUser(r.Context(), userID, params.page, params.pageSize, params.showLastHours)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.mapper.ToListResponse(result.Records, result.TotalCount))
}

// ListAll handles GET /v1/actions. There is no ownership check here: the
// route is operator-facing and access is restricted upstream.
func (h *ActionsHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	params, err := h.listParams(r)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	result, err := h.engine.ListAll(r.Context(), params.page, params.pageSize, params.showLastHours)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.mapper.ToListResponse(result.Records, result.TotalCount))
}

// DeleteForUser handles DELETE /v1/actions/{userId}.
func (h *ActionsHandler) DeleteForUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if err := h.authorize(r, userID); err != nil {
		api.WriteError(w, r, err)
		return
	}

	afterHours, err := intParam(r, "deleteAfterHours", h.saveIntervalHours)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	deleted, err := h.sweeper.DeleteForUser(r.Context(), userID, afterHours)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	h.collector.RecordActionsDeleted("request", deleted)

	w.WriteHeader(http.StatusNoContent)
}

// authorize extracts the caller subject and checks ownership of userID.
func (h *ActionsHandler) authorize(r *http.Request, userID string) error {
	subject, err := h.guard.ExtractSubject(r.Header.Get(auth.IdentityHeader))
	if err != nil {
		return err
	}
	return h.guard.AuthorizeSelfService(userID, subject)
}

// listParams holds the parsed paging parameters of a list request.
type listParams struct {
	page          int
	pageSize      int
	showLastHours int
}

func (h *ActionsHandler) listParams(r *http.Request) (*listParams, error) {
	page, err := intParam(r, "page", 1)
	if err != nil {
		return nil, err
	}
	pageSize, err := intParam(r, "pageSize", 0)
	if err != nil {
		return nil, err
	}
	if r.URL.Query().Has("pageSize") && pageSize < 1 {
		return nil, actions.NewValidationError("pageSize", "pageSize must be >= 1")
	}
	showLastHours, err := intParam(r, "showLastHours", h.saveIntervalHours)
	if err != nil {
		return nil, err
	}

	return &listParams{page: page, pageSize: pageSize, showLastHours: showLastHours}, nil
}

// intParam reads an integer query parameter, falling back to def when the
// parameter is absent or empty.
func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, actions.NewValidationError(name, "must be an integer")
	}
	return val, nil
}

// writeJSON serializes v with the JSON content type.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
