package api

import (
	"encoding/json"
	"time"
)

// CreateActionRequest is the request body for persisting one action.
// The action field is an opaque JSON document describing what the user did;
// it is stored and returned verbatim.
type CreateActionRequest struct {
	// UserID optionally restates the user the action belongs to. When set
	// it must match the userId path segment.
	UserID string `json:"userId,omitempty"`

	// ActionCreatedAt is the client-supplied time the action happened.
	ActionCreatedAt time.Time `json:"actionCreatedAt"`

	// Action is the opaque action payload.
	Action json.RawMessage `json:"action"`
}

// ActionResponse is one action in API responses.
type ActionResponse struct {
	// ActionCreatedAt is the time the action happened.
	ActionCreatedAt time.Time `json:"actionCreatedAt"`

	// SaveInterval is the retention horizon in hours this record is held for.
	SaveInterval int `json:"saveInterval"`

	// Action is the opaque action payload, returned as stored.
	Action json.RawMessage `json:"action"`
}

// ActionsListResponse is the paged list of actions returned by the
// list endpoints.
type ActionsListResponse struct {
	// ActionsList is the page of actions, newest first.
	ActionsList []ActionResponse `json:"actionsList"`

	// TotalCount is the total number of actions inside the queried time
	// window, across all pages.
	TotalCount int64 `json:"totalCount"`
}
