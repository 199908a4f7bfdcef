// Package api defines the wire types for the action history HTTP interface.
//
// # Request and Response Shapes
//
// Actions travel as opaque JSON payloads. CreateActionRequest carries the
// payload in plus the client-supplied actionCreatedAt timestamp; list
// responses return pages of ActionResponse newest first, together with the
// window-wide totalCount. RecordMapper converts between these shapes and
// the stored record without inspecting the payload.
//
// # Error Responses
//
// All non-2xx responses use the RFC 9457 problem+json shape. ProblemFromError
// maps domain errors to statuses: missing or unparseable identity to 401,
// ownership mismatch to 403, invalid parameters to 400, and everything else
// (including storage failures) to 500 with internal detail kept out of the
// body.
package api
