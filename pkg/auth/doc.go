// Package auth enforces ownership on the self-service action endpoints.
//
// Callers present an identity assertion in the X-Auth-Identity header as
// "Bearer <JWT>". The token is issued and verified by the gateway in front
// of this service, so the guard parses it without signature verification
// and only reads the subject claim. A request addressing /v1/actions/{userId}
// is allowed when the subject equals that userId.
//
// Two error types separate the 401 and 403 cases: UnauthenticatedError when
// the assertion is missing or unparseable, ForbiddenError when the subject
// does not match the requested userId. The caller's subject is never placed
// in errors or logs.
package auth
