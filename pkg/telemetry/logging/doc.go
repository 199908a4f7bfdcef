// Package logging configures structured logging for Chronicle.
//
// Setup builds a slog handler (JSON or text) at the configured level and
// installs it as the process default. Every component derives its logger
// from slog.Default() with a "component" attribute, so the whole process
// shares one handler and one level.
package logging
