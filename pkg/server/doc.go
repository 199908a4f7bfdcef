// Package server assembles the HTTP server for the action history API.
//
// NewServer takes the already-constructed components (storage, query
// engine, retention sweeper, access guard, metrics collector) and wires
// them into routes behind the middleware chain. Start blocks until a
// shutdown signal, context cancellation, or a listener error, then drains
// in-flight requests within the configured shutdown timeout.
package server
