// Chronicle is a per-user action history service.
//
// It records opaque action events per user, serves time-windowed paginated
// queries over them, and deletes them past a configurable retention horizon,
// both on demand and on a cron schedule.
//
// Usage:
//
//	# Start the server with default configuration
//	chronicle run
//
//	# Start with a custom configuration file
//	chronicle run --config /path/to/config.yaml
//
//	# Run one retention sweep and exit
//	chronicle sweep --after-hours 72
//
//	# Show version information
//	chronicle version
package main

func main() {
	Execute()
}
