// Package retention enforces the retention policy on action records.
//
// # Deletion Paths
//
// There are exactly two ways a record dies:
//
//   - DeleteForUser: a user asks for their own records older than
//     now − afterHours to be removed
//   - SweepAll: the scheduled global sweep removes everything older
//     than the configured save interval
//
// Both share the same predicate (createdAt < now − afterHours, UTC) and
// both are idempotent: re-running with the same or a later cutoff
// deletes nothing further.
//
// # Scheduling
//
//	sweeper := retention.NewSweeper(store, &retention.Config{
//	    SaveIntervalHours: 72,
//	    SweepSchedule:     "0 3 * * *",
//	})
//	if err := sweeper.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer sweeper.Stop()
//
// The sweep runs concurrently with ordinary traffic without
// coordination: reads are not required to observe an in-flight sweep,
// and creation and sweeping target disjoint time ranges in the steady
// state. A failed scheduled sweep is logged and counted, never fatal.
package retention
