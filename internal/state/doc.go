// Package state provides a thread-safe cache of the last job poll.
//
// # Overview
//
// The Store holds the most recent queued-job listing for display. It is the
// coordination point between whichever operation last polled the server and
// the panel rendering the queue. The cache is never authoritative: any
// operation that acts on a job re-reads the server's queue first.
//
// # Core Types
//
// Store:
//   - Thread-safe container for the latest poll result
//   - Uses sync.RWMutex; safe to construct as a zero value
//   - Single writer (the last poll), multiple readers (the panel)
//
// Snapshot:
//   - Immutable view of the cache at a point in time
//   - Contains the job list, the poll timestamp, and the last poll error
//   - Returned by value with defensive copies
//
// # Update Semantics
//
// Update has special error handling behavior:
//
//	// Success case: replace the cached list
//	store.Update(jobs, nil)
//	→ snapshot.Jobs = jobs
//	→ snapshot.LastError = nil
//	→ snapshot.LastUpdated = now
//
//	// Error case: keep old data, record the error
//	store.Update(nil, err)
//	→ snapshot.Jobs = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.LastUpdated = now
//
// This keeps the most recent successful listing on screen while still
// surfacing polling failures.
//
// # Defensive Copying
//
// Both Update and Snapshot clone the job slice so the panel and a
// concurrent poll never share backing arrays. The copies are a handful of
// small structs; simplicity wins over shaving allocations here.
//
// # Usage Example
//
//	store := &state.Store{}  // ready to use immediately
//	jobs, err := client.FetchQueuedJobs(ctx)
//	store.Update(jobs, err)
//
//	snap := store.Snapshot()
//	render(snap.Jobs, snap.LastError)
package state
