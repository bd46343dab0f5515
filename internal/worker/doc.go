// Package worker runs color extraction off the caller's goroutine.
//
// A Pool owns a bounded queue and a fixed set of background goroutines.
// Submitting a Request hands its pixel buffer to the pool: the caller must not
// read or write Request.Buffer.Pix afterwards, since a worker may be reading
// it concurrently.
//
// # Failures
//
// Every submission gets exactly one Response. A failed extraction, including
// a panic while reading pixels, produces a Response with an empty Colors list
// and an Err wrapping extract.ErrProcessing. Callers that only render colors
// can ignore Err and show the empty state; callers that care can tell
// "no colors found" apart from "processing failed".
//
// # Ordering
//
// Each submission gets a sequence number from a counter shared by the whole
// pool. Requests that carry the same Key supersede one another: once a newer
// request for the key has been queued, an older one is marked Stale. A
// submission abandoned before it was queued supersedes nothing. A
// stale request that has not started yet is skipped without extracting.
// Callers should drop stale responses instead of displaying them.
package worker
