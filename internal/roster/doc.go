// ABOUTME: Package doc for the roster store and view derivation engine
// ABOUTME: Documents the sequence-numbered stale-response discard rule

// Package roster holds the user list for the active organization and
// derives every view of it: search filtering, pagination, and the
// multi-select set used for bulk operations.
//
// The store is confined to the UI event loop goroutine; there is no
// parallel mutation, only interleaved asynchronous completions, so it
// takes no locks. Asynchronous roster fetches are ordered by a
// monotonically increasing sequence number assigned at issue time: a
// completion is applied only when it carries the most recently issued
// sequence number, so a slow response for a stale organization can
// never overwrite a fresher one, regardless of arrival order.
//
// Filtered and paginated views are recomputed from scratch on every
// read. The roster never grows past a few hundred entries; caching
// would buy nothing.
package roster
