// ABOUTME: Chat tester state for the admin console
// ABOUTME: Transcript, turn pairing, and the static Q&A view

// Package chat holds the conversational state of the chat tester: an
// append-only transcript scoped to one (organization, user) pair, the
// Idle/AwaitingResponse turn machine, and the history pairing sent to
// the gateway. The static Q&A view lives here too since it shares the
// per-user scoping and the stale completion discard.
//
// Like the roster store, everything in this package is confined to the
// UI event loop. Completions of in-flight gateway calls are matched
// against the sequence number issued when the call started; a reply
// for a superseded sequence, including any session reset, is dropped.
package chat
