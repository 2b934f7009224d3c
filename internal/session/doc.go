// ABOUTME: Package doc for the session credential context
// ABOUTME: Explains the explicit init/teardown lifecycle

// Package session holds the operator's credential context for one
// console run: the bearer token, a process-scoped session ID, and the
// identity claims decoded from the token for display.
//
// The session is created once at startup and injected into the gateway
// client, replacing ambient storage lookups. It is read-only after
// construction; Close is the explicit teardown hook for logout/unload.
package session
