// ABOUTME: Bubbletea TUI for the chatbot admin console
// ABOUTME: User roster, chat tester, static Q&A, and embedding stats views

// Package console implements the terminal UI. The Model is the single
// bubbletea model; all state lives in the domain stores (roster.Store,
// chat.Session, chat.QAView) and every gateway call runs inside a
// tea.Cmd, re-entering the event loop as a message that carries the
// sequence number issued when the call started. Stale completions are
// dropped by the stores, so the last user action always wins regardless
// of response ordering.
package console
