// ABOUTME: Static Q&A view state for the selected user
// ABOUTME: Same sequence-numbered fetch discard as the roster store

package chat

import "github.com/2389/chatbot-console/internal/gateway"

// QAView holds the static question/answer pairs fetched for one user.
// Unlike chat turns, a fetch failure here is an admin error and is
// surfaced by the caller; the view just drops stale completions.
type QAView struct {
	user  string
	pairs []gateway.QA
	seq   uint64
}

// NewQAView returns an empty view.
func NewQAView() *QAView {
	return &QAView{}
}

// Begin targets a user and issues a sequence number for the fetch.
// The previous pairs are cleared immediately so a slow fetch never
// shows another user's answers.
func (v *QAView) Begin(user string) uint64 {
	v.user = user
	v.pairs = nil
	v.seq++
	return v.seq
}

// Apply installs fetched pairs if seq is still current.
func (v *QAView) Apply(seq uint64, pairs []gateway.QA) bool {
	if seq != v.seq {
		return false
	}
	v.pairs = pairs
	return true
}

// Failed reports whether a fetch failure belongs to the current fetch
// and should be surfaced.
func (v *QAView) Failed(seq uint64) bool {
	return seq == v.seq
}

// User returns the targeted user name.
func (v *QAView) User() string {
	return v.user
}

// Pairs returns the fetched question/answer pairs.
func (v *QAView) Pairs() []gateway.QA {
	return v.pairs
}
