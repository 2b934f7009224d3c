// ABOUTME: Tests for the chat turn machine and history pairing
// ABOUTME: Covers the failure fallback and stale reply discard

package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/chatbot-console/internal/gateway"
)

func newTestSession() *Session {
	s := NewSession()
	s.Reset("finance", "alice")
	return s
}

func TestSession_SendRejections(t *testing.T) {
	s := NewSession()

	_, err := s.Send("hello")
	assert.ErrorIs(t, err, ErrNoUser)

	s.Reset("finance", "alice")
	_, err = s.Send("   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = s.Send("hello")
	require.NoError(t, err)
	_, err = s.Send("again")
	assert.ErrorIs(t, err, ErrTurnPending)
	assert.Len(t, s.Messages(), 1)
}

func TestSession_HistoryPairing(t *testing.T) {
	s := newTestSession()

	seq, err := s.Send("hi")
	require.NoError(t, err)
	require.True(t, s.ApplyReply(seq, "hello"))

	_, err = s.Send("bye")
	require.NoError(t, err)

	hello := "hello"
	assert.Equal(t, []gateway.Turn{
		{User: "hi", Bot: &hello},
		{User: "bye", Bot: nil},
	}, s.History())
}

func TestSession_FailureAppendsFallbackOnce(t *testing.T) {
	s := newTestSession()

	seq, err := s.Send("test")
	require.NoError(t, err)
	require.True(t, s.Awaiting())

	require.True(t, s.ApplyFailure(seq))
	assert.False(t, s.Awaiting())

	messages := s.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, SenderBot, messages[1].Sender)
	assert.Equal(t, FallbackReply, messages[1].Text)

	// The same completion arriving twice must not append again.
	assert.False(t, s.ApplyFailure(seq))
	assert.Len(t, s.Messages(), 2)
}

func TestSession_ResetDiscardsInFlightReply(t *testing.T) {
	s := newTestSession()

	seq, err := s.Send("hi")
	require.NoError(t, err)

	// Operator switches to another user before the reply arrives.
	s.Reset("finance", "bob")
	assert.False(t, s.ApplyReply(seq, "late answer for alice"))
	assert.Empty(t, s.Messages())
	assert.False(t, s.Awaiting())

	// The new pair chats normally afterwards.
	seq, err = s.Send("hello bob's bot")
	require.NoError(t, err)
	assert.True(t, s.ApplyReply(seq, "hi"))
}

func TestSession_ResetClearsTranscript(t *testing.T) {
	s := newTestSession()
	seq, err := s.Send("hi")
	require.NoError(t, err)
	require.True(t, s.ApplyReply(seq, "hello"))

	s.Reset("sales", "alice")
	assert.Empty(t, s.Messages())
	assert.Equal(t, "sales", s.Organization())
	assert.Equal(t, "alice", s.User())
}

func TestQAView_StaleFetchDiscarded(t *testing.T) {
	v := NewQAView()

	seqA := v.Begin("alice")
	seqB := v.Begin("bob")

	require.True(t, v.Apply(seqB, []gateway.QA{{Question: "q", Answer: "bob's a"}}))
	assert.False(t, v.Apply(seqA, []gateway.QA{{Question: "q", Answer: "alice's a"}}))

	require.Len(t, v.Pairs(), 1)
	assert.Equal(t, "bob's a", v.Pairs()[0].Answer)
	assert.False(t, v.Failed(seqA))
	assert.True(t, v.Failed(seqB))
}

func TestQAView_BeginClearsPreviousPairs(t *testing.T) {
	v := NewQAView()
	seq := v.Begin("alice")
	require.True(t, v.Apply(seq, []gateway.QA{{Question: "q", Answer: "a"}}))

	v.Begin("bob")
	assert.Empty(t, v.Pairs())
}
