// ABOUTME: Chat tester turn machine and transcript
// ABOUTME: One outstanding turn at a time, failures become bot messages

package chat

import (
	"errors"
	"strings"
	"time"

	"github.com/2389/chatbot-console/internal/gateway"
)

// FallbackReply is appended as a bot message when a chat turn fails.
// Transport errors never reach the transcript; the conversation
// degrades instead of alerting.
const FallbackReply = "Sorry, something went wrong and I could not answer that. Please try again."

// Sender identifies who produced a transcript message.
type Sender string

const (
	SenderAdmin Sender = "admin"
	SenderBot   Sender = "bot"
)

// Message is one entry in the transcript.
type Message struct {
	Text      string
	Sender    Sender
	Timestamp time.Time
}

// Send rejection reasons.
var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrNoUser       = errors.New("no user selected")
	ErrTurnPending  = errors.New("a reply is still pending")
)

// Session is the chat tester state for one (organization, user) pair.
// At most one turn is outstanding at a time; the input stays disabled
// until the reply (or its failure) lands.
type Session struct {
	org      string
	user     string
	messages []Message
	awaiting bool
	seq      uint64
	now      func() time.Time
}

// NewSession returns an idle session with no target user.
func NewSession() *Session {
	return &Session{now: time.Now}
}

// Reset points the session at a new (organization, user) pair. The
// transcript is cleared and any in-flight turn is invalidated, so a
// late reply for the previous pair can never land in the new one.
func (s *Session) Reset(org, user string) {
	s.org = org
	s.user = user
	s.messages = nil
	s.awaiting = false
	s.seq++
}

// User returns the target user name, empty when unset.
func (s *Session) User() string {
	return s.user
}

// Organization returns the session's organization.
func (s *Session) Organization() string {
	return s.org
}

// Messages returns the transcript in order.
func (s *Session) Messages() []Message {
	return s.messages
}

// Awaiting reports whether a turn is outstanding.
func (s *Session) Awaiting() bool {
	return s.awaiting
}

// Send appends the admin message optimistically and issues a sequence
// number for the gateway call. It fails without touching the transcript
// when the text is blank, no user is selected, or a turn is already
// outstanding.
func (s *Session) Send(text string) (uint64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, ErrEmptyMessage
	}
	if s.user == "" {
		return 0, ErrNoUser
	}
	if s.awaiting {
		return 0, ErrTurnPending
	}

	s.messages = append(s.messages, Message{
		Text:      text,
		Sender:    SenderAdmin,
		Timestamp: s.now(),
	})
	s.awaiting = true
	s.seq++
	return s.seq, nil
}

// History formats the transcript as the gateway's turn pairing:
// consecutive (admin, bot) messages become completed turns and the
// trailing unanswered admin message becomes a turn with a nil bot
// side. Call it after Send to build the request body.
func (s *Session) History() []gateway.Turn {
	var turns []gateway.Turn
	for i := 0; i < len(s.messages); {
		if s.messages[i].Sender != SenderAdmin {
			i++
			continue
		}
		turn := gateway.Turn{User: s.messages[i].Text}
		if i+1 < len(s.messages) && s.messages[i+1].Sender == SenderBot {
			bot := s.messages[i+1].Text
			turn.Bot = &bot
			i += 2
		} else {
			i++
		}
		turns = append(turns, turn)
	}
	return turns
}

// ApplyReply appends the bot's answer and returns to idle, reporting
// whether the reply was current. A reply for a superseded sequence is
// dropped without touching the transcript.
func (s *Session) ApplyReply(seq uint64, text string) bool {
	if !s.settle(seq) {
		return false
	}
	s.messages = append(s.messages, Message{
		Text:      text,
		Sender:    SenderBot,
		Timestamp: s.now(),
	})
	return true
}

// ApplyFailure records a failed turn as the fallback bot message and
// returns to idle. Stale failures are dropped like stale replies.
func (s *Session) ApplyFailure(seq uint64) bool {
	return s.ApplyReply(seq, FallbackReply)
}

// settle checks seq against the current turn and clears the awaiting
// flag when it matches.
func (s *Session) settle(seq uint64) bool {
	if seq != s.seq || !s.awaiting {
		return false
	}
	s.awaiting = false
	return true
}
