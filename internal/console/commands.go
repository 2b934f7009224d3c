// ABOUTME: Asynchronous gateway calls wrapped as tea.Cmd closures
// ABOUTME: Every completion message carries its issue-time sequence number

package console

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389/chatbot-console/internal/gateway"
)

// Backend is the slice of the gateway client the console drives.
// Narrowed to an interface so model tests can substitute a fake.
type Backend interface {
	ListOrganizations(ctx context.Context) ([]string, error)
	ListUsers(ctx context.Context, org string) ([]gateway.UserRecord, error)
	CreateUser(ctx context.Context, req gateway.CreateUserRequest) (*gateway.UserRecord, error)
	DeleteUser(ctx context.Context, name, org string) error
	DeleteAllUsers(ctx context.Context, org string) error
	UpdateTrainingText(ctx context.Context, name, text string) error
	SendChatTurn(ctx context.Context, name, org string, history []gateway.Turn) (string, error)
	StaticQuestions(ctx context.Context, username string) ([]gateway.QA, error)
	GetEmbeddingStats(ctx context.Context) (*gateway.EmbeddingStats, error)
}

// organizationsMsg delivers the organization list.
type organizationsMsg struct {
	orgs []string
	err  error
}

// rosterMsg delivers a roster fetch completion for one organization.
type rosterMsg struct {
	seq   uint64
	users []gateway.UserRecord
	err   error
}

// chatReplyMsg delivers a chat turn completion.
type chatReplyMsg struct {
	seq   uint64
	reply string
	err   error
}

// staticsMsg delivers a static Q&A fetch completion.
type staticsMsg struct {
	seq   uint64
	pairs []gateway.QA
	err   error
}

// statsMsg delivers the embedding stats.
type statsMsg struct {
	seq   uint64
	stats *gateway.EmbeddingStats
	err   error
}

// mutationDoneMsg reports a create/delete/modify completion. On
// success the roster is refetched; on error the notice is shown and
// nothing else changes.
type mutationDoneMsg struct {
	action  string
	target  string
	deleted []string // names confirmed removed, pruned from the selection
	err     error
}

func loadOrganizations(backend Backend) tea.Cmd {
	return func() tea.Msg {
		orgs, err := backend.ListOrganizations(context.Background())
		return organizationsMsg{orgs: orgs, err: err}
	}
}

func loadRoster(backend Backend, seq uint64, org string) tea.Cmd {
	return func() tea.Msg {
		users, err := backend.ListUsers(context.Background(), org)
		return rosterMsg{seq: seq, users: users, err: err}
	}
}

func sendChatTurn(backend Backend, seq uint64, name, org string, history []gateway.Turn) tea.Cmd {
	return func() tea.Msg {
		reply, err := backend.SendChatTurn(context.Background(), name, org, history)
		return chatReplyMsg{seq: seq, reply: reply, err: err}
	}
}

func loadStatics(backend Backend, seq uint64, username string) tea.Cmd {
	return func() tea.Msg {
		pairs, err := backend.StaticQuestions(context.Background(), username)
		return staticsMsg{seq: seq, pairs: pairs, err: err}
	}
}

func loadStats(backend Backend, seq uint64) tea.Cmd {
	return func() tea.Msg {
		stats, err := backend.GetEmbeddingStats(context.Background())
		return statsMsg{seq: seq, stats: stats, err: err}
	}
}

func createUser(backend Backend, req gateway.CreateUserRequest) tea.Cmd {
	return func() tea.Msg {
		_, err := backend.CreateUser(context.Background(), req)
		return mutationDoneMsg{action: "create", target: req.Name, err: err}
	}
}

func deleteUser(backend Backend, name, org string) tea.Cmd {
	return func() tea.Msg {
		err := backend.DeleteUser(context.Background(), name, org)
		msg := mutationDoneMsg{action: "delete", target: name, err: err}
		if err == nil {
			msg.deleted = []string{name}
		}
		return msg
	}
}

// deleteSelected removes the given names one call at a time. Names
// deleted before a failure stay deleted; the error reports where the
// batch stopped.
func deleteSelected(backend Backend, names []string, org string) tea.Cmd {
	return func() tea.Msg {
		msg := mutationDoneMsg{action: "delete selected"}
		for _, name := range names {
			if err := backend.DeleteUser(context.Background(), name, org); err != nil {
				msg.target = name
				msg.err = err
				return msg
			}
			msg.deleted = append(msg.deleted, name)
		}
		return msg
	}
}

func deleteAllUsers(backend Backend, org string) tea.Cmd {
	return func() tea.Msg {
		err := backend.DeleteAllUsers(context.Background(), org)
		return mutationDoneMsg{action: "delete all", target: org, err: err}
	}
}

func updateTrainingText(backend Backend, name, text string) tea.Cmd {
	return func() tea.Msg {
		err := backend.UpdateTrainingText(context.Background(), name, text)
		return mutationDoneMsg{action: "modify", target: name, err: err}
	}
}
