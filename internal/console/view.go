// ABOUTME: Rendering for the console views
// ABOUTME: Header tabs, roster table, chat transcript, Q&A, stats table

package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/2389/chatbot-console/internal/chat"
	"github.com/2389/chatbot-console/internal/roster"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var body string
	switch m.activeView {
	case ViewUsers:
		body = m.renderUsers()
	case ViewChat:
		body = m.renderChat()
	case ViewStatics:
		body = m.renderStatics()
	case ViewStats:
		body = m.renderStats()
	}

	sections := []string{m.renderHeader(), body, m.renderStatusBar()}
	screen := strings.Join(sections, "\n")

	// Overlays replace the screen center while active.
	switch {
	case m.picker != nil:
		overlay := strings.Join(m.picker.Render(m.theme), "\n")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
	case m.confirm != nil:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.Render(m.theme, m.width))
	case m.form != nil:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.form.Render(m.theme, m.width))
	}

	return screen
}

// renderHeader draws the tab bar and the active organization.
func (m Model) renderHeader() string {
	active := lipgloss.NewStyle().Foreground(m.theme.HeaderForeground).Bold(true)
	inactive := lipgloss.NewStyle().Foreground(m.theme.FaintText)

	tabs := []struct {
		view  View
		label string
	}{
		{ViewUsers, "1:Users"},
		{ViewChat, "2:Chat"},
		{ViewStatics, "3:Static Q&A"},
		{ViewStats, "4:Stats"},
	}

	var parts []string
	for _, tab := range tabs {
		if tab.view == m.activeView {
			parts = append(parts, active.Render(tab.label))
		} else {
			parts = append(parts, inactive.Render(tab.label))
		}
	}

	org := m.store.Organization()
	if org == "" {
		org = "(no organization)"
	}
	left := strings.Join(parts, "  ")
	right := inactive.Render("org: ") + active.Render(org)

	gap := m.width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderStatusBar draws the notice line and key hints.
func (m Model) renderStatusBar() string {
	help := lipgloss.NewStyle().Foreground(m.theme.HelpText)

	if m.notice != "" {
		style := lipgloss.NewStyle().Foreground(m.theme.SuccessForeground)
		if m.noticeType == noticeError {
			style = lipgloss.NewStyle().Foreground(m.theme.ErrorForeground).Bold(true)
		}
		return style.Render(m.notice)
	}

	switch m.activeView {
	case ViewUsers:
		return help.Render("j/k move  h/l page  / search  space select  a page  n new  e edit  d del  D del sel  C-x del all  o org  u user  q quit")
	case ViewChat:
		return help.Render("Enter send  Esc back  u user  o org")
	default:
		return help.Render("r refresh  1-4 views  o org  u user  q quit")
	}
}

// renderUsers draws the paginated roster table.
func (m Model) renderUsers() string {
	normal := lipgloss.NewStyle().Foreground(m.theme.NormalText)
	faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)
	selectedRow := lipgloss.NewStyle().
		Background(m.theme.SelectedBackground).
		Foreground(m.theme.SelectedForeground)

	var b strings.Builder

	if m.focus == FocusSearch || m.store.SearchText() != "" {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
	}

	header := fmt.Sprintf("  %-3s %-24s %-16s %-14s %s", "", "NAME", "PASSWORD", "CREATED", "MODS")
	b.WriteString(faint.Render(header))
	b.WriteString("\n")

	page := m.store.VisiblePage()
	if len(page) == 0 {
		b.WriteString(faint.Render("  no users"))
		b.WriteString("\n")
	}
	for _, user := range page {
		mark := "[ ]"
		if m.store.Selection().Has(user.Name) {
			mark = "[x]"
		}
		line := fmt.Sprintf("  %-3s %-24s %-16s %-14s %4d",
			mark,
			truncate(user.Name, 24),
			truncate(user.Password, 16),
			roster.FormatCreatedAt(user.CreatedAt),
			user.Modifications,
		)
		if user.Name == m.store.SelectedUser() {
			b.WriteString(selectedRow.Render(line))
		} else {
			b.WriteString(normal.Render(line))
		}
		b.WriteString("\n")
	}

	footer := fmt.Sprintf("page %d/%d  %d users  %d selected",
		m.store.Page(), m.store.TotalPages(), len(m.store.Filtered()), m.store.Selection().Count())
	b.WriteString(faint.Render(footer))

	return b.String()
}

// renderChat draws the transcript and the message input.
func (m Model) renderChat() string {
	adminStyle := lipgloss.NewStyle().Foreground(m.theme.AdminMessage).Bold(true)
	botStyle := lipgloss.NewStyle().Foreground(m.theme.BotMessage).Bold(true)
	normal := lipgloss.NewStyle().Foreground(m.theme.NormalText)
	faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)

	var b strings.Builder

	user := m.session.User()
	if user == "" {
		b.WriteString(faint.Render("select a user first (u)"))
		return b.String()
	}
	b.WriteString(faint.Render("chatting as " + user))
	b.WriteString("\n\n")

	for _, message := range m.session.Messages() {
		prefix := adminStyle.Render("you: ")
		if message.Sender == chat.SenderBot {
			prefix = botStyle.Render("bot: ")
		}
		wrapped := ansi.Wrap(message.Text, max(m.width-8, 20), " ")
		b.WriteString(prefix + normal.Render(wrapped))
		b.WriteString("\n")
	}

	if m.session.Awaiting() {
		b.WriteString(faint.Render("bot is thinking..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.chatInput.View())
	return b.String()
}

// renderStatics draws the selected user's static question/answer pairs.
func (m Model) renderStatics() string {
	questionStyle := lipgloss.NewStyle().Foreground(m.theme.HeaderForeground).Bold(true)
	normal := lipgloss.NewStyle().Foreground(m.theme.NormalText)
	faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)

	user := m.qaView.User()
	if user == "" {
		return faint.Render("select a user first (u)")
	}

	var b strings.Builder
	b.WriteString(faint.Render("static answers for " + user))
	b.WriteString("\n\n")

	pairs := m.qaView.Pairs()
	if len(pairs) == 0 {
		b.WriteString(faint.Render("no static questions"))
		return b.String()
	}
	width := max(m.width-4, 20)
	for _, pair := range pairs {
		b.WriteString(questionStyle.Render("Q: " + ansi.Wrap(pair.Question, width, " ")))
		b.WriteString("\n")
		b.WriteString(normal.Render("A: " + ansi.Wrap(pair.Answer, width, " ")))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderStats draws per-organization embedding statistics with the
// aggregate total last.
func (m Model) renderStats() string {
	faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)
	normal := lipgloss.NewStyle().Foreground(m.theme.NormalText)
	totalStyle := lipgloss.NewStyle().Foreground(m.theme.HeaderForeground).Bold(true)

	if m.stats == nil {
		if m.statsErr {
			return faint.Render("stats unavailable")
		}
		return faint.Render("loading stats...")
	}

	var b strings.Builder
	header := fmt.Sprintf("%-24s %12s %14s", "ORGANIZATION", "SIZE (MB)", "EMBEDDINGS")
	b.WriteString(faint.Render(header))
	b.WriteString("\n")

	for _, name := range m.stats.names {
		row := m.stats.orgs[name]
		line := fmt.Sprintf("%-24s %12.2f %14d", truncate(name, 24), row.sizeMB, row.embeddings)
		b.WriteString(normal.Render(line))
		b.WriteString("\n")
	}

	total := fmt.Sprintf("%-24s %12.2f %14d", "TOTAL", m.stats.total.sizeMB, m.stats.total.embeddings)
	b.WriteString(totalStyle.Render(total))
	return b.String()
}

// truncate shortens s to width columns with an ellipsis.
func truncate(s string, width int) string {
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
