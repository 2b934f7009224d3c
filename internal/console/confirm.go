// ABOUTME: Typed-phrase confirmation modal for destructive bulk deletes
// ABOUTME: The exact phrase must be typed before the call fires

package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfirmPhrase returns the phrase the operator must type before a
// bulk delete runs. The count and organization are embedded so the
// operator spells out exactly what is about to happen.
func ConfirmPhrase(count int, org string) string {
	return fmt.Sprintf("delete %d users from %s", count, org)
}

// bulkTarget describes what a confirmed bulk delete removes.
type bulkTarget int

const (
	bulkSelected bulkTarget = iota // the names in the selection set
	bulkAll                        // every user in the organization
)

// ConfirmModal gates a destructive bulk operation behind typing an
// exact phrase. Enter fires only on an exact match; escape aborts.
type ConfirmModal struct {
	Target bulkTarget
	Names  []string // for bulkSelected: the names to delete
	Phrase string
	typed  []rune
}

// NewConfirmModal creates a modal for deleting count users from org.
func NewConfirmModal(target bulkTarget, names []string, count int, org string) *ConfirmModal {
	return &ConfirmModal{
		Target: target,
		Names:  names,
		Phrase: ConfirmPhrase(count, org),
	}
}

// Type appends a character to the typed buffer.
func (m *ConfirmModal) Type(r rune) {
	m.typed = append(m.typed, r)
}

// Backspace removes the last typed character.
func (m *ConfirmModal) Backspace() {
	if len(m.typed) > 0 {
		m.typed = m.typed[:len(m.typed)-1]
	}
}

// Typed returns the current buffer.
func (m *ConfirmModal) Typed() string {
	return string(m.typed)
}

// Match reports whether the typed text equals the phrase exactly.
func (m *ConfirmModal) Match() bool {
	return string(m.typed) == m.Phrase
}

// Render produces the modal box.
func (m *ConfirmModal) Render(theme Theme, width int) string {
	danger := lipgloss.NewStyle().Foreground(theme.DangerAccent).Bold(true)
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	var b strings.Builder
	b.WriteString(danger.Render("This cannot be undone."))
	b.WriteString("\n\n")
	b.WriteString("Type the following to confirm:\n")
	b.WriteString(danger.Render(m.Phrase))
	b.WriteString("\n\n> ")
	b.WriteString(string(m.typed))
	b.WriteString("█\n\n")
	b.WriteString(faint.Render("Enter to confirm, Esc to cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.DangerAccent).
		Padding(1, 2).
		Width(min(width-4, 60))
	return box.Render(b.String())
}
