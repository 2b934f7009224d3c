// ABOUTME: Create-user and edit-text forms for the users view
// ABOUTME: textinput fields with enter-to-advance navigation

package console

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/2389/chatbot-console/internal/gateway"
)

// formKind identifies what a form submits.
type formKind int

const (
	formCreateUser formKind = iota
	formEditText
)

// Form is a small stack of labeled text inputs. Enter advances to the
// next field; enter on the last field submits.
type Form struct {
	Kind   formKind
	Title  string
	labels []string
	inputs []textinput.Model
	focus  int

	org  string // create: target organization
	user string // edit: target user
}

// NewCreateUserForm builds the form for creating a user in org.
func NewCreateUserForm(org string) *Form {
	form := &Form{
		Kind:   formCreateUser,
		Title:  "New user in " + org,
		labels: []string{"Name", "Password", "Training text"},
		org:    org,
	}
	for range form.labels {
		form.inputs = append(form.inputs, textinput.New())
	}
	form.inputs[0].Focus()
	return form
}

// NewEditTextForm builds the form for replacing a user's training text.
func NewEditTextForm(user string) *Form {
	form := &Form{
		Kind:   formEditText,
		Title:  "Training text for " + user,
		labels: []string{"Training text"},
		user:   user,
	}
	form.inputs = append(form.inputs, textinput.New())
	form.inputs[0].Focus()
	return form
}

// OnLastField reports whether focus is on the final field.
func (f *Form) OnLastField() bool {
	return f.focus == len(f.inputs)-1
}

// NextField moves focus to the next field.
func (f *Form) NextField() {
	f.inputs[f.focus].Blur()
	f.focus++
	if f.focus >= len(f.inputs) {
		f.focus = len(f.inputs) - 1
	}
	f.inputs[f.focus].Focus()
}

// Update routes a key event to the focused field.
func (f *Form) Update(message tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(message)
	return cmd
}

// Submit builds the mutation command for the completed form. An empty
// required field yields nil, leaving the view unchanged.
func (f *Form) Submit(backend Backend) tea.Cmd {
	switch f.Kind {
	case formCreateUser:
		name := strings.TrimSpace(f.inputs[0].Value())
		if name == "" {
			return nil
		}
		return createUser(backend, gateway.CreateUserRequest{
			Name:         name,
			Password:     f.inputs[1].Value(),
			Text:         f.inputs[2].Value(),
			Organization: f.org,
		})
	case formEditText:
		return updateTrainingText(backend, f.user, f.inputs[0].Value())
	}
	return nil
}

// Render produces the form box.
func (f *Form) Render(theme Theme, width int) string {
	title := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	var b strings.Builder
	b.WriteString(title.Render(f.Title))
	b.WriteString("\n\n")
	for i, label := range f.labels {
		b.WriteString(label + ":\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(faint.Render("Enter to advance, Esc to cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(1, 2).
		Width(min(width-4, 60))
	return box.Render(b.String())
}
