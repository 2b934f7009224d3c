// ABOUTME: Picker overlay for organization and user selection
// ABOUTME: Captures all keyboard input while active

package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// pickerKind identifies what a picker overlay selects.
type pickerKind int

const (
	pickOrganization pickerKind = iota
	pickUser
)

// Picker is a floating list of choices. While visible it captures all
// keyboard input: up/down to navigate, enter to select, escape to
// dismiss. The model owns the picker and routes input to it.
type Picker struct {
	Kind    pickerKind
	Options []string
	Cursor  int
}

// NewPicker creates a picker with the cursor on current, when present.
func NewPicker(kind pickerKind, options []string, current string) *Picker {
	picker := &Picker{Kind: kind, Options: options}
	for i, option := range options {
		if option == current {
			picker.Cursor = i
			break
		}
	}
	return picker
}

// MoveUp moves the cursor up by one, wrapping to the bottom.
func (p *Picker) MoveUp() {
	p.Cursor--
	if p.Cursor < 0 {
		p.Cursor = len(p.Options) - 1
	}
}

// MoveDown moves the cursor down by one, wrapping to the top.
func (p *Picker) MoveDown() {
	p.Cursor++
	if p.Cursor >= len(p.Options) {
		p.Cursor = 0
	}
}

// Selected returns the highlighted option, empty when there are none.
func (p *Picker) Selected() string {
	if len(p.Options) == 0 {
		return ""
	}
	return p.Options[p.Cursor]
}

// Render produces the picker lines. Each line has the same visible
// width and a solid background for separation from the underlying
// content; the highlighted option uses a contrasting background.
func (p *Picker) Render(theme Theme) []string {
	maxWidth := 0
	for _, option := range p.Options {
		if w := ansi.StringWidth(option); w > maxWidth {
			maxWidth = w
		}
	}
	innerWidth := 3 + maxWidth

	backgroundStyle := lipgloss.NewStyle().
		Background(theme.ModalBackground)
	selectedStyle := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)

	var lines []string
	for index, option := range p.Options {
		marker := " "
		if index == p.Cursor {
			marker = ">"
		}
		content := marker + " " + option
		if pad := innerWidth - ansi.StringWidth(content); pad > 0 {
			content += strings.Repeat(" ", pad)
		}

		style := backgroundStyle
		if index == p.Cursor {
			style = selectedStyle
		}
		lines = append(lines, style.Render(" "+content+" "))
	}
	return lines
}
