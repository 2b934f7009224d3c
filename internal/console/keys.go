// ABOUTME: Key bindings for the console TUI
// ABOUTME: Vim-style navigation alongside arrow keys

package console

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the console.
type KeyMap struct {
	// Navigation within the active view.
	Up   key.Binding
	Down key.Binding

	// Roster paging.
	PrevPage key.Binding
	NextPage key.Binding

	// View switching.
	ViewUsers   key.Binding
	ViewChat    key.Binding
	ViewStatics key.Binding
	ViewStats   key.Binding

	// Pickers.
	PickOrganization key.Binding
	PickUser         key.Binding

	// Roster actions.
	Search         key.Binding
	ToggleSelect   key.Binding
	SelectPage     key.Binding
	NewUser        key.Binding
	EditText       key.Binding
	DeleteUser     key.Binding
	DeleteSelected key.Binding
	DeleteAll      key.Binding
	Refresh        key.Binding

	Confirm key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next page"),
	),
	ViewUsers: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "users"),
	),
	ViewChat: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "chat"),
	),
	ViewStatics: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "static q&a"),
	),
	ViewStats: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "stats"),
	),
	PickOrganization: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "organization"),
	),
	PickUser: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "user"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	ToggleSelect: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "select"),
	),
	SelectPage: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "select page"),
	),
	NewUser: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new user"),
	),
	EditText: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit text"),
	),
	DeleteUser: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	DeleteSelected: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "delete selected"),
	),
	DeleteAll: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("C-x", "delete all"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
