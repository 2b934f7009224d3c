// ABOUTME: Top-level bubbletea model for the chatbot admin console
// ABOUTME: Routes input by focus and applies gateway completions by sequence

package console

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389/chatbot-console/internal/chat"
	"github.com/2389/chatbot-console/internal/gateway"
	"github.com/2389/chatbot-console/internal/history"
	"github.com/2389/chatbot-console/internal/roster"
)

// View identifies which data view is active.
type View int

const (
	// ViewUsers shows the paginated user roster.
	ViewUsers View = iota
	// ViewChat shows the chat tester for the selected user.
	ViewChat
	// ViewStatics shows the selected user's static question/answer pairs.
	ViewStatics
	// ViewStats shows per-organization embedding statistics.
	ViewStats
)

// FocusRegion identifies where keyboard input routes.
type FocusRegion int

const (
	// FocusMain means keys drive the active view.
	FocusMain FocusRegion = iota
	// FocusSearch means keystrokes go to the roster search input.
	FocusSearch
	// FocusChatInput means keystrokes go to the chat message input.
	FocusChatInput
	// FocusPicker means a picker overlay captures all input.
	FocusPicker
	// FocusConfirm means the typed-phrase confirmation modal captures
	// all input.
	FocusConfirm
	// FocusForm means the create-user or edit-text form captures all
	// input.
	FocusForm
)

// noticeKind distinguishes error notices from success notices.
type noticeKind int

const (
	noticeNone noticeKind = iota
	noticeError
	noticeSuccess
)

// Model is the top-level bubbletea model.
type Model struct {
	backend Backend
	theme   Theme
	keys    KeyMap
	logger  *slog.Logger

	width  int
	height int
	ready  bool

	activeView View
	focus      FocusRegion

	// Domain stores. All completions are applied through these; stale
	// sequence numbers are dropped there.
	store   *roster.Store
	session *chat.Session
	qaView  *chat.QAView

	// Organization list for the picker.
	orgs       []string
	defaultOrg string

	// Embedding stats, guarded by its own sequence number.
	statsSeq uint64
	stats    *statsState
	statsErr bool

	// Overlays.
	picker  *Picker
	confirm *ConfirmModal
	form    *Form

	// Inputs.
	searchInput textinput.Model
	chatInput   textinput.Model

	// Status bar notice. Errors block nothing but stay until the next
	// action; the triggering state change was never applied.
	notice     string
	noticeType noticeKind

	// Optional local audit log. Nil disables auditing.
	audit *history.Log
	actor string
}

// Option configures a Model.
type Option func(*Model)

// WithAudit records successful mutations to the given log under the
// given actor name.
func WithAudit(log *history.Log, actor string) Option {
	return func(m *Model) {
		m.audit = log
		m.actor = actor
	}
}

// WithDefaultOrganization selects which organization to activate once
// the organization list arrives. Falls back to the first listed.
func WithDefaultOrganization(org string) Option {
	return func(m *Model) {
		m.defaultOrg = org
	}
}

// WithPageSize overrides the roster page size.
func WithPageSize(size int) Option {
	return func(m *Model) {
		m.store = roster.NewStore(size)
	}
}

// NewModel creates the console model. The organization list is fetched
// by Init; everything else follows from the operator's selections.
func NewModel(backend Backend, opts ...Option) Model {
	searchInput := textinput.New()
	searchInput.Placeholder = "search"
	searchInput.Prompt = "/ "

	chatInput := textinput.New()
	chatInput.Placeholder = "type a message"
	chatInput.Prompt = "> "

	model := Model{
		backend:     backend,
		theme:       DefaultTheme,
		keys:        DefaultKeyMap,
		logger:      slog.Default().With("component", "console"),
		store:       roster.NewStore(roster.DefaultPageSize),
		session:     chat.NewSession(),
		qaView:      chat.NewQAView(),
		searchInput: searchInput,
		chatInput:   chatInput,
	}
	for _, opt := range opts {
		opt(&model)
	}
	return model
}

// statsState holds the last fetched embedding stats.
type statsState struct {
	orgs  map[string]statsRow
	total statsRow
	names []string
}

type statsRow struct {
	sizeMB     float64
	embeddings int
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return loadOrganizations(m.backend)
}

// Update implements tea.Model.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(message)

	case organizationsMsg:
		return m.handleOrganizations(message)

	case rosterMsg:
		return m.handleRoster(message)

	case chatReplyMsg:
		if message.err != nil {
			m.session.ApplyFailure(message.seq)
		} else {
			m.session.ApplyReply(message.seq, flattenMarkdown(message.reply))
		}
		return m, nil

	case staticsMsg:
		if message.err != nil {
			if m.qaView.Failed(message.seq) {
				m.setNotice(noticeError, "loading static questions: "+message.err.Error())
			}
			return m, nil
		}
		m.qaView.Apply(message.seq, message.pairs)
		return m, nil

	case statsMsg:
		return m.handleStats(message)

	case mutationDoneMsg:
		return m.handleMutationDone(message)
	}

	return m, nil
}

// handleOrganizations installs the organization list and activates the
// initial organization.
func (m Model) handleOrganizations(message organizationsMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		m.setNotice(noticeError, "loading organizations: "+message.err.Error())
		return m, nil
	}
	m.orgs = message.orgs

	if m.store.Organization() == "" && len(m.orgs) > 0 {
		org := m.orgs[0]
		for _, candidate := range m.orgs {
			if candidate == m.defaultOrg {
				org = candidate
				break
			}
		}
		return m.switchOrganization(org)
	}
	return m, nil
}

// switchOrganization activates an organization and starts its roster
// fetch. The selection set, search text, chat transcript, and static
// Q&A view do not survive the switch.
func (m Model) switchOrganization(org string) (tea.Model, tea.Cmd) {
	seq := m.store.SetOrganization(org)
	m.store.SetSearch("")
	m.session.Reset(org, "")
	m.qaView.Begin("")
	m.searchInput.SetValue("")
	return m, loadRoster(m.backend, seq, org)
}

// handleRoster applies a roster fetch completion.
func (m Model) handleRoster(message rosterMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		if m.store.RefreshFailed(message.seq) {
			m.setNotice(noticeError, "loading users: "+message.err.Error())
		}
		return m, nil
	}
	if !m.store.ApplyRoster(message.seq, message.users) {
		return m, nil
	}
	return m, m.syncSelectedUser()
}

// syncSelectedUser realigns the chat session and static Q&A view with
// the roster's selected user. Returns the static fetch command when
// the target changed.
func (m *Model) syncSelectedUser() tea.Cmd {
	selected := m.store.SelectedUser()
	if m.session.User() == selected && m.session.Organization() == m.store.Organization() {
		return nil
	}
	m.session.Reset(m.store.Organization(), selected)
	if selected == "" {
		m.qaView.Begin("")
		return nil
	}
	seq := m.qaView.Begin(selected)
	return loadStatics(m.backend, seq, selected)
}

// handleStats applies an embedding stats completion.
func (m Model) handleStats(message statsMsg) (tea.Model, tea.Cmd) {
	if message.seq != m.statsSeq {
		return m, nil
	}
	if message.err != nil {
		m.statsErr = true
		m.setNotice(noticeError, "loading embedding stats: "+message.err.Error())
		return m, nil
	}
	m.statsErr = false

	state := &statsState{
		orgs:  make(map[string]statsRow, len(message.stats.Organizations)),
		names: message.stats.OrgNames(),
		total: statsRow{
			sizeMB:     message.stats.Total.TotalSizeMB,
			embeddings: message.stats.Total.TotalEmbeddings,
		},
	}
	for name, org := range message.stats.Organizations {
		state.orgs[name] = statsRow{sizeMB: org.TotalSizeMB, embeddings: org.TotalEmbeddings}
	}
	m.stats = state
	return m, nil
}

// handleMutationDone reacts to an admin mutation. Failures surface as
// a notice and leave all state as it was; successes prune the
// selection, refetch the roster, and append to the audit log.
func (m Model) handleMutationDone(message mutationDoneMsg) (tea.Model, tea.Cmd) {
	var commands []tea.Cmd
	if auditCmd := m.appendAudit(message); auditCmd != nil {
		commands = append(commands, auditCmd)
	}

	for _, name := range message.deleted {
		m.store.RemoveUser(name)
	}

	if message.err != nil {
		m.setNotice(noticeError, message.action+" "+message.target+": "+message.err.Error())
		if len(message.deleted) > 0 {
			// A partial batch still changed the server; refetch.
			seq := m.store.BeginRefresh()
			commands = append(commands, loadRoster(m.backend, seq, m.store.Organization()))
		}
		return m, tea.Batch(commands...)
	}

	m.setNotice(noticeSuccess, message.action+" ok")
	seq := m.store.BeginRefresh()
	commands = append(commands, loadRoster(m.backend, seq, m.store.Organization()))
	return m, tea.Batch(commands...)
}

// appendAudit records the mutation's confirmed effects. Audit failures
// are logged and never surface to the operator.
func (m Model) appendAudit(message mutationDoneMsg) tea.Cmd {
	if m.audit == nil {
		return nil
	}

	var action history.Action
	switch message.action {
	case "create":
		action = history.ActionCreateUser
	case "delete", "delete selected":
		action = history.ActionDeleteUser
	case "delete all":
		action = history.ActionDeleteAllUsers
	case "modify":
		action = history.ActionModifyUser
	default:
		return nil
	}

	targets := message.deleted
	if len(targets) == 0 {
		if message.err != nil {
			return nil
		}
		targets = []string{message.target}
	}

	log, actor, org := m.audit, m.actor, m.store.Organization()
	logger := m.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, target := range targets {
			entry := &history.Entry{
				Actor:        actor,
				Action:       action,
				Organization: org,
				Target:       target,
			}
			if action == history.ActionDeleteAllUsers {
				entry.Target = ""
			}
			if err := log.Append(ctx, entry); err != nil {
				logger.Warn("audit append failed", "error", err)
			}
		}
		return nil
	}
}

// setNotice replaces the status bar notice.
func (m *Model) setNotice(kind noticeKind, text string) {
	m.notice = text
	m.noticeType = kind
}

// clearNotice removes the status bar notice.
func (m *Model) clearNotice() {
	m.notice = ""
	m.noticeType = noticeNone
}

// handleKey routes keyboard input based on the focus region.
func (m Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.focus {
	case FocusPicker:
		return m.handlePickerKeys(message)
	case FocusConfirm:
		return m.handleConfirmKeys(message)
	case FocusForm:
		return m.handleFormKeys(message)
	case FocusSearch:
		return m.handleSearchKeys(message)
	case FocusChatInput:
		return m.handleChatInputKeys(message)
	}
	return m.handleMainKeys(message)
}

// handleMainKeys handles input when no overlay or text input has focus.
func (m Model) handleMainKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.clearNotice()

	switch {
	case key.Matches(message, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(message, m.keys.ViewUsers):
		m.activeView = ViewUsers

	case key.Matches(message, m.keys.ViewChat):
		m.activeView = ViewChat
		m.focus = FocusChatInput
		m.chatInput.Focus()

	case key.Matches(message, m.keys.ViewStatics):
		m.activeView = ViewStatics

	case key.Matches(message, m.keys.ViewStats):
		m.activeView = ViewStats
		m.statsSeq++
		return m, loadStats(m.backend, m.statsSeq)

	case key.Matches(message, m.keys.PickOrganization):
		if len(m.orgs) > 0 {
			m.picker = NewPicker(pickOrganization, m.orgs, m.store.Organization())
			m.focus = FocusPicker
		}

	case key.Matches(message, m.keys.PickUser):
		names := userNamesOf(m.store.Users())
		if len(names) > 0 {
			m.picker = NewPicker(pickUser, names, m.store.SelectedUser())
			m.focus = FocusPicker
		}

	case key.Matches(message, m.keys.Refresh):
		return m.refreshActiveView()
	}

	if m.activeView == ViewUsers {
		return m.handleRosterKeys(message)
	}
	return m, nil
}

// refreshActiveView refetches whatever the active view displays.
func (m Model) refreshActiveView() (tea.Model, tea.Cmd) {
	switch m.activeView {
	case ViewUsers, ViewChat:
		seq := m.store.BeginRefresh()
		return m, loadRoster(m.backend, seq, m.store.Organization())
	case ViewStatics:
		if user := m.store.SelectedUser(); user != "" {
			seq := m.qaView.Begin(user)
			return m, loadStatics(m.backend, seq, user)
		}
	case ViewStats:
		m.statsSeq++
		return m, loadStats(m.backend, m.statsSeq)
	}
	return m, nil
}

// handleRosterKeys handles users-view keys: paging, row movement,
// selection, and the mutations.
func (m Model) handleRosterKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, m.keys.Up):
		m.moveRosterCursor(-1)
		return m, m.syncSelectedUser()

	case key.Matches(message, m.keys.Down):
		m.moveRosterCursor(1)
		return m, m.syncSelectedUser()

	case key.Matches(message, m.keys.PrevPage):
		m.store.PrevPage()

	case key.Matches(message, m.keys.NextPage):
		m.store.NextPage()

	case key.Matches(message, m.keys.Search):
		m.focus = FocusSearch
		m.searchInput.Focus()

	case key.Matches(message, m.keys.ToggleSelect):
		if name := m.store.SelectedUser(); name != "" {
			m.store.ToggleSelect(name)
		}

	case key.Matches(message, m.keys.SelectPage):
		m.store.ToggleSelectPage()

	case key.Matches(message, m.keys.NewUser):
		m.form = NewCreateUserForm(m.store.Organization())
		m.focus = FocusForm

	case key.Matches(message, m.keys.EditText):
		if name := m.store.SelectedUser(); name != "" {
			m.form = NewEditTextForm(name)
			m.focus = FocusForm
		}

	case key.Matches(message, m.keys.DeleteUser):
		if name := m.store.SelectedUser(); name != "" {
			return m, deleteUser(m.backend, name, m.store.Organization())
		}

	case key.Matches(message, m.keys.DeleteSelected):
		names := m.store.Selection().Names()
		if len(names) > 0 {
			m.confirm = NewConfirmModal(bulkSelected, names, len(names), m.store.Organization())
			m.focus = FocusConfirm
		}

	case key.Matches(message, m.keys.DeleteAll):
		if count := len(m.store.Users()); count > 0 {
			m.confirm = NewConfirmModal(bulkAll, nil, count, m.store.Organization())
			m.focus = FocusConfirm
		}
	}
	return m, nil
}

// moveRosterCursor moves the selected user up or down within the
// visible page.
func (m *Model) moveRosterCursor(delta int) {
	names := m.store.VisibleNames()
	if len(names) == 0 {
		return
	}
	index := 0
	for i, name := range names {
		if name == m.store.SelectedUser() {
			index = i + delta
			break
		}
	}
	if index < 0 {
		index = 0
	}
	if index >= len(names) {
		index = len(names) - 1
	}
	m.store.SelectUser(names[index])
}

// handlePickerKeys routes input to the active picker overlay.
func (m Model) handlePickerKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, m.keys.Up):
		m.picker.MoveUp()

	case key.Matches(message, m.keys.Down):
		m.picker.MoveDown()

	case key.Matches(message, m.keys.Cancel):
		m.picker = nil
		m.focus = FocusMain

	case key.Matches(message, m.keys.Confirm):
		picked := m.picker.Selected()
		kind := m.picker.Kind
		m.picker = nil
		m.focus = FocusMain
		if picked == "" {
			return m, nil
		}
		if kind == pickOrganization {
			return m.switchOrganization(picked)
		}
		m.store.SelectUser(picked)
		return m, m.syncSelectedUser()
	}
	return m, nil
}

// handleConfirmKeys routes input to the typed-phrase modal. The bulk
// delete fires only on an exact phrase match.
func (m Model) handleConfirmKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, m.keys.Cancel):
		m.confirm = nil
		m.focus = FocusMain
		return m, nil

	case key.Matches(message, m.keys.Confirm):
		if !m.confirm.Match() {
			return m, nil
		}
		target := m.confirm.Target
		names := m.confirm.Names
		m.confirm = nil
		m.focus = FocusMain
		if target == bulkAll {
			return m, deleteAllUsers(m.backend, m.store.Organization())
		}
		return m, deleteSelected(m.backend, names, m.store.Organization())

	case message.Type == tea.KeyBackspace:
		m.confirm.Backspace()
		return m, nil

	case message.Type == tea.KeyRunes || message.Type == tea.KeySpace:
		for _, r := range message.Runes {
			m.confirm.Type(r)
		}
		if message.Type == tea.KeySpace {
			m.confirm.Type(' ')
		}
		return m, nil
	}
	return m, nil
}

// handleSearchKeys routes input to the roster search field. The filter
// applies live on every keystroke; the page resets to 1 in the store.
func (m Model) handleSearchKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, m.keys.Cancel):
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.store.SetSearch("")
		m.focus = FocusMain
		return m, nil

	case key.Matches(message, m.keys.Confirm):
		m.searchInput.Blur()
		m.focus = FocusMain
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(message)
	m.store.SetSearch(m.searchInput.Value())
	return m, cmd
}

// handleChatInputKeys routes input to the chat message field.
func (m Model) handleChatInputKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, m.keys.Cancel):
		m.chatInput.Blur()
		m.focus = FocusMain
		m.activeView = ViewUsers
		return m, nil

	case key.Matches(message, m.keys.Confirm):
		seq, err := m.session.Send(m.chatInput.Value())
		if err != nil {
			// Blank input and missing user are silent; a pending turn
			// just means the input stays put until the reply lands.
			return m, nil
		}
		m.chatInput.SetValue("")
		return m, sendChatTurn(m.backend, seq, m.session.User(), m.session.Organization(), m.session.History())
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(message)
	return m, cmd
}

// handleFormKeys routes input to the active form.
func (m Model) handleFormKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, m.keys.Cancel):
		m.form = nil
		m.focus = FocusMain
		return m, nil

	case key.Matches(message, m.keys.Confirm):
		if !m.form.OnLastField() {
			m.form.NextField()
			return m, nil
		}
		form := m.form
		m.form = nil
		m.focus = FocusMain
		return m, form.Submit(m.backend)
	}

	cmd := m.form.Update(message)
	return m, cmd
}

// userNamesOf projects records to names for the user picker.
func userNamesOf(users []gateway.UserRecord) []string {
	names := make([]string, len(users))
	for i, user := range users {
		names[i] = user.Name
	}
	return names
}
