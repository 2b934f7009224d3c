// ABOUTME: Roster store: active organization, user list, and view state
// ABOUTME: Sequence-numbered refresh with stale completion discard

package roster

import (
	"github.com/2389/chatbot-console/internal/gateway"
)

// Store owns the roster for the active organization together with the
// view state derived from it: search text, current page, the selected
// user, and the multi-select set.
//
// Asynchronous fetch protocol: a mutation that needs fresh data calls
// SetOrganization or BeginRefresh and receives a sequence number. The
// caller performs the fetch and hands the result back through
// ApplyRoster or RefreshFailed with that same number. Only the most
// recently issued number is accepted; stale completions report false
// and leave the store untouched.
type Store struct {
	org       string
	users     []gateway.UserRecord
	selected  string
	selection SelectionSet

	searchText  string
	currentPage int
	pageSize    int

	seq uint64
}

// NewStore creates an empty store. pageSize <= 0 selects the default.
func NewStore(pageSize int) *Store {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Store{
		selection:   NewSelectionSet(),
		currentPage: 1,
		pageSize:    pageSize,
	}
}

// Organization returns the active organization key, empty before the
// first SetOrganization.
func (s *Store) Organization() string {
	return s.org
}

// SetOrganization activates an organization: the selection set and the
// selected user are cleared, the page resets to 1, and a new refresh
// sequence number is issued for the caller's fetch.
func (s *Store) SetOrganization(org string) uint64 {
	s.org = org
	s.selection.Clear()
	s.selected = ""
	s.currentPage = 1
	return s.BeginRefresh()
}

// BeginRefresh issues a new refresh sequence number, superseding any
// outstanding fetch.
func (s *Store) BeginRefresh() uint64 {
	s.seq++
	return s.seq
}

// ApplyRoster installs a fetched roster if seq is still current,
// returning whether it was applied. The roster is replaced wholesale:
// the selection is pruned against the new names, the selected user
// falls back to the first entry when missing (deterministically index
// 0), and the page is clamped back into range.
func (s *Store) ApplyRoster(seq uint64, users []gateway.UserRecord) bool {
	if seq != s.seq {
		return false
	}

	s.users = users
	s.selection.Prune(userNames(users))

	if !s.hasUser(s.selected) {
		s.selected = ""
	}
	if s.selected == "" && len(users) > 0 {
		s.selected = users[0].Name
	}

	s.clampPage()
	return true
}

// RefreshFailed reports whether the failure belongs to the current
// fetch. The prior roster always stands; surfacing the error is the
// caller's job, and only for a current failure.
func (s *Store) RefreshFailed(seq uint64) bool {
	return seq == s.seq
}

// Users returns the roster as last fetched.
func (s *Store) Users() []gateway.UserRecord {
	return s.users
}

// SelectUser makes name the selected user if it is present in the
// roster, reporting whether the selection changed.
func (s *Store) SelectUser(name string) bool {
	if name == s.selected || !s.hasUser(name) {
		return false
	}
	s.selected = name
	return true
}

// SelectedUser returns the selected user name, empty when the roster is
// empty.
func (s *Store) SelectedUser() string {
	return s.selected
}

// SelectedRecord returns the full record for the selected user.
func (s *Store) SelectedRecord() (gateway.UserRecord, bool) {
	for _, user := range s.users {
		if user.Name == s.selected {
			return user, true
		}
	}
	return gateway.UserRecord{}, false
}

// RemoveUser handles a confirmed server-side deletion: the name leaves
// the selection set immediately so bulk state never references a dead
// user. The roster itself is refreshed from the server afterwards, not
// patched locally.
func (s *Store) RemoveUser(name string) {
	s.selection.Remove(name)
	if s.selected == name {
		s.selected = ""
	}
}

// SetSearch replaces the search text and resets to page 1, so the user
// is never stranded on a page past the end of the narrowed set.
func (s *Store) SetSearch(text string) {
	s.searchText = text
	s.currentPage = 1
}

// SearchText returns the current search text.
func (s *Store) SearchText() string {
	return s.searchText
}

// Filtered returns the roster narrowed by the search text.
func (s *Store) Filtered() []gateway.UserRecord {
	return Filter(s.users, s.searchText)
}

// VisiblePage returns the current page slice of the filtered roster.
func (s *Store) VisiblePage() []gateway.UserRecord {
	return Paginate(s.Filtered(), s.currentPage, s.pageSize)
}

// VisibleNames returns just the names on the current page, the unit the
// page-level select-all toggle operates on.
func (s *Store) VisibleNames() []string {
	return userNames(s.VisiblePage())
}

// Page returns the 1-based current page.
func (s *Store) Page() int {
	return s.currentPage
}

// PageSize returns the fixed page size.
func (s *Store) PageSize() int {
	return s.pageSize
}

// TotalPages returns the page count of the filtered roster, always at
// least 1.
func (s *Store) TotalPages() int {
	return TotalPages(len(s.Filtered()), s.pageSize)
}

// NextPage advances one page, clamped to the last.
func (s *Store) NextPage() {
	s.currentPage = ClampPage(s.currentPage+1, s.TotalPages())
}

// PrevPage goes back one page, clamped to the first.
func (s *Store) PrevPage() {
	s.currentPage = ClampPage(s.currentPage-1, s.TotalPages())
}

// Selection exposes the multi-select set.
func (s *Store) Selection() SelectionSet {
	return s.selection
}

// ToggleSelect flips selection membership for one name.
func (s *Store) ToggleSelect(name string) {
	s.selection.Toggle(name)
}

// ToggleSelectPage applies the select-all toggle to the names on the
// current page.
func (s *Store) ToggleSelectPage() {
	s.selection.ToggleAll(s.VisibleNames())
}

// clampPage restores the page invariant after any mutation that can
// shrink the filtered set.
func (s *Store) clampPage() {
	s.currentPage = ClampPage(s.currentPage, s.TotalPages())
}

// hasUser reports whether name is in the roster.
func (s *Store) hasUser(name string) bool {
	if name == "" {
		return false
	}
	for _, user := range s.users {
		if user.Name == name {
			return true
		}
	}
	return false
}

// userNames projects records to their names.
func userNames(users []gateway.UserRecord) []string {
	names := make([]string, len(users))
	for i, user := range users {
		names[i] = user.Name
	}
	return names
}
