// ABOUTME: Multi-select set semantics for bulk user operations
// ABOUTME: Toggle, page-level toggle, and pruning against the roster

package roster

import "sort"

// SelectionSet tracks the user names marked for bulk operations.
// Membership accumulates across pages and survives search changes; it
// is cleared on organization switch and pruned whenever the roster is
// replaced so it stays a subset of the current roster.
type SelectionSet map[string]struct{}

// NewSelectionSet returns an empty selection.
func NewSelectionSet() SelectionSet {
	return make(SelectionSet)
}

// Toggle flips membership for one name.
func (s SelectionSet) Toggle(name string) {
	if _, ok := s[name]; ok {
		delete(s, name)
	} else {
		s[name] = struct{}{}
	}
}

// ToggleAll is the page-level toggle: when every given name is already
// selected it deselects exactly those names, otherwise it selects the
// union. Selections outside pageNames are untouched either way.
func (s SelectionSet) ToggleAll(pageNames []string) {
	if len(pageNames) == 0 {
		return
	}

	allSelected := true
	for _, name := range pageNames {
		if _, ok := s[name]; !ok {
			allSelected = false
			break
		}
	}

	for _, name := range pageNames {
		if allSelected {
			delete(s, name)
		} else {
			s[name] = struct{}{}
		}
	}
}

// Has reports membership.
func (s SelectionSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Remove drops a name if present.
func (s SelectionSet) Remove(name string) {
	delete(s, name)
}

// Clear empties the selection.
func (s SelectionSet) Clear() {
	for name := range s {
		delete(s, name)
	}
}

// Count returns the number of selected names.
func (s SelectionSet) Count() int {
	return len(s)
}

// Names returns the selected names in sorted order.
func (s SelectionSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Prune removes every name not present in keep, restoring the
// subset-of-roster invariant after a wholesale roster replacement.
func (s SelectionSet) Prune(keep []string) {
	present := make(map[string]struct{}, len(keep))
	for _, name := range keep {
		present[name] = struct{}{}
	}
	for name := range s {
		if _, ok := present[name]; !ok {
			delete(s, name)
		}
	}
}
