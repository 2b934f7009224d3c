// ABOUTME: Tests for multi-select set semantics
// ABOUTME: Covers toggle, page-level toggle, and roster pruning

package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection_Toggle(t *testing.T) {
	sel := NewSelectionSet()

	sel.Toggle("alice")
	assert.True(t, sel.Has("alice"))

	sel.Toggle("alice")
	assert.False(t, sel.Has("alice"))
	assert.Zero(t, sel.Count())
}

func TestSelection_ToggleAllSelectsUnion(t *testing.T) {
	sel := NewSelectionSet()
	sel.Toggle("bob")

	sel.ToggleAll([]string{"alice", "bob", "carol"})
	assert.Equal(t, []string{"alice", "bob", "carol"}, sel.Names())
}

func TestSelection_ToggleAllDeselectsOnlyThatPage(t *testing.T) {
	sel := NewSelectionSet()
	// Page 1 selections accumulate, then page 2 is fully selected.
	sel.Toggle("page1-user")
	sel.ToggleAll([]string{"alice", "bob", "carol"})

	// Second toggle on the same page deselects exactly those three.
	sel.ToggleAll([]string{"alice", "bob", "carol"})
	assert.Equal(t, []string{"page1-user"}, sel.Names())
}

func TestSelection_ToggleAllEmptyPageIsNoop(t *testing.T) {
	sel := NewSelectionSet()
	sel.Toggle("alice")
	sel.ToggleAll(nil)
	assert.Equal(t, []string{"alice"}, sel.Names())
}

func TestSelection_Prune(t *testing.T) {
	sel := NewSelectionSet()
	sel.Toggle("alice")
	sel.Toggle("bob")
	sel.Toggle("carol")

	sel.Prune([]string{"alice", "carol"})
	assert.Equal(t, []string{"alice", "carol"}, sel.Names())
}
