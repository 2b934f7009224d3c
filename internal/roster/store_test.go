// ABOUTME: Tests for the roster store state machine
// ABOUTME: Stale fetch discard, selection invariants, and page clamping

package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/chatbot-console/internal/gateway"
)

func records(names ...string) []gateway.UserRecord {
	users := make([]gateway.UserRecord, len(names))
	for i, name := range names {
		users[i] = gateway.UserRecord{Name: name}
	}
	return users
}

func TestStore_StaleFetchDiscarded(t *testing.T) {
	store := NewStore(10)

	// Fetch for org A is issued, then the operator switches to org B
	// before A resolves.
	seqA := store.SetOrganization("org-a")
	seqB := store.SetOrganization("org-b")

	// B's fetch resolves first and is applied.
	require.True(t, store.ApplyRoster(seqB, records("beth", "bill")))

	// A's slow response arrives last and must be dropped.
	assert.False(t, store.ApplyRoster(seqA, records("adam")))
	assert.Equal(t, records("beth", "bill"), store.Users())
	assert.Equal(t, "org-b", store.Organization())
}

func TestStore_StaleFailureNotSurfaced(t *testing.T) {
	store := NewStore(10)
	seqA := store.SetOrganization("org-a")
	seqB := store.SetOrganization("org-b")

	assert.False(t, store.RefreshFailed(seqA))
	assert.True(t, store.RefreshFailed(seqB))
}

func TestStore_OrganizationSwitchClearsSelection(t *testing.T) {
	store := NewStore(10)
	seq := store.SetOrganization("org-a")
	require.True(t, store.ApplyRoster(seq, records("alice", "bob")))
	store.ToggleSelect("alice")
	store.ToggleSelect("bob")

	store.SetOrganization("org-b")
	assert.Zero(t, store.Selection().Count())
	assert.Empty(t, store.SelectedUser())
	assert.Equal(t, 1, store.Page())
}

func TestStore_FirstUserSelectedDeterministically(t *testing.T) {
	store := NewStore(10)
	seq := store.SetOrganization("org-a")
	require.True(t, store.ApplyRoster(seq, records("zoe", "alice")))

	// Index 0 of the fetched roster, not alphabetical order.
	assert.Equal(t, "zoe", store.SelectedUser())

	// An existing selection survives refreshes.
	require.True(t, store.SelectUser("alice"))
	seq = store.BeginRefresh()
	require.True(t, store.ApplyRoster(seq, records("zoe", "alice", "bob")))
	assert.Equal(t, "alice", store.SelectedUser())
}

func TestStore_SelectedUserGoneFallsBackToFirst(t *testing.T) {
	store := NewStore(10)
	seq := store.SetOrganization("org-a")
	require.True(t, store.ApplyRoster(seq, records("alice", "bob")))
	require.True(t, store.SelectUser("bob"))

	seq = store.BeginRefresh()
	require.True(t, store.ApplyRoster(seq, records("alice", "carol")))
	assert.Equal(t, "alice", store.SelectedUser())
}

func TestStore_RemoveUserPrunesSelection(t *testing.T) {
	store := NewStore(10)
	seq := store.SetOrganization("org-a")
	require.True(t, store.ApplyRoster(seq, records("alice", "bob")))
	store.ToggleSelect("alice")
	store.ToggleSelect("bob")

	store.RemoveUser("alice")
	assert.False(t, store.Selection().Has("alice"))
	assert.True(t, store.Selection().Has("bob"))
}

func TestStore_RefreshPrunesSelectionToRoster(t *testing.T) {
	store := NewStore(10)
	seq := store.SetOrganization("org-a")
	require.True(t, store.ApplyRoster(seq, records("alice", "bob")))
	store.ToggleSelect("alice")
	store.ToggleSelect("bob")

	// Server-side state moved on: bob is gone from the next fetch.
	seq = store.BeginRefresh()
	require.True(t, store.ApplyRoster(seq, records("alice")))
	assert.Equal(t, []string{"alice"}, store.Selection().Names())
}

func TestStore_SearchResetsToPageOne(t *testing.T) {
	store := NewStore(2)
	seq := store.SetOrganization("org-a")
	require.True(t, store.ApplyRoster(seq, records("a1", "a2", "a3", "a4", "a5")))

	store.NextPage()
	store.NextPage()
	assert.Equal(t, 3, store.Page())

	store.SetSearch("a")
	assert.Equal(t, 1, store.Page())
}

func TestStore_PageInvariantAfterShrinkingRefresh(t *testing.T) {
	store := NewStore(2)
	seq := store.SetOrganization("org-a")
	require.True(t, store.ApplyRoster(seq, records("a1", "a2", "a3", "a4", "a5")))
	store.NextPage()
	store.NextPage()
	require.Equal(t, 3, store.Page())

	// Deletions shrink the roster; the page clamps back into range.
	seq = store.BeginRefresh()
	require.True(t, store.ApplyRoster(seq, records("a1", "a2")))
	assert.Equal(t, 1, store.Page())
	assert.Equal(t, 1, store.TotalPages())
}

func TestStore_PageNavigationClamps(t *testing.T) {
	store := NewStore(2)
	seq := store.SetOrganization("org-a")
	require.True(t, store.ApplyRoster(seq, records("a1", "a2", "a3")))

	store.PrevPage()
	assert.Equal(t, 1, store.Page())

	store.NextPage()
	store.NextPage()
	store.NextPage()
	assert.Equal(t, 2, store.Page())
}

func TestStore_VisiblePageFollowsFilter(t *testing.T) {
	store := NewStore(2)
	seq := store.SetOrganization("org-a")
	require.True(t, store.ApplyRoster(seq, records("alice", "amber", "bob", "anna")))

	store.SetSearch("a")
	assert.Equal(t, []string{"alice", "amber"}, store.VisibleNames())
	store.NextPage()
	assert.Equal(t, []string{"anna"}, store.VisibleNames())
}

func TestStore_ToggleSelectPage(t *testing.T) {
	store := NewStore(3)
	seq := store.SetOrganization("org-a")
	require.True(t, store.ApplyRoster(seq, records("a", "b", "c", "d")))

	store.ToggleSelectPage()
	assert.Equal(t, []string{"a", "b", "c"}, store.Selection().Names())

	store.NextPage()
	store.ToggleSelectPage()
	assert.Equal(t, []string{"a", "b", "c", "d"}, store.Selection().Names())

	store.PrevPage()
	store.ToggleSelectPage()
	assert.Equal(t, []string{"d"}, store.Selection().Names())
}

func TestStore_SelectUserRequiresMembership(t *testing.T) {
	store := NewStore(10)
	seq := store.SetOrganization("org-a")
	require.True(t, store.ApplyRoster(seq, records("alice")))

	assert.False(t, store.SelectUser("ghost"))
	assert.Equal(t, "alice", store.SelectedUser())
}
