// ABOUTME: Tests for the local audit log
// ABOUTME: Covers Append and List with filtering for the audit_log table

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLog(t *testing.T) *Log {
	t.Helper()
	log, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = log.Close() })
	return log
}

func TestLog_Append(t *testing.T) {
	log := setupTestLog(t)
	ctx := context.Background()

	entry := &Entry{
		Actor:        "operator",
		Action:       ActionCreateUser,
		Organization: "finance",
		Target:       "alice",
	}

	err := log.Append(ctx, entry)
	require.NoError(t, err)

	// Should have generated ID and timestamp
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.Timestamp.IsZero())
}

func TestLog_List_NewestFirst(t *testing.T) {
	log := setupTestLog(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i, action := range []Action{ActionCreateUser, ActionModifyUser, ActionDeleteUser} {
		entry := &Entry{
			Actor:        "operator",
			Action:       action,
			Organization: "finance",
			Target:       "alice",
			Timestamp:    base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, log.Append(ctx, entry))
	}

	entries, err := log.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, ActionDeleteUser, entries[0].Action)
}

func TestLog_List_ByOrganization(t *testing.T) {
	log := setupTestLog(t)
	ctx := context.Background()

	for _, org := range []string{"finance", "sales", "finance"} {
		entry := &Entry{
			Actor:        "operator",
			Action:       ActionDeleteUser,
			Organization: org,
			Target:       "bob",
		}
		require.NoError(t, log.Append(ctx, entry))
	}

	entries, err := log.List(ctx, Filter{Organization: "finance"})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestLog_List_ByAction(t *testing.T) {
	log := setupTestLog(t)
	ctx := context.Background()

	for _, action := range []Action{ActionCreateUser, ActionDeleteAllUsers, ActionCreateUser} {
		entry := &Entry{
			Actor:        "operator",
			Action:       action,
			Organization: "finance",
		}
		require.NoError(t, log.Append(ctx, entry))
	}

	entries, err := log.List(ctx, Filter{Action: ActionDeleteAllUsers})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Target)
}

func TestLog_List_Empty(t *testing.T) {
	log := setupTestLog(t)

	entries, err := log.List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, 100, normalizeLimit(0))
	assert.Equal(t, 100, normalizeLimit(-5))
	assert.Equal(t, 50, normalizeLimit(50))
	assert.Equal(t, 1000, normalizeLimit(5000))
}
