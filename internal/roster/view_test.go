// ABOUTME: Tests for the pure filter, pagination, and clamp helpers
// ABOUTME: Includes the case-insensitive substring filter contract

package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/2389/chatbot-console/internal/gateway"
)

func namesOf(users []gateway.UserRecord) []string {
	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Name
	}
	return names
}

func TestFilter_CaseInsensitiveSubstring(t *testing.T) {
	users := []gateway.UserRecord{
		{Name: "Alice"},
		{Name: "bob"},
		{Name: "Charlie"},
	}

	assert.Equal(t, []string{"Alice"}, namesOf(Filter(users, "al")))
	assert.Equal(t, []string{"bob"}, namesOf(Filter(users, "BOB")))
	assert.Equal(t, []string{"Alice", "Charlie"}, namesOf(Filter(users, "li")))
}

func TestFilter_EmptyTextReturnsAll(t *testing.T) {
	users := []gateway.UserRecord{{Name: "Alice"}, {Name: "bob"}}
	assert.Equal(t, users, Filter(users, ""))
}

func TestFilter_MatchesPasswordAndDate(t *testing.T) {
	users := []gateway.UserRecord{
		{Name: "alice", Password: "Xyzzy9", CreatedAt: "2025-03-01T10:00:00"},
		{Name: "bob", Password: "hunter2", CreatedAt: "2025-07-04T10:00:00"},
	}

	assert.Equal(t, []string{"alice"}, namesOf(Filter(users, "xyzzy")))
	assert.Equal(t, []string{"bob"}, namesOf(Filter(users, "jul")))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 3, TotalPages(25, 10))
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 3))
	assert.Equal(t, 2, ClampPage(2, 3))
	assert.Equal(t, 3, ClampPage(9, 3))
}

func TestPaginate_HalfOpenSlices(t *testing.T) {
	var users []gateway.UserRecord
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		users = append(users, gateway.UserRecord{Name: name})
	}

	assert.Equal(t, []string{"a", "b"}, namesOf(Paginate(users, 1, 2)))
	assert.Equal(t, []string{"c", "d"}, namesOf(Paginate(users, 2, 2)))
	assert.Equal(t, []string{"e"}, namesOf(Paginate(users, 3, 2)))
	assert.Empty(t, Paginate(users, 4, 2))
}

func TestFormatCreatedAt(t *testing.T) {
	assert.Equal(t, "Mar 1, 2025", FormatCreatedAt("2025-03-01T10:00:00"))
	assert.Equal(t, "Mar 1, 2025", FormatCreatedAt("2025-03-01T10:00:00Z"))
	assert.Equal(t, "Mar 1, 2025", FormatCreatedAt("2025-03-01T10:00:00.123456"))
	// Unparseable values pass through.
	assert.Equal(t, "yesterday", FormatCreatedAt("yesterday"))
}
