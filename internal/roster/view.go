// ABOUTME: Pure view derivation over the roster
// ABOUTME: Search filtering, pagination slicing, and page clamping

package roster

import (
	"strings"
	"time"

	"github.com/2389/chatbot-console/internal/gateway"
)

// DefaultPageSize is the fixed page size of the user table.
const DefaultPageSize = 10

// Filter returns the users matching searchText: a case-insensitive
// substring match against the name, password, and formatted creation
// date. Empty search text matches everything. The input slice is never
// modified.
func Filter(users []gateway.UserRecord, searchText string) []gateway.UserRecord {
	if searchText == "" {
		return users
	}

	query := strings.ToLower(searchText)
	var matched []gateway.UserRecord
	for _, user := range users {
		if matchesUser(user, query) {
			matched = append(matched, user)
		}
	}
	return matched
}

// matchesUser checks one record against a lowercased query.
func matchesUser(user gateway.UserRecord, query string) bool {
	if strings.Contains(strings.ToLower(user.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(user.Password), query) {
		return true
	}
	return strings.Contains(strings.ToLower(FormatCreatedAt(user.CreatedAt)), query)
}

// TotalPages returns the page count for n filtered entries. An empty
// set still has one (empty) page so the current page stays in range.
func TotalPages(n, pageSize int) int {
	if n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// ClampPage forces page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate returns the half-open slice [(page-1)*pageSize, page*pageSize)
// of filtered. Page is 1-based and assumed already clamped.
func Paginate(filtered []gateway.UserRecord, page, pageSize int) []gateway.UserRecord {
	start := (page - 1) * pageSize
	if start >= len(filtered) {
		return nil
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// createdAtFormats are the timestamp layouts the backend has been seen
// to emit: RFC 3339 and the bare ISO form without a zone.
var createdAtFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// FormatCreatedAt renders a backend timestamp as "Jan 2, 2006" for
// display and date search. Unparseable values pass through verbatim
// rather than hiding the raw data.
func FormatCreatedAt(raw string) string {
	for _, layout := range createdAtFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return raw
}
