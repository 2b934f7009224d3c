// ABOUTME: Local audit log of administrative actions using modernc.org/sqlite
// ABOUTME: Records who did what to which user for later review

package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Action represents an auditable administrative action.
type Action string

const (
	ActionCreateUser     Action = "create_user"
	ActionDeleteUser     Action = "delete_user"
	ActionDeleteAllUsers Action = "delete_all_users"
	ActionModifyUser     Action = "modify_user"
)

// Entry is a single audit log record. Target is the affected user name,
// or empty for organization-wide actions.
type Entry struct {
	ID           string
	Actor        string
	Action       Action
	Organization string
	Target       string
	Timestamp    time.Time
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Organization string
	Action       Action
	Limit        int // default 100, max 1000
}

// Log is an append-only SQLite-backed record of the mutations this
// console performed against the gateway. It is strictly local; the
// gateway keeps its own state and never sees these rows.
type Log struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open creates or opens the audit database at the given path.
// Parent directories are created if needed.
func Open(path string) (*Log, error) {
	logger := slog.Default().With("component", "history")

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating audit directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening audit database: %w", err)
	}

	// WAL keeps writes from blocking the occasional read
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	l := &Log{db: db, logger: logger}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("audit log opened", "path", path)
	return l, nil
}

// Close closes the underlying database.
func (l *Log) Close() error {
	return l.db.Close()
}

// createSchema creates the audit table if it doesn't exist
func (l *Log) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS audit_log (
			audit_id TEXT PRIMARY KEY,
			actor TEXT NOT NULL,
			action TEXT NOT NULL,
			organization TEXT NOT NULL,
			target TEXT,
			ts DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_audit_org_ts
			ON audit_log(organization, ts);
	`
	if _, err := l.db.Exec(schema); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}
	return nil
}

// Append records an action. ID and Timestamp are generated if not set.
func (l *Log) Append(ctx context.Context, e *Entry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	query := `
		INSERT INTO audit_log (audit_id, actor, action, organization, target, ts)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := l.db.ExecContext(ctx, query,
		e.ID,
		e.Actor,
		e.Action,
		e.Organization,
		e.Target,
		e.Timestamp.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}

	l.logger.Debug("appended audit entry",
		"id", e.ID,
		"actor", e.Actor,
		"action", e.Action,
		"organization", e.Organization,
		"target", e.Target,
	)
	return nil
}

// normalizeLimit applies default (100) and cap (1000) to a filter limit.
func normalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return 100
	case limit > 1000:
		return 1000
	default:
		return limit
	}
}

const listQuery = `
	SELECT audit_id, actor, action, organization, target, ts
	FROM audit_log
	WHERE (? = '' OR organization = ?)
	  AND (? = '' OR action = ?)
	ORDER BY ts DESC
	LIMIT ?
`

// List returns entries matching the filter, newest first.
func (l *Log) List(ctx context.Context, f Filter) ([]Entry, error) {
	limit := normalizeLimit(f.Limit)
	action := string(f.Action)

	rows, err := l.db.QueryContext(ctx, listQuery,
		f.Organization, f.Organization,
		action, action,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var actionStr, tsStr string
		if err := rows.Scan(&e.ID, &e.Actor, &actionStr, &e.Organization, &e.Target, &tsStr); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}
		e.Action = Action(actionStr)
		e.Timestamp, err = time.Parse(time.RFC3339, tsStr)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit entries: %w", err)
	}

	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}
