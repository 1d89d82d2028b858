/*
Package sqlite provides a SQLite-backed implementation of the leave Ledger.

PURPOSE:
  Durable persistence for leave applications. The same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

TRANSITION ENFORCEMENT:
  Status changes run as conditional UPDATEs guarded by the expected
  current status (WHERE status = 'pending'). A decision that lost a race
  affects zero rows and surfaces as ErrInvalidTransition, so the engine's
  per-record locks are backed up by the database even when multiple
  processes share one file.

WAL MODE:
  The database is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  st, err := sqlite.New("./data/leave.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

  engine := leave.NewEngine(st)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - leave/ledger.go: Interface definition
  - store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pulsehr/leave-engine/leave"
)

const (
	dateLayout = "2006-01-02"

	selectColumns = `id, employee_id, leave_type, start_date, end_date, days,
		reason, contact_info, status, applied_on, decided_on, decided_by, rejection_reason`
)

// Store implements leave.Ledger using SQLite.
type Store struct {
	db *sql.DB
}

var _ leave.Ledger = (*Store)(nil)

// New creates a SQLite-backed ledger at the given path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS leave_applications (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		leave_type TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		days INTEGER NOT NULL CHECK (days >= 1),
		reason TEXT NOT NULL,
		contact_info TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		applied_on TEXT NOT NULL,
		decided_on TEXT,
		decided_by TEXT,
		rejection_reason TEXT,
		created_at TEXT NOT NULL
	);

	-- Balance projection (hot path): all records for one employee
	CREATE INDEX IF NOT EXISTS idx_leave_employee
		ON leave_applications(employee_id, leave_type);

	-- HR approval queue
	CREATE INDEX IF NOT EXISTS idx_leave_status
		ON leave_applications(status);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// LEDGER IMPLEMENTATION
// =============================================================================

func (s *Store) Append(ctx context.Context, app leave.Application) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leave_applications
			(id, employee_id, leave_type, start_date, end_date, days,
			 reason, contact_info, status, applied_on, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		app.ID,
		app.EmployeeID,
		string(app.Type),
		app.StartDate.Format(dateLayout),
		app.EndDate.Format(dateLayout),
		app.Days,
		app.Reason,
		app.ContactInfo,
		string(app.Status),
		app.AppliedOn.Format(dateLayout),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to append application: %w", err)
	}
	return nil
}

func (s *Store) Find(ctx context.Context, id string) (leave.Application, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+selectColumns+`
		FROM leave_applications WHERE id = ?`, id)

	app, err := scanApplication(row)
	if err == sql.ErrNoRows {
		return leave.Application{}, leave.ErrNotFound
	}
	if err != nil {
		return leave.Application{}, fmt.Errorf("failed to load application: %w", err)
	}
	return app, nil
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Application, error) {
	return s.list(ctx, `
		SELECT `+selectColumns+`
		FROM leave_applications
		WHERE employee_id = ?
		ORDER BY applied_on, id`, employeeID)
}

func (s *Store) ListPending(ctx context.Context) ([]leave.Application, error) {
	return s.list(ctx, `
		SELECT `+selectColumns+`
		FROM leave_applications
		WHERE status = 'pending'
		ORDER BY applied_on, id`)
}

func (s *Store) ListAll(ctx context.Context) ([]leave.Application, error) {
	return s.list(ctx, `
		SELECT `+selectColumns+`
		FROM leave_applications
		ORDER BY applied_on, id`)
}

// UpdateStatus applies a decision with a conditional UPDATE. Zero rows
// affected means the record either doesn't exist or already left the
// expected status; Find disambiguates.
func (s *Store) UpdateStatus(ctx context.Context, id string, from leave.Status, change leave.StatusChange) (leave.Application, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE leave_applications
		SET status = ?, decided_on = ?, decided_by = ?, rejection_reason = ?
		WHERE id = ? AND status = ?`,
		string(change.To),
		change.DecidedOn.Format(dateLayout),
		change.DecidedBy,
		nullable(change.RejectionReason),
		id,
		string(from),
	)
	if err != nil {
		return leave.Application{}, fmt.Errorf("failed to update status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return leave.Application{}, err
	}
	if affected == 0 {
		app, findErr := s.Find(ctx, id)
		if findErr != nil {
			return leave.Application{}, findErr
		}
		return leave.Application{}, &leave.TransitionError{ID: id, Status: app.Status, Op: "decide"}
	}

	return s.Find(ctx, id)
}

// Remove deletes a record iff it is still pending.
func (s *Store) Remove(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM leave_applications
		WHERE id = ? AND status = 'pending'`, id)
	if err != nil {
		return fmt.Errorf("failed to remove application: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		app, findErr := s.Find(ctx, id)
		if findErr != nil {
			return findErr
		}
		return &leave.TransitionError{ID: id, Status: app.Status, Op: "remove"}
	}
	return nil
}

// =============================================================================
// ROW SCANNING
// =============================================================================

func (s *Store) list(ctx context.Context, query string, args ...any) ([]leave.Application, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var result []leave.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanApplication(row scanner) (leave.Application, error) {
	var (
		app                             leave.Application
		typ, status                     string
		startDate, endDate, appliedOn   string
		decidedOn, decidedBy, rejReason sql.NullString
	)

	err := row.Scan(
		&app.ID, &app.EmployeeID, &typ, &startDate, &endDate, &app.Days,
		&app.Reason, &app.ContactInfo, &status, &appliedOn,
		&decidedOn, &decidedBy, &rejReason,
	)
	if err != nil {
		return leave.Application{}, err
	}

	app.Type = leave.Type(typ)
	app.Status = leave.Status(status)
	if app.StartDate, err = time.Parse(dateLayout, startDate); err != nil {
		return leave.Application{}, fmt.Errorf("bad start_date: %w", err)
	}
	if app.EndDate, err = time.Parse(dateLayout, endDate); err != nil {
		return leave.Application{}, fmt.Errorf("bad end_date: %w", err)
	}
	if app.AppliedOn, err = time.Parse(dateLayout, appliedOn); err != nil {
		return leave.Application{}, fmt.Errorf("bad applied_on: %w", err)
	}
	if decidedOn.Valid && decidedOn.String != "" {
		if app.DecidedOn, err = time.Parse(dateLayout, decidedOn.String); err != nil {
			return leave.Application{}, fmt.Errorf("bad decided_on: %w", err)
		}
	}
	app.DecidedBy = decidedBy.String
	app.RejectionReason = rejReason.String
	return app, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
