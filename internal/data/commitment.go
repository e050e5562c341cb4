package data

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/prithvianilk/my-besto-friendo/internal/biz/domain"
	"github.com/prithvianilk/my-besto-friendo/internal/biz/repo"

	_ "modernc.org/sqlite"
)

// commitmentRepo implements the durable commitment store on sqlite.
type commitmentRepo struct {
	db *sql.DB
}

// NewCommitmentRepo opens (and if needed creates) the commitment database.
func NewCommitmentRepo(dbPath string) (repo.CommitmentRepo, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS commitments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			committed_at INTEGER NOT NULL,
			description TEXT NOT NULL,
			participant TEXT NOT NULL,
			to_be_completed_at INTEGER NOT NULL DEFAULT 0,
			calendar_event_id TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create commitments table: %w", err)
	}

	// The unique index is what turns a double CREATE from overlapping
	// resolution cycles into an explicit error instead of a duplicate.
	_, err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_commitment_unique
		ON commitments(committed_at, participant, description)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create unique index: %w", err)
	}

	_, _ = db.Exec(`CREATE INDEX IF NOT EXISTS idx_commitment_due ON commitments(participant, to_be_completed_at)`)

	return &commitmentRepo{db: db}, nil
}

func (r *commitmentRepo) Insert(ctx context.Context, rec *domain.CommitmentRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO commitments (committed_at, description, participant, to_be_completed_at, calendar_event_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.CommittedAt.Unix(), rec.Description, rec.Participant, dueUnix(rec.ToBeCompletedAt), rec.CalendarEventID, rec.CreatedAt.Unix())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %v", domain.ErrDuplicateCommitment, err)
		}
		return fmt.Errorf("failed to insert commitment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted id: %w", err)
	}
	rec.ID = id
	return nil
}

func (r *commitmentRepo) GetByID(ctx context.Context, id int64) (*domain.CommitmentRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, committed_at, description, participant, to_be_completed_at, calendar_event_id, created_at
		FROM commitments
		WHERE id = ?
	`, id)

	rec, err := scanCommitment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get commitment: %w", err)
	}
	return rec, nil
}

func (r *commitmentRepo) Update(ctx context.Context, rec *domain.CommitmentRecord) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE commitments
		SET committed_at = ?, description = ?, to_be_completed_at = ?, calendar_event_id = ?
		WHERE id = ?
	`, rec.CommittedAt.Unix(), rec.Description, dueUnix(rec.ToBeCompletedAt), rec.CalendarEventID, rec.ID)
	if err != nil {
		return fmt.Errorf("failed to update commitment: %w", err)
	}
	return nil
}

func (r *commitmentRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM commitments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete commitment: %w", err)
	}
	return nil
}

func (r *commitmentRepo) FindOpenForParticipant(ctx context.Context, participant string, now time.Time) ([]*domain.CommitmentRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, committed_at, description, participant, to_be_completed_at, calendar_event_id, created_at
		FROM commitments
		WHERE participant = ? AND to_be_completed_at > ?
		ORDER BY to_be_completed_at ASC
	`, participant, now.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query open commitments: %w", err)
	}
	defer rows.Close()

	return scanCommitments(rows)
}

func (r *commitmentRepo) FindDueAfter(ctx context.Context, t time.Time) ([]*domain.CommitmentRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, committed_at, description, participant, to_be_completed_at, calendar_event_id, created_at
		FROM commitments
		WHERE to_be_completed_at > ?
		ORDER BY to_be_completed_at ASC
	`, t.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query commitments: %w", err)
	}
	defer rows.Close()

	return scanCommitments(rows)
}

func (r *commitmentRepo) Close() error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCommitment(row rowScanner) (*domain.CommitmentRecord, error) {
	var rec domain.CommitmentRecord
	var committedAt, toBeCompletedAt, createdAt int64
	if err := row.Scan(&rec.ID, &committedAt, &rec.Description, &rec.Participant, &toBeCompletedAt, &rec.CalendarEventID, &createdAt); err != nil {
		return nil, err
	}
	rec.CommittedAt = time.Unix(committedAt, 0).UTC()
	if toBeCompletedAt > 0 {
		rec.ToBeCompletedAt = time.Unix(toBeCompletedAt, 0).UTC()
	}
	rec.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &rec, nil
}

func scanCommitments(rows *sql.Rows) ([]*domain.CommitmentRecord, error) {
	var records []*domain.CommitmentRecord
	for rows.Next() {
		rec, err := scanCommitment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan commitment: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// dueUnix maps a zero due time to 0 so records without one never match
// the open-commitments window.
func dueUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
