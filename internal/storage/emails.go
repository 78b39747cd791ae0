package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sisifus/jobflow/internal/model"
)

// SaveEmails saves emails to the database, skipping duplicates by ID
// and content hash.
func (s *SQLiteStorage) SaveEmails(ctx context.Context, emails []model.Email) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateEmails(emails); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO emails (
			id, hash, date, subject, body, sender_name, sender_address, raw_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	saved := 0
	for i := range emails {
		email := emails[i]
		result, execErr := stmt.ExecContext(ctx,
			email.ID,
			email.GenerateHash(),
			email.Date,
			email.Subject,
			email.Body,
			email.Sender.Name,
			email.Sender.Address,
			email.RawDate,
		)
		if execErr != nil {
			return 0, fmt.Errorf("failed to insert email %s: %w", email.ID, execErr)
		}
		if n, _ := result.RowsAffected(); n > 0 {
			saved++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return saved, nil
}

// GetEmailsToClassify retrieves emails that have no classification yet,
// oldest first.
func (s *SQLiteStorage) GetEmailsToClassify(ctx context.Context) ([]model.Email, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.date, e.subject, e.body, e.sender_name, e.sender_address, e.raw_date
		FROM emails e
		LEFT JOIN classifications c ON e.id = c.email_id
		WHERE c.email_id IS NULL
		ORDER BY e.date ASC, e.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query emails: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanEmails(rows)
}

// GetAllEmails retrieves every stored email, oldest first.
func (s *SQLiteStorage) GetAllEmails(ctx context.Context) ([]model.Email, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, subject, body, sender_name, sender_address, raw_date
		FROM emails
		ORDER BY date ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query emails: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanEmails(rows)
}

// GetEmailByID retrieves a single email by ID.
func (s *SQLiteStorage) GetEmailByID(ctx context.Context, id string) (*model.Email, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var email model.Email
	var date sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT id, date, subject, body, sender_name, sender_address, raw_date
		FROM emails
		WHERE id = ?
	`, id).Scan(
		&email.ID,
		&date,
		&email.Subject,
		&email.Body,
		&email.Sender.Name,
		&email.Sender.Address,
		&email.RawDate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get email: %w", err)
	}
	if date.Valid {
		email.Date = date.Time
	}

	return &email, nil
}

// GetEmailCount returns the total number of stored emails.
func (s *SQLiteStorage) GetEmailCount(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM emails`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get email count: %w", err)
	}
	return count, nil
}

// GetEmailDateRange returns the earliest and latest email dates.
func (s *SQLiteStorage) GetEmailDateRange(ctx context.Context) (time.Time, time.Time, error) {
	if err := validateContext(ctx); err != nil {
		return time.Time{}, time.Time{}, err
	}

	// Aggregate expressions lose the column's declared type, so the
	// driver would hand back raw strings; select the column directly.
	var earliest, latest time.Time
	err := s.db.QueryRowContext(ctx, `
		SELECT date FROM emails WHERE date IS NOT NULL ORDER BY date ASC, id ASC LIMIT 1
	`).Scan(&earliest)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, time.Time{}, ErrNotFound
	}
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("failed to get earliest email date: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT date FROM emails WHERE date IS NOT NULL ORDER BY date DESC, id DESC LIMIT 1
	`).Scan(&latest)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("failed to get latest email date: %w", err)
	}

	return earliest, latest, nil
}

// ImportRun records one completed mbox import for auditing.
type ImportRun struct {
	StartedAt    time.Time
	FinishedAt   time.Time
	SourcePath   string
	MessageCount int
	Imported     int
	Skipped      int
}

// RecordImportRun persists an import run record.
func (s *SQLiteStorage) RecordImportRun(ctx context.Context, run ImportRun) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(run.SourcePath, "sourcePath"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO import_runs (
			source_path, message_count, imported, skipped, started_at, finished_at
		) VALUES (?, ?, ?, ?, ?, ?)
	`, run.SourcePath, run.MessageCount, run.Imported, run.Skipped, run.StartedAt, run.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to record import run: %w", err)
	}
	return nil
}

func scanEmails(rows *sql.Rows) ([]model.Email, error) {
	var emails []model.Email
	for rows.Next() {
		var email model.Email
		var date sql.NullTime
		if err := rows.Scan(
			&email.ID,
			&date,
			&email.Subject,
			&email.Body,
			&email.Sender.Name,
			&email.Sender.Address,
			&email.RawDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan email: %w", err)
		}
		if date.Valid {
			email.Date = date.Time
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}
