package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sisifus/jobflow/internal/model"
)

// SaveClassifications saves classification results. Reclassifying an
// email replaces its previous result.
func (s *SQLiteStorage) SaveClassifications(ctx context.Context, results []model.Classification) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if results == nil {
		return fmt.Errorf("%w: results", ErrNilParameter)
	}
	if len(results) == 0 {
		return fmt.Errorf("%w: results", ErrEmptySlice)
	}
	for i := range results {
		if err := validateClassification(&results[i]); err != nil {
			return fmt.Errorf("classification at index %d: %w", i, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO classifications (
			email_id, status, company, confidence,
			matched_rule_count, is_job_related, notes, classified_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, result := range results {
		_, err = stmt.ExecContext(ctx,
			result.EmailID,
			string(result.Status),
			result.Company,
			result.Confidence,
			result.MatchedRuleCount,
			result.IsJobRelated,
			result.Notes,
			result.ClassifiedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert classification for %s: %w", result.EmailID, err)
		}
	}

	return tx.Commit()
}

// GetClassification retrieves the classification for a single email.
func (s *SQLiteStorage) GetClassification(ctx context.Context, emailID string) (*model.Classification, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(emailID, "emailID"); err != nil {
		return nil, err
	}

	var c model.Classification
	var status string
	err := s.db.QueryRowContext(ctx, `
		SELECT email_id, status, company, confidence,
		       matched_rule_count, is_job_related, notes, classified_at
		FROM classifications
		WHERE email_id = ?
	`, emailID).Scan(
		&c.EmailID,
		&status,
		&c.Company,
		&c.Confidence,
		&c.MatchedRuleCount,
		&c.IsJobRelated,
		&c.Notes,
		&c.ClassifiedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get classification: %w", err)
	}
	c.Status = model.Status(status)

	return &c, nil
}

// GetAllClassifications retrieves every classification, joined against
// the email table and ordered by email date.
func (s *SQLiteStorage) GetAllClassifications(ctx context.Context) ([]model.Classification, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.queryClassifications(ctx, `
		SELECT c.email_id, c.status, c.company, c.confidence,
		       c.matched_rule_count, c.is_job_related, c.notes, c.classified_at
		FROM classifications c
		JOIN emails e ON c.email_id = e.id
		ORDER BY e.date ASC, e.id ASC
	`)
}

// GetClassificationsByStatus retrieves all classifications with the
// given status.
func (s *SQLiteStorage) GetClassificationsByStatus(ctx context.Context, status model.Status) ([]model.Classification, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidClassification, status)
	}
	return s.queryClassifications(ctx, `
		SELECT c.email_id, c.status, c.company, c.confidence,
		       c.matched_rule_count, c.is_job_related, c.notes, c.classified_at
		FROM classifications c
		JOIN emails e ON c.email_id = e.id
		WHERE c.status = ?
		ORDER BY e.date ASC, e.id ASC
	`, string(status))
}

// GetClassificationsByDateRange retrieves classifications for emails
// dated within [start, end].
func (s *SQLiteStorage) GetClassificationsByDateRange(ctx context.Context, start, end time.Time) ([]model.Classification, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date %v is before start date %v", ErrInvalidDateRange, end, start)
	}
	return s.queryClassifications(ctx, `
		SELECT c.email_id, c.status, c.company, c.confidence,
		       c.matched_rule_count, c.is_job_related, c.notes, c.classified_at
		FROM classifications c
		JOIN emails e ON c.email_id = e.id
		WHERE e.date >= ? AND e.date <= ?
		ORDER BY e.date ASC, e.id ASC
	`, start, end)
}

// GetClassificationCount returns the total number of classifications.
func (s *SQLiteStorage) GetClassificationCount(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM classifications`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get classification count: %w", err)
	}
	return count, nil
}

// GetStatusSummary returns a count of classifications per status.
func (s *SQLiteStorage) GetStatusSummary(ctx context.Context) (map[model.Status]int, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT status, COUNT(*) FROM classifications GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query status summary: %w", err)
	}
	defer func() { _ = rows.Close() }()

	summary := make(map[model.Status]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status summary: %w", err)
		}
		summary[model.Status(status)] = count
	}

	return summary, rows.Err()
}

// GetCompanySummary returns a count of job-related classifications per
// company.
func (s *SQLiteStorage) GetCompanySummary(ctx context.Context) (map[string]int, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT company, COUNT(*)
		FROM classifications
		WHERE is_job_related = 1
		GROUP BY company
		ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query company summary: %w", err)
	}
	defer func() { _ = rows.Close() }()

	summary := make(map[string]int)
	for rows.Next() {
		var company string
		var count int
		if err := rows.Scan(&company, &count); err != nil {
			return nil, fmt.Errorf("failed to scan company summary: %w", err)
		}
		summary[company] = count
	}

	return summary, rows.Err()
}

func (s *SQLiteStorage) queryClassifications(ctx context.Context, query string, args ...any) ([]model.Classification, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query classifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []model.Classification
	for rows.Next() {
		var c model.Classification
		var status string
		if err := rows.Scan(
			&c.EmailID,
			&status,
			&c.Company,
			&c.Confidence,
			&c.MatchedRuleCount,
			&c.IsJobRelated,
			&c.Notes,
			&c.ClassifiedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan classification: %w", err)
		}
		c.Status = model.Status(status)
		results = append(results, c)
	}

	return results, rows.Err()
}
