package library

import (
	"context"
	"fmt"
	"time"
)

// AppendHistory records a completed generation run. The history acts
// as a ring: once the configured limit is reached the oldest entries
// drop out. When even the insert fails on a storage error, the oldest
// half is trimmed and the insert retried once before giving up.
func (s *Store) AppendHistory(ctx context.Context, entry HistoryEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	if err := s.insertHistory(ctx, entry); err != nil {
		if trimErr := s.trimHistory(ctx, s.historyLimit/2); trimErr != nil {
			return fmt.Errorf("append history: %w (trim also failed: %v)", err, trimErr)
		}
		if retryErr := s.insertHistory(ctx, entry); retryErr != nil {
			return fmt.Errorf("append history after trim: %w", retryErr)
		}
		return nil
	}
	return s.trimHistory(ctx, s.historyLimit)
}

func (s *Store) insertHistory(ctx context.Context, entry HistoryEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO history (project_id, feature, detail, credits, created_at)
        VALUES (?, ?, ?, ?, ?)`,
		entry.ProjectID,
		entry.Feature,
		entry.Detail,
		entry.Credits,
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

// trimHistory deletes everything beyond the newest keep entries.
func (s *Store) trimHistory(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM history WHERE id NOT IN (
            SELECT id FROM history ORDER BY id DESC LIMIT ?
        )`, keep)
	if err != nil {
		return fmt.Errorf("trim history: %w", err)
	}
	return nil
}

// History returns the newest entries first, at most limit of them. A
// non-positive limit returns everything retained.
func (s *Store) History(ctx context.Context, limit int) ([]HistoryEntry, error) {
	query := `SELECT id, project_id, feature, detail, credits, created_at
        FROM history ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []HistoryEntry
	for rows.Next() {
		var (
			entry         HistoryEntry
			createdAtText string
		)
		if err := rows.Scan(&entry.ID, &entry.ProjectID, &entry.Feature, &entry.Detail, &entry.Credits, &createdAtText); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		if entry.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAtText); err != nil {
			return nil, fmt.Errorf("parse history timestamp: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

// ClearHistory drops all retained entries.
func (s *Store) ClearHistory(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM history"); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
