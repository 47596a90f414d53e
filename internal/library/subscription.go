package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shoplens/internal/credits"
)

// Subscription loads the single account record.
func (s *Store) Subscription(ctx context.Context) (credits.Subscription, bool, error) {
	var recordJSON string
	err := s.db.QueryRowContext(ctx,
		"SELECT record_json FROM subscription WHERE id = 1",
	).Scan(&recordJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return credits.Subscription{}, false, nil
	}
	if err != nil {
		return credits.Subscription{}, false, fmt.Errorf("load subscription: %w", err)
	}

	var sub credits.Subscription
	if err := json.Unmarshal([]byte(recordJSON), &sub); err != nil {
		return credits.Subscription{}, false, fmt.Errorf("decode subscription: %w", err)
	}
	return sub, true, nil
}

// SaveSubscription replaces the account record.
func (s *Store) SaveSubscription(ctx context.Context, sub credits.Subscription) error {
	data, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encode subscription: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO subscription (id, email, record_json, updated_at)
        VALUES (1, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            email = excluded.email,
            record_json = excluded.record_json,
            updated_at = excluded.updated_at`,
		sub.Email,
		string(data),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save subscription: %w", err)
	}
	return nil
}
