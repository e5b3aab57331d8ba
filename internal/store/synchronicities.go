package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SynchronicityRecord is one logged synchronicity.
type SynchronicityRecord struct {
	ID           uuid.UUID
	Title        string
	Description  string
	Significance *int
	Tags         []string
	Emotions     []string
	EntryDate    time.Time
	CreatedAt    time.Time
}

// CreateSynchronicity inserts a synchronicity with its tag and emotion sets.
func (s *Store) CreateSynchronicity(ctx context.Context, owner uuid.UUID, rec SynchronicityRecord) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO synchronicities (id, owner_uuid, title, description, significance, tags, emotions, entry_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())`,
		id, owner, rec.Title, rec.Description, rec.Significance, rec.Tags, rec.Emotions, rec.EntryDate,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert synchronicity: %w", err)
	}
	return id, nil
}

// ListSynchronicities returns all synchronicities for an owner, newest first.
func (s *Store) ListSynchronicities(ctx context.Context, owner uuid.UUID) ([]SynchronicityRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, description, significance, tags, emotions, entry_date, created_at
		FROM synchronicities
		WHERE owner_uuid = $1
		ORDER BY entry_date DESC, created_at DESC`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("list synchronicities: %w", err)
	}
	defer rows.Close()

	var out []SynchronicityRecord
	for rows.Next() {
		var rec SynchronicityRecord
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Description, &rec.Significance, &rec.Tags, &rec.Emotions, &rec.EntryDate, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan synchronicity: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
