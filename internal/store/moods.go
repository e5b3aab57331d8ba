package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MoodRecord is one mood journal entry.
type MoodRecord struct {
	ID          uuid.UUID
	MoodRating  *int
	EnergyLevel *int
	Notes       string
	EntryDate   time.Time
	CreatedAt   time.Time
}

// CreateMoodEntry inserts a mood entry. Rating and energy are nullable:
// the interpreter omits them when the message carried no evidence.
func (s *Store) CreateMoodEntry(ctx context.Context, owner uuid.UUID, rating, energy *int, notes string, entryDate time.Time) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO mood_entries (id, owner_uuid, mood_rating, energy_level, notes, entry_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())`,
		id, owner, rating, energy, notes, entryDate,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert mood entry: %w", err)
	}
	return id, nil
}

// ListMoodEntries returns entries for an owner since the given date,
// oldest first so trend consumers get a time series.
func (s *Store) ListMoodEntries(ctx context.Context, owner uuid.UUID, since time.Time) ([]MoodRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, mood_rating, energy_level, notes, entry_date, created_at
		FROM mood_entries
		WHERE owner_uuid = $1 AND entry_date >= $2
		ORDER BY entry_date ASC, created_at ASC`,
		owner, since,
	)
	if err != nil {
		return nil, fmt.Errorf("list mood entries: %w", err)
	}
	defer rows.Close()

	var out []MoodRecord
	for rows.Next() {
		var rec MoodRecord
		if err := rows.Scan(&rec.ID, &rec.MoodRating, &rec.EnergyLevel, &rec.Notes, &rec.EntryDate, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan mood entry: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
