package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RoutineRecord is one row from routines plus its latest completion.
type RoutineRecord struct {
	ID            uuid.UUID
	Name          string
	Category      string
	Steps         []string
	LastCompleted *time.Time
	CreatedAt     time.Time
}

// CreateRoutine inserts a routine and its ordered steps.
// Tables: routines, routine_steps.
func (s *Store) CreateRoutine(ctx context.Context, owner uuid.UUID, name, category string, steps []string) (uuid.UUID, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	id := uuid.New()
	_, err = tx.Exec(ctx, `
		INSERT INTO routines (id, owner_uuid, name, category, created_at)
		VALUES ($1, $2, $3, $4, now())`,
		id, owner, name, category,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert routine: %w", err)
	}

	for i, step := range steps {
		_, err = tx.Exec(ctx, `
			INSERT INTO routine_steps (id, routine_id, position, label)
			VALUES ($1, $2, $3, $4)`,
			uuid.New(), id, i, step,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("insert routine step: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// CompleteRoutine records a completion for the given calendar date.
func (s *Store) CompleteRoutine(ctx context.Context, owner, id uuid.UUID, on time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO routine_completions (id, routine_id, completed_on)
		SELECT $1, r.id, $2 FROM routines r
		WHERE r.id = $3 AND r.owner_uuid = $4`,
		uuid.New(), on, id, owner,
	)
	if err != nil {
		return fmt.Errorf("insert completion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("routine %s not found", id)
	}
	return nil
}

// UpdateRoutine renames or recategorizes a routine. Empty fields keep their
// current value.
func (s *Store) UpdateRoutine(ctx context.Context, owner, id uuid.UUID, name, category string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE routines
		SET name = COALESCE(NULLIF($1, ''), name),
		    category = COALESCE(NULLIF($2, ''), category)
		WHERE id = $3 AND owner_uuid = $4`,
		name, category, id, owner,
	)
	if err != nil {
		return fmt.Errorf("update routine: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("routine %s not found", id)
	}
	return nil
}

// GetRoutine fetches one routine with its steps.
func (s *Store) GetRoutine(ctx context.Context, owner, id uuid.UUID) (*RoutineRecord, error) {
	var rec RoutineRecord
	err := s.pool.QueryRow(ctx, `
		SELECT r.id, r.name, r.category, r.created_at,
		       (SELECT max(c.completed_on) FROM routine_completions c WHERE c.routine_id = r.id)
		FROM routines r
		WHERE r.id = $1 AND r.owner_uuid = $2`,
		id, owner,
	).Scan(&rec.ID, &rec.Name, &rec.Category, &rec.CreatedAt, &rec.LastCompleted)
	if err != nil {
		return nil, fmt.Errorf("get routine: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT label FROM routine_steps WHERE routine_id = $1 ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("get routine steps: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		rec.Steps = append(rec.Steps, label)
	}
	return &rec, rows.Err()
}

// ListRoutines returns all routines for an owner, newest first.
func (s *Store) ListRoutines(ctx context.Context, owner uuid.UUID) ([]RoutineRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, category, created_at
		FROM routines
		WHERE owner_uuid = $1
		ORDER BY created_at DESC`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}
	defer rows.Close()

	var out []RoutineRecord
	for rows.Next() {
		var rec RoutineRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Category, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan routine: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// FindRoutineByName resolves a routine by case-insensitive name match,
// preferring the most recently created on duplicates.
func (s *Store) FindRoutineByName(ctx context.Context, owner uuid.UUID, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.pool.QueryRow(ctx, `
		SELECT id FROM routines
		WHERE owner_uuid = $1 AND lower(name) = lower($2)
		ORDER BY created_at DESC
		LIMIT 1`,
		owner, name,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("find routine %q: %w", name, err)
	}
	return id, nil
}
