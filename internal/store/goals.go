package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GoalRecord is one goal with its progress state.
type GoalRecord struct {
	ID          uuid.UUID
	Title       string
	Category    string
	Progress    int // 0-100
	TargetDate  *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
}

// CreateGoal inserts a goal.
func (s *Store) CreateGoal(ctx context.Context, owner uuid.UUID, title, category string, targetDate *time.Time) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO goals (id, owner_uuid, title, category, progress, target_date, created_at)
		VALUES ($1, $2, $3, $4, 0, $5, now())`,
		id, owner, title, category, targetDate,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert goal: %w", err)
	}
	return id, nil
}

// UpdateGoalProgress sets progress (0-100) on a goal.
func (s *Store) UpdateGoalProgress(ctx context.Context, owner, id uuid.UUID, progress int) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE goals SET progress = $1
		WHERE id = $2 AND owner_uuid = $3`,
		progress, id, owner,
	)
	if err != nil {
		return fmt.Errorf("update goal progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("goal %s not found", id)
	}
	return nil
}

// CompleteGoal marks a goal achieved.
func (s *Store) CompleteGoal(ctx context.Context, owner, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE goals SET progress = 100, completed_at = now()
		WHERE id = $1 AND owner_uuid = $2`,
		id, owner,
	)
	if err != nil {
		return fmt.Errorf("complete goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("goal %s not found", id)
	}
	return nil
}

// GetGoal fetches one goal.
func (s *Store) GetGoal(ctx context.Context, owner, id uuid.UUID) (*GoalRecord, error) {
	var rec GoalRecord
	err := s.pool.QueryRow(ctx, `
		SELECT id, title, category, progress, target_date, completed_at, created_at
		FROM goals
		WHERE id = $1 AND owner_uuid = $2`,
		id, owner,
	).Scan(&rec.ID, &rec.Title, &rec.Category, &rec.Progress, &rec.TargetDate, &rec.CompletedAt, &rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}
	return &rec, nil
}

// ListGoals returns all goals for an owner, open goals first.
func (s *Store) ListGoals(ctx context.Context, owner uuid.UUID) ([]GoalRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, category, progress, target_date, completed_at, created_at
		FROM goals
		WHERE owner_uuid = $1
		ORDER BY completed_at NULLS FIRST, created_at DESC`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var out []GoalRecord
	for rows.Next() {
		var rec GoalRecord
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Category, &rec.Progress, &rec.TargetDate, &rec.CompletedAt, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// FindGoalByName resolves a goal by case-insensitive substring match on the
// title, preferring open goals and then the most recent.
func (s *Store) FindGoalByName(ctx context.Context, owner uuid.UUID, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.pool.QueryRow(ctx, `
		SELECT id FROM goals
		WHERE owner_uuid = $1 AND title ILIKE '%' || $2 || '%'
		ORDER BY completed_at NULLS FIRST, created_at DESC
		LIMIT 1`,
		owner, name,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("find goal %q: %w", name, err)
	}
	return id, nil
}
