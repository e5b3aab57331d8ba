package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BeliefRecord is one belief statement, optionally reframed later.
type BeliefRecord struct {
	ID         uuid.UUID
	Statement  string
	BeliefType string // empowering | limiting
	Reframed   string
	CreatedAt  time.Time
}

// CreateBelief inserts a belief statement.
func (s *Store) CreateBelief(ctx context.Context, owner uuid.UUID, statement, beliefType string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO beliefs (id, owner_uuid, statement, belief_type, created_at)
		VALUES ($1, $2, $3, $4, now())`,
		id, owner, statement, beliefType,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert belief: %w", err)
	}
	return id, nil
}

// ReframeBelief records a reframed statement for an existing belief.
func (s *Store) ReframeBelief(ctx context.Context, owner, id uuid.UUID, reframed string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE beliefs SET reframed_statement = $1, reframed_at = now()
		WHERE id = $2 AND owner_uuid = $3`,
		reframed, id, owner,
	)
	if err != nil {
		return fmt.Errorf("reframe belief: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("belief %s not found", id)
	}
	return nil
}

// ListBeliefs returns all beliefs for an owner, newest first.
func (s *Store) ListBeliefs(ctx context.Context, owner uuid.UUID) ([]BeliefRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, statement, belief_type, COALESCE(reframed_statement, ''), created_at
		FROM beliefs
		WHERE owner_uuid = $1
		ORDER BY created_at DESC`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("list beliefs: %w", err)
	}
	defer rows.Close()

	var out []BeliefRecord
	for rows.Next() {
		var rec BeliefRecord
		if err := rows.Scan(&rec.ID, &rec.Statement, &rec.BeliefType, &rec.Reframed, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan belief: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
