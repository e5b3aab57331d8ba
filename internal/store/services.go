package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sagejournal/sage/internal/command"
	"github.com/sagejournal/sage/internal/dispatch"
)

// Services binds the store to one owner and exposes the per-entity domain
// services behind the dispatcher's capability surface. Adapters are plain
// values over the shared pool, so building one per request is free.
type Services struct {
	store *Store
	owner uuid.UUID
}

func (s *Store) For(owner uuid.UUID) *Services {
	return &Services{store: s, owner: owner}
}

// Registry returns the dispatch registry for this owner. Each service
// implements only the capabilities its entity supports: mood entries and
// synchronicities are append-only journals with no update/complete.
func (v *Services) Registry() dispatch.Registry {
	return dispatch.Registry{
		command.EntityRoutine:       routineService{v},
		command.EntityMood:          moodService{v},
		command.EntityBelief:        beliefService{v},
		command.EntitySynchronicity: synchService{v},
		command.EntityGoal:          goalService{v},
	}
}

// ResolveTarget maps a complete/update command's name parameter to a stored
// entity id. Returns uuid.Nil when nothing resolves; the dispatcher then
// reports missing_target rather than guessing.
func (v *Services) ResolveTarget(ctx context.Context, cmd *command.Command) uuid.UUID {
	name := cmd.Param("name")
	if name == "" {
		return uuid.Nil
	}
	switch cmd.Entity {
	case command.EntityRoutine:
		if id, err := v.store.FindRoutineByName(ctx, v.owner, name); err == nil {
			return id
		}
	case command.EntityGoal:
		if id, err := v.store.FindGoalByName(ctx, v.owner, name); err == nil {
			return id
		}
	}
	return uuid.Nil
}

// routine

type routineService struct{ v *Services }

func (r routineService) Create(ctx context.Context, params map[string]any) (*dispatch.Entity, error) {
	name := strParam(params, "name")
	if name == "" {
		return nil, fmt.Errorf("routine name missing")
	}
	id, err := r.v.store.CreateRoutine(ctx, r.v.owner, name, strParam(params, "category"), strSlice(params, "steps"))
	if err != nil {
		return nil, err
	}
	rec, err := r.v.store.GetRoutine(ctx, r.v.owner, id)
	if err != nil {
		return nil, err
	}
	return routineEntity(*rec), nil
}

func (r routineService) Update(ctx context.Context, id uuid.UUID, params map[string]any) (*dispatch.Entity, error) {
	if err := r.v.store.UpdateRoutine(ctx, r.v.owner, id, strParam(params, "name"), strParam(params, "category")); err != nil {
		return nil, err
	}
	rec, err := r.v.store.GetRoutine(ctx, r.v.owner, id)
	if err != nil {
		return nil, err
	}
	return routineEntity(*rec), nil
}

func (r routineService) Complete(ctx context.Context, id uuid.UUID) (*dispatch.Entity, error) {
	now := time.Now().UTC()
	on := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if err := r.v.store.CompleteRoutine(ctx, r.v.owner, id, on); err != nil {
		return nil, err
	}
	rec, err := r.v.store.GetRoutine(ctx, r.v.owner, id)
	if err != nil {
		return nil, err
	}
	return routineEntity(*rec), nil
}

func (r routineService) List(ctx context.Context, _ map[string]any) ([]dispatch.Entity, error) {
	recs, err := r.v.store.ListRoutines(ctx, r.v.owner)
	if err != nil {
		return nil, err
	}
	out := make([]dispatch.Entity, len(recs))
	for i, rec := range recs {
		out[i] = *routineEntity(rec)
	}
	return out, nil
}

// mood — append-only journal: Creator and Lister only.

type moodService struct{ v *Services }

func (m moodService) Create(ctx context.Context, params map[string]any) (*dispatch.Entity, error) {
	entryDate := dateParam(params, "entry_date", time.Now().UTC())
	id, err := m.v.store.CreateMoodEntry(ctx, m.v.owner,
		intParam(params, "mood_rating"),
		intParam(params, "energy_level"),
		strParam(params, "notes"),
		entryDate,
	)
	if err != nil {
		return nil, err
	}
	return &dispatch.Entity{
		ID:        id,
		Kind:      command.EntityMood,
		Fields:    params,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (m moodService) List(ctx context.Context, filters map[string]any) ([]dispatch.Entity, error) {
	var since time.Time
	if trend, _ := filters["trend"].(bool); trend {
		since = time.Now().UTC().AddDate(0, 0, -30)
	}
	recs, err := m.v.store.ListMoodEntries(ctx, m.v.owner, since)
	if err != nil {
		return nil, err
	}
	out := make([]dispatch.Entity, len(recs))
	for i, rec := range recs {
		fields := map[string]any{
			"notes":      rec.Notes,
			"entry_date": rec.EntryDate.Format("2006-01-02"),
		}
		if rec.MoodRating != nil {
			fields["mood_rating"] = *rec.MoodRating
		}
		if rec.EnergyLevel != nil {
			fields["energy_level"] = *rec.EnergyLevel
		}
		out[i] = dispatch.Entity{ID: rec.ID, Kind: command.EntityMood, Fields: fields, CreatedAt: rec.CreatedAt}
	}
	return out, nil
}

// belief

type beliefService struct{ v *Services }

func (b beliefService) Create(ctx context.Context, params map[string]any) (*dispatch.Entity, error) {
	stmt := strParam(params, "statement")
	if stmt == "" {
		return nil, fmt.Errorf("belief statement missing")
	}
	id, err := b.v.store.CreateBelief(ctx, b.v.owner, stmt, strParam(params, "belief_type"))
	if err != nil {
		return nil, err
	}
	return &dispatch.Entity{ID: id, Kind: command.EntityBelief, Fields: params, CreatedAt: time.Now().UTC()}, nil
}

func (b beliefService) Update(ctx context.Context, id uuid.UUID, params map[string]any) (*dispatch.Entity, error) {
	stmt := strParam(params, "statement")
	if stmt == "" {
		return nil, fmt.Errorf("reframed statement missing")
	}
	if err := b.v.store.ReframeBelief(ctx, b.v.owner, id, stmt); err != nil {
		return nil, err
	}
	return &dispatch.Entity{ID: id, Kind: command.EntityBelief, Fields: params, CreatedAt: time.Now().UTC()}, nil
}

func (b beliefService) List(ctx context.Context, _ map[string]any) ([]dispatch.Entity, error) {
	recs, err := b.v.store.ListBeliefs(ctx, b.v.owner)
	if err != nil {
		return nil, err
	}
	out := make([]dispatch.Entity, len(recs))
	for i, rec := range recs {
		out[i] = dispatch.Entity{
			ID:   rec.ID,
			Kind: command.EntityBelief,
			Fields: map[string]any{
				"statement":   rec.Statement,
				"belief_type": rec.BeliefType,
				"reframed":    rec.Reframed,
			},
			CreatedAt: rec.CreatedAt,
		}
	}
	return out, nil
}

// synchronicity — append-only journal: Creator and Lister only.

type synchService struct{ v *Services }

func (sv synchService) Create(ctx context.Context, params map[string]any) (*dispatch.Entity, error) {
	title := strParam(params, "title")
	if title == "" {
		return nil, fmt.Errorf("synchronicity title missing")
	}
	rec := SynchronicityRecord{
		Title:        title,
		Description:  strParam(params, "description"),
		Significance: intParam(params, "significance"),
		Tags:         strSlice(params, "tags"),
		Emotions:     strSlice(params, "emotions"),
		EntryDate:    dateParam(params, "entry_date", time.Now().UTC()),
	}
	id, err := sv.v.store.CreateSynchronicity(ctx, sv.v.owner, rec)
	if err != nil {
		return nil, err
	}
	return &dispatch.Entity{ID: id, Kind: command.EntitySynchronicity, Fields: params, CreatedAt: time.Now().UTC()}, nil
}

func (sv synchService) List(ctx context.Context, _ map[string]any) ([]dispatch.Entity, error) {
	recs, err := sv.v.store.ListSynchronicities(ctx, sv.v.owner)
	if err != nil {
		return nil, err
	}
	out := make([]dispatch.Entity, len(recs))
	for i, rec := range recs {
		fields := map[string]any{
			"title":       rec.Title,
			"description": rec.Description,
			"tags":        rec.Tags,
			"emotions":    rec.Emotions,
			"entry_date":  rec.EntryDate.Format("2006-01-02"),
		}
		if rec.Significance != nil {
			fields["significance"] = *rec.Significance
		}
		out[i] = dispatch.Entity{ID: rec.ID, Kind: command.EntitySynchronicity, Fields: fields, CreatedAt: rec.CreatedAt}
	}
	return out, nil
}

// goal

type goalService struct{ v *Services }

func (g goalService) Create(ctx context.Context, params map[string]any) (*dispatch.Entity, error) {
	title := strParam(params, "title")
	if title == "" {
		return nil, fmt.Errorf("goal title missing")
	}
	var target *time.Time
	if d := strParam(params, "target_date"); d != "" {
		if t, err := time.Parse("2006-01-02", d); err == nil {
			target = &t
		}
	}
	id, err := g.v.store.CreateGoal(ctx, g.v.owner, title, strParam(params, "category"), target)
	if err != nil {
		return nil, err
	}
	rec, err := g.v.store.GetGoal(ctx, g.v.owner, id)
	if err != nil {
		return nil, err
	}
	return goalEntity(*rec), nil
}

func (g goalService) Update(ctx context.Context, id uuid.UUID, params map[string]any) (*dispatch.Entity, error) {
	progress := intParam(params, "progress")
	if progress == nil {
		return nil, fmt.Errorf("goal progress missing")
	}
	if err := g.v.store.UpdateGoalProgress(ctx, g.v.owner, id, *progress); err != nil {
		return nil, err
	}
	rec, err := g.v.store.GetGoal(ctx, g.v.owner, id)
	if err != nil {
		return nil, err
	}
	return goalEntity(*rec), nil
}

func (g goalService) Complete(ctx context.Context, id uuid.UUID) (*dispatch.Entity, error) {
	if err := g.v.store.CompleteGoal(ctx, g.v.owner, id); err != nil {
		return nil, err
	}
	rec, err := g.v.store.GetGoal(ctx, g.v.owner, id)
	if err != nil {
		return nil, err
	}
	return goalEntity(*rec), nil
}

func (g goalService) List(ctx context.Context, _ map[string]any) ([]dispatch.Entity, error) {
	recs, err := g.v.store.ListGoals(ctx, g.v.owner)
	if err != nil {
		return nil, err
	}
	out := make([]dispatch.Entity, len(recs))
	for i, rec := range recs {
		out[i] = *goalEntity(rec)
	}
	return out, nil
}

// entity mapping

func routineEntity(rec RoutineRecord) *dispatch.Entity {
	fields := map[string]any{
		"name":     rec.Name,
		"category": rec.Category,
		"steps":    rec.Steps,
	}
	if rec.LastCompleted != nil {
		fields["last_completed"] = rec.LastCompleted.Format("2006-01-02")
	}
	return &dispatch.Entity{ID: rec.ID, Kind: command.EntityRoutine, Fields: fields, CreatedAt: rec.CreatedAt}
}

func goalEntity(rec GoalRecord) *dispatch.Entity {
	fields := map[string]any{
		"title":    rec.Title,
		"category": rec.Category,
		"progress": rec.Progress,
	}
	if rec.TargetDate != nil {
		fields["target_date"] = rec.TargetDate.Format("2006-01-02")
	}
	if rec.CompletedAt != nil {
		fields["completed_at"] = rec.CompletedAt.Format(time.RFC3339)
	}
	return &dispatch.Entity{ID: rec.ID, Kind: command.EntityGoal, Fields: fields, CreatedAt: rec.CreatedAt}
}

// parameter coercion — the interpreter's bag is map[string]any and values
// may arrive as JSON-decoded float64s when commands cross the bus.

func strParam(p map[string]any, key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}

func intParam(p map[string]any, key string) *int {
	switch v := p[key].(type) {
	case int:
		return &v
	case float64:
		n := int(v)
		return &n
	}
	return nil
}

func strSlice(p map[string]any, key string) []string {
	switch v := p[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func dateParam(p map[string]any, key string, fallback time.Time) time.Time {
	if s := strParam(p, key); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return t
		}
	}
	return time.Date(fallback.Year(), fallback.Month(), fallback.Day(), 0, 0, 0, 0, time.UTC)
}
