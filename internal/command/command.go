package command

import "fmt"

// EntityType identifies which journal domain a message targets.
type EntityType string

const (
	EntityRoutine       EntityType = "routine"
	EntityBelief        EntityType = "belief"
	EntitySynchronicity EntityType = "synchronicity"
	EntityMood          EntityType = "mood"
	EntityGoal          EntityType = "goal"
)

// Intent is the action a message requests against an entity type.
type Intent string

const (
	IntentCreate   Intent = "create"
	IntentUpdate   Intent = "update"
	IntentComplete Intent = "complete"
	IntentView     Intent = "view"
)

// Command is the interpreted form of a single chat message. It is built
// fresh per message and never mutated after the classifier returns it.
// A message that matches no rule produces no Command at all — there is
// no zero-confidence placeholder value.
type Command struct {
	Entity     EntityType     `json:"entity_type"`
	Intent     Intent         `json:"intent"`
	Params     map[string]any `json:"parameters"`
	Confidence float64        `json:"confidence"`
	Excerpt    string         `json:"raw_excerpt"`
}

// Ref returns the command in "entity.intent" form for logging and events.
func (c *Command) Ref() string {
	return fmt.Sprintf("%s.%s", c.Entity, c.Intent)
}

// Param returns a string parameter, or "" when absent or not a string.
func (c *Command) Param(key string) string {
	if v, ok := c.Params[key].(string); ok {
		return v
	}
	return ""
}

// EntityPriority is the fixed tie-break ordering between entity types when
// rule matches are otherwise equal. Lower is stronger. The ordering is a
// documented contract: changing it changes classification results.
func EntityPriority(e EntityType) int {
	switch e {
	case EntityMood:
		return 0
	case EntityRoutine:
		return 1
	case EntityGoal:
		return 2
	case EntitySynchronicity:
		return 3
	case EntityBelief:
		return 4
	default:
		return 5
	}
}
