package command

import "testing"

func TestRef(t *testing.T) {
	c := &Command{Entity: EntityMood, Intent: IntentCreate}
	if got := c.Ref(); got != "mood.create" {
		t.Errorf("Ref() = %q, want mood.create", got)
	}
}

func TestParam(t *testing.T) {
	c := &Command{Params: map[string]any{
		"name":   "morning",
		"rating": 8,
	}}
	if got := c.Param("name"); got != "morning" {
		t.Errorf("Param(name) = %q", got)
	}
	if got := c.Param("rating"); got != "" {
		t.Errorf("Param on non-string = %q, want empty", got)
	}
	if got := c.Param("missing"); got != "" {
		t.Errorf("Param on absent key = %q, want empty", got)
	}
}

func TestEntityPriority(t *testing.T) {
	ordered := []EntityType{EntityMood, EntityRoutine, EntityGoal, EntitySynchronicity, EntityBelief}
	for i := 1; i < len(ordered); i++ {
		if EntityPriority(ordered[i-1]) >= EntityPriority(ordered[i]) {
			t.Errorf("priority of %s not stronger than %s", ordered[i-1], ordered[i])
		}
	}
	if EntityPriority("unknown") <= EntityPriority(EntityBelief) {
		t.Error("unknown entity should rank last")
	}
}
