package lexicon

import (
	"regexp"

	"github.com/sagejournal/sage/internal/command"
)

// Rule is one recognizer: a predicate over normalized (lower-cased, trimmed)
// message text, tagged with the entity/intent pair it evidences and a
// specificity weight in (0,1]. Longer, more explicit trigger phrases carry
// higher weights; a bare keyword carries a low one.
type Rule struct {
	Entity  command.EntityType
	Intent  command.Intent
	Pattern *regexp.Regexp
	Weight  float64

	// Capture names the parameter fed by the pattern's first capture
	// group, e.g. the routine name in "complete my morning routine".
	// Empty when the pattern captures nothing.
	Capture string
}

// DefaultRules returns the recognizer registry in match order. The registry
// is append-only: new entity types or phrasings are added at the end of
// their block and never change the semantics of earlier rules. Callers get
// a fresh slice header but share the compiled patterns, which are safe for
// concurrent use.
func DefaultRules() []Rule {
	return []Rule{
		// routine
		{command.EntityRoutine, command.IntentCreate, reRoutineCreate, 0.90, "name"},
		{command.EntityRoutine, command.IntentComplete, reRoutineComplete, 0.85, "name"},
		{command.EntityRoutine, command.IntentUpdate, reRoutineUpdate, 0.85, "name"},
		{command.EntityRoutine, command.IntentView, reRoutineView, 0.80, ""},

		// mood
		{command.EntityMood, command.IntentCreate, reMoodColon, 0.90, ""},
		{command.EntityMood, command.IntentCreate, reMoodLog, 0.90, ""},
		{command.EntityMood, command.IntentCreate, reIAmFeeling, 0.85, ""},
		{command.EntityMood, command.IntentCreate, reFeeling, 0.60, ""},
		{command.EntityMood, command.IntentView, reMoodView, 0.90, ""},
		{command.EntityMood, command.IntentView, reMoodTrends, 0.85, ""},

		// goal
		{command.EntityGoal, command.IntentCreate, reGoalCreate, 0.90, ""},
		{command.EntityGoal, command.IntentCreate, reGoalIs, 0.85, ""},
		{command.EntityGoal, command.IntentComplete, reGoalComplete, 0.85, ""},
		{command.EntityGoal, command.IntentUpdate, reGoalUpdate, 0.80, ""},
		{command.EntityGoal, command.IntentView, reGoalView, 0.80, ""},

		// synchronicity
		{command.EntitySynchronicity, command.IntentCreate, reSynchLog, 0.95, ""},
		{command.EntitySynchronicity, command.IntentCreate, reSynchColon, 0.90, ""},
		{command.EntitySynchronicity, command.IntentView, reSynchView, 0.80, ""},

		// belief
		{command.EntityBelief, command.IntentCreate, reIBelieve, 0.90, ""},
		{command.EntityBelief, command.IntentCreate, reBeliefColon, 0.90, ""},
		{command.EntityBelief, command.IntentUpdate, reBeliefUpdate, 0.80, ""},
		{command.EntityBelief, command.IntentView, reBeliefView, 0.80, ""},
	}
}

var (
	reRoutineCreate   = regexp.MustCompile(`(?:create|add|start|new)\s+(?:a\s+)?(?:my\s+)?([a-z][a-z ]*?)\s*routine`)
	reRoutineComplete = regexp.MustCompile(`(?:completed?|finish(?:ed)?|done with)\s+(?:my\s+)?([a-z][a-z ]*?)\s*routine`)
	reRoutineUpdate   = regexp.MustCompile(`(?:update|change|edit)\s+(?:my\s+)?([a-z][a-z ]*?)\s*routine`)
	reRoutineView     = regexp.MustCompile(`(?:show|list|view|display)\s+(?:my\s+)?routines?\b`)

	reMoodColon  = regexp.MustCompile(`\bmood\s*:`)
	reMoodLog    = regexp.MustCompile(`log\s+(?:my\s+)?mood\b`)
	reIAmFeeling = regexp.MustCompile(`i(?:'m| am)\s+feeling\b`)
	reFeeling    = regexp.MustCompile(`\bfeeling\s+[a-z]+`)
	reMoodView   = regexp.MustCompile(`(?:show|view|display)\s+(?:my\s+)?mood\b`)
	reMoodTrends = regexp.MustCompile(`mood\s+(?:trends?|history)\b`)

	reGoalCreate   = regexp.MustCompile(`(?:set|create|add|new)\s+(?:a\s+)?goal\b`)
	reGoalIs       = regexp.MustCompile(`my goal is\b`)
	reGoalComplete = regexp.MustCompile(`(?:achieved|completed|reached|hit)\s+(?:my\s+)?goal\b`)
	reGoalUpdate   = regexp.MustCompile(`(?:update|progress on)\s+(?:my\s+)?goal\b`)
	reGoalView     = regexp.MustCompile(`(?:show|list|view)\s+(?:my\s+)?goals?\b`)

	reSynchLog   = regexp.MustCompile(`(?:log|record)\s+(?:a\s+)?synch?(?:ronicity)?\b\s*:?`)
	reSynchColon = regexp.MustCompile(`\bsynch?(?:ronicity)?\s*:`)
	reSynchView  = regexp.MustCompile(`(?:show|list|view)\s+(?:my\s+)?synchronicities\b`)

	reIBelieve    = regexp.MustCompile(`i believe\b`)
	reBeliefColon = regexp.MustCompile(`(?:limiting\s+|new\s+)?belief\s*:`)
	reBeliefUpdate = regexp.MustCompile(`(?:update|reframe)\s+(?:my\s+)?belief\b`)
	reBeliefView  = regexp.MustCompile(`(?:show|list|view)\s+(?:my\s+)?beliefs\b`)
)
