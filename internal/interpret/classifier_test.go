package interpret

import (
	"reflect"
	"regexp"
	"testing"
	"time"

	"github.com/sagejournal/sage/internal/command"
	"github.com/sagejournal/sage/internal/lexicon"
)

var refTime = time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

func interpretOne(t *testing.T, msg string) *command.Command {
	t.Helper()
	cmd, err := NewDefault().Interpret(msg, refTime)
	if err != nil {
		t.Fatalf("Interpret(%q) error: %v", msg, err)
	}
	if cmd == nil {
		t.Fatalf("Interpret(%q) returned no command", msg)
	}
	return cmd
}

func wantPair(t *testing.T, cmd *command.Command, entity command.EntityType, intent command.Intent) {
	t.Helper()
	if cmd.Entity != entity || cmd.Intent != intent {
		t.Fatalf("classified as %s, want %s.%s", cmd.Ref(), entity, intent)
	}
}

func TestInterpret_RoutineCreate(t *testing.T) {
	cmd := interpretOne(t, "Create morning routine: meditation, exercise, breakfast")
	wantPair(t, cmd, command.EntityRoutine, command.IntentCreate)

	if got := cmd.Param("name"); got != "morning" {
		t.Errorf("name = %q, want %q", got, "morning")
	}
	if got := cmd.Param("category"); got != "wellness" {
		t.Errorf("category = %q, want %q (first keyword in message order)", got, "wellness")
	}
	steps, _ := cmd.Params["steps"].([]string)
	want := []string{"meditation", "exercise", "breakfast"}
	if !reflect.DeepEqual(steps, want) {
		t.Errorf("steps = %v, want %v", steps, want)
	}
	if cmd.Confidence != 1.0 {
		t.Errorf("confidence = %f, want 1.0", cmd.Confidence)
	}
}

func TestInterpret_MoodWithExplicitRating(t *testing.T) {
	cmd := interpretOne(t, "I am feeling happy today (8/10)")
	wantPair(t, cmd, command.EntityMood, command.IntentCreate)

	if got := cmd.Params["mood_rating"]; got != 8 {
		t.Errorf("mood_rating = %v, want 8 (explicit beats word value)", got)
	}
	if got := cmd.Param("notes"); got != "happy today" {
		t.Errorf("notes = %q, want %q", got, "happy today")
	}
	if got := cmd.Param("entry_date"); got != "2026-03-15" {
		t.Errorf("entry_date = %q, want reference date", got)
	}
	if cmd.Confidence != 1.0 {
		t.Errorf("confidence = %f, want 1.0", cmd.Confidence)
	}
}

func TestInterpret_MoodColonForm(t *testing.T) {
	cmd := interpretOne(t, "Mood: anxious about work 4/10")
	wantPair(t, cmd, command.EntityMood, command.IntentCreate)

	if got := cmd.Params["mood_rating"]; got != 4 {
		t.Errorf("mood_rating = %v, want 4", got)
	}
	if got := cmd.Param("notes"); got != "anxious about work" {
		t.Errorf("notes = %q, want rating token stripped", got)
	}
	if cmd.Confidence != 1.0 {
		t.Errorf("confidence = %f, want 1.0", cmd.Confidence)
	}
	if cmd.Excerpt != "mood:" {
		t.Errorf("excerpt = %q, want %q", cmd.Excerpt, "mood:")
	}
}

func TestInterpret_MoodTrends(t *testing.T) {
	cmd := interpretOne(t, "Show mood trends")
	wantPair(t, cmd, command.EntityMood, command.IntentView)

	if got, _ := cmd.Params["trend"].(bool); !got {
		t.Error("trend flag not set")
	}
}

func TestInterpret_BeliefNotGoal(t *testing.T) {
	// "goals" appears in the text but no goal trigger phrase does; the
	// belief recognizer must win outright.
	cmd := interpretOne(t, "I believe I am capable of achieving my goals")
	wantPair(t, cmd, command.EntityBelief, command.IntentCreate)

	stmt := cmd.Param("statement")
	if stmt != "i am capable of achieving my goals" {
		t.Errorf("statement = %q", stmt)
	}
	if got := cmd.Param("belief_type"); got != "empowering" {
		t.Errorf("belief_type = %q, want empowering", got)
	}
}

func TestInterpret_BeliefLimiting(t *testing.T) {
	cmd := interpretOne(t, "Limiting belief: I can't handle pressure")
	wantPair(t, cmd, command.EntityBelief, command.IntentCreate)
	if got := cmd.Param("belief_type"); got != "limiting" {
		t.Errorf("belief_type = %q, want limiting", got)
	}
}

func TestInterpret_Synchronicity(t *testing.T) {
	cmd := interpretOne(t, "Log synch: Saw 11:11 on the clock when thinking about the new job")
	wantPair(t, cmd, command.EntitySynchronicity, command.IntentCreate)

	title := cmd.Param("title")
	if title != "saw 11:11 on the clock when thinking about the new job" {
		t.Errorf("title = %q", title)
	}
	if cmd.Confidence != 1.0 {
		t.Errorf("confidence = %f, want 1.0", cmd.Confidence)
	}
}

func TestInterpret_GoalCreateWithDate(t *testing.T) {
	cmd := interpretOne(t, "Set a goal to run a marathon by 2026-06-01")
	wantPair(t, cmd, command.EntityGoal, command.IntentCreate)

	if got := cmd.Param("target_date"); got != "2026-06-01" {
		t.Errorf("target_date = %q, want 2026-06-01", got)
	}
	if got := cmd.Param("category"); got != "fitness" {
		t.Errorf("category = %q, want fitness", got)
	}
}

func TestInterpret_GoalProgress(t *testing.T) {
	cmd := interpretOne(t, "Update my goal: marathon training at 40%")
	wantPair(t, cmd, command.EntityGoal, command.IntentUpdate)
	if got := cmd.Params["progress"]; got != 40 {
		t.Errorf("progress = %v, want 40", got)
	}
}

func TestInterpret_RoutineComplete(t *testing.T) {
	cmd := interpretOne(t, "Completed my morning routine today")
	wantPair(t, cmd, command.EntityRoutine, command.IntentComplete)
	if got := cmd.Param("name"); got != "morning" {
		t.Errorf("name = %q, want morning", got)
	}
	if got := cmd.Param("date"); got != "2026-03-15" {
		t.Errorf("date = %q, want explicit today", got)
	}
}

func TestInterpret_NoMatch(t *testing.T) {
	cmd, err := NewDefault().Interpret("the weather is nice", refTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd != nil {
		t.Errorf("expected nil command, got %s", cmd.Ref())
	}
}

func TestInterpret_EmptyMessage(t *testing.T) {
	for _, msg := range []string{"", "   ", "\n\t"} {
		cmd, err := NewDefault().Interpret(msg, refTime)
		if err != ErrEmptyMessage {
			t.Errorf("Interpret(%q) error = %v, want ErrEmptyMessage", msg, err)
		}
		if cmd != nil {
			t.Errorf("Interpret(%q) returned a command alongside the error", msg)
		}
	}
}

func TestInterpret_ExplicitRaisesConfidence(t *testing.T) {
	weak := interpretOne(t, "feeling meh")
	strong := interpretOne(t, "feeling meh 3/10")

	wantPair(t, weak, command.EntityMood, command.IntentCreate)
	wantPair(t, strong, command.EntityMood, command.IntentCreate)

	if d := weak.Confidence - 0.65; d > 1e-9 || d < -1e-9 {
		t.Errorf("word-only confidence = %f, want 0.65", weak.Confidence)
	}
	if d := strong.Confidence - 0.75; d > 1e-9 || d < -1e-9 {
		t.Errorf("explicit confidence = %f, want 0.75", strong.Confidence)
	}
	if strong.Confidence <= weak.Confidence {
		t.Error("explicit cue did not raise confidence")
	}
	if strong.Params["mood_rating"] != 3 {
		t.Errorf("explicit rating = %v, want 3 (overrides word value)", strong.Params["mood_rating"])
	}
}

func TestInterpret_RatingClamped(t *testing.T) {
	cmd := interpretOne(t, "mood: 15/10 best day ever")
	if got := cmd.Params["mood_rating"]; got != 10 {
		t.Errorf("mood_rating = %v, want clamped 10", got)
	}
}

func TestInterpret_Deterministic(t *testing.T) {
	c := NewDefault()
	msg := "I am feeling happy today (8/10)"
	a, _ := c.Interpret(msg, refTime)
	b, _ := c.Interpret(msg, refTime)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("repeated interpretation differs:\n%+v\n%+v", a, b)
	}
}

func TestInterpret_EntityTieBreak(t *testing.T) {
	// Two rules with identical weight and no extractable parameters: the
	// fixed entity priority decides, and mood outranks belief.
	re := regexp.MustCompile(`trigger`)
	c := New([]lexicon.Rule{
		{Entity: command.EntityBelief, Intent: command.IntentCreate, Pattern: re, Weight: 0.5},
		{Entity: command.EntityMood, Intent: command.IntentCreate, Pattern: re, Weight: 0.5},
	})

	cmd, err := c.Interpret("trigger", refTime)
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Entity != command.EntityMood {
		t.Errorf("tie broken to %s, want mood", cmd.Entity)
	}
}

func TestInterpret_IntentTieBreak(t *testing.T) {
	re := regexp.MustCompile(`zzz`)
	c := New([]lexicon.Rule{
		{Entity: command.EntityGoal, Intent: command.IntentView, Pattern: re, Weight: 0.5},
		{Entity: command.EntityGoal, Intent: command.IntentCreate, Pattern: re, Weight: 0.5},
	})

	cmd, err := c.Interpret("zzz", refTime)
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Intent != command.IntentCreate {
		t.Errorf("tie broken to %s, want create", cmd.Intent)
	}
}

func TestInterpret_HigherWeightWins(t *testing.T) {
	// A message that triggers both a synchronicity log and a bare feeling
	// keyword resolves to the heavier synchronicity pair.
	cmd := interpretOne(t, "log synchronicity: feeling amazed by the coincidence")
	wantPair(t, cmd, command.EntitySynchronicity, command.IntentCreate)
}
