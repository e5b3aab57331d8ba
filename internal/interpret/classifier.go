// Package interpret is the entity classifier: it matches a free-text chat
// message against the lexicon's recognizer rules, resolves ambiguity
// between competing entity/intent pairs, runs the extractors for the
// winning pair, and scores its own confidence.
package interpret

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/sagejournal/sage/internal/command"
	"github.com/sagejournal/sage/internal/extract"
	"github.com/sagejournal/sage/internal/lexicon"
)

// ErrEmptyMessage is returned for blank input. This is the only error class
// the classifier produces — it signals caller misuse, not bad user text.
// Absence of structure in real user text is reported as a nil Command.
var ErrEmptyMessage = errors.New("interpret: message is empty")

// Classifier holds the rule registry. It has no mutable state: one value is
// constructed at process start and shared by every caller, and Interpret
// allocates only per-call data, so concurrent use needs no coordination.
type Classifier struct {
	rules []lexicon.Rule
}

func New(rules []lexicon.Rule) *Classifier {
	return &Classifier{rules: rules}
}

// NewDefault builds a classifier over the default rule registry.
func NewDefault() *Classifier {
	return New(lexicon.DefaultRules())
}

// RuleCount reports the size of the rule registry.
func (c *Classifier) RuleCount() int {
	return len(c.rules)
}

// candidate accumulates all rule matches for one (entity, intent) pair.
type candidate struct {
	entity   command.EntityType
	intent   command.Intent
	weight   float64 // cumulative specificity of every matched rule
	best     lexicon.Rule
	bestEnd  int
	excerpt  string
	captures map[string]string

	params   map[string]any
	found    int
	explicit int
}

// Interpret classifies one message. The reference time anchors relative
// date phrases ("today", "yesterday"). A nil Command with nil error means
// the message expresses no recognizable command.
//
// Ambiguity between pairs is broken in order by: cumulative matched rule
// weight, number of extracted parameters (richer evidence wins), the fixed
// entity priority in command.EntityPriority, then intent order. The result
// is fully deterministic for identical input.
func (c *Classifier) Interpret(message string, at time.Time) (*command.Command, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	norm := normalize(message)

	byPair := make(map[string]*candidate)
	var order []*candidate
	for _, r := range c.rules {
		loc := r.Pattern.FindStringSubmatchIndex(norm)
		if loc == nil {
			continue
		}
		key := string(r.Entity) + "." + string(r.Intent)
		cand, ok := byPair[key]
		if !ok {
			cand = &candidate{entity: r.Entity, intent: r.Intent, captures: make(map[string]string)}
			byPair[key] = cand
			order = append(order, cand)
		}
		cand.weight += r.Weight
		if cand.best.Pattern == nil || r.Weight > cand.best.Weight {
			cand.best = r
			cand.bestEnd = loc[1]
			cand.excerpt = norm[loc[0]:loc[1]]
		}
		if r.Capture != "" && len(loc) >= 4 && loc[2] >= 0 {
			if v := strings.TrimSpace(norm[loc[2]:loc[3]]); v != "" {
				cand.captures[r.Capture] = v
			}
		}
	}

	if len(order) == 0 {
		return nil, nil
	}

	for _, cand := range order {
		c.populate(cand, norm, at)
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.weight != b.weight {
			return a.weight > b.weight
		}
		if a.found != b.found {
			return a.found > b.found
		}
		pa, pb := command.EntityPriority(a.entity), command.EntityPriority(b.entity)
		if pa != pb {
			return pa < pb
		}
		return intentPriority(a.intent) < intentPriority(b.intent)
	})

	win := order[0]
	return &command.Command{
		Entity:     win.entity,
		Intent:     win.intent,
		Params:     win.params,
		Confidence: Score(win.best.Weight, win.found, win.explicit),
		Excerpt:    win.excerpt,
	}, nil
}

// populate runs the extractor set for the candidate's entity/intent pair,
// counting how many parameters were actually evidenced and how many were
// explicit cues.
func (c *Classifier) populate(cand *candidate, norm string, at time.Time) {
	p := make(map[string]any)
	found, explicit := 0, 0

	set := func(key string, v any) {
		p[key] = v
		found++
	}

	switch {
	case cand.entity == command.EntityMood && cand.intent == command.IntentCreate:
		if v, exp, ok := extract.Rating(norm, lexicon.MoodScale); ok {
			set("mood_rating", v)
			if exp {
				explicit++
			}
		}
		if v, ok := extract.ScaleWord(norm, lexicon.EnergyScale); ok {
			set("energy_level", v)
		}
		if notes := extract.After(norm, cand.bestEnd); notes != "" {
			set("notes", notes)
		}
		date, exp := extract.Date(norm, at)
		p["entry_date"] = date.Format("2006-01-02")
		if exp {
			found++
			explicit++
		}

	case cand.entity == command.EntityMood && cand.intent == command.IntentView:
		if strings.Contains(norm, "trend") || strings.Contains(norm, "history") {
			set("trend", true)
		}

	case cand.entity == command.EntityRoutine && cand.intent == command.IntentCreate:
		if name, ok := cand.captures["name"]; ok {
			set("name", name)
		}
		if cat := lexicon.CategoryFor(norm); cat != "" {
			set("category", cat)
		}
		if steps := extract.SplitList(extract.After(norm, cand.bestEnd)); len(steps) > 0 {
			set("steps", steps)
		}

	case cand.entity == command.EntityRoutine &&
		(cand.intent == command.IntentComplete || cand.intent == command.IntentUpdate):
		if name, ok := cand.captures["name"]; ok {
			set("name", name)
		}
		if date, exp := extract.Date(norm, at); exp {
			set("date", date.Format("2006-01-02"))
			explicit++
		}

	case cand.entity == command.EntityGoal && cand.intent == command.IntentCreate:
		if title := cleanTarget(extract.After(norm, cand.bestEnd)); title != "" {
			set("title", title)
		}
		if cat := lexicon.CategoryFor(norm); cat != "" {
			set("category", cat)
		}
		if date, exp := extract.Date(norm, at); exp {
			set("target_date", date.Format("2006-01-02"))
			explicit++
		}

	case cand.entity == command.EntityGoal && cand.intent == command.IntentComplete:
		if name := cleanTarget(extract.After(norm, cand.bestEnd)); name != "" {
			set("name", name)
		}

	case cand.entity == command.EntityGoal && cand.intent == command.IntentUpdate:
		if v, ok := extract.Percent(norm); ok {
			set("progress", v)
		}
		if name := cleanTarget(extract.After(norm, cand.bestEnd)); name != "" {
			set("name", name)
		}

	case cand.entity == command.EntityBelief && cand.intent == command.IntentCreate:
		if stmt := extract.After(norm, cand.bestEnd); stmt != "" {
			set("statement", stmt)
			p["belief_type"] = beliefType(norm, stmt)
		}

	case cand.entity == command.EntitySynchronicity && cand.intent == command.IntentCreate:
		title := extract.After(norm, cand.bestEnd)
		if title != "" {
			set("title", title)
		}
		if desc := extract.Remainder(norm, cand.bestEnd); desc != "" && desc != title {
			set("description", desc)
		}
		if v, exp, ok := extract.Rating(norm, nil); ok && exp {
			set("significance", v)
			explicit++
		}
		if tags := extract.KeywordKeys(norm, lexicon.Categories); tags != nil {
			set("tags", tags)
		}
		if emotions := extract.Keywords(norm, lexicon.Emotions); emotions != nil {
			set("emotions", emotions)
		}
		date, exp := extract.Date(norm, at)
		p["entry_date"] = date.Format("2006-01-02")
		if exp {
			found++
			explicit++
		}
	}

	cand.params = p
	cand.found = found
	cand.explicit = explicit
}

// beliefType tags a belief statement as limiting or empowering from the
// language used. Crude, but matches how users phrase limiting beliefs.
func beliefType(norm, stmt string) string {
	if strings.Contains(norm, "limiting") ||
		strings.Contains(stmt, "can't") ||
		strings.Contains(stmt, "cannot") ||
		strings.Contains(stmt, "never") ||
		strings.Contains(stmt, "not good enough") {
		return "limiting"
	}
	return "empowering"
}

func cleanTarget(s string) string {
	for _, prefix := range []string{"of ", "to ", "the ", "my "} {
		s = strings.TrimPrefix(s, prefix)
	}
	return strings.TrimSpace(s)
}

func intentPriority(i command.Intent) int {
	switch i {
	case command.IntentCreate:
		return 0
	case command.IntentComplete:
		return 1
	case command.IntentUpdate:
		return 2
	case command.IntentView:
		return 3
	default:
		return 4
	}
}

// normalize case-folds and trims the message once, up front. Rules match
// against this form only.
func normalize(message string) string {
	return strings.ToLower(strings.TrimSpace(message))
}
