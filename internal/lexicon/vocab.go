// Package lexicon holds the recognizer rules and vocabulary tables the
// classifier matches chat messages against. Everything in this package is
// pure data: no I/O, no mutable state, deterministic lookups.
package lexicon

import "strings"

// MoodScale maps descriptive mood words to the 1-10 rating scale. Used as
// the fallback when a message carries no explicit "N/10" rating.
var MoodScale = map[string]int{
	"amazing":   10,
	"fantastic": 10,
	"great":     9,
	"happy":     8,
	"good":      7,
	"fine":      6,
	"okay":      5,
	"ok":        5,
	"meh":       4,
	"down":      4,
	"bad":       3,
	"anxious":   3,
	"sad":       3,
	"awful":     2,
	"terrible":  1,
}

// EnergyScale maps descriptive energy words to the 1-10 scale.
var EnergyScale = map[string]int{
	"energized": 9,
	"energetic": 8,
	"awake":     7,
	"rested":    7,
	"normal":    5,
	"sluggish":  4,
	"tired":     3,
	"drained":   2,
	"exhausted": 1,
}

// Categories maps domain nouns to the journal category they evidence.
var Categories = map[string]string{
	"meditation": "wellness",
	"meditate":   "wellness",
	"breathing":  "wellness",
	"yoga":       "wellness",
	"gratitude":  "wellness",
	"workout":    "fitness",
	"exercise":   "fitness",
	"gym":        "fitness",
	"run":        "fitness",
	"running":    "fitness",
	"bedtime":    "sleep",
	"sleep":      "sleep",
	"work":       "productivity",
	"focus":      "productivity",
	"study":      "learning",
	"reading":    "learning",
}

// Emotions is the keyword set scanned for synchronicity emotion tags.
var Emotions = []string{
	"excited", "grateful", "anxious", "calm", "joyful", "curious",
	"hopeful", "peaceful", "inspired", "amazed", "awe", "wonder",
}

// CategoryFor returns the category evidenced by the first category keyword
// appearing in the message, scanning words in message order so the result
// is deterministic. Returns "" when no keyword is present.
func CategoryFor(text string) string {
	for _, w := range Words(text) {
		if cat, ok := Categories[w]; ok {
			return cat
		}
	}
	return ""
}

// Words splits lower-cased text into bare words, stripping punctuation.
func Words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9' || r == '\'')
	})
}
