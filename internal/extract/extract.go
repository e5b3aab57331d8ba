// Package extract provides the pure value extractors the classifier runs
// over a matched message: numeric ratings, dates, keyword sets, and free
// text segments. Extractors never fail — malformed input yields "absent"
// and the classifier folds that into confidence.
package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	reExplicitRating = regexp.MustCompile(`\(?\b(\d{1,2})\s*/\s*10\b\)?`)
	reISODate        = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	rePercent        = regexp.MustCompile(`\b(\d{1,3})\s*(?:%|percent)\b`)
	reBoundary       = regexp.MustCompile(`[.!?;\n]`)
)

// Rating pulls a 1-10 rating from the message. An explicit "N/10" (with or
// without parentheses) wins and is reported as explicit; otherwise the first
// word found in scale is used as an approximate value. Out-of-range explicit
// values are clamped to [1,10] rather than propagated.
func Rating(text string, scale map[string]int) (value int, explicit, ok bool) {
	if m := reExplicitRating.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return clampRating(n), true, true
		}
	}
	for _, w := range fields(text) {
		if v, found := scale[w]; found {
			return clampRating(v), false, true
		}
	}
	return 0, false, false
}

// ScaleWord looks up the first descriptive word from scale present in the
// message, ignoring any explicit rating tokens. Used for fields like energy
// level that have no explicit numeric form of their own.
func ScaleWord(text string, scale map[string]int) (int, bool) {
	for _, w := range fields(text) {
		if v, ok := scale[w]; ok {
			return clampRating(v), true
		}
	}
	return 0, false
}

// Date resolves a calendar date from the message relative to the reference
// time. Explicit ISO dates win, then the relative words today/yesterday/
// tomorrow. Absent any cue, the reference date is returned and explicit is
// false.
func Date(text string, ref time.Time) (date time.Time, explicit bool) {
	if m := reISODate.FindStringSubmatch(text); m != nil {
		if d, err := time.ParseInLocation("2006-01-02", m[1], ref.Location()); err == nil {
			return d, true
		}
	}
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	switch {
	case containsWord(text, "today"), containsWord(text, "tonight"):
		return day, true
	case containsWord(text, "yesterday"):
		return day.AddDate(0, 0, -1), true
	case containsWord(text, "tomorrow"):
		return day.AddDate(0, 0, 1), true
	}
	return day, false
}

// Keywords collects every vocabulary word present in the message, deduped
// and sorted so identical messages always yield identical slices. Returns
// nil when nothing matches.
func Keywords(text string, vocab []string) []string {
	present := make(map[string]bool)
	for _, w := range fields(text) {
		for _, v := range vocab {
			if w == v {
				present[w] = true
			}
		}
	}
	if len(present) == 0 {
		return nil
	}
	out := make([]string, 0, len(present))
	for w := range present {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// KeywordKeys collects every key of vocab present in the message, deduped
// and sorted.
func KeywordKeys(text string, vocab map[string]string) []string {
	keys := make([]string, 0, len(vocab))
	for k := range vocab {
		keys = append(keys, k)
	}
	return Keywords(text, keys)
}

// After returns the free-text segment following the matched trigger,
// trimmed of the trigger itself, leading separators, and any explicit
// rating token. The segment stops at the first sentence boundary.
func After(text string, matchEnd int) string {
	if matchEnd < 0 || matchEnd >= len(text) {
		return ""
	}
	seg := text[matchEnd:]
	if loc := reBoundary.FindStringIndex(seg); loc != nil {
		seg = seg[:loc[0]]
	}
	return CleanSegment(seg)
}

// Remainder is After without the sentence-boundary cut: everything past the
// trigger, cleaned. Used for description-style fields.
func Remainder(text string, matchEnd int) string {
	if matchEnd < 0 || matchEnd >= len(text) {
		return ""
	}
	return CleanSegment(text[matchEnd:])
}

// CleanSegment strips rating tokens, surrounding separators, and whitespace
// from a free-text segment.
func CleanSegment(seg string) string {
	seg = reExplicitRating.ReplaceAllString(seg, "")
	return strings.Trim(seg, " \t:,-.!?;")
}

// Percent pulls an explicit progress percentage ("40%" or "40 percent")
// clamped to [0,100].
func Percent(text string) (int, bool) {
	m := rePercent.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	if n > 100 {
		n = 100
	}
	return n, true
}

// SplitList splits a comma- or "and"-separated trailing list into items,
// e.g. "meditation, exercise and breakfast" -> three items.
func SplitList(seg string) []string {
	seg = strings.ReplaceAll(seg, " and ", ",")
	parts := strings.Split(seg, ",")
	var items []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}

func clampRating(n int) int {
	if n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	}
	return n
}

func containsWord(text, word string) bool {
	for _, w := range fields(text) {
		if w == word {
			return true
		}
	}
	return false
}

func fields(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9' || r == '\'')
	})
}
