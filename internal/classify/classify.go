package classify

import (
	"fmt"
	"strings"
)

// Label is a categorical instar assignment: a single stage ("II") or a
// pair of adjacent stages joined by a dash ("II-III") when a measurement
// falls in the gap between two published ranges. The empty Label marks a
// missing or unclassifiable value.
type Label string

// Missing is the Label for an absent or unclassifiable measurement.
const Missing Label = ""

// IsMissing reports whether the label carries no classification.
func (l Label) IsMissing() bool { return l == Missing }

// Interval is one published size range for one measurement code.
// Rank is the 1-based instar number (1 = youngest).
type Interval struct {
	Rank int
	Min  float64
	Max  float64
}

// Table maps a measurement code to its instar intervals, sorted by
// ascending rank. Tables are built once from configuration and treated
// as read-only for the whole run.
type Table map[string][]Interval

// Classify maps a measurement value to an instar label using the
// intervals registered for code.
//
// Resolution order:
//  1. value inside an interval (bounds inclusive) → that stage.
//  2. value below the youngest stage's Min → youngest stage.
//  3. value above the oldest stage's Max → oldest stage.
//  4. value in the gap between two consecutive stages → pair label.
//
// Intervals sharing a boundary (Max[i] == Min[i+1]) never produce a pair
// label: the interval match in step 1 claims the shared value first.
// A value that matches none of the rules (only possible with a malformed
// table) yields Missing.
//
// An unknown code, or a code with no intervals, is a configuration error
// and returns a non-nil error; config validation normally rejects such
// tables before any data is processed.
func Classify(value float64, code string, t Table) (Label, error) {
	ivs := t[code]
	if len(ivs) == 0 {
		return Missing, fmt.Errorf("classify: no reference intervals for code %q", code)
	}

	for _, iv := range ivs {
		if value >= iv.Min && value <= iv.Max {
			return stageLabel(iv.Rank), nil
		}
	}

	// Saturate beyond the published extremes.
	if value < ivs[0].Min {
		return stageLabel(ivs[0].Rank), nil
	}
	if value > ivs[len(ivs)-1].Max {
		return stageLabel(ivs[len(ivs)-1].Rank), nil
	}

	// Between two consecutive stages.
	for i := 0; i+1 < len(ivs); i++ {
		if value > ivs[i].Max && value < ivs[i+1].Min {
			return pairLabel(ivs[i].Rank, ivs[i+1].Rank), nil
		}
	}

	return Missing, nil
}

// ToScore converts a label to its ordinal score: a single stage maps to
// its rank, a pair label to the midpoint of the two ranks (always
// rank+0.5 for the adjacent pairs Classify produces). The second return
// is false for Missing or an unparseable label.
//
// ToScore trusts its input: pair labels are assumed adjacent because
// Classify never emits anything else.
func ToScore(l Label) (float64, bool) {
	if l.IsMissing() {
		return 0, false
	}
	lo, hi, ok := splitLabel(l)
	if !ok {
		return 0, false
	}
	if hi == 0 {
		return float64(lo), true
	}
	return (float64(lo) + float64(hi)) / 2, true
}

// stageLabel renders a single-stage label for rank.
func stageLabel(rank int) Label {
	return Label(roman(rank))
}

// pairLabel renders the between-stages label for two adjacent ranks.
func pairLabel(lo, hi int) Label {
	return Label(roman(lo) + "-" + roman(hi))
}

// splitLabel parses a label into one or two ranks. hi is 0 for a
// single-stage label. ok is false when any numeral is unknown.
func splitLabel(l Label) (lo, hi int, ok bool) {
	s := string(l)
	if i := strings.IndexByte(s, '-'); i >= 0 {
		lo = RankOf(s[:i])
		hi = RankOf(s[i+1:])
		return lo, hi, lo > 0 && hi > 0
	}
	lo = RankOf(s)
	return lo, 0, lo > 0
}

// numerals covers ranks 1–10, far beyond any described instar series.
var numerals = []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X"}

// roman renders a 1-based rank as an uppercase Roman numeral.
func roman(rank int) string {
	if rank < 1 || rank > len(numerals) {
		return fmt.Sprintf("?%d", rank)
	}
	return numerals[rank-1]
}

// RankOf returns the 1-based rank of a stage numeral ("III" → 3).
// Unknown numerals return 0.
func RankOf(s string) int {
	for i, n := range numerals {
		if n == s {
			return i + 1
		}
	}
	return 0
}
