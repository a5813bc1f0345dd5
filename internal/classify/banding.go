package classify

import "fmt"

// Band tolerance around each whole-stage score. A mean score within
// ±bandTolerance of a stage's rank still reads as that pure stage;
// everything between two tolerance bands reads as the pair label.
// For four instars this yields the band edges
// 1.3 | 1.6 | 2.3 | 2.6 | 3.3 | 3.6.
const bandTolerance = 0.3

// Banding converts a mean instar score back into a categorical label.
//
// This is deliberately not the inverse of ToScore: averaging uses exact
// midpoints, while de-averaging uses the hand-tuned tolerance bands above
// so that a specimen has to sit clearly between two stages before it is
// reported as intermediate.
type Banding struct {
	// Stages is the number of instars in the series (the highest rank).
	Stages int
}

// DefaultBanding returns the banding for the canonical four-instar series.
func DefaultBanding() Banding {
	return Banding{Stages: 4}
}

// ToLabel maps a mean score to its banded label.
//
// Bands, for rank r in 1..Stages:
//
//	score ≤ r + 0.3          → stage r
//	score ≤ r + 0.6          → pair r-(r+1), except at the top rank
//	score > Stages - 0.4     → top stage
//
// Scores are means of ranks ≥ 1, so a score below 1 cannot occur in a
// well-formed run; it is rejected rather than silently mapped to stage I.
func (b Banding) ToLabel(score float64) (Label, error) {
	if b.Stages < 1 {
		return Missing, fmt.Errorf("banding: no stages configured")
	}
	if score < 1 {
		return Missing, fmt.Errorf("banding: score %g below minimum rank 1", score)
	}
	for r := 1; r < b.Stages; r++ {
		if score <= float64(r)+bandTolerance {
			return stageLabel(r), nil
		}
		if score <= float64(r)+2*bandTolerance {
			return pairLabel(r, r+1), nil
		}
	}
	return stageLabel(b.Stages), nil
}
