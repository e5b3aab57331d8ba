package interpret

import "testing"

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		weight   float64
		params   int
		explicit int
		want     float64
	}{
		{"base weight only", 0.60, 0, 0, 0.60},
		{"one param", 0.60, 1, 0, 0.65},
		{"param bonus capped", 0.50, 10, 0, 0.70},
		{"one explicit", 0.60, 1, 1, 0.75},
		{"explicit bonus capped", 0.50, 0, 5, 0.70},
		{"both caps", 0.50, 10, 10, 0.90},
		{"clamped at one", 0.90, 3, 2, 1.0},
		{"negative weight clamps to zero base", -0.5, 1, 0, 0.05},
		{"weight above one", 1.5, 0, 0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.weight, tt.params, tt.explicit)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Score(%f, %d, %d) = %f, want %f",
					tt.weight, tt.params, tt.explicit, got, tt.want)
			}
		})
	}
}

func TestScore_Monotonic(t *testing.T) {
	// More evidence never lowers the score.
	for p := 0; p < 6; p++ {
		for e := 0; e < 4; e++ {
			base := Score(0.6, p, e)
			if Score(0.6, p+1, e) < base {
				t.Errorf("extra param lowered score at (p=%d, e=%d)", p, e)
			}
			if Score(0.6, p, e+1) < base {
				t.Errorf("extra explicit cue lowered score at (p=%d, e=%d)", p, e)
			}
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	a, b := Score(0.85, 2, 1), Score(0.85, 2, 1)
	if a != b {
		t.Errorf("Score not deterministic: %f vs %f", a, b)
	}
}
