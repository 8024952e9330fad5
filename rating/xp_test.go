package rating

import (
	"math"
	"testing"
)

func TestComputeXPGain(t *testing.T) {
	cases := []struct {
		name         string
		isWinner     bool
		oppRating    float64
		playerRating float64
		length       int
		want         int
	}{
		{"winner equal ratings with engagement", true, 1400, 1400, 20, 60},
		{"winner upset short debate", true, 1800, 1500, 5, 80},
		{"loser gets base plus engagement", false, 1800, 1500, 25, 35},
		{"no upset bonus for loser", false, 2000, 1000, 0, 25},
		{"no upset bonus when winner is higher rated", true, 1200, 1800, 0, 50},
		{"capped at 100", true, 2400, 1200, 90, 100},
		{"negative length treated as zero", true, 1400, 1400, -30, 50},
	}

	for _, tc := range cases {
		got, err := ComputeXPGain(tc.isWinner, tc.oppRating, tc.playerRating, tc.length)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestComputeXPGainCapProperty(t *testing.T) {
	for opp := 1000.0; opp <= 3000; opp += 250 {
		for length := 0; length <= 200; length += 25 {
			got, err := ComputeXPGain(true, opp, 1000, length)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got > 100 {
				t.Fatalf("xp gain %d exceeds cap for opp=%v length=%d", got, opp, length)
			}
		}
	}
}

func TestComputeXPGainRejectsNonFinite(t *testing.T) {
	if _, err := ComputeXPGain(true, math.NaN(), 1200, 10); err != ErrInvalidInput {
		t.Errorf("expected ErrInvalidInput for NaN opponent rating, got %v", err)
	}
	if _, err := ComputeXPGain(false, 1200, math.Inf(1), 10); err != ErrInvalidInput {
		t.Errorf("expected ErrInvalidInput for infinite player rating, got %v", err)
	}
}
