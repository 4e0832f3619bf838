package scoring

import "testing"

func TestScore(t *testing.T) {
	testCases := []struct {
		name      string
		isCorrect bool
		timeTaken int
		timeLimit int
		expected  int
	}{
		{"incorrect scores zero", false, 2, 15, 0},
		{"incorrect at timeout scores zero", false, 15, 15, 0},
		{"instant correct scores max", true, 0, 15, 10},
		{"fast correct", true, 2, 15, 9},
		{"medium correct", true, 5, 15, 7},
		{"slow correct keeps floor", true, 14, 15, 1},
		{"correct at limit keeps floor", true, 15, 15, 1},
		{"correct past limit clamps to floor", true, 20, 15, 1},
		{"negative time clamps to max", true, -3, 15, 10},
		{"zero limit falls back to floor", true, 5, 0, 1},
		{"half of limit", true, 6, 12, 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(tc.isCorrect, tc.timeTaken, tc.timeLimit)
			if got != tc.expected {
				t.Errorf("Score(%v, %d, %d) = %d, want %d",
					tc.isCorrect, tc.timeTaken, tc.timeLimit, got, tc.expected)
			}
		})
	}
}

func TestScoreRange(t *testing.T) {
	for taken := 0; taken <= 20; taken++ {
		got := Score(true, taken, 15)
		if got < MinCorrectPoints || got > MaxPoints {
			t.Errorf("Score(true, %d, 15) = %d, outside [%d, %d]",
				taken, got, MinCorrectPoints, MaxPoints)
		}
	}
}

func TestScoreMonotonicInTime(t *testing.T) {
	prev := MaxPoints
	for taken := 0; taken <= 20; taken++ {
		got := Score(true, taken, 15)
		if got > prev {
			t.Errorf("score increased from %d to %d at timeTaken=%d", prev, got, taken)
		}
		prev = got
	}
}

func TestClampElapsed(t *testing.T) {
	if got := ClampElapsed(-1, 15); got != 0 {
		t.Errorf("expected negative elapsed to clamp to 0, got %d", got)
	}
	if got := ClampElapsed(99, 15); got != 15 {
		t.Errorf("expected oversized elapsed to clamp to 15, got %d", got)
	}
	if got := ClampElapsed(7, 15); got != 7 {
		t.Errorf("expected in-range elapsed unchanged, got %d", got)
	}
}
