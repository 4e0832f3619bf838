// Package scoring maps answer correctness and response latency to points.
package scoring

import "math"

const (
	// MaxPoints is awarded for an instant correct answer.
	MaxPoints = 10
	// MinCorrectPoints is the floor for any correct answer. A correct
	// answer at the timeout boundary still earns this, never zero; only
	// an incorrect or absent answer scores zero.
	MinCorrectPoints = 1
)

// Score computes the points for one answer. Points decay linearly from
// MaxPoints to MinCorrectPoints as timeTaken approaches timeLimit.
func Score(isCorrect bool, timeTakenSeconds, timeLimitSeconds int) int {
	if !isCorrect {
		return 0
	}
	if timeLimitSeconds <= 0 {
		return MinCorrectPoints
	}
	t := timeTakenSeconds
	if t < 0 {
		t = 0
	}
	if t > timeLimitSeconds {
		t = timeLimitSeconds
	}
	points := int(math.Round(MaxPoints * (1 - float64(t)/float64(timeLimitSeconds))))
	if points < MinCorrectPoints {
		return MinCorrectPoints
	}
	return points
}

// ClampElapsed bounds a server-computed elapsed time to the scoring window.
func ClampElapsed(elapsedSeconds, timeLimitSeconds int) int {
	if elapsedSeconds < 0 {
		return 0
	}
	if elapsedSeconds > timeLimitSeconds {
		return timeLimitSeconds
	}
	return elapsedSeconds
}
