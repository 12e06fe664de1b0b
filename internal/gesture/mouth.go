// Package gesture classifies facial landmarks into gestures.
package gesture

import (
	"math"

	"github.com/ayusman/facetrigger/internal/detector"
)

// MouthOpenThreshold is the inner lip distance, in normalized frame units,
// above which a mouth counts as open. It is not scaled by face size, so
// faces close to the camera open "wider" than distant ones.
const MouthOpenThreshold = 0.05

// LabelMouthOpen is the label reported for the mouth open gesture.
const LabelMouthOpen = "Mouth Open"

// Result is the outcome of evaluating one face.
type Result struct {
	Triggered bool    // Whether the gesture fired
	Label     string  // Gesture label, empty when not triggered
	Distance  float64 // Inner lip distance used for the decision
}

// Evaluate classifies a single face.
// A nil face or one missing the inner lip landmarks never triggers.
func Evaluate(face *detector.FaceLandmarks) Result {
	upper, ok := face.UpperInnerLip()
	if !ok {
		return Result{}
	}
	lower, ok := face.LowerInnerLip()
	if !ok {
		return Result{}
	}

	distance := planarDistance(upper, lower)
	if distance > MouthOpenThreshold {
		return Result{Triggered: true, Label: LabelMouthOpen, Distance: distance}
	}

	return Result{Distance: distance}
}

// EvaluateAll evaluates every face independently and returns the first
// triggering result. Any single face is enough to trigger.
func EvaluateAll(faces []detector.FaceLandmarks) (Result, bool) {
	for i := range faces {
		if r := Evaluate(&faces[i]); r.Triggered {
			return r, true
		}
	}
	return Result{}, false
}

// planarDistance is the Euclidean distance between a and b in the image plane.
func planarDistance(a, b detector.Point3D) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
