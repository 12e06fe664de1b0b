// Package detector provides face landmark detection interfaces and types for gesture recognition.
package detector

// Face mesh landmark indices following the MediaPipe Face Mesh convention.
// See: https://developers.google.com/mediapipe/solutions/vision/face_landmarker
const (
	UpperInnerLip = 13
	LowerInnerLip = 14

	// NumLandmarks is the size of the base mesh.
	NumLandmarks = 468
	// NumRefinedLandmarks is the size of the mesh with iris refinement enabled.
	NumRefinedLandmarks = 478
)

// Point3D represents a 3D point with coordinates normalized to the frame size.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// FaceLandmarks represents the landmarks detected for a single face.
// Points are ordered by the fixed face mesh index scheme.
type FaceLandmarks struct {
	Points []Point3D `json:"points"`
	Score  float64   `json:"score"`
}

// Landmark returns the point at index i.
// The second return value is false when the face is nil or i is out of range.
func (f *FaceLandmarks) Landmark(i int) (Point3D, bool) {
	if f == nil || i < 0 || i >= len(f.Points) {
		return Point3D{}, false
	}
	return f.Points[i], true
}

// UpperInnerLip returns the center point of the upper inner lip.
func (f *FaceLandmarks) UpperInnerLip() (Point3D, bool) {
	return f.Landmark(UpperInnerLip)
}

// LowerInnerLip returns the center point of the lower inner lip.
func (f *FaceLandmarks) LowerInnerLip() (Point3D, bool) {
	return f.Landmark(LowerInnerLip)
}
