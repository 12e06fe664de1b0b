package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	faces  []FaceLandmarks
	err    error
	calls  int
	closed bool
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetFaces sets the faces that will be returned by Detect.
func (m *MockDetector) SetFaces(faces []FaceLandmarks) {
	m.faces = faces
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured faces or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]FaceLandmarks, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.faces, nil
}

// Calls returns how many times Detect has been called.
func (m *MockDetector) Calls() int {
	return m.calls
}

// Closed reports whether Close has been called.
func (m *MockDetector) Closed() bool {
	return m.closed
}

// Close marks the detector as closed.
func (m *MockDetector) Close() error {
	m.closed = true
	return nil
}

// FaceWithLips returns a face whose only meaningful points are the inner lips.
// All other points sit at the frame center.
func FaceWithLips(upper, lower Point3D) FaceLandmarks {
	face := FaceLandmarks{
		Points: make([]Point3D, NumRefinedLandmarks),
		Score:  0.95,
	}
	for i := range face.Points {
		face.Points[i] = Point3D{X: 0.5, Y: 0.5}
	}
	face.Points[UpperInnerLip] = upper
	face.Points[LowerInnerLip] = lower

	return face
}

// MouthOpenLandmarks returns a preset face with the lips 0.10 apart.
func MouthOpenLandmarks() FaceLandmarks {
	return FaceWithLips(Point3D{X: 0.5, Y: 0.40}, Point3D{X: 0.5, Y: 0.50})
}

// MouthClosedLandmarks returns a preset face with touching lips.
func MouthClosedLandmarks() FaceLandmarks {
	return FaceWithLips(Point3D{X: 0.5, Y: 0.5}, Point3D{X: 0.5, Y: 0.5})
}
