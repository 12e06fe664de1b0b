package display

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/facetrigger/internal/detector"
)

// Style controls how landmarks are drawn.
type Style struct {
	Color        color.RGBA
	LabelColor   color.RGBA
	Thickness    int
	CircleRadius int
}

// DefaultStyle draws thin green points.
func DefaultStyle() Style {
	return Style{
		Color:        color.RGBA{0, 255, 0, 0},
		LabelColor:   color.RGBA{255, 0, 0, 0},
		Thickness:    1,
		CircleRadius: 1,
	}
}

// DrawLandmarks draws every face's landmarks on frame, plus the inner lip gap.
// It only changes the displayed image.
func DrawLandmarks(frame *gocv.Mat, faces []detector.FaceLandmarks, style Style) {
	if frame == nil || frame.Empty() {
		return
	}

	width, height := frame.Cols(), frame.Rows()

	for i := range faces {
		face := &faces[i]
		for _, p := range face.Points {
			gocv.Circle(frame, toPixel(p, width, height), style.CircleRadius, style.Color, style.Thickness)
		}

		upper, okUpper := face.UpperInnerLip()
		lower, okLower := face.LowerInnerLip()
		if okUpper && okLower {
			gocv.Line(frame, toPixel(upper, width, height), toPixel(lower, width, height), style.Color, style.Thickness)
		}
	}
}

// DrawLabel writes the gesture label in the top left corner.
func DrawLabel(frame *gocv.Mat, label string, style Style) {
	if frame == nil || frame.Empty() || label == "" {
		return
	}

	gocv.PutText(frame, label, image.Pt(10, 30), gocv.FontHersheySimplex, 1.0, style.LabelColor, 2)
}

// toPixel converts normalized coordinates to a pixel position.
func toPixel(p detector.Point3D, width, height int) image.Point {
	return image.Pt(int(p.X*float64(width)), int(p.Y*float64(height)))
}
