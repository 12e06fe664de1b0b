package snapshot

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

// DefaultJPEGQuality matches OpenCV's own default.
const DefaultJPEGQuality = 95

// ErrWriteFailed is returned when OpenCV reports that an image could not be written.
var ErrWriteFailed = errors.New("image write failed")

// Writer persists a frame as a JPEG file.
type Writer interface {
	WriteJPEG(path string, frame gocv.Mat) error
}

// JPEGWriter writes frames with gocv.
type JPEGWriter struct {
	// Quality is the JPEG quality (1-100). Zero means DefaultJPEGQuality.
	Quality int
}

// WriteJPEG encodes frame and writes it to path.
func (w JPEGWriter) WriteJPEG(path string, frame gocv.Mat) error {
	if frame.Empty() {
		return fmt.Errorf("write %s: empty frame", path)
	}

	quality := w.Quality
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}

	if ok := gocv.IMWriteWithParams(path, frame, []int{int(gocv.IMWriteJpegQuality), quality}); !ok {
		return fmt.Errorf("write %s: %w", path, ErrWriteFailed)
	}

	return nil
}
