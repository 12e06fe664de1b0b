package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gocv.io/x/gocv"

	"github.com/ayusman/facetrigger/internal/capture"
	"github.com/ayusman/facetrigger/internal/detector"
	"github.com/ayusman/facetrigger/internal/display"
	"github.com/ayusman/facetrigger/internal/gesture"
	"github.com/ayusman/facetrigger/internal/snapshot"
)

// Run opens the camera and processes frames until the quit key is pressed,
// the feed is lost or ctx is cancelled. It blocks, and must run on the main
// goroutine because it owns the HighGUI window.
//
// Per frame:
// 1. Read a BGR frame and mirror it
// 2. Convert to RGB and detect face landmarks
// 3. Evaluate the mouth open rule for every face
// 4. On trigger, offer the clean frame to the capture gate
// 5. Draw the overlay, show the frame and poll the keyboard
//
// The camera, detector and window are released on every exit path.
func (a *App) Run(ctx context.Context) (err error) {
	defer a.release()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Pipeline crashed: %v", r)
			err = fmt.Errorf("pipeline panic: %v", r)
		}
	}()

	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}

	if a.sink == nil {
		a.sink = display.NewWindow(a.config.Display)
	}

	log.Printf("Face trigger active, saving to %s (press 'q' to quit)", a.gate.Dir())

	for {
		select {
		case <-ctx.Done():
			log.Println("Interrupted, shutting down")
			return nil
		default:
		}

		if !a.step() {
			return nil
		}
	}
}

// step processes one frame and reports whether the loop should continue.
func (a *App) step() bool {
	frame, err := a.camera.ReadFrame()
	if err != nil {
		if errors.Is(err, capture.ErrEndOfStream) {
			log.Println("Camera feed lost")
		} else {
			log.Printf("Error reading frame: %v", err)
		}
		return false
	}
	defer frame.Close()

	if a.config.Mirror {
		gocv.Flip(*frame, frame, 1)
	}

	faces := a.detect(frame)

	result, triggered := gesture.EvaluateAll(faces)
	if triggered {
		a.capture(frame, result)
	}

	display.DrawLandmarks(frame, faces, a.style)
	if triggered {
		display.DrawLabel(frame, result.Label, a.style)
	}

	a.sink.Show(*frame)

	if display.IsQuitKey(a.sink.PollKey()) {
		log.Println("Shutting down")
		return false
	}

	return true
}

// detect runs the landmark detector on an RGB copy of frame.
// Detection errors are logged and treated as "no faces".
func (a *App) detect(frame *gocv.Mat) []detector.FaceLandmarks {
	if a.detector == nil {
		return nil
	}

	rgb := gocv.NewMat()
	defer rgb.Close()
	gocv.CvtColor(*frame, &rgb, gocv.ColorBGRToRGB)

	faces, err := a.detector.Detect(&rgb)
	if err != nil {
		log.Printf("Error detecting faces: %v", err)
		return nil
	}

	return faces
}

func (a *App) capture(frame *gocv.Mat, result gesture.Result) {
	out := a.gate.MaybeCapture(*frame, result.Label, a.now())
	if out.Status == snapshot.StatusFailed {
		log.Printf("Could not save capture to %s: %v", out.Path, out.Err)
	}
}

func (a *App) release() {
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	if a.sink != nil {
		if err := a.sink.Close(); err != nil {
			log.Printf("Error closing window: %v", err)
		}
		a.sink = nil
	}
}
