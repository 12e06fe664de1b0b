// Package app wires the camera, landmark detector, gesture rule, capture gate
// and display window into the face trigger loop.
package app

import (
	"log"
	"time"

	"github.com/ayusman/facetrigger/internal/capture"
	"github.com/ayusman/facetrigger/internal/detector"
	"github.com/ayusman/facetrigger/internal/display"
	"github.com/ayusman/facetrigger/internal/snapshot"
)

// Config holds configuration options for the application.
type Config struct {
	Camera   capture.Config
	Detector detector.Config
	Display  display.Config

	// CaptureDir is where snapshots are written. Empty means the captures
	// directory next to the executable.
	CaptureDir string
	// Cooldown is the minimum time between saved snapshots.
	Cooldown time.Duration
	// Mirror flips frames horizontally so the preview acts like a mirror.
	Mirror bool
	// Writer overrides how snapshots are encoded. Nil means JPEG via OpenCV.
	Writer snapshot.Writer
}

// DefaultConfig returns the configuration used by the facetrigger binary.
func DefaultConfig() Config {
	return Config{
		Camera:   capture.DefaultConfig(),
		Detector: detector.DefaultConfig(),
		Display:  display.DefaultConfig(),
		Cooldown: snapshot.DefaultCooldown,
		Mirror:   true,
	}
}

// App runs the capture loop. All of its methods must be called from one goroutine.
type App struct {
	config   Config
	camera   capture.Camera
	detector detector.Detector
	sink     display.Sink
	gate     *snapshot.Gate
	style    display.Style
	now      func() time.Time
}

// New creates a new App instance with the given configuration.
// The display window is opened by Run, not here.
func New(config Config) *App {
	dir := config.CaptureDir
	if dir == "" {
		var err error
		dir, err = snapshot.DefaultDir()
		if err != nil {
			log.Printf("Falling back to ./%s: %v", snapshot.DirName, err)
			dir = snapshot.DirName
		}
	}

	a := &App{
		config: config,
		camera: capture.NewCamera(config.Camera),
		gate: snapshot.NewGate(snapshot.Config{
			Dir:      dir,
			Cooldown: config.Cooldown,
			Writer:   config.Writer,
		}),
		style: display.DefaultStyle(),
		now:   time.Now,
	}

	// Try MediaPipe first, fall back to a detector that never sees a face
	if mp, err := detector.NewMediaPipeDetector(config.Detector); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe face mesh detection")
	} else {
		log.Printf("MediaPipe not available (%v), gesture detection disabled", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetCamera sets the frame source.
func (a *App) SetCamera(c capture.Camera) {
	a.camera = c
}

// SetDetector sets the landmark detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.detector = d
}

// SetSink sets the display sink. Without one, Run opens a window.
func (a *App) SetSink(s display.Sink) {
	a.sink = s
}

// SetClock replaces the time source used for the capture cooldown.
func (a *App) SetClock(now func() time.Time) {
	a.now = now
}

// Gate returns the capture gate.
func (a *App) Gate() *snapshot.Gate {
	return a.gate
}

// Camera returns the frame source.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Detector returns the landmark detector.
func (a *App) Detector() detector.Detector {
	return a.detector
}
