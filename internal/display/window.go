// Package display shows processed frames in a HighGUI window and reads the keyboard.
package display

import (
	"gocv.io/x/gocv"
)

// Default window settings
const (
	DefaultTitle  = "Face Trigger"
	DefaultWidth  = 1080
	DefaultHeight = 720

	// KeyPollDelayMs is how long PollKey waits for a key press.
	KeyPollDelayMs = 1
)

// Sink shows frames and reports key presses.
type Sink interface {
	// Show displays the frame.
	Show(frame gocv.Mat)
	// PollKey waits briefly for a key press and returns its code, or -1.
	PollKey() int
	// Close destroys the window.
	Close() error
}

// Config holds configuration options for the display window.
type Config struct {
	Title  string
	Width  int
	Height int
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Title:  DefaultTitle,
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
}

// Window is a resizable HighGUI window.
// It must be created and used from the main goroutine.
type Window struct {
	window *gocv.Window
}

// NewWindow opens a window and resizes it to the configured size.
func NewWindow(config Config) *Window {
	if config.Title == "" {
		config.Title = DefaultTitle
	}

	w := gocv.NewWindow(config.Title)
	if config.Width > 0 && config.Height > 0 {
		w.ResizeWindow(config.Width, config.Height)
	}

	return &Window{window: w}
}

// Show displays the frame.
func (w *Window) Show(frame gocv.Mat) {
	w.window.IMShow(frame)
}

// PollKey waits KeyPollDelayMs for a key press.
func (w *Window) PollKey() int {
	key := w.window.WaitKey(KeyPollDelayMs)
	if key < 0 {
		return -1
	}
	return key & 0xFF
}

// Close destroys the window.
func (w *Window) Close() error {
	return w.window.Close()
}

// IsQuitKey reports whether key is the quit command ('q' or 'Q').
func IsQuitKey(key int) bool {
	return key == 'q' || key == 'Q'
}
