// Package snapshot decides when a triggered frame is saved to disk.
package snapshot

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gocv.io/x/gocv"
)

// DefaultCooldown is the minimum time between two successful captures.
const DefaultCooldown = 3 * time.Second

// DirName is the name of the output directory created next to the executable.
const DirName = "captures"

// timestampLayout gives filenames one second resolution.
const timestampLayout = "20060102_150405"

// Status is the kind of outcome of a capture attempt.
type Status int

const (
	// StatusSkipped means the gate was still cooling down; nothing was written.
	StatusSkipped Status = iota
	// StatusSaved means the frame was written.
	StatusSaved
	// StatusFailed means a write was attempted and failed.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusSaved:
		return "saved"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome is the result of MaybeCapture.
type Outcome struct {
	Status Status
	Path   string // Set for saved and failed attempts
	Err    error  // Set for failed attempts
}

// Config holds configuration options for a Gate.
type Config struct {
	// Dir is the output directory. It is created on first use.
	Dir string
	// Cooldown is the minimum interval between successful saves (default: 3s).
	Cooldown time.Duration
	// Writer persists frames (default: JPEGWriter).
	Writer Writer
}

// Gate enforces the cooldown between saved frames.
// It is not safe for concurrent use.
type Gate struct {
	dir      string
	cooldown time.Duration
	writer   Writer

	lastCapture time.Time
	captured    bool
}

// NewGate creates a Gate that has never captured.
func NewGate(config Config) *Gate {
	cooldown := config.Cooldown
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}

	writer := config.Writer
	if writer == nil {
		writer = JPEGWriter{}
	}

	return &Gate{
		dir:      config.Dir,
		cooldown: cooldown,
		writer:   writer,
	}
}

// MaybeCapture saves frame unless the last successful save was at most one
// cooldown ago. Only a successful save moves the cooldown window.
func (g *Gate) MaybeCapture(frame gocv.Mat, label string, now time.Time) Outcome {
	if g.captured && now.Sub(g.lastCapture) <= g.cooldown {
		return Outcome{Status: StatusSkipped}
	}

	path := filepath.Join(g.dir, FileName(now))

	if err := g.ensureDir(); err != nil {
		return Outcome{Status: StatusFailed, Path: path, Err: err}
	}

	if err := g.writer.WriteJPEG(path, frame); err != nil {
		// Don't leave a truncated image behind.
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			log.Printf("Failed to remove partial capture %s: %v", path, rmErr)
		}
		return Outcome{Status: StatusFailed, Path: path, Err: err}
	}

	g.lastCapture = now
	g.captured = true

	log.Printf("Capture saved: %s (trigger: %s)", path, label)
	return Outcome{Status: StatusSaved, Path: path}
}

// LastCapture returns the time of the last successful save.
// The second return value is false if nothing has been saved yet.
func (g *Gate) LastCapture() (time.Time, bool) {
	return g.lastCapture, g.captured
}

// Dir returns the output directory.
func (g *Gate) Dir() string {
	return g.dir
}

// Cooldown returns the configured cooldown.
func (g *Gate) Cooldown() time.Duration {
	return g.cooldown
}

func (g *Gate) ensureDir() error {
	_, statErr := os.Stat(g.dir)
	if err := os.MkdirAll(g.dir, 0755); err != nil {
		return fmt.Errorf("create capture directory: %w", err)
	}
	if errors.Is(statErr, os.ErrNotExist) {
		log.Printf("Created capture directory: %s", g.dir)
	}

	return nil
}

// FileName returns the capture file name for t.
func FileName(t time.Time) string {
	return "capture_" + t.Format(timestampLayout) + ".jpg"
}

// DefaultDir returns the captures directory next to the running executable.
func DefaultDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}

	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}

	return filepath.Join(filepath.Dir(execPath), DirName), nil
}
