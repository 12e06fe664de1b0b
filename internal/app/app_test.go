package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"github.com/ayusman/facetrigger/internal/capture"
	"github.com/ayusman/facetrigger/internal/detector"
	"github.com/ayusman/facetrigger/internal/snapshot"
)

// fakeSink records shown frames and replays scripted key presses.
type fakeSink struct {
	shown     int
	keys      map[int]int // shown count -> key returned after that frame
	panicOn   int
	closed    bool
	lastEmpty bool
}

func (s *fakeSink) Show(frame gocv.Mat) {
	s.shown++
	if s.panicOn > 0 && s.shown == s.panicOn {
		panic("display exploded")
	}
	s.lastEmpty = frame.Empty()
}

func (s *fakeSink) PollKey() int {
	if k, ok := s.keys[s.shown]; ok {
		return k
	}
	return -1
}

func (s *fakeSink) Close() error {
	s.closed = true
	return nil
}

// fileWriter writes a stub file instead of encoding a JPEG.
type fileWriter struct {
	fail bool
}

func (w *fileWriter) WriteJPEG(path string, frame gocv.Mat) error {
	if w.fail {
		return errors.New("encoder unavailable")
	}
	return os.WriteFile(path, []byte("jpeg"), 0644)
}

// stepClock returns start, start+step, start+2*step, ...
func stepClock(start time.Time, step time.Duration) func() time.Time {
	next := start
	return func() time.Time {
		t := next
		next = next.Add(step)
		return t
	}
}

type harness struct {
	app      *App
	camera   *capture.MockCamera
	detector *detector.MockDetector
	sink     *fakeSink
	writer   *fileWriter
	dir      string
}

func newHarness(t *testing.T, frames int) *harness {
	t.Helper()

	mats := make([]*gocv.Mat, frames)
	for i := range mats {
		m := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
		mats[i] = &m
	}
	t.Cleanup(func() {
		for _, m := range mats {
			m.Close()
		}
	})

	h := &harness{
		camera:   capture.NewMockCamera(mats, false),
		detector: detector.NewMockDetector(),
		sink:     &fakeSink{},
		writer:   &fileWriter{},
		dir:      filepath.Join(t.TempDir(), snapshot.DirName),
	}

	cfg := DefaultConfig()
	cfg.CaptureDir = h.dir
	cfg.Writer = h.writer

	h.app = New(cfg)
	h.app.SetCamera(h.camera)
	h.app.SetDetector(h.detector)
	h.app.SetSink(h.sink)
	h.app.SetClock(stepClock(time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), 100*time.Millisecond))

	return h
}

func (h *harness) captures(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(h.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func (h *harness) assertReleased(t *testing.T) {
	t.Helper()
	assert.False(t, h.camera.IsOpen(), "camera should be released")
	assert.True(t, h.detector.Closed(), "detector should be closed")
	assert.True(t, h.sink.closed, "window should be closed")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, snapshot.DefaultCooldown, cfg.Cooldown)
	assert.True(t, cfg.Mirror)
	assert.Equal(t, 1, cfg.Detector.MaxFaces)
	assert.Empty(t, cfg.CaptureDir)
}

func TestNew_DefaultCaptureDir(t *testing.T) {
	a := New(DefaultConfig())

	assert.Equal(t, snapshot.DirName, filepath.Base(a.Gate().Dir()))
	assert.True(t, filepath.IsAbs(a.Gate().Dir()))
	assert.NotNil(t, a.Detector())
	assert.NotNil(t, a.Camera())
}

func TestRun_FeedLost(t *testing.T) {
	h := newHarness(t, 3)

	err := h.app.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, h.sink.shown)
	assert.Equal(t, 3, h.detector.Calls())
	assert.False(t, h.sink.lastEmpty)
	h.assertReleased(t)
}

func TestRun_QuitKey(t *testing.T) {
	for _, key := range []int{'q', 'Q'} {
		t.Run(string(rune(key)), func(t *testing.T) {
			h := newHarness(t, 10)
			h.sink.keys = map[int]int{1: 'x', 2: key}

			require.NoError(t, h.app.Run(context.Background()))

			assert.Equal(t, 2, h.sink.shown, "loop should stop right after the quit key")
			h.assertReleased(t)
		})
	}
}

func TestRun_CameraUnavailable(t *testing.T) {
	h := newHarness(t, 1)
	h.camera.SetOpenError(errors.New("no such device"))

	err := h.app.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "open camera")
	assert.Zero(t, h.sink.shown)
	assert.True(t, h.detector.Closed())
	assert.True(t, h.sink.closed)
}

func TestRun_ContextCancelled(t *testing.T) {
	h := newHarness(t, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, h.app.Run(ctx))
	assert.Zero(t, h.sink.shown)
	h.assertReleased(t)
}

func TestRun_PanicIsRecovered(t *testing.T) {
	h := newHarness(t, 5)
	h.sink.panicOn = 2

	err := h.app.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "display exploded")
	h.assertReleased(t)
}

func TestRun_MouthClosedWritesNothing(t *testing.T) {
	h := newHarness(t, 5)
	h.detector.SetFaces([]detector.FaceLandmarks{detector.MouthClosedLandmarks()})

	require.NoError(t, h.app.Run(context.Background()))

	assert.Empty(t, h.captures(t))
	_, ok := h.app.Gate().LastCapture()
	assert.False(t, ok)
}

func TestRun_NoFacesWritesNothing(t *testing.T) {
	h := newHarness(t, 5)

	require.NoError(t, h.app.Run(context.Background()))

	assert.Empty(t, h.captures(t))
}

func TestRun_MouthOpenRespectsCooldown(t *testing.T) {
	// 40 triggered frames, 100ms apart: saves at 0s and 3.1s.
	h := newHarness(t, 40)
	h.detector.SetFaces([]detector.FaceLandmarks{detector.MouthOpenLandmarks()})

	require.NoError(t, h.app.Run(context.Background()))

	assert.Equal(t, []string{
		"capture_20240315_103000.jpg",
		"capture_20240315_103003.jpg",
	}, h.captures(t))
	assert.Equal(t, 40, h.sink.shown)
}

func TestRun_AnyFaceTriggers(t *testing.T) {
	h := newHarness(t, 1)
	h.detector.SetFaces([]detector.FaceLandmarks{
		detector.MouthClosedLandmarks(),
		detector.MouthOpenLandmarks(),
	})

	require.NoError(t, h.app.Run(context.Background()))

	assert.Len(t, h.captures(t), 1)
}

func TestRun_DetectorErrorKeepsRunning(t *testing.T) {
	h := newHarness(t, 4)
	h.detector.SetError(errors.New("service crashed"))

	require.NoError(t, h.app.Run(context.Background()))

	assert.Equal(t, 4, h.sink.shown, "detection errors must not stop the loop")
	assert.Empty(t, h.captures(t))
}

func TestRun_WriteFailureRetriesNextFrame(t *testing.T) {
	h := newHarness(t, 3)
	h.detector.SetFaces([]detector.FaceLandmarks{detector.MouthOpenLandmarks()})
	h.writer.fail = true

	require.NoError(t, h.app.Run(context.Background()))

	assert.Equal(t, 3, h.sink.shown, "write failures must not stop the loop")
	assert.Empty(t, h.captures(t))
	_, ok := h.app.Gate().LastCapture()
	assert.False(t, ok, "failed writes must not start the cooldown")
}
