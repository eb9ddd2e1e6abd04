package main

import (
	"fmt"
	"image"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/gg"
	"github.com/google/uuid"
	"radiantwavetech.com/noisewave/internal/animation"
	"radiantwavetech.com/noisewave/internal/compositor"
	"radiantwavetech.com/noisewave/internal/logger"
	"radiantwavetech.com/noisewave/internal/noise"
	"radiantwavetech.com/noisewave/internal/options"
	"radiantwavetech.com/noisewave/internal/telemetry"
)

type renderConfig struct {
	Frames       int
	Width        int
	Height       int
	OutDir       string
	Preset       string
	Seed         int64
	Source       string
	FPS          float64
	TelemetryDir string
}

func (c renderConfig) validate() error {
	switch {
	case c.Frames <= 0:
		return fmt.Errorf("frames must be positive, got %d", c.Frames)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("invalid canvas size %dx%d", c.Width, c.Height)
	case c.FPS <= 0:
		return fmt.Errorf("fps must be positive, got %v", c.FPS)
	case c.OutDir == "":
		return fmt.Errorf("no output directory")
	}
	return nil
}

// stepScheduler holds at most one pending callback per request and fires them
// when the render loop steps.
type stepScheduler struct {
	next    animation.FrameHandle
	pending map[animation.FrameHandle]func(time.Time)
}

func (s *stepScheduler) RequestFrame(fn func(time.Time)) animation.FrameHandle {
	if s.pending == nil {
		s.pending = make(map[animation.FrameHandle]func(time.Time))
	}
	s.next++
	s.pending[s.next] = fn
	return s.next
}

func (s *stepScheduler) CancelFrame(h animation.FrameHandle) { delete(s.pending, h) }

func (s *stepScheduler) step(now time.Time) {
	due := s.pending
	s.pending = nil
	for h := animation.FrameHandle(1); h <= s.next; h++ {
		if fn, ok := due[h]; ok {
			fn(now)
		}
	}
}

// pngSurface writes every presented frame, composited over black.
type pngSurface struct {
	dir     string
	dc      *gg.Context
	w, h    int
	written int
}

func newPNGSurface(dir string, w, h int) (*pngSurface, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &pngSurface{dir: dir, dc: gg.NewContext(w, h), w: w, h: h}, nil
}

func (s *pngSurface) Size() (int, int) { return s.w, s.h }

func (s *pngSurface) Present(frame *image.RGBA) error {
	s.dc.ClearWithColor(gg.Black)
	s.dc.DrawImage(gg.ImageBufFromImage(frame), 0, 0)
	path := filepath.Join(s.dir, fmt.Sprintf("frame-%04d.png", s.written))
	if err := s.dc.SavePNG(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	s.written++
	return nil
}

func (s *pngSurface) Close() { s.dc.Close() }

// pointerPath is a Lissajous curve over the canvas, one loop per n frames.
func pointerPath(i, n, w, h int) (float64, float64) {
	t := 2 * math.Pi * float64(i) / float64(max(1, n))
	x := float64(w)/2 + 0.4*float64(w)*math.Sin(3*t)
	y := float64(h)/2 + 0.4*float64(h)*math.Sin(2*t)
	return x, y
}

// run renders cfg.Frames frames and returns how many files were written.
func run(cfg renderConfig) (int, error) {
	if err := cfg.validate(); err != nil {
		return 0, err
	}
	opts, err := options.BuiltinPresets().Resolve(cfg.Preset)
	if err != nil {
		return 0, err
	}
	src, err := noise.Get(cfg.Source, cfg.Seed)
	if err != nil {
		return 0, err
	}

	surface, err := newPNGSurface(cfg.OutDir, cfg.Width, cfg.Height)
	if err != nil {
		return 0, err
	}
	defer surface.Close()

	runID := uuid.NewString()
	recorder, err := telemetry.NewFileRecorder(cfg.TelemetryDir, runID)
	if err != nil {
		return 0, err
	}

	start := time.Unix(0, 0)
	now := start
	sched := &stepScheduler{}
	anim, err := animation.New(surface, opts,
		animation.WithScheduler(sched),
		animation.WithRefractor(compositor.NewSoftware()),
		animation.WithSource(src),
		animation.WithRand(rand.New(rand.NewSource(cfg.Seed))),
		animation.WithClock(func() time.Time { return now }),
		animation.WithFrameObserver(recorder.Observe),
	)
	if err != nil {
		recorder.Close()
		return 0, err
	}
	logger.InfoF("Rendering %d frames, preset %q, source %s, run %s", cfg.Frames, cfg.Preset, src.Name(), runID)

	frameStep := time.Duration(float64(time.Second) / cfg.FPS)
	anim.Start()
	for i := 0; i < cfg.Frames; i++ {
		now = start.Add(time.Duration(i) * frameStep)
		anim.PointerMove(pointerPath(i, cfg.Frames, cfg.Width, cfg.Height))
		sched.step(now)
	}

	if err := anim.Close(); err != nil {
		logger.WarningF("Closing animation: %v", err)
	}
	if err := recorder.Close(); err != nil {
		logger.WarningF("Closing telemetry: %v", err)
	}
	if summary := recorder.Summary(); summary.Frames > 0 {
		logger.InfoF("Frame timings: %s", summary)
	}
	return surface.written, nil
}
