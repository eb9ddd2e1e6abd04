// Package telemetry records per-frame stage timings to CSV and summarizes the
// run at shutdown.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"
	"radiantwavetech.com/noisewave/internal/animation"
	"radiantwavetech.com/noisewave/internal/logger"
)

// FrameRecord is one CSV row.
type FrameRecord struct {
	RunID        string  `csv:"run_id"`
	Frame        uint64  `csv:"frame"`
	Time         float64 `csv:"time"`
	NoiseMS      float64 `csv:"noise_ms"`
	RippleMS     float64 `csv:"ripple_ms"`
	RefractMS    float64 `csv:"refract_ms"`
	StippleMS    float64 `csv:"stipple_ms"`
	PresentMS    float64 `csv:"present_ms"`
	TotalMS      float64 `csv:"total_ms"`
	Ripples      int     `csv:"ripples"`
	ColorRipples int     `csv:"color_ripples"`
	Dots         int     `csv:"dots"`
}

// summaryWindow is how many recent frame totals the summary statistics cover:
// ten minutes at 60 frames per second.
const summaryWindow = 36000

// Summary describes the distribution of total frame times. Frames counts every
// observed frame; the statistics cover the most recent Window of them.
type Summary struct {
	Frames int
	Window int
	MeanMS float64
	StdMS  float64
	P50MS  float64
	P95MS  float64
	MaxMS  float64
}

func (s Summary) String() string {
	return fmt.Sprintf("%d frames (last %d summarized), mean %.2fms (sd %.2f), p50 %.2fms, p95 %.2fms, max %.2fms",
		s.Frames, s.Window, s.MeanMS, s.StdMS, s.P50MS, s.P95MS, s.MaxMS)
}

// Recorder buffers frame records and writes them in batches.
type Recorder struct {
	runID         string
	out           io.Writer
	closer        io.Closer
	batch         int
	pending       []FrameRecord
	headerWritten bool

	// totals is a ring of the last window frame times; next is the slot the
	// following frame overwrites once the ring is full.
	totals   []float64
	next     int
	window   int
	observed int
}

// NewRecorder writes records for runID to out, flushing every batch frames.
func NewRecorder(runID string, out io.Writer, batch int) *Recorder {
	return &Recorder{runID: runID, out: out, batch: max(1, batch), window: summaryWindow}
}

// NewFileRecorder creates dir and writes frames-<runID>.csv inside it.
// It returns nil if dir is empty (recording disabled); a nil Recorder accepts
// every call.
func NewFileRecorder(dir, runID string) (*Recorder, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating telemetry directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, fmt.Sprintf("frames-%s.csv", runID)))
	if err != nil {
		return nil, fmt.Errorf("creating telemetry file: %w", err)
	}
	r := NewRecorder(runID, f, 120)
	r.closer = f
	return r, nil
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

// Observe records one frame. Its signature matches animation.WithFrameObserver.
func (r *Recorder) Observe(s animation.FrameStats) {
	if r == nil {
		return
	}
	rec := FrameRecord{
		RunID:        r.runID,
		Frame:        s.Frame,
		Time:         s.Time,
		NoiseMS:      ms(s.Noise),
		RippleMS:     ms(s.Ripple),
		RefractMS:    ms(s.Refract),
		StippleMS:    ms(s.Stipple),
		PresentMS:    ms(s.Present),
		TotalMS:      ms(s.Noise + s.Ripple + s.Refract + s.Stipple + s.Present),
		Ripples:      s.Ripples,
		ColorRipples: s.ColorRipples,
		Dots:         s.Dots,
	}
	r.pending = append(r.pending, rec)
	r.addTotal(rec.TotalMS)
	if len(r.pending) >= r.batch {
		if err := r.Flush(); err != nil {
			logger.WarningF("Dropping %d telemetry records: %v", len(r.pending), err)
			r.pending = r.pending[:0]
		}
	}
}

// Flush writes buffered records.
func (r *Recorder) Flush() error {
	if r == nil || len(r.pending) == 0 {
		return nil
	}
	var err error
	if !r.headerWritten {
		err = gocsv.Marshal(r.pending, r.out)
		r.headerWritten = err == nil
	} else {
		err = gocsv.MarshalWithoutHeaders(r.pending, r.out)
	}
	if err != nil {
		return fmt.Errorf("writing frame records: %w", err)
	}
	r.pending = r.pending[:0]
	return nil
}

func (r *Recorder) addTotal(v float64) {
	r.observed++
	if len(r.totals) < r.window {
		r.totals = append(r.totals, v)
		return
	}
	r.totals[r.next] = v
	r.next = (r.next + 1) % r.window
}

// Summary computes statistics over the most recent frames.
func (r *Recorder) Summary() Summary {
	if r == nil || len(r.totals) == 0 {
		return Summary{}
	}
	sorted := make([]float64, len(r.totals))
	copy(sorted, r.totals)
	sort.Float64s(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	return Summary{
		Frames: r.observed,
		Window: len(sorted),
		MeanMS: mean,
		StdMS:  std,
		P50MS:  stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P95MS:  stat.Quantile(0.95, stat.Empirical, sorted, nil),
		MaxMS:  sorted[len(sorted)-1],
	}
}

// Close flushes and closes the underlying file, if the Recorder owns one.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	err := r.Flush()
	if r.closer != nil {
		if cerr := r.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
