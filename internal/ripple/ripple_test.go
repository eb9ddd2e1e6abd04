package ripple

import (
	"image"
	"math"
	"math/rand"
	"testing"
	"time"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func fixedConfig(lifetime float64) Config {
	cfg := DefaultConfig()
	cfg.LifetimeMin, cfg.LifetimeMax = lifetime, lifetime
	return cfg
}

func TestEnvelope(t *testing.T) {
	tests := []struct {
		p, want float64
	}{
		{0, 0.2},
		{0.1, 0.35},
		{0.2, 0.8},
		{0.325, 1.0},
		{0.45, 0.8},
		{0.575, 0.6},
		{0.7, 0.8},
		{0.85, 0.2},
		{1, 0},
		{1.5, 0},
		{-0.1, 0},
	}
	for _, tt := range tests {
		if got := Envelope(tt.p); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Envelope(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestThrottle(t *testing.T) {
	tr := NewTracker(DefaultConfig(), rand.New(rand.NewSource(1)))

	if !tr.Add(100, 100, t0) {
		t.Fatal("first ripple rejected")
	}
	if tr.Add(103, 103, t0) {
		t.Error("ripple 4.24px away should be throttled")
	}
	if !tr.Add(104, 103, t0) {
		t.Error("ripple exactly 5px away should be stored")
	}
	if tr.Len() != 2 {
		t.Errorf("Len = %d, want 2", tr.Len())
	}
}

func TestThrottleAt5pxStores(t *testing.T) {
	tr := NewTracker(DefaultConfig(), rand.New(rand.NewSource(1)))
	tr.Add(0, 0, t0)
	if !tr.Add(3, 4, t0) {
		t.Error("distance² = 25 is not below the threshold and should be stored")
	}
}

func TestRandomizedRanges(t *testing.T) {
	tr := NewTracker(DefaultConfig(), rand.New(rand.NewSource(7)))
	for i := 0; i < 50; i++ {
		tr.Add(float64(i*10), 0, t0)
	}
	for i, r := range tr.Active(t0) {
		if r.Amplitude < 0.2 || r.Amplitude > 0.5 {
			t.Errorf("ripple %d amplitude %v", i, r.Amplitude)
		}
		if r.Speed < 100 || r.Speed > 150 {
			t.Errorf("ripple %d speed %v", i, r.Speed)
		}
		if r.Lifetime < 2 || r.Lifetime > 3.5 {
			t.Errorf("ripple %d lifetime %v", i, r.Lifetime)
		}
		if want := float64(i * 2); r.Hue != want {
			t.Errorf("ripple %d hue = %v, want %v", i, r.Hue, want)
		}
	}
}

func TestHueWraps(t *testing.T) {
	tr := NewTracker(DefaultConfig(), rand.New(rand.NewSource(7)))
	for i := 0; i < 181; i++ {
		tr.Add(float64(i*10), 0, t0)
	}
	got := tr.Active(t0)
	if last := got[len(got)-1].Hue; last != 0 {
		t.Errorf("hue after 180 steps = %v, want 0", last)
	}
}

func TestLifecycle(t *testing.T) {
	tr := NewTracker(fixedConfig(2.5), rand.New(rand.NewSource(3)))
	tr.Add(10, 10, t0)

	life := 2500 * time.Millisecond
	for _, d := range []time.Duration{0, time.Second, life - time.Millisecond} {
		if n := len(tr.Active(t0.Add(d))); n != 1 {
			t.Errorf("at +%v: %d ripples, want 1", d, n)
		}
	}
	if n := len(tr.Active(t0.Add(life))); n != 0 {
		t.Errorf("at +lifetime: %d ripples, want 0", n)
	}
}

func TestTwoRipplesSecondOutlivesFirst(t *testing.T) {
	tr := NewTracker(fixedConfig(2), rand.New(rand.NewSource(3)))
	tr.Add(50, 50, t0)
	tr.Add(80, 80, t0.Add(200*time.Millisecond))

	dst := image.NewNRGBA(image.Rect(0, 0, 200, 200))
	now := t0.Add(2 * time.Second)
	if n := tr.Rasterize(dst, 1, now); n != 1 {
		t.Fatalf("rasterized %d ripples, want 1", n)
	}
	live := tr.Active(now)
	if len(live) != 1 || live[0].Hue != 2 {
		t.Errorf("live = %+v, want the hue 2 ripple only", live)
	}
}

func TestRasterizeDrawsRing(t *testing.T) {
	tr := NewTracker(fixedConfig(3), rand.New(rand.NewSource(3)))
	tr.Add(100, 100, t0)
	now := t0.Add(500 * time.Millisecond)
	r := tr.Active(now)[0]

	dst := image.NewNRGBA(image.Rect(0, 0, 200, 200))
	if n := tr.Rasterize(dst, 1, now); n != 1 {
		t.Fatalf("rasterized %d", n)
	}

	// hue 0 ring: red on the ring, nothing at the center
	ringX := int(100 + r.Radius(now))
	ring := dst.NRGBAAt(ringX, 100)
	if ring.A == 0 || ring.R < 200 || ring.G > 20 {
		t.Errorf("ring pixel = %+v", ring)
	}
	if c := dst.NRGBAAt(100, 100); c.A != 0 {
		t.Errorf("center pixel = %+v, want transparent", c)
	}
	if c := dst.NRGBAAt(0, 0); c.A != 0 {
		t.Errorf("corner pixel = %+v, want transparent", c)
	}
}

func TestRasterizeScalesToOffscreen(t *testing.T) {
	tr := NewTracker(fixedConfig(3), rand.New(rand.NewSource(3)))
	tr.Add(200, 200, t0)
	now := t0.Add(500 * time.Millisecond)
	radius := tr.Active(now)[0].Radius(now)

	dst := image.NewNRGBA(image.Rect(0, 0, 200, 200))
	tr.Rasterize(dst, 0.5, now)
	if c := dst.NRGBAAt(int(100+radius*0.5), 100); c.A == 0 {
		t.Errorf("scaled ring missing at offscreen radius %v", radius*0.5)
	}
}

func TestRasterizeReusesAccumulator(t *testing.T) {
	tr := NewTracker(fixedConfig(3), rand.New(rand.NewSource(3)))
	tr.Add(100, 100, t0)
	now := t0.Add(500 * time.Millisecond)

	first := image.NewNRGBA(image.Rect(0, 0, 200, 200))
	tr.Rasterize(first, 1, now)
	buf := &tr.acc[0]

	second := image.NewNRGBA(image.Rect(0, 0, 200, 200))
	tr.Rasterize(second, 1, now)
	if &tr.acc[0] != buf {
		t.Error("accumulator reallocated between frames of the same size")
	}
	for i := range first.Pix {
		if first.Pix[i] != second.Pix[i] {
			t.Fatalf("byte %d differs between identical frames: %d vs %d", i, first.Pix[i], second.Pix[i])
		}
	}

	smaller := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	tr.Rasterize(smaller, 0.5, now)
	if &tr.acc[0] != buf {
		t.Error("accumulator reallocated for a smaller frame")
	}
	if len(tr.acc) != 100*100*4 {
		t.Errorf("accumulator length = %d", len(tr.acc))
	}
}

func TestClear(t *testing.T) {
	tr := NewTracker(DefaultConfig(), rand.New(rand.NewSource(1)))
	tr.Add(0, 0, t0)
	tr.Add(50, 0, t0)
	tr.Clear()
	if tr.Len() != 0 {
		t.Fatalf("Len after Clear = %d", tr.Len())
	}
	if !tr.Add(1, 1, t0) {
		t.Error("throttle origin should reset on Clear")
	}
	if h := tr.Active(t0)[0].Hue; h != 0 {
		t.Errorf("hue after Clear = %v, want 0", h)
	}
}
