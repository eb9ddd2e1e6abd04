// noisewave-render drives the noise animation without a window and writes each
// frame to a PNG file. Refraction runs on the CPU.
//
// Usage: go run ./cmd/noisewave-render -frames 120 -width 640 -height 360 -out frames
package main

import (
	"flag"
	"fmt"
	"os"

	"radiantwavetech.com/noisewave/internal/logger"
)

func main() {
	var cfg renderConfig
	flag.IntVar(&cfg.Frames, "frames", 60, "Number of frames to render")
	flag.IntVar(&cfg.Width, "width", 640, "Canvas width")
	flag.IntVar(&cfg.Height, "height", 360, "Canvas height")
	flag.StringVar(&cfg.OutDir, "out", "frames", "Output directory for PNG frames")
	flag.StringVar(&cfg.Preset, "preset", "default", "Animation preset")
	flag.Int64Var(&cfg.Seed, "seed", 1, "Random seed for noise, gradient and stipple points")
	flag.StringVar(&cfg.Source, "source", "perlin", "Noise source (perlin or simplex)")
	flag.Float64Var(&cfg.FPS, "fps", 60, "Simulated frame rate")
	flag.StringVar(&cfg.TelemetryDir, "telemetry", "", "Directory for per-frame CSV timings (empty disables)")
	logLevel := flag.String("log", "info", "Log level")
	flag.Parse()

	logger.SetLevel(logger.ParseLevel(*logLevel))

	written, err := run(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "noisewave-render: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Rendered %d frames to %s (%dx%d)\n", written, cfg.OutDir, cfg.Width, cfg.Height)
}
