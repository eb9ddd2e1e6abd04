// Package stipple renders the noise field as a field of dots placed by
// Poisson-disk sampling.
package stipple

import (
	"math"
	"math/rand"
)

// attempts is the number of candidates tried around an active sample before
// it is retired.
const attempts = 30

// Point is a stipple position in offscreen buffer pixels.
type Point struct {
	X, Y float64
}

// Generate returns points covering a w×h area with no two closer than
// minDist. It uses bounded-attempt dart throwing around active samples with a
// background grid of cell size minDist/√2 for neighbour lookups.
func Generate(w, h int, minDist float64, rng *rand.Rand) []Point {
	if w <= 0 || h <= 0 || !(minDist > 0) || math.IsInf(minDist, 1) {
		return nil
	}
	fw, fh := float64(w), float64(h)
	cell := minDist / math.Sqrt2
	cols := int(math.Ceil(fw / cell))
	rows := int(math.Ceil(fh / cell))
	grid := make([]int, cols*rows) // index+1 into points, 0 = empty

	points := make([]Point, 0, int(fw*fh/(minDist*minDist)))
	var active []int

	insert := func(p Point) {
		points = append(points, p)
		idx := len(points) - 1
		gx := min(cols-1, int(p.X/cell))
		gy := min(rows-1, int(p.Y/cell))
		grid[gy*cols+gx] = idx + 1
		active = append(active, idx)
	}

	fits := func(p Point) bool {
		cx, cy := min(cols-1, int(p.X/cell)), min(rows-1, int(p.Y/cell))
		for y := max(0, cy-2); y <= min(rows-1, cy+2); y++ {
			for x := max(0, cx-2); x <= min(cols-1, cx+2); x++ {
				if n := grid[y*cols+x]; n != 0 {
					q := points[n-1]
					dx, dy := q.X-p.X, q.Y-p.Y
					if dx*dx+dy*dy < minDist*minDist {
						return false
					}
				}
			}
		}
		return true
	}

	insert(Point{X: rng.Float64() * fw, Y: rng.Float64() * fh})

	for len(active) > 0 {
		ai := rng.Intn(len(active))
		origin := points[active[ai]]

		found := false
		for k := 0; k < attempts; k++ {
			angle := rng.Float64() * 2 * math.Pi
			dist := minDist * (1 + rng.Float64())
			c := Point{X: origin.X + math.Cos(angle)*dist, Y: origin.Y + math.Sin(angle)*dist}
			if c.X < 0 || c.X >= fw || c.Y < 0 || c.Y >= fh {
				continue
			}
			if fits(c) {
				insert(c)
				found = true
				break
			}
		}
		if !found {
			active[ai] = active[len(active)-1]
			active = active[:len(active)-1]
		}
	}
	return points
}
