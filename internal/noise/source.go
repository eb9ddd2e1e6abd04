package noise

import (
	"fmt"
	"sort"

	perlin "github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Source is a smooth, deterministic 2D gradient noise function with output
// approximately in [-1, 1].
type Source interface {
	Sample2D(x, y float64) float64
	Name() string
}

// SourceInfo holds the public information about a registered source.
type SourceInfo struct {
	Key         string // machine-readable key, e.g. "perlin"
	DisplayName string // name shown in the window title
}

var registry = make(map[string]func(seed int64) Source)

// Register adds a source constructor under name. Later registrations replace
// earlier ones.
func Register(name string, constructor func(seed int64) Source) {
	registry[name] = constructor
}

// Get builds the named source with the given seed.
func Get(name string, seed int64) (Source, error) {
	constructor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("failed to find noise source %s in registry", name)
	}
	return constructor(seed), nil
}

// ListAvailable returns every registered source, sorted by key.
func ListAvailable() []SourceInfo {
	list := make([]SourceInfo, 0, len(registry))
	for key, constructor := range registry {
		list = append(list, SourceInfo{
			Key:         key,
			DisplayName: constructor(0).Name(),
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Key < list[j].Key })
	return list
}

func init() {
	Register("perlin", func(seed int64) Source { return NewPerlin(seed) })
	Register("simplex", func(seed int64) Source { return NewOpenSimplex(seed) })
}

// Perlin is classic single-octave Perlin gradient noise.
type Perlin struct {
	p *perlin.Perlin
}

func NewPerlin(seed int64) *Perlin {
	// alpha and beta only matter across octaves; n=1 keeps a single octave.
	return &Perlin{p: perlin.NewPerlin(2, 2, 1, seed)}
}

func (p *Perlin) Name() string { return "Perlin" }

func (p *Perlin) Sample2D(x, y float64) float64 {
	return p.p.Noise2D(x, y)
}

// OpenSimplex is an alternative gradient noise with fewer axis-aligned artifacts.
type OpenSimplex struct {
	n opensimplex.Noise
}

func NewOpenSimplex(seed int64) *OpenSimplex {
	return &OpenSimplex{n: opensimplex.New(seed)}
}

func (o *OpenSimplex) Name() string { return "OpenSimplex" }

func (o *OpenSimplex) Sample2D(x, y float64) float64 {
	return o.n.Eval2(x, y)
}
