package options

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

// Presets maps a preset name onto the patch it applies over Defaults.
type Presets map[string]Patch

// LoadPresets decodes a YAML document of named patches.
func LoadPresets(r io.Reader) (Presets, error) {
	var p Presets
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decoding presets: %w", err)
	}
	if p == nil {
		p = Presets{}
	}
	return p, nil
}

// BuiltinPresets returns the presets shipped with the binary.
func BuiltinPresets() Presets {
	p, err := LoadPresets(bytes.NewReader(presetsYAML))
	if err != nil {
		// The embedded file is part of the build; a decode failure is a programming error.
		panic(err)
	}
	return p
}

// Names returns the preset names in a stable order.
func (p Presets) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve builds the full Options for the named preset.
func (p Presets) Resolve(name string) (Options, error) {
	patch, ok := p[name]
	if !ok {
		return Options{}, fmt.Errorf("unknown preset %q", name)
	}
	o := Apply(Defaults(), patch)
	if err := o.Validate(); err != nil {
		return Options{}, fmt.Errorf("preset %q: %w", name, err)
	}
	return o, nil
}

// Next returns the preset name following current, wrapping around.
func (p Presets) Next(current string) string {
	names := p.Names()
	if len(names) == 0 {
		return ""
	}
	for i, n := range names {
		if n == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
