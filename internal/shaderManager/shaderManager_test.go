package shaderManager

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestEmbeddedShadersArePaired(t *testing.T) {
	pairs, missing, err := findPairs(embedded)
	if err != nil {
		t.Fatal(err)
	}
	if len(missing) != 0 {
		t.Errorf("unpaired vertex shaders: %v", missing)
	}

	want := map[string][]string{
		"present": {"u_mvpMatrix", "u_texture"},
		"refract": {"u_noise", "u_displacement", "u_amount"},
	}
	got := make(map[string]sourcePair)
	for _, p := range pairs {
		got[p.name] = p
	}
	for name, uniforms := range want {
		p, ok := got[name]
		if !ok {
			t.Errorf("program %q not embedded", name)
			continue
		}
		src := p.vertex + p.fragment
		for _, u := range uniforms {
			if !strings.Contains(src, u) {
				t.Errorf("program %q does not declare %s", name, u)
			}
		}
	}
}

func TestFindPairsReportsMissingFragment(t *testing.T) {
	fsys := fstest.MapFS{
		"shaders/a.vert": {Data: []byte("v")},
		"shaders/a.frag": {Data: []byte("f")},
		"shaders/b.vert": {Data: []byte("v")},
	}
	pairs, missing, err := findPairs(fsys)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 1 || pairs[0].name != "a" {
		t.Errorf("pairs = %+v", pairs)
	}
	if len(missing) != 1 || missing[0] != "b" {
		t.Errorf("missing = %v", missing)
	}
}
