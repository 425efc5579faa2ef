package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-progcache/common"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/parameters"
)

func names(decls []Declaration) map[string]Declaration {
	out := make(map[string]Declaration, len(decls))
	for _, d := range decls {
		out[d.Name] = d
	}
	return out
}

func TestReflectUniformsAndAttributes(t *testing.T) {
	src := `
#define USE_A
uniform mat4 modelMatrix; // trailing comment
/* uniform float hidden; */
uniform highp vec3 colors[ 4 ];
#ifdef USE_A
	uniform float a;
#else
	uniform float notA;
#endif
#ifndef USE_A
	attribute vec2 never;
#endif
attribute vec3 position;
layout(location = 1) in vec2 uv;
`
	r := Reflect(StageVertex, src)
	u := names(r.Uniforms)
	for _, want := range []string{"modelMatrix", "colors[0]", "a"} {
		if _, ok := u[want]; !ok {
			t.Errorf("expected uniform %s, got %v", want, r.Uniforms)
		}
	}
	for _, unwanted := range []string{"hidden", "notA"} {
		if _, ok := u[unwanted]; ok {
			t.Errorf("expected uniform %s to be excluded", unwanted)
		}
	}
	if u["colors[0]"].Size != 4 || u["colors[0]"].Type != "vec3" {
		t.Errorf("expected colors[0] to be vec3 x4, got %+v", u["colors[0]"])
	}
	a := names(r.Attributes)
	if len(a) != 2 || a["position"].Type != "vec3" || a["uv"].Type != "vec2" {
		t.Errorf("expected position and uv attributes, got %v", r.Attributes)
	}
}

func TestReflectFragmentHasNoAttributes(t *testing.T) {
	r := Reflect(StageFragment, "in vec3 vNormal;\nuniform float opacity;")
	if len(r.Attributes) != 0 {
		t.Errorf("expected no attributes in the fragment stage, got %v", r.Attributes)
	}
	if len(r.Uniforms) != 1 || r.Uniforms[0].Name != "opacity" {
		t.Errorf("expected only opacity, got %v", r.Uniforms)
	}
}

func TestReflectStructArrays(t *testing.T) {
	src := `
struct PointLight {
	vec3 position;
	vec3 color;
};
uniform PointLight pointLights[ 2 ];
`
	u := names(Reflect(StageFragment, src).Uniforms)
	for _, want := range []string{"pointLights[0].position", "pointLights[0].color", "pointLights[1].position", "pointLights[1].color"} {
		if _, ok := u[want]; !ok {
			t.Errorf("expected uniform %s, got %v", want, u)
		}
	}
}

func TestReflectProcessedLambert(t *testing.T) {
	dict := DefaultDictionary()
	vs, fs, _ := dict.Template(parameters.TemplateLambert)
	p := &parameters.Parameters{
		ShaderID:         parameters.TemplateLambert,
		ShaderType:       material.TypeLambert.String(),
		VertexShader:     vs,
		FragmentShader:   fs,
		OutputColorSpace: common.SRGBColorSpace,
		NumDirLights:     2,
		Map:              true,
		MapUV:            "uv",
	}
	src, err := NewPreProcessor(dict).Process(p)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	frag := names(Reflect(StageFragment, src.Fragment).Uniforms)
	for _, want := range []string{"directionalLights[1].direction", "map", "diffuse", "opacity"} {
		if _, ok := frag[want]; !ok {
			t.Errorf("expected fragment uniform %s", want)
		}
	}
	if _, ok := frag["pointLights[0].color"]; ok {
		t.Error("expected no point light uniforms without point lights")
	}
	vert := Reflect(StageVertex, src.Vertex)
	attrs := names(vert.Attributes)
	if _, ok := attrs["position"]; !ok {
		t.Errorf("expected position attribute, got %v", vert.Attributes)
	}
	if _, ok := attrs["skinIndex"]; ok {
		t.Error("expected skinning attributes to be excluded without skinning")
	}
	if _, ok := names(vert.Uniforms)["mapTransform"]; !ok {
		t.Error("expected mapTransform in the vertex stage")
	}
}

func TestEvalCondition(t *testing.T) {
	defines := map[string]string{"A": "", "N": "3", "M": "( N + 1 )"}
	tests := []struct {
		expr string
		want bool
	}{
		{"defined( A )", true},
		{"defined B", false},
		{"N > 2", true},
		{"M == 4 && defined( A )", true},
		{"! defined( A ) || N < 1", false},
		{"( UNKNOWN < 1 )", true},
		{"1 +", false},
		{"2 - 3 + 1 == 0", true},
	}
	for _, tc := range tests {
		if got := evalCondition(tc.expr, defines); got != tc.want {
			t.Errorf("%q: expected %v, got %v", tc.expr, tc.want, got)
		}
	}
}

func TestActiveLinesElif(t *testing.T) {
	src := "#define X 2\n#if X == 1\none\n#elif X == 2\ntwo\n#elif X == 2\nagain\n#else\nother\n#endif"
	got := activeLines(src)
	if len(got) != 1 || got[0] != "two" {
		t.Errorf("expected only the first matching branch, got %v", got)
	}
}

func TestVertexBufferLayouts(t *testing.T) {
	layouts, locations := VertexBufferLayouts([]Declaration{
		{Name: "position", Type: "vec3", Size: 1},
		{Name: "instanceMatrix", Type: "mat4", Size: 1},
		{Name: "weird", Type: "sampler2D", Size: 1},
		{Name: "uv", Type: "vec2", Size: 1},
	})
	if len(layouts) != 3 {
		t.Fatalf("expected 3 layouts, got %d", len(layouts))
	}
	if locations["position"] != 0 || locations["instanceMatrix"] != 1 || locations["uv"] != 5 {
		t.Errorf("unexpected locations %v", locations)
	}
	if layouts[1].ArrayStride != 64 || len(layouts[1].Attributes) != 4 {
		t.Errorf("expected the matrix to span four vec4 columns, got %+v", layouts[1])
	}
	if layouts[0].Attributes[0].Format != wgpu.VertexFormatFloat32x3 {
		t.Errorf("expected Float32x3 for vec3, got %v", layouts[0].Attributes[0].Format)
	}
}
