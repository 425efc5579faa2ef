package backend

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-progcache/common"
)

func TestParseType(t *testing.T) {
	for _, want := range []Type{TypeNull, TypeGL, TypeWebGL, TypeWGPU} {
		got, ok := ParseType(want.String())
		if !ok || got != want {
			t.Errorf("expected %v, got %v (ok=%v)", want, got, ok)
		}
	}
	if _, ok := ParseType("vulkan"); ok {
		t.Error("expected vulkan to be rejected")
	}
}

func TestMaxPrecision(t *testing.T) {
	tests := []struct {
		vertex, fragment common.Precision
		requested        common.Precision
		want             common.Precision
	}{
		{common.PrecisionHigh, common.PrecisionHigh, common.PrecisionHigh, common.PrecisionHigh},
		{common.PrecisionHigh, common.PrecisionHigh, common.PrecisionDefault, common.PrecisionHigh},
		{common.PrecisionHigh, common.PrecisionMedium, common.PrecisionHigh, common.PrecisionMedium},
		{common.PrecisionHigh, common.PrecisionHigh, common.PrecisionLow, common.PrecisionLow},
		{common.PrecisionLow, common.PrecisionHigh, common.PrecisionMedium, common.PrecisionLow},
	}
	for _, tc := range tests {
		caps := Capabilities{VertexPrecision: tc.vertex, FragmentPrecision: tc.fragment}
		if got := caps.MaxPrecision(tc.requested); got != tc.want {
			t.Errorf("%s/%s requesting %q: expected %s, got %s", tc.vertex, tc.fragment, tc.requested, tc.want, got)
		}
	}
}

func TestCapabilitiesWithExtensions(t *testing.T) {
	base := DefaultCapabilities()
	ext := base.WithExtensions("KHR_parallel_shader_compile")
	if !ext.HasExtension("KHR_parallel_shader_compile") {
		t.Error("expected the extension to be enabled")
	}
	if base.HasExtension("KHR_parallel_shader_compile") {
		t.Error("expected the base capabilities to be unchanged")
	}
	if !base.VertexTextures() || base.MaxTextureUnits() != 16 {
		t.Errorf("expected 16 texture units with vertex textures, got %d", base.MaxTextureUnits())
	}
}

const testVertex = `#version 300 es
uniform mat4 modelViewMatrix;
uniform mat4 projectionMatrix;
in vec3 position;
in mat4 instanceMatrix;
in vec2 uv;
void main() { gl_Position = projectionMatrix * modelViewMatrix * instanceMatrix * vec4( position, 1.0 ); }
`

const testFragment = `#version 300 es
uniform vec3 diffuse;
uniform mat4 projectionMatrix;
out vec4 color;
void main() { color = vec4( diffuse, 1.0 ); }
`

func TestNullDeviceReflection(t *testing.T) {
	d := NewNullDevice()
	h, err := d.CreateProgram(ProgramDescriptor{Label: "test", Vertex: testVertex, Fragment: testFragment, Index0Attribute: "uv"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	uniforms := d.ActiveUniforms(h)
	if len(uniforms) != 3 {
		t.Fatalf("expected 3 uniforms across both stages, got %v", uniforms)
	}
	if uniforms[0].Name != "diffuse" || uniforms[0].Location != 0 {
		t.Errorf("expected diffuse at location 0, got %+v", uniforms[0])
	}

	attrs := d.ActiveAttributes(h)
	want := map[string]int{"uv": 0, "instanceMatrix": 1, "position": 5}
	if len(attrs) != len(want) {
		t.Fatalf("expected %d attributes, got %v", len(want), attrs)
	}
	for _, a := range attrs {
		if want[a.Name] != a.Location {
			t.Errorf("expected %s at %d, got %d", a.Name, want[a.Name], a.Location)
		}
	}
}

func TestNullDeviceLifecycle(t *testing.T) {
	d := NewNullDevice()
	d.SetParallelCompile(true)
	d.SetLinkFunc(func(desc ProgramDescriptor) LinkStatus {
		return LinkStatus{Linked: false, FragmentLog: "ERROR: 0:3: 'x' : undeclared identifier"}
	})

	h, err := d.CreateProgram(ProgramDescriptor{Vertex: testVertex, Fragment: testFragment})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if d.ProgramReady(h) {
		t.Error("expected a pending program to be unready")
	}
	d.Complete(h)
	if !d.ProgramReady(h) {
		t.Error("expected the program to be ready after completion")
	}
	if status := d.LinkStatus(h); status.Linked || status.FragmentLog == "" {
		t.Errorf("expected a failed link with a fragment log, got %+v", status)
	}
	if got := d.ActiveUniforms(h); got != nil {
		t.Errorf("expected no uniforms for an unlinked program, got %v", got)
	}

	d.DeleteProgram(h)
	d.DeleteProgram(h)
	if d.Deletions(h) != 2 || d.Live() != 0 || d.Created() != 1 {
		t.Errorf("expected 2 deletions, 0 live and 1 created, got %d, %d, %d", d.Deletions(h), d.Live(), d.Created())
	}
	if d.ProgramReady(h) {
		t.Error("expected a deleted program to be unready")
	}
}

func TestLocationSize(t *testing.T) {
	tests := map[string]int{"float": 1, "vec4": 1, "mat2": 2, "mat3": 3, "mat4": 4}
	for typ, want := range tests {
		if got := LocationSize(typ); got != want {
			t.Errorf("%s: expected %d, got %d", typ, want, got)
		}
	}
}

func TestAcceptsGLSLES3(t *testing.T) {
	tests := []struct {
		name         string
		major, minor int32
		extensions   map[string]bool
		want         bool
	}{
		{"core 4.1", 4, 1, map[string]bool{}, false},
		{"core 4.1 with es3 compatibility", 4, 1, map[string]bool{"ARB_ES3_compatibility": true}, true},
		{"core 4.3", 4, 3, nil, true},
		{"core 4.6", 4, 6, nil, true},
		{"core 3.3", 3, 3, map[string]bool{"KHR_parallel_shader_compile": true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := acceptsGLSLES3(tt.major, tt.minor, tt.extensions); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
	if !DefaultCapabilities().GLSLES3 || !NewNullDevice().Capabilities().GLSLES3 {
		t.Error("expected the default capabilities to accept GLSL ES 3.00")
	}
}

func TestNormalizeExtension(t *testing.T) {
	if got := normalizeExtension("GL_KHR_parallel_shader_compile"); got != "KHR_parallel_shader_compile" {
		t.Errorf("expected KHR_parallel_shader_compile, got %s", got)
	}
	if got := glslTypeName(0x8B5C); got != "mat4" {
		t.Errorf("expected mat4, got %s", got)
	}
}
