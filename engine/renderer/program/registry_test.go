package program

import (
	"errors"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-progcache/common"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/parameters"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/shader"
)

func lambertParams(dirLights int, defines ...material.Define) *parameters.Parameters {
	vs, fs, _ := shader.DefaultDictionary().Template(parameters.TemplateLambert)
	return &parameters.Parameters{
		ShaderID:         parameters.TemplateLambert,
		ShaderName:       material.TypeLambert.String(),
		ShaderType:       material.TypeLambert.String(),
		VertexShader:     vs,
		FragmentShader:   fs,
		Defines:          defines,
		Precision:        common.PrecisionHigh,
		OutputColorSpace: common.SRGBColorSpace,
		NumDirLights:     dirLights,
	}
}

func mustAcquire(t *testing.T, reg Registry, p *parameters.Parameters, key string) Program {
	t.Helper()
	prog, err := reg.Acquire(p, key)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	return prog
}

type recordingStates struct {
	released []int
}

func (r *recordingStates) ReleaseStatesOfProgram(p Program) {
	r.released = append(r.released, p.ID())
}

func TestAcquireReleaseRefcount(t *testing.T) {
	device := backend.NewNullDevice()
	states := &recordingStates{}
	reg := NewRegistry(device, nil, WithBindingStates(states))

	p := lambertParams(1)
	key := parameters.CacheKey(p)
	a, err := reg.Acquire(p, key)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	b, err := reg.Acquire(lambertParams(1), key)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if a != b {
		t.Error("expected the same program for the same key")
	}
	if a.UsedTimes() != 2 || reg.Len() != 1 || device.Created() != 1 {
		t.Errorf("expected usedTimes 2, 1 live and 1 created, got %d, %d, %d", a.UsedTimes(), reg.Len(), device.Created())
	}

	handle := a.Handle()
	if err := reg.Release(a); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if a.UsedTimes() != 1 || reg.Len() != 1 || device.Deletions(handle) != 0 {
		t.Errorf("expected the program to survive one release")
	}
	if err := reg.Release(b); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reg.Len() != 0 || device.Deletions(handle) != 1 {
		t.Errorf("expected the program to be destroyed once, got %d live and %d deletions", reg.Len(), device.Deletions(handle))
	}
	if err := reg.Release(b); !errors.Is(err, ErrReleased) {
		t.Errorf("expected ErrReleased, got %v", err)
	}
	if device.Deletions(handle) != 1 {
		t.Errorf("expected no second GPU free, got %d deletions", device.Deletions(handle))
	}
	if len(states.released) != 1 || states.released[0] != a.ID() {
		t.Errorf("expected the binding states to be told once, got %v", states.released)
	}
	if a.Handle() != 0 {
		t.Errorf("expected a zero handle after destruction, got %d", a.Handle())
	}

	s := reg.Stats()
	if s.Acquires != 2 || s.Hits != 1 || s.Compiles != 1 || s.Destroyed != 1 || s.Live != 0 {
		t.Errorf("unexpected stats %+v", s)
	}
}

func TestDifferentDefinesGetDistinctPrograms(t *testing.T) {
	reg := NewRegistry(backend.NewNullDevice(), nil)

	pa := lambertParams(0, material.Define{Name: "FOO", Value: "1"})
	pb := lambertParams(0, material.Define{Name: "FOO", Value: "2"})
	ka, kb := parameters.CacheKey(pa), parameters.CacheKey(pb)
	if ka == kb {
		t.Fatal("expected different keys for different defines")
	}
	a := mustAcquire(t, reg, pa, ka)
	b := mustAcquire(t, reg, pb, kb)
	if a == b || a.ID() == b.ID() {
		t.Error("expected two distinct programs")
	}
	if a.ID() != 0 || b.ID() != 1 {
		t.Errorf("expected registry-scoped ids 0 and 1, got %d and %d", a.ID(), b.ID())
	}
	if !strings.Contains(a.Sources().Vertex, "#define FOO 1") {
		t.Error("expected the custom define in the vertex prelude")
	}
}

func TestLightCountChangeSwapsProgram(t *testing.T) {
	device := backend.NewNullDevice()
	reg := NewRegistry(device, nil)

	p2 := lambertParams(2)
	k2 := parameters.CacheKey(p2)
	old := mustAcquire(t, reg, p2, k2)

	p3 := lambertParams(3)
	k3 := parameters.CacheKey(p3)
	if k2 == k3 {
		t.Fatal("expected the light count to change the key")
	}
	next := mustAcquire(t, reg, p3, k3)
	if next == old {
		t.Fatal("expected a fresh program")
	}
	oldHandle := old.Handle()
	if err := reg.Release(old); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if old.UsedTimes() != 0 || device.Deletions(oldHandle) != 1 {
		t.Errorf("expected the old program destroyed, got usedTimes %d", old.UsedTimes())
	}
	if _, ok := reg.Lookup(k3); !ok || reg.Len() != 1 {
		t.Error("expected only the new program to stay live")
	}
	if u := next.Uniforms(); u["directionalLights[2].direction"].Name == "" {
		t.Errorf("expected three directional lights in the uniform table, got %v", u)
	}
}

func TestPreprocessingErrorLeavesRegistryUnchanged(t *testing.T) {
	device := backend.NewNullDevice()
	reg := NewRegistry(device, nil)

	p := &parameters.Parameters{
		ShaderName:          "RawShaderMaterial",
		ShaderType:          material.TypeRawShader.String(),
		VertexShader:        "#include <missing_chunk>\nvoid main() {}",
		FragmentShader:      "void main() {}",
		IsRawShaderMaterial: true,
	}
	_, err := reg.Acquire(p, parameters.CacheKey(p))
	if !errors.Is(err, shader.ErrUnresolvableInclude) {
		t.Fatalf("expected ErrUnresolvableInclude, got %v", err)
	}
	if reg.Len() != 0 || device.Created() != 0 {
		t.Errorf("expected nothing created, got %d live and %d created", reg.Len(), device.Created())
	}
}

func TestShaderErrorHook(t *testing.T) {
	device := backend.NewNullDevice()
	device.SetLinkFunc(func(desc backend.ProgramDescriptor) backend.LinkStatus {
		return backend.LinkStatus{Linked: false, FragmentLog: "ERROR: 0:12: 'foo' : undeclared identifier"}
	})
	var got *Diagnostics
	reg := NewRegistry(device, nil, WithCheckShaderErrors(true), WithOnShaderError(func(d *Diagnostics) { got = d }))

	p := lambertParams(0)
	p.ToneMapping = common.ACESFilmicToneMapping
	prog := mustAcquire(t, reg, p, parameters.CacheKey(p))
	if got != nil {
		t.Fatal("expected no diagnostics before first use")
	}
	if len(prog.Uniforms()) != 0 {
		t.Error("expected an empty uniform table for a failed link")
	}
	if got == nil || got.Runnable {
		t.Fatalf("expected non-runnable diagnostics, got %+v", got)
	}
	if prog.Diagnostics() != got {
		t.Error("expected the program to keep its diagnostics")
	}
	if !strings.Contains(got.Fragment.Window, "> 12: ") || !strings.Contains(got.Fragment.Window, "  7: ") {
		t.Errorf("expected a window around line 12, got %q", got.Fragment.Window)
	}
	if got.ToneMapping != "ACESFilmic" || got.OutputColorSpace != string(common.SRGBColorSpace) {
		t.Errorf("expected ACESFilmic with srgb, got %s and %s", got.ToneMapping, got.OutputColorSpace)
	}
	if got.Fragment.Prefix == "" {
		t.Error("expected the fragment prefix in the report")
	}

	calls := 0
	reg2 := NewRegistry(device, nil, WithOnShaderError(func(*Diagnostics) { calls++ }))
	p2 := mustAcquire(t, reg2, lambertParams(0), parameters.CacheKey(lambertParams(0)))
	p2.Uniforms()
	if calls != 0 || p2.Diagnostics() != nil {
		t.Error("expected no checks without the debug flag")
	}
}

func TestReadiness(t *testing.T) {
	device := backend.NewNullDevice()
	device.SetParallelCompile(true)
	reg := NewRegistry(device, nil)

	polled := lambertParams(0)
	polled.RendererExtensionParallelShaderCompile = true
	prog := mustAcquire(t, reg, polled, parameters.CacheKey(polled))
	if prog.IsReady() {
		t.Error("expected a pending program to be unready")
	}
	device.Complete(prog.Handle())
	if !prog.IsReady() {
		t.Error("expected the program to be ready after completion")
	}

	plain := lambertParams(1)
	other := mustAcquire(t, reg, plain, parameters.CacheKey(plain))
	if !other.IsReady() {
		t.Error("expected readiness to be assumed without the poll capability")
	}
}

func TestIndex0Attribute(t *testing.T) {
	p := lambertParams(0)
	if got := index0Attribute(p); got != "" {
		t.Errorf("expected no index-0 attribute, got %q", got)
	}
	p.MorphTargets = true
	if got := index0Attribute(p); got != "position" {
		t.Errorf("expected position with morph targets, got %q", got)
	}
	p.Index0AttributeName = "uv"
	if got := index0Attribute(p); got != "uv" {
		t.Errorf("expected the material choice, got %q", got)
	}
}

func TestDispose(t *testing.T) {
	device := backend.NewNullDevice()
	reg := NewRegistry(device, nil)
	for i := 0; i < 3; i++ {
		p := lambertParams(i)
		reg.Acquire(p, parameters.CacheKey(p))
		reg.Acquire(p, parameters.CacheKey(p))
	}
	reg.Dispose()
	if reg.Len() != 0 || device.Live() != 0 {
		t.Errorf("expected nothing live after dispose, got %d and %d", reg.Len(), device.Live())
	}
}

func TestUniformNameNormalisation(t *testing.T) {
	u := newUniforms([]backend.ActiveInfo{
		{Name: "boneMatrices[0]", Type: "mat4", Size: 4, Location: 3},
		{Name: "pointLights[1].color", Type: "vec3", Size: 1, Location: 4},
	})
	if u["boneMatrices"].Size != 4 || u["boneMatrices"].Location != 3 {
		t.Errorf("expected boneMatrices with size 4, got %+v", u["boneMatrices"])
	}
	if _, ok := u["pointLights[1].color"]; !ok {
		t.Error("expected struct member names to be kept")
	}
	a := newAttributes([]backend.ActiveInfo{{Name: "instanceMatrix", Type: "mat4", Location: 2}})
	if a["instanceMatrix"].LocationSize != 4 {
		t.Errorf("expected a location size of 4, got %d", a["instanceMatrix"].LocationSize)
	}
}

func TestErrorWindowBounds(t *testing.T) {
	src := "a\nb\nc"
	got := errorWindow(src, "ERROR: 0:2: bad")
	want := "  1: a\n> 2: b\n  3: c"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if errorWindow(src, "no line info") != "" {
		t.Error("expected no window without a line number")
	}
	for _, log := range []string{"ERROR: 0:40: bad", "ERROR: 0:0: bad", "ERROR: 0:4: bad"} {
		if got := errorWindow(src, log); got != "" {
			t.Errorf("expected no window for %q past the source, got %q", log, got)
		}
	}
}
