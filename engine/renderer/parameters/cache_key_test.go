package parameters

import (
	"reflect"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/material"
)

// nonKeyFields are record fields the fixed list and masks do not carry. They are either serialized
// separately (ids, defines, custom key), implied by a keyed field (map presence by its UV token) or do not
// change the generated program.
var nonKeyFields = map[string]bool{
	"ShaderID": true, "ShaderType": true, "ShaderName": true, "VertexShader": true, "FragmentShader": true,
	"Defines": true, "CustomVertexShaderID": true, "CustomFragmentShaderID": true, "IsShaderMaterial": true,
	"IsRawShaderMaterial": true, "CustomProgramCacheKey": true, "Index0AttributeName": true,
	"RendererExtensionParallelShaderCompile": true,

	"Map": true, "AOMap": true, "LightMap": true, "BumpMap": true, "NormalMap": true, "DisplacementMap": true,
	"EmissiveMap": true, "MetalnessMap": true, "RoughnessMap": true, "AnisotropyMap": true, "ClearcoatMap": true,
	"ClearcoatNormalMap": true, "ClearcoatRoughnessMap": true, "IridescenceMap": true,
	"IridescenceThicknessMap": true, "SheenColorMap": true, "SheenRoughnessMap": true, "SpecularMap": true,
	"SpecularColorMap": true, "SpecularIntensityMap": true, "TransmissionMap": true, "ThicknessMap": true,
	"AlphaMap": true,
}

// keyedFieldNames returns every field name named by the value list and both masks.
func keyedFieldNames() []string {
	var names []string
	for _, kv := range keyValues {
		names = append(names, kv.name)
	}
	for _, f := range capabilityFlags {
		names = append(names, f.name)
	}
	for _, f := range renderStateFlags {
		names = append(names, f.name)
	}
	return names
}

// flipField changes one field of p in place so that its serialized form differs.
func flipField(t *testing.T, p *Parameters, name string) {
	t.Helper()
	f := reflect.ValueOf(p).Elem().FieldByName(name)
	if !f.IsValid() {
		t.Fatalf("field %s does not exist", name)
	}
	switch f.Kind() {
	case reflect.Bool:
		f.SetBool(!f.Bool())
	case reflect.Int:
		f.SetInt(f.Int() + 1)
	case reflect.String:
		f.SetString(f.String() + "x")
	case reflect.Pointer:
		if f.IsNil() {
			v := 256
			f.Set(reflect.ValueOf(&v))
		} else {
			f.Set(reflect.Zero(f.Type()))
		}
	default:
		t.Fatalf("field %s has unsupported kind %s", name, f.Kind())
	}
}

func TestCacheKeyEqualForEqualRecords(t *testing.T) {
	d := newTestDeriver(testCaps())
	in := Input{Material: material.NewMaterial(material.TypePhong, material.WithMap(material.MapColor, material.NewTexture("a")))}
	a := d.Derive(in)
	b := d.Derive(in)
	if CacheKey(a) != CacheKey(b) {
		t.Errorf("expected equal keys, got %q and %q", CacheKey(a), CacheKey(b))
	}

	copied := *a
	copied.Defines = append([]material.Define(nil), a.Defines...)
	if CacheKey(&copied) != CacheKey(a) {
		t.Error("expected copied record to produce the same key")
	}
}

func TestCacheKeySingleFieldFlip(t *testing.T) {
	d := newTestDeriver(testCaps())
	base := d.Derive(Input{Material: material.NewMaterial(material.TypeStandard)})
	baseKey := CacheKey(base)

	seen := map[string]string{baseKey: "base"}
	for _, name := range keyedFieldNames() {
		p := *base
		flipField(t, &p, name)
		key := CacheKey(&p)
		if key == baseKey {
			t.Errorf("flipping %s did not change the key", name)
			continue
		}
		if other, ok := seen[key]; ok {
			t.Errorf("flipping %s collides with flipping %s", name, other)
		}
		seen[key] = name
	}
}

func TestKeySchemaCoversRecord(t *testing.T) {
	keyed := map[string]bool{}
	for _, name := range keyedFieldNames() {
		if keyed[name] {
			t.Errorf("field %s is keyed twice", name)
		}
		keyed[name] = true
	}
	rt := reflect.TypeOf(Parameters{})
	for i := 0; i < rt.NumField(); i++ {
		name := rt.Field(i).Name
		if !keyed[name] && !nonKeyFields[name] {
			t.Errorf("field %s is neither keyed nor listed as non-key", name)
		}
	}
	if len(capabilityFlags) > 32 || len(renderStateFlags) > 32 {
		t.Errorf("expected masks to fit 32 bits, got %d and %d", len(capabilityFlags), len(renderStateFlags))
	}
}

func TestCacheKeyDefinesAndCustomKey(t *testing.T) {
	d := newTestDeriver(testCaps())
	a := d.Derive(Input{Material: material.NewMaterial(material.TypeBasic, material.WithDefine("USE_A", "1"))})
	b := d.Derive(Input{Material: material.NewMaterial(material.TypeBasic, material.WithDefine("USE_A", "2"))})
	if CacheKey(a) == CacheKey(b) {
		t.Error("expected define values to change the key")
	}

	c := d.Derive(Input{Material: material.NewMaterial(material.TypeBasic,
		material.WithCustomProgramCacheKey(func() string { return "custom-v1" }))})
	if !strings.HasSuffix(CacheKey(c), ",custom-v1") {
		t.Errorf("expected custom key last, got %q", CacheKey(c))
	}
}

func TestCacheKeyRawShaderSkipsFixedList(t *testing.T) {
	d := newTestDeriver(testCaps())
	m := material.NewMaterial(material.TypeRawShader,
		material.WithShaders("void main() {}", "void main() { }"),
		material.WithDefine("A", "1"))
	p := d.Derive(Input{Material: m})
	if got, want := CacheKey(p), "1,2,A,1,"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	shader := material.NewMaterial(material.TypeShader, material.WithShaders("void main() {}", "void main() { }"))
	sp := d.Derive(Input{Material: shader})
	if !strings.HasPrefix(CacheKey(sp), "1,2,") {
		t.Errorf("expected shared stage ids, got %q", CacheKey(sp))
	}
	if strings.Count(CacheKey(sp), ",") <= len(keyValues) {
		t.Errorf("expected shader material key to carry the fixed list, got %q", CacheKey(sp))
	}
}
