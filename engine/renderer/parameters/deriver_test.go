package parameters

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-progcache/common"
	"github.com/Carmen-Shannon/oxy-progcache/engine/light"
	"github.com/Carmen-Shannon/oxy-progcache/engine/model"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/stage_cache"
)

type fakeCaps struct {
	max            common.Precision
	vertexTextures bool
	units          int
	extensions     map[string]bool
}

func (c fakeCaps) MaxPrecision(requested common.Precision) common.Precision {
	if requested.Rank() > c.max.Rank() {
		return c.max
	}
	return requested
}

func (c fakeCaps) VertexTextures() bool          { return c.vertexTextures }
func (c fakeCaps) MaxTextureUnits() int          { return c.units }
func (c fakeCaps) HasExtension(name string) bool { return c.extensions[name] }

type fakeTemplates struct{}

func (fakeTemplates) Template(id string) (string, string, bool) {
	return "// " + id + " vertex", "// " + id + " fragment", true
}

func testCaps() fakeCaps {
	return fakeCaps{max: common.PrecisionHigh, vertexTextures: true, units: 16}
}

func newTestDeriver(caps fakeCaps) Deriver {
	return NewDeriver(caps, stage_cache.NewCache(), fakeTemplates{})
}

// keyToken returns the serialized value of a fixed-list field inside a built-in material key.
func keyToken(t *testing.T, p *Parameters, name string) string {
	t.Helper()
	tokens := strings.Split(CacheKey(p), keyDelimiter)
	offset := 1 + 2*len(p.Defines)
	for i, kv := range keyValues {
		if kv.name == name {
			return tokens[offset+i]
		}
	}
	t.Fatalf("field %s is not in the value list", name)
	return ""
}

func TestScenarioUntexturedUnlit(t *testing.T) {
	d := newTestDeriver(testCaps())
	p := d.Derive(Input{Material: material.NewMaterial(material.TypeBasic)})

	if p.ShaderID != TemplateBasic {
		t.Errorf("expected template %s, got %s", TemplateBasic, p.ShaderID)
	}
	maps := []bool{p.Map, p.Matcap, p.EnvMap, p.AOMap, p.LightMap, p.BumpMap, p.NormalMap, p.DisplacementMap,
		p.EmissiveMap, p.SpecularMap, p.AlphaMap, p.GradientMap}
	for i, on := range maps {
		if on {
			t.Errorf("expected map flag %d to be false", i)
		}
	}
	if p.NumDirLights+p.NumPointLights+p.NumSpotLights+p.NumHemiLights+p.NumRectAreaLights+p.NumLightProbes != 0 {
		t.Errorf("expected zero light counts, got %+v", p)
	}
	if p.ShadowMapEnabled {
		t.Error("expected shadow maps disabled without shadow casting lights")
	}

	if !strings.HasPrefix(CacheKey(p), TemplateBasic+",") {
		t.Errorf("expected key to start with the template id, got %q", CacheKey(p))
	}
	for _, name := range []string{"NumDirLights", "NumPointLights", "NumSpotLights", "NumSpotLightMaps", "NumHemiLights",
		"NumRectAreaLights", "NumDirLightShadows", "NumPointLightShadows", "NumSpotLightShadows",
		"NumSpotLightShadowsWithMaps", "NumLightProbes"} {
		if got := keyToken(t, p, name); got != "0" {
			t.Errorf("expected %s token 0, got %q", name, got)
		}
	}
}

func TestDirectionalLightCountChangesKey(t *testing.T) {
	d := newTestDeriver(testCaps())
	m := material.NewMaterial(material.TypeLambert)
	two := d.Derive(Input{Material: m, Lights: light.State{Directional: 2}})
	three := d.Derive(Input{Material: m, Lights: light.State{Directional: 3}})
	if CacheKey(two) == CacheKey(three) {
		t.Error("expected light count to change the key")
	}
	if got := keyToken(t, three, "NumDirLights"); got != "3" {
		t.Errorf("expected NumDirLights token 3, got %q", got)
	}
}

func TestMorphCountAndStride(t *testing.T) {
	tests := []struct {
		name   string
		morph  model.MorphAttributes
		count  int
		stride int
	}{
		{"none", model.MorphAttributes{}, 0, 0},
		{"position", model.MorphAttributes{Position: 4}, 4, 1},
		{"position+normal", model.MorphAttributes{Position: 4, Normal: 4}, 4, 2},
		{"all", model.MorphAttributes{Position: 2, Normal: 2, Color: 2}, 2, 3},
		{"color only", model.MorphAttributes{Color: 5}, 5, 1},
		{"normal+color", model.MorphAttributes{Normal: 3, Color: 3}, 3, 2},
	}
	d := newTestDeriver(testCaps())
	for _, tt := range tests {
		g := model.NewGeometry(model.WithMorphTargets(tt.morph.Position, tt.morph.Normal, tt.morph.Color))
		p := d.Derive(Input{Material: material.NewMaterial(material.TypeBasic), Object: model.NewObject(g)})
		if p.MorphTargetsCount != tt.count {
			t.Errorf("%s: expected count %d, got %d", tt.name, tt.count, p.MorphTargetsCount)
		}
		if p.MorphTextureStride != tt.stride {
			t.Errorf("%s: expected stride %d, got %d", tt.name, tt.stride, p.MorphTextureStride)
		}
	}
}

func TestUVTokensPerMap(t *testing.T) {
	normal := material.NewTexture("normal")
	normal.Channel = 2
	m := material.NewMaterial(material.TypeStandard,
		material.WithMap(material.MapColor, material.NewTexture("albedo")),
		material.WithMap(material.MapNormal, normal))
	p := newTestDeriver(testCaps()).Derive(Input{Material: m})

	if p.MapUV != "uv" {
		t.Errorf("expected map uv token \"uv\", got %q", p.MapUV)
	}
	if p.NormalMapUV != "uv2" {
		t.Errorf("expected normal map uv token \"uv2\", got %q", p.NormalMapUV)
	}
	if p.AOMapUV != "" {
		t.Errorf("expected absent ao map token, got %q", p.AOMapUV)
	}
	if !p.NormalMapTangentSpace || p.NormalMapObjectSpace {
		t.Error("expected tangent space normal map")
	}
}

func TestUnsupportedSlotIsIgnored(t *testing.T) {
	m := material.NewMaterial(material.TypeBasic, material.WithMap(material.MapNormal, material.NewTexture("n")))
	p := newTestDeriver(testCaps()).Derive(Input{Material: m})
	if p.NormalMap || p.NormalMapUV != "" {
		t.Error("expected basic material to ignore a normal map")
	}
}

func TestCompoundFeatureGating(t *testing.T) {
	d := newTestDeriver(testCaps())
	ccNormal := material.WithMap(material.MapClearcoatNormal, material.NewTexture("cc"))

	off := d.Derive(Input{Material: material.NewMaterial(material.TypePhysical, ccNormal)})
	if off.Clearcoat || off.ClearcoatNormalMap {
		t.Error("expected clearcoat normal map off while clearcoat is 0")
	}

	on := d.Derive(Input{Material: material.NewMaterial(material.TypePhysical, ccNormal, material.WithClearcoat(1))})
	if !on.Clearcoat || !on.ClearcoatNormalMap || on.ClearcoatNormalMapUV != "uv" {
		t.Errorf("expected clearcoat normal map on, got clearcoat=%v map=%v", on.Clearcoat, on.ClearcoatNormalMap)
	}

	standard := d.Derive(Input{Material: material.NewMaterial(material.TypeStandard, material.WithClearcoat(1))})
	if standard.Clearcoat {
		t.Error("expected clearcoat to require the physical type")
	}

	sheen := d.Derive(Input{Material: material.NewMaterial(material.TypePhysical, material.WithSheen(0.5),
		material.WithMap(material.MapSheenColor, material.NewTexture("s")))})
	if !sheen.Sheen || !sheen.SheenColorMap || sheen.SheenRoughnessMap {
		t.Error("expected only the sheen color map to be enabled")
	}
}

func TestToneMappingResolution(t *testing.T) {
	d := newTestDeriver(testCaps())
	settings := Settings{ToneMapping: common.ACESFilmicToneMapping, OutputColorSpace: common.SRGBColorSpace}
	mapped := material.NewMaterial(material.TypeStandard)
	unmapped := material.NewMaterial(material.TypeStandard, material.WithToneMapped(false))

	tests := []struct {
		name   string
		m      material.Material
		target *RenderTarget
		want   common.ToneMapping
	}{
		{"display", mapped, nil, common.ACESFilmicToneMapping},
		{"xr", mapped, &RenderTarget{XR: true}, common.ACESFilmicToneMapping},
		{"offscreen", mapped, &RenderTarget{}, common.NoToneMapping},
		{"opted out", unmapped, nil, common.NoToneMapping},
	}
	for _, tt := range tests {
		p := d.Derive(Input{Material: tt.m, Target: tt.target, Settings: settings})
		if p.ToneMapping != tt.want {
			t.Errorf("%s: expected tone mapping %d, got %d", tt.name, tt.want, p.ToneMapping)
		}
	}
}

func TestOutputColorSpacePerTarget(t *testing.T) {
	d := newTestDeriver(testCaps())
	m := material.NewMaterial(material.TypeBasic)
	settings := Settings{OutputColorSpace: common.SRGBColorSpace}

	if p := d.Derive(Input{Material: m, Settings: settings}); p.OutputColorSpace != common.SRGBColorSpace {
		t.Errorf("expected display color space srgb, got %q", p.OutputColorSpace)
	}
	xr := &RenderTarget{XR: true, ColorSpace: common.DisplayP3ColorSpace}
	if p := d.Derive(Input{Material: m, Target: xr, Settings: settings}); p.OutputColorSpace != common.DisplayP3ColorSpace {
		t.Errorf("expected xr texture color space, got %q", p.OutputColorSpace)
	}
	if p := d.Derive(Input{Material: m, Target: &RenderTarget{}, Settings: settings}); p.OutputColorSpace != common.LinearSRGBColorSpace {
		t.Errorf("expected linear srgb offscreen, got %q", p.OutputColorSpace)
	}
}

func TestPrecisionDowngradeWarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	common.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer common.SetLogger(nil)

	d := newTestDeriver(fakeCaps{max: common.PrecisionMedium})
	m := material.NewMaterial(material.TypeBasic, material.WithPrecision(common.PrecisionHigh))
	p := d.Derive(Input{Material: m})
	d.Derive(Input{Material: m})

	if p.Precision != common.PrecisionMedium {
		t.Errorf("expected mediump, got %q", p.Precision)
	}
	if n := strings.Count(buf.String(), "material precision not supported"); n != 1 {
		t.Errorf("expected 1 warning, got %d", n)
	}

	def := d.Derive(Input{Material: material.NewMaterial(material.TypeBasic)})
	if def.Precision != common.PrecisionMedium {
		t.Errorf("expected the renderer default clamped to mediump, got %q", def.Precision)
	}
}

func TestRendererPrecisionClamped(t *testing.T) {
	var buf bytes.Buffer
	common.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer common.SetLogger(nil)

	tests := []struct {
		name     string
		caps     fakeCaps
		settings Settings
		want     common.Precision
	}{
		{"highp on a mediump device", fakeCaps{max: common.PrecisionMedium}, Settings{Precision: common.PrecisionHigh}, common.PrecisionMedium},
		{"unset on a lowp device", fakeCaps{max: common.PrecisionLow}, Settings{}, common.PrecisionLow},
		{"mediump on a highp device", testCaps(), Settings{Precision: common.PrecisionMedium}, common.PrecisionMedium},
		{"lowp on a mediump device", fakeCaps{max: common.PrecisionMedium}, Settings{Precision: common.PrecisionLow}, common.PrecisionLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestDeriver(tt.caps).Derive(Input{Material: material.NewMaterial(material.TypeLambert), Settings: tt.settings})
			if p.Precision != tt.want {
				t.Errorf("expected %q, got %q", tt.want, p.Precision)
			}
		})
	}
	if !strings.Contains(buf.String(), "renderer precision not supported") {
		t.Error("expected a warning for the clamped renderer precision")
	}
}

func TestEnvironmentResolution(t *testing.T) {
	d := newTestDeriver(testCaps())
	cube := &material.Texture{Name: "sky", Mapping: common.CubeReflectionMapping, Height: 256}

	std := d.Derive(Input{Material: material.NewMaterial(material.TypeStandard), Scene: Scene{Environment: cube}})
	if !std.EnvMap || std.EnvMapMode != common.CubeUVReflectionMapping {
		t.Fatalf("expected cubeUV env map, got env=%v mode=%d", std.EnvMap, std.EnvMapMode)
	}
	if std.EnvMapCubeUVHeight == nil || *std.EnvMapCubeUVHeight != 1024 {
		t.Errorf("expected cubeUV height 1024, got %v", std.EnvMapCubeUVHeight)
	}

	basic := d.Derive(Input{Material: material.NewMaterial(material.TypeBasic), Scene: Scene{Environment: cube}})
	if basic.EnvMap {
		t.Error("expected scene environment to apply only to standard materials")
	}

	equirect := &material.Texture{Mapping: common.EquirectangularRefractionMapping, Height: 512}
	phong := d.Derive(Input{Material: material.NewMaterial(material.TypePhong, material.WithMap(material.MapEnv, equirect))})
	if phong.EnvMapMode != common.CubeRefractionMapping || phong.EnvMapCubeUVHeight != nil {
		t.Errorf("expected cube refraction without cubeUV height, got mode=%d", phong.EnvMapMode)
	}

	pending := &material.Texture{Mapping: common.EquirectangularReflectionMapping}
	notReady := d.Derive(Input{Material: material.NewMaterial(material.TypePhong, material.WithMap(material.MapEnv, pending))})
	if notReady.EnvMap {
		t.Error("expected env map off while the resolver is not ready")
	}
}

func TestObjectAndGeometryFlags(t *testing.T) {
	g := model.NewGeometry(
		model.WithAttribute(model.AttributeTangent, 4),
		model.WithAttribute(model.AttributeColor, 4),
		model.WithAttribute(model.AttributeUV, 2),
		model.WithAttribute(model.AttributeUV1, 2),
	)
	obj := model.NewObject(g, model.WithInstancing(true, false), model.WithSkinning())
	m := material.NewMaterial(material.TypeStandard,
		material.WithVertexColors(true),
		material.WithMap(material.MapNormal, material.NewTexture("n")))
	p := newTestDeriver(testCaps()).Derive(Input{Material: m, Object: obj})

	if !p.Instancing || !p.InstancingColor || p.InstancingMorph {
		t.Error("expected instancing with instance colors only")
	}
	if !p.Skinning {
		t.Error("expected skinning")
	}
	if !p.VertexTangents || !p.VertexAlphas || !p.VertexUV1s || p.VertexUV2s {
		t.Errorf("expected tangents, vertex alphas and uv1, got %+v", p)
	}
	if p.Batching || p.PointsUVs {
		t.Error("expected no batching and no point uvs")
	}
}

func TestShadowMapRequiresShadows(t *testing.T) {
	d := newTestDeriver(testCaps())
	m := material.NewMaterial(material.TypeLambert)
	settings := Settings{ShadowMapEnabled: true, ShadowMapType: common.PCFSoftShadowMap}

	if p := d.Derive(Input{Material: m, Settings: settings, Lights: light.State{Directional: 1}}); p.ShadowMapEnabled {
		t.Error("expected shadow maps off without shadow casters")
	}
	p := d.Derive(Input{Material: m, Settings: settings, Lights: light.State{Directional: 1, DirectionalShadows: 1}})
	if !p.ShadowMapEnabled || p.ShadowMapType != common.PCFSoftShadowMap {
		t.Error("expected pcf soft shadow maps")
	}
}

func TestSpotLightCoordsFromSummary(t *testing.T) {
	lights := light.Summarize([]light.Light{
		light.NewLight(light.LightTypeSpot, light.WithCastsShadows(true), light.WithMap(true)),
		light.NewLight(light.LightTypeSpot, light.WithMap(true)),
		light.NewLight(light.LightTypeSpot, light.WithCastsShadows(true)),
	})
	p := newTestDeriver(testCaps()).Derive(Input{Material: material.NewMaterial(material.TypeLambert), Lights: lights})
	if p.NumSpotLights != 3 {
		t.Errorf("expected 3 spot lights, got %d", p.NumSpotLights)
	}
	if p.NumSpotLightCoords() != 3 {
		t.Errorf("expected 3 spot light coords, got %d", p.NumSpotLightCoords())
	}
}

func TestTextureUnitBudgetWarns(t *testing.T) {
	var buf bytes.Buffer
	common.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer common.SetLogger(nil)

	caps := testCaps()
	caps.units = 2
	m := material.NewMaterial(material.TypeStandard,
		material.WithMap(material.MapColor, material.NewTexture("a")),
		material.WithMap(material.MapNormal, material.NewTexture("b")),
		material.WithMap(material.MapRoughness, material.NewTexture("c")))
	p := newTestDeriver(caps).Derive(Input{Material: m})

	if TextureUnits(p) != 3 {
		t.Errorf("expected 3 texture units, got %d", TextureUnits(p))
	}
	if !strings.Contains(buf.String(), "texture units exceed device limit") {
		t.Error("expected a texture unit warning")
	}
}

func TestCustomMaterialUsesStageIDs(t *testing.T) {
	stages := stage_cache.NewCache()
	d := NewDeriver(testCaps(), stages, fakeTemplates{})
	m := material.NewMaterial(material.TypeShader, material.WithShaders("vs", "fs"))
	p := d.Derive(Input{Material: m})

	if p.ShaderID != "" || !p.IsCustom() {
		t.Errorf("expected custom record, got shader id %q", p.ShaderID)
	}
	if p.CustomVertexShaderID != 1 || p.CustomFragmentShaderID != 2 {
		t.Errorf("expected stage ids 1 and 2, got %d and %d", p.CustomVertexShaderID, p.CustomFragmentShaderID)
	}
	if p.VertexShader != "vs" || p.FragmentShader != "fs" {
		t.Error("expected material sources in the record")
	}
	if stages.UsedTimes("vs") != 1 {
		t.Errorf("expected the material to be registered once, got %d", stages.UsedTimes("vs"))
	}
}

func TestPhysicalDefines(t *testing.T) {
	p := newTestDeriver(testCaps()).Derive(Input{Material: material.NewMaterial(material.TypePhysical)})
	if p.ShaderID != TemplatePhysical {
		t.Errorf("expected physical template, got %s", p.ShaderID)
	}
	if len(p.Defines) != 2 || p.Defines[1].Name != "PHYSICAL" {
		t.Errorf("expected STANDARD and PHYSICAL defines, got %+v", p.Defines)
	}
	if !strings.Contains(p.VertexShader, "physical vertex") {
		t.Errorf("expected physical template source, got %q", p.VertexShader)
	}
}

func TestCubeUVHeight(t *testing.T) {
	tests := map[int]int{1: 4, 16: 64, 256: 1024, 300: 1024, 512: 2048}
	for size, want := range tests {
		if got := CubeUVHeight(size); got != want {
			t.Errorf("cube size %d: expected %d, got %d", size, want, got)
		}
	}
}
