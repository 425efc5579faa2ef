package parameters

import (
	"strconv"

	"github.com/Carmen-Shannon/oxy-progcache/common"
	"github.com/Carmen-Shannon/oxy-progcache/engine/light"
	"github.com/Carmen-Shannon/oxy-progcache/engine/model"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/stage_cache"
)

// Extension names the deriver queries.
const (
	ExtensionClipCullDistance = "WEBGL_clip_cull_distance"
	ExtensionMultiDraw        = "WEBGL_multi_draw"
	ExtensionParallelCompile  = "KHR_parallel_shader_compile"
)

// CapabilityOracle answers the device questions that influence program selection.
type CapabilityOracle interface {
	// MaxPrecision returns the highest supported precision not above the requested one.
	MaxPrecision(requested common.Precision) common.Precision

	// VertexTextures reports whether the vertex stage can sample textures.
	VertexTextures() bool

	// MaxTextureUnits returns the number of combined texture units, or 0 if unknown.
	MaxTextureUnits() int

	// HasExtension reports whether a named extension is available.
	HasExtension(name string) bool
}

// TemplateSource provides the raw stage sources of a built-in template.
type TemplateSource interface {
	Template(id string) (vertex, fragment string, ok bool)
}

// Settings are the renderer-wide toggles that influence program selection.
type Settings struct {
	ToneMapping            common.ToneMapping
	OutputColorSpace       common.ColorSpace
	ShadowMapEnabled       bool
	ShadowMapType          common.ShadowMapType
	Precision              common.Precision
	LegacyLights           bool
	LogarithmicDepthBuffer bool
	ReverseDepthBuffer     bool
}

// Fog describes scene fog. A nil *Fog means the scene has none.
type Fog struct {
	Exp2 bool
}

// Scene holds the scene-level inputs of a draw.
type Scene struct {
	Fog         *Fog
	Environment *material.Texture
}

// RenderTarget describes an offscreen target. A nil *RenderTarget is the display.
type RenderTarget struct {
	XR         bool
	ColorSpace common.ColorSpace
}

// Input is everything the deriver reads for one draw.
type Input struct {
	Material         material.Material
	Object           model.Object
	Lights           light.State
	Scene            Scene
	Target           *RenderTarget
	ClippingPlanes   int
	ClipIntersection int
	Settings         Settings
}

// deriver is the implementation of the Deriver interface.
type deriver struct {
	caps       CapabilityOracle
	stages     stage_cache.Cache
	templates  TemplateSource
	cubeMaps   EnvironmentResolver
	cubeUVMaps EnvironmentResolver
}

// Deriver inspects a draw configuration and produces its parameter record.
//
// Derive never fails. Unsupported inputs degrade to a logged default. For custom materials it registers the
// material's stage sources with the stage cache, so it must run on the goroutine that owns that cache.
type Deriver interface {
	// Derive builds the parameter record of one draw.
	//
	// Parameters:
	//   - in: the draw inputs; in.Material must not be nil
	//
	// Returns:
	//   - *Parameters: a fresh record
	Derive(in Input) *Parameters
}

var _ Deriver = &deriver{}

// NewDeriver creates a Deriver.
//
// Parameters:
//   - caps: the device capability oracle
//   - stages: the stage cache custom materials register with
//   - templates: the source of built-in template text
//   - options: variadic list of DeriverBuilderOption functions
//
// Returns:
//   - Deriver: a new Deriver instance
func NewDeriver(caps CapabilityOracle, stages stage_cache.Cache, templates TemplateSource, options ...DeriverBuilderOption) Deriver {
	d := &deriver{
		caps:       caps,
		stages:     stages,
		templates:  templates,
		cubeMaps:   NewCubeMaps(),
		cubeUVMaps: NewCubeUVMaps(),
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

// uvToken returns the attribute name a map samples its coordinates from.
func uvToken(t *material.Texture) string {
	if t == nil {
		return ""
	}
	if t.Channel == 0 {
		return "uv"
	}
	return "uv" + strconv.Itoa(t.Channel)
}

func (d *deriver) Derive(in Input) *Parameters {
	m := in.Material
	mt := m.Type()
	settings := in.Settings

	var geometry model.Geometry
	obj := in.Object
	if obj != nil {
		geometry = obj.Geometry()
	}
	if geometry == nil {
		geometry = model.NewGeometry()
	}

	tex := func(slot material.MapSlot) *material.Texture {
		if !mt.Supports(slot) {
			return nil
		}
		return m.Map(slot)
	}

	physical := mt == material.TypePhysical
	standard := mt == material.TypeStandard || physical

	var environment *material.Texture
	if standard {
		environment = in.Scene.Environment
	}
	envSource := common.Coalesce(tex(material.MapEnv), environment)
	var envMap *material.Texture
	if envSource != nil {
		if standard {
			envMap = d.cubeUVMaps.Get(envSource)
		} else {
			envMap = d.cubeMaps.Get(envSource)
		}
	}

	precision := common.Coalesce(settings.Precision, common.PrecisionHigh)
	if clamped := d.caps.MaxPrecision(precision); clamped != precision {
		common.WarnOnce("renderer precision:"+string(precision)+":"+string(clamped),
			"renderer precision not supported, using lower precision",
			"requested", string(precision), "using", string(clamped))
		precision = clamped
	}
	if requested := m.Precision(); requested != common.PrecisionDefault {
		precision = d.caps.MaxPrecision(requested)
		if precision != requested {
			common.WarnOnce("precision:"+string(requested)+":"+string(precision),
				"material precision not supported, using lower precision",
				"requested", string(requested), "using", string(precision))
		}
	}

	morph := geometry.MorphAttributes()
	morphCount := morph.Position
	if morphCount == 0 {
		morphCount = morph.Normal
	}
	if morphCount == 0 {
		morphCount = morph.Color
	}
	morphStride := 0
	for _, n := range []int{morph.Position, morph.Normal, morph.Color} {
		if n > 0 {
			morphStride++
		}
	}

	var (
		mapTex          = tex(material.MapColor)
		matcapTex       = tex(material.MapMatcap)
		aoTex           = tex(material.MapAO)
		lightTex        = tex(material.MapLight)
		bumpTex         = tex(material.MapBump)
		normalTex       = tex(material.MapNormal)
		displacementTex = tex(material.MapDisplacement)
		emissiveTex     = tex(material.MapEmissive)
		metalnessTex    = tex(material.MapMetalness)
		roughnessTex    = tex(material.MapRoughness)
		specularTex     = tex(material.MapSpecular)
		specColorTex    = tex(material.MapSpecularColor)
		specIntTex      = tex(material.MapSpecularIntensity)
		gradientTex     = tex(material.MapGradient)
		alphaTex        = tex(material.MapAlpha)
	)

	hasAnisotropy := physical && m.Anisotropy() > 0
	hasClearcoat := physical && m.Clearcoat() > 0
	hasDispersion := physical && m.Dispersion() > 0
	hasIridescence := physical && m.Iridescence() > 0
	hasSheen := physical && m.Sheen() > 0
	hasTransmission := physical && m.Transmission() > 0

	gated := func(enabled bool, slot material.MapSlot) *material.Texture {
		if !enabled {
			return nil
		}
		return tex(slot)
	}
	anisotropyTex := gated(hasAnisotropy, material.MapAnisotropy)
	clearcoatTex := gated(hasClearcoat, material.MapClearcoat)
	clearcoatNormalTex := gated(hasClearcoat, material.MapClearcoatNormal)
	clearcoatRoughTex := gated(hasClearcoat, material.MapClearcoatRoughness)
	iridescenceTex := gated(hasIridescence, material.MapIridescence)
	iridescenceThickTex := gated(hasIridescence, material.MapIridescenceThickness)
	sheenColorTex := gated(hasSheen, material.MapSheenColor)
	sheenRoughTex := gated(hasSheen, material.MapSheenRoughness)
	transmissionTex := gated(hasTransmission, material.MapTransmission)
	thicknessTex := gated(hasTransmission, material.MapThickness)

	instanced := obj != nil && obj.Instanced()
	batched := obj != nil && obj.Batched()

	toneMapping := common.NoToneMapping
	if m.ToneMapped() && (in.Target == nil || in.Target.XR) {
		toneMapping = settings.ToneMapping
	}

	outputColorSpace := settings.OutputColorSpace
	if in.Target != nil {
		if in.Target.XR {
			outputColorSpace = in.Target.ColorSpace
		} else {
			outputColorSpace = common.LinearSRGBColorSpace
		}
	}

	p := &Parameters{
		ShaderType:          mt.String(),
		ShaderName:          m.Name(),
		Defines:             m.Defines(),
		IsShaderMaterial:    mt == material.TypeShader,
		IsRawShaderMaterial: mt == material.TypeRawShader,
		GLSLVersion:         m.GLSLVersion(),
		Precision:           precision,

		Batching:               batched,
		BatchingColor:          batched && obj.BatchingColor(),
		Instancing:             instanced,
		InstancingColor:        instanced && obj.InstanceColor(),
		InstancingMorph:        instanced && obj.InstanceMorph(),
		SupportsVertexTextures: d.caps.VertexTextures(),
		OutputColorSpace:       outputColorSpace,
		AlphaToCoverage:        m.AlphaToCoverage(),

		Map:    mapTex != nil,
		Matcap: matcapTex != nil,
		EnvMap: envMap != nil,

		AOMap:                 aoTex != nil,
		LightMap:              lightTex != nil,
		BumpMap:               bumpTex != nil,
		NormalMap:             normalTex != nil,
		DisplacementMap:       displacementTex != nil,
		EmissiveMap:           emissiveTex != nil,
		NormalMapObjectSpace:  normalTex != nil && m.NormalMapType() == material.ObjectSpaceNormalMap,
		NormalMapTangentSpace: normalTex != nil && m.NormalMapType() == material.TangentSpaceNormalMap,
		MetalnessMap:          metalnessTex != nil,
		RoughnessMap:          roughnessTex != nil,

		Anisotropy:              hasAnisotropy,
		AnisotropyMap:           anisotropyTex != nil,
		Clearcoat:               hasClearcoat,
		ClearcoatMap:            clearcoatTex != nil,
		ClearcoatNormalMap:      clearcoatNormalTex != nil,
		ClearcoatRoughnessMap:   clearcoatRoughTex != nil,
		Dispersion:              hasDispersion,
		Iridescence:             hasIridescence,
		IridescenceMap:          iridescenceTex != nil,
		IridescenceThicknessMap: iridescenceThickTex != nil,
		Sheen:                   hasSheen,
		SheenColorMap:           sheenColorTex != nil,
		SheenRoughnessMap:       sheenRoughTex != nil,
		SpecularMap:             specularTex != nil,
		SpecularColorMap:        specColorTex != nil,
		SpecularIntensityMap:    specIntTex != nil,
		Transmission:            hasTransmission,
		TransmissionMap:         transmissionTex != nil,
		ThicknessMap:            thicknessTex != nil,
		GradientMap:             gradientTex != nil,

		Opaque:    !m.Transparent() && !m.AlphaToCoverage(),
		AlphaMap:  alphaTex != nil,
		AlphaTest: m.AlphaTest() > 0,
		AlphaHash: m.AlphaHash(),
		Combine:   m.Combine(),

		MapUV:                     uvToken(mapTex),
		AOMapUV:                   uvToken(aoTex),
		LightMapUV:                uvToken(lightTex),
		BumpMapUV:                 uvToken(bumpTex),
		NormalMapUV:               uvToken(normalTex),
		DisplacementMapUV:         uvToken(displacementTex),
		EmissiveMapUV:             uvToken(emissiveTex),
		MetalnessMapUV:            uvToken(metalnessTex),
		RoughnessMapUV:            uvToken(roughnessTex),
		AnisotropyMapUV:           uvToken(anisotropyTex),
		ClearcoatMapUV:            uvToken(clearcoatTex),
		ClearcoatNormalMapUV:      uvToken(clearcoatNormalTex),
		ClearcoatRoughnessMapUV:   uvToken(clearcoatRoughTex),
		IridescenceMapUV:          uvToken(iridescenceTex),
		IridescenceThicknessMapUV: uvToken(iridescenceThickTex),
		SheenColorMapUV:           uvToken(sheenColorTex),
		SheenRoughnessMapUV:       uvToken(sheenRoughTex),
		SpecularMapUV:             uvToken(specularTex),
		SpecularColorMapUV:        uvToken(specColorTex),
		SpecularIntensityMapUV:    uvToken(specIntTex),
		TransmissionMapUV:         uvToken(transmissionTex),
		ThicknessMapUV:            uvToken(thicknessTex),
		AlphaMapUV:                uvToken(alphaTex),

		VertexTangents: geometry.HasAttribute(model.AttributeTangent) && (normalTex != nil || hasAnisotropy),
		VertexColors:   m.VertexColors(),
		VertexAlphas:   m.VertexColors() && geometry.AttributeItemSize(model.AttributeColor) == 4,
		VertexUV1s:     geometry.HasAttribute(model.AttributeUV1),
		VertexUV2s:     geometry.HasAttribute(model.AttributeUV2),
		VertexUV3s:     geometry.HasAttribute(model.AttributeUV3),
		PointsUVs:      obj != nil && obj.Points() && geometry.HasAttribute(model.AttributeUV) && (mapTex != nil || alphaTex != nil),

		Fog:     in.Scene.Fog != nil,
		UseFog:  m.Fog(),
		FogExp2: in.Scene.Fog != nil && in.Scene.Fog.Exp2,

		FlatShading:            m.FlatShading() && !m.Wireframe(),
		SizeAttenuation:        m.SizeAttenuation(),
		LogarithmicDepthBuffer: settings.LogarithmicDepthBuffer,
		ReverseDepthBuffer:     settings.ReverseDepthBuffer,
		Skinning:               obj != nil && obj.Skinned(),

		MorphTargets:       morph.Position > 0,
		MorphNormals:       morph.Normal > 0,
		MorphColors:        morph.Color > 0,
		MorphTargetsCount:  morphCount,
		MorphTextureStride: morphStride,

		NumDirLights:                in.Lights.Directional,
		NumPointLights:              in.Lights.Point,
		NumSpotLights:               in.Lights.Spot,
		NumSpotLightMaps:            in.Lights.SpotMaps,
		NumRectAreaLights:           in.Lights.RectArea,
		NumHemiLights:               in.Lights.Hemisphere,
		NumDirLightShadows:          in.Lights.DirectionalShadows,
		NumPointLightShadows:        in.Lights.PointShadows,
		NumSpotLightShadows:         in.Lights.SpotShadows,
		NumSpotLightShadowsWithMaps: in.Lights.SpotShadowsWithMaps,
		NumLightProbes:              in.Lights.Probes,
		NumClippingPlanes:           in.ClippingPlanes,
		NumClipIntersection:         in.ClipIntersection,

		Dithering:        m.Dithering(),
		ShadowMapEnabled: settings.ShadowMapEnabled && in.Lights.Shadows() > 0,
		ShadowMapType:    settings.ShadowMapType,
		ToneMapping:      toneMapping,
		LegacyLights:     settings.LegacyLights,

		DecodeVideoTexture:         isSRGBVideo(mapTex),
		DecodeVideoTextureEmissive: isSRGBVideo(emissiveTex),
		PremultipliedAlpha:         m.PremultipliedAlpha(),
		DoubleSided:                m.Side() == common.DoubleSide,
		FlipSided:                  m.Side() == common.BackSide,
		UseDepthPacking:            mt == material.TypeDepth,

		Index0AttributeName:                    m.Index0AttributeName(),
		ExtensionClipCullDistance:              m.ClipCullDistance() && d.caps.HasExtension(ExtensionClipCullDistance),
		ExtensionMultiDraw:                     (m.MultiDraw() || batched) && d.caps.HasExtension(ExtensionMultiDraw),
		RendererExtensionParallelShaderCompile: d.caps.HasExtension(ExtensionParallelCompile),
		CustomProgramCacheKey:                  m.CustomProgramCacheKey(),
	}

	if p.UseDepthPacking {
		p.DepthPacking = m.DepthPacking()
	}
	if envMap != nil {
		p.EnvMapMode = envMap.Mapping
		if envMap.Mapping == common.CubeUVReflectionMapping {
			h := envMap.Height
			p.EnvMapCubeUVHeight = &h
		}
	}

	if id, ok := TemplateID(mt); ok {
		p.ShaderID = id
		if d.templates != nil {
			vs, fs, found := d.templates.Template(id)
			if !found {
				common.WarnOnce("template:"+id, "shader template missing from dictionary", "template", id)
			}
			p.VertexShader, p.FragmentShader = vs, fs
		}
	} else {
		p.VertexShader = m.VertexShader()
		p.FragmentShader = m.FragmentShader()
		d.stages.Update(m)
		p.CustomVertexShaderID = d.stages.VertexShaderID(m)
		p.CustomFragmentShaderID = d.stages.FragmentShaderID(m)
	}

	d.checkTextureUnits(p)
	return p
}

// isSRGBVideo reports whether a texture is a video decoded with the sRGB transfer.
func isSRGBVideo(t *material.Texture) bool {
	if t == nil || !t.Video {
		return false
	}
	return t.ColorSpace == common.SRGBColorSpace || t.ColorSpace == common.DisplayP3ColorSpace
}

// TextureUnits counts the samplers a program built from the record binds.
//
// Parameters:
//   - p: the parameter record
//
// Returns:
//   - int: the number of texture units
func TextureUnits(p *Parameters) int {
	maps := []bool{
		p.Map, p.Matcap, p.EnvMap, p.AOMap, p.LightMap, p.BumpMap, p.NormalMap, p.DisplacementMap && p.SupportsVertexTextures,
		p.EmissiveMap, p.MetalnessMap, p.RoughnessMap, p.AnisotropyMap, p.ClearcoatMap, p.ClearcoatNormalMap,
		p.ClearcoatRoughnessMap, p.IridescenceMap, p.IridescenceThicknessMap, p.SheenColorMap, p.SheenRoughnessMap,
		p.SpecularMap, p.SpecularColorMap, p.SpecularIntensityMap, p.TransmissionMap, p.ThicknessMap, p.GradientMap,
		p.AlphaMap, p.Transmission, p.MorphTargetsCount > 0, p.Skinning, p.InstancingMorph,
	}
	n := 0
	for _, used := range maps {
		n += common.BoolToInt(used)
	}
	if p.Batching {
		n += 2 + common.BoolToInt(p.BatchingColor)
	}
	if p.ShadowMapEnabled {
		n += p.NumDirLightShadows + p.NumPointLightShadows + p.NumSpotLightShadows
	}
	n += p.NumSpotLightMaps
	return n
}

// checkTextureUnits warns once per program shape when the record binds more samplers than the device has.
func (d *deriver) checkTextureUnits(p *Parameters) {
	limit := d.caps.MaxTextureUnits()
	if limit <= 0 {
		return
	}
	if used := TextureUnits(p); used > limit {
		common.WarnOnce("texture-units:"+strconv.Itoa(used), "texture units exceed device limit",
			"used", used, "limit", limit, "material", p.ShaderName)
	}
}
