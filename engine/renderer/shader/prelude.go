// prelude.go builds the define blocks placed ahead of each stage body. The vertex and fragment preludes
// turn every feature flag of the parameter record into a #define, declare the built-in uniforms and
// attributes, and in the fragment stage emit the tone mapping and output encoding functions.
package shader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-progcache/common"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/parameters"
)

// block accumulates prelude lines. Empty lines are dropped.
type block []string

func (b *block) add(lines ...string) {
	for _, l := range lines {
		if l != "" {
			*b = append(*b, l)
		}
	}
}

func (b *block) when(cond bool, lines ...string) {
	if cond {
		b.add(lines...)
	}
}

func (b block) join() string {
	return strings.Join(b, "\n")
}

// define renders one #define line. An empty value yields a bare define.
func define(name, value string) string {
	if value == "" {
		return "#define " + name
	}
	return "#define " + name + " " + value
}

// uvDefine renders the "<MAP>_UV <token>" define for a map that is present.
func uvDefine(name, token string) string {
	if token == "" {
		return ""
	}
	return define(name, token)
}

// customDefines renders the material defines in declaration order.
func customDefines(defines []material.Define) string {
	var b block
	for _, d := range defines {
		b.add(define(d.Name, d.Value))
	}
	return b.join()
}

// precisionBlock declares the default precision of every numeric and sampler type.
func precisionBlock(p common.Precision) string {
	var b block
	p = common.Coalesce(p, common.PrecisionHigh)
	q := string(p)
	b.add(
		"precision "+q+" float;",
		"precision "+q+" int;",
		"precision "+q+" sampler2D;",
		"precision "+q+" samplerCube;",
		"precision "+q+" sampler3D;",
		"precision "+q+" sampler2DArray;",
		"precision "+q+" sampler2DShadow;",
		"precision "+q+" samplerCubeShadow;",
		"precision "+q+" sampler2DArrayShadow;",
		"precision "+q+" isampler2D;",
		"precision "+q+" isampler3D;",
		"precision "+q+" isamplerCube;",
		"precision "+q+" isampler2DArray;",
		"precision "+q+" usampler2D;",
		"precision "+q+" usampler3D;",
		"precision "+q+" usamplerCube;",
		"precision "+q+" usampler2DArray;",
	)
	switch p {
	case common.PrecisionHigh:
		b.add("#define HIGH_PRECISION")
	case common.PrecisionMedium:
		b.add("#define MEDIUM_PRECISION")
	case common.PrecisionLow:
		b.add("#define LOW_PRECISION")
	}
	return b.join()
}

func shadowMapTypeDefine(t common.ShadowMapType) string {
	switch t {
	case common.PCFShadowMap:
		return "SHADOWMAP_TYPE_PCF"
	case common.PCFSoftShadowMap:
		return "SHADOWMAP_TYPE_PCF_SOFT"
	case common.VSMShadowMap:
		return "SHADOWMAP_TYPE_VSM"
	default:
		return "SHADOWMAP_TYPE_BASIC"
	}
}

func envMapTypeDefine(p *parameters.Parameters) string {
	if !p.EnvMap {
		return "ENVMAP_TYPE_CUBE"
	}
	if p.EnvMapMode == common.CubeUVReflectionMapping {
		return "ENVMAP_TYPE_CUBE_UV"
	}
	return "ENVMAP_TYPE_CUBE"
}

func envMapModeDefine(p *parameters.Parameters) string {
	if p.EnvMap && p.EnvMapMode.IsRefraction() {
		return "ENVMAP_MODE_REFRACTION"
	}
	return "ENVMAP_MODE_REFLECTION"
}

func envMapBlendingDefine(p *parameters.Parameters) string {
	if !p.EnvMap {
		return "ENVMAP_BLENDING_NONE"
	}
	switch p.Combine {
	case common.MixOperation:
		return "ENVMAP_BLENDING_MIX"
	case common.AddOperation:
		return "ENVMAP_BLENDING_ADD"
	default:
		return "ENVMAP_BLENDING_MULTIPLY"
	}
}

// cubeUVDefines emits the layout constants of a cubeUV environment map, or nothing without one.
func cubeUVDefines(p *parameters.Parameters) []string {
	if p.EnvMapCubeUVHeight == nil || *p.EnvMapCubeUVHeight <= 0 {
		return nil
	}
	s := newCubeUVSize(*p.EnvMapCubeUVHeight)
	return []string{
		define("CUBEUV_TEXEL_WIDTH", formatFloat(s.texelWidth)),
		define("CUBEUV_TEXEL_HEIGHT", formatFloat(s.texelHeight)),
		define("CUBEUV_MAX_MIP", formatFloat(s.maxMip)),
	}
}

func lightProbeDefine(p *parameters.Parameters) string {
	if p.NumLightProbes > 0 {
		return define("USE_LIGHT_PROBES", "")
	}
	return ""
}

func vertexExtensions(p *parameters.Parameters) string {
	var b block
	b.when(p.ExtensionClipCullDistance, "#extension GL_ANGLE_clip_cull_distance : require")
	b.when(p.ExtensionMultiDraw, "#extension GL_ANGLE_multi_draw : require")
	return b.join()
}

// rawPrefix is the prelude of a raw shader material: identification and custom defines only.
func rawPrefix(p *parameters.Parameters) string {
	var b block
	b.add(
		define("SHADER_TYPE", p.ShaderType),
		define("SHADER_NAME", p.ShaderName),
		customDefines(p.Defines),
	)
	s := b.join()
	if s != "" {
		s += "\n"
	}
	return s
}

// vertexPrefix builds the complete vertex prelude of a non-raw program.
func vertexPrefix(p *parameters.Parameters) string {
	var b block
	b.add(
		precisionBlock(p.Precision),
		define("SHADER_TYPE", p.ShaderType),
		define("SHADER_NAME", p.ShaderName),
		customDefines(p.Defines),
	)
	b.when(p.SupportsVertexTextures, "#define VERTEX_TEXTURES")
	b.when(p.ExtensionClipCullDistance, "#define USE_CLIP_DISTANCE")
	b.when(p.Batching, "#define USE_BATCHING")
	b.when(p.BatchingColor, "#define USE_BATCHING_COLOR")
	b.when(p.Instancing, "#define USE_INSTANCING")
	b.when(p.InstancingColor, "#define USE_INSTANCING_COLOR")
	b.when(p.InstancingMorph, "#define USE_INSTANCING_MORPH")
	b.when(p.UseFog && p.Fog, "#define USE_FOG")
	b.when(p.UseFog && p.FogExp2, "#define FOG_EXP2")

	b.when(p.Map, "#define USE_MAP")
	if p.EnvMap {
		b.add("#define USE_ENVMAP", "#define "+envMapModeDefine(p))
	}
	b.when(p.LightMap, "#define USE_LIGHTMAP")
	b.when(p.AOMap, "#define USE_AOMAP")
	b.when(p.BumpMap, "#define USE_BUMPMAP")
	b.when(p.NormalMap, "#define USE_NORMALMAP")
	b.when(p.NormalMapObjectSpace, "#define USE_NORMALMAP_OBJECTSPACE")
	b.when(p.NormalMapTangentSpace, "#define USE_NORMALMAP_TANGENTSPACE")
	b.when(p.DisplacementMap, "#define USE_DISPLACEMENTMAP")
	b.when(p.EmissiveMap, "#define USE_EMISSIVEMAP")

	b.when(p.Anisotropy, "#define USE_ANISOTROPY")
	b.when(p.AnisotropyMap, "#define USE_ANISOTROPYMAP")
	b.when(p.ClearcoatMap, "#define USE_CLEARCOATMAP")
	b.when(p.ClearcoatRoughnessMap, "#define USE_CLEARCOAT_ROUGHNESSMAP")
	b.when(p.ClearcoatNormalMap, "#define USE_CLEARCOAT_NORMALMAP")
	b.when(p.IridescenceMap, "#define USE_IRIDESCENCEMAP")
	b.when(p.IridescenceThicknessMap, "#define USE_IRIDESCENCE_THICKNESSMAP")
	b.when(p.SpecularMap, "#define USE_SPECULARMAP")
	b.when(p.SpecularColorMap, "#define USE_SPECULAR_COLORMAP")
	b.when(p.SpecularIntensityMap, "#define USE_SPECULAR_INTENSITYMAP")
	b.when(p.RoughnessMap, "#define USE_ROUGHNESSMAP")
	b.when(p.MetalnessMap, "#define USE_METALNESSMAP")
	b.when(p.AlphaMap, "#define USE_ALPHAMAP")
	b.when(p.AlphaHash, "#define USE_ALPHAHASH")
	b.when(p.Transmission, "#define USE_TRANSMISSION")
	b.when(p.TransmissionMap, "#define USE_TRANSMISSIONMAP")
	b.when(p.ThicknessMap, "#define USE_THICKNESSMAP")
	b.when(p.SheenColorMap, "#define USE_SHEEN_COLORMAP")
	b.when(p.SheenRoughnessMap, "#define USE_SHEEN_ROUGHNESSMAP")

	b.add(
		uvDefine("MAP_UV", p.MapUV),
		uvDefine("ALPHAMAP_UV", p.AlphaMapUV),
		uvDefine("LIGHTMAP_UV", p.LightMapUV),
		uvDefine("AOMAP_UV", p.AOMapUV),
		uvDefine("EMISSIVEMAP_UV", p.EmissiveMapUV),
		uvDefine("BUMPMAP_UV", p.BumpMapUV),
		uvDefine("NORMALMAP_UV", p.NormalMapUV),
		uvDefine("DISPLACEMENTMAP_UV", p.DisplacementMapUV),
		uvDefine("METALNESSMAP_UV", p.MetalnessMapUV),
		uvDefine("ROUGHNESSMAP_UV", p.RoughnessMapUV),
		uvDefine("ANISOTROPYMAP_UV", p.AnisotropyMapUV),
		uvDefine("CLEARCOATMAP_UV", p.ClearcoatMapUV),
		uvDefine("CLEARCOAT_NORMALMAP_UV", p.ClearcoatNormalMapUV),
		uvDefine("CLEARCOAT_ROUGHNESSMAP_UV", p.ClearcoatRoughnessMapUV),
		uvDefine("IRIDESCENCEMAP_UV", p.IridescenceMapUV),
		uvDefine("IRIDESCENCE_THICKNESSMAP_UV", p.IridescenceThicknessMapUV),
		uvDefine("SHEEN_COLORMAP_UV", p.SheenColorMapUV),
		uvDefine("SHEEN_ROUGHNESSMAP_UV", p.SheenRoughnessMapUV),
		uvDefine("SPECULARMAP_UV", p.SpecularMapUV),
		uvDefine("SPECULAR_COLORMAP_UV", p.SpecularColorMapUV),
		uvDefine("SPECULAR_INTENSITYMAP_UV", p.SpecularIntensityMapUV),
		uvDefine("TRANSMISSIONMAP_UV", p.TransmissionMapUV),
		uvDefine("THICKNESSMAP_UV", p.ThicknessMapUV),
	)

	b.when(p.VertexTangents && !p.FlatShading, "#define USE_TANGENT")
	b.when(p.VertexColors, "#define USE_COLOR")
	b.when(p.VertexAlphas, "#define USE_COLOR_ALPHA")
	b.when(p.VertexUV1s, "#define USE_UV1")
	b.when(p.VertexUV2s, "#define USE_UV2")
	b.when(p.VertexUV3s, "#define USE_UV3")
	b.when(p.PointsUVs, "#define USE_POINTS_UV")
	b.when(p.FlatShading, "#define FLAT_SHADED")
	b.when(p.Skinning, "#define USE_SKINNING")
	b.when(p.MorphTargets, "#define USE_MORPHTARGETS")
	b.when(p.MorphNormals && !p.FlatShading, "#define USE_MORPHNORMALS")
	b.when(p.MorphColors, "#define USE_MORPHCOLORS")
	if p.MorphTargetsCount > 0 {
		b.add(
			define("MORPHTARGETS_TEXTURE_STRIDE", strconv.Itoa(p.MorphTextureStride)),
			define("MORPHTARGETS_COUNT", strconv.Itoa(p.MorphTargetsCount)),
		)
	}
	b.when(p.DoubleSided, "#define DOUBLE_SIDED")
	b.when(p.FlipSided, "#define FLIP_SIDED")
	if p.ShadowMapEnabled {
		b.add("#define USE_SHADOWMAP", "#define "+shadowMapTypeDefine(p.ShadowMapType))
	}
	b.when(p.SizeAttenuation, "#define USE_SIZEATTENUATION")
	b.when(p.NumLightProbes > 0, lightProbeDefine(p))
	b.when(p.LogarithmicDepthBuffer, "#define USE_LOGDEPTHBUF")
	b.when(p.ReverseDepthBuffer, "#define USE_REVERSEDEPTHBUF")

	b.add(vertexBuiltins...)
	b.add("\n")
	return b.join()
}

// fragmentPrefix builds the complete fragment prelude of a non-raw program.
func fragmentPrefix(dict Dictionary, p *parameters.Parameters) string {
	var b block
	b.add(
		precisionBlock(p.Precision),
		define("SHADER_TYPE", p.ShaderType),
		define("SHADER_NAME", p.ShaderName),
		customDefines(p.Defines),
	)
	b.when(p.UseFog && p.Fog, "#define USE_FOG")
	b.when(p.UseFog && p.FogExp2, "#define FOG_EXP2")
	b.when(p.AlphaToCoverage, "#define ALPHA_TO_COVERAGE")

	b.when(p.Map, "#define USE_MAP")
	b.when(p.Matcap, "#define USE_MATCAP")
	if p.EnvMap {
		b.add(
			"#define USE_ENVMAP",
			"#define "+envMapTypeDefine(p),
			"#define "+envMapModeDefine(p),
			"#define "+envMapBlendingDefine(p),
		)
		b.add(cubeUVDefines(p)...)
	}
	b.when(p.LightMap, "#define USE_LIGHTMAP")
	b.when(p.AOMap, "#define USE_AOMAP")
	b.when(p.BumpMap, "#define USE_BUMPMAP")
	b.when(p.NormalMap, "#define USE_NORMALMAP")
	b.when(p.NormalMapObjectSpace, "#define USE_NORMALMAP_OBJECTSPACE")
	b.when(p.NormalMapTangentSpace, "#define USE_NORMALMAP_TANGENTSPACE")
	b.when(p.EmissiveMap, "#define USE_EMISSIVEMAP")

	b.when(p.Anisotropy, "#define USE_ANISOTROPY")
	b.when(p.AnisotropyMap, "#define USE_ANISOTROPYMAP")
	b.when(p.Clearcoat, "#define USE_CLEARCOAT")
	b.when(p.ClearcoatMap, "#define USE_CLEARCOATMAP")
	b.when(p.ClearcoatRoughnessMap, "#define USE_CLEARCOAT_ROUGHNESSMAP")
	b.when(p.ClearcoatNormalMap, "#define USE_CLEARCOAT_NORMALMAP")
	b.when(p.Dispersion, "#define USE_DISPERSION")
	b.when(p.Iridescence, "#define USE_IRIDESCENCE")
	b.when(p.IridescenceMap, "#define USE_IRIDESCENCEMAP")
	b.when(p.IridescenceThicknessMap, "#define USE_IRIDESCENCE_THICKNESSMAP")
	b.when(p.SpecularMap, "#define USE_SPECULARMAP")
	b.when(p.SpecularColorMap, "#define USE_SPECULAR_COLORMAP")
	b.when(p.SpecularIntensityMap, "#define USE_SPECULAR_INTENSITYMAP")
	b.when(p.RoughnessMap, "#define USE_ROUGHNESSMAP")
	b.when(p.MetalnessMap, "#define USE_METALNESSMAP")
	b.when(p.AlphaMap, "#define USE_ALPHAMAP")
	b.when(p.AlphaTest, "#define USE_ALPHATEST")
	b.when(p.AlphaHash, "#define USE_ALPHAHASH")
	b.when(p.Sheen, "#define USE_SHEEN")
	b.when(p.SheenColorMap, "#define USE_SHEEN_COLORMAP")
	b.when(p.SheenRoughnessMap, "#define USE_SHEEN_ROUGHNESSMAP")
	b.when(p.Transmission, "#define USE_TRANSMISSION")
	b.when(p.TransmissionMap, "#define USE_TRANSMISSIONMAP")
	b.when(p.ThicknessMap, "#define USE_THICKNESSMAP")

	b.when(p.VertexTangents && !p.FlatShading, "#define USE_TANGENT")
	b.when(p.VertexColors || p.InstancingColor || p.BatchingColor, "#define USE_COLOR")
	b.when(p.VertexAlphas, "#define USE_COLOR_ALPHA")
	b.when(p.VertexUV1s, "#define USE_UV1")
	b.when(p.VertexUV2s, "#define USE_UV2")
	b.when(p.VertexUV3s, "#define USE_UV3")
	b.when(p.PointsUVs, "#define USE_POINTS_UV")
	b.when(p.GradientMap, "#define USE_GRADIENTMAP")
	b.when(p.FlatShading, "#define FLAT_SHADED")
	b.when(p.DoubleSided, "#define DOUBLE_SIDED")
	b.when(p.FlipSided, "#define FLIP_SIDED")
	if p.ShadowMapEnabled {
		b.add("#define USE_SHADOWMAP", "#define "+shadowMapTypeDefine(p.ShadowMapType))
	}
	b.when(p.PremultipliedAlpha, "#define PREMULTIPLIED_ALPHA")
	b.when(p.NumLightProbes > 0, lightProbeDefine(p))
	b.when(p.DecodeVideoTexture, "#define DECODE_VIDEO_TEXTURE")
	b.when(p.DecodeVideoTextureEmissive, "#define DECODE_VIDEO_TEXTURE_EMISSIVE")
	b.when(p.LogarithmicDepthBuffer, "#define USE_LOGDEPTHBUF")
	b.when(p.ReverseDepthBuffer, "#define USE_REVERSEDEPTHBUF")
	b.when(p.LegacyLights, "#define LEGACY_LIGHTS")

	b.add(fragmentBuiltins...)

	if p.ToneMapping != common.NoToneMapping {
		b.add("#define TONE_MAPPING")
		if chunk, ok := dict.Chunk("tonemapping_pars_fragment"); ok {
			b.add(chunk)
		}
		b.add(ToneMappingFunction("toneMapping", p.ToneMapping))
	}
	b.when(p.Dithering, "#define DITHERING")
	b.when(p.Opaque, "#define OPAQUE")
	if chunk, ok := dict.Chunk("colorspace_pars_fragment"); ok {
		b.add(chunk)
	}
	b.add(TexelEncodingFunction("linearToOutputTexel", p.OutputColorSpace))
	b.add(luminanceFunction())
	b.when(p.UseDepthPacking, define("DEPTH_PACKING", strconv.Itoa(int(p.DepthPacking))))
	b.add("\n")
	return b.join()
}

// vertexBuiltins are the uniforms and attributes every non-raw vertex stage can rely on.
var vertexBuiltins = []string{
	"uniform mat4 modelMatrix;",
	"uniform mat4 modelViewMatrix;",
	"uniform mat4 projectionMatrix;",
	"uniform mat4 viewMatrix;",
	"uniform mat3 normalMatrix;",
	"uniform vec3 cameraPosition;",
	"uniform bool isOrthographic;",
	"#ifdef USE_INSTANCING",
	"\tattribute mat4 instanceMatrix;",
	"#endif",
	"#ifdef USE_INSTANCING_COLOR",
	"\tattribute vec3 instanceColor;",
	"#endif",
	"#ifdef USE_INSTANCING_MORPH",
	"\tuniform sampler2D morphTexture;",
	"#endif",
	"attribute vec3 position;",
	"attribute vec3 normal;",
	"attribute vec2 uv;",
	"#ifdef USE_UV1",
	"\tattribute vec2 uv1;",
	"#endif",
	"#ifdef USE_UV2",
	"\tattribute vec2 uv2;",
	"#endif",
	"#ifdef USE_UV3",
	"\tattribute vec2 uv3;",
	"#endif",
	"#ifdef USE_TANGENT",
	"\tattribute vec4 tangent;",
	"#endif",
	"#if defined( USE_COLOR_ALPHA )",
	"\tattribute vec4 color;",
	"#elif defined( USE_COLOR )",
	"\tattribute vec3 color;",
	"#endif",
	"#ifdef USE_SKINNING",
	"\tattribute vec4 skinIndex;",
	"\tattribute vec4 skinWeight;",
	"#endif",
}

// fragmentBuiltins are the uniforms every non-raw fragment stage can rely on.
var fragmentBuiltins = []string{
	"uniform mat4 viewMatrix;",
	"uniform vec3 cameraPosition;",
	"uniform bool isOrthographic;",
}

// dialectVertex maps legacy vertex keywords onto GLSL ES 3.00.
func dialectVertex(p *parameters.Parameters) string {
	var b block
	b.add(
		vertexExtensions(p),
		"#define attribute in",
		"#define varying out",
		"#define texture2D texture",
	)
	return b.join() + "\n"
}

// dialectFragment maps legacy fragment keywords and texture functions onto GLSL ES 3.00.
func dialectFragment(p *parameters.Parameters) string {
	var b block
	b.add("#define varying in")
	if p.GLSLVersion != common.GLSL3 {
		b.add(
			"layout(location = 0) out highp vec4 pc_fragColor;",
			"#define gl_FragColor pc_fragColor",
		)
	}
	b.add(
		"#define gl_FragDepthEXT gl_FragDepth",
		"#define texture2D texture",
		"#define textureCube texture",
		"#define texture2DProj textureProj",
		"#define texture2DLodEXT textureLod",
		"#define texture2DProjLodEXT textureProjLod",
		"#define textureCubeLodEXT textureLod",
		"#define texture2DGradEXT textureGrad",
		"#define texture2DProjGradEXT textureProjGrad",
		"#define textureCubeGradEXT textureGrad",
	)
	return b.join() + "\n"
}

// versionLine renders the #version pragma for a dialect, or "" when none is requested.
func versionLine(v common.GLSLVersion) string {
	if v == common.GLSLUnspecified {
		return ""
	}
	return fmt.Sprintf("#version %s\n", v)
}
