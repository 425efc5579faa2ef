package parameters

import (
	"strconv"
	"strings"
)

// keyDelimiter joins cache key tokens.
const keyDelimiter = ","

// keyValue is one entry of the ordered value list. name is the Parameters field it reads.
type keyValue struct {
	name  string
	value func(p *Parameters) string
}

// keyFlag is one bit of a cache key mask. name is the Parameters field it reads.
type keyFlag struct {
	name  string
	value func(p *Parameters) bool
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

// keyValues is the fixed ordered value list pushed for non-raw materials.
// Reordering it changes every key, which is fine because keys never outlive the process.
var keyValues = []keyValue{
	{"Precision", func(p *Parameters) string { return string(p.Precision) }},
	{"OutputColorSpace", func(p *Parameters) string { return string(p.OutputColorSpace) }},
	{"EnvMapMode", func(p *Parameters) string { return itoa(int(p.EnvMapMode)) }},
	{"EnvMapCubeUVHeight", func(p *Parameters) string {
		if p.EnvMapCubeUVHeight == nil {
			return ""
		}
		return itoa(*p.EnvMapCubeUVHeight)
	}},
	{"MapUV", func(p *Parameters) string { return p.MapUV }},
	{"AlphaMapUV", func(p *Parameters) string { return p.AlphaMapUV }},
	{"LightMapUV", func(p *Parameters) string { return p.LightMapUV }},
	{"AOMapUV", func(p *Parameters) string { return p.AOMapUV }},
	{"BumpMapUV", func(p *Parameters) string { return p.BumpMapUV }},
	{"NormalMapUV", func(p *Parameters) string { return p.NormalMapUV }},
	{"DisplacementMapUV", func(p *Parameters) string { return p.DisplacementMapUV }},
	{"EmissiveMapUV", func(p *Parameters) string { return p.EmissiveMapUV }},
	{"MetalnessMapUV", func(p *Parameters) string { return p.MetalnessMapUV }},
	{"RoughnessMapUV", func(p *Parameters) string { return p.RoughnessMapUV }},
	{"AnisotropyMapUV", func(p *Parameters) string { return p.AnisotropyMapUV }},
	{"ClearcoatMapUV", func(p *Parameters) string { return p.ClearcoatMapUV }},
	{"ClearcoatNormalMapUV", func(p *Parameters) string { return p.ClearcoatNormalMapUV }},
	{"ClearcoatRoughnessMapUV", func(p *Parameters) string { return p.ClearcoatRoughnessMapUV }},
	{"IridescenceMapUV", func(p *Parameters) string { return p.IridescenceMapUV }},
	{"IridescenceThicknessMapUV", func(p *Parameters) string { return p.IridescenceThicknessMapUV }},
	{"SheenColorMapUV", func(p *Parameters) string { return p.SheenColorMapUV }},
	{"SheenRoughnessMapUV", func(p *Parameters) string { return p.SheenRoughnessMapUV }},
	{"SpecularMapUV", func(p *Parameters) string { return p.SpecularMapUV }},
	{"SpecularColorMapUV", func(p *Parameters) string { return p.SpecularColorMapUV }},
	{"SpecularIntensityMapUV", func(p *Parameters) string { return p.SpecularIntensityMapUV }},
	{"TransmissionMapUV", func(p *Parameters) string { return p.TransmissionMapUV }},
	{"ThicknessMapUV", func(p *Parameters) string { return p.ThicknessMapUV }},
	{"Combine", func(p *Parameters) string { return itoa(int(p.Combine)) }},
	{"FogExp2", func(p *Parameters) string { return strconv.FormatBool(p.FogExp2) }},
	{"SizeAttenuation", func(p *Parameters) string { return strconv.FormatBool(p.SizeAttenuation) }},
	{"MorphTargetsCount", func(p *Parameters) string { return itoa(p.MorphTargetsCount) }},
	{"MorphTextureStride", func(p *Parameters) string { return itoa(p.MorphTextureStride) }},
	{"NumDirLights", func(p *Parameters) string { return itoa(p.NumDirLights) }},
	{"NumPointLights", func(p *Parameters) string { return itoa(p.NumPointLights) }},
	{"NumSpotLights", func(p *Parameters) string { return itoa(p.NumSpotLights) }},
	{"NumSpotLightMaps", func(p *Parameters) string { return itoa(p.NumSpotLightMaps) }},
	{"NumHemiLights", func(p *Parameters) string { return itoa(p.NumHemiLights) }},
	{"NumRectAreaLights", func(p *Parameters) string { return itoa(p.NumRectAreaLights) }},
	{"NumDirLightShadows", func(p *Parameters) string { return itoa(p.NumDirLightShadows) }},
	{"NumPointLightShadows", func(p *Parameters) string { return itoa(p.NumPointLightShadows) }},
	{"NumSpotLightShadows", func(p *Parameters) string { return itoa(p.NumSpotLightShadows) }},
	{"NumSpotLightShadowsWithMaps", func(p *Parameters) string { return itoa(p.NumSpotLightShadowsWithMaps) }},
	{"NumLightProbes", func(p *Parameters) string { return itoa(p.NumLightProbes) }},
	{"ShadowMapType", func(p *Parameters) string { return itoa(int(p.ShadowMapType)) }},
	{"ToneMapping", func(p *Parameters) string { return itoa(int(p.ToneMapping)) }},
	{"NumClippingPlanes", func(p *Parameters) string { return itoa(p.NumClippingPlanes) }},
	{"NumClipIntersection", func(p *Parameters) string { return itoa(p.NumClipIntersection) }},
	{"DepthPacking", func(p *Parameters) string { return itoa(int(p.DepthPacking)) }},
	{"GLSLVersion", func(p *Parameters) string { return string(p.GLSLVersion) }},
}

// capabilityFlags is the bit table of the first mask. Bit i is capabilityFlags[i].
var capabilityFlags = []keyFlag{
	{"SupportsVertexTextures", func(p *Parameters) bool { return p.SupportsVertexTextures }},
	{"Instancing", func(p *Parameters) bool { return p.Instancing }},
	{"InstancingColor", func(p *Parameters) bool { return p.InstancingColor }},
	{"InstancingMorph", func(p *Parameters) bool { return p.InstancingMorph }},
	{"Matcap", func(p *Parameters) bool { return p.Matcap }},
	{"EnvMap", func(p *Parameters) bool { return p.EnvMap }},
	{"NormalMapObjectSpace", func(p *Parameters) bool { return p.NormalMapObjectSpace }},
	{"NormalMapTangentSpace", func(p *Parameters) bool { return p.NormalMapTangentSpace }},
	{"Clearcoat", func(p *Parameters) bool { return p.Clearcoat }},
	{"Iridescence", func(p *Parameters) bool { return p.Iridescence }},
	{"AlphaTest", func(p *Parameters) bool { return p.AlphaTest }},
	{"VertexColors", func(p *Parameters) bool { return p.VertexColors }},
	{"VertexAlphas", func(p *Parameters) bool { return p.VertexAlphas }},
	{"VertexUV1s", func(p *Parameters) bool { return p.VertexUV1s }},
	{"VertexUV2s", func(p *Parameters) bool { return p.VertexUV2s }},
	{"VertexUV3s", func(p *Parameters) bool { return p.VertexUV3s }},
	{"VertexTangents", func(p *Parameters) bool { return p.VertexTangents }},
	{"Anisotropy", func(p *Parameters) bool { return p.Anisotropy }},
	{"AlphaHash", func(p *Parameters) bool { return p.AlphaHash }},
	{"Batching", func(p *Parameters) bool { return p.Batching }},
	{"Dispersion", func(p *Parameters) bool { return p.Dispersion }},
	{"BatchingColor", func(p *Parameters) bool { return p.BatchingColor }},
	{"GradientMap", func(p *Parameters) bool { return p.GradientMap }},
	{"ExtensionClipCullDistance", func(p *Parameters) bool { return p.ExtensionClipCullDistance }},
	{"ExtensionMultiDraw", func(p *Parameters) bool { return p.ExtensionMultiDraw }},
}

// renderStateFlags is the bit table of the second mask. Bit i is renderStateFlags[i].
var renderStateFlags = []keyFlag{
	{"Fog", func(p *Parameters) bool { return p.Fog }},
	{"UseFog", func(p *Parameters) bool { return p.UseFog }},
	{"FlatShading", func(p *Parameters) bool { return p.FlatShading }},
	{"LogarithmicDepthBuffer", func(p *Parameters) bool { return p.LogarithmicDepthBuffer }},
	{"ReverseDepthBuffer", func(p *Parameters) bool { return p.ReverseDepthBuffer }},
	{"Skinning", func(p *Parameters) bool { return p.Skinning }},
	{"MorphTargets", func(p *Parameters) bool { return p.MorphTargets }},
	{"MorphNormals", func(p *Parameters) bool { return p.MorphNormals }},
	{"MorphColors", func(p *Parameters) bool { return p.MorphColors }},
	{"PremultipliedAlpha", func(p *Parameters) bool { return p.PremultipliedAlpha }},
	{"ShadowMapEnabled", func(p *Parameters) bool { return p.ShadowMapEnabled }},
	{"DoubleSided", func(p *Parameters) bool { return p.DoubleSided }},
	{"FlipSided", func(p *Parameters) bool { return p.FlipSided }},
	{"UseDepthPacking", func(p *Parameters) bool { return p.UseDepthPacking }},
	{"Dithering", func(p *Parameters) bool { return p.Dithering }},
	{"Transmission", func(p *Parameters) bool { return p.Transmission }},
	{"Sheen", func(p *Parameters) bool { return p.Sheen }},
	{"Opaque", func(p *Parameters) bool { return p.Opaque }},
	{"PointsUVs", func(p *Parameters) bool { return p.PointsUVs }},
	{"DecodeVideoTexture", func(p *Parameters) bool { return p.DecodeVideoTexture }},
	{"DecodeVideoTextureEmissive", func(p *Parameters) bool { return p.DecodeVideoTextureEmissive }},
	{"AlphaToCoverage", func(p *Parameters) bool { return p.AlphaToCoverage }},
	{"LegacyLights", func(p *Parameters) bool { return p.LegacyLights }},
}

// mask packs a bit table into a 32 bit mask.
func mask(p *Parameters, flags []keyFlag) uint32 {
	var m uint32
	for i, f := range flags {
		if f.value(p) {
			m |= 1 << uint(i)
		}
	}
	return m
}

// CacheKey serializes a parameter record into the program cache key.
//
// The key starts with the template id, or the two custom stage ids for custom materials, followed by the
// material defines as name/value pairs. Records of non-raw materials then append the fixed value list, the
// capability and render-state masks, and the output color space once more. The material's own cache key
// contribution is always the last token.
//
// Parameters:
//   - p: the parameter record
//
// Returns:
//   - string: the cache key
func CacheKey(p *Parameters) string {
	tokens := make([]string, 0, 8+2*len(p.Defines)+len(keyValues))

	if p.ShaderID != "" {
		tokens = append(tokens, p.ShaderID)
	} else {
		tokens = append(tokens, itoa(p.CustomVertexShaderID), itoa(p.CustomFragmentShaderID))
	}

	for _, d := range p.Defines {
		tokens = append(tokens, d.Name, d.Value)
	}

	if !p.IsRawShaderMaterial {
		for _, kv := range keyValues {
			tokens = append(tokens, kv.value(p))
		}
		tokens = append(tokens,
			strconv.FormatUint(uint64(mask(p, capabilityFlags)), 10),
			strconv.FormatUint(uint64(mask(p, renderStateFlags)), 10),
			string(p.OutputColorSpace),
		)
	}

	tokens = append(tokens, p.CustomProgramCacheKey)
	return strings.Join(tokens, keyDelimiter)
}
