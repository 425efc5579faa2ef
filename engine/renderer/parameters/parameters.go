// Package parameters derives the flat program parameter record for one draw configuration and
// serializes it into the program cache key.
package parameters

import (
	"github.com/Carmen-Shannon/oxy-progcache/common"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/material"
)

// Template ids of the built-in shader library.
const (
	TemplateBasic    = "basic"
	TemplateLambert  = "lambert"
	TemplatePhong    = "phong"
	TemplatePhysical = "physical"
	TemplateToon     = "toon"
	TemplateMatcap   = "matcap"
	TemplateNormal   = "normal"
	TemplateDepth    = "depth"
	TemplateDistance = "distanceRGBA"
	TemplateDashed   = "dashed"
	TemplatePoints   = "points"
	TemplateShadow   = "shadow"
	TemplateSprite   = "sprite"
)

// templateIDs maps each built-in material type to its template. Types absent from the map are custom.
var templateIDs = map[material.Type]string{
	material.TypeBasic:      TemplateBasic,
	material.TypeLambert:    TemplateLambert,
	material.TypePhong:      TemplatePhong,
	material.TypeStandard:   TemplatePhysical,
	material.TypePhysical:   TemplatePhysical,
	material.TypeToon:       TemplateToon,
	material.TypeMatcap:     TemplateMatcap,
	material.TypeNormal:     TemplateNormal,
	material.TypeDepth:      TemplateDepth,
	material.TypeDistance:   TemplateDistance,
	material.TypeLineBasic:  TemplateBasic,
	material.TypeLineDashed: TemplateDashed,
	material.TypePoints:     TemplatePoints,
	material.TypeShadow:     TemplateShadow,
	material.TypeSprite:     TemplateSprite,
}

// TemplateID returns the template a material type renders with.
//
// Parameters:
//   - t: the material type
//
// Returns:
//   - string: the template id, "" for custom types
//   - bool: false for custom types
func TemplateID(t material.Type) (string, bool) {
	id, ok := templateIDs[t]
	return id, ok
}

// TemplateIDs returns every distinct built-in template id.
func TemplateIDs() []string {
	return []string{
		TemplateBasic, TemplateLambert, TemplatePhong, TemplatePhysical, TemplateToon, TemplateMatcap, TemplateNormal,
		TemplateDepth, TemplateDistance, TemplateDashed, TemplatePoints, TemplateShadow, TemplateSprite,
	}
}

// Parameters is the immutable snapshot that drives preprocessing and cache key construction for one draw
// configuration. It is built fresh by Deriver.Derive and must not be mutated afterwards.
//
// Fields named *UV hold the UV token of the matching map ("uv", "uv1", ...) or "" when the map is absent.
type Parameters struct {
	ShaderID               string
	ShaderType             string
	ShaderName             string
	VertexShader           string
	FragmentShader         string
	Defines                []material.Define
	CustomVertexShaderID   int
	CustomFragmentShaderID int
	IsShaderMaterial       bool
	IsRawShaderMaterial    bool
	GLSLVersion            common.GLSLVersion
	Precision              common.Precision

	Batching               bool
	BatchingColor          bool
	Instancing             bool
	InstancingColor        bool
	InstancingMorph        bool
	SupportsVertexTextures bool
	OutputColorSpace       common.ColorSpace
	AlphaToCoverage        bool

	Map                bool
	Matcap             bool
	EnvMap             bool
	EnvMapMode         common.Mapping
	EnvMapCubeUVHeight *int

	AOMap                 bool
	LightMap              bool
	BumpMap               bool
	NormalMap             bool
	DisplacementMap       bool
	EmissiveMap           bool
	NormalMapObjectSpace  bool
	NormalMapTangentSpace bool
	MetalnessMap          bool
	RoughnessMap          bool

	Anisotropy              bool
	AnisotropyMap           bool
	Clearcoat               bool
	ClearcoatMap            bool
	ClearcoatNormalMap      bool
	ClearcoatRoughnessMap   bool
	Dispersion              bool
	Iridescence             bool
	IridescenceMap          bool
	IridescenceThicknessMap bool
	Sheen                   bool
	SheenColorMap           bool
	SheenRoughnessMap       bool
	SpecularMap             bool
	SpecularColorMap        bool
	SpecularIntensityMap    bool
	Transmission            bool
	TransmissionMap         bool
	ThicknessMap            bool
	GradientMap             bool

	Opaque    bool
	AlphaMap  bool
	AlphaTest bool
	AlphaHash bool
	Combine   common.Combine

	MapUV                     string
	AOMapUV                   string
	LightMapUV                string
	BumpMapUV                 string
	NormalMapUV               string
	DisplacementMapUV         string
	EmissiveMapUV             string
	MetalnessMapUV            string
	RoughnessMapUV            string
	AnisotropyMapUV           string
	ClearcoatMapUV            string
	ClearcoatNormalMapUV      string
	ClearcoatRoughnessMapUV   string
	IridescenceMapUV          string
	IridescenceThicknessMapUV string
	SheenColorMapUV           string
	SheenRoughnessMapUV       string
	SpecularMapUV             string
	SpecularColorMapUV        string
	SpecularIntensityMapUV    string
	TransmissionMapUV         string
	ThicknessMapUV            string
	AlphaMapUV                string

	VertexTangents bool
	VertexColors   bool
	VertexAlphas   bool
	VertexUV1s     bool
	VertexUV2s     bool
	VertexUV3s     bool
	PointsUVs      bool

	Fog     bool
	UseFog  bool
	FogExp2 bool

	FlatShading            bool
	SizeAttenuation        bool
	LogarithmicDepthBuffer bool
	ReverseDepthBuffer     bool
	Skinning               bool

	MorphTargets       bool
	MorphNormals       bool
	MorphColors        bool
	MorphTargetsCount  int
	MorphTextureStride int

	NumDirLights                int
	NumPointLights              int
	NumSpotLights               int
	NumSpotLightMaps            int
	NumRectAreaLights           int
	NumHemiLights               int
	NumDirLightShadows          int
	NumPointLightShadows        int
	NumSpotLightShadows         int
	NumSpotLightShadowsWithMaps int
	NumLightProbes              int
	NumClippingPlanes           int
	NumClipIntersection         int

	Dithering        bool
	ShadowMapEnabled bool
	ShadowMapType    common.ShadowMapType
	ToneMapping      common.ToneMapping
	LegacyLights     bool

	DecodeVideoTexture         bool
	DecodeVideoTextureEmissive bool
	PremultipliedAlpha         bool
	DoubleSided                bool
	FlipSided                  bool
	UseDepthPacking            bool
	DepthPacking               common.DepthPacking

	Index0AttributeName                    string
	ExtensionClipCullDistance              bool
	ExtensionMultiDraw                     bool
	RendererExtensionParallelShaderCompile bool
	CustomProgramCacheKey                  string
}

// NumSpotLightCoords returns the number of spot light projection coordinates the program needs.
func (p *Parameters) NumSpotLightCoords() int {
	return p.NumSpotLightShadows + p.NumSpotLightMaps - p.NumSpotLightShadowsWithMaps
}

// IsCustom reports whether the program is built from material-supplied sources.
func (p *Parameters) IsCustom() bool {
	return p.ShaderID == ""
}
