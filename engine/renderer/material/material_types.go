package material

import "github.com/Carmen-Shannon/oxy-progcache/common"

// Type identifies the shading model of a material. Every built-in type maps to a fixed shader template;
// TypeShader and TypeRawShader carry their own stage sources.
type Type int

const (
	TypeBasic Type = iota
	TypeLambert
	TypePhong
	TypeStandard
	TypePhysical
	TypeToon
	TypeMatcap
	TypeNormal
	TypeDepth
	TypeDistance
	TypeLineBasic
	TypeLineDashed
	TypePoints
	TypeShadow
	TypeSprite
	TypeShader
	TypeRawShader
)

var typeNames = [...]string{
	TypeBasic:      "MeshBasicMaterial",
	TypeLambert:    "MeshLambertMaterial",
	TypePhong:      "MeshPhongMaterial",
	TypeStandard:   "MeshStandardMaterial",
	TypePhysical:   "MeshPhysicalMaterial",
	TypeToon:       "MeshToonMaterial",
	TypeMatcap:     "MeshMatcapMaterial",
	TypeNormal:     "MeshNormalMaterial",
	TypeDepth:      "MeshDepthMaterial",
	TypeDistance:   "MeshDistanceMaterial",
	TypeLineBasic:  "LineBasicMaterial",
	TypeLineDashed: "LineDashedMaterial",
	TypePoints:     "PointsMaterial",
	TypeShadow:     "ShadowMaterial",
	TypeSprite:     "SpriteMaterial",
	TypeShader:     "ShaderMaterial",
	TypeRawShader:  "RawShaderMaterial",
}

// String returns the material class name. It is also the value of the SHADER_TYPE define.
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "UnknownMaterial"
	}
	return typeNames[t]
}

// IsCustom reports whether the material supplies its own stage sources.
func (t Type) IsCustom() bool {
	return t == TypeShader || t == TypeRawShader
}

// MapSlot names one texture input of a material. Each slot selects its own UV channel.
type MapSlot int

const (
	MapColor MapSlot = iota
	MapMatcap
	MapEnv
	MapLight
	MapAO
	MapBump
	MapNormal
	MapDisplacement
	MapEmissive
	MapMetalness
	MapRoughness
	MapAnisotropy
	MapClearcoat
	MapClearcoatNormal
	MapClearcoatRoughness
	MapIridescence
	MapIridescenceThickness
	MapSheenColor
	MapSheenRoughness
	MapSpecular
	MapSpecularColor
	MapSpecularIntensity
	MapTransmission
	MapThickness
	MapGradient
	MapAlpha

	// MapSlotCount is the number of slots. It is not a valid slot.
	MapSlotCount
)

var mapSlotNames = [...]string{
	MapColor:                "map",
	MapMatcap:               "matcap",
	MapEnv:                  "envMap",
	MapLight:                "lightMap",
	MapAO:                   "aoMap",
	MapBump:                 "bumpMap",
	MapNormal:               "normalMap",
	MapDisplacement:         "displacementMap",
	MapEmissive:             "emissiveMap",
	MapMetalness:            "metalnessMap",
	MapRoughness:            "roughnessMap",
	MapAnisotropy:           "anisotropyMap",
	MapClearcoat:            "clearcoatMap",
	MapClearcoatNormal:      "clearcoatNormalMap",
	MapClearcoatRoughness:   "clearcoatRoughnessMap",
	MapIridescence:          "iridescenceMap",
	MapIridescenceThickness: "iridescenceThicknessMap",
	MapSheenColor:           "sheenColorMap",
	MapSheenRoughness:       "sheenRoughnessMap",
	MapSpecular:             "specularMap",
	MapSpecularColor:        "specularColorMap",
	MapSpecularIntensity:    "specularIntensityMap",
	MapTransmission:         "transmissionMap",
	MapThickness:            "thicknessMap",
	MapGradient:             "gradientMap",
	MapAlpha:                "alphaMap",
}

// String returns the uniform-style name of the slot, e.g. "normalMap".
func (s MapSlot) String() string {
	if s < 0 || s >= MapSlotCount {
		return "unknownMap"
	}
	return mapSlotNames[s]
}

// NormalMapType selects the space normal map texels are expressed in.
type NormalMapType int

const (
	TangentSpaceNormalMap NormalMapType = iota
	ObjectSpaceNormalMap
)

// Define is one material-supplied preprocessor define. An empty Value emits a bare "#define Name".
type Define struct {
	Name  string
	Value string
}

// Texture is the part of a texture that influences program selection.
type Texture struct {
	// Name is informational only.
	Name string

	// Channel is the UV set the texture is sampled with. 0 selects "uv", N selects "uvN".
	Channel int

	// ColorSpace is the encoding of the texel data. NoColorSpace for data textures.
	ColorSpace common.ColorSpace

	// Mapping is how the texture is sampled when used as an environment map.
	Mapping common.Mapping

	// Height is the image height in texels. For a prefiltered cubeUV environment map it is the mip-chain height.
	Height int

	// Video marks textures backed by a video element.
	Video bool
}

// NewTexture creates a Texture with UV mapping on channel 0.
//
// Parameters:
//   - name: an informational identifier
//
// Returns:
//   - *Texture: the new texture description
func NewTexture(name string) *Texture {
	return &Texture{Name: name, Mapping: common.UVMapping}
}

var (
	litSlots      = []MapSlot{MapColor, MapLight, MapAO, MapEmissive, MapBump, MapNormal, MapDisplacement, MapSpecular, MapAlpha, MapEnv}
	standardSlots = []MapSlot{MapColor, MapLight, MapAO, MapEmissive, MapBump, MapNormal, MapDisplacement, MapRoughness, MapMetalness, MapAlpha, MapEnv}
	physicalSlots = append(append([]MapSlot{}, standardSlots...),
		MapClearcoat, MapClearcoatRoughness, MapClearcoatNormal, MapIridescence, MapIridescenceThickness,
		MapSheenColor, MapSheenRoughness, MapTransmission, MapThickness, MapSpecularIntensity, MapSpecularColor, MapAnisotropy)
)

// supportedSlots lists the map slots each built-in type samples. Custom types sample none of them.
var supportedSlots = map[Type][]MapSlot{
	TypeBasic:      {MapColor, MapLight, MapAO, MapSpecular, MapAlpha, MapEnv},
	TypeLambert:    litSlots,
	TypePhong:      litSlots,
	TypeStandard:   standardSlots,
	TypePhysical:   physicalSlots,
	TypeToon:       {MapColor, MapGradient, MapLight, MapAO, MapEmissive, MapBump, MapNormal, MapDisplacement, MapAlpha},
	TypeMatcap:     {MapMatcap, MapColor, MapBump, MapNormal, MapDisplacement, MapAlpha},
	TypeNormal:     {MapBump, MapNormal, MapDisplacement},
	TypeDepth:      {MapColor, MapAlpha, MapDisplacement},
	TypeDistance:   {MapColor, MapAlpha, MapDisplacement},
	TypeLineBasic:  {MapColor},
	TypeLineDashed: {MapColor},
	TypePoints:     {MapColor, MapAlpha},
	TypeSprite:     {MapColor, MapAlpha},
}

// Supports reports whether materials of this type sample the given map slot. A texture bound to an
// unsupported slot is ignored by program selection.
//
// Parameters:
//   - slot: the map slot
//
// Returns:
//   - bool: true if the slot is sampled
func (t Type) Supports(slot MapSlot) bool {
	for _, s := range supportedSlots[t] {
		if s == slot {
			return true
		}
	}
	return false
}
