// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs and
// enums that express the renderer-wide settings shared by the material, parameter, shader and program packages.
package common

// Precision identifies a GLSL floating point precision qualifier.
type Precision string

const (
	// PrecisionDefault means no explicit request; the renderer precision applies.
	PrecisionDefault Precision = ""

	// PrecisionLow maps to lowp.
	PrecisionLow Precision = "lowp"

	// PrecisionMedium maps to mediump.
	PrecisionMedium Precision = "mediump"

	// PrecisionHigh maps to highp.
	PrecisionHigh Precision = "highp"
)

// Rank orders precisions so that capability clamping can compare them. Unknown values rank as PrecisionDefault (0).
//
// Returns:
//   - int: 1 for lowp, 2 for mediump, 3 for highp, 0 otherwise
func (p Precision) Rank() int {
	switch p {
	case PrecisionLow:
		return 1
	case PrecisionMedium:
		return 2
	case PrecisionHigh:
		return 3
	default:
		return 0
	}
}

// ColorSpace identifies the color space of a texture or of the output target.
type ColorSpace string

const (
	// NoColorSpace marks data textures (normals, roughness) that carry no color.
	NoColorSpace ColorSpace = ""

	// SRGBColorSpace is the sRGB transfer with sRGB primaries.
	SRGBColorSpace ColorSpace = "srgb"

	// LinearSRGBColorSpace is linear light with sRGB primaries. This is the working color space.
	LinearSRGBColorSpace ColorSpace = "srgb-linear"

	// DisplayP3ColorSpace is the sRGB transfer with Display P3 primaries.
	DisplayP3ColorSpace ColorSpace = "display-p3"

	// LinearDisplayP3ColorSpace is linear light with Display P3 primaries.
	LinearDisplayP3ColorSpace ColorSpace = "display-p3-linear"
)

// ToneMapping selects the tone mapping operator applied in the fragment stage.
type ToneMapping int

const (
	NoToneMapping ToneMapping = iota
	LinearToneMapping
	ReinhardToneMapping
	CineonToneMapping
	ACESFilmicToneMapping
	CustomToneMapping
	AgXToneMapping
	NeutralToneMapping
)

// ShadowMapType selects the shadow filtering variant compiled into lit programs.
type ShadowMapType int

const (
	BasicShadowMap ShadowMapType = iota
	PCFShadowMap
	PCFSoftShadowMap
	VSMShadowMap
)

// DepthPacking selects how depth is encoded by the depth template.
type DepthPacking int

const (
	BasicDepthPacking DepthPacking = 3200 + iota
	RGBADepthPacking
	RGBDepthPacking
	RGDepthPacking
)

// Mapping describes how a texture is sampled as an environment map.
type Mapping int

const (
	UVMapping Mapping = 300 + iota
	CubeReflectionMapping
	CubeRefractionMapping
	EquirectangularReflectionMapping
	EquirectangularRefractionMapping
	CubeUVReflectionMapping
)

// IsRefraction reports whether the mapping samples the refracted direction.
//
// Returns:
//   - bool: true for the cube and equirectangular refraction mappings
func (m Mapping) IsRefraction() bool {
	return m == CubeRefractionMapping || m == EquirectangularRefractionMapping
}

// IsCube reports whether the mapping samples a cube texture.
//
// Returns:
//   - bool: true for the cube reflection and refraction mappings
func (m Mapping) IsCube() bool {
	return m == CubeReflectionMapping || m == CubeRefractionMapping
}

// Side selects which faces a material renders.
type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

// Combine selects how an environment map is blended with the surface color in the unlit and legacy lit templates.
type Combine int

const (
	MultiplyOperation Combine = iota
	MixOperation
	AddOperation
)

// GLSLVersion is the dialect version a raw shader material declares for its own sources.
type GLSLVersion string

const (
	// GLSLUnspecified means the raw material supplies no version pragma.
	GLSLUnspecified GLSLVersion = ""

	// GLSL3 is GLSL ES 3.00, the fixed target dialect.
	GLSL3 GLSLVersion = "300 es"
)
