package shader

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Carmen-Shannon/oxy-progcache/common"
)

// Operator and transfer names emitted into the fragment prelude.
const (
	transferLinear = "LinearTransferOETF"
	transferSRGB   = "sRGBTransferOETF"

	gamutSRGBToP3 = "LinearSRGBToLinearDisplayP3"
	gamutP3ToSRGB = "LinearDisplayP3ToLinearSRGB"
)

// workingColorSpace is the color space lighting is computed in.
const workingColorSpace = common.LinearSRGBColorSpace

// ToneMappingName returns the name of the GLSL operator for a tone mapping mode. Unknown modes log a
// warning once and fall back to the linear operator.
//
// Parameters:
//   - tm: the tone mapping mode
//
// Returns:
//   - string: the operator name, e.g. "ACESFilmic"
func ToneMappingName(tm common.ToneMapping) string {
	switch tm {
	case common.LinearToneMapping:
		return "Linear"
	case common.ReinhardToneMapping:
		return "Reinhard"
	case common.CineonToneMapping:
		return "Cineon"
	case common.ACESFilmicToneMapping:
		return "ACESFilmic"
	case common.AgXToneMapping:
		return "AgX"
	case common.NeutralToneMapping:
		return "Neutral"
	case common.CustomToneMapping:
		return "Custom"
	default:
		common.WarnOnce("tone-mapping:"+strconv.Itoa(int(tm)), "unsupported tone mapping, using linear", "toneMapping", int(tm))
		return "Linear"
	}
}

// ToneMappingFunction returns a GLSL function named functionName that applies the selected operator.
//
// Parameters:
//   - functionName: the name of the generated function
//   - tm: the tone mapping mode
//
// Returns:
//   - string: the GLSL function definition
func ToneMappingFunction(functionName string, tm common.ToneMapping) string {
	return fmt.Sprintf("vec3 %s( vec3 color ) { return %sToneMapping( color ); }", functionName, ToneMappingName(tm))
}

// primariesP3 reports whether a color space uses Display P3 primaries.
func primariesP3(cs common.ColorSpace) bool {
	return cs == common.DisplayP3ColorSpace || cs == common.LinearDisplayP3ColorSpace
}

// EncodingComponents returns the gamut conversion and transfer function that encode working-space color
// into cs. The gamut conversion is "" when the primaries match. Unknown color spaces log a warning once and
// use the linear transfer.
//
// Parameters:
//   - cs: the target color space
//
// Returns:
//   - string: the gamut conversion function, or ""
//   - string: the transfer function
func EncodingComponents(cs common.ColorSpace) (gamut, transfer string) {
	switch {
	case primariesP3(cs) && !primariesP3(workingColorSpace):
		gamut = gamutSRGBToP3
	case !primariesP3(cs) && primariesP3(workingColorSpace):
		gamut = gamutP3ToSRGB
	}
	switch cs {
	case common.LinearSRGBColorSpace, common.LinearDisplayP3ColorSpace:
		transfer = transferLinear
	case common.SRGBColorSpace, common.DisplayP3ColorSpace:
		transfer = transferSRGB
	default:
		common.WarnOnce("color-space:"+string(cs), "unsupported color space, using linear transfer", "colorSpace", string(cs))
		transfer = transferLinear
	}
	return gamut, transfer
}

// TexelEncodingFunction returns a GLSL function named functionName that encodes a working-space color
// into cs.
//
// Parameters:
//   - functionName: the name of the generated function
//   - cs: the target color space
//
// Returns:
//   - string: the GLSL function definition
func TexelEncodingFunction(functionName string, cs common.ColorSpace) string {
	gamut, transfer := EncodingComponents(cs)
	if gamut == "" {
		return fmt.Sprintf("vec4 %s( vec4 value ) { return %s( value ); }", functionName, transfer)
	}
	return fmt.Sprintf("vec4 %s( vec4 value ) { return %s( %s( value ) ); }", functionName, transfer, gamut)
}

// luminanceFunction returns the GLSL luminance helper with the Rec. 709 coefficients of the working space.
func luminanceFunction() string {
	return "float luminance( const in vec3 rgb ) {\n" +
		"\tconst vec3 weights = vec3( 0.2126, 0.7152, 0.0722 );\n" +
		"\treturn dot( weights, rgb );\n" +
		"}"
}

// cubeUVSize holds the layout constants of a prefiltered cubeUV environment map.
type cubeUVSize struct {
	texelWidth  float64
	texelHeight float64
	maxMip      float64
}

// newCubeUVSize derives the layout constants from the layout height.
func newCubeUVSize(height int) cubeUVSize {
	maxMip := math.Log2(float64(height)) - 2
	return cubeUVSize{
		texelWidth:  1.0 / (3 * math.Max(math.Pow(2, maxMip), 7*16)),
		texelHeight: 1.0 / float64(height),
		maxMip:      maxMip,
	}
}

// formatFloat renders a GLSL float literal.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return s + ".0"
	}
	return s
}
