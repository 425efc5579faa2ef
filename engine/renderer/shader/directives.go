// directives.go defines the textual directives the pre-processor rewrites: chunk includes, count tokens
// and unrolled loops. Each directive is matched by a regular expression and replaced by plain GLSL before
// the source reaches the driver.
package shader

import (
	"regexp"
	"strconv"
)

// Stage identifies the pipeline stage a source belongs to.
type Stage int

const (
	// StageVertex is the vertex stage.
	StageVertex Stage = iota

	// StageFragment is the fragment stage.
	StageFragment
)

// String returns the lowercase stage name.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

var (
	// includePattern matches a chunk include at the start of a line and captures the chunk name.
	//
	// Syntax: #include <chunk_name>
	includePattern = regexp.MustCompile(`(?m)^[ \t]*#include +<([\w\d./]+)>`)

	// unrollPattern matches one unrolled loop block and captures the start bound, the end bound and the body.
	// The end bound must already be a literal, so counts are substituted before unrolling.
	//
	// Syntax:
	//   #pragma unroll_loop_start
	//   for ( int i = 0; i < 3; i ++ ) { ... }
	//   #pragma unroll_loop_end
	unrollPattern = regexp.MustCompile(`#pragma unroll_loop_start\s+for\s*\(\s*int\s+i\s*=\s*(\d+)\s*;\s*i\s*<\s*(\d+)\s*;\s*i\s*\+\+\s*\)\s*\{([\s\S]+?)\}\s+#pragma unroll_loop_end`)

	// loopIndexPattern matches an explicit bracket index on the loop variable, i.e. "[ i ]".
	loopIndexPattern = regexp.MustCompile(`\[\s*i\s*\]`)

	// loopIndexToken is the bare token replaced by the iteration number inside an unrolled body.
	loopIndexToken = regexp.MustCompile(`\bUNROLLED_LOOP_INDEX\b`)
)

const (
	unrollStart = "#pragma unroll_loop_start"
	unrollEnd   = "#pragma unroll_loop_end"
)

// deprecatedChunks maps renamed chunk names to their current names.
var deprecatedChunks = map[string]string{
	"encodings_fragment":      "colorspace_fragment",
	"encodings_pars_fragment": "colorspace_pars_fragment",
	"output_fragment":         "opaque_fragment",
}

// countToken is one symbolic count replaced by an integer from the parameter record.
type countToken struct {
	pattern *regexp.Regexp
	name    string
}

func newCountToken(name string) countToken {
	return countToken{pattern: regexp.MustCompile(`\b` + name + `\b`), name: name}
}

// Count token names.
const (
	TokenDirLights               = "NUM_DIR_LIGHTS"
	TokenSpotLights              = "NUM_SPOT_LIGHTS"
	TokenSpotLightMaps           = "NUM_SPOT_LIGHT_MAPS"
	TokenSpotLightCoords         = "NUM_SPOT_LIGHT_COORDS"
	TokenRectAreaLights          = "NUM_RECT_AREA_LIGHTS"
	TokenPointLights             = "NUM_POINT_LIGHTS"
	TokenHemiLights              = "NUM_HEMI_LIGHTS"
	TokenDirLightShadows         = "NUM_DIR_LIGHT_SHADOWS"
	TokenSpotLightShadowsWithMap = "NUM_SPOT_LIGHT_SHADOWS_WITH_MAPS"
	TokenSpotLightShadows        = "NUM_SPOT_LIGHT_SHADOWS"
	TokenPointLightShadows       = "NUM_POINT_LIGHT_SHADOWS"
	TokenClippingPlanes          = "NUM_CLIPPING_PLANES"
	TokenUnionClippingPlanes     = "UNION_CLIPPING_PLANES"
)

// lightTokens are substituted in this order. The longer spot shadow token precedes its prefix.
var lightTokens = []countToken{
	newCountToken(TokenDirLights),
	newCountToken(TokenSpotLights),
	newCountToken(TokenSpotLightMaps),
	newCountToken(TokenSpotLightCoords),
	newCountToken(TokenRectAreaLights),
	newCountToken(TokenPointLights),
	newCountToken(TokenHemiLights),
	newCountToken(TokenDirLightShadows),
	newCountToken(TokenSpotLightShadowsWithMap),
	newCountToken(TokenSpotLightShadows),
	newCountToken(TokenPointLightShadows),
}

var clippingTokens = []countToken{
	newCountToken(TokenClippingPlanes),
	newCountToken(TokenUnionClippingPlanes),
}

// replaceCounts substitutes every token with values[token.name].
func replaceCounts(source string, tokens []countToken, values map[string]int) string {
	for _, t := range tokens {
		source = t.pattern.ReplaceAllLiteralString(source, strconv.Itoa(values[t.name]))
	}
	return source
}
