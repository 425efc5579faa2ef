package backend

import (
	"strings"

	"github.com/Carmen-Shannon/oxy-progcache/common"
)

// glslTypeNames maps the GL active-variable type enums shared by desktop GL and WebGL 2 to GLSL type names.
var glslTypeNames = map[uint32]string{
	0x1404: "int",
	0x1405: "uint",
	0x1406: "float",
	0x8B50: "vec2",
	0x8B51: "vec3",
	0x8B52: "vec4",
	0x8B53: "ivec2",
	0x8B54: "ivec3",
	0x8B55: "ivec4",
	0x8B56: "bool",
	0x8B57: "bvec2",
	0x8B58: "bvec3",
	0x8B59: "bvec4",
	0x8B5A: "mat2",
	0x8B5B: "mat3",
	0x8B5C: "mat4",
	0x8B5E: "sampler2D",
	0x8B5F: "sampler3D",
	0x8B60: "samplerCube",
	0x8B62: "sampler2DShadow",
	0x8B65: "mat2x3",
	0x8B66: "mat2x4",
	0x8B67: "mat3x2",
	0x8B68: "mat3x4",
	0x8B69: "mat4x2",
	0x8B6A: "mat4x3",
	0x8DC1: "sampler2DArray",
	0x8DC4: "sampler2DArrayShadow",
	0x8DC5: "samplerCubeShadow",
	0x8DC6: "uvec2",
	0x8DC7: "uvec3",
	0x8DC8: "uvec4",
	0x8DCA: "isampler2D",
	0x8DCB: "isampler3D",
	0x8DCC: "isamplerCube",
	0x8DCF: "isampler2DArray",
	0x8DD2: "usampler2D",
	0x8DD3: "usampler3D",
	0x8DD4: "usamplerCube",
	0x8DD7: "usampler2DArray",
}

// glslTypeName returns the GLSL name of a GL type enum, or "unknown".
func glslTypeName(t uint32) string {
	if n, ok := glslTypeNames[t]; ok {
		return n
	}
	return "unknown"
}

// completionStatusKHR is COMPLETION_STATUS_KHR from KHR_parallel_shader_compile.
const completionStatusKHR = 0x91B1

// precisionFromBits maps the precision bits reported for a stage's high and medium float formats.
func precisionFromBits(high, medium int32) common.Precision {
	switch {
	case high > 0:
		return common.PrecisionHigh
	case medium > 0:
		return common.PrecisionMedium
	default:
		return common.PrecisionLow
	}
}

// acceptsGLSLES3 reports whether a desktop GL context compiles "#version 300 es" sources. GL 4.3 moved
// ARB_ES3_compatibility into core.
func acceptsGLSLES3(major, minor int32, extensions map[string]bool) bool {
	return major > 4 || (major == 4 && minor >= 3) || extensions["ARB_ES3_compatibility"]
}

// normalizeExtension strips the desktop "GL_" prefix so extension names match their WebGL spelling.
func normalizeExtension(name string) string {
	return strings.TrimPrefix(name, "GL_")
}
