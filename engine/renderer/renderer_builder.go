package renderer

import (
	"github.com/Carmen-Shannon/oxy-progcache/common"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/parameters"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/program"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/shader"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithToneMapping sets the tone mapping operator applied by tone-mapped materials on the display target.
//
// Parameters:
//   - toneMapping: the operator
//
// Returns:
//   - RendererBuilderOption: a function that applies the tone mapping option to a renderer
func WithToneMapping(toneMapping common.ToneMapping) RendererBuilderOption {
	return func(r *renderer) {
		r.settings.ToneMapping = toneMapping
	}
}

// WithOutputColorSpace sets the color space written to the display target.
//
// Parameters:
//   - colorSpace: the output color space
//
// Returns:
//   - RendererBuilderOption: a function that applies the color space option to a renderer
func WithOutputColorSpace(colorSpace common.ColorSpace) RendererBuilderOption {
	return func(r *renderer) {
		r.settings.OutputColorSpace = colorSpace
	}
}

// WithShadowMap enables or disables shadow maps and selects their filtering variant.
//
// Parameters:
//   - enabled: whether lit programs sample shadow maps
//   - shadowMapType: the filtering variant
//
// Returns:
//   - RendererBuilderOption: a function that applies the shadow map option to a renderer
func WithShadowMap(enabled bool, shadowMapType common.ShadowMapType) RendererBuilderOption {
	return func(r *renderer) {
		r.settings.ShadowMapEnabled = enabled
		r.settings.ShadowMapType = shadowMapType
	}
}

// WithPrecision sets the renderer precision used by materials that do not request one.
//
// Parameters:
//   - precision: the requested precision, clamped to the device maximum
//
// Returns:
//   - RendererBuilderOption: a function that applies the precision option to a renderer
func WithPrecision(precision common.Precision) RendererBuilderOption {
	return func(r *renderer) {
		r.settings.Precision = precision
	}
}

// WithLegacyLights selects the legacy light intensity model.
//
// Parameters:
//   - legacy: whether legacy lighting is used
//
// Returns:
//   - RendererBuilderOption: a function that applies the legacy lights option to a renderer
func WithLegacyLights(legacy bool) RendererBuilderOption {
	return func(r *renderer) {
		r.settings.LegacyLights = legacy
	}
}

// WithLogarithmicDepthBuffer enables the logarithmic depth buffer.
//
// Parameters:
//   - enabled: whether depth is written logarithmically
//
// Returns:
//   - RendererBuilderOption: a function that applies the option to a renderer
func WithLogarithmicDepthBuffer(enabled bool) RendererBuilderOption {
	return func(r *renderer) {
		r.settings.LogarithmicDepthBuffer = enabled
	}
}

// WithReverseDepthBuffer enables the reversed depth buffer.
//
// Parameters:
//   - enabled: whether depth is written reversed
//
// Returns:
//   - RendererBuilderOption: a function that applies the option to a renderer
func WithReverseDepthBuffer(enabled bool) RendererBuilderOption {
	return func(r *renderer) {
		r.settings.ReverseDepthBuffer = enabled
	}
}

// WithCheckShaderErrors enables the link checks run on the first location query of every program.
//
// Parameters:
//   - enabled: whether failed links are diagnosed
//
// Returns:
//   - RendererBuilderOption: a function that applies the debug option to a renderer
func WithCheckShaderErrors(enabled bool) RendererBuilderOption {
	return func(r *renderer) {
		r.checkShaderErrors = enabled
	}
}

// WithOnShaderError installs the hook receiving the diagnostics of failed links.
//
// Parameters:
//   - fn: the hook
//
// Returns:
//   - RendererBuilderOption: a function that applies the hook to a renderer
func WithOnShaderError(fn func(*program.Diagnostics)) RendererBuilderOption {
	return func(r *renderer) {
		r.onShaderError = fn
	}
}

// WithEnvironmentResolvers replaces the environment map resolvers. A nil resolver keeps the default.
//
// Parameters:
//   - cube: the cube map resolver
//   - cubeUV: the prefiltered cubeUV resolver
//
// Returns:
//   - RendererBuilderOption: a function that applies the resolvers to a renderer
func WithEnvironmentResolvers(cube, cubeUV parameters.EnvironmentResolver) RendererBuilderOption {
	return func(r *renderer) {
		r.cubeMaps = cube
		r.cubeUVMaps = cubeUV
	}
}

// WithBindingStates sets the binding-state cache told about destroyed programs.
//
// Parameters:
//   - b: the binding-state cache
//
// Returns:
//   - RendererBuilderOption: a function that applies the binding-state cache to a renderer
func WithBindingStates(b program.BindingStates) RendererBuilderOption {
	return func(r *renderer) {
		r.bindingStates = b
	}
}

// WithDictionary replaces the chunk and template dictionary.
//
// Parameters:
//   - dict: the dictionary
//
// Returns:
//   - RendererBuilderOption: a function that applies the dictionary to a renderer
func WithDictionary(dict shader.Dictionary) RendererBuilderOption {
	return func(r *renderer) {
		r.dictionary = dict
	}
}

// WithCompileWorkers sets the number of workers preprocessing sources during Compile.
//
// Parameters:
//   - n: the worker count, at least 1
//
// Returns:
//   - RendererBuilderOption: a function that applies the worker count to a renderer
func WithCompileWorkers(n int) RendererBuilderOption {
	return func(r *renderer) {
		r.compileWorkers = n
	}
}
