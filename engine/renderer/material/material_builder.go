package material

import "github.com/Carmen-Shannon/oxy-progcache/common"

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithMap is an option builder that binds a texture to a map slot.
//
// Parameters:
//   - slot: the map slot
//   - texture: the texture to bind
//
// Returns:
//   - MaterialBuilderOption: a function that applies the map option to a material
func WithMap(slot MapSlot, texture *Texture) MaterialBuilderOption {
	return func(m *material) {
		m.SetMap(slot, texture)
	}
}

// WithDefine is an option builder that appends a preprocessor define. Defines keep insertion order,
// which is also their order in the program cache key.
//
// Parameters:
//   - name: the define name
//   - value: the define value, "" for a bare define
//
// Returns:
//   - MaterialBuilderOption: a function that applies the define option to a material
func WithDefine(name, value string) MaterialBuilderOption {
	return func(m *material) {
		m.SetDefine(name, value)
	}
}

// WithShaders is an option builder that sets the custom stage sources of a Shader or RawShader material.
//
// Parameters:
//   - vertex: the vertex stage source
//   - fragment: the fragment stage source
//
// Returns:
//   - MaterialBuilderOption: a function that applies the shader sources to a material
func WithShaders(vertex, fragment string) MaterialBuilderOption {
	return func(m *material) {
		m.vertexShader = vertex
		m.fragmentShader = fragment
	}
}

// WithCustomProgramCacheKey is an option builder that sets a function whose result is appended to the
// program cache key. Use it when the material alters its sources in a way the other properties do not capture.
//
// Parameters:
//   - fn: the cache key contribution
//
// Returns:
//   - MaterialBuilderOption: a function that applies the cache key option to a material
func WithCustomProgramCacheKey(fn func() string) MaterialBuilderOption {
	return func(m *material) {
		m.customCacheKey = fn
	}
}

// WithGLSLVersion is an option builder that sets the version pragma a raw material declares.
//
// Parameters:
//   - glslVersion: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithGLSLVersion(glslVersion common.GLSLVersion) MaterialBuilderOption {
	return func(m *material) {
		m.glslVersion = glslVersion
	}
}

// WithPrecision is an option builder that sets the requested float precision.
//
// Parameters:
//   - precision: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithPrecision(precision common.Precision) MaterialBuilderOption {
	return func(m *material) {
		m.precision = precision
	}
}

// WithSide is an option builder that sets which faces are rendered.
//
// Parameters:
//   - side: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithSide(side common.Side) MaterialBuilderOption {
	return func(m *material) {
		m.side = side
	}
}

// WithFlatShading is an option builder that sets whether normals are derived per face.
//
// Parameters:
//   - flatShading: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithFlatShading(flatShading bool) MaterialBuilderOption {
	return func(m *material) {
		m.flatShading = flatShading
	}
}

// WithVertexColors is an option builder that sets whether the color attribute tints the surface.
//
// Parameters:
//   - vertexColors: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithVertexColors(vertexColors bool) MaterialBuilderOption {
	return func(m *material) {
		m.vertexColors = vertexColors
	}
}

// WithVertexAlphas is an option builder that sets whether the color attribute carries alpha.
//
// Parameters:
//   - vertexAlphas: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithVertexAlphas(vertexAlphas bool) MaterialBuilderOption {
	return func(m *material) {
		m.vertexAlphas = vertexAlphas
	}
}

// WithFog is an option builder that sets whether scene fog affects the material.
//
// Parameters:
//   - fog: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithFog(fog bool) MaterialBuilderOption {
	return func(m *material) {
		m.fog = fog
	}
}

// WithLights is an option builder that sets whether the material is affected by lights.
//
// Parameters:
//   - lights: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithLights(lights bool) MaterialBuilderOption {
	return func(m *material) {
		m.lights = lights
	}
}

// WithToneMapped is an option builder that sets whether the renderer tone mapping applies.
//
// Parameters:
//   - toneMapped: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithToneMapped(toneMapped bool) MaterialBuilderOption {
	return func(m *material) {
		m.toneMapped = toneMapped
	}
}

// WithDithering is an option builder that sets whether output is dithered.
//
// Parameters:
//   - dithering: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithDithering(dithering bool) MaterialBuilderOption {
	return func(m *material) {
		m.dithering = dithering
	}
}

// WithPremultipliedAlpha is an option builder that sets whether the output is premultiplied by alpha.
//
// Parameters:
//   - premultipliedAlpha: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithPremultipliedAlpha(premultipliedAlpha bool) MaterialBuilderOption {
	return func(m *material) {
		m.premultipliedAlpha = premultipliedAlpha
	}
}

// WithAlphaHash is an option builder that sets whether hashed alpha testing is used.
//
// Parameters:
//   - alphaHash: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithAlphaHash(alphaHash bool) MaterialBuilderOption {
	return func(m *material) {
		m.alphaHash = alphaHash
	}
}

// WithAlphaToCoverage is an option builder that sets whether alpha to coverage is used.
//
// Parameters:
//   - alphaToCoverage: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithAlphaToCoverage(alphaToCoverage bool) MaterialBuilderOption {
	return func(m *material) {
		m.alphaToCoverage = alphaToCoverage
	}
}

// WithAlphaTest is an option builder that sets the alpha test threshold.
//
// Parameters:
//   - alphaTest: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithAlphaTest(alphaTest float32) MaterialBuilderOption {
	return func(m *material) {
		m.alphaTest = alphaTest
	}
}

// WithTransparent is an option builder that sets whether the material is blended.
//
// Parameters:
//   - transparent: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithTransparent(transparent bool) MaterialBuilderOption {
	return func(m *material) {
		m.transparent = transparent
	}
}

// WithSizeAttenuation is an option builder that sets whether point and sprite size attenuates with depth.
//
// Parameters:
//   - sizeAttenuation: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithSizeAttenuation(sizeAttenuation bool) MaterialBuilderOption {
	return func(m *material) {
		m.sizeAttenuation = sizeAttenuation
	}
}

// WithWireframe is an option builder that sets whether the geometry renders as wireframe.
//
// Parameters:
//   - wireframe: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithWireframe(wireframe bool) MaterialBuilderOption {
	return func(m *material) {
		m.wireframe = wireframe
	}
}

// WithClearcoat is an option builder that sets the clearcoat layer strength.
//
// Parameters:
//   - clearcoat: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithClearcoat(clearcoat float32) MaterialBuilderOption {
	return func(m *material) {
		m.clearcoat = clearcoat
	}
}

// WithIridescence is an option builder that sets the iridescence layer strength.
//
// Parameters:
//   - iridescence: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithIridescence(iridescence float32) MaterialBuilderOption {
	return func(m *material) {
		m.iridescence = iridescence
	}
}

// WithSheen is an option builder that sets the sheen layer strength.
//
// Parameters:
//   - sheen: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithSheen(sheen float32) MaterialBuilderOption {
	return func(m *material) {
		m.sheen = sheen
	}
}

// WithTransmission is an option builder that sets the transmission strength.
//
// Parameters:
//   - transmission: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithTransmission(transmission float32) MaterialBuilderOption {
	return func(m *material) {
		m.transmission = transmission
	}
}

// WithAnisotropy is an option builder that sets the anisotropy strength.
//
// Parameters:
//   - anisotropy: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithAnisotropy(anisotropy float32) MaterialBuilderOption {
	return func(m *material) {
		m.anisotropy = anisotropy
	}
}

// WithDispersion is an option builder that sets the dispersion strength.
//
// Parameters:
//   - dispersion: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithDispersion(dispersion float32) MaterialBuilderOption {
	return func(m *material) {
		m.dispersion = dispersion
	}
}

// WithNormalMapType is an option builder that sets the space of the normal map.
//
// Parameters:
//   - normalMapType: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithNormalMapType(normalMapType NormalMapType) MaterialBuilderOption {
	return func(m *material) {
		m.normalMapType = normalMapType
	}
}

// WithCombine is an option builder that sets how the environment map blends with the surface.
//
// Parameters:
//   - combine: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithCombine(combine common.Combine) MaterialBuilderOption {
	return func(m *material) {
		m.combine = combine
	}
}

// WithDepthPacking is an option builder that sets how a depth material encodes depth.
//
// Parameters:
//   - depthPacking: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithDepthPacking(depthPacking common.DepthPacking) MaterialBuilderOption {
	return func(m *material) {
		m.depthPacking = depthPacking
	}
}

// WithClipCullDistance is an option builder that sets whether the clip/cull distance extension is requested.
//
// Parameters:
//   - clipCullDistance: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithClipCullDistance(clipCullDistance bool) MaterialBuilderOption {
	return func(m *material) {
		m.clipCullDistance = clipCullDistance
	}
}

// WithMultiDraw is an option builder that sets whether the multi-draw extension is requested.
//
// Parameters:
//   - multiDraw: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithMultiDraw(multiDraw bool) MaterialBuilderOption {
	return func(m *material) {
		m.multiDraw = multiDraw
	}
}

// WithIndex0AttributeName is an option builder that sets the attribute bound to location 0.
//
// Parameters:
//   - index0AttributeName: the value to apply
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithIndex0AttributeName(index0AttributeName string) MaterialBuilderOption {
	return func(m *material) {
		m.index0AttributeName = index0AttributeName
	}
}
