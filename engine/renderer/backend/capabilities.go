package backend

import (
	"github.com/Carmen-Shannon/oxy-progcache/common"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/parameters"
)

// Capabilities describes what a device supports. It satisfies the capability oracle used when deriving program
// parameters.
type Capabilities struct {
	// VertexPrecision and FragmentPrecision are the highest float precisions of each stage.
	VertexPrecision   common.Precision
	FragmentPrecision common.Precision

	// VertexTextureUnits is the number of samplers the vertex stage may use. 0 disables vertex textures.
	VertexTextureUnits int

	// TextureUnits is the number of samplers the fragment stage may use, 0 if unknown.
	TextureUnits int

	DrawBuffers bool

	// GLSLES3 reports whether the shader compiler accepts "#version 300 es" sources.
	GLSLES3 bool

	// Extensions holds the names of the available extensions.
	Extensions map[string]bool
}

var _ parameters.CapabilityOracle = Capabilities{}

// DefaultCapabilities returns the guaranteed minimum of a WebGL 2 context with high precision in both stages.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		VertexPrecision:    common.PrecisionHigh,
		FragmentPrecision:  common.PrecisionHigh,
		VertexTextureUnits: 16,
		TextureUnits:       16,
		DrawBuffers:        true,
		GLSLES3:            true,
		Extensions:         map[string]bool{},
	}
}

// MaxPrecision returns the highest precision supported by both stages that is not above requested.
// An unset request is treated as highp.
//
// Parameters:
//   - requested: the precision asked for
//
// Returns:
//   - common.Precision: lowp, mediump or highp
func (c Capabilities) MaxPrecision(requested common.Precision) common.Precision {
	rank := requested.Rank()
	if rank == 0 {
		rank = common.PrecisionHigh.Rank()
	}
	supported := min(c.VertexPrecision.Rank(), c.FragmentPrecision.Rank())
	switch min(rank, supported) {
	case 3:
		return common.PrecisionHigh
	case 2:
		return common.PrecisionMedium
	default:
		return common.PrecisionLow
	}
}

// VertexTextures reports whether the vertex stage can sample textures.
func (c Capabilities) VertexTextures() bool {
	return c.VertexTextureUnits > 0
}

// MaxTextureUnits returns the fragment sampler budget.
func (c Capabilities) MaxTextureUnits() int {
	return c.TextureUnits
}

// HasExtension reports whether the named extension is available.
func (c Capabilities) HasExtension(name string) bool {
	return c.Extensions[name]
}

// WithExtensions returns a copy of c with the given extensions enabled.
func (c Capabilities) WithExtensions(names ...string) Capabilities {
	ext := make(map[string]bool, len(c.Extensions)+len(names))
	for k, v := range c.Extensions {
		ext[k] = v
	}
	for _, n := range names {
		ext[n] = true
	}
	c.Extensions = ext
	return c
}
