package light

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction.
	// Used for large distant sources like the sun or moon.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a position.
	LightTypePoint

	// LightTypeSpot represents a light that emits in a cone from a position along a direction.
	// A spot light may project a texture (a "cookie" map).
	LightTypeSpot

	// LightTypeHemisphere blends a sky color and a ground color by surface orientation.
	// It never casts shadows.
	LightTypeHemisphere

	// LightTypeRectArea emits from a rectangle. Only the physically based templates shade it.
	// It never casts shadows.
	LightTypeRectArea

	// LightTypeProbe contributes baked spherical-harmonic irradiance.
	LightTypeProbe
)

// String returns a stable lowercase name for the light type.
func (t LightType) String() string {
	switch t {
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	case LightTypeSpot:
		return "spot"
	case LightTypeHemisphere:
		return "hemisphere"
	case LightTypeRectArea:
		return "rect_area"
	case LightTypeProbe:
		return "probe"
	default:
		return "unknown"
	}
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType    LightType
	enabled      bool
	castsShadows bool
	hasMap       bool
}

// Light defines the interface for a light source as seen by program selection.
//
// Only the properties that change the compiled program are exposed: the light
// category, whether it is enabled, whether it casts shadows and whether a spot
// light projects a texture.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Enabled returns whether this light is active for rendering.
	// Disabled lights are not counted when summarizing the light state.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// CastsShadows returns whether this light renders a shadow map. Hemisphere,
	// rect-area and probe lights always report false.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool

	// HasMap returns whether a spot light projects a texture. Always false for other types.
	//
	// Returns:
	//   - bool: true if a projection map is set
	HasMap() bool

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetCastsShadows sets whether the light is eligible for shadow mapping.
	//
	// Parameters:
	//   - castsShadows: true to enable shadow casting
	SetCastsShadows(castsShadows bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows && l.canCastShadows()
}

func (l *lightImpl) HasMap() bool {
	return l.hasMap && l.lightType == LightTypeSpot
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

func (l *lightImpl) SetCastsShadows(castsShadows bool) {
	l.castsShadows = castsShadows
}

func (l *lightImpl) canCastShadows() bool {
	switch l.lightType {
	case LightTypeDirectional, LightTypePoint, LightTypeSpot:
		return true
	default:
		return false
	}
}
