package model

// Well-known attribute names read by program selection.
const (
	AttributePosition = "position"
	AttributeNormal   = "normal"
	AttributeTangent  = "tangent"
	AttributeColor    = "color"
	AttributeUV       = "uv"
	AttributeUV1      = "uv1"
	AttributeUV2      = "uv2"
	AttributeUV3      = "uv3"
)

// MorphAttributes holds the number of morph targets stored per channel. A zero count means the channel is absent.
type MorphAttributes struct {
	Position int
	Normal   int
	Color    int
}

// geometry is the implementation of the Geometry interface.
type geometry struct {
	name       string
	attributes map[string]int
	morph      MorphAttributes
}

// Geometry describes the vertex data layout of a drawable: which attributes exist, their
// component counts, and its morph target channels. Vertex data itself is owned elsewhere.
type Geometry interface {
	// Name retrieves the geometry identifier used in log output.
	//
	// Returns:
	//   - string: the name of the geometry
	Name() string

	// HasAttribute reports whether a vertex attribute with the given name exists.
	//
	// Parameters:
	//   - name: the attribute name, e.g. AttributeTangent
	//
	// Returns:
	//   - bool: true if the attribute is present
	HasAttribute(name string) bool

	// AttributeItemSize retrieves the component count of an attribute.
	//
	// Parameters:
	//   - name: the attribute name
	//
	// Returns:
	//   - int: the component count, or 0 if the attribute is absent
	AttributeItemSize(name string) int

	// MorphAttributes retrieves the morph target counts per channel.
	//
	// Returns:
	//   - MorphAttributes: counts for the position, normal and color channels
	MorphAttributes() MorphAttributes
}

var _ Geometry = &geometry{}

// NewGeometry creates a new Geometry with a three-component position attribute and any provided options applied.
//
// Parameters:
//   - opts: variadic list of GeometryBuilderOption functions to configure the geometry
//
// Returns:
//   - Geometry: a new Geometry instance
func NewGeometry(opts ...GeometryBuilderOption) Geometry {
	g := &geometry{
		attributes: map[string]int{AttributePosition: 3},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *geometry) Name() string {
	return g.name
}

func (g *geometry) HasAttribute(name string) bool {
	_, ok := g.attributes[name]
	return ok
}

func (g *geometry) AttributeItemSize(name string) int {
	return g.attributes[name]
}

func (g *geometry) MorphAttributes() MorphAttributes {
	return g.morph
}
