package model

// object is the implementation of the Object interface.
type object struct {
	geometry       Geometry
	instanced      bool
	instanceColor  bool
	instanceMorph  bool
	skinned        bool
	batched        bool
	batchingColor  bool
	points         bool
	receiveShadows bool
}

// Object describes the drawable that a material is rendered on: the kind of draw it
// issues (instanced, batched, skinned, points) and the geometry it carries.
type Object interface {
	// Geometry retrieves the geometry drawn by the object.
	//
	// Returns:
	//   - Geometry: the geometry, never nil
	Geometry() Geometry

	// Instanced reports whether the object is drawn with per-instance transforms.
	Instanced() bool

	// InstanceColor reports whether an instanced object carries per-instance colors.
	InstanceColor() bool

	// InstanceMorph reports whether an instanced object carries per-instance morph weights.
	InstanceMorph() bool

	// Skinned reports whether the object is a skinned mesh bound to a skeleton.
	Skinned() bool

	// Batched reports whether the object is a multi-draw batch.
	Batched() bool

	// BatchingColor reports whether a batched object carries per-draw colors.
	BatchingColor() bool

	// Points reports whether the object renders as point sprites.
	Points() bool

	// ReceiveShadows reports whether the object samples shadow maps.
	ReceiveShadows() bool
}

var _ Object = &object{}

// NewObject creates a new Object around the given geometry with any provided options applied.
//
// Parameters:
//   - g: the geometry to draw; nil is replaced with an empty position-only geometry
//   - opts: variadic list of ObjectBuilderOption functions to configure the object
//
// Returns:
//   - Object: a new Object instance
func NewObject(g Geometry, opts ...ObjectBuilderOption) Object {
	if g == nil {
		g = NewGeometry()
	}
	o := &object{
		geometry:       g,
		receiveShadows: true,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *object) Geometry() Geometry  { return o.geometry }
func (o *object) Instanced() bool     { return o.instanced }
func (o *object) InstanceColor() bool { return o.instanced && o.instanceColor }
func (o *object) InstanceMorph() bool { return o.instanced && o.instanceMorph }
func (o *object) Skinned() bool       { return o.skinned }
func (o *object) Batched() bool       { return o.batched }
func (o *object) BatchingColor() bool { return o.batched && o.batchingColor }
func (o *object) Points() bool        { return o.points }
func (o *object) ReceiveShadows() bool {
	return o.receiveShadows
}
