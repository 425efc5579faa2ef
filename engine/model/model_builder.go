package model

// GeometryBuilderOption is a functional option for configuring a Geometry via NewGeometry.
type GeometryBuilderOption func(*geometry)

// ObjectBuilderOption is a functional option for configuring an Object via NewObject.
type ObjectBuilderOption func(*object)

// WithName is an option builder that sets the name of the Geometry.
//
// Parameters:
//   - name: the geometry identifier
//
// Returns:
//   - GeometryBuilderOption: a function that applies the name option to a geometry
func WithName(name string) GeometryBuilderOption {
	return func(g *geometry) {
		g.name = name
	}
}

// WithAttribute is an option builder that declares a vertex attribute and its component count.
//
// Parameters:
//   - name: the attribute name
//   - itemSize: the number of components per vertex
//
// Returns:
//   - GeometryBuilderOption: a function that applies the attribute option to a geometry
func WithAttribute(name string, itemSize int) GeometryBuilderOption {
	return func(g *geometry) {
		g.attributes[name] = itemSize
	}
}

// WithMorphTargets is an option builder that sets the morph target counts per channel.
//
// Parameters:
//   - position: number of position morph targets
//   - normal: number of normal morph targets
//   - color: number of color morph targets
//
// Returns:
//   - GeometryBuilderOption: a function that applies the morph option to a geometry
func WithMorphTargets(position, normal, color int) GeometryBuilderOption {
	return func(g *geometry) {
		g.morph = MorphAttributes{Position: position, Normal: normal, Color: color}
	}
}

// WithInstancing is an option builder that marks the object as instanced.
//
// Parameters:
//   - color: true if per-instance colors are present
//   - morph: true if per-instance morph weights are present
//
// Returns:
//   - ObjectBuilderOption: a function that applies the instancing option to an object
func WithInstancing(color, morph bool) ObjectBuilderOption {
	return func(o *object) {
		o.instanced = true
		o.instanceColor = color
		o.instanceMorph = morph
	}
}

// WithBatching is an option builder that marks the object as a multi-draw batch.
//
// Parameters:
//   - color: true if per-draw colors are present
//
// Returns:
//   - ObjectBuilderOption: a function that applies the batching option to an object
func WithBatching(color bool) ObjectBuilderOption {
	return func(o *object) {
		o.batched = true
		o.batchingColor = color
	}
}

// WithSkinning is an option builder that marks the object as a skinned mesh bound to a skeleton.
//
// Returns:
//   - ObjectBuilderOption: a function that applies the skinning option to an object
func WithSkinning() ObjectBuilderOption {
	return func(o *object) {
		o.skinned = true
	}
}

// WithPoints is an option builder that marks the object as a point cloud.
//
// Returns:
//   - ObjectBuilderOption: a function that applies the points option to an object
func WithPoints() ObjectBuilderOption {
	return func(o *object) {
		o.points = true
	}
}

// WithReceiveShadows is an option builder that sets whether the object samples shadow maps.
//
// Parameters:
//   - receive: true to sample shadow maps
//
// Returns:
//   - ObjectBuilderOption: a function that applies the option to an object
func WithReceiveShadows(receive bool) ObjectBuilderOption {
	return func(o *object) {
		o.receiveShadows = receive
	}
}
