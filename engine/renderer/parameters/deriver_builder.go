package parameters

// DeriverBuilderOption is a function that configures a deriver instance during construction.
type DeriverBuilderOption func(*deriver)

// WithEnvironmentResolvers is an option builder that replaces the environment map resolvers. The cube
// resolver serves the non-physical templates, the cubeUV resolver serves the standard and physical ones.
// A nil resolver keeps the default.
//
// Parameters:
//   - cube: the cube map resolver
//   - cubeUV: the prefiltered cubeUV resolver
//
// Returns:
//   - DeriverBuilderOption: a function that applies the resolvers to a deriver
func WithEnvironmentResolvers(cube, cubeUV EnvironmentResolver) DeriverBuilderOption {
	return func(d *deriver) {
		if cube != nil {
			d.cubeMaps = cube
		}
		if cubeUV != nil {
			d.cubeUVMaps = cubeUV
		}
	}
}
