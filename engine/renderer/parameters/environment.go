package parameters

import (
	"math"

	"github.com/Carmen-Shannon/oxy-progcache/common"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/material"
)

// EnvironmentResolver converts an environment texture into the form a program samples.
// Get returns nil while the converted texture is not ready; the caller retries on the next frame.
type EnvironmentResolver interface {
	Get(t *material.Texture) *material.Texture
}

// passthroughResolver returns every texture unchanged.
type passthroughResolver struct{}

// PassthroughResolver returns an EnvironmentResolver that performs no conversion.
func PassthroughResolver() EnvironmentResolver {
	return passthroughResolver{}
}

func (passthroughResolver) Get(t *material.Texture) *material.Texture {
	return t
}

// cubeMaps converts equirectangular maps into cube maps.
type cubeMaps struct {
	converted map[*material.Texture]*material.Texture
}

// NewCubeMaps returns the resolver used by the non-physical templates. Equirectangular maps resolve to a
// cube texture with the matching reflection or refraction mapping once their image height is known.
//
// Returns:
//   - EnvironmentResolver: the resolver
func NewCubeMaps() EnvironmentResolver {
	return &cubeMaps{converted: make(map[*material.Texture]*material.Texture)}
}

func (c *cubeMaps) Get(t *material.Texture) *material.Texture {
	if t == nil {
		return nil
	}
	var mapping common.Mapping
	switch t.Mapping {
	case common.EquirectangularReflectionMapping:
		mapping = common.CubeReflectionMapping
	case common.EquirectangularRefractionMapping:
		mapping = common.CubeRefractionMapping
	default:
		return t
	}
	if out, ok := c.converted[t]; ok {
		return out
	}
	if t.Height <= 0 {
		return nil
	}
	out := &material.Texture{
		Name:       t.Name,
		ColorSpace: t.ColorSpace,
		Mapping:    mapping,
		Height:     t.Height / 2,
	}
	c.converted[t] = out
	return out
}

// cubeUVMaps converts cube and equirectangular maps into prefiltered cubeUV maps.
type cubeUVMaps struct {
	converted map[*material.Texture]*material.Texture
}

// NewCubeUVMaps returns the resolver used by the physical template. Cube and equirectangular maps resolve
// to a prefiltered cubeUV texture whose height is the mip-chain height of the prefiltered layout.
//
// Returns:
//   - EnvironmentResolver: the resolver
func NewCubeUVMaps() EnvironmentResolver {
	return &cubeUVMaps{converted: make(map[*material.Texture]*material.Texture)}
}

func (c *cubeUVMaps) Get(t *material.Texture) *material.Texture {
	if t == nil {
		return nil
	}
	var cubeSize int
	switch t.Mapping {
	case common.CubeReflectionMapping, common.CubeRefractionMapping:
		cubeSize = t.Height
	case common.EquirectangularReflectionMapping, common.EquirectangularRefractionMapping:
		cubeSize = t.Height / 2
	default:
		return t
	}
	if out, ok := c.converted[t]; ok {
		return out
	}
	if cubeSize <= 0 {
		return nil
	}
	out := &material.Texture{
		Name:       t.Name,
		ColorSpace: t.ColorSpace,
		Mapping:    common.CubeUVReflectionMapping,
		Height:     CubeUVHeight(cubeSize),
	}
	c.converted[t] = out
	return out
}

// CubeUVHeight returns the height of the prefiltered layout built from a cube of the given face size. The
// face size is rounded down to a power of two and the layout stacks four rows of it.
//
// Parameters:
//   - cubeSize: the face size in texels
//
// Returns:
//   - int: the layout height in texels
func CubeUVHeight(cubeSize int) int {
	if cubeSize < 1 {
		cubeSize = 1
	}
	lodMax := math.Floor(math.Log2(float64(cubeSize)))
	return 4 * int(math.Pow(2, lodMax))
}
