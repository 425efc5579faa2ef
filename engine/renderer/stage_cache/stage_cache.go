// Package stage_cache interns the stage sources of custom shader materials. Byte-identical sources share
// one entry and one small integer id, which the program cache key uses in place of the full text.
package stage_cache

import (
	"github.com/Carmen-Shannon/oxy-progcache/common"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/material"
)

// stage is one interned source text.
type stage struct {
	id        int
	code      string
	usedTimes int
}

// cache is the implementation of the Cache interface.
type cache struct {
	nextID    int
	stages    map[string]*stage
	materials map[material.Material]map[*stage]struct{}
}

// Cache interns custom stage sources by value and reference counts them per owning material.
//
// A material references the stages it registered through a back-reference set kept by the cache. The
// material never owns a stage: disposing a material must call Remove, which decrements exactly the stages
// that material registered and evicts those that reach zero. Ids are issued by the cache instance and
// start at 1; 0 is never a valid stage id.
type Cache interface {
	// Update registers the current vertex and fragment sources of a material. Registering the same source
	// for the same material again does not change its reference count.
	//
	// Parameters:
	//   - m: the custom material
	Update(m material.Material)

	// Remove releases every stage the material registered and forgets the material.
	// Removing an unknown material is a no-op.
	//
	// Parameters:
	//   - m: the material being disposed
	Remove(m material.Material)

	// VertexShaderID returns the id of the material's vertex source, interning it if needed.
	//
	// Parameters:
	//   - m: the custom material
	//
	// Returns:
	//   - int: the stage id
	VertexShaderID(m material.Material) int

	// FragmentShaderID returns the id of the material's fragment source, interning it if needed.
	//
	// Parameters:
	//   - m: the custom material
	//
	// Returns:
	//   - int: the stage id
	FragmentShaderID(m material.Material) int

	// UsedTimes returns the reference count of the entry holding the given source, or 0 if it is not interned.
	//
	// Parameters:
	//   - code: the stage source text
	//
	// Returns:
	//   - int: the reference count
	UsedTimes(code string) int

	// Len returns the number of interned stages.
	Len() int

	// Materials returns the number of materials holding back-references.
	Materials() int

	// Dispose drops every entry and back-reference. Ids keep increasing after a dispose.
	Dispose()
}

var _ Cache = &cache{}

// NewCache creates an empty Cache with its own id counter.
//
// Returns:
//   - Cache: a new Cache instance
func NewCache() Cache {
	return &cache{
		nextID:    1,
		stages:    make(map[string]*stage),
		materials: make(map[material.Material]map[*stage]struct{}),
	}
}

func (c *cache) Update(m material.Material) {
	vs := c.stageFor(m.VertexShader())
	fs := c.stageFor(m.FragmentShader())

	owned := c.materials[m]
	if owned == nil {
		owned = make(map[*stage]struct{}, 2)
		c.materials[m] = owned
	}
	for _, s := range [2]*stage{vs, fs} {
		if _, ok := owned[s]; ok {
			continue
		}
		owned[s] = struct{}{}
		s.usedTimes++
	}
}

func (c *cache) Remove(m material.Material) {
	owned, ok := c.materials[m]
	if !ok {
		return
	}
	for s := range owned {
		s.usedTimes--
		if s.usedTimes == 0 {
			delete(c.stages, s.code)
			common.Logger().Debug("stage evicted", "id", s.id)
		}
	}
	delete(c.materials, m)
}

func (c *cache) VertexShaderID(m material.Material) int {
	return c.stageFor(m.VertexShader()).id
}

func (c *cache) FragmentShaderID(m material.Material) int {
	return c.stageFor(m.FragmentShader()).id
}

func (c *cache) UsedTimes(code string) int {
	if s, ok := c.stages[code]; ok {
		return s.usedTimes
	}
	return 0
}

func (c *cache) Len() int {
	return len(c.stages)
}

func (c *cache) Materials() int {
	return len(c.materials)
}

func (c *cache) Dispose() {
	clear(c.stages)
	clear(c.materials)
}

// stageFor returns the entry for code, creating it with a fresh id when absent.
func (c *cache) stageFor(code string) *stage {
	s, ok := c.stages[code]
	if !ok {
		s = &stage{id: c.nextID, code: code}
		c.nextID++
		c.stages[code] = s
	}
	return s
}
