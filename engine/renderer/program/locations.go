package program

import (
	"strings"

	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/backend"
)

// Uniform is one active uniform of a linked program.
type Uniform struct {
	// Name is the active name with a trailing "[0]" removed, e.g. "boneMatrices" or "pointLights[1].color".
	Name     string
	Type     string
	Size     int
	Location int
}

// Attribute is one active vertex input of a linked program.
type Attribute struct {
	Name     string
	Type     string
	Location int

	// LocationSize is the number of consecutive locations the attribute occupies.
	LocationSize int
}

// Uniforms maps normalised uniform names to their entries.
type Uniforms map[string]Uniform

// Attributes maps attribute names to their entries.
type Attributes map[string]Attribute

// normalizeUniformName strips the array suffix drivers append to the first element of a plain array.
func normalizeUniformName(name string) string {
	return strings.TrimSuffix(name, "[0]")
}

// newUniforms builds the uniform table from the device's active uniforms.
func newUniforms(active []backend.ActiveInfo) Uniforms {
	out := make(Uniforms, len(active))
	for _, a := range active {
		name := normalizeUniformName(a.Name)
		out[name] = Uniform{Name: name, Type: a.Type, Size: a.Size, Location: a.Location}
	}
	return out
}

// newAttributes builds the attribute table from the device's active attributes.
func newAttributes(active []backend.ActiveInfo) Attributes {
	out := make(Attributes, len(active))
	for _, a := range active {
		out[a.Name] = Attribute{
			Name:         a.Name,
			Type:         a.Type,
			Location:     a.Location,
			LocationSize: backend.LocationSize(a.Type),
		}
	}
	return out
}
