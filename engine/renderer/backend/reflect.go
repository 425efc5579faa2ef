package backend

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/shader"
)

// reflectUniforms lists the uniforms declared by both stages of desc for devices without driver reflection.
// Locations are assigned in name order.
func reflectUniforms(desc ProgramDescriptor) []ActiveInfo {
	merged := make(map[string]shader.Declaration)
	for _, decl := range shader.Reflect(shader.StageVertex, desc.Vertex).Uniforms {
		merged[decl.Name] = decl
	}
	for _, decl := range shader.Reflect(shader.StageFragment, desc.Fragment).Uniforms {
		merged[decl.Name] = decl
	}
	names := make([]string, 0, len(merged))
	for n := range merged {
		names = append(names, n)
	}
	sort.Strings(names)

	out := make([]ActiveInfo, 0, len(names))
	for i, n := range names {
		decl := merged[n]
		out = append(out, ActiveInfo{Name: decl.Name, Type: decl.Type, Size: decl.Size, Location: i})
	}
	return out
}

// reflectAttributes lists the vertex inputs of desc. The index-0 attribute, when declared, takes location 0
// and the rest follow in name order.
func reflectAttributes(desc ProgramDescriptor) []ActiveInfo {
	attrs := orderAttributes(shader.Reflect(shader.StageVertex, desc.Vertex).Attributes, desc.Index0Attribute)
	_, locations := shader.VertexBufferLayouts(attrs)

	out := make([]ActiveInfo, 0, len(attrs))
	for _, a := range attrs {
		location := -1
		if l, ok := locations[a.Name]; ok {
			location = int(l)
		}
		out = append(out, ActiveInfo{Name: a.Name, Type: a.Type, Size: a.Size, Location: location})
	}
	return out
}

// orderAttributes moves the index-0 attribute to the front.
func orderAttributes(attrs []shader.Declaration, index0 string) []shader.Declaration {
	if index0 == "" {
		return attrs
	}
	sort.SliceStable(attrs, func(i, j int) bool {
		return attrs[i].Name == index0 && attrs[j].Name != index0
	})
	return attrs
}

// LocationSize returns the number of consecutive attribute locations a GLSL type occupies.
//
// Parameters:
//   - glslType: the attribute type name
//
// Returns:
//   - int: 2, 3 or 4 for mat2, mat3 and mat4, 1 otherwise
func LocationSize(glslType string) int {
	switch glslType {
	case "mat2":
		return 2
	case "mat3":
		return 3
	case "mat4":
		return 4
	}
	return 1
}
