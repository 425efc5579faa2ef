package main

import (
	"github.com/Carmen-Shannon/oxy-progcache/common"
	"github.com/Carmen-Shannon/oxy-progcache/engine/model"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/material"
)

const (
	shaderVertex = `varying vec2 vUv;
void main() {
	vUv = uv;
	gl_Position = projectionMatrix * modelViewMatrix * vec4( position, 1.0 );
}`
	shaderFragment = `uniform vec3 tint;
varying vec2 vUv;
void main() {
	gl_FragColor = vec4( tint * vec3( vUv, 1.0 ), 1.0 );
}`

	rawVertex = `precision highp float;
uniform mat4 modelViewMatrix;
uniform mat4 projectionMatrix;
in vec3 position;
void main() {
	gl_Position = projectionMatrix * modelViewMatrix * vec4( position, 1.0 );
}`
	rawFragment = `precision highp float;
out vec4 fragColor;
void main() {
	fragColor = vec4( 1.0 );
}`
)

// entry is one material of the catalogue and the object it is drawn on.
type entry struct {
	label    string
	material material.Material
	object   model.Object
}

type kind struct {
	label   string
	typ     material.Type
	options []material.MaterialBuilderOption
	object  []model.ObjectBuilderOption
}

// catalogue builds every material kind twice, once untextured and once with a color map, plus the custom and
// raw shader materials.
func catalogue() []entry {
	mesh := model.NewGeometry(model.WithName("mesh"), model.WithAttribute("normal", 3), model.WithAttribute("uv", 2))
	kinds := []kind{
		{label: "basic", typ: material.TypeBasic},
		{label: "lambert", typ: material.TypeLambert},
		{label: "phong", typ: material.TypePhong},
		{label: "standard", typ: material.TypeStandard},
		{label: "physical+clearcoat", typ: material.TypePhysical, options: []material.MaterialBuilderOption{material.WithClearcoat(1)}},
		{label: "toon", typ: material.TypeToon},
		{label: "matcap", typ: material.TypeMatcap},
		{label: "points", typ: material.TypePoints, object: []model.ObjectBuilderOption{model.WithPoints()}},
		{label: "dashed", typ: material.TypeLineDashed},
		{label: "depth", typ: material.TypeDepth},
	}

	albedo := &material.Texture{Name: "albedo", ColorSpace: common.SRGBColorSpace, Mapping: common.UVMapping}
	var out []entry
	for _, k := range kinds {
		for _, textured := range []bool{false, true} {
			opts := append([]material.MaterialBuilderOption{material.WithName(k.label)}, k.options...)
			label := k.label
			if textured {
				opts = append(opts, material.WithMap(material.MapColor, albedo))
				if k.typ == material.TypeMatcap {
					opts = append(opts, material.WithMap(material.MapMatcap, albedo))
				}
				label += "+map"
			}
			out = append(out, entry{
				label:    label,
				material: material.NewMaterial(k.typ, opts...),
				object:   model.NewObject(mesh, k.object...),
			})
		}
	}

	shader := material.NewMaterial(material.TypeShader, material.WithName("shader"), material.WithShaders(shaderVertex, shaderFragment))
	raw := material.NewMaterial(material.TypeRawShader, material.WithName("raw"), material.WithShaders(rawVertex, rawFragment), material.WithGLSLVersion(common.GLSL3))
	out = append(out,
		entry{label: "shader", material: shader, object: model.NewObject(mesh)},
		entry{label: "raw", material: raw, object: model.NewObject(mesh)},
	)
	return out
}
