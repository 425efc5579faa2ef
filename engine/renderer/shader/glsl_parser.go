package shader

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// attributeFormat is the vertex format of one attribute location and its size in bytes.
type attributeFormat struct {
	format wgpu.VertexFormat
	size   uint64
}

// glslVertexFormatMap maps GLSL attribute types to their corresponding wgpu vertex format and byte size
var glslVertexFormatMap = map[string]attributeFormat{
	"float": {wgpu.VertexFormatFloat32, 4},
	"vec2":  {wgpu.VertexFormatFloat32x2, 8},
	"vec3":  {wgpu.VertexFormatFloat32x3, 12},
	"vec4":  {wgpu.VertexFormatFloat32x4, 16},
	"int":   {wgpu.VertexFormatSint32, 4},
	"ivec2": {wgpu.VertexFormatSint32x2, 8},
	"ivec3": {wgpu.VertexFormatSint32x3, 12},
	"ivec4": {wgpu.VertexFormatSint32x4, 16},
	"uint":  {wgpu.VertexFormatUint32, 4},
	"uvec2": {wgpu.VertexFormatUint32x2, 8},
	"uvec3": {wgpu.VertexFormatUint32x3, 12},
	"uvec4": {wgpu.VertexFormatUint32x4, 16},
}

// matrixColumns maps matrix attribute types to their column count. Each column occupies one location.
var matrixColumns = map[string]struct {
	columns int
	column  string
}{
	"mat2": {2, "vec2"},
	"mat3": {3, "vec3"},
	"mat4": {4, "vec4"},
}

var (
	// structRegex matches a struct declaration and captures its name and body
	structRegex = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)

	// uniformRegex matches a uniform declaration and captures its type and declarator list
	uniformRegex = regexp.MustCompile(`^uniform\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+([^;{]+);`)

	// attributeRegex matches a vertex input declaration and captures its type and declarator list
	attributeRegex = regexp.MustCompile(`^(?:layout\s*\([^)]*\)\s*)?(?:attribute|in)\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+([^;]+);`)

	// declaratorRegex matches one declarator, i.e. "name" or "name[ 4 ]"
	declaratorRegex = regexp.MustCompile(`^(\w+)\s*(?:\[\s*(\d+)\s*\])?$`)
)

// Declaration is one active uniform or attribute as a driver would report it. Arrays of plain types keep
// a single entry named "name[0]" with Size set to the length. Struct uniforms expand to one entry per
// member and element, e.g. "pointLights[1].color".
type Declaration struct {
	Name string
	Type string
	Size int
}

// Reflection lists the declarations of one stage.
type Reflection struct {
	Uniforms   []Declaration
	Attributes []Declaration
}

// structMember is one field of a GLSL struct.
type structMember struct {
	name     string
	typeName string
	size     int
}

// Reflect lists the uniforms and vertex inputs of a final stage source after its conditional directives
// are applied. Attributes are only collected for the vertex stage.
//
// Parameters:
//   - stage: the stage the source belongs to
//   - source: the complete stage source
//
// Returns:
//   - Reflection: the declarations sorted by name
func Reflect(stage Stage, source string) Reflection {
	lines := activeLines(stripComments(source))
	structs := parseStructs(strings.Join(lines, "\n"))

	var r Reflection
	for _, line := range lines {
		if m := uniformRegex.FindStringSubmatch(line); m != nil {
			for _, d := range parseDeclarators(m[2]) {
				r.Uniforms = append(r.Uniforms, expandUniform(d.name, m[1], d.size, structs)...)
			}
			continue
		}
		if stage != StageVertex {
			continue
		}
		if m := attributeRegex.FindStringSubmatch(line); m != nil {
			for _, d := range parseDeclarators(m[2]) {
				r.Attributes = append(r.Attributes, Declaration{Name: d.name, Type: m[1], Size: d.size})
			}
		}
	}
	r.Uniforms = dedupe(r.Uniforms)
	r.Attributes = dedupe(r.Attributes)
	return r
}

// parseStructs collects every struct declaration in source keyed by name.
func parseStructs(source string) map[string][]structMember {
	out := make(map[string][]structMember)
	for _, m := range structRegex.FindAllStringSubmatch(source, -1) {
		var members []structMember
		for _, field := range strings.Split(m[2], ";") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			parts := strings.Fields(field)
			for len(parts) > 0 && isQualifier(parts[0]) {
				parts = parts[1:]
			}
			if len(parts) < 2 {
				continue
			}
			for _, d := range parseDeclarators(strings.Join(parts[1:], " ")) {
				members = append(members, structMember{name: d.name, typeName: parts[0], size: d.size})
			}
		}
		out[m[1]] = members
	}
	return out
}

func isQualifier(s string) bool {
	switch s {
	case "lowp", "mediump", "highp", "const", "in":
		return true
	}
	return false
}

// declarator is one declared name with its array length, 1 for non-arrays.
type declarator struct {
	name  string
	size  int
	array bool
}

func parseDeclarators(list string) []declarator {
	var out []declarator
	for _, part := range strings.Split(list, ",") {
		m := declaratorRegex.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			continue
		}
		d := declarator{name: m[1], size: 1}
		if m[2] != "" {
			n, err := strconv.Atoi(m[2])
			if err != nil || n <= 0 {
				continue
			}
			d.size, d.array = n, true
		}
		out = append(out, d)
	}
	return out
}

// expandUniform flattens a uniform of a struct type into its members and reports plain arrays by their
// first element.
func expandUniform(name, typeName string, size int, structs map[string][]structMember) []Declaration {
	members, isStruct := structs[typeName]
	if !isStruct {
		if size > 1 {
			return []Declaration{{Name: name + "[0]", Type: typeName, Size: size}}
		}
		return []Declaration{{Name: name, Type: typeName, Size: 1}}
	}
	var out []Declaration
	for i := 0; i < size; i++ {
		base := name
		if size > 1 {
			base = name + "[" + strconv.Itoa(i) + "]"
		}
		for _, m := range members {
			out = append(out, expandUniform(base+"."+m.name, m.typeName, m.size, structs)...)
		}
	}
	return out
}

func dedupe(decls []Declaration) []Declaration {
	seen := make(map[string]bool, len(decls))
	out := decls[:0]
	for _, d := range decls {
		if seen[d.Name] {
			continue
		}
		seen[d.Name] = true
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// VertexBufferLayouts builds one wgpu vertex buffer layout per attribute, matrices spanning consecutive
// locations. Locations are assigned in the order of attrs. Attributes of unknown types are skipped.
//
// Parameters:
//   - attrs: the vertex inputs, typically Reflection.Attributes
//
// Returns:
//   - []wgpu.VertexBufferLayout: the layouts in location order
//   - map[string]uint32: the first location assigned to each attribute
func VertexBufferLayouts(attrs []Declaration) ([]wgpu.VertexBufferLayout, map[string]uint32) {
	layouts := make([]wgpu.VertexBufferLayout, 0, len(attrs))
	locations := make(map[string]uint32, len(attrs))
	var location uint32

	for _, a := range attrs {
		columns, column := 1, a.Type
		if m, ok := matrixColumns[a.Type]; ok {
			columns, column = m.columns, m.column
		}
		info, ok := glslVertexFormatMap[column]
		if !ok {
			continue
		}
		locations[a.Name] = location
		vertexAttrs := make([]wgpu.VertexAttribute, 0, columns)
		for c := 0; c < columns; c++ {
			vertexAttrs = append(vertexAttrs, wgpu.VertexAttribute{
				Format:         info.format,
				Offset:         uint64(c) * info.size,
				ShaderLocation: location,
			})
			location++
		}
		layouts = append(layouts, wgpu.VertexBufferLayout{
			ArrayStride: uint64(columns) * info.size,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes:  vertexAttrs,
		})
	}
	return layouts, locations
}

// stripComments removes all // and /* */ comments from GLSL source
//
// Parameters:
//   - source: raw GLSL source string
//
// Returns:
//   - string: source with all comments removed
func stripComments(source string) string {
	return stripLineComments(stripBlockComments(source))
}

// stripLineComments removes single-line // comments from GLSL source
func stripLineComments(source string) string {
	var sb strings.Builder
	for line := range strings.SplitSeq(source, "\n") {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// stripBlockComments removes block comments (/* ... */) from GLSL source. Newlines inside a comment are
// kept so line numbers stay stable.
func stripBlockComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	inComment := false
	for i := 0; i < len(source); i++ {
		if i+1 < len(source) {
			if !inComment && source[i] == '/' && source[i+1] == '*' {
				inComment = true
				i++
				continue
			}
			if inComment && source[i] == '*' && source[i+1] == '/' {
				inComment = false
				i++
				continue
			}
		}
		if !inComment || source[i] == '\n' {
			sb.WriteByte(source[i])
		}
	}
	return sb.String()
}
