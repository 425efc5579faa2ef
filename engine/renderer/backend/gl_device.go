//go:build cgo && !js

package backend

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/soypat/glgl/v4.1-core/glgl"

	"github.com/Carmen-Shannon/oxy-progcache/common"
)

// glProgram keeps the stage objects attached to a program so their info logs stay readable.
type glProgram struct {
	program  uint32
	vertex   uint32
	fragment uint32
}

type glDeviceImpl struct {
	caps     Capabilities
	parallel bool
	programs map[Handle]glProgram
}

var _ Device = &glDeviceImpl{}

// NewGLDevice creates a Device on the GL context current on the calling thread. The context must stay current
// on that thread for the lifetime of the device.
//
// Returns:
//   - Device: the GL device
//   - error: an error if the GL function pointers could not be loaded, or ErrUnsupported if the context cannot
//     compile GLSL ES 3.00
func NewGLDevice() (Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("backend: loading GL: %w", err)
	}
	d := &glDeviceImpl{programs: make(map[Handle]glProgram)}
	d.caps = d.queryCapabilities()
	if !d.caps.GLSLES3 {
		return nil, fmt.Errorf("backend: GL %s lacks ARB_ES3_compatibility: %w",
			gl.GoStr(gl.GetString(gl.VERSION)), ErrUnsupported)
	}
	d.parallel = d.caps.HasExtension("KHR_parallel_shader_compile")
	common.Logger().Debug("gl device created",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
		"parallelCompile", d.parallel)
	return d, nil
}

func (d *glDeviceImpl) Type() Type                 { return TypeGL }
func (d *glDeviceImpl) Capabilities() Capabilities { return d.caps }

func (d *glDeviceImpl) queryCapabilities() Capabilities {
	caps := Capabilities{DrawBuffers: true, Extensions: map[string]bool{}}

	var units, vertexUnits int32
	gl.GetIntegerv(gl.MAX_TEXTURE_IMAGE_UNITS, &units)
	gl.GetIntegerv(gl.MAX_VERTEX_TEXTURE_IMAGE_UNITS, &vertexUnits)
	caps.TextureUnits, caps.VertexTextureUnits = int(units), int(vertexUnits)

	var major, minor int32
	gl.GetIntegerv(gl.MAJOR_VERSION, &major)
	gl.GetIntegerv(gl.MINOR_VERSION, &minor)

	caps.VertexPrecision = stagePrecision(gl.VERTEX_SHADER)
	caps.FragmentPrecision = stagePrecision(gl.FRAGMENT_SHADER)

	var n int32
	gl.GetIntegerv(gl.NUM_EXTENSIONS, &n)
	for i := int32(0); i < n; i++ {
		caps.Extensions[normalizeExtension(gl.GoStr(gl.GetStringi(gl.EXTENSIONS, uint32(i))))] = true
	}
	caps.GLSLES3 = acceptsGLSLES3(major, minor, caps.Extensions)
	if err := glgl.Err(); err != nil {
		common.Logger().Warn("gl capability query reported errors", "error", err)
	}
	return caps
}

func stagePrecision(stage uint32) common.Precision {
	var rng [2]int32
	var high, medium int32
	gl.GetShaderPrecisionFormat(stage, gl.HIGH_FLOAT, &rng[0], &high)
	gl.GetShaderPrecisionFormat(stage, gl.MEDIUM_FLOAT, &rng[0], &medium)
	return precisionFromBits(high, medium)
}

func compileStage(stage uint32, src string) uint32 {
	s := gl.CreateShader(stage)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(s, 1, csrc, nil)
	free()
	gl.CompileShader(s)
	return s
}

func (d *glDeviceImpl) CreateProgram(desc ProgramDescriptor) (Handle, error) {
	program := gl.CreateProgram()
	if program == 0 {
		return 0, fmt.Errorf("backend: glCreateProgram failed for %q", desc.Label)
	}
	vs := compileStage(gl.VERTEX_SHADER, desc.Vertex)
	fs := compileStage(gl.FRAGMENT_SHADER, desc.Fragment)
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	if desc.Index0Attribute != "" {
		gl.BindAttribLocation(program, 0, gl.Str(desc.Index0Attribute+"\x00"))
	}
	gl.LinkProgram(program)
	if err := glgl.Err(); err != nil {
		common.Logger().Warn("gl program creation reported errors", "program", desc.Label, "error", err)
	}

	h := Handle(program)
	d.programs[h] = glProgram{program: program, vertex: vs, fragment: fs}
	return h, nil
}

func (d *glDeviceImpl) ProgramReady(h Handle) bool {
	p, ok := d.programs[h]
	if !ok {
		return false
	}
	if !d.parallel {
		return true
	}
	var done int32
	gl.GetProgramiv(p.program, completionStatusKHR, &done)
	return done != gl.FALSE
}

func programLog(program uint32) string {
	var n int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &n)
	if n <= 1 {
		return ""
	}
	buf := strings.Repeat("\x00", int(n+1))
	gl.GetProgramInfoLog(program, n, nil, gl.Str(buf))
	return strings.TrimSpace(strings.TrimRight(buf, "\x00"))
}

func shaderLog(s uint32) string {
	var n int32
	gl.GetShaderiv(s, gl.INFO_LOG_LENGTH, &n)
	if n <= 1 {
		return ""
	}
	buf := strings.Repeat("\x00", int(n+1))
	gl.GetShaderInfoLog(s, n, nil, gl.Str(buf))
	return strings.TrimSpace(strings.TrimRight(buf, "\x00"))
}

func (d *glDeviceImpl) LinkStatus(h Handle) LinkStatus {
	p, ok := d.programs[h]
	if !ok {
		return LinkStatus{}
	}
	var linked int32
	gl.GetProgramiv(p.program, gl.LINK_STATUS, &linked)
	return LinkStatus{
		Linked:      linked != gl.FALSE,
		ProgramLog:  programLog(p.program),
		VertexLog:   shaderLog(p.vertex),
		FragmentLog: shaderLog(p.fragment),
	}
}

// activeVariables walks the active uniforms or attributes of a program.
func activeVariables(program uint32, countEnum, maxLenEnum uint32,
	get func(program, index uint32, bufSize int32, length, size *int32, xtype *uint32, name *uint8),
	locate func(program uint32, name *uint8) int32) []ActiveInfo {

	var count, maxLen int32
	gl.GetProgramiv(program, countEnum, &count)
	gl.GetProgramiv(program, maxLenEnum, &maxLen)
	if maxLen < 1 {
		maxLen = 1
	}
	out := make([]ActiveInfo, 0, count)
	for i := int32(0); i < count; i++ {
		buf := make([]uint8, maxLen+1)
		var length, size int32
		var xtype uint32
		get(program, uint32(i), maxLen, &length, &size, &xtype, &buf[0])
		name := string(buf[:length])
		out = append(out, ActiveInfo{
			Name:     name,
			Type:     glslTypeName(xtype),
			Size:     int(size),
			Location: int(locate(program, gl.Str(name+"\x00"))),
		})
	}
	return out
}

func (d *glDeviceImpl) ActiveUniforms(h Handle) []ActiveInfo {
	p, ok := d.programs[h]
	if !ok {
		return nil
	}
	return activeVariables(p.program, gl.ACTIVE_UNIFORMS, gl.ACTIVE_UNIFORM_MAX_LENGTH, gl.GetActiveUniform, gl.GetUniformLocation)
}

func (d *glDeviceImpl) ActiveAttributes(h Handle) []ActiveInfo {
	p, ok := d.programs[h]
	if !ok {
		return nil
	}
	return activeVariables(p.program, gl.ACTIVE_ATTRIBUTES, gl.ACTIVE_ATTRIBUTE_MAX_LENGTH, gl.GetActiveAttrib, gl.GetAttribLocation)
}

func (d *glDeviceImpl) DeleteProgram(h Handle) {
	p, ok := d.programs[h]
	if !ok {
		return
	}
	delete(d.programs, h)
	gl.DeleteShader(p.vertex)
	gl.DeleteShader(p.fragment)
	gl.DeleteProgram(p.program)
}
