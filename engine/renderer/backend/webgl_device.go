//go:build js && wasm

package backend

import (
	"fmt"
	"strings"
	"syscall/js"

	"github.com/Carmen-Shannon/oxy-progcache/common"
)

// WebGL 2 enums used by the device.
const (
	webglVertexShader                = 0x8B31
	webglFragmentShader              = 0x8B30
	webglLinkStatus                  = 0x8B82
	webglActiveUniforms              = 0x8B86
	webglActiveAttributes            = 0x8B89
	webglMaxTextureImageUnits        = 0x8872
	webglMaxVertexTextureImageUnits  = 0x8B4C
	webglHighFloat                   = 0x8DF2
	webglMediumFloat                 = 0x8DF1
	webglExtensionParallelCompile    = "KHR_parallel_shader_compile"
	webglExtensionParallelCompileKey = "COMPLETION_STATUS_KHR"
)

type webglProgram struct {
	program  js.Value
	vertex   js.Value
	fragment js.Value
}

type webglDeviceImpl struct {
	gl         js.Value
	caps       Capabilities
	completion js.Value
	programs   map[Handle]webglProgram
	nextID     Handle
}

var _ Device = &webglDeviceImpl{}

// NewWebGLDevice creates a Device on a WebGL 2 rendering context.
//
// Parameters:
//   - gl: the WebGL2RenderingContext
//
// Returns:
//   - Device: the WebGL device
//   - error: an error if gl is not a usable context
func NewWebGLDevice(gl js.Value) (Device, error) {
	if gl.IsUndefined() || gl.IsNull() {
		return nil, fmt.Errorf("backend: webgl2 context is required")
	}
	d := &webglDeviceImpl{gl: gl, programs: make(map[Handle]webglProgram)}
	d.caps = d.queryCapabilities()
	if ext := gl.Call("getExtension", webglExtensionParallelCompile); !ext.IsNull() && !ext.IsUndefined() {
		d.completion = ext.Get(webglExtensionParallelCompileKey)
	}
	return d, nil
}

// NewWebGLContextDevice creates a WebGL device from the canvas with the given element id.
func NewWebGLContextDevice(canvasID string) (Device, error) {
	canvas := js.Global().Get("document").Call("getElementById", canvasID)
	if canvas.IsNull() || canvas.IsUndefined() {
		return nil, fmt.Errorf("backend: canvas %q not found", canvasID)
	}
	return NewWebGLDevice(canvas.Call("getContext", "webgl2"))
}

func (d *webglDeviceImpl) Type() Type                 { return TypeWebGL }
func (d *webglDeviceImpl) Capabilities() Capabilities { return d.caps }

func (d *webglDeviceImpl) queryCapabilities() Capabilities {
	caps := Capabilities{DrawBuffers: true, GLSLES3: true, Extensions: map[string]bool{}}
	caps.TextureUnits = d.gl.Call("getParameter", webglMaxTextureImageUnits).Int()
	caps.VertexTextureUnits = d.gl.Call("getParameter", webglMaxVertexTextureImageUnits).Int()
	caps.VertexPrecision = d.stagePrecision(webglVertexShader)
	caps.FragmentPrecision = d.stagePrecision(webglFragmentShader)

	names := d.gl.Call("getSupportedExtensions")
	if !names.IsNull() {
		for i := 0; i < names.Length(); i++ {
			caps.Extensions[names.Index(i).String()] = true
		}
	}
	return caps
}

func (d *webglDeviceImpl) stagePrecision(stage int) common.Precision {
	high := d.gl.Call("getShaderPrecisionFormat", stage, webglHighFloat).Get("precision").Int()
	medium := d.gl.Call("getShaderPrecisionFormat", stage, webglMediumFloat).Get("precision").Int()
	return precisionFromBits(int32(high), int32(medium))
}

func (d *webglDeviceImpl) compileStage(stage int, src string) js.Value {
	s := d.gl.Call("createShader", stage)
	d.gl.Call("shaderSource", s, src)
	d.gl.Call("compileShader", s)
	return s
}

func (d *webglDeviceImpl) CreateProgram(desc ProgramDescriptor) (Handle, error) {
	program := d.gl.Call("createProgram")
	if program.IsNull() {
		return 0, fmt.Errorf("backend: createProgram failed for %q", desc.Label)
	}
	vs := d.compileStage(webglVertexShader, desc.Vertex)
	fs := d.compileStage(webglFragmentShader, desc.Fragment)
	d.gl.Call("attachShader", program, vs)
	d.gl.Call("attachShader", program, fs)
	if desc.Index0Attribute != "" {
		d.gl.Call("bindAttribLocation", program, 0, desc.Index0Attribute)
	}
	d.gl.Call("linkProgram", program)

	d.nextID++
	d.programs[d.nextID] = webglProgram{program: program, vertex: vs, fragment: fs}
	return d.nextID, nil
}

func (d *webglDeviceImpl) ProgramReady(h Handle) bool {
	p, ok := d.programs[h]
	if !ok {
		return false
	}
	if d.completion.IsUndefined() {
		return true
	}
	return d.gl.Call("getProgramParameter", p.program, d.completion).Bool()
}

func trimmedLog(v js.Value) string {
	if v.IsNull() || v.IsUndefined() {
		return ""
	}
	return strings.TrimSpace(v.String())
}

func (d *webglDeviceImpl) LinkStatus(h Handle) LinkStatus {
	p, ok := d.programs[h]
	if !ok {
		return LinkStatus{}
	}
	return LinkStatus{
		Linked:      d.gl.Call("getProgramParameter", p.program, webglLinkStatus).Bool(),
		ProgramLog:  trimmedLog(d.gl.Call("getProgramInfoLog", p.program)),
		VertexLog:   trimmedLog(d.gl.Call("getShaderInfoLog", p.vertex)),
		FragmentLog: trimmedLog(d.gl.Call("getShaderInfoLog", p.fragment)),
	}
}

// ActiveUniforms reports uniform locations as their index in the active list. WebGL locations are opaque
// objects and are resolved by name when uploading.
func (d *webglDeviceImpl) ActiveUniforms(h Handle) []ActiveInfo {
	p, ok := d.programs[h]
	if !ok {
		return nil
	}
	n := d.gl.Call("getProgramParameter", p.program, webglActiveUniforms).Int()
	out := make([]ActiveInfo, 0, n)
	for i := 0; i < n; i++ {
		info := d.gl.Call("getActiveUniform", p.program, i)
		if info.IsNull() {
			continue
		}
		out = append(out, ActiveInfo{
			Name:     info.Get("name").String(),
			Type:     glslTypeName(uint32(info.Get("type").Int())),
			Size:     info.Get("size").Int(),
			Location: i,
		})
	}
	return out
}

func (d *webglDeviceImpl) ActiveAttributes(h Handle) []ActiveInfo {
	p, ok := d.programs[h]
	if !ok {
		return nil
	}
	n := d.gl.Call("getProgramParameter", p.program, webglActiveAttributes).Int()
	out := make([]ActiveInfo, 0, n)
	for i := 0; i < n; i++ {
		info := d.gl.Call("getActiveAttrib", p.program, i)
		if info.IsNull() {
			continue
		}
		name := info.Get("name").String()
		out = append(out, ActiveInfo{
			Name:     name,
			Type:     glslTypeName(uint32(info.Get("type").Int())),
			Size:     info.Get("size").Int(),
			Location: d.gl.Call("getAttribLocation", p.program, name).Int(),
		})
	}
	return out
}

func (d *webglDeviceImpl) DeleteProgram(h Handle) {
	p, ok := d.programs[h]
	if !ok {
		return
	}
	delete(d.programs, h)
	d.gl.Call("deleteShader", p.vertex)
	d.gl.Call("deleteShader", p.fragment)
	d.gl.Call("deleteProgram", p.program)
}
