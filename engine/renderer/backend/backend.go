// package backend abstracts the GPU program API the program registry compiles against. A Device creates linked
// programs from final stage sources, reports link status and info logs, polls parallel compilation and reflects
// active uniforms and attributes. Implementations exist for desktop GL, browser WebGL, WebGPU and an in-memory
// recording device used by tests and by hosts without a GPU.
package backend

import "errors"

// Type identifies the GPU API a Device is backed by.
type Type int

const (
	// TypeNull selects the in-memory recording device.
	TypeNull Type = iota

	// TypeGL selects the desktop OpenGL device.
	TypeGL

	// TypeWebGL selects the browser WebGL 2 device.
	TypeWebGL

	// TypeWGPU selects the WebGPU device fed with GLSL stage modules.
	TypeWGPU
)

// String returns the configuration name of the device type.
func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeGL:
		return "gl"
	case TypeWebGL:
		return "webgl"
	case TypeWGPU:
		return "wgpu"
	}
	return "unknown"
}

// ParseType resolves a configuration name produced by Type.String.
//
// Parameters:
//   - name: the device type name
//
// Returns:
//   - Type: the matching type
//   - bool: false if name is not a known device type
func ParseType(name string) (Type, bool) {
	for _, t := range []Type{TypeNull, TypeGL, TypeWebGL, TypeWGPU} {
		if t.String() == name {
			return t, true
		}
	}
	return TypeNull, false
}

// ErrUnsupported is returned when a device cannot be created on the current platform or build.
var ErrUnsupported = errors.New("backend: device not supported on this platform")

// Handle is the device-specific identity of one linked program. The zero Handle is never valid.
type Handle uint32

// ProgramDescriptor carries the final stage sources of one program.
type ProgramDescriptor struct {
	// Label names the program in driver debug output.
	Label string

	// Vertex and Fragment are the complete stage sources, version line included.
	Vertex   string
	Fragment string

	// Index0Attribute is bound to attribute location 0 before linking when not empty.
	Index0Attribute string
}

// LinkStatus is the driver's verdict on one program. Logs are trimmed of surrounding whitespace.
type LinkStatus struct {
	Linked      bool
	ProgramLog  string
	VertexLog   string
	FragmentLog string
}

// ActiveInfo is one active uniform or attribute as reported by the driver.
type ActiveInfo struct {
	// Name as reported, arrays keep their "[0]" suffix.
	Name string

	// Type is the GLSL type name, e.g. "vec3" or "sampler2D".
	Type string

	// Size is the array length, 1 for non-arrays.
	Size int

	// Location is the uniform or attribute location, -1 if the driver assigned none.
	Location int
}

// Device creates and inspects linked GPU programs.
//
// A Device is used from the rendering goroutine only. Handles are owned by the caller of CreateProgram until
// passed to DeleteProgram.
type Device interface {
	// Type returns the GPU API behind the device.
	Type() Type

	// Capabilities returns the limits and extensions of the device.
	Capabilities() Capabilities

	// CreateProgram compiles both stages and starts linking them. Compile and link failures are not errors:
	// they are reported by LinkStatus. An error means the device could not allocate the program at all.
	//
	// Parameters:
	//   - desc: the program sources
	//
	// Returns:
	//   - Handle: the new program
	//   - error: an error if no program object could be created
	CreateProgram(desc ProgramDescriptor) (Handle, error)

	// ProgramReady polls parallel compilation without blocking. Devices without the capability report true.
	ProgramReady(h Handle) bool

	// LinkStatus returns the link result and the info logs. It blocks until linking completes.
	LinkStatus(h Handle) LinkStatus

	// ActiveUniforms lists the uniforms the linked program kept. It blocks until linking completes.
	ActiveUniforms(h Handle) []ActiveInfo

	// ActiveAttributes lists the vertex inputs the linked program kept. It blocks until linking completes.
	ActiveAttributes(h Handle) []ActiveInfo

	// DeleteProgram frees the program. Deleting an unknown or already deleted handle is a no-op.
	DeleteProgram(h Handle)
}
