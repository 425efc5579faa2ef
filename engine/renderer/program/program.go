// package program owns linked GPU programs. A Registry hands out one Program per distinct cache key, counts
// its users and frees the GPU handle when the last user releases it. Programs expose lazily built uniform and
// attribute tables, a non-blocking readiness poll and, under debug checks, diagnostics of failed links.
package program

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-progcache/common"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/parameters"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/shader"
)

// ErrReleased is returned when releasing a program that has no users left.
var ErrReleased = errors.New("program: already released")

// ErrForeign is returned when releasing a program created by another registry.
var ErrForeign = errors.New("program: not owned by this registry")

// program is the implementation of the Program interface.
type program struct {
	id        int
	name      string
	cacheKey  string
	usedTimes int
	handle    backend.Handle
	params    *parameters.Parameters
	sources   shader.Sources

	// device is nil once the program is destroyed
	device     backend.Device
	registry   *registry
	ready      bool
	pollReady  bool
	checked    bool
	diag       *Diagnostics
	uniforms   Uniforms
	attributes Attributes
}

// Program is one linked GPU program shared by every draw whose parameters produce the same cache key.
//
// Programs are created and destroyed by a Registry only and must be used from the rendering goroutine.
type Program interface {
	// ID returns the registry-scoped identity of the program, starting at 0.
	ID() int

	// Name returns the shader name the program was built for.
	Name() string

	// CacheKey returns the key the program was acquired with.
	CacheKey() string

	// UsedTimes returns the number of outstanding acquisitions.
	UsedTimes() int

	// Handle returns the device handle, 0 after destruction.
	Handle() backend.Handle

	// Uniforms returns the active uniform table. The first call may block until linking completes and runs the
	// shader error checks when they are enabled.
	//
	// Returns:
	//   - Uniforms: the uniforms by normalised name, empty if the program failed to link
	Uniforms() Uniforms

	// Attributes returns the active attribute table. The first call may block until linking completes and runs
	// the shader error checks when they are enabled.
	//
	// Returns:
	//   - Attributes: the attributes by name, empty if the program failed to link
	Attributes() Attributes

	// IsReady polls parallel compilation without blocking. Once true it stays true.
	IsReady() bool

	// Diagnostics returns the report produced by the shader error checks, nil if they did not run or the
	// program linked with empty logs.
	Diagnostics() *Diagnostics

	// Sources returns the final stage sources the program was compiled from.
	Sources() shader.Sources
}

var _ Program = &program{}

func (p *program) ID() int                   { return p.id }
func (p *program) Name() string              { return p.name }
func (p *program) CacheKey() string          { return p.cacheKey }
func (p *program) UsedTimes() int            { return p.usedTimes }
func (p *program) Handle() backend.Handle    { return p.handle }
func (p *program) Diagnostics() *Diagnostics { return p.diag }
func (p *program) Sources() shader.Sources   { return p.sources }

func (p *program) IsReady() bool {
	if p.ready {
		return true
	}
	if p.device == nil {
		return false
	}
	if !p.pollReady {
		p.ready = true
		return true
	}
	p.ready = p.device.ProgramReady(p.handle)
	return p.ready
}

func (p *program) Uniforms() Uniforms {
	if p.uniforms == nil {
		p.firstUse()
		if p.device != nil {
			p.uniforms = newUniforms(p.device.ActiveUniforms(p.handle))
		} else {
			p.uniforms = Uniforms{}
		}
	}
	return p.uniforms
}

func (p *program) Attributes() Attributes {
	if p.attributes == nil {
		p.firstUse()
		if p.device != nil {
			p.attributes = newAttributes(p.device.ActiveAttributes(p.handle))
		} else {
			p.attributes = Attributes{}
		}
	}
	return p.attributes
}

// firstUse runs the shader error checks once, before the first location query.
func (p *program) firstUse() {
	if p.checked || p.device == nil {
		return
	}
	p.checked = true
	if !p.registry.checkShaderErrors {
		return
	}

	status := p.device.LinkStatus(p.handle)
	p.ready = true
	if status.Linked && status.ProgramLog == "" && status.VertexLog == "" && status.FragmentLog == "" {
		return
	}
	p.diag = newDiagnostics(p.id, p.name, p.params, p.sources, status)

	log := common.Logger()
	switch {
	case !status.Linked && p.registry.onShaderError != nil:
		p.registry.onShaderError(p.diag)
	case !status.Linked:
		log.Error("shader error",
			"program", p.id,
			"name", p.name,
			"programLog", status.ProgramLog,
			"vertexLog", status.VertexLog,
			"fragmentLog", status.FragmentLog)
		log.Debug("shader error report", "report", p.diag.String())
	default:
		log.Warn("program info log not empty", "program", p.id, "name", p.name, "log", status.ProgramLog)
	}
}

// destroy frees the GPU handle. Later calls are no-ops.
func (p *program) destroy() {
	if p.device == nil {
		return
	}
	p.device.DeleteProgram(p.handle)
	p.device = nil
	p.handle = 0
}
