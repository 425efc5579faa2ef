package program

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-progcache/common"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/parameters"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/shader"
)

// BindingStates is the external per-(geometry, program) state cache. It is told when a program is destroyed.
type BindingStates interface {
	ReleaseStatesOfProgram(p Program)
}

// Stats counts registry activity since creation.
type Stats struct {
	Live      int
	Acquires  int
	Hits      int
	Compiles  int
	Destroyed int
}

// registry is the implementation of the Registry interface.
type registry struct {
	device            backend.Device
	preProcessor      shader.PreProcessor
	programs          []*program
	nextID            int
	bindingStates     BindingStates
	checkShaderErrors bool
	onShaderError     func(*Diagnostics)
	stats             Stats
}

// Registry hands out shared programs by cache key and frees them when their last user releases them.
//
// Lookups scan the live programs linearly: their number is bounded by the distinct feature combinations
// actually drawn. A Registry is not safe for concurrent use.
type Registry interface {
	// Acquire returns the live program for cacheKey, or preprocesses p and links a new one.
	//
	// Parameters:
	//   - p: the parameter record, only read on a miss
	//   - cacheKey: the key built from p
	//
	// Returns:
	//   - Program: the shared program, its UsedTimes incremented
	//   - error: a preprocessing or device error, in which case the registry is unchanged
	Acquire(p *parameters.Parameters, cacheKey string) (Program, error)

	// AcquireSources is Acquire for sources that were already preprocessed from p.
	//
	// Parameters:
	//   - p: the parameter record the sources were built from
	//   - cacheKey: the key built from p
	//   - src: the final stage sources
	//
	// Returns:
	//   - Program: the shared program, its UsedTimes incremented
	//   - error: a device error, in which case the registry is unchanged
	AcquireSources(p *parameters.Parameters, cacheKey string, src shader.Sources) (Program, error)

	// Lookup returns the live program for cacheKey without acquiring it.
	Lookup(cacheKey string) (Program, bool)

	// Release drops one use of prog. At zero uses the program is removed, its GPU handle freed and the binding
	// states notified.
	//
	// Parameters:
	//   - prog: a program returned by this registry
	//
	// Returns:
	//   - error: ErrReleased if prog has no uses left
	Release(prog Program) error

	// Len returns the number of live programs.
	Len() int

	// Programs returns the live programs in creation order.
	Programs() []Program

	// Stats returns the activity counters.
	Stats() Stats

	// Dispose destroys every live program regardless of its uses.
	Dispose()
}

var _ Registry = &registry{}

// NewRegistry creates a Registry compiling on device.
//
// Parameters:
//   - device: the device programs are linked on
//   - pre: the preprocessor building stage sources, nil for one over the default dictionary
//   - options: RegistryBuilderOption functions
//
// Returns:
//   - Registry: the new registry
func NewRegistry(device backend.Device, pre shader.PreProcessor, options ...RegistryBuilderOption) Registry {
	if pre == nil {
		pre = shader.NewPreProcessor(nil)
	}
	r := &registry{
		device:       device,
		preProcessor: pre,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *registry) find(cacheKey string) *program {
	for _, p := range r.programs {
		if p.cacheKey == cacheKey {
			return p
		}
	}
	return nil
}

func (r *registry) Lookup(cacheKey string) (Program, bool) {
	if p := r.find(cacheKey); p != nil {
		return p, true
	}
	return nil, false
}

func (r *registry) hit(cacheKey string) Program {
	p := r.find(cacheKey)
	if p == nil {
		return nil
	}
	r.stats.Acquires++
	r.stats.Hits++
	p.usedTimes++
	common.Logger().Debug("program cache hit", "program", p.id, "usedTimes", p.usedTimes)
	return p
}

func (r *registry) Acquire(p *parameters.Parameters, cacheKey string) (Program, error) {
	if prog := r.hit(cacheKey); prog != nil {
		return prog, nil
	}
	src, err := r.preProcessor.Process(p)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", p.ShaderName, err)
	}
	return r.create(p, cacheKey, src)
}

func (r *registry) AcquireSources(p *parameters.Parameters, cacheKey string, src shader.Sources) (Program, error) {
	if prog := r.hit(cacheKey); prog != nil {
		return prog, nil
	}
	return r.create(p, cacheKey, src)
}

// index0Attribute picks the attribute bound to location 0: the material's choice, else position when morph
// targets are on.
func index0Attribute(p *parameters.Parameters) string {
	if p.Index0AttributeName != "" {
		return p.Index0AttributeName
	}
	if p.MorphTargets {
		return "position"
	}
	return ""
}

func (r *registry) create(p *parameters.Parameters, cacheKey string, src shader.Sources) (Program, error) {
	handle, err := r.device.CreateProgram(backend.ProgramDescriptor{
		Label:           p.ShaderName,
		Vertex:          src.Vertex,
		Fragment:        src.Fragment,
		Index0Attribute: index0Attribute(p),
	})
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", p.ShaderName, err)
	}

	prog := &program{
		id:        r.nextID,
		name:      p.ShaderName,
		cacheKey:  cacheKey,
		usedTimes: 1,
		handle:    handle,
		params:    p,
		sources:   src,
		device:    r.device,
		registry:  r,
		pollReady: p.RendererExtensionParallelShaderCompile,
	}
	r.nextID++
	r.programs = append(r.programs, prog)
	r.stats.Acquires++
	r.stats.Compiles++
	common.Logger().Debug("program created", "program", prog.id, "name", prog.name, "live", len(r.programs))
	return prog, nil
}

func (r *registry) Release(prog Program) error {
	p, ok := prog.(*program)
	if !ok || p.registry != r {
		return ErrForeign
	}
	if p.usedTimes == 0 {
		return ErrReleased
	}
	p.usedTimes--
	if p.usedTimes > 0 {
		return nil
	}
	r.remove(p)
	return nil
}

func (r *registry) remove(p *program) {
	for i, live := range r.programs {
		if live == p {
			r.programs = append(r.programs[:i], r.programs[i+1:]...)
			break
		}
	}
	if r.bindingStates != nil {
		r.bindingStates.ReleaseStatesOfProgram(p)
	}
	p.destroy()
	r.stats.Destroyed++
	common.Logger().Debug("program destroyed", "program", p.id, "live", len(r.programs))
}

func (r *registry) Len() int {
	return len(r.programs)
}

func (r *registry) Programs() []Program {
	out := make([]Program, len(r.programs))
	for i, p := range r.programs {
		out[i] = p
	}
	return out
}

func (r *registry) Stats() Stats {
	s := r.stats
	s.Live = len(r.programs)
	return s
}

func (r *registry) Dispose() {
	for len(r.programs) > 0 {
		p := r.programs[len(r.programs)-1]
		p.usedTimes = 0
		r.remove(p)
	}
}
