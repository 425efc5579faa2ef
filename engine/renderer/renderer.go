// package renderer selects the GPU program of every draw. It derives the parameter record of a draw, keys it,
// and hands out shared programs from a registry, remembering per material which programs it holds so that a
// disposed material gives them back.
package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-progcache/common"
	"github.com/Carmen-Shannon/oxy-progcache/engine/light"
	"github.com/Carmen-Shannon/oxy-progcache/engine/model"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/parameters"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/program"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/stage_cache"
)

var (
	// ErrNoMaterial is returned for a draw without a material.
	ErrNoMaterial = errors.New("renderer: draw has no material")

	// ErrMaterialDisposed is returned for a draw whose material was already disposed.
	ErrMaterialDisposed = errors.New("renderer: material is disposed")

	// ErrDisposed is returned by every call made after Dispose.
	ErrDisposed = errors.New("renderer: disposed")
)

// DrawContext is the per-draw input of program selection. The renderer-wide settings are added by the Renderer.
type DrawContext struct {
	Material         material.Material
	Object           model.Object
	Lights           light.State
	Scene            parameters.Scene
	Target           *parameters.RenderTarget
	ClippingPlanes   int
	ClipIntersection int
}

// ProgramInfo describes one live program.
type ProgramInfo struct {
	ID        int
	Name      string
	CacheKey  string
	UsedTimes int
	Ready     bool
}

// Info is a snapshot of the program and stage caches.
type Info struct {
	Programs       []ProgramInfo
	StageEntries   int
	StageMaterials int
	Materials      int
	Stats          program.Stats
}

// materialState holds the programs one material acquired, by cache key.
type materialState struct {
	programs map[string]program.Program
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	device   backend.Device
	settings parameters.Settings

	// Pre-creation config collected from builder options
	dictionary        shader.Dictionary
	cubeMaps          parameters.EnvironmentResolver
	cubeUVMaps        parameters.EnvironmentResolver
	bindingStates     program.BindingStates
	checkShaderErrors bool
	onShaderError     func(*program.Diagnostics)
	compileWorkers    int

	stages       stage_cache.Cache
	deriver      parameters.Deriver
	preProcessor shader.PreProcessor
	registry     program.Registry
	compilePools []worker.DynamicWorkerPool
	materials    map[material.Material]*materialState
	disposed     bool
}

// Renderer picks the program of every draw and owns the caches behind that choice.
//
// A Renderer serialises its calls with a mutex, but the programs it returns belong to the rendering goroutine.
type Renderer interface {
	// Program returns the program for one draw, compiling it on first use. The material keeps the program until
	// it is disposed; later draws producing the same cache key reuse it without touching the registry.
	//
	// Parameters:
	//   - draw: the draw inputs
	//
	// Returns:
	//   - program.Program: the program to bind
	//   - error: a preprocessing error, or one of the renderer sentinels
	Program(draw DrawContext) (program.Program, error)

	// Compile prewarms the programs of many draws. Parameters are derived on the calling goroutine, missing
	// sources are preprocessed in parallel and the programs are then acquired in draw order, so that later
	// Program calls for the same draws hit.
	//
	// Parameters:
	//   - draws: the draws to prepare
	//
	// Returns:
	//   - error: the joined errors of the draws that failed, nil if all succeeded
	Compile(draws ...DrawContext) error

	// DisposeMaterial releases every program the material holds and its stage cache entries. It is registered
	// as a dispose listener of every material the renderer sees, so calling Material.Dispose is enough.
	//
	// Parameters:
	//   - m: the material being disposed
	DisposeMaterial(m material.Material)

	// Settings returns the renderer-wide settings.
	Settings() parameters.Settings

	// SetSettings replaces the renderer-wide settings. Draws after the call derive their keys from the new
	// settings; programs already held are kept until their material is disposed.
	//
	// Parameters:
	//   - s: the new settings
	SetSettings(s parameters.Settings)

	// Device returns the device programs are linked on.
	Device() backend.Device

	// Registry returns the program registry.
	Registry() program.Registry

	// StageCache returns the custom stage cache.
	StageCache() stage_cache.Cache

	// Info returns a snapshot of the caches.
	Info() Info

	// Dispose stops the compile workers, destroys every live program and clears the stage cache. Later calls return ErrDisposed.
	Dispose()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer linking programs on device.
//
// Parameters:
//   - device: the GPU device
//   - options: variadic list of RendererBuilderOption functions to configure the renderer
//
// Returns:
//   - Renderer: a new Renderer instance
func NewRenderer(device backend.Device, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:     &sync.Mutex{},
		device: device,
		settings: parameters.Settings{
			ToneMapping:      common.NoToneMapping,
			OutputColorSpace: common.SRGBColorSpace,
			ShadowMapType:    common.PCFShadowMap,
			Precision:        common.PrecisionHigh,
		},
		compileWorkers: runtime.GOMAXPROCS(0),
		materials:      make(map[material.Material]*materialState),
	}
	for _, opt := range options {
		opt(r)
	}
	if r.dictionary == nil {
		r.dictionary = shader.DefaultDictionary()
	}
	if r.compileWorkers < 1 {
		r.compileWorkers = 1
	}

	caps := device.Capabilities()
	if !caps.GLSLES3 {
		common.WarnOnce("glsles3:"+device.Type().String(),
			"device does not accept GLSL ES 3.00 sources, programs may fail to link",
			"device", device.Type().String())
	}
	r.stages = stage_cache.NewCache()
	r.deriver = parameters.NewDeriver(caps, r.stages, r.dictionary,
		parameters.WithEnvironmentResolvers(r.cubeMaps, r.cubeUVMaps))
	r.preProcessor = shader.NewPreProcessor(r.dictionary)
	r.registry = program.NewRegistry(device, r.preProcessor,
		program.WithBindingStates(r.bindingStates),
		program.WithCheckShaderErrors(r.checkShaderErrors),
		program.WithOnShaderError(r.onShaderError))
	return r
}

func (r *renderer) Device() backend.Device        { return r.device }
func (r *renderer) Registry() program.Registry    { return r.registry }
func (r *renderer) StageCache() stage_cache.Cache { return r.stages }

func (r *renderer) Settings() parameters.Settings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings
}

func (r *renderer) SetSettings(s parameters.Settings) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = s
}

func (r *renderer) input(draw DrawContext) parameters.Input {
	return parameters.Input{
		Material:         draw.Material,
		Object:           draw.Object,
		Lights:           draw.Lights,
		Scene:            draw.Scene,
		Target:           draw.Target,
		ClippingPlanes:   draw.ClippingPlanes,
		ClipIntersection: draw.ClipIntersection,
		Settings:         r.settings,
	}
}

func (r *renderer) checkDraw(draw DrawContext) error {
	if r.disposed {
		return ErrDisposed
	}
	if draw.Material == nil {
		return ErrNoMaterial
	}
	if draw.Material.Disposed() {
		return fmt.Errorf("material %q: %w", draw.Material.Name(), ErrMaterialDisposed)
	}
	return nil
}

// state returns the bookkeeping of m, registering the dispose listener the first time m is seen.
func (r *renderer) state(m material.Material) *materialState {
	s, ok := r.materials[m]
	if !ok {
		s = &materialState{programs: make(map[string]program.Program)}
		r.materials[m] = s
		m.OnDispose(r.DisposeMaterial)
	}
	return s
}

func (r *renderer) Program(draw DrawContext) (program.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkDraw(draw); err != nil {
		return nil, err
	}

	s := r.state(draw.Material)
	p := r.deriver.Derive(r.input(draw))
	key := parameters.CacheKey(p)
	if prog, ok := s.programs[key]; ok {
		return prog, nil
	}
	prog, err := r.registry.Acquire(p, key)
	if err != nil {
		return nil, err
	}
	s.programs[key] = prog
	return prog, nil
}

// compileJob is one draw of a Compile call.
type compileJob struct {
	material material.Material
	params   *parameters.Parameters
	key      string
	src      shader.Sources
	err      error
}

func (r *renderer) Compile(draws ...DrawContext) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.disposed {
		return ErrDisposed
	}

	var errs []error
	jobs := make([]*compileJob, 0, len(draws))
	pending := make(map[string]*compileJob)
	order := make([]*compileJob, 0, len(draws))
	for _, d := range draws {
		if err := r.checkDraw(d); err != nil {
			errs = append(errs, err)
			continue
		}
		s := r.state(d.Material)
		p := r.deriver.Derive(r.input(d))
		j := &compileJob{material: d.Material, params: p, key: parameters.CacheKey(p)}
		if _, held := s.programs[j.key]; held {
			continue
		}
		jobs = append(jobs, j)
		if _, live := r.registry.Lookup(j.key); live {
			continue
		}
		if _, ok := pending[j.key]; !ok {
			pending[j.key] = j
			order = append(order, j)
		}
	}

	if len(order) > 0 {
		// One worker per pool: a pool stops reliably only when it owns a single worker.
		for len(r.compilePools) < r.compileWorkers {
			r.compilePools = append(r.compilePools, worker.NewDynamicWorkerPool(1, 256, 1*time.Second))
		}
		var wg sync.WaitGroup
		for id, j := range order {
			wg.Add(1)
			jCap := j
			r.compilePools[id%len(r.compilePools)].SubmitTask(worker.Task{
				ID: id,
				Do: func() (any, error) {
					defer wg.Done()
					jCap.src, jCap.err = r.preProcessor.Process(jCap.params)
					return nil, nil
				},
			})
		}
		wg.Wait()
		common.Logger().Debug("prewarm preprocessed", "programs", len(order), "draws", len(draws))
	}

	for _, j := range jobs {
		s := r.materials[j.material]
		if _, held := s.programs[j.key]; held {
			continue
		}
		var prog program.Program
		var err error
		if first, ok := pending[j.key]; ok {
			if first.err != nil {
				if first == j {
					errs = append(errs, fmt.Errorf("program %q: %w", j.params.ShaderName, first.err))
				}
				continue
			}
			prog, err = r.registry.AcquireSources(j.params, j.key, first.src)
		} else {
			prog, err = r.registry.Acquire(j.params, j.key)
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		s.programs[j.key] = prog
	}
	return errors.Join(errs...)
}

func (r *renderer) DisposeMaterial(m material.Material) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.disposed || m == nil {
		return
	}

	if s, ok := r.materials[m]; ok {
		delete(r.materials, m)
		held := make([]program.Program, 0, len(s.programs))
		for _, prog := range s.programs {
			held = append(held, prog)
		}
		sort.Slice(held, func(i, j int) bool { return held[i].ID() < held[j].ID() })
		for _, prog := range held {
			if err := r.registry.Release(prog); err != nil {
				common.Logger().Warn("release failed", "material", m.Name(), "program", prog.ID(), "error", err)
			}
		}
	}
	r.stages.Remove(m)
}

func (r *renderer) Info() Info {
	r.mu.Lock()
	defer r.mu.Unlock()

	live := r.registry.Programs()
	info := Info{
		Programs:       make([]ProgramInfo, 0, len(live)),
		StageEntries:   r.stages.Len(),
		StageMaterials: r.stages.Materials(),
		Materials:      len(r.materials),
		Stats:          r.registry.Stats(),
	}
	for _, p := range live {
		info.Programs = append(info.Programs, ProgramInfo{
			ID:        p.ID(),
			Name:      p.Name(),
			CacheKey:  p.CacheKey(),
			UsedTimes: p.UsedTimes(),
			Ready:     p.IsReady(),
		})
	}
	return info
}

func (r *renderer) Dispose() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.disposed {
		return
	}
	r.disposed = true
	for _, pool := range r.compilePools {
		pool.Stop()
	}
	r.compilePools = nil
	r.registry.Dispose()
	r.stages.Dispose()
	clear(r.materials)
	common.Logger().Debug("renderer disposed")
}
