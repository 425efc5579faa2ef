//go:build !js

package backend

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-progcache/common"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/shader"
)

// wgpuProgram is a validated pair of GLSL stage modules. A program links when both modules were accepted.
type wgpuProgram struct {
	desc     ProgramDescriptor
	vertex   *wgpu.ShaderModule
	fragment *wgpu.ShaderModule
	status   LinkStatus
	layouts  []wgpu.VertexBufferLayout
}

type wgpuDeviceImpl struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	caps     Capabilities
	programs map[Handle]*wgpuProgram
	nextID   Handle
}

// WGPUDevice is a Device backed by WebGPU. Stages are submitted as GLSL modules and reflection is derived from
// the sources since WebGPU exposes no program introspection.
type WGPUDevice interface {
	Device

	// VertexBufferLayouts returns the vertex buffer layouts matching the attributes of a program.
	VertexBufferLayouts(h Handle) []wgpu.VertexBufferLayout

	// Release frees every remaining module and the underlying device.
	Release()
}

var _ WGPUDevice = &wgpuDeviceImpl{}

// NewWGPUDevice creates a headless WebGPU device.
//
// Parameters:
//   - forceFallbackAdapter: request the software adapter
//
// Returns:
//   - WGPUDevice: the device
//   - error: an error if no adapter or device could be obtained
func NewWGPUDevice(forceFallbackAdapter bool) (WGPUDevice, error) {
	runtime.LockOSThread()
	instance := wgpu.CreateInstance(nil)
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
	})
	if err != nil {
		instance.Release()
		return nil, fmt.Errorf("backend: requesting adapter: %w", err)
	}

	limits := wgpu.DefaultLimits()
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Program Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: limits,
		},
	})
	if err != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("backend: requesting device: %w", err)
	}

	// The GLSL frontend takes desktop GLSL only, so GLSL ES 3.00 programs are not guaranteed to link.
	d := &wgpuDeviceImpl{
		instance: instance,
		adapter:  adapter,
		device:   device,
		programs: make(map[Handle]*wgpuProgram),
		caps: Capabilities{
			VertexPrecision:    common.PrecisionHigh,
			FragmentPrecision:  common.PrecisionHigh,
			VertexTextureUnits: int(limits.MaxSampledTexturesPerShaderStage),
			TextureUnits:       int(limits.MaxSampledTexturesPerShaderStage),
			DrawBuffers:        true,
			GLSLES3:            false,
			Extensions:         map[string]bool{},
		},
	}
	return d, nil
}

func (d *wgpuDeviceImpl) Type() Type                 { return TypeWGPU }
func (d *wgpuDeviceImpl) Capabilities() Capabilities { return d.caps }

func (d *wgpuDeviceImpl) createModule(label string, stage wgpu.ShaderStage, code string) (*wgpu.ShaderModule, string) {
	m, err := d.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: label,
		GLSLDescriptor: &wgpu.ShaderModuleGLSLDescriptor{
			Code:        code,
			ShaderStage: stage,
		},
	})
	if err != nil {
		return nil, strings.TrimSpace(err.Error())
	}
	return m, ""
}

func (d *wgpuDeviceImpl) CreateProgram(desc ProgramDescriptor) (Handle, error) {
	p := &wgpuProgram{desc: desc}
	var vertexLog, fragmentLog string
	p.vertex, vertexLog = d.createModule(desc.Label+" (vertex)", wgpu.ShaderStageVertex, desc.Vertex)
	p.fragment, fragmentLog = d.createModule(desc.Label+" (fragment)", wgpu.ShaderStageFragment, desc.Fragment)

	p.status = LinkStatus{
		Linked:      p.vertex != nil && p.fragment != nil,
		VertexLog:   vertexLog,
		FragmentLog: fragmentLog,
	}
	if !p.status.Linked {
		p.status.ProgramLog = "stage module rejected"
	} else {
		attrs := orderAttributes(shader.Reflect(shader.StageVertex, desc.Vertex).Attributes, desc.Index0Attribute)
		p.layouts, _ = shader.VertexBufferLayouts(attrs)
	}

	d.nextID++
	d.programs[d.nextID] = p
	return d.nextID, nil
}

// ProgramReady is always true: module creation is synchronous.
func (d *wgpuDeviceImpl) ProgramReady(h Handle) bool {
	_, ok := d.programs[h]
	return ok
}

func (d *wgpuDeviceImpl) LinkStatus(h Handle) LinkStatus {
	p, ok := d.programs[h]
	if !ok {
		return LinkStatus{}
	}
	return p.status
}

func (d *wgpuDeviceImpl) ActiveUniforms(h Handle) []ActiveInfo {
	p, ok := d.programs[h]
	if !ok || !p.status.Linked {
		return nil
	}
	return reflectUniforms(p.desc)
}

func (d *wgpuDeviceImpl) ActiveAttributes(h Handle) []ActiveInfo {
	p, ok := d.programs[h]
	if !ok || !p.status.Linked {
		return nil
	}
	return reflectAttributes(p.desc)
}

func (d *wgpuDeviceImpl) VertexBufferLayouts(h Handle) []wgpu.VertexBufferLayout {
	if p, ok := d.programs[h]; ok {
		return p.layouts
	}
	return nil
}

func (d *wgpuDeviceImpl) DeleteProgram(h Handle) {
	p, ok := d.programs[h]
	if !ok {
		return
	}
	delete(d.programs, h)
	if p.vertex != nil {
		p.vertex.Release()
	}
	if p.fragment != nil {
		p.fragment.Release()
	}
}

func (d *wgpuDeviceImpl) Release() {
	for h := range d.programs {
		d.DeleteProgram(h)
	}
	d.device.Release()
	d.adapter.Release()
	d.instance.Release()
}
