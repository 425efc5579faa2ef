package main

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-progcache/engine/window"
)

// openDevice creates the configured device. The returned cleanup releases the device and its host context and
// is never nil.
//
// Parameters:
//   - t: the backend type
//
// Returns:
//   - backend.Device: the device
//   - func(): the cleanup
//   - error: error if the device cannot be created
func openDevice(t backend.Type) (backend.Device, func(), error) {
	noop := func() {}
	switch t {
	case backend.TypeNull:
		return backend.NewNullDevice(), noop, nil

	case backend.TypeGL:
		ctx, err := window.NewHeadlessContext(window.WithTitle("oxyprog"))
		if err != nil {
			return nil, noop, fmt.Errorf("gl context: %w", err)
		}
		device, err := backend.NewGLDevice()
		if err != nil {
			ctx.Close()
			return nil, noop, fmt.Errorf("gl device: %w", err)
		}
		return device, func() { ctx.Close() }, nil

	case backend.TypeWGPU:
		device, err := backend.NewWGPUDevice(false)
		if err != nil {
			return nil, noop, fmt.Errorf("wgpu device: %w", err)
		}
		cleanup := noop
		if r, ok := device.(interface{ Release() }); ok {
			cleanup = r.Release
		}
		return device, cleanup, nil

	case backend.TypeWebGL:
		device, err := backend.NewWebGLContextDevice("oxyprog")
		if err != nil {
			return nil, noop, fmt.Errorf("webgl device: %w", err)
		}
		return device, noop, nil
	}
	return nil, noop, fmt.Errorf("backend %s: %w", t, backend.ErrUnsupported)
}
