//go:build !(js && wasm)

package backend

// NewWebGLContextDevice creates a WebGL device from the canvas with the given element id. Outside the browser it
// always fails with ErrUnsupported.
func NewWebGLContextDevice(canvasID string) (Device, error) {
	return nil, ErrUnsupported
}
