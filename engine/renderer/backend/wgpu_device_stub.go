//go:build js

package backend

// NewWGPUDevice is unavailable in the browser build, use the WebGL device there.
func NewWGPUDevice(forceFallbackAdapter bool) (Device, error) {
	return nil, ErrUnsupported
}
