//go:build !cgo || js

package backend

// NewGLDevice is unavailable without cgo.
func NewGLDevice() (Device, error) {
	return nil, ErrUnsupported
}
