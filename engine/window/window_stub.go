//go:build !cgo || js

package window

func newPlatformContext(*glContext) error {
	return ErrUnsupported
}

func platformMakeCurrent(*glContext) {}

func platformClose(*glContext) error {
	return ErrUnsupported
}
