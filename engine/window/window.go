// package window hosts the GL context programs are compiled in. The context belongs to a hidden GLFW window
// and is current on the thread that created it, which must stay locked to its goroutine.
package window

import "errors"

// ErrUnsupported is returned when the platform cannot host a GLFW context.
var ErrUnsupported = errors.New("window: GLFW contexts are not supported on this platform")

// Context is an OpenGL context owned by a window that is usually never shown.
type Context interface {
	// MakeCurrent binds the context to the calling thread.
	MakeCurrent()

	// Width returns the framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int

	// Version returns the requested context version.
	//
	// Returns:
	//   - int: the major version
	//   - int: the minor version
	Version() (major, minor int)

	// Close destroys the window and terminates GLFW.
	//
	// Returns:
	//   - error: error if the context was already closed
	Close() error
}

// glContext is the implementation of the Context interface.
type glContext struct {
	// title is the window title, visible only when the window is shown.
	title string

	// width and height are the framebuffer size in pixels.
	width  int
	height int

	// major and minor are the requested GL context version.
	major int
	minor int

	// visible shows the window instead of keeping it hidden.
	visible bool

	// internal holds the platform window state, nil once closed.
	internal any
}

var _ Context = &glContext{}

// NewHeadlessContext creates a hidden 1x1 window with a core profile GL context and makes it current on the
// calling thread.
//
// Parameters:
//   - options: variadic list of ContextBuilderOption functions to configure the context
//
// Returns:
//   - Context: the current context
//   - error: error if GLFW or the context cannot be created
func NewHeadlessContext(options ...ContextBuilderOption) (Context, error) {
	c := &glContext{
		title:  "oxyprog",
		width:  1,
		height: 1,
		major:  4,
		minor:  1,
	}
	for _, opt := range options {
		opt(c)
	}
	if err := newPlatformContext(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *glContext) Width() int                  { return c.width }
func (c *glContext) Height() int                 { return c.height }
func (c *glContext) Version() (major, minor int) { return c.major, c.minor }

func (c *glContext) MakeCurrent() {
	platformMakeCurrent(c)
}

func (c *glContext) Close() error {
	return platformClose(c)
}
