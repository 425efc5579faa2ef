//go:build cgo && !js

package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwContext holds the GLFW-specific window state.
type glfwContext struct {
	window *glfw.Window
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// newPlatformContext creates the GLFW window with a core profile context and stores it as the internal window.
//
// GLFW reference: https://www.glfw.org/docs/latest/context_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newPlatformContext(c *glContext) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, c.major)
	glfw.WindowHint(glfw.ContextVersionMinor, c.minor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Visible, boolHint(c.visible))

	win, err := glfw.CreateWindow(c.width, c.height, c.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %v", err)
	}
	win.MakeContextCurrent()
	c.internal = &glfwContext{window: win}

	// Framebuffer size may differ from the requested size on high-DPI displays.
	c.width, c.height = win.GetFramebufferSize()
	return nil
}

func platformMakeCurrent(c *glContext) {
	if gc, ok := c.internal.(*glfwContext); ok {
		gc.window.MakeContextCurrent()
	}
}

// platformClose destroys the GLFW window and terminates the GLFW library.
//
// Parameters:
//   - c: the context to close
//
// Returns:
//   - error: error if the context is not initialized
func platformClose(c *glContext) error {
	gc, ok := c.internal.(*glfwContext)
	if !ok {
		return errors.New("context is not initialized")
	}
	glfw.DetachCurrentContext()
	gc.window.Destroy()
	glfw.Terminate()
	c.internal = nil
	return nil
}
