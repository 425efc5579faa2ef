package window

// ContextBuilderOption is a functional option for configuring a context.
// Use the With* functions to create options.
type ContextBuilderOption func(c *glContext)

// WithTitle sets the title of the host window.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithTitle(title string) ContextBuilderOption {
	return func(c *glContext) {
		c.title = title
	}
}

// WithSize sets the requested size of the host window.
//
// Parameters:
//   - width: width in pixels
//   - height: height in pixels
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithSize(width, height int) ContextBuilderOption {
	return func(c *glContext) {
		if width > 0 {
			c.width = width
		}
		if height > 0 {
			c.height = height
		}
	}
}

// WithVersion sets the requested core profile version.
//
// Parameters:
//   - major: the major version
//   - minor: the minor version
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithVersion(major, minor int) ContextBuilderOption {
	return func(c *glContext) {
		c.major = major
		c.minor = minor
	}
}

// WithVisible shows the host window.
//
// Parameters:
//   - visible: whether the window is shown
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithVisible(visible bool) ContextBuilderOption {
	return func(c *glContext) {
		c.visible = visible
	}
}
