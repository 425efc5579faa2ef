package program

// RegistryBuilderOption is a functional option used to configure a Registry during construction.
type RegistryBuilderOption func(*registry)

// WithBindingStates sets the binding-state cache notified when a program is destroyed.
//
// Parameters:
//   - b: the binding-state cache
//
// Returns:
//   - RegistryBuilderOption: a function that sets the binding-state cache
func WithBindingStates(b BindingStates) RegistryBuilderOption {
	return func(r *registry) {
		r.bindingStates = b
	}
}

// WithCheckShaderErrors enables the link checks run on a program's first location query.
//
// Parameters:
//   - enabled: whether failed links are diagnosed
//
// Returns:
//   - RegistryBuilderOption: a function that sets the debug check flag
func WithCheckShaderErrors(enabled bool) RegistryBuilderOption {
	return func(r *registry) {
		r.checkShaderErrors = enabled
	}
}

// WithOnShaderError installs the hook receiving the diagnostics of failed links. When set, the error is not
// logged.
//
// Parameters:
//   - fn: the hook
//
// Returns:
//   - RegistryBuilderOption: a function that sets the shader error hook
func WithOnShaderError(fn func(*Diagnostics)) RegistryBuilderOption {
	return func(r *registry) {
		r.onShaderError = fn
	}
}
