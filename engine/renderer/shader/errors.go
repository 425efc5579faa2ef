package shader

import (
	"errors"
	"fmt"
)

// ErrUnresolvableInclude matches every UnresolvableIncludeError through errors.Is.
var ErrUnresolvableInclude = errors.New("shader: unresolvable include")

// ErrIncludeCycle is returned when a chunk includes itself directly or through other chunks.
var ErrIncludeCycle = errors.New("shader: include cycle")

// UnresolvableIncludeError reports an include directive naming a chunk that is neither in the dictionary
// nor a deprecated alias of one. It aborts the construction of the program being built.
type UnresolvableIncludeError struct {
	// Name is the chunk name inside the directive.
	Name string

	// Stage is the stage whose source contained the directive.
	Stage Stage
}

func (e *UnresolvableIncludeError) Error() string {
	return fmt.Sprintf("shader: can not resolve #include <%s> in %s stage", e.Name, e.Stage)
}

// Is reports whether target is ErrUnresolvableInclude.
func (e *UnresolvableIncludeError) Is(target error) bool {
	return target == ErrUnresolvableInclude
}
