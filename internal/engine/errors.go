package engine

import "fmt"

// UnknownEngineError reports a layout engine name outside the
// supported set.
type UnknownEngineError struct {
	Name string
}

func (e *UnknownEngineError) Error() string {
	return fmt.Sprintf("unsupported engine: %s", e.Name)
}

// RenderError reports a layout process that exited with failure.
// Stderr carries the process's own error text when it produced any.
type RenderError struct {
	Engine string
	Stderr string
	Err    error
}

func (e *RenderError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %s", e.Engine, e.Stderr)
	}
	return fmt.Sprintf("%s: %v", e.Engine, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
