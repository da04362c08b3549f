// Package engine invokes an external graphviz layout process to
// turn DOT text into rendered output.
package engine

import (
	"bytes"
	"context"
	"os/exec"
	"sort"
	"strings"
)

// Supported layout engines with their default executable names.
// Paths may be overridden per engine from configuration.
var defaultEngines = map[string]string{
	"dot":   "dot",
	"fdp":   "fdp",
	"neato": "neato",
	"sfdp":  "sfdp",
	"circo": "circo",
	"twopi": "twopi",
}

// Registry maps engine names to executable paths.
type Registry struct {
	paths map[string]string
}

func NewRegistry() *Registry {
	paths := make(map[string]string, len(defaultEngines))
	for name, path := range defaultEngines {
		paths[name] = path
	}
	return &Registry{paths: paths}
}

// Override replaces the executable path for a known engine. Unknown
// names are ignored, the supported set is fixed.
func (r *Registry) Override(name, path string) {
	if _, ok := r.paths[name]; ok && path != "" {
		r.paths[name] = path
	}
}

// Resolve returns the executable path for an engine name.
func (r *Registry) Resolve(name string) (string, error) {
	path, ok := r.paths[name]
	if !ok {
		return "", &UnknownEngineError{Name: name}
	}
	return path, nil
}

// Names returns the supported engine names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.paths))
	for name := range r.paths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render pipes DOT text through the engine and returns the rendered
// bytes. One child process per call; stdio is fully consumed and
// released before Render returns, on error paths too. Failures are
// surfaced as-is, no retries.
func (r *Registry) Render(ctx context.Context, name, format string, dotText []byte) ([]byte, error) {
	path, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, path, "-T"+format)
	cmd.Stdin = bytes.NewReader(dotText)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &RenderError{
			Engine: name,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return stdout.Bytes(), nil
}
