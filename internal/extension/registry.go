package extension

import (
	"fmt"
	"sort"

	"github.com/weft-dev/weft/internal/errors"
	"github.com/weft-dev/weft/internal/types"
)

// Registry holds every extension known to the CLI, keyed by name. A registry
// is populated once at startup; render passes select an ordered subset
// through Pipeline.
type Registry struct {
	byName map[string]Extension
}

// NewRegistry creates an empty extension registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Extension)}
}

// Register adds an extension. Registering the same name twice is an error.
func (r *Registry) Register(ext Extension) error {
	name := ext.Name()
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("extension %s already registered", name)
	}
	r.byName[name] = ext
	return nil
}

// Lookup retrieves an extension by name.
func (r *Registry) Lookup(name string) (Extension, bool) {
	ext, ok := r.byName[name]
	return ext, ok
}

// Names returns the registered extension names, sorted for stable listings.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pipeline selects the named extensions in the given order. An unknown name
// is a configuration error reported before any rendering begins.
func (r *Registry) Pipeline(names []string) (*Pipeline, error) {
	exts := make([]Extension, 0, len(names))
	for _, name := range names {
		ext, ok := r.byName[name]
		if !ok {
			return nil, errors.NewConfigError(
				errors.CodeUnknownExtension,
				fmt.Sprintf("extension %q is not registered (available: %v)", name, r.Names()),
				nil,
			)
		}
		exts = append(exts, ext)
	}
	return &Pipeline{exts: exts}, nil
}

// Pipeline is the ordered list of active extensions for one render pass.
type Pipeline struct {
	exts []Extension
}

// NewPipeline builds a pipeline directly from extension instances, in the
// given order. Used by tests and embedders that bypass the registry.
func NewPipeline(exts ...Extension) *Pipeline {
	return &Pipeline{exts: exts}
}

// Extensions returns the active extensions in application order.
func (p *Pipeline) Extensions() []Extension {
	return p.exts
}

// StylePlugins returns the active extensions that contribute styles, in
// application order.
func (p *Pipeline) StylePlugins() []StylePlugin {
	var plugins []StylePlugin
	for _, ext := range p.exts {
		if sp, ok := ext.(StylePlugin); ok {
			plugins = append(plugins, sp)
		}
	}
	return plugins
}

// ResolveOptions computes the effective options of a render pass: defaults
// first, then every extension's options handler in registration order (each
// seeing its predecessors' overrides), then caller-supplied values with final
// precedence.
func (p *Pipeline) ResolveOptions(user *types.RenderOptions) (*types.RenderOptions, error) {
	opts := types.DefaultRenderOptions()
	opts.Extensions = p.names()

	for _, ext := range p.exts {
		oh, ok := ext.(OptionsHandler)
		if !ok {
			continue
		}
		next, err := oh.HandleOptions(opts)
		if err != nil {
			return nil, errors.NewHookError(ext.Name(), "options", err)
		}
		if next != nil {
			opts = next
		}
	}

	if user != nil {
		overlayOptions(opts, user)
	}
	return opts, nil
}

// overlayOptions copies caller-set values onto the merged options. Strings,
// slices, maps, funcs and pointers count as set when non-zero; the
// PreferSelfClosing, Minify and SourceMap flags only override when true,
// while Write always follows the caller since persistence is the caller's
// decision alone.
func overlayOptions(dst, user *types.RenderOptions) {
	if user.FileName != "" {
		dst.FileName = user.FileName
	}
	if user.OutputDir != "" {
		dst.OutputDir = user.OutputDir
	}
	if user.FileExtension != "" {
		dst.FileExtension = user.FileExtension
	}
	if user.Formatter != "" {
		dst.Formatter = user.Formatter
	}
	if user.FormatAttribute != nil {
		dst.FormatAttribute = user.FormatAttribute
	}
	if user.Slots != nil {
		dst.Slots = user.Slots
	}
	if user.Component != nil {
		dst.Component = user.Component
	}
	if user.Styles.OutputFormat != "" {
		dst.Styles.OutputFormat = user.Styles.OutputFormat
	}
	if user.Styles.Minify {
		dst.Styles.Minify = true
	}
	if user.Styles.SourceMap {
		dst.Styles.SourceMap = true
	}
	if user.PreferSelfClosing {
		dst.PreferSelfClosing = true
	}
	dst.Write = user.Write
}

func (p *Pipeline) names() []string {
	names := make([]string, len(p.exts))
	for i, ext := range p.exts {
		names[i] = ext.Name()
	}
	return names
}
