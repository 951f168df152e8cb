package types

// StyleFormat selects how collected style declarations are emitted.
type StyleFormat string

const (
	StyleInline StyleFormat = "inline"
	StyleCSS    StyleFormat = "css"
	StyleSCSS   StyleFormat = "scss"
)

// Valid reports whether the format is one of the supported values.
func (f StyleFormat) Valid() bool {
	switch f {
	case StyleInline, StyleCSS, StyleSCSS:
		return true
	}
	return false
}

// Extension returns the stylesheet file extension for the format, or an empty
// string for inline output, which produces no separate artifact.
func (f StyleFormat) Extension() string {
	switch f {
	case StyleCSS:
		return ".css"
	case StyleSCSS:
		return ".scss"
	}
	return ""
}

// StyleOptions is the style sub-configuration of a render pass.
type StyleOptions struct {
	// OutputFormat is inline, css, or scss.
	OutputFormat StyleFormat `yaml:"output_format"`
	// Minify strips indentation and newlines from generated rule blocks.
	Minify bool `yaml:"minify"`
	// SourceMap requests a source map comment from downstream tooling; the
	// core threads the flag through without acting on it.
	SourceMap bool `yaml:"source_map"`
}

// AttributeFormatter maps one attribute to its textual fragment in an open
// tag. expression is true for dynamic bindings. The returned fragment is
// emitted verbatim after a separating space; returning an empty string drops
// the attribute.
type AttributeFormatter func(name, value string, expression bool) string

// RenderOptions aggregates the configuration of one render pass. Options are
// resolved once at the root of the pass (defaults, then each extension's
// options handler in registration order, then caller values) and threaded
// unchanged through the recursive walk.
type RenderOptions struct {
	// FileName is the base name for output artifacts, without extension.
	FileName string
	// OutputDir is the directory artifacts are written into.
	OutputDir string
	// FileExtension is the markup artifact extension, including the dot.
	FileExtension string
	// Extensions lists the active extension names in application order.
	Extensions []string
	// FormatAttribute renders one attribute fragment; framework extensions
	// replace it through their options handler.
	FormatAttribute AttributeFormatter
	// Styles configures the style manager for this pass.
	Styles StyleOptions
	// Slots maps slot names to the node lists rendered in their place.
	Slots map[string][]*Node
	// PreferSelfClosing self-closes every childless element, not only void
	// tags and nodes that ask for it.
	PreferSelfClosing bool
	// Write persists artifacts through the output writer after rendering.
	Write bool
	// Formatter names the code formatter syntax applied to the final markup;
	// empty means no formatting step.
	Formatter string
	// Component carries template metadata for component-producing root
	// handlers. Nil for plain markup templates.
	Component *ComponentMeta
}

// ComponentMeta is the optional component metadata of an extended template.
type ComponentMeta struct {
	// Name is the component identifier (e.g. "PrimaryButton").
	Name string `json:"name"`
	// Props maps prop names to their declared types.
	Props map[string]string `json:"props,omitempty"`
	// Imports lists import statements emitted by component root handlers.
	Imports []string `json:"imports,omitempty"`
	// Config stores per-extension component configuration.
	Config map[string]map[string]interface{} `json:"config,omitempty"`
}

// ExtendedTemplate is a parsed template source: the node tree plus optional
// component metadata.
type ExtendedTemplate struct {
	Nodes     []*Node        `json:"nodes"`
	Component *ComponentMeta `json:"component,omitempty"`
}

// DefaultFormatAttribute is the attribute formatter used when no extension
// installs its own: static attributes render as name="value", dynamic
// bindings as name="{value}".
func DefaultFormatAttribute(name, value string, expression bool) string {
	if expression {
		return name + `="{` + value + `}"`
	}
	return name + `="` + value + `"`
}

// DefaultRenderOptions returns the options a render pass starts from before
// extension and caller overrides are applied.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		FileName:        "untitled",
		FileExtension:   ".html",
		FormatAttribute: DefaultFormatAttribute,
		Styles:          StyleOptions{OutputFormat: StyleCSS},
		Write:           true,
	}
}

// StyleRule is one accumulated style block keyed by selector. Values in
// Nested represent pseudo-selector and at-rule sub-blocks one level below the
// selector.
type StyleRule struct {
	Selector string
	// Props preserves property insertion order so collisions stay
	// last-write-wins in node-visitation order.
	Props *OrderedProps
	// Nested maps "&:hover" / ":hover" / "@media ..." keys to sub-blocks.
	Nested map[string]*StyleRule
	// NestedOrder preserves first-seen ordering of Nested keys.
	NestedOrder []string
}

// OrderedProps is an insertion-ordered property map with last-write-wins
// updates.
type OrderedProps struct {
	keys   []string
	values map[string]string
}

// NewOrderedProps returns an empty ordered property map.
func NewOrderedProps() *OrderedProps {
	return &OrderedProps{values: make(map[string]string)}
}

// Set writes a property, keeping the key's original position when it already
// exists.
func (p *OrderedProps) Set(key, value string) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value for key and whether it is present.
func (p *OrderedProps) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Len returns the number of properties.
func (p *OrderedProps) Len() int { return len(p.keys) }

// Each visits properties in insertion order.
func (p *OrderedProps) Each(fn func(key, value string)) {
	for _, k := range p.keys {
		fn(k, p.values[k])
	}
}
