// Package renderer provides the recursive template-tree rendering engine.
//
// The renderer walks a node tree depth first, runs the extension pipeline on
// every node, serializes the rewritten nodes to markup, and at the root of
// the walk drives the style manager and the root-handler chain. Traversal is
// fully synchronous and deterministic; the only suspension points are the
// formatter and output-writer boundary calls at the end of a root pass. A
// renderer holds no per-call state, so concurrent Render calls are safe as
// long as the registered extensions are themselves stateless.
package renderer

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/weft-dev/weft/internal/errors"
	"github.com/weft-dev/weft/internal/extension"
	"github.com/weft-dev/weft/internal/logging"
	"github.com/weft-dev/weft/internal/styles"
	"github.com/weft-dev/weft/internal/types"
)

// Writer persists one output artifact. Implementations must create parent
// directories as needed.
type Writer interface {
	Write(path string, data []byte) error
}

// Formatter formats serialized output for the named syntax. A failure must
// propagate; it is never swallowed.
type Formatter interface {
	Format(ctx context.Context, text, syntax string) (string, error)
}

// Result is the outcome of one render pass.
type Result struct {
	// Markup is the serialized (and, if configured, formatted) output.
	Markup string
	// Styles is the aggregated stylesheet text; empty for inline format.
	Styles string
	// Options is the resolved option set the pass ran with.
	Options *types.RenderOptions
	// Files lists the paths written, markup first.
	Files []string
}

// Renderer renders template trees through an extension pipeline.
type Renderer struct {
	pipeline  *extension.Pipeline
	writer    Writer
	formatter Formatter
	logger    logging.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWriter installs the output writer used when options request
// persistence.
func WithWriter(w Writer) Option {
	return func(r *Renderer) { r.writer = w }
}

// WithFormatter installs the code formatter applied when options name a
// formatter syntax.
func WithFormatter(f Formatter) Option {
	return func(r *Renderer) { r.formatter = f }
}

// WithLogger installs a logger; rendering is silent without one.
func WithLogger(l logging.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// New creates a renderer for the given extension pipeline.
func New(pipeline *extension.Pipeline, opts ...Option) *Renderer {
	r := &Renderer{pipeline: pipeline}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render runs one root render pass: options are resolved through the
// extension chain with user values taking final precedence, the tree is
// walked and serialized, styles are collected from the rewritten tree, root
// handlers post-process the markup, and artifacts are persisted when the
// resolved options ask for it.
func (r *Renderer) Render(ctx context.Context, nodes []*types.Node, user *types.RenderOptions) (*Result, error) {
	opts, err := r.pipeline.ResolveOptions(user)
	if err != nil {
		return nil, err
	}
	if !opts.Styles.OutputFormat.Valid() {
		return nil, errors.NewConfigError(
			errors.CodeBadStyleFormat,
			"unsupported style output format "+string(opts.Styles.OutputFormat),
			nil,
		)
	}

	collector := styles.NewManager()
	walk := &walker{renderer: r, opts: opts, styles: collector}

	markup, rewritten, err := walk.renderNodes(nodes, nil)
	if err != nil {
		return nil, err
	}

	// Style pass over the rewritten tree: extensions observe every node,
	// then the collector records its declarations.
	plugins := r.pipeline.StylePlugins()
	for _, root := range rewritten {
		root.Walk(func(n *types.Node) bool {
			for _, plugin := range plugins {
				plugin.OnProcessNode(n)
			}
			collector.ProcessNode(n)
			return true
		})
	}

	styleText := ""
	if collector.HasStyles() {
		styleText, err = collector.GenerateOutput(opts, rewritten, plugins)
		if err != nil {
			return nil, err
		}
	}

	markup, err = r.pipeline.ApplyRootHooks(markup, opts)
	if err != nil {
		return nil, err
	}

	if opts.Formatter != "" && r.formatter != nil {
		formatted, err := r.formatter.Format(ctx, markup, opts.Formatter)
		if err != nil {
			return nil, errors.NewIOError(errors.CodeFormatFailed, "formatting output", err)
		}
		markup = formatted
	}

	result := &Result{Markup: markup, Styles: styleText, Options: opts}
	if opts.Write {
		if err := r.persist(ctx, result, opts); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// persist writes the markup artifact and, for non-inline style formats with
// collected styles, the stylesheet artifact. Markup is always written first.
func (r *Renderer) persist(ctx context.Context, result *Result, opts *types.RenderOptions) error {
	if r.writer == nil {
		return errors.NewIOError(errors.CodeWriteFailed, "no output writer configured", nil)
	}

	markupPath := filepath.Join(opts.OutputDir, opts.FileName+opts.FileExtension)
	if err := r.writer.Write(markupPath, []byte(result.Markup)); err != nil {
		return errors.NewIOError(errors.CodeWriteFailed, "writing markup", err).WithPath(markupPath)
	}
	result.Files = append(result.Files, markupPath)
	if r.logger != nil {
		r.logger.Info(ctx, "wrote markup", "path", markupPath, "bytes", len(result.Markup))
	}

	if ext := opts.Styles.OutputFormat.Extension(); ext != "" && result.Styles != "" {
		stylePath := filepath.Join(opts.OutputDir, opts.FileName+ext)
		if err := r.writer.Write(stylePath, []byte(result.Styles)); err != nil {
			return errors.NewIOError(errors.CodeWriteFailed, "writing styles", err).WithPath(stylePath)
		}
		result.Files = append(result.Files, stylePath)
		if r.logger != nil {
			r.logger.Info(ctx, "wrote styles", "path", stylePath, "bytes", len(result.Styles))
		}
	}
	return nil
}

// walker carries the per-pass state of one render call.
type walker struct {
	renderer *Renderer
	opts     *types.RenderOptions
	styles   *styles.Manager
}

// renderNodes serializes a node list and returns the markup together with
// the rewritten nodes that produced it. Ignored nodes contribute nothing and
// their subtrees are skipped entirely.
func (w *walker) renderNodes(nodes []*types.Node, ancestors []*types.Node) (string, []*types.Node, error) {
	var b strings.Builder
	rewritten := make([]*types.Node, 0, len(nodes))

	for _, node := range nodes {
		processed, ignored, err := w.renderer.pipeline.ApplyNodeHooks(node, ancestors)
		if err != nil {
			return "", nil, err
		}
		if ignored {
			continue
		}
		text, err := w.renderNode(processed, ancestors)
		if err != nil {
			return "", nil, err
		}
		b.WriteString(text)
		rewritten = append(rewritten, processed)
	}
	return b.String(), rewritten, nil
}

func (w *walker) renderNode(node *types.Node, ancestors []*types.Node) (string, error) {
	switch node.Kind() {
	case types.KindElement:
		return w.renderElement(node, ancestors)
	case types.KindText:
		// Content is emitted verbatim; escaping is not this layer's job.
		return node.Content, nil
	case types.KindComment:
		return "<!-- " + node.Content + " -->", nil
	case types.KindFragment:
		text, children, err := w.renderNodes(node.Children, push(ancestors, node))
		node.Children = children
		return text, err
	case types.KindSlot:
		return w.renderSlot(node, ancestors)
	case types.KindIf:
		// Conditions are opaque; without a framework extension rewriting the
		// node, the then branch is rendered and empty branches yield empty
		// output.
		text, children, err := w.renderNodes(node.Then, push(ancestors, node))
		node.Then = children
		return text, err
	case types.KindFor:
		// Loop bindings are opaque; the body renders once.
		text, children, err := w.renderNodes(node.Children, push(ancestors, node))
		node.Children = children
		return text, err
	}
	return "", nil
}

// renderSlot renders caller-supplied slot content in place of the node, the
// node's fallback when the slot map has no entry, and nothing when neither
// exists.
func (w *walker) renderSlot(node *types.Node, ancestors []*types.Node) (string, error) {
	if content, ok := w.opts.Slots[node.Name]; ok {
		text, children, err := w.renderNodes(content, push(ancestors, node))
		// Resolved content becomes the slot's children so the root style
		// pass can see it.
		node.Children = children
		return text, err
	}
	if len(node.Fallback) > 0 {
		text, children, err := w.renderNodes(node.Fallback, push(ancestors, node))
		node.Fallback = children
		return text, err
	}
	return "", nil
}

func (w *walker) renderElement(node *types.Node, ancestors []*types.Node) (string, error) {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(node.Tag)
	w.writeAttributes(&b, node)

	if w.selfCloses(node) {
		b.WriteString(" />")
		return b.String(), nil
	}

	b.WriteString(">")
	if len(node.Children) > 0 {
		text, children, err := w.renderNodes(node.Children, push(ancestors, node))
		if err != nil {
			return "", err
		}
		node.Children = children
		b.WriteString(text)
	}
	b.WriteString("</")
	b.WriteString(node.Tag)
	b.WriteString(">")
	return b.String(), nil
}

// writeAttributes emits static attributes, the inline style attribute when
// the pass uses inline style output, then dynamic bindings, all through the
// configured attribute formatter.
func (w *walker) writeAttributes(b *strings.Builder, node *types.Node) {
	format := w.opts.FormatAttribute
	if format == nil {
		format = types.DefaultFormatAttribute
	}

	node.Attributes.Each(func(key, value string) {
		if fragment := format(key, value, false); fragment != "" {
			b.WriteString(" ")
			b.WriteString(fragment)
		}
	})

	if w.opts.Styles.OutputFormat == types.StyleInline {
		if inline, ok := w.styles.InlineStyles(node); ok {
			if fragment := format("style", inline, false); fragment != "" {
				b.WriteString(" ")
				b.WriteString(fragment)
			}
		}
	}

	node.Expressions.Each(func(key, value string) {
		if fragment := format(key, value, true); fragment != "" {
			b.WriteString(" ")
			b.WriteString(fragment)
		}
	})
}

// selfCloses reports whether the element renders as a single self-closing
// tag: only childless elements qualify, when the node asks for it, the
// options prefer it, or the tag is a void HTML element.
func (w *walker) selfCloses(node *types.Node) bool {
	if len(node.Children) > 0 {
		return false
	}
	return node.SelfClosing || w.opts.PreferSelfClosing || voidElements[node.Tag]
}

// voidElements is the fixed set of HTML elements that never take children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// push copies the ancestor chain before extending it so recursive calls and
// extension hooks never observe a shared backing array.
func push(chain []*types.Node, node *types.Node) []*types.Node {
	out := make([]*types.Node, len(chain)+1)
	copy(out, chain)
	out[len(chain)] = node
	return out
}
