// Package extension defines the capability contract weft extensions implement
// and the ordered registry/pipeline that composes them during a render pass.
//
// An extension is registered once and discovered capability by capability
// through type assertion: it may implement any subset of OptionsHandler,
// NodeHandler, StylePlugin, and RootHandler. Registration order is
// significant everywhere hooks are applied; later extensions observe the
// cumulative effect of earlier ones.
package extension

import (
	"github.com/weft-dev/weft/internal/types"
)

// Extension is the minimal contract every extension satisfies. Capabilities
// beyond the name are optional interfaces.
type Extension interface {
	// Name returns the unique identifier of the extension. It is also the
	// key under which nodes carry extension-private data.
	Name() string
}

// OptionsHandler lets an extension rewrite the render options once per root
// render. Handlers run in registration order, each receiving the previous
// handler's result; caller-supplied values are applied after the whole chain.
type OptionsHandler interface {
	HandleOptions(opts *types.RenderOptions) (*types.RenderOptions, error)
}

// NodeHandler lets an extension rewrite a node before serialization. The
// handler is called once per node in registration order and may return a
// replacement node; returning nil keeps the node unchanged. ancestors is the
// chain from root to the node's parent, nearest last.
type NodeHandler interface {
	HandleNode(node *types.Node, ancestors []*types.Node) (*types.Node, error)
}

// StylePlugin lets an extension observe nodes during the style pass and
// contribute stylesheet text of its own during SCSS generation.
type StylePlugin interface {
	// OnProcessNode observes one node of the rewritten tree. Side effects
	// only; the node must not be modified.
	OnProcessNode(node *types.Node)
	// GenerateStyles produces extension-owned stylesheet text from the
	// accumulated rules and the full rewritten tree. An empty return
	// contributes nothing.
	GenerateStyles(rules []*types.StyleRule, opts *types.RenderOptions, tree []*types.Node) (string, error)
}

// RootHandler post-processes the fully serialized markup once per render.
// Handlers chain in registration order.
type RootHandler interface {
	HandleRoot(output string, opts *types.RenderOptions) (string, error)
}
