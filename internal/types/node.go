// Package types provides the shared template-tree type definitions used
// throughout the weft CLI. This package contains the node model and render
// option aggregates to avoid circular dependencies between packages.
package types

import (
	"encoding/json"
	"fmt"
)

// NodeKind identifies the variant of a template node. A node is discriminated
// either by its Tag field (element nodes) or by its Type field (every other
// variant); exactly one of the two is set on a well-formed node.
type NodeKind string

const (
	KindElement  NodeKind = "element"
	KindText     NodeKind = "text"
	KindSlot     NodeKind = "slot"
	KindFragment NodeKind = "fragment"
	KindComment  NodeKind = "comment"
	KindIf       NodeKind = "if"
	KindFor      NodeKind = "for"
)

// Node is one unit of a template tree. The zero value is not a valid node;
// trees are produced by the loader or constructed by callers and treated as
// read-only input except where extensions rewrite fields during the hook pass.
type Node struct {
	// Tag is the element tag name ("div", "img"). A non-empty Tag marks the
	// node as an element regardless of Type.
	Tag string `json:"tag,omitempty"`
	// Type discriminates non-element variants: text, slot, fragment, comment,
	// if, for.
	Type NodeKind `json:"type,omitempty"`
	// Attributes holds static attributes rendered verbatim, in document
	// order.
	Attributes *Attrs `json:"attributes,omitempty"`
	// Expressions holds dynamic attribute bindings; how a binding is rendered
	// is decided by the active attribute formatter.
	Expressions *Attrs `json:"expressions,omitempty"`
	// SelfClosing forces `<tag ... />` serialization for childless elements.
	SelfClosing bool `json:"selfClosing,omitempty"`
	// Children is meaningful for element, fragment, and for nodes.
	Children []*Node `json:"children,omitempty"`
	// Content is the literal payload of text and comment nodes.
	Content string `json:"content,omitempty"`
	// Name identifies a slot node; render-time slot content is looked up
	// under this key in the options slot map.
	Name string `json:"name,omitempty"`
	// Fallback is rendered for a slot node when the slot map has no entry.
	Fallback []*Node `json:"fallback,omitempty"`

	// Condition is the opaque expression of an if node; it is passed through
	// verbatim and never evaluated.
	Condition string `json:"condition,omitempty"`
	// Then and Else are the branches of an if node.
	Then []*Node `json:"then,omitempty"`
	Else []*Node `json:"else,omitempty"`

	// Items, Item, Index and Key are the binding names of a for node.
	Items string `json:"items,omitempty"`
	Item  string `json:"item,omitempty"`
	Index string `json:"index,omitempty"`
	Key   string `json:"key,omitempty"`

	// Styles is the node's structured style declaration: a JSON object whose
	// values are strings or nested objects (pseudo-selectors, at-rules). A
	// plain-string declaration is legal but opaque to the style manager.
	Styles json.RawMessage `json:"styles,omitempty"`

	// Extensions holds extension-private data keyed by extension name, e.g.
	// bem block/element/modifier metadata or a per-extension field override.
	Extensions map[string]map[string]interface{} `json:"extensions,omitempty"`
}

// Kind resolves the node's variant. A node with a Tag is always an element;
// a node with neither Tag nor Type defaults to a fragment so malformed input
// degrades to "render the children" rather than failing.
func (n *Node) Kind() NodeKind {
	if n.Tag != "" {
		return KindElement
	}
	if n.Type != "" {
		return n.Type
	}
	return KindFragment
}

// ExtensionData returns the node's private data for the named extension, or
// nil when the node carries none.
func (n *Node) ExtensionData(name string) map[string]interface{} {
	if n.Extensions == nil {
		return nil
	}
	return n.Extensions[name]
}

// SetExtensionData stores private data for the named extension, allocating
// the extensions map on first use.
func (n *Node) SetExtensionData(name string, data map[string]interface{}) {
	if n.Extensions == nil {
		n.Extensions = make(map[string]map[string]interface{})
	}
	n.Extensions[name] = data
}

// SetAttribute writes a static attribute, allocating the attribute map on
// first use. Extensions use this to introduce attributes (such as a bem
// class) on nodes that declared none.
func (n *Node) SetAttribute(key, value string) {
	if n.Attributes == nil {
		n.Attributes = NewAttrs()
	}
	n.Attributes.Set(key, value)
}

// StyleObject decodes the node's structured style declaration. It returns
// (nil, false) when the node has no styles or when the declaration is a plain
// string rather than an object.
func (n *Node) StyleObject() (map[string]interface{}, bool) {
	if len(n.Styles) == 0 {
		return nil, false
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(n.Styles, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// Clone returns a shallow-maps copy of the node: attribute, expression and
// extension maps are duplicated one level deep so hook rewrites stay scoped
// to the current render call, while child nodes are shared.
func (n *Node) Clone() *Node {
	c := *n
	c.Attributes = n.Attributes.Clone()
	c.Expressions = n.Expressions.Clone()
	if n.Extensions != nil {
		c.Extensions = make(map[string]map[string]interface{}, len(n.Extensions))
		for name, data := range n.Extensions {
			inner := make(map[string]interface{}, len(data))
			for k, v := range data {
				inner[k] = v
			}
			c.Extensions[name] = inner
		}
	}
	return &c
}

// Walk visits the node and every descendant in depth-first document order,
// including slot fallbacks and both if branches. Walk stops early when fn
// returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, group := range [][]*Node{n.Children, n.Fallback, n.Then, n.Else} {
		for _, child := range group {
			if !child.Walk(fn) {
				return false
			}
		}
	}
	return true
}

// ParseNodes decodes a JSON array of template nodes.
func ParseNodes(data []byte) ([]*Node, error) {
	var nodes []*Node
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("parsing template nodes: %w", err)
	}
	return nodes, nil
}
