package extension

import (
	"sort"

	"github.com/weft-dev/weft/internal/errors"
	"github.com/weft-dev/weft/internal/types"
)

// ignoreKey is the sentinel field in a node's extension-private data that
// suppresses serialization of the node and its subtree.
const ignoreKey = "ignore"

// ApplyNodeHooks runs the node-hook pipeline over one node in registration
// order and returns the resulting node along with whether it was marked
// ignored. For each extension:
//
//  1. If the node carries private data under the extension's name, the data's
//     entries that name top-level node fields are copied onto the node — but
//     only onto fields the node already has a value for. Overrides rewrite,
//     they never introduce fields.
//  2. If that data sets the ignore sentinel, the node is ignored and no
//     further extensions are applied.
//  3. Otherwise the extension's node handler, if any, runs and its non-nil
//     return replaces the node.
//
// The input node is never modified; rewrites happen on a clone so mutation
// stays scoped to the current render call.
func (p *Pipeline) ApplyNodeHooks(node *types.Node, ancestors []*types.Node) (*types.Node, bool, error) {
	current := node.Clone()

	for _, ext := range p.exts {
		if data := current.ExtensionData(ext.Name()); data != nil {
			applyFieldOverrides(current, data)
			if ignored, ok := data[ignoreKey].(bool); ok && ignored {
				return current, true, nil
			}
		}
		nh, ok := ext.(NodeHandler)
		if !ok {
			continue
		}
		next, err := nh.HandleNode(current, ancestors)
		if err != nil {
			return nil, false, errors.NewHookError(ext.Name(), "node", err)
		}
		if next != nil {
			current = next
		}
	}
	return current, false, nil
}

// ApplyRootHooks chains every root handler over the serialized output in
// registration order, each handler receiving its predecessor's result.
func (p *Pipeline) ApplyRootHooks(output string, opts *types.RenderOptions) (string, error) {
	for _, ext := range p.exts {
		rh, ok := ext.(RootHandler)
		if !ok {
			continue
		}
		next, err := rh.HandleRoot(output, opts)
		if err != nil {
			return "", errors.NewHookError(ext.Name(), "root", err)
		}
		output = next
	}
	return output, nil
}

// applyFieldOverrides copies override entries onto the node. Only the fields
// listed here can be overridden, and only when the node already carries a
// value for them. This is deliberately asymmetric with extensions that
// introduce attributes through node handlers (such as bem writing a class):
// data-driven overrides rewrite, handlers may create.
func applyFieldOverrides(node *types.Node, data map[string]interface{}) {
	for key, raw := range data {
		switch key {
		case "tag":
			if v, ok := raw.(string); ok && node.Tag != "" {
				node.Tag = v
			}
		case "content":
			if v, ok := raw.(string); ok && node.Content != "" {
				node.Content = v
			}
		case "name":
			if v, ok := raw.(string); ok && node.Name != "" {
				node.Name = v
			}
		case "condition":
			if v, ok := raw.(string); ok && node.Condition != "" {
				node.Condition = v
			}
		case "items":
			if v, ok := raw.(string); ok && node.Items != "" {
				node.Items = v
			}
		case "item":
			if v, ok := raw.(string); ok && node.Item != "" {
				node.Item = v
			}
		case "index":
			if v, ok := raw.(string); ok && node.Index != "" {
				node.Index = v
			}
		case "key":
			if v, ok := raw.(string); ok && node.Key != "" {
				node.Key = v
			}
		case "selfClosing":
			if v, ok := raw.(bool); ok && node.SelfClosing {
				node.SelfClosing = v
			}
		case "attributes":
			if node.Attributes.Len() > 0 {
				overlayAttrs(node.Attributes, raw)
			}
		case "expressions":
			if node.Expressions.Len() > 0 {
				overlayAttrs(node.Expressions, raw)
			}
		}
	}
}

// overlayAttrs merges override entries into an attribute map, rewriting
// existing keys and appending new ones in iteration-stable order.
func overlayAttrs(attrs *types.Attrs, raw interface{}) {
	switch m := raw.(type) {
	case map[string]string:
		for _, k := range sortedStringKeys(m) {
			attrs.Set(k, m[k])
		}
	case map[string]interface{}:
		for _, k := range sortedAnyKeys(m) {
			if s, ok := m[k].(string); ok {
				attrs.Set(k, s)
			}
		}
	}
}

func sortedStringKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedAnyKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
