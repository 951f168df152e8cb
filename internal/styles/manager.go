// Package styles aggregates the style declarations discovered while the
// renderer walks a template tree and emits css, scss, or inline text.
//
// Declarations are accumulated per selector: two nodes resolving to the same
// selector merge into one rule, later properties overwriting earlier ones in
// node-visitation order. Keys beginning with "&", ":" or "@" one level below
// a declaration are kept as nested sub-blocks; nesting is an SCSS-only
// feature and flat CSS output skips it.
package styles

import (
	"sort"
	"strings"

	"github.com/weft-dev/weft/internal/errors"
	"github.com/weft-dev/weft/internal/extension"
	"github.com/weft-dev/weft/internal/types"
)

// FallbackSelector keys declarations of nodes with no class and no bem
// identity.
const FallbackSelector = "untitled-element"

// Manager is the per-render-call style collector. It is not safe for
// concurrent use; each render call constructs its own.
type Manager struct {
	rules map[string]*types.StyleRule
	order []string
}

// NewManager creates an empty style collector.
func NewManager() *Manager {
	return &Manager{rules: make(map[string]*types.StyleRule)}
}

// ProcessNode merges the node's structured style declaration into the rule
// for the node's selector. Nodes without a structured declaration are
// skipped. Processing the same node twice is idempotent.
func (m *Manager) ProcessNode(node *types.Node) {
	obj, ok := node.StyleObject()
	if !ok {
		return
	}
	rule := m.rule(Selector(node))
	mergeObject(rule, obj)
}

// Rules returns the accumulated rules in first-seen selector order.
func (m *Manager) Rules() []*types.StyleRule {
	out := make([]*types.StyleRule, 0, len(m.order))
	for _, sel := range m.order {
		out = append(out, m.rules[sel])
	}
	return out
}

// HasStyles reports whether any declaration was collected.
func (m *Manager) HasStyles() bool {
	return len(m.order) > 0
}

// InlineStyles renders the node's own non-nested properties as a flat
// "prop: value; ..." string with camelCase property names converted to
// kebab-case. It returns an empty string and false when the node declared no
// styles.
func (m *Manager) InlineStyles(node *types.Node) (string, bool) {
	obj, ok := node.StyleObject()
	if !ok {
		return "", false
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		if isNestedKey(k) {
			continue
		}
		if _, ok := obj[k].(string); ok {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return "", false
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(KebabCase(k))
		b.WriteString(": ")
		b.WriteString(obj[k].(string))
	}
	return b.String(), true
}

// GenerateOutput renders the accumulated rules in the configured format. For
// scss it additionally invokes every style plugin's GenerateStyles hook on
// the full rewritten tree and concatenates the contributed text. Inline
// output returns an empty string: per-node declarations are attached as
// style attributes during serialization and never aggregated.
func (m *Manager) GenerateOutput(opts *types.RenderOptions, tree []*types.Node, plugins []extension.StylePlugin) (string, error) {
	switch opts.Styles.OutputFormat {
	case types.StyleInline:
		return "", nil
	case types.StyleCSS:
		return m.renderFlat(opts.Styles.Minify), nil
	case types.StyleSCSS:
		out := m.renderNested(opts.Styles.Minify)
		for _, plugin := range plugins {
			extra, err := plugin.GenerateStyles(m.Rules(), opts, tree)
			if err != nil {
				return "", err
			}
			if extra == "" {
				continue
			}
			if out != "" && !strings.HasSuffix(out, "\n") {
				out += "\n"
			}
			out += extra
		}
		return out, nil
	}
	return "", errors.NewConfigError(
		errors.CodeBadStyleFormat,
		"unsupported style output format "+string(opts.Styles.OutputFormat),
		nil,
	)
}

func (m *Manager) rule(selector string) *types.StyleRule {
	if r, ok := m.rules[selector]; ok {
		return r
	}
	r := &types.StyleRule{
		Selector: selector,
		Props:    types.NewOrderedProps(),
		Nested:   make(map[string]*types.StyleRule),
	}
	m.rules[selector] = r
	m.order = append(m.order, selector)
	return r
}

// mergeObject folds one declaration object into a rule. Nested objects under
// "&", ":" or "@" keys become sub-blocks one level deep; any deeper nesting
// inside a sub-block is flattened into that sub-block's properties.
func mergeObject(rule *types.StyleRule, obj map[string]interface{}) {
	for _, k := range sortedKeys(obj) {
		switch v := obj[k].(type) {
		case string:
			rule.Props.Set(k, v)
		case map[string]interface{}:
			if !isNestedKey(k) {
				continue
			}
			sub, ok := rule.Nested[k]
			if !ok {
				sub = &types.StyleRule{
					Selector: k,
					Props:    types.NewOrderedProps(),
					Nested:   make(map[string]*types.StyleRule),
				}
				rule.Nested[k] = sub
				rule.NestedOrder = append(rule.NestedOrder, k)
			}
			for _, nk := range sortedKeys(v) {
				if s, ok := v[nk].(string); ok {
					sub.Props.Set(nk, s)
				}
			}
		}
	}
}

// isNestedKey reports whether a declaration key opens a nested sub-block: a
// parent reference (&:hover), a bare pseudo-selector (:hover), or an at-rule
// (@media ...).
func isNestedKey(key string) bool {
	return strings.HasPrefix(key, "&") || strings.HasPrefix(key, ":") || strings.HasPrefix(key, "@")
}

// sortedKeys gives map iteration a deterministic order so repeated renders of
// the same tree emit identical text.
func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// KebabCase converts a camelCase property name to kebab-case. Names already
// in kebab-case pass through unchanged.
func KebabCase(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
