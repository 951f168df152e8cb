// Package react implements the React extension: JSX attribute formatting,
// conditional and loop rewriting into JSX expressions, and a root handler
// that wraps the serialized markup in a function component.
package react

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/weft-dev/weft/internal/types"
)

// Name is the extension identifier.
const Name = "react"

// Extension produces React function-component source.
type Extension struct{}

// New creates the react extension.
func New() *Extension {
	return &Extension{}
}

// Name implements extension.Extension.
func (e *Extension) Name() string {
	return Name
}

// HandleOptions switches the pass to JSX output: .jsx artifacts and
// name={expr} bindings.
func (e *Extension) HandleOptions(opts *types.RenderOptions) (*types.RenderOptions, error) {
	opts.FileExtension = ".jsx"
	opts.FormatAttribute = formatAttribute
	return opts, nil
}

func formatAttribute(name, value string, expression bool) string {
	if expression {
		return name + "={" + value + "}"
	}
	return name + `="` + value + `"`
}

// HandleNode renames HTML attributes to their JSX spellings and rewrites if
// and for nodes into JSX expression fragments.
func (e *Extension) HandleNode(node *types.Node, ancestors []*types.Node) (*types.Node, error) {
	node.Attributes.Rename("class", "className")
	node.Attributes.Rename("for", "htmlFor")
	node.Expressions.Rename("class", "className")
	node.Expressions.Rename("for", "htmlFor")

	switch node.Kind() {
	case types.KindIf:
		return rewriteIf(node), nil
	case types.KindFor:
		return rewriteFor(node), nil
	}
	return node, nil
}

// rewriteIf turns an if node into {cond && (...)} or {cond ? (...) : (...)}.
// An empty condition degrades to the then branch alone.
func rewriteIf(node *types.Node) *types.Node {
	if node.Condition == "" {
		return &types.Node{Type: types.KindFragment, Children: node.Then}
	}

	var children []*types.Node
	if len(node.Else) > 0 {
		children = append(children, textNode("{"+node.Condition+" ? ("))
		children = append(children, node.Then...)
		children = append(children, textNode(") : ("))
		children = append(children, node.Else...)
		children = append(children, textNode(")}"))
	} else {
		children = append(children, textNode("{"+node.Condition+" && ("))
		children = append(children, node.Then...)
		children = append(children, textNode(")}"))
	}
	return &types.Node{Type: types.KindFragment, Children: children}
}

// rewriteFor turns a for node into {items.map((item, index) => (...))}. An
// empty items binding degrades to the body alone.
func rewriteFor(node *types.Node) *types.Node {
	if node.Items == "" {
		return &types.Node{Type: types.KindFragment, Children: node.Children}
	}

	item := node.Item
	if item == "" {
		item = "item"
	}
	params := item
	if node.Index != "" {
		params = "(" + item + ", " + node.Index + ")"
	}

	children := []*types.Node{textNode("{" + node.Items + ".map(" + params + " => (")}
	children = append(children, node.Children...)
	children = append(children, textNode("))}"))
	return &types.Node{Type: types.KindFragment, Children: children}
}

func textNode(content string) *types.Node {
	return &types.Node{Type: types.KindText, Content: content}
}

// HandleRoot wraps the markup in an exported function component, emitting
// imports and a props destructuring from the template's component metadata.
func (e *Extension) HandleRoot(output string, opts *types.RenderOptions) (string, error) {
	name := ComponentName(opts)

	var b strings.Builder
	b.WriteString("import React from 'react';\n")
	if opts.Component != nil {
		for _, imp := range opts.Component.Imports {
			b.WriteString(imp)
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("export default function %s(props) {\n", name))
	if props := propNames(opts.Component); len(props) > 0 {
		b.WriteString("  const { " + strings.Join(props, ", ") + " } = props;\n")
	}
	b.WriteString("  return (\n    <>\n")
	b.WriteString(output)
	b.WriteString("\n    </>\n  );\n}\n")
	return b.String(), nil
}

// ComponentName resolves the component identifier: declared metadata name
// first, otherwise the title-cased file name.
func ComponentName(opts *types.RenderOptions) string {
	if opts.Component != nil && opts.Component.Name != "" {
		return opts.Component.Name
	}
	caser := cases.Title(language.English)
	parts := strings.FieldsFunc(opts.FileName, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, part := range parts {
		parts[i] = caser.String(part)
	}
	if len(parts) == 0 {
		return "Component"
	}
	return strings.Join(parts, "")
}

func propNames(meta *types.ComponentMeta) []string {
	if meta == nil || len(meta.Props) == 0 {
		return nil
	}
	names := make([]string, 0, len(meta.Props))
	for name := range meta.Props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
