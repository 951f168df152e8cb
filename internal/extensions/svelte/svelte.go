// Package svelte implements the Svelte extension: {#if}/{#each} block
// rewriting, name={expr} bindings, and a script block exporting the
// component's props.
package svelte

import (
	"sort"
	"strings"

	"github.com/weft-dev/weft/internal/types"
)

// Name is the extension identifier.
const Name = "svelte"

// Extension produces Svelte component source.
type Extension struct{}

// New creates the svelte extension.
func New() *Extension {
	return &Extension{}
}

// Name implements extension.Extension.
func (e *Extension) Name() string {
	return Name
}

// HandleOptions switches the pass to Svelte output: .svelte artifacts and
// name={expr} bindings.
func (e *Extension) HandleOptions(opts *types.RenderOptions) (*types.RenderOptions, error) {
	opts.FileExtension = ".svelte"
	opts.FormatAttribute = formatAttribute
	return opts, nil
}

func formatAttribute(name, value string, expression bool) string {
	if expression {
		return name + "={" + value + "}"
	}
	return name + `="` + value + `"`
}

// HandleNode rewrites if and for nodes into Svelte template blocks.
func (e *Extension) HandleNode(node *types.Node, ancestors []*types.Node) (*types.Node, error) {
	switch node.Kind() {
	case types.KindIf:
		return rewriteIf(node), nil
	case types.KindFor:
		return rewriteFor(node), nil
	}
	return node, nil
}

func rewriteIf(node *types.Node) *types.Node {
	if node.Condition == "" {
		return &types.Node{Type: types.KindFragment, Children: node.Then}
	}

	children := []*types.Node{textNode("{#if " + node.Condition + "}")}
	children = append(children, node.Then...)
	if len(node.Else) > 0 {
		children = append(children, textNode("{:else}"))
		children = append(children, node.Else...)
	}
	children = append(children, textNode("{/if}"))
	return &types.Node{Type: types.KindFragment, Children: children}
}

func rewriteFor(node *types.Node) *types.Node {
	if node.Items == "" {
		return &types.Node{Type: types.KindFragment, Children: node.Children}
	}

	item := node.Item
	if item == "" {
		item = "item"
	}
	header := "{#each " + node.Items + " as " + item
	if node.Index != "" {
		header += ", " + node.Index
	}
	if node.Key != "" {
		header += " (" + node.Key + ")"
	}
	header += "}"

	children := []*types.Node{textNode(header)}
	children = append(children, node.Children...)
	children = append(children, textNode("{/each}"))
	return &types.Node{Type: types.KindFragment, Children: children}
}

func textNode(content string) *types.Node {
	return &types.Node{Type: types.KindText, Content: content}
}

// HandleRoot prepends a script block exporting the component's declared
// props.
func (e *Extension) HandleRoot(output string, opts *types.RenderOptions) (string, error) {
	props := propNames(opts.Component)
	if len(props) == 0 {
		return output, nil
	}

	var b strings.Builder
	b.WriteString("<script>\n")
	if opts.Component != nil {
		for _, imp := range opts.Component.Imports {
			b.WriteString("  " + imp + "\n")
		}
	}
	for _, name := range props {
		b.WriteString("  export let " + name + ";\n")
	}
	b.WriteString("</script>\n\n")
	b.WriteString(output)
	return b.String(), nil
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
