// Package vue implements the Vue extension: single-file-component output
// with v-if/v-else/v-for directive rewriting and :name="expr" bindings.
package vue

import (
	"fmt"
	"sort"
	"strings"

	"github.com/weft-dev/weft/internal/types"
)

// Name is the extension identifier.
const Name = "vue"

// Extension produces Vue single-file-component source.
type Extension struct{}

// New creates the vue extension.
func New() *Extension {
	return &Extension{}
}

// Name implements extension.Extension.
func (e *Extension) Name() string {
	return Name
}

// HandleOptions switches the pass to SFC output: .vue artifacts and
// :name="expr" bindings.
func (e *Extension) HandleOptions(opts *types.RenderOptions) (*types.RenderOptions, error) {
	opts.FileExtension = ".vue"
	opts.FormatAttribute = formatAttribute
	return opts, nil
}

func formatAttribute(name, value string, expression bool) string {
	if expression {
		return ":" + name + `="` + value + `"`
	}
	return name + `="` + value + `"`
}

// HandleNode rewrites if and for nodes onto <template> wrapper elements
// carrying the matching directives.
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

	then := &types.Node{Tag: "template", Children: node.Then}
	then.SetAttribute("v-if", node.Condition)
	children := []*types.Node{then}

	if len(node.Else) > 0 {
		alt := &types.Node{Tag: "template", Children: node.Else}
		alt.SetAttribute("v-else", "")
		children = append(children, alt)
	}
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
	binding := item
	if node.Index != "" {
		binding = "(" + item + ", " + node.Index + ")"
	}

	wrapper := &types.Node{Tag: "template", Children: node.Children}
	wrapper.SetAttribute("v-for", binding+" in "+node.Items)
	if node.Key != "" {
		wrapper.Expressions = types.AttrsFromPairs("key", node.Key)
	}
	return wrapper
}

// HandleRoot wraps the markup in a single-file component with a script block
// derived from the template's component metadata. Stylesheet text stays in
// the separate artifact the style manager produces.
func (e *Extension) HandleRoot(output string, opts *types.RenderOptions) (string, error) {
	var b strings.Builder
	b.WriteString("<template>\n")
	b.WriteString(output)
	b.WriteString("\n</template>\n\n<script>\n")

	if opts.Component != nil {
		for _, imp := range opts.Component.Imports {
			b.WriteString(imp)
			b.WriteString("\n")
		}
		if len(opts.Component.Imports) > 0 {
			b.WriteString("\n")
		}
	}

	b.WriteString("export default {\n")
	if name := componentName(opts); name != "" {
		b.WriteString(fmt.Sprintf("  name: '%s',\n", name))
	}
	if props := propLines(opts.Component); len(props) > 0 {
		b.WriteString("  props: {\n")
		b.WriteString(strings.Join(props, ",\n"))
		b.WriteString("\n  },\n")
	}
	b.WriteString("};\n</script>\n")
	return b.String(), nil
}

func componentName(opts *types.RenderOptions) string {
	if opts.Component != nil && opts.Component.Name != "" {
		return opts.Component.Name
	}
	return ""
}

// propLines maps declared prop types onto Vue prop constructors.
func propLines(meta *types.ComponentMeta) []string {
	if meta == nil || len(meta.Props) == 0 {
		return nil
	}
	names := make([]string, 0, len(meta.Props))
	for name := range meta.Props {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, "    "+name+": "+vueType(meta.Props[name]))
	}
	return lines
}

func vueType(t string) string {
	switch strings.ToLower(t) {
	case "string":
		return "String"
	case "number", "int", "float":
		return "Number"
	case "bool", "boolean":
		return "Boolean"
	case "array":
		return "Array"
	case "object":
		return "Object"
	case "function", "func":
		return "Function"
	}
	return "null"
}
