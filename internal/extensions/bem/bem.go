// Package bem implements the Block-Element-Modifier extension. It derives
// class names from per-node bem metadata, inheriting the block from the
// nearest ancestor that declares one, and contributes a nested SCSS selector
// tree re-derived from the node tree during style generation.
package bem

import (
	"sort"
	"strings"

	"github.com/weft-dev/weft/internal/styles"
	"github.com/weft-dev/weft/internal/types"
)

// Name is the extension identifier and the key bem metadata lives under in a
// node's extensions map.
const Name = "bem"

// Extension derives bem class names and nested bem stylesheets.
type Extension struct{}

// New creates the bem extension.
func New() *Extension {
	return &Extension{}
}

// Name implements extension.Extension.
func (e *Extension) Name() string {
	return Name
}

// HandleNode writes the node's resolved bem classes into its class
// attribute, creating the attribute when the node has none and appending to
// any existing value.
func (e *Extension) HandleNode(node *types.Node, ancestors []*types.Node) (*types.Node, error) {
	classes := Classes(node, ancestors)
	if len(classes) == 0 {
		return node, nil
	}

	joined := strings.Join(classes, " ")
	if existing := node.Attributes.Value("class"); existing != "" {
		joined = existing + " " + joined
	}
	node.SetAttribute("class", joined)
	return node, nil
}

// Classes resolves a node's bem class list: the base identity (block, or
// block__element) followed by one base--modifier class per declared
// modifier. A node without its own block inherits the nearest ancestor's.
func Classes(node *types.Node, ancestors []*types.Node) []string {
	data := node.ExtensionData(Name)
	if data == nil {
		return nil
	}

	block, _ := data["block"].(string)
	if block == "" {
		block = inheritedBlock(ancestors)
	}
	element, _ := data["element"].(string)

	base := block
	if element != "" {
		if block != "" {
			base = block + "__" + element
		} else {
			base = element
		}
	}
	if base == "" {
		return nil
	}

	classes := []string{base}
	for _, mod := range modifiers(data) {
		classes = append(classes, base+"--"+mod)
	}
	return classes
}

// inheritedBlock finds the block of the nearest ancestor declaring one,
// searching from the node's parent upward.
func inheritedBlock(ancestors []*types.Node) string {
	for i := len(ancestors) - 1; i >= 0; i-- {
		data := ancestors[i].ExtensionData(Name)
		if data == nil {
			continue
		}
		if block, _ := data["block"].(string); block != "" {
			return block
		}
	}
	return ""
}

// modifiers reads the "modifier" string or "modifiers" list from bem
// metadata.
func modifiers(data map[string]interface{}) []string {
	if mod, _ := data["modifier"].(string); mod != "" {
		return []string{mod}
	}
	var out []string
	switch list := data["modifiers"].(type) {
	case []string:
		out = append(out, list...)
	case []interface{}:
		for _, v := range list {
			if s, ok := v.(string); ok && s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// OnProcessNode implements extension.StylePlugin. The scss pass re-derives
// everything from the full tree, so per-node observation needs no state.
func (e *Extension) OnProcessNode(node *types.Node) {}

// GenerateStyles rebuilds block/element nesting directly from the node tree:
// each block becomes a top-level rule holding the block node's declarations,
// with one "&__element" sub-block per element node under it. The flat
// accumulator cannot recover this nesting, which is why the scss output
// delegates here.
func (e *Extension) GenerateStyles(rules []*types.StyleRule, opts *types.RenderOptions, tree []*types.Node) (string, error) {
	blocks := collectBlocks(tree)
	if len(blocks.order) == 0 {
		return "", nil
	}

	var b strings.Builder
	for _, name := range blocks.order {
		block := blocks.byName[name]
		if block.props.Len() == 0 && len(block.elements) == 0 {
			continue
		}
		b.WriteString("." + name + " {\n")
		writeProps(&b, block.props, 1)
		for i, el := range block.elementOrder {
			if block.props.Len() > 0 || i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("  &__" + el + " {\n")
			writeProps(&b, block.elements[el], 2)
			b.WriteString("  }\n")
		}
		b.WriteString("}\n")
	}
	return b.String(), nil
}

type blockStyles struct {
	props        *types.OrderedProps
	elements     map[string]*types.OrderedProps
	elementOrder []string
}

type blockSet struct {
	byName map[string]*blockStyles
	order  []string
}

// collectBlocks walks the tree tracking the current block the way class
// resolution does, attaching each bem node's flat declarations to its block
// or element identity.
func collectBlocks(tree []*types.Node) *blockSet {
	set := &blockSet{byName: make(map[string]*blockStyles)}
	for _, root := range tree {
		collectNode(root, "", set)
	}
	return set
}

func collectNode(node *types.Node, currentBlock string, set *blockSet) {
	if data := node.ExtensionData(Name); data != nil {
		if block, _ := data["block"].(string); block != "" {
			currentBlock = block
		}
		if currentBlock != "" {
			element, _ := data["element"].(string)
			set.record(currentBlock, element, node)
		}
	}
	for _, group := range [][]*types.Node{node.Children, node.Fallback, node.Then, node.Else} {
		for _, child := range group {
			collectNode(child, currentBlock, set)
		}
	}
}

func (s *blockSet) record(block, element string, node *types.Node) {
	obj, ok := node.StyleObject()
	if !ok {
		return
	}

	bs := s.byName[block]
	if bs == nil {
		bs = &blockStyles{
			props:    types.NewOrderedProps(),
			elements: make(map[string]*types.OrderedProps),
		}
		s.byName[block] = bs
		s.order = append(s.order, block)
	}

	target := bs.props
	if element != "" {
		target = bs.elements[element]
		if target == nil {
			target = types.NewOrderedProps()
			bs.elements[element] = target
			bs.elementOrder = append(bs.elementOrder, element)
		}
	}

	for _, key := range sortedKeys(obj) {
		if v, ok := obj[key].(string); ok {
			target.Set(key, v)
		}
	}
}

// sortedKeys gives declaration emission a deterministic order across runs.
func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func writeProps(b *strings.Builder, props *types.OrderedProps, depth int) {
	indent := strings.Repeat("  ", depth)
	props.Each(func(key, value string) {
		b.WriteString(indent)
		b.WriteString(styles.KebabCase(key))
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString(";\n")
	})
}
