package styles

import (
	"strings"

	"github.com/weft-dev/weft/internal/types"
)

// renderFlat emits one flat rule block per selector. Nested sub-blocks are an
// SCSS feature and are skipped here.
func (m *Manager) renderFlat(minify bool) string {
	var b strings.Builder
	for _, rule := range m.Rules() {
		if rule.Props.Len() == 0 {
			continue
		}
		writeBlock(&b, "."+rule.Selector, rule.Props, minify, 0)
	}
	return b.String()
}

// renderNested emits SCSS rule blocks preserving pseudo-selector and at-rule
// nesting.
func (m *Manager) renderNested(minify bool) string {
	var b strings.Builder
	for _, rule := range m.Rules() {
		if rule.Props.Len() == 0 && len(rule.NestedOrder) == 0 {
			continue
		}
		openBlock(&b, "."+rule.Selector, minify, 0)
		writeProps(&b, rule.Props, minify, 1)
		for _, key := range rule.NestedOrder {
			sub := rule.Nested[key]
			openBlock(&b, key, minify, 1)
			writeProps(&b, sub.Props, minify, 2)
			closeBlock(&b, minify, 1)
		}
		closeBlock(&b, minify, 0)
	}
	return b.String()
}

func writeBlock(b *strings.Builder, selector string, props *types.OrderedProps, minify bool, depth int) {
	openBlock(b, selector, minify, depth)
	writeProps(b, props, minify, depth+1)
	closeBlock(b, minify, depth)
}

func openBlock(b *strings.Builder, selector string, minify bool, depth int) {
	if minify {
		b.WriteString(selector)
		b.WriteString("{")
		return
	}
	b.WriteString(indent(depth))
	b.WriteString(selector)
	b.WriteString(" {\n")
}

func closeBlock(b *strings.Builder, minify bool, depth int) {
	if minify {
		b.WriteString("}")
		return
	}
	b.WriteString(indent(depth))
	b.WriteString("}\n")
}

func writeProps(b *strings.Builder, props *types.OrderedProps, minify bool, depth int) {
	props.Each(func(key, value string) {
		if minify {
			b.WriteString(KebabCase(key))
			b.WriteString(":")
			b.WriteString(value)
			b.WriteString(";")
			return
		}
		b.WriteString(indent(depth))
		b.WriteString(KebabCase(key))
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString(";\n")
	})
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
