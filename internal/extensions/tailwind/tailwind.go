// Package tailwind implements the Tailwind extension: structured style
// declarations are translated into utility classes on the node and removed
// from the declaration so the style manager emits no rule for them.
// Properties without a utility mapping stay behind for normal stylesheet
// output.
package tailwind

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/weft-dev/weft/internal/types"
)

// Name is the extension identifier.
const Name = "tailwind"

// Extension rewrites structured styles into Tailwind utility classes.
type Extension struct{}

// New creates the tailwind extension.
func New() *Extension {
	return &Extension{}
}

// Name implements extension.Extension.
func (e *Extension) Name() string {
	return Name
}

// HandleNode translates the node's flat style properties into utility
// classes appended to the class attribute. Translated properties are
// consumed; nested sub-blocks and unmapped properties remain in the
// declaration.
func (e *Extension) HandleNode(node *types.Node, ancestors []*types.Node) (*types.Node, error) {
	obj, ok := node.StyleObject()
	if !ok {
		return node, nil
	}

	var utilities []string
	remainder := make(map[string]interface{})
	for _, key := range sortedKeys(obj) {
		value, isString := obj[key].(string)
		if !isString {
			remainder[key] = obj[key]
			continue
		}
		if util := Utility(key, value); util != "" {
			utilities = append(utilities, util)
		} else {
			remainder[key] = value
		}
	}
	if len(utilities) == 0 {
		return node, nil
	}

	joined := strings.Join(utilities, " ")
	if existing := node.Attributes.Value("class"); existing != "" {
		joined = existing + " " + joined
	}
	node.SetAttribute("class", joined)

	if len(remainder) == 0 {
		node.Styles = nil
	} else {
		data, err := json.Marshal(remainder)
		if err != nil {
			return nil, err
		}
		node.Styles = data
	}
	return node, nil
}

// Utility maps one CSS property/value pair to a Tailwind class, or an empty
// string when no mapping exists. Size-like properties fall back to
// arbitrary-value notation.
func Utility(property, value string) string {
	switch property {
	case "display":
		switch value {
		case "flex", "block", "grid", "inline", "inline-block", "none":
			if value == "none" {
				return "hidden"
			}
			return value
		}
	case "flexDirection", "flex-direction":
		switch value {
		case "column":
			return "flex-col"
		case "row":
			return "flex-row"
		case "column-reverse":
			return "flex-col-reverse"
		case "row-reverse":
			return "flex-row-reverse"
		}
	case "justifyContent", "justify-content":
		switch value {
		case "center":
			return "justify-center"
		case "flex-start":
			return "justify-start"
		case "flex-end":
			return "justify-end"
		case "space-between":
			return "justify-between"
		case "space-around":
			return "justify-around"
		}
	case "alignItems", "align-items":
		switch value {
		case "center":
			return "items-center"
		case "flex-start":
			return "items-start"
		case "flex-end":
			return "items-end"
		case "stretch":
			return "items-stretch"
		}
	case "textAlign", "text-align":
		switch value {
		case "left", "center", "right", "justify":
			return "text-" + value
		}
	case "fontWeight", "font-weight":
		switch value {
		case "bold", "700":
			return "font-bold"
		case "600":
			return "font-semibold"
		case "500":
			return "font-medium"
		case "normal", "400":
			return "font-normal"
		}
	case "position":
		switch value {
		case "relative", "absolute", "fixed", "sticky", "static":
			return value
		}
	case "color":
		return "text-[" + value + "]"
	case "backgroundColor", "background-color", "background":
		return "bg-[" + value + "]"
	case "width":
		return "w-[" + value + "]"
	case "height":
		return "h-[" + value + "]"
	case "margin":
		return "m-[" + value + "]"
	case "padding":
		return "p-[" + value + "]"
	case "gap":
		return "gap-[" + value + "]"
	case "borderRadius", "border-radius":
		return "rounded-[" + value + "]"
	case "fontSize", "font-size":
		return "text-[" + value + "]"
	}
	return ""
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
