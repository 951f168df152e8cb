package styles

import (
	"strings"

	"github.com/weft-dev/weft/internal/types"
)

// Selector derives the key a node's declarations accumulate under: the first
// class token of the node's resolved class attribute, or the fallback
// placeholder when the node has none. Extensions that synthesize class names
// (bem) run before the style pass, so their identity is visible here as a
// plain class attribute.
func Selector(node *types.Node) string {
	if class := node.Attributes.Value("class"); class != "" {
		if first := strings.Fields(class); len(first) > 0 {
			return first[0]
		}
	}
	return FallbackSelector
}
