package bem

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weft-dev/weft/internal/types"
)

func bemNode(tag string, data map[string]interface{}) *types.Node {
	return &types.Node{
		Tag:        tag,
		Extensions: map[string]map[string]interface{}{Name: data},
	}
}

func TestClassesBlockElementModifier(t *testing.T) {
	node := bemNode("span", map[string]interface{}{
		"block":    "button",
		"element":  "icon",
		"modifier": "active",
	})
	assert.Equal(t, []string{"button__icon", "button__icon--active"}, Classes(node, nil))
}

func TestClassesBlockOnly(t *testing.T) {
	node := bemNode("div", map[string]interface{}{"block": "card"})
	assert.Equal(t, []string{"card"}, Classes(node, nil))
}

func TestClassesInheritBlockFromAncestor(t *testing.T) {
	parent := bemNode("div", map[string]interface{}{"block": "card"})
	node := bemNode("h2", map[string]interface{}{"element": "title"})
	assert.Equal(t, []string{"card__title"}, Classes(node, []*types.Node{parent}))
}

func TestClassesNearestAncestorBlockWins(t *testing.T) {
	outer := bemNode("div", map[string]interface{}{"block": "page"})
	inner := bemNode("div", map[string]interface{}{"block": "card"})
	node := bemNode("h2", map[string]interface{}{"element": "title"})
	assert.Equal(t, []string{"card__title"}, Classes(node, []*types.Node{outer, inner}))
}

func TestClassesElementWithoutAnyBlock(t *testing.T) {
	node := bemNode("h2", map[string]interface{}{"element": "title"})
	assert.Equal(t, []string{"title"}, Classes(node, nil))
}

func TestClassesModifierList(t *testing.T) {
	node := bemNode("div", map[string]interface{}{
		"block":     "card",
		"modifiers": []interface{}{"wide", "dark"},
	})
	assert.Equal(t, []string{"card", "card--wide", "card--dark"}, Classes(node, nil))
}

func TestClassesNoMetadata(t *testing.T) {
	assert.Nil(t, Classes(&types.Node{Tag: "div"}, nil))
}

func TestHandleNodeAppendsToExistingClass(t *testing.T) {
	node := bemNode("div", map[string]interface{}{"block": "card"})
	node.Attributes = types.AttrsFromPairs("class", "existing")

	out, err := New().HandleNode(node, nil)
	require.NoError(t, err)
	assert.Equal(t, "existing card", out.Attributes.Value("class"))
}

func TestHandleNodeCreatesClassAttribute(t *testing.T) {
	node := bemNode("div", map[string]interface{}{"block": "card"})

	out, err := New().HandleNode(node, nil)
	require.NoError(t, err)
	assert.Equal(t, "card", out.Attributes.Value("class"))
}

func TestGenerateStylesNestsElementsUnderBlock(t *testing.T) {
	title := bemNode("h2", map[string]interface{}{"element": "title"})
	title.Styles = json.RawMessage(`{"fontSize": "1.5rem"}`)

	card := bemNode("div", map[string]interface{}{"block": "card"})
	card.Styles = json.RawMessage(`{"padding": "1rem"}`)
	card.Children = []*types.Node{title}

	out, err := New().GenerateStyles(nil, types.DefaultRenderOptions(), []*types.Node{card})
	require.NoError(t, err)
	assert.Equal(t, ".card {\n  padding: 1rem;\n\n  &__title {\n    font-size: 1.5rem;\n  }\n}\n", out)
}

func TestGenerateStylesEmptyWithoutBemNodes(t *testing.T) {
	plain := &types.Node{Tag: "div", Styles: json.RawMessage(`{"color": "red"}`)}
	out, err := New().GenerateStyles(nil, types.DefaultRenderOptions(), []*types.Node{plain})
	require.NoError(t, err)
	assert.Empty(t, out)
}
