package tailwind

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weft-dev/weft/internal/types"
)

func TestUtilityKeywordMappings(t *testing.T) {
	assert.Equal(t, "flex", Utility("display", "flex"))
	assert.Equal(t, "hidden", Utility("display", "none"))
	assert.Equal(t, "flex-col", Utility("flexDirection", "column"))
	assert.Equal(t, "justify-between", Utility("justifyContent", "space-between"))
	assert.Equal(t, "items-center", Utility("alignItems", "center"))
	assert.Equal(t, "text-center", Utility("textAlign", "center"))
	assert.Equal(t, "font-semibold", Utility("fontWeight", "600"))
	assert.Equal(t, "absolute", Utility("position", "absolute"))
}

func TestUtilityArbitraryValues(t *testing.T) {
	assert.Equal(t, "text-[#333]", Utility("color", "#333"))
	assert.Equal(t, "bg-[red]", Utility("backgroundColor", "red"))
	assert.Equal(t, "p-[1rem]", Utility("padding", "1rem"))
	assert.Equal(t, "rounded-[4px]", Utility("borderRadius", "4px"))
}

func TestUtilityUnmappedProperty(t *testing.T) {
	assert.Empty(t, Utility("boxShadow", "0 1px 2px black"))
	assert.Empty(t, Utility("display", "table-cell"))
}

func TestHandleNodeTranslatesAndConsumes(t *testing.T) {
	node := &types.Node{
		Tag:        "div",
		Attributes: types.AttrsFromPairs("class", "card"),
		Styles:     json.RawMessage(`{"display": "flex", "padding": "1rem"}`),
	}

	out, err := New().HandleNode(node, nil)
	require.NoError(t, err)
	assert.Equal(t, "card flex p-[1rem]", out.Attributes.Value("class"))
	assert.Nil(t, out.Styles)
}

func TestHandleNodeKeepsUnmappedAndNested(t *testing.T) {
	node := &types.Node{
		Tag: "div",
		Styles: json.RawMessage(`{
			"display": "flex",
			"boxShadow": "0 1px 2px black",
			"&:hover": {"color": "blue"}
		}`),
	}

	out, err := New().HandleNode(node, nil)
	require.NoError(t, err)
	assert.Equal(t, "flex", out.Attributes.Value("class"))

	obj, ok := out.StyleObject()
	require.True(t, ok)
	assert.Equal(t, "0 1px 2px black", obj["boxShadow"])
	assert.Contains(t, obj, "&:hover")
	assert.NotContains(t, obj, "display")
}

func TestHandleNodeWithoutStylesIsPassthrough(t *testing.T) {
	node := &types.Node{Tag: "div"}
	out, err := New().HandleNode(node, nil)
	require.NoError(t, err)
	assert.Same(t, node, out)
	assert.Equal(t, 0, out.Attributes.Len())
}

func TestHandleNodeNoTranslatableProps(t *testing.T) {
	node := &types.Node{
		Tag:    "div",
		Styles: json.RawMessage(`{"boxShadow": "none"}`),
	}

	out, err := New().HandleNode(node, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Attributes.Len())
	assert.JSONEq(t, `{"boxShadow": "none"}`, string(out.Styles))
}
