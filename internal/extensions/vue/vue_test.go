package vue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weft-dev/weft/internal/types"
)

func TestHandleOptionsSwitchesToSFC(t *testing.T) {
	opts, err := New().HandleOptions(types.DefaultRenderOptions())
	require.NoError(t, err)
	assert.Equal(t, ".vue", opts.FileExtension)
	assert.Equal(t, `class="btn"`, opts.FormatAttribute("class", "btn", false))
	assert.Equal(t, `:disabled="isDisabled"`, opts.FormatAttribute("disabled", "isDisabled", true))
}

func TestRewriteIfToTemplateDirectives(t *testing.T) {
	node := &types.Node{
		Type:      types.KindIf,
		Condition: "isVisible",
		Then:      []*types.Node{{Tag: "span"}},
		Else:      []*types.Node{{Tag: "em"}},
	}

	out, err := New().HandleNode(node, nil)
	require.NoError(t, err)
	require.Len(t, out.Children, 2)

	then := out.Children[0]
	assert.Equal(t, "template", then.Tag)
	assert.Equal(t, "isVisible", then.Attributes.Value("v-if"))
	require.Len(t, then.Children, 1)
	assert.Equal(t, "span", then.Children[0].Tag)

	alt := out.Children[1]
	assert.Equal(t, "template", alt.Tag)
	assert.True(t, alt.Attributes.Has("v-else"))
	assert.Equal(t, "em", alt.Children[0].Tag)
}

func TestRewriteIfEmptyConditionKeepsThenBranch(t *testing.T) {
	node := &types.Node{Type: types.KindIf, Then: []*types.Node{{Tag: "span"}}}

	out, err := New().HandleNode(node, nil)
	require.NoError(t, err)
	assert.Equal(t, types.KindFragment, out.Kind())
	require.Len(t, out.Children, 1)
	assert.Equal(t, "span", out.Children[0].Tag)
}

func TestRewriteForToTemplateDirective(t *testing.T) {
	node := &types.Node{
		Type:     types.KindFor,
		Items:    "todos",
		Item:     "todo",
		Index:    "i",
		Key:      "todo.id",
		Children: []*types.Node{{Tag: "li"}},
	}

	out, err := New().HandleNode(node, nil)
	require.NoError(t, err)
	assert.Equal(t, "template", out.Tag)
	assert.Equal(t, "(todo, i) in todos", out.Attributes.Value("v-for"))
	assert.Equal(t, "todo.id", out.Expressions.Value("key"))
}

func TestRewriteForDefaultsItemBinding(t *testing.T) {
	node := &types.Node{Type: types.KindFor, Items: "todos", Children: []*types.Node{{Tag: "li"}}}

	out, err := New().HandleNode(node, nil)
	require.NoError(t, err)
	assert.Equal(t, "item in todos", out.Attributes.Value("v-for"))
	assert.False(t, out.Expressions.Has("key"))
}

func TestHandleRootBuildsSFC(t *testing.T) {
	opts := types.DefaultRenderOptions()
	opts.Component = &types.ComponentMeta{
		Name:  "UserCard",
		Props: map[string]string{"name": "string", "age": "number", "tags": "array"},
	}

	out, err := New().HandleRoot("<div>hi</div>", opts)
	require.NoError(t, err)
	assert.Contains(t, out, "<template>\n<div>hi</div>\n</template>")
	assert.Contains(t, out, "name: 'UserCard',")
	assert.Contains(t, out, "    age: Number,\n    name: String,\n    tags: Array\n")
	assert.Contains(t, out, "</script>\n")
}

func TestVueTypeMapping(t *testing.T) {
	assert.Equal(t, "String", vueType("string"))
	assert.Equal(t, "Boolean", vueType("bool"))
	assert.Equal(t, "Function", vueType("func"))
	assert.Equal(t, "null", vueType("mystery"))
}
