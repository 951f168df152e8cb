package react

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weft-dev/weft/internal/types"
)

func TestHandleOptionsSwitchesToJSX(t *testing.T) {
	opts, err := New().HandleOptions(types.DefaultRenderOptions())
	require.NoError(t, err)
	assert.Equal(t, ".jsx", opts.FileExtension)
	assert.Equal(t, `className="btn"`, opts.FormatAttribute("className", "btn", false))
	assert.Equal(t, "disabled={isDisabled}", opts.FormatAttribute("disabled", "isDisabled", true))
}

func TestHandleNodeRenamesAttributes(t *testing.T) {
	node := &types.Node{
		Tag:         "label",
		Attributes:  types.AttrsFromPairs("class", "field", "for", "email"),
		Expressions: types.AttrsFromPairs("class", "dynamicClass"),
	}

	out, err := New().HandleNode(node, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"className", "htmlFor"}, out.Attributes.Keys())
	assert.Equal(t, "field", out.Attributes.Value("className"))
	assert.Equal(t, "dynamicClass", out.Expressions.Value("className"))
}

func collectText(n *types.Node) []string {
	var out []string
	for _, c := range n.Children {
		if c.Kind() == types.KindText {
			out = append(out, c.Content)
		}
	}
	return out
}

func TestRewriteIfWithoutElse(t *testing.T) {
	node := &types.Node{
		Type:      types.KindIf,
		Condition: "isVisible",
		Then:      []*types.Node{{Tag: "span"}},
	}

	out, err := New().HandleNode(node, nil)
	require.NoError(t, err)
	assert.Equal(t, types.KindFragment, out.Kind())
	assert.Equal(t, []string{"{isVisible && (", ")}"}, collectText(out))
}

func TestRewriteIfWithElse(t *testing.T) {
	node := &types.Node{
		Type:      types.KindIf,
		Condition: "ok",
		Then:      []*types.Node{{Tag: "span"}},
		Else:      []*types.Node{{Tag: "em"}},
	}

	out, err := New().HandleNode(node, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"{ok ? (", ") : (", ")}"}, collectText(out))
}

func TestRewriteIfEmptyConditionKeepsThenBranch(t *testing.T) {
	node := &types.Node{
		Type: types.KindIf,
		Then: []*types.Node{{Tag: "span"}},
	}

	out, err := New().HandleNode(node, nil)
	require.NoError(t, err)
	assert.Equal(t, types.KindFragment, out.Kind())
	require.Len(t, out.Children, 1)
	assert.Equal(t, "span", out.Children[0].Tag)
}

func TestRewriteForWithIndex(t *testing.T) {
	node := &types.Node{
		Type:     types.KindFor,
		Items:    "todos",
		Item:     "todo",
		Index:    "i",
		Children: []*types.Node{{Tag: "li"}},
	}

	out, err := New().HandleNode(node, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"{todos.map((todo, i) => (", "))}"}, collectText(out))
}

func TestRewriteForDefaultsItemBinding(t *testing.T) {
	node := &types.Node{
		Type:     types.KindFor,
		Items:    "todos",
		Children: []*types.Node{{Tag: "li"}},
	}

	out, err := New().HandleNode(node, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"{todos.map(item => (", "))}"}, collectText(out))
}

func TestHandleRootWrapsComponent(t *testing.T) {
	opts := types.DefaultRenderOptions()
	opts.FileName = "primary-button"
	opts.Component = &types.ComponentMeta{
		Props:   map[string]string{"label": "string", "disabled": "boolean"},
		Imports: []string{"import clsx from 'clsx';"},
	}

	out, err := New().HandleRoot("<button>Go</button>", opts)
	require.NoError(t, err)
	assert.Contains(t, out, "import React from 'react';\n")
	assert.Contains(t, out, "import clsx from 'clsx';\n")
	assert.Contains(t, out, "export default function PrimaryButton(props) {\n")
	assert.Contains(t, out, "const { disabled, label } = props;\n")
	assert.Contains(t, out, "<button>Go</button>")
}

func TestComponentName(t *testing.T) {
	opts := types.DefaultRenderOptions()
	opts.FileName = "user_card"
	assert.Equal(t, "UserCard", ComponentName(opts))

	opts.Component = &types.ComponentMeta{Name: "Declared"}
	assert.Equal(t, "Declared", ComponentName(opts))

	opts.Component = nil
	opts.FileName = ""
	assert.Equal(t, "Component", ComponentName(opts))
}
