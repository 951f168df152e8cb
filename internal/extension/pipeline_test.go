package extension

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wefterrors "github.com/weft-dev/weft/internal/errors"
	"github.com/weft-dev/weft/internal/types"
)

// classWriter writes a fixed class attribute value.
type classWriter struct {
	name  string
	value string
}

func (c *classWriter) Name() string { return c.name }

func (c *classWriter) HandleNode(node *types.Node, ancestors []*types.Node) (*types.Node, error) {
	node.SetAttribute("class", c.value)
	return node, nil
}

// optionsSetter overrides the file extension.
type optionsSetter struct {
	name string
	ext  string
}

func (o *optionsSetter) Name() string { return o.name }

func (o *optionsSetter) HandleOptions(opts *types.RenderOptions) (*types.RenderOptions, error) {
	opts.FileExtension = o.ext
	return opts, nil
}

// failing fails every hook it implements.
type failing struct{ name string }

func (f *failing) Name() string { return f.name }

func (f *failing) HandleNode(node *types.Node, ancestors []*types.Node) (*types.Node, error) {
	return nil, errors.New("boom")
}

func (f *failing) HandleRoot(output string, opts *types.RenderOptions) (string, error) {
	return "", errors.New("boom")
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&classWriter{name: "a"}))
	assert.Error(t, r.Register(&classWriter{name: "a"}))
}

func TestRegistryPipelineUnknownExtension(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&classWriter{name: "a"}))

	_, err := r.Pipeline([]string{"a", "nope"})
	require.Error(t, err)
	assert.True(t, wefterrors.IsType(err, wefterrors.ErrorTypeConfig))
}

func TestNodeHookOrderIsRegistrationOrder(t *testing.T) {
	a := &classWriter{name: "a", value: "from-a"}
	b := &classWriter{name: "b", value: "from-b"}

	node := &types.Node{Tag: "div", Attributes: types.AttrsFromPairs("class", "x")}

	out, ignored, err := NewPipeline(a, b).ApplyNodeHooks(node, nil)
	require.NoError(t, err)
	require.False(t, ignored)
	assert.Equal(t, "from-b", out.Attributes.Value("class"))

	// Reversed registration must change the observable result.
	out, _, err = NewPipeline(b, a).ApplyNodeHooks(node, nil)
	require.NoError(t, err)
	assert.Equal(t, "from-a", out.Attributes.Value("class"))
}

func TestNodeHookDoesNotMutateInput(t *testing.T) {
	a := &classWriter{name: "a", value: "changed"}
	node := &types.Node{Tag: "div", Attributes: types.AttrsFromPairs("class", "orig")}

	_, _, err := NewPipeline(a).ApplyNodeHooks(node, nil)
	require.NoError(t, err)
	assert.Equal(t, "orig", node.Attributes.Value("class"))
}

func TestOverridesOnlyRewriteExistingFields(t *testing.T) {
	node := &types.Node{
		Tag: "div",
		Extensions: map[string]map[string]interface{}{
			"a": {
				"tag":     "section",
				"content": "new content", // node has no content: not created
			},
		},
	}

	out, ignored, err := NewPipeline(&classWriter{name: "a"}).ApplyNodeHooks(node, nil)
	require.NoError(t, err)
	require.False(t, ignored)
	assert.Equal(t, "section", out.Tag)
	assert.Empty(t, out.Content)
}

func TestOverrideAttributesRequireExistingMap(t *testing.T) {
	// Node without attributes: the override cannot introduce the map.
	bare := &types.Node{
		Tag: "div",
		Extensions: map[string]map[string]interface{}{
			"a": {"attributes": map[string]interface{}{"id": "x"}},
		},
	}
	out, _, err := NewPipeline(&optionsSetter{name: "a"}).ApplyNodeHooks(bare, nil)
	require.NoError(t, err)
	assert.False(t, out.Attributes.Has("id"))

	// Node with attributes: the override rewrites them.
	attributed := &types.Node{
		Tag:        "div",
		Attributes: types.AttrsFromPairs("id", "old"),
		Extensions: map[string]map[string]interface{}{
			"a": {"attributes": map[string]interface{}{"id": "new"}},
		},
	}
	out, _, err = NewPipeline(&optionsSetter{name: "a"}).ApplyNodeHooks(attributed, nil)
	require.NoError(t, err)
	assert.Equal(t, "new", out.Attributes.Value("id"))
}

func TestIgnoreStopsThePipeline(t *testing.T) {
	a := &classWriter{name: "a", value: "from-a"}
	b := &classWriter{name: "b", value: "from-b"}

	node := &types.Node{
		Tag:        "div",
		Attributes: types.AttrsFromPairs("class", "x"),
		Extensions: map[string]map[string]interface{}{
			"a": {"ignore": true},
		},
	}

	out, ignored, err := NewPipeline(a, b).ApplyNodeHooks(node, nil)
	require.NoError(t, err)
	assert.True(t, ignored)
	// Neither a's handler nor b ran.
	assert.Equal(t, "x", out.Attributes.Value("class"))
}

func TestNodeHookErrorPropagates(t *testing.T) {
	node := &types.Node{Tag: "div"}
	_, _, err := NewPipeline(&failing{name: "f"}).ApplyNodeHooks(node, nil)
	require.Error(t, err)
	assert.True(t, wefterrors.IsType(err, wefterrors.ErrorTypeHook))
}

func TestRootHooksChainInOrder(t *testing.T) {
	first := &suffixRoot{name: "a", suffix: "1"}
	second := &suffixRoot{name: "b", suffix: "2"}

	out, err := NewPipeline(first, second).ApplyRootHooks("x", &types.RenderOptions{})
	require.NoError(t, err)
	assert.Equal(t, "x12", out)
}

func TestRootHookErrorPropagates(t *testing.T) {
	_, err := NewPipeline(&failing{name: "f"}).ApplyRootHooks("x", &types.RenderOptions{})
	require.Error(t, err)
	assert.True(t, wefterrors.IsType(err, wefterrors.ErrorTypeHook))
}

func TestResolveOptionsPrecedence(t *testing.T) {
	ext := &optionsSetter{name: "a", ext: ".jsx"}

	// Extension override wins over defaults.
	opts, err := NewPipeline(ext).ResolveOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, ".jsx", opts.FileExtension)

	// Caller values win over the extension chain.
	opts, err = NewPipeline(ext).ResolveOptions(&types.RenderOptions{FileExtension: ".custom"})
	require.NoError(t, err)
	assert.Equal(t, ".custom", opts.FileExtension)

	// Unset caller values keep the chain's result.
	opts, err = NewPipeline(ext).ResolveOptions(&types.RenderOptions{FileName: "page"})
	require.NoError(t, err)
	assert.Equal(t, ".jsx", opts.FileExtension)
	assert.Equal(t, "page", opts.FileName)
}

func TestResolveOptionsChainsHandlers(t *testing.T) {
	first := &optionsSetter{name: "a", ext: ".a"}
	second := &optionsSetter{name: "b", ext: ".b"}

	opts, err := NewPipeline(first, second).ResolveOptions(nil)
	require.NoError(t, err)
	// The later handler sees and replaces the earlier result.
	assert.Equal(t, ".b", opts.FileExtension)
}

// suffixRoot appends a marker during root processing.
type suffixRoot struct {
	name   string
	suffix string
}

func (s *suffixRoot) Name() string { return s.name }

func (s *suffixRoot) HandleRoot(output string, opts *types.RenderOptions) (string, error) {
	return output + s.suffix, nil
}
