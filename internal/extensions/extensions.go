// Package extensions registers the built-in weft extensions.
package extensions

import (
	"fmt"

	"github.com/weft-dev/weft/internal/extension"
	"github.com/weft-dev/weft/internal/extensions/bem"
	"github.com/weft-dev/weft/internal/extensions/react"
	"github.com/weft-dev/weft/internal/extensions/svelte"
	"github.com/weft-dev/weft/internal/extensions/tailwind"
	"github.com/weft-dev/weft/internal/extensions/vue"
)

// DefaultRegistry returns a registry with every built-in extension
// registered.
func DefaultRegistry() (*extension.Registry, error) {
	registry := extension.NewRegistry()

	builtins := []extension.Extension{
		bem.New(),
		react.New(),
		vue.New(),
		svelte.New(),
		tailwind.New(),
	}
	for _, ext := range builtins {
		if err := registry.Register(ext); err != nil {
			return nil, fmt.Errorf("registering builtin extension: %w", err)
		}
	}
	return registry, nil
}
