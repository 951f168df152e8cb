// Package loader reads template sources from disk. A source is either a bare
// JSON array of nodes or an extended template object carrying component
// metadata alongside the node list.
package loader

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/weft-dev/weft/internal/errors"
	"github.com/weft-dev/weft/internal/types"
)

// Load reads and parses the template at path. A missing file and malformed
// JSON surface as distinguishable source errors.
func Load(path string) (*types.ExtendedTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewSourceError(errors.CodeSourceNotFound, "template source not found", err).WithPath(path)
		}
		return nil, errors.NewSourceError(errors.CodeSourceNotFound, "reading template source", err).WithPath(path)
	}

	tpl, err := Parse(data)
	if err != nil {
		return nil, errors.NewSourceError(errors.CodeSourceInvalid, "parsing template source", err).WithPath(path)
	}
	return tpl, nil
}

// Parse decodes template JSON. A top-level array is a plain node list; a
// top-level object is an extended template.
func Parse(data []byte) (*types.ExtendedTemplate, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		nodes, err := types.ParseNodes(data)
		if err != nil {
			return nil, err
		}
		return &types.ExtendedTemplate{Nodes: nodes}, nil
	}

	var tpl types.ExtendedTemplate
	if err := json.Unmarshal(data, &tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}
