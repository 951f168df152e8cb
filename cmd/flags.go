package cmd

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/weft-dev/weft/internal/types"
)

// styleFormatValue is a pflag.Value that rejects unsupported style formats at
// parse time, so a typo fails before any rendering work starts.
type styleFormatValue struct {
	target *string
}

var _ pflag.Value = (*styleFormatValue)(nil)

func newStyleFormatValue(target *string) *styleFormatValue {
	return &styleFormatValue{target: target}
}

func (v *styleFormatValue) Set(val string) error {
	if val != "" && !types.StyleFormat(val).Valid() {
		return fmt.Errorf("must be one of inline, css, scss (got %q)", val)
	}
	*v.target = val
	return nil
}

func (v *styleFormatValue) String() string {
	if v.target == nil {
		return ""
	}
	return *v.target
}

func (v *styleFormatValue) Type() string {
	return "format"
}
