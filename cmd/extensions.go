package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weft-dev/weft/internal/extension"
	"github.com/weft-dev/weft/internal/extensions"
)

var extensionsCmd = &cobra.Command{
	Use:     "extensions",
	Aliases: []string{"ext"},
	Short:   "List available extensions and their capabilities",
	RunE:    runExtensions,
}

func init() {
	rootCmd.AddCommand(extensionsCmd)
}

func runExtensions(cmd *cobra.Command, args []string) error {
	registry, err := extensions.DefaultRegistry()
	if err != nil {
		return err
	}

	for _, name := range registry.Names() {
		ext, _ := registry.Lookup(name)
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", name, capabilities(ext))
	}
	return nil
}

// capabilities summarizes which hooks an extension implements.
func capabilities(ext extension.Extension) string {
	var caps []string
	if _, ok := ext.(extension.OptionsHandler); ok {
		caps = append(caps, "options")
	}
	if _, ok := ext.(extension.NodeHandler); ok {
		caps = append(caps, "node")
	}
	if _, ok := ext.(extension.StylePlugin); ok {
		caps = append(caps, "styles")
	}
	if _, ok := ext.(extension.RootHandler); ok {
		caps = append(caps, "root")
	}
	if len(caps) == 0 {
		return "(no hooks)"
	}
	out := caps[0]
	for _, c := range caps[1:] {
		out += ", " + c
	}
	return out
}
