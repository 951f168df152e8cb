package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/weft-dev/weft/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a sample template and .weft.yml config",
	RunE:  runInit,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
}

const sampleTemplate = `{
  "component": {
    "name": "HelloCard",
    "props": {"title": "string"}
  },
  "nodes": [
    {
      "tag": "div",
      "attributes": {"class": "card"},
      "styles": {"padding": "1rem", "&:hover": {"boxShadow": "0 2px 8px rgba(0,0,0,0.2)"}},
      "children": [
        {"tag": "h1", "expressions": {"title": "title"}, "children": [
          {"type": "text", "content": "Hello, World!"}
        ]}
      ]
    }
  ]
}
`

func runInit(cmd *cobra.Command, args []string) error {
	cfg := config.Config{
		Output: config.OutputConfig{Dir: "dist"},
		Render: config.RenderConfig{Extensions: []string{"bem"}},
		Styles: config.StylesConfig{Format: "css"},
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	files := map[string][]byte{
		".weft.yml":  data,
		"hello.json": []byte(sampleTemplate),
	}
	for path, content := range files {
		if !initForce {
			if _, err := os.Stat(path); err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Skipping %s (exists, use --force)\n", path)
				continue
			}
		}
		if err := os.WriteFile(path, content, 0600); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\nNext: weft render hello.json")
	return nil
}
