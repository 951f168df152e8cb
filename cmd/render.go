package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weft-dev/weft/internal/config"
	"github.com/weft-dev/weft/internal/extension"
	"github.com/weft-dev/weft/internal/extensions"
	"github.com/weft-dev/weft/internal/format"
	"github.com/weft-dev/weft/internal/loader"
	"github.com/weft-dev/weft/internal/output"
	"github.com/weft-dev/weft/internal/renderer"
	"github.com/weft-dev/weft/internal/types"
)

var renderCmd = &cobra.Command{
	Use:   "render <source>",
	Short: "Render a JSON template tree to markup and styles",
	Long: `Render a JSON template source through the extension pipeline.

Examples:
  weft render page.json                          # Plain markup to page.html
  weft render page.json -e bem                   # bem class synthesis
  weft render page.json -e bem,react -n Button   # React component source
  weft render page.json --style-format scss      # page.scss next to markup
  weft render page.json --no-write               # Print to stdout only`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var (
	renderOut         string
	renderName        string
	renderComponent   string
	renderExtensions  []string
	renderFileExt     string
	renderStyleFormat string
	renderFormatter   string
	renderMinify      bool
	renderNoWrite     bool
)

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output directory")
	renderCmd.Flags().StringVarP(&renderName, "name", "n", "", "Base name for output artifacts")
	renderCmd.Flags().StringVar(&renderComponent, "component", "", "Component name for component-producing extensions")
	renderCmd.Flags().StringSliceVarP(&renderExtensions, "extensions", "e", nil, "Extensions to apply, in order")
	renderCmd.Flags().StringVar(&renderFileExt, "file-ext", "", "Markup file extension (e.g. .html)")
	renderCmd.Flags().Var(newStyleFormatValue(&renderStyleFormat), "style-format", "Style output format: inline, css, scss")
	renderCmd.Flags().StringVar(&renderFormatter, "format", "", "Formatter syntax applied to final markup (e.g. html)")
	renderCmd.Flags().BoolVar(&renderMinify, "minify", false, "Minify generated stylesheet text")
	renderCmd.Flags().BoolVar(&renderNoWrite, "no-write", false, "Print output instead of writing files")
}

func runRender(cmd *cobra.Command, args []string) error {
	source := args[0]
	logger := newLogger().WithComponent("render")
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	pipeline, opts, err := buildPipeline(cfg, source)
	if err != nil {
		return err
	}

	tpl, err := loader.Load(source)
	if err != nil {
		return err
	}
	if tpl.Component != nil {
		opts.Component = tpl.Component
	}
	if renderComponent != "" {
		if opts.Component == nil {
			opts.Component = &types.ComponentMeta{}
		}
		opts.Component.Name = renderComponent
	}

	r := renderer.New(pipeline,
		renderer.WithWriter(output.NewFileWriter("")),
		renderer.WithFormatter(format.NewService()),
		renderer.WithLogger(logger),
	)

	result, err := r.Render(ctx, tpl.Nodes, opts)
	if err != nil {
		if verbose {
			logger.Error(ctx, err, "render failed", "source", source)
		}
		return err
	}

	if renderNoWrite {
		fmt.Fprintln(cmd.OutOrStdout(), result.Markup)
		if result.Styles != "" {
			fmt.Fprintln(cmd.OutOrStdout(), result.Styles)
		}
		return nil
	}

	for _, file := range result.Files {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", file)
	}
	return nil
}

// buildPipeline resolves the active extensions and caller options from
// config and flags, flags winning.
func buildPipeline(cfg *config.Config, source string) (*extension.Pipeline, *types.RenderOptions, error) {
	registry, err := extensions.DefaultRegistry()
	if err != nil {
		return nil, nil, err
	}

	names := cfg.Render.Extensions
	if len(renderExtensions) > 0 {
		names = renderExtensions
	}
	pipeline, err := registry.Pipeline(names)
	if err != nil {
		return nil, nil, err
	}

	opts := cfg.RenderOptions(baseName(source))
	if renderOut != "" {
		opts.OutputDir = renderOut
	}
	if renderName != "" {
		opts.FileName = renderName
	}
	if renderFileExt != "" {
		opts.FileExtension = renderFileExt
	}
	if renderStyleFormat != "" {
		opts.Styles.OutputFormat = types.StyleFormat(renderStyleFormat)
	}
	if renderFormatter != "" {
		opts.Formatter = renderFormatter
	}
	if renderMinify {
		opts.Styles.Minify = true
	}
	opts.Extensions = names
	opts.Write = !renderNoWrite

	return pipeline, opts, nil
}

// baseName strips the directory and extension from a source path.
func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
