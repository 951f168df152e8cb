package cmd

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/weft-dev/weft/internal/config"
	"github.com/weft-dev/weft/internal/format"
	"github.com/weft-dev/weft/internal/loader"
	"github.com/weft-dev/weft/internal/output"
	"github.com/weft-dev/weft/internal/renderer"
	"github.com/weft-dev/weft/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch <source>",
	Short: "Re-render a template whenever its source changes",
	Long: `Watch a JSON template source and re-render on every change, with rapid
successive writes debounced into a single render.

Examples:
  weft watch page.json
  weft watch page.json -e bem,react -o dist`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output directory")
	watchCmd.Flags().StringVarP(&renderName, "name", "n", "", "Base name for output artifacts")
	watchCmd.Flags().StringSliceVarP(&renderExtensions, "extensions", "e", nil, "Extensions to apply, in order")
	watchCmd.Flags().Var(newStyleFormatValue(&renderStyleFormat), "style-format", "Style output format: inline, css, scss")
}

func runWatch(cmd *cobra.Command, args []string) error {
	source := args[0]
	logger := newLogger().WithComponent("watch")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	pipeline, opts, err := buildPipeline(cfg, source)
	if err != nil {
		return err
	}
	opts.Write = true

	r := renderer.New(pipeline,
		renderer.WithWriter(output.NewFileWriter("")),
		renderer.WithFormatter(format.NewService()),
		renderer.WithLogger(logger),
	)

	renderOnce := func() {
		tpl, err := loader.Load(source)
		if err != nil {
			logger.Error(ctx, err, "reload failed", "source", source)
			return
		}
		passOpts := *opts
		if tpl.Component != nil {
			passOpts.Component = tpl.Component
		}
		result, err := r.Render(ctx, tpl.Nodes, &passOpts)
		if err != nil {
			logger.Error(ctx, err, "render failed", "source", source)
			return
		}
		for _, file := range result.Files {
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", file)
		}
	}

	w, err := watcher.New(cfg.Watch.Debounce)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer func() { _ = w.Stop() }()

	w.AddFilter(watcher.TemplateFilter)
	w.AddHandler(func(events []watcher.ChangeEvent) error {
		logger.Debug(ctx, "change detected", "events", len(events))
		renderOnce()
		return nil
	})
	// Watch the containing directory; editors often replace the file, which
	// would drop a watch on the file itself.
	if err := w.AddPath(filepath.Dir(source)); err != nil {
		return fmt.Errorf("watching %s: %w", source, err)
	}
	w.Start(ctx)

	renderOnce()
	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (ctrl-c to stop)\n", source)

	<-ctx.Done()
	return nil
}

