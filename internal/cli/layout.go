package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/autolayout/pkg/diagram"
	"github.com/matzehuels/autolayout/pkg/engine"
	"github.com/matzehuels/autolayout/pkg/engine/dot"
	"github.com/matzehuels/autolayout/pkg/errors"
	"github.com/matzehuels/autolayout/pkg/layout"
)

// layoutFlags are the per-run overrides of the configured engine options.
type layoutFlags struct {
	output            string
	noCache           bool
	optimizeOnFailure bool
	direction         string
	edgeRouting       string
	nodeSpacing       float64
	layerSpacing      float64
}

// apply copies the flags the user set onto opts.
func (f layoutFlags) apply(cmd *cobra.Command, opts *engine.Options) {
	if cmd.Flags().Changed("direction") {
		opts.Direction = strings.ToUpper(f.direction)
	}
	if cmd.Flags().Changed("edge-routing") {
		opts.EdgeRouting = strings.ToUpper(f.edgeRouting)
	}
	if cmd.Flags().Changed("node-spacing") {
		opts.NodeSpacing = f.nodeSpacing
	}
	if cmd.Flags().Changed("layer-spacing") {
		opts.LayerSpacing = f.layerSpacing
	}
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var flags layoutFlags
	defaults := engine.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "layout [diagram.json]",
		Short: "Compute node positions and edge handles for a diagram",
		Long: `Compute node positions and edge handles for a diagram.

The input is a JSON document with "nodes" and "edges". The output has the
same shape with node positions, edge handles and engine routes filled in.

Engine results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := cfg.Engine
			flags.apply(cmd, &opts)
			if err := opts.Validate(); err != nil {
				return err
			}
			if !cmd.Flags().Changed("optimize-on-failure") {
				flags.optimizeOnFailure = cfg.Layout.OptimizeOnFailure
			}

			eng, closeFn, err := c.newEngine(cmd.Context(), cfg, flags.noCache)
			if err != nil {
				return err
			}
			defer closeFn()

			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), args[0], eng, opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.optimizeOnFailure, "optimize-on-failure", false, "choose edge sides geometrically when the engine fails")
	cmd.Flags().StringVar(&flags.direction, "direction", defaults.Direction, "layer direction: DOWN, UP, RIGHT, LEFT")
	cmd.Flags().StringVar(&flags.edgeRouting, "edge-routing", defaults.EdgeRouting, "edge routing: ORTHOGONAL, POLYLINE, SPLINES")
	cmd.Flags().Float64Var(&flags.nodeSpacing, "node-spacing", defaults.NodeSpacing, "spacing between nodes in a layer (px)")
	cmd.Flags().Float64Var(&flags.layerSpacing, "layer-spacing", defaults.LayerSpacing, "spacing between layers (px)")

	return cmd
}

// runLayout reads the diagram, lays it out and writes the result.
func (c *CLI) runLayout(ctx context.Context, w io.Writer, input string, eng engine.Engine, opts engine.Options, flags layoutFlags) error {
	d, err := diagram.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load diagram %s: %w", input, err)
	}
	if err := errors.ValidateDiagram(d); err != nil {
		return fmt.Errorf("load diagram %s: %w", input, err)
	}

	l := layout.New(eng,
		layout.WithLogger(c.Logger),
		layout.WithEngineName(dot.Name),
		layout.WithEngineOptions(opts),
		layout.WithOptimizeOnFailure(flags.optimizeOnFailure))

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, "Computing layout...")
	spinner.Start()
	res := l.Run(ctx, d.Nodes, d.Edges)
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done("Layout computed", "nodes", len(res.Nodes), "edges", len(res.Edges), "fallback", res.Stats.Fallback)

	outputPath := flags.output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}
	if err := diagram.WriteFile(diagram.Diagram{Nodes: res.Nodes, Edges: res.Edges}, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	ui := newPrinter(w)
	if res.Stats.EngineFailed {
		ui.warning("Layout engine failed; positions unchanged")
	} else {
		ui.success("Layout complete")
	}
	ui.file(outputPath)
	ui.stats(runStats{
		nodes:        len(res.Nodes),
		edges:        len(res.Edges),
		routed:       res.Stats.Routed,
		fallback:     res.Stats.Fallback,
		engineFailed: res.Stats.EngineFailed,
	})
	if res.Stats.EngineFailed && !flags.optimizeOnFailure && len(res.Edges) > 0 {
		ui.hint("Pick edge sides anyway", appName+" layout --optimize-on-failure "+input)
	}
	return nil
}
