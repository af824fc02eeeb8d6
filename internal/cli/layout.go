package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rohith0110/Wikipedia-Graph/pkg/graph"
	"github.com/rohith0110/Wikipedia-Graph/pkg/pipeline"
)

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  layoutFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [elements.json]",
		Short: "Compute a galaxy or neighborhood layout",
		Long: `Compute a 2D layout from a Cytoscape-style element file.

The input is a JSON array of {"data": {...}} elements, or an object holding
that array under "elements". Nodes carry id, label, size and cluster_id;
edges carry source and target.

In overview mode (-m overview) clusters are arranged as galaxies on a ring.
In detail mode (-m detail -t TOPIC) the topic sits at the origin and its
direct neighbors are placed around it.

Seeded runs (--seed N) are reproducible and cached locally.`,
		Example: `  wikigraph layout links.json
  wikigraph layout links.json -m detail -t "Go (programming language)" --seed 7
  wikigraph layout links.json -e force -o - | jq .report`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], flags.options(cmd, c.Config), output, flags.noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <input>.layout.json)")

	return cmd
}

// runLayout computes the layout and writes it.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	if output == "-" {
		prev := stdout
		stdout = os.Stderr
		defer func() { stdout = prev }()
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Mode))
	spinner.Start()

	res, err := runner.ExecuteFile(ctx, input, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = defaultOutput(input)
	}
	if outputPath == "-" {
		if err := graph.WriteLayout(res.Layout, os.Stdout); err != nil {
			return fmt.Errorf("write layout: %w", err)
		}
	} else if err := graph.WriteLayoutFile(res.Layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	c.Logger.Debug("layout timings",
		"select", res.Stats.SelectTime,
		"build", res.Stats.BuildTime,
		"clusters", res.Stats.ClusterTime,
		"layout", res.Stats.LayoutTime,
		"total", prog.elapsed(),
	)

	printSuccess("Layout complete (seed %d)", res.Layout.Seed)
	if outputPath != "-" {
		printFile(outputPath)
	}
	printStats(res.Layout.Report, res.Stats.EdgeCount, res.CacheInfo.LayoutHit)
	if rep := res.Layout.Report; rep != nil && res.Layout.IsDetail() && res.Layout.Engine != graph.EngineGalaxy && !rep.FocalFound {
		printWarning("Topic %q not found; no node is centered", opts.Topic)
	}
	if outputPath != "-" {
		printNewline()
		printNextStep("Summarize clusters", appName+" clusters "+input+" --seed "+fmt.Sprint(res.Layout.Seed))
	}
	return nil
}

// defaultOutput derives links.layout.json from links.json.
func defaultOutput(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
}
