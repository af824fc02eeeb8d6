package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	core "github.com/rohith0110/Wikipedia-Graph/pkg/core/graph"
	"github.com/rohith0110/Wikipedia-Graph/pkg/graph"
	"github.com/rohith0110/Wikipedia-Graph/pkg/pipeline"
)

// clustersCommand creates the clusters command.
func (c *CLI) clustersCommand() *cobra.Command {
	var (
		flags       layoutFlags
		fromLayout  bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "clusters [elements.json]",
		Short: "Summarize the clusters of a layout",
		Long: `Summarize where each cluster of a layout landed: member count, placed
count, center and radius.

By default the input is an element file and is laid out first with the same
flags as 'layout'. With --from-layout the input is a layout file written by
'layout' and is summarized as is.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				g   *core.Graph
				err error
			)
			if fromLayout {
				g, err = loadLayoutGraph(args[0])
			} else {
				g, err = c.layoutGraph(cmd.Context(), args[0], flags.options(cmd, c.Config), flags.noCache)
			}
			if err != nil {
				return err
			}
			if interactive {
				_, err := tea.NewProgram(NewClusterBrowserModel(g), tea.WithContext(cmd.Context())).Run()
				return err
			}
			printClusters(g)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&fromLayout, "from-layout", false, "read a layout file instead of an element file")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse clusters interactively")

	return cmd
}

func (c *CLI) layoutGraph(ctx context.Context, input string, opts pipeline.Options, noCache bool) (*core.Graph, error) {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()
	res, err := runner.ExecuteFile(ctx, input, opts)
	spinner.Stop()
	if err != nil {
		return nil, err
	}
	return res.Graph, nil
}

func loadLayoutGraph(path string) (*core.Graph, error) {
	l, err := graph.ReadLayoutFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout %s: %w", path, err)
	}
	return graph.ToGraph(l)
}

func printClusters(g *core.Graph) {
	summaries := pipeline.SummarizeClusters(g)
	if len(summaries) == 0 {
		printInfo("No clusters")
		return
	}
	fmt.Fprintln(stdout, clusterTable(summaries, -1))
	printDetail("%d clusters · %d nodes", len(summaries), g.NodeCount())
}
