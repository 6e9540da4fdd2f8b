package cmd

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/prahari/api/schemas"
	"github.com/xkilldash9x/prahari/internal/botnet"
	"github.com/xkilldash9x/prahari/internal/server"
)

func newGraphCmd(a *app) *cobra.Command {
	var (
		seed   int64
		node   int
		format string
	)

	graphCmd := &cobra.Command{
		Use:   "graph",
		Short: "Generate a botnet interaction graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			graph := botnet.Generate(rand.New(rand.NewSource(seed)))

			if cmd.Flags().Changed("node") {
				n, ok := graph.Node(node)
				if !ok {
					return fmt.Errorf("node %d not found (graph has %d nodes)", node, len(graph.Nodes))
				}
				detail := server.NodeDetail{GraphNode: n, Note: botnet.NodeNote(n)}
				if format == formatJSON {
					return writeJSON(cmd.OutOrStdout(), detail)
				}
				return writeNodeDetail(cmd.OutOrStdout(), detail)
			}

			resp := server.GraphResponse{Seed: seed, Nodes: graph.Nodes, Edges: graph.Edges()}
			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			return writeGraphSummary(cmd.OutOrStdout(), graph, seed)
		},
	}

	graphCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (default: time based)")
	graphCmd.Flags().IntVar(&node, "node", 0, "show the details of a single node")
	graphCmd.Flags().StringVarP(&format, "output", "o", formatText, "output format (text|json)")
	return graphCmd
}

func writeGraphSummary(w io.Writer, g botnet.Graph, seed int64) error {
	counts := g.Count()
	malicious := 0
	edges := g.Edges()
	for _, e := range edges {
		if e.Malicious {
			malicious++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Seed:  %d\n", seed)
	fmt.Fprintf(&b, "Nodes: %d (target %d, hubs %d, bots %d, safe %d)\n", len(g.Nodes),
		counts[schemas.NodeTarget], counts[schemas.NodeHub], counts[schemas.NodeBot], counts[schemas.NodeSafe])
	fmt.Fprintf(&b, "Edges: %d (%d malicious)\n", len(edges), malicious)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeNodeDetail(w io.Writer, d server.NodeDetail) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Node #%d\n", d.ID)
	fmt.Fprintf(&b, "Type:        %s\n", d.Kind)
	fmt.Fprintf(&b, "Coordinates: %.0f, %.0f\n", d.X, d.Y)
	if d.Note != "" {
		fmt.Fprintf(&b, "Note:        %s\n", d.Note)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
