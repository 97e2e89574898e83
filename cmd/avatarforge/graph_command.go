package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"avatarforge/internal/bundle"
	"avatarforge/internal/graph"
)

func newGraphCommand(ctx *commandContext) *cobra.Command {
	var preset string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "graph <avatar.json>",
		Short: "Generate an expression graph from an avatar bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			avatar, err := bundle.Load(args[0])
			if err != nil {
				return err
			}

			g, err := graph.NewBuilder(avatar.SlotDefinitions()).Build(preset)
			if err != nil {
				return err
			}
			data, err := g.Marshal()
			if err != nil {
				return err
			}

			path := outputPath
			if path == "" {
				path = filepath.Join(filepath.Dir(args[0]), fmt.Sprintf("graph.%s.json", preset))
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write graph: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Graph written to %s (%d nodes, %d edges)\n", path, len(g.Nodes), len(g.Edges))
			return nil
		},
	}

	cmd.Flags().StringVar(&preset, "preset", graph.PresetIdleTalk, "Graph preset, one of: idle-talk, full-emotion")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Graph output path (default: next to the bundle)")
	cmd.Annotations = map[string]string{"skipConfigLoad": "true"}

	return cmd
}
