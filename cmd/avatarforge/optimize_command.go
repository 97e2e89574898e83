package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"avatarforge/internal/optimizer"
)

func newOptimizeCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var width int
	var height int

	cmd := &cobra.Command{
		Use:   "optimize <image.png>",
		Short: "Scale an image into the configured delivery box",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.configValue()
			if err != nil {
				return err
			}
			if width <= 0 {
				width = cfg.Optimizer.TargetWidth
			}
			if height <= 0 {
				height = cfg.Optimizer.TargetHeight
			}

			opt, err := optimizer.New(width, height)
			if err != nil {
				return err
			}

			input := args[0]
			target := outputPath
			if target == "" {
				target = optimizedPath(input)
			}
			if err := opt.OptimizeFile(input, target); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Optimized image written to %s (box %dx%d)\n", target, width, height)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Optimized image path (default: <name>.opt.png)")
	cmd.Flags().IntVar(&width, "width", 0, "Target box width override")
	cmd.Flags().IntVar(&height, "height", 0, "Target box height override")

	return cmd
}

func optimizedPath(input string) string {
	base := strings.TrimSuffix(input, ".png")
	return base + ".opt.png"
}
