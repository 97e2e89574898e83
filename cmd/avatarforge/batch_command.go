package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"avatarforge/internal/batch"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var outputRoot string
	var workers int
	var pattern string

	cmd := &cobra.Command{
		Use:   "batch <input-dir>",
		Short: "Build bundles for every layer directory under a root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.configValue()
			if err != nil {
				return err
			}
			if workers > 0 {
				cfg.Batch.Workers = workers
			}
			if pattern != "" {
				cfg.Batch.Pattern = pattern
			}

			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			processor, err := batch.NewProcessor(cfg, logger, store)
			if err != nil {
				return err
			}
			summary, err := processor.Run(cmd.Context(), args[0], outputRoot)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, item := range summary.Items {
				if item.Error != "" {
					fmt.Fprintf(out, "  FAIL %s: %s\n", item.Source, item.Error)
					continue
				}
				fmt.Fprintf(out, "  ok   %s (%d layers, %d slots, %.1fs)\n", item.Source, item.Layers, item.Slots, item.Seconds)
			}
			fmt.Fprintln(out, batch.FormatSummary(summary))
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d sources failed", summary.Failed, summary.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputRoot, "output", "o", "", "Output root for all bundles")
	cmd.Flags().IntVar(&workers, "workers", 0, "Worker count override")
	cmd.Flags().StringVar(&pattern, "pattern", "", "Glob pattern for source directory names")

	return cmd
}
