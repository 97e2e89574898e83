package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"avatarforge/internal/jobs"
	"avatarforge/internal/pipeline"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var outputDir string
	var rulesFile string
	var strict bool

	cmd := &cobra.Command{
		Use:   "build <source-dir>",
		Short: "Build an avatar bundle from an exported layer directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.configValue()
			if err != nil {
				return err
			}
			if rulesFile != "" {
				cfg.Rules.File = rulesFile
			}
			if strict {
				cfg.Build.Strict = true
			}

			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}
			builder, err := pipeline.NewBuilder(cfg, logger)
			if err != nil {
				return err
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			source := args[0]
			job, err := store.Begin(cmd.Context(), jobs.KindBuild, source, outputDir)
			if err != nil {
				return err
			}

			result, err := builder.Build(cmd.Context(), source, outputDir)
			if err != nil {
				if failErr := store.Fail(cmd.Context(), job.ID, err.Error()); failErr != nil {
					logger.Warn("failed to record job failure", "job_id", job.ID, "error", failErr)
				}
				return err
			}
			if err := store.Complete(cmd.Context(), job.ID, len(result.Records), len(result.Slots.Slots)); err != nil {
				logger.Warn("failed to record job completion", "job_id", job.ID, "error", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Bundle written to %s\n", result.OutputDir)
			fmt.Fprintf(out, "  layers: %d mapped of %d\n", result.Report.MappedLayers, result.Report.TotalLayers)
			fmt.Fprintf(out, "  slots:  %d\n", len(result.Slots.Slots))
			fmt.Fprintf(out, "  slices: %d (atlas %dx%d)\n", len(result.Layout.Slices), result.Layout.Width, result.Layout.Height)
			for _, graph := range result.Graphs {
				fmt.Fprintf(out, "  graph:  %s\n", graph)
			}
			if len(result.Skipped) > 0 {
				fmt.Fprintf(out, "  skipped: %d layer(s), see %s\n", len(result.Skipped), pipeline.ReportFileName)
			}
			for _, warning := range result.Report.Warnings {
				fmt.Fprintf(out, "  warning: %s\n", warning)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory for the bundle")
	cmd.Flags().StringVar(&rulesFile, "rules", "", "Mapping rules file overriding the configured one")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail the build on coverage warnings")

	return cmd
}
