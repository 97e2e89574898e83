package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"avatarforge/internal/analyzer"
	"avatarforge/internal/layertree"
	"avatarforge/internal/rules"
	"avatarforge/internal/scanner"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <source-dir>",
		Short: "Summarize a layer directory and its expression candidates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.configValue()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			doc, err := layertree.OpenDir(args[0])
			if err != nil {
				return err
			}
			records := scanner.New(logger).Scan(doc)
			set := rules.DefaultSet()
			if cfg.Rules.File != "" {
				set, err = rules.LoadFile(cfg.Rules.File)
				if err != nil {
					return err
				}
			}
			records = rules.NewEngine(set, logger).Apply(records)

			analysis := analyzer.Analyze(doc, records)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Document: %s (%dx%d, source %s)\n", analysis.Name, analysis.Width, analysis.Height, analysis.Source)
			fmt.Fprintf(out, "Layers:   %d total, %d groups, %d tagged (%.0f%% coverage)\n",
				analysis.TotalLayers, analysis.Groups, analysis.Tagged, analysis.CoverageRatio()*100)

			if len(analysis.Expressions) > 0 {
				fmt.Fprintf(out, "\nExpression candidates (%d):\n", len(analysis.Expressions))
				for _, expr := range analysis.Expressions {
					fmt.Fprintf(out, "  %s  [%s]\n", expr.Path, strings.Join(expr.Keywords, ", "))
				}
			}

			fmt.Fprintln(out, "\nComponents:")
			for _, category := range analysis.Categories() {
				names := analysis.Components[category]
				fmt.Fprintf(out, "  %-12s %d\n", category, len(names))
			}
			return nil
		},
	}

	return cmd
}
