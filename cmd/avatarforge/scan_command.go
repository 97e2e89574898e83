package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"avatarforge/internal/layertree"
	"avatarforge/internal/rules"
	"avatarforge/internal/scanner"
	"avatarforge/internal/slots"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "scan <source-dir>",
		Short: "List layers and the slots they map to",
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
			if !raw {
				set := rules.DefaultSet()
				if cfg.Rules.File != "" {
					set, err = rules.LoadFile(cfg.Rules.File)
					if err != nil {
						return err
					}
				}
				records = rules.NewEngine(set, logger).Apply(records)
			}

			headers := []string{"#", "Layer", "Path", "Slot", "State"}
			rows := make([][]string, 0, len(records))
			tagged := 0
			for _, record := range records {
				slot, state := "-", "-"
				if record.Tag != nil {
					slot = slots.Key(record.Tag)
					state = record.Tag.StateKey()
					tagged++
				}
				rows = append(rows, []string{
					strconv.Itoa(record.Index),
					record.BaseName,
					record.PathString(),
					slot,
					state,
				})
			}

			out := cmd.OutOrStdout()
			if isTerminal(out) {
				fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{alignRight}))
			} else {
				for _, row := range rows {
					fmt.Fprintln(out, strings.Join(row, "\t"))
				}
			}
			fmt.Fprintf(out, "%d of %d layers tagged\n", tagged, len(records))
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Show only explicit tags without applying mapping rules")

	return cmd
}
