package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"avatarforge/internal/rules"
)

func newRulesCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "rules",
		Short:       "Manage layer mapping rules",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var overwrite bool
	initCmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Write the built-in mapping rules to a file for editing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !overwrite {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("rules file already exists at %s (use --overwrite to replace)", path)
				}
			}
			if err := rules.WriteDefaultFile(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rules written to %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing rules file")
	cmd.AddCommand(initCmd)

	return cmd
}
