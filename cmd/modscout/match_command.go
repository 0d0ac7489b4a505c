package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"modscout/internal/config"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var expectedType string
	var fullOnly bool
	var save bool

	cmd := &cobra.Command{
		Use:   "match <folder>",
		Short: "Match one mod folder against the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			matcher, err := ctx.newMatcher()
			if err != nil {
				return err
			}
			scanner, err := ctx.newScanner()
			if err != nil {
				return err
			}

			result, err := matchFolder(cmd.Context(), scanner, matcher, folder, expectedType, fullOnly)
			if err != nil {
				return err
			}

			if save {
				s, err := ctx.openStore()
				if err != nil {
					return err
				}
				defer s.Close()
				if _, err := s.SaveResult(cmd.Context(), folder, result); err != nil {
					return fmt.Errorf("save result: %w", err)
				}
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, result)
			}
			printResult(cmd.OutOrStdout(), folder, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&expectedType, "type", "t", "", "Expected entity type (e.g. character, weapon)")
	cmd.Flags().BoolVar(&fullOnly, "full", false, "Skip the quick pass and scan under the full budget")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the result to the results database")
	return cmd
}
