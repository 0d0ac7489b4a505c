package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newResultsCommand(ctx *commandContext) *cobra.Command {
	resultsCmd := &cobra.Command{
		Use:   "results",
		Short: "Stored match result utilities",
	}
	resultsCmd.AddCommand(newResultsListCommand(ctx))
	resultsCmd.AddCommand(newResultsShowCommand(ctx))
	resultsCmd.AddCommand(newResultsClearCommand(ctx))
	return resultsCmd
}

func newResultsListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored match results, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			records, err := s.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, records)
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No stored results")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, record := range records {
				score := ""
				if record.EntityName != "" {
					score = fmt.Sprintf("%.1f", record.Score)
				}
				rows = append(rows, []string{
					record.AttemptID[:8],
					record.Folder,
					formatStatusLabel(string(record.Status)),
					record.EntityName,
					score,
					record.CreatedAt.Local().Format(time.DateTime),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Attempt", "Folder", "Status", "Entity", "Score", "When"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum results to show (0 for all)")
	return cmd
}

func newResultsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <folder>",
		Short: "Show the most recent stored result for a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			record, err := s.Latest(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			result, err := record.Result()
			if err != nil {
				return err
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, result)
			}
			printResult(cmd.OutOrStdout(), record.Folder, result)
			return nil
		},
	}
}

func newResultsClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored match results",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			deleted, err := s.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d stored results\n", deleted)
			return nil
		},
	}
}
