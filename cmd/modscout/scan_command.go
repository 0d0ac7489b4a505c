package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"modscout/internal/config"
	"modscout/internal/match"
	"modscout/internal/store"
)

type scanSummary struct {
	Folder  string       `json:"folder"`
	Status  match.Status `json:"status"`
	Entity  string       `json:"entity,omitempty"`
	Score   float64      `json:"score,omitempty"`
	Summary string       `json:"summary,omitempty"`
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var expectedType string
	var save bool

	cmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "Match every mod folder under a root directory",
		Long: "Enumerates the immediate subdirectories of the mods root (or the " +
			"given directory) and runs the staged match on each one.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			root := cfg.Paths.ModsDir
			if len(args) == 1 {
				if root, err = config.ExpandPath(args[0]); err != nil {
					return err
				}
			}

			folders, err := listModFolders(root)
			if err != nil {
				return err
			}
			if len(folders) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No mod folders under %s\n", root)
				return nil
			}

			matcher, err := ctx.newMatcher()
			if err != nil {
				return err
			}
			scanner, err := ctx.newScanner()
			if err != nil {
				return err
			}

			var resultStore *store.Store
			if save {
				if resultStore, err = ctx.openStore(); err != nil {
					return err
				}
				defer resultStore.Close()
			}

			summaries := make([]scanSummary, 0, len(folders))
			for _, folder := range folders {
				result, err := matchFolder(cmd.Context(), scanner, matcher, folder, expectedType, false)
				if err != nil {
					return fmt.Errorf("match %s: %w", folder, err)
				}
				if resultStore != nil {
					if _, err := resultStore.SaveResult(cmd.Context(), folder, result); err != nil {
						return fmt.Errorf("save result for %s: %w", folder, err)
					}
				}
				summary := scanSummary{Folder: folder, Status: result.Status, Summary: result.Summary}
				if result.Best != nil {
					summary.Entity = result.Best.Name
					summary.Score = result.Best.Score
				}
				summaries = append(summaries, summary)
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, summaries)
			}

			rows := make([][]string, 0, len(summaries))
			for _, summary := range summaries {
				score := ""
				if summary.Entity != "" {
					score = fmt.Sprintf("%.1f", summary.Score)
				}
				rows = append(rows, []string{
					summary.Folder,
					formatStatusLabel(string(summary.Status)),
					summary.Entity,
					score,
					summary.Summary,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Folder", "Status", "Entity", "Score", "Summary"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&expectedType, "type", "t", "", "Expected entity type for every folder")
	cmd.Flags().BoolVar(&save, "save", false, "Persist each result to the results database")
	return cmd
}

// listModFolders returns the immediate subdirectories of root, sorted by
// name.
func listModFolders(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read mods root: %w", err)
	}
	var folders []string
	for _, entry := range entries {
		if entry.IsDir() {
			folders = append(folders, filepath.Join(root, entry.Name()))
		}
	}
	sort.Strings(folders)
	return folders, nil
}
