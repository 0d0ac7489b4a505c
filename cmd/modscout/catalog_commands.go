package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"modscout/internal/catalog"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Reference database utilities",
	}
	catalogCmd.AddCommand(newCatalogShowCommand(ctx))
	catalogCmd.AddCommand(newCatalogValidateCommand(ctx))
	return catalogCmd
}

func newCatalogShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List the catalogued entities",
		RunE: func(cmd *cobra.Command, args []string) error {
			entities, err := ctx.loadCatalog()
			if err != nil {
				return err
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, entities)
			}

			rows := make([][]string, 0, len(entities))
			for _, entity := range entities {
				variants := make([]string, 0, len(entity.Variants))
				for _, variant := range entity.Variants {
					variants = append(variants, variant.Name)
				}
				rows = append(rows, []string{
					entity.Name,
					entity.Type,
					strings.Join(variants, ", "),
					fmt.Sprintf("%d", len(entity.Hashes())),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Entity", "Type", "Variants", "Hashes"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
}

func newCatalogValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the catalog and report its shape",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			entities, err := ctx.loadCatalog()
			if err != nil {
				return err
			}

			totalHashes := 0
			sharedHashes := 0
			owners := make(map[string]int)
			for _, entity := range entities {
				hashes := entity.Hashes()
				totalHashes += len(hashes)
				for _, hash := range hashes {
					owners[hash]++
				}
			}
			for _, count := range owners {
				if count > 1 {
					sharedHashes++
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Catalog path: %s\n", cfg.Paths.CatalogPath)
			fmt.Fprintf(out, "Entities: %d\n", len(entities))
			fmt.Fprintf(out, "Hashes: %d (%d shared by multiple entities)\n", totalHashes, sharedHashes)
			fmt.Fprintln(out, "Catalog valid")
			return nil
		},
	}
}

func (c *commandContext) loadCatalog() ([]catalog.Entity, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return catalog.Load(cfg.Paths.CatalogPath, logger)
}
