// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/grocery-engine/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the product catalog snapshot (ingest, list)",
	Long: `Catalog manages the local SQLite product catalog the engine plans
against. Ingest replaces the catalog from a YAML fixture; list shows the
current snapshot's ingredients and candidates.`,
}

var catalogIngestCmd = &cobra.Command{
	Use:   "ingest [fixture.yaml]",
	Short: "Replace the catalog from a YAML fixture",
	RunE:  runCatalogIngest,
}

var catalogListCmd = &cobra.Command{
	Use:   "list [ingredient]",
	Short: "List snapshot ingredients, or one ingredient's candidates",
	RunE:  runCatalogList,
}

func init() {
	catalogCmd.AddCommand(catalogIngestCmd)

	catalogListCmd.Flags().Bool("json", false, "output candidates as JSON")
	catalogCmd.AddCommand(catalogListCmd)

	rootCmd.AddCommand(catalogCmd)
}

func runCatalogIngest(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide exactly one fixture file")
	}

	fixture, err := catalog.ReadFixture(args[0])
	if err != nil {
		return err
	}

	store, err := catalog.NewStore(engineConfig().Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Ingest(cmd.Context(), fixture, os.Stdout)
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewStore(engineConfig().Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	snap, err := store.LoadSnapshot(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading catalog snapshot: %w", err)
	}

	if len(args) == 0 {
		fmt.Printf("Catalog %s: %d ingredient(s)\n", snap.Version(), len(snap.Ingredients()))
		for _, ing := range snap.Ingredients() {
			fmt.Printf("  %-20s  %d candidate(s)\n", ing, len(snap.Candidates(ing)))
		}
		return nil
	}

	candidates := snap.Candidates(args[0])
	if len(candidates) == 0 {
		return fmt.Errorf("no candidates for ingredient %q", args[0])
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(candidates)
	}

	fmt.Printf("%-14s  %-24s  %-14s  %8s  %10s  %s\n",
		"ID", "Title", "Brand", "Price", "Unit", "Flags")
	fmt.Println(strings.Repeat("-", 90))
	for _, c := range candidates {
		var flags []string
		if c.Organic {
			flags = append(flags, "organic")
		}
		if !c.InStock {
			flags = append(flags, "out-of-stock")
		}
		if c.Recalled {
			flags = append(flags, "recalled")
		}
		flags = append(flags, c.Attributes...)
		fmt.Printf("%-14s  %-24s  %-14s  %8.2f  %7.2f/%s  %s\n",
			c.ID, c.Title, c.Brand, c.Price, c.UnitPrice, c.Unit, strings.Join(flags, ","))
	}
	return nil
}
