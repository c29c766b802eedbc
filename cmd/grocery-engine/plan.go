// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/grocery-engine/internal/catalog"
	"github.com/pdiddy/grocery-engine/internal/engine"
	"github.com/pdiddy/grocery-engine/internal/explain"
	"github.com/pdiddy/grocery-engine/internal/request"
	"github.com/pdiddy/grocery-engine/pkg/types"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run the decision pipeline for a planning request",
	Long: `Plan reads a planning request (ingredients plus preferences), decides
one recommended product per ingredient with cheaper and conscious
alternatives, and splits the list across supply locations.

Candidates and signals come from the request file's inline catalog when
present, otherwise from the SQLite catalog snapshot.`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().String("request", "", "planning request YAML file (required)")
	planCmd.Flags().String("out", "", "write the full result to this YAML file")
	planCmd.Flags().String("explain-out", "", "write explanation context to this YAML file")
	planCmd.Flags().Bool("json", false, "output the result as JSON")
	planCmd.Flags().Bool("urgent", false, "rank specialty stores by delivery speed instead of transparency")
	planCmd.Flags().Bool("strict-safety", false, "require organic for high-residue ingredients")
	planCmd.Flags().Int("max-stores", 0, "cap on supply locations (default 2)")
	planCmd.Flags().Int("min-secondary-items", 0, "minimum items to justify a secondary store (default 2)")
	planCmd.Flags().StringSlice("avoid", nil, "brands to avoid (repeatable)")
	planCmd.Flags().StringSlice("prefer", nil, "brands to prefer (repeatable)")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	reqPath, _ := cmd.Flags().GetString("request")
	if reqPath == "" {
		return fmt.Errorf("provide a planning request file with --request")
	}

	reqFile, err := request.Read(reqPath)
	if err != nil {
		return err
	}

	cfg := engineConfig()
	req := engine.Request{
		Ingredients: reqFile.Ingredients,
		Preferences: overridePrefs(cmd, reqFile.Preferences),
	}

	repo, catalogVersion, err := openRepository(cmd.Context(), cfg, reqFile)
	if err != nil {
		return err
	}

	eng := engine.New(cfg, nil)
	res, err := eng.Plan(cmd.Context(), repo, req)
	if err != nil {
		return err
	}

	if outPath, _ := cmd.Flags().GetString("out"); outPath != "" {
		if err := request.WriteResult(outPath, req, res, catalogVersion); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Result written to %s\n", outPath)
	}
	if explainPath, _ := cmd.Flags().GetString("explain-out"); explainPath != "" {
		if err := writeExplainFile(explainPath, res); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Explanation context written to %s\n", explainPath)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	renderPlan(res)
	return nil
}

// overridePrefs layers command-line flags over the request file's
// preferences. Only explicitly set flags override.
func overridePrefs(cmd *cobra.Command, prefs types.UserPreferences) types.UserPreferences {
	if cmd.Flags().Changed("urgent") {
		if urgent, _ := cmd.Flags().GetBool("urgent"); urgent {
			prefs.Urgency = types.UrgencyUrgent
		} else {
			prefs.Urgency = types.UrgencyPlanning
		}
	}
	if cmd.Flags().Changed("strict-safety") {
		prefs.StrictSafety, _ = cmd.Flags().GetBool("strict-safety")
	}
	if cmd.Flags().Changed("max-stores") {
		prefs.MaxStores, _ = cmd.Flags().GetInt("max-stores")
	}
	if cmd.Flags().Changed("min-secondary-items") {
		prefs.MinItemsForSecondaryStore, _ = cmd.Flags().GetInt("min-secondary-items")
	}
	if brands, _ := cmd.Flags().GetStringSlice("avoid"); len(brands) > 0 {
		prefs.AvoidedBrands = append(prefs.AvoidedBrands, brands...)
	}
	if brands, _ := cmd.Flags().GetStringSlice("prefer"); len(brands) > 0 {
		prefs.PreferredBrands = append(prefs.PreferredBrands, brands...)
	}
	return prefs
}

// openRepository prefers the request file's inline catalog and falls back
// to the SQLite snapshot.
func openRepository(ctx context.Context, cfg types.EngineConfig, reqFile *request.File) (engine.Repository, string, error) {
	if reqFile.Catalog != nil {
		snap := catalog.SnapshotFromFixture(reqFile.Catalog)
		return snap, snap.Version(), nil
	}

	store, err := catalog.NewStore(cfg.Catalog)
	if err != nil {
		return nil, "", err
	}
	defer store.Close()

	snap, err := store.LoadSnapshot(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("loading catalog snapshot: %w", err)
	}
	return snap, snap.Version(), nil
}

func writeExplainFile(path string, res *engine.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating explanation file: %w", err)
	}
	defer f.Close()
	return explain.Write(explain.Build(res), f)
}

func renderPlan(res *engine.Result) {
	fmt.Fprintf(os.Stdout, "%-16s  %-14s  %-10s  %8s  %7s  %s\n",
		"Ingredient", "Product", "Tier", "Price", "Score", "Reason")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	prices := make(map[string]float64)
	for ing, ranked := range res.Breakdowns {
		for _, sc := range ranked {
			prices[ing+"/"+sc.Candidate.ID] = sc.Candidate.Price
		}
	}
	for _, item := range res.Bundle.Items {
		fmt.Fprintf(os.Stdout, "%-16s  %-14s  %-10s  %8.2f  %7.1f  %s\n",
			item.Ingredient, item.ProductID, item.Tier,
			prices[item.Ingredient+"/"+item.ProductID], item.Score, item.Reason)
	}

	t := res.Bundle.Totals
	fmt.Fprintf(os.Stdout, "\nTotals: cheaper %.2f  balanced %.2f  conscious %.2f  (deltas %+.2f / %+.2f)\n",
		t.Cheaper, t.Balanced, t.Conscious,
		res.Bundle.Deltas.CheaperVsBalanced, res.Bundle.Deltas.ConsciousVsBalanced)

	fmt.Fprintf(os.Stdout, "\nStores (%d needed):\n", res.Split.TotalStoresNeeded)
	for _, g := range res.Split.Stores {
		marker := " "
		if g.IsPrimary {
			marker = "*"
		}
		fmt.Fprintf(os.Stdout, "  %s %s (%s): %s\n", marker, g.Name, g.Kind, strings.Join(g.Ingredients, ", "))
	}
	if len(res.Split.Unavailable) > 0 {
		fmt.Fprintf(os.Stdout, "  unavailable: %s\n", strings.Join(res.Split.Unavailable, ", "))
	}

	if len(res.Bundle.ConstraintNotes) > 0 {
		fmt.Fprintln(os.Stdout, "\nConstraint notes:")
		for _, n := range res.Bundle.ConstraintNotes {
			fmt.Fprintf(os.Stdout, "  - %s\n", n)
		}
	}
	if len(res.Bundle.DataGaps) > 0 {
		fmt.Fprintln(os.Stdout, "\nData gaps:")
		for _, g := range res.Bundle.DataGaps {
			fmt.Fprintf(os.Stdout, "  - %s\n", g)
		}
	}
}
