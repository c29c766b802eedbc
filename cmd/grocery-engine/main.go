// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the grocery-engine CLI.
// Subcommands cover the two pipeline surfaces: plan (decision bundle and
// store split for an ingredient list) and catalog (product snapshot
// management).
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/grocery-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the grocery-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "grocery-engine",
	Short: "Deterministic grocery recommendation and store-split engine",
	Long: `grocery-engine recommends one product per ingredient plus a cheaper and
a more premium/ethical alternative, then allocates the full list across
supply locations under an efficiency rule.

The engine is deterministic and offline: candidates and signals come from
a local catalog snapshot or an inline request file, never from the
network. Use "catalog" to manage the snapshot and "plan" to run a
request.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./grocery-engine.yaml or ~/.config/grocery-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("grocery-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "grocery-engine"))
		}
	}

	viper.SetEnvPrefix("GROCERY_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// engineConfig builds the engine tunables from defaults overlaid with any
// values from the viper config file.
func engineConfig() types.EngineConfig {
	cfg := types.DefaultEngine()
	yamlTags := func(dc *mapstructure.DecoderConfig) { dc.TagName = "yaml" }
	if err := viper.Unmarshal(&cfg, yamlTags); err != nil {
		fmt.Fprintf(os.Stderr, "warning: ignoring malformed config: %v\n", err)
		return types.DefaultEngine()
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
