// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the debias-llm CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nglebm19/debias-llm/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the debias-llm CLI.
var rootCmd = &cobra.Command{
	Use:   "debias-llm",
	Short: "Devil's-advocate diagnostic reasoning against anchoring bias",
	Long: `debias-llm runs a three-stage diagnostic reasoning pipeline over a single
medical case. A diagnostician assesses the full record, a devil's advocate
independently assesses the presentation with the past history structurally
withheld, and a synthesizer reconciles both alongside a deterministic
overlap score that flags where the history may be anchoring the diagnosis.

Cases come from the built-in demonstration library (cases list) or from a
YAML file. When the generation backend is unreachable the pipeline degrades
to labeled fallback output rather than failing.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./debias-llm.yaml or ~/.config/debias-llm/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("debias-llm")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "debias-llm"))
		}
	}

	viper.SetEnvPrefix("DEBIAS_LLM")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
