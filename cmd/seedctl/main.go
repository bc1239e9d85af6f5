// Command seedctl manages the MedAssist vector index: it seeds document
// corpora and mints API tokens for testing.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/medassist/medassist/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "seedctl",
	Short: "MedAssist index seeding and admin tool",
	Long: `seedctl seeds the MedAssist vector index with medical literature and
provides small admin helpers.

Example usage:
  seedctl seed                   # Seed the built-in sample corpus
  seedctl seed corpus.yaml       # Seed documents from a YAML file
  seedctl token --email a@b.com  # Mint a JWT for API testing`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
