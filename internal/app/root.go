package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/basketlift/internal/store"
)

var (
	dbPath string

	// RootCmd is the root command for basketlift
	RootCmd = &cobra.Command{
		Use:   "basketlift",
		Short: "Market-basket association mining over point-of-sale transactions",
		Long: `basketlift finds pairs of products that sell together. It loads a
point-of-sale transaction log, groups rows into per-order baskets, counts
how often each product pair co-occurs across orders, and scores every pair
with support, confidence and lift to separate meaningful associations from
coincidence.

Quick Start:
  1. basketlift load orders.csv
  2. basketlift rules
  3. basketlift rules --min-lift 1.2 --top 10

Examples:
  # Import a transaction export (replaces the current dataset)
  basketlift load orders.csv

  # Mine association rules with the default thresholds
  basketlift rules

  # Raw pair co-occurrence counts
  basketlift pairs --top 20

  # Category-level co-occurrence
  basketlift pairs --by-category

  # Dataset overview
  basketlift stats

  # Re-mine whenever the export file changes
  basketlift watch orders.csv`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := getDBPath()
			if _, err := os.Stat(path); os.IsNotExist(err) {
				fmt.Println("basketlift: market-basket association mining")
				fmt.Println()
				fmt.Println("Run 'basketlift load <csv>' to import transactions.")
				fmt.Println("Run 'basketlift --help' for the full reference.")
			} else {
				fmt.Println("basketlift: market-basket association mining")
				fmt.Println()
				fmt.Println("Tip: Run 'basketlift stats' for a dataset overview.")
				fmt.Println("     Run 'basketlift rules' to mine association rules.")
				fmt.Println("     Run 'basketlift --help' for all commands.")
			}
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.basketlift/basketlift.db)")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// getDBPath returns the database path, using the flag value or default
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	dir := filepath.Join(home, ".basketlift")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create basketlift directory: %w", err)
	}

	return filepath.Join(dir, "basketlift.db"), nil
}

// openStore opens the store at the configured path and ensures the schema
// exists.
func openStore() (*store.Store, error) {
	path, err := getDBPath()
	if err != nil {
		return nil, err
	}

	st, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := st.CreateSchema(); err != nil {
		st.Close()
		return nil, err
	}

	return st, nil
}
