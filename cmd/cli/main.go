package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tabscope-cli",
		Short:         "Profile tabular files and compute chart aggregations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newProfileCmd(),
		newAggregateCmd(),
		newColumnsCmd(),
		newQueryCmd(),
		newFetchCmd(),
	)
	return rootCmd
}
