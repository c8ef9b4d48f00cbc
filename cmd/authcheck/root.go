// Package main provides the entry point for the authcheck CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for authcheck.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "authcheck",
		Short: "Author identity and submission limit checker",
		Long: `Authcheck analyzes conference submission exports for duplicate author
identities and per-author submission limit violations.

It parses free-text author fields, groups name and email variants that
likely refer to the same person, merges confirmed duplicates, and
reports authors whose submission count exceeds the venue's limit.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewSampleCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
