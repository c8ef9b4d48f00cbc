package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/authcheck/authcheck/internal/sample"
)

// defaultSampleFile is where the sample command writes when no path is given.
const defaultSampleFile = "sample_submissions.csv"

// NewSampleCmd creates the sample command.
func NewSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate a sample submission CSV for trying out authcheck",
		Long: `Sample generates a demonstration submission export.

The generated data contains authors whose entries vary in formatting the
way real conference exports do: inverted names, abbreviated first names,
alternate affiliation spellings, and duplicate identities. Several
authors exceed the default submission limit, so analyzing the sample
always produces violations to inspect.

Examples:
  # Write sample_submissions.csv in the current directory
  authcheck sample

  # Write to a specific path
  authcheck sample -o data/demo.csv

  # Write to stdout
  authcheck sample -o -

  # Use a different random seed
  authcheck sample --seed 42`,
		RunE: runSampleCmd,
	}

	cmd.Flags().StringP("output", "o", defaultSampleFile,
		"Output file path, or '-' for stdout")
	cmd.Flags().Int64("seed", sample.DefaultSeed,
		"Random seed for co-author and date selection")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite an existing output file")

	return cmd
}

// runSampleCmd executes the sample command.
func runSampleCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	seed, err := cmd.Flags().GetInt64("seed")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if outputPath == "-" {
		_, err := sample.Generate(cmd.OutOrStdout(), seed)
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	n, err := sample.GenerateFile(outputPath, seed)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated %d sample submissions: %s\n", n, outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "\nTry: authcheck analyze --auto-merge %s\n", outputPath)

	return nil
}
