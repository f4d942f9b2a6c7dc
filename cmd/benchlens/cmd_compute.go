package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/benchlens/benchlens/infrastructure/records"
)

func newComputeCmd() *cobra.Command {
	var (
		catalogPath string
		recordsPath string
		outputPath  string
	)

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute category scores for a merged record artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := buildEngine(catalogPath)
			if err != nil {
				return err
			}

			source := records.NewFileSource(recordsPath)
			models, err := source.Load(cmd.Context())
			if err != nil {
				return err
			}

			scored := eng.Compute(cmd.Context(), models)

			out := os.Stdout
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(scored); err != nil {
				return fmt.Errorf("failed to encode scores: %w", err)
			}

			defaults := 0
			for _, sm := range scored {
				if sm.IsDefault {
					defaults++
				}
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "scored %d models (%d default)\n", len(scored), defaults)
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "catalog.yaml", "Path to the category catalog YAML")
	cmd.Flags().StringVar(&recordsPath, "records", "models.json", "Path to the merged model records JSON")
	cmd.Flags().StringVar(&outputPath, "output", "", "Output file path (default stdout)")
	return cmd
}
