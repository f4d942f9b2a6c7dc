package main

import (
	"github.com/spf13/cobra"

	"github.com/benchlens/benchlens/internal/application"
	"github.com/benchlens/benchlens/internal/engine"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "benchlens",
		Short:   "Benchmark score aggregation for model comparison charts",
		Version: version + " (" + commit + ")",
		Long: `benchlens reduces heterogeneous per-model benchmark measurements
(relative Elo-style ratings and absolute percentage-style scores) to a
small set of comparable 0-100 category scores plus an overall score.

Scores are pure derivations: they are recomputed from the raw records
and catalog on every invocation, never persisted.`,
		SilenceUsage: true,
	}

	root.AddCommand(newComputeCmd())
	root.AddCommand(newServeCmd())
	return root
}

// buildEngine loads the catalog and constructs the engine, shared by the
// compute and serve commands.
func buildEngine(catalogPath string, opts ...engine.Option) (*engine.Engine, error) {
	loader, err := application.NewCatalogLoader()
	if err != nil {
		return nil, err
	}
	catalog, err := loader.LoadFromFile(catalogPath)
	if err != nil {
		return nil, err
	}
	return engine.NewEngine(catalog, opts...)
}
