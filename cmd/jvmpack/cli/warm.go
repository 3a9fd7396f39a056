package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/majorcontext/jvmpack/internal/ui"
)

// warmConcurrency bounds parallel index fetches.
const warmConcurrency = 4

var warmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Fetch or revalidate every vendor's index in the cache",
	Long: `Fetch each catalog vendor's index.yml into the artifact cache, or
revalidate the cached copy. Useful before going offline or when staging a
cache directory for later compiles.`,
	Args: cobra.NoArgs,
	RunE: runWarm,
}

func init() {
	rootCmd.AddCommand(warmCmd)
}

type warmResult struct {
	vendor   string
	versions int
	err      error
}

func runWarm(cmd *cobra.Command, args []string) error {
	_, sources := newSelector(newCache(""))
	cat, err := sources.LoadCatalog(cmd.Context())
	if err != nil {
		return err
	}

	vendors := cat.Vendors()
	results := make([]warmResult, len(vendors))

	var g errgroup.Group
	g.SetLimit(warmConcurrency)
	for i, name := range vendors {
		i, name := i, name
		g.Go(func() error {
			res := warmResult{vendor: name}
			entry, err := cat.Entry(name)
			if err == nil {
				var n int
				idx, loadErr := sources.LoadIndex(cmd.Context(), entry.RepositoryRoot)
				if loadErr == nil {
					n = len(idx)
				}
				res.versions, err = n, loadErr
			}
			results[i] = res
			// Failures are collected per vendor rather than aborting the group.
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, res := range results {
		if res.err != nil {
			failed++
			ui.Warnf("%s: %v", res.vendor, res.err)
			continue
		}
		ui.Stepf("%s: %d versions", res.vendor, res.versions)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d vendor indexes could not be fetched", failed, len(vendors))
	}
	return nil
}
