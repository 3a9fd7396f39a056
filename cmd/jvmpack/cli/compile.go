package cli

import (
	"github.com/spf13/cobra"

	"github.com/majorcontext/jvmpack/internal/jre"
	"github.com/majorcontext/jvmpack/internal/ui"
)

var compileCmd = &cobra.Command{
	Use:   "compile <app-dir> [cache-dir]",
	Short: "Download the selected runtime and install it into the application",
	Long: `Resolve the application's Java runtime, fetch it through the artifact
cache and expand it into <app-dir>/.java.

The cache is revalidated with conditional requests, so repeated compiles
of an unchanged runtime only transfer headers. cache-dir overrides the
configured cache directory.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	dir, err := appDir(args[0])
	if err != nil {
		return err
	}
	var cacheDir string
	if len(args) == 2 {
		cacheDir = args[1]
	}

	c := newCache(cacheDir)
	rt, err := selectRuntime(cmd.Context(), dir, c)
	if err != nil {
		return err
	}

	ui.Stepf("Installing %s", rt.ID)
	ui.Detail(rt.URI)

	home, err := jre.Install(cmd.Context(), c, rt, dir)
	if err != nil {
		return err
	}
	ui.Detail("Expanded to " + home)
	return nil
}
