// Package cli implements the jvmpack command-line interface using Cobra.
// Its commands follow the buildpack lifecycle: detect the runtime an
// application asks for, compile it into the application, and release a
// start command.
package cli

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/majorcontext/jvmpack/internal/cache"
	"github.com/majorcontext/jvmpack/internal/catalog"
	"github.com/majorcontext/jvmpack/internal/config"
	"github.com/majorcontext/jvmpack/internal/jre"
	"github.com/majorcontext/jvmpack/internal/log"
)

var (
	verbose bool
	jsonOut bool

	globalCfg *config.GlobalConfig
)

var rootCmd = &cobra.Command{
	Use:   "jvmpack",
	Short: "jvmpack - select, fetch and launch a Java runtime for an application",
	Long: `jvmpack picks a Java runtime vendor and version for an application from
JAVA_RUNTIME_* environment variables or system.properties, downloads it
through a local revalidating cache, and emits the command that starts the
application on it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadGlobal()
		if err != nil {
			return err
		}
		globalCfg = cfg

		if err := log.Init(log.Options{
			Verbose:       verbose,
			JSONFormat:    jsonOut,
			DebugDir:      filepath.Join(config.GlobalConfigDir(), "debug"),
			RetentionDays: cfg.Debug.RetentionDays,
			Stderr:        cmd.ErrOrStderr(),
		}); err != nil {
			// File logging is optional; keep going with stderr only.
			cmd.PrintErrf("Warning: failed to initialize debug logging: %v\n", err)
		}
		log.SetCommand(cmd.Name())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		log.Close()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
}

// newCache opens the artifact cache. An explicit dir wins over the
// configured one.
func newCache(dir string) *cache.Cache {
	if dir == "" {
		dir = globalCfg.CacheDir
	}
	client := &http.Client{Timeout: time.Duration(globalCfg.HTTP.Timeout)}
	return cache.New(dir, client)
}

// newSelector wires the catalog sources to c.
func newSelector(c *cache.Cache) (*jre.Selector, *catalog.Sources) {
	sources := &catalog.Sources{
		CatalogPath: globalCfg.Catalog,
		Cache:       c,
	}
	return &jre.Selector{Loader: sources}, sources
}
