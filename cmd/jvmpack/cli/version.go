package cli

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/majorcontext/jvmpack/internal/ui"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Version returns the build version string.
func Version() string {
	return version
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of jvmpack",
	Run: func(cmd *cobra.Command, args []string) {
		ui.Println(fmt.Sprintf("jvmpack %s", version))
		if commit != "none" {
			ui.Println(fmt.Sprintf("  commit: %s", commit))
		}
		if date != "unknown" {
			ui.Println(fmt.Sprintf("  built:  %s", date))
		}
		if info, ok := debug.ReadBuildInfo(); ok {
			ui.Println(fmt.Sprintf("  go:     %s", info.GoVersion))
		}
	},
}
