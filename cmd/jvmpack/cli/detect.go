package cli

import (
	"github.com/spf13/cobra"

	"github.com/majorcontext/jvmpack/internal/ui"
)

var detectCmd = &cobra.Command{
	Use:   "detect <app-dir>",
	Short: "Print the runtime an application resolves to",
	Long: `Resolve the application's Java runtime from JAVA_RUNTIME_VENDOR,
JAVA_RUNTIME_VERSION and JAVA_RUNTIME_STACK_SIZE (or the matching
java.runtime.* entries in system.properties) and print its identifier.

Fails if the vendor, version or stack size cannot be resolved.`,
	Args: cobra.ExactArgs(1),
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	dir, err := appDir(args[0])
	if err != nil {
		return err
	}

	rt, err := selectRuntime(cmd.Context(), dir, newCache(""))
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(rt)
	}
	ui.Println(rt.ID)
	return nil
}
