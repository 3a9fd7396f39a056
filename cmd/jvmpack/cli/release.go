package cli

import (
	"github.com/spf13/cobra"

	"github.com/majorcontext/jvmpack/internal/release"
	"github.com/majorcontext/jvmpack/internal/ui"
)

var releaseCmd = &cobra.Command{
	Use:   "release <app-dir>",
	Short: "Print the release payload with the application's start command",
	Long: `Print the YAML release payload for the application. The web process
runs the Main-Class from META-INF/MANIFEST.MF on the installed runtime,
with -Xss added when a stack size is configured.`,
	Args: cobra.ExactArgs(1),
	RunE: runRelease,
}

func init() {
	rootCmd.AddCommand(releaseCmd)
}

func runRelease(cmd *cobra.Command, args []string) error {
	dir, err := appDir(args[0])
	if err != nil {
		return err
	}

	rt, err := selectRuntime(cmd.Context(), dir, newCache(""))
	if err != nil {
		return err
	}

	mainClass, err := release.MainClass(dir)
	if err != nil {
		return err
	}

	payload := release.New(mainClass, rt.StackSize)
	if jsonOut {
		return printJSON(payload)
	}

	data, err := payload.Marshal()
	if err != nil {
		return err
	}
	ui.Write(data)
	return nil
}
