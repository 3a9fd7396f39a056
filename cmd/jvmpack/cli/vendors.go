package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/majorcontext/jvmpack/internal/ui"
)

var vendorsCmd = &cobra.Command{
	Use:   "vendors",
	Short: "List the vendors in the catalog",
	Args:  cobra.NoArgs,
	RunE:  runVendors,
}

func init() {
	rootCmd.AddCommand(vendorsCmd)
}

type vendorInfo struct {
	Name           string `json:"name"`
	DefaultVersion string `json:"default_version,omitempty"`
	RepositoryRoot string `json:"repository_root,omitempty"`
	Error          string `json:"error,omitempty"`
}

func runVendors(cmd *cobra.Command, args []string) error {
	_, sources := newSelector(newCache(""))
	cat, err := sources.LoadCatalog(cmd.Context())
	if err != nil {
		return err
	}

	var infos []vendorInfo
	for _, name := range cat.Vendors() {
		info := vendorInfo{Name: name}
		entry, err := cat.Entry(name)
		if err != nil {
			info.Error = err.Error()
		} else {
			info.DefaultVersion = entry.DefaultVersion
			info.RepositoryRoot = entry.RepositoryRoot
		}
		infos = append(infos, info)
	}

	if jsonOut {
		return printJSON(infos)
	}

	tw := ui.Table()
	fmt.Fprintln(tw, "VENDOR\tDEFAULT\tREPOSITORY")
	for _, info := range infos {
		if info.Error != "" {
			fmt.Fprintf(tw, "%s\t-\t%s\n", info.Name, ui.Dim("invalid entry"))
			continue
		}
		def := info.DefaultVersion
		if def == "" {
			def = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Name, def, info.RepositoryRoot)
	}
	return tw.Flush()
}
