package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/makeajourney/asnisum/cmd/asnisum/internal"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("%s asnisum %s\n", internal.Logo, internal.FormatVersion())
			build, goVer := internal.FormatBuildInfo()
			if build != "" {
				fmt.Printf("  build time: %s\n", build)
			}
			fmt.Printf("  go version: %s\n", goVer)
		},
	}
}
