package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/makeajourney/asnisum/cmd/asnisum/internal"
	"github.com/makeajourney/asnisum/cmd/asnisum/internal/gateway"
	"github.com/makeajourney/asnisum/cmd/asnisum/internal/initcmd"
	"github.com/makeajourney/asnisum/cmd/asnisum/internal/version"
)

func NewAsnisumCommand() *cobra.Command {
	short := fmt.Sprintf("%s asnisum - Slack order bot v%s\n\n", internal.Logo, internal.GetVersion())

	cmd := &cobra.Command{
		Use:     "asnisum",
		Short:   short,
		Example: "asnisum gateway",
	}

	cmd.AddCommand(
		initcmd.NewInitCommand(),
		gateway.NewGatewayCommand(),
		version.NewVersionCommand(),
	)

	return cmd
}

func main() {
	cmd := NewAsnisumCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
