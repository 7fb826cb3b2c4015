package initcmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/makeajourney/asnisum/cmd/asnisum/internal"
	"github.com/makeajourney/asnisum/pkg/catalog"
	"github.com/makeajourney/asnisum/pkg/config"
)

func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config and menu catalog",
		Args:  cobra.NoArgs,
		Example: `  asnisum init
  asnisum init --force`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return initCmd(force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}

func initCmd(force bool) error {
	configPath := internal.GetConfigPath()
	cfg := config.DefaultConfig()

	if _, err := os.Stat(configPath); err == nil && !force {
		fmt.Printf("Config already exists at %s (use --force to overwrite)\n", configPath)
	} else {
		if err := config.SaveConfig(configPath, cfg); err != nil {
			return fmt.Errorf("error writing config: %w", err)
		}
		fmt.Printf("✓ Config written to %s\n", configPath)
	}

	if _, err := os.Stat(cfg.Catalog.Path); err == nil && !force {
		fmt.Printf("Catalog already exists at %s (use --force to overwrite)\n", cfg.Catalog.Path)
	} else {
		if err := catalog.Save(cfg.Catalog.Path, catalog.Default()); err != nil {
			return fmt.Errorf("error writing catalog: %w", err)
		}
		fmt.Printf("✓ Catalog written to %s\n", cfg.Catalog.Path)
	}

	fmt.Println("\nNext steps:")
	fmt.Println("  1. Set the Slack tokens in the config (or ASNISUM_SLACK_BOT_TOKEN / ASNISUM_SLACK_APP_TOKEN)")
	fmt.Println("  2. Run: asnisum gateway")
	return nil
}
