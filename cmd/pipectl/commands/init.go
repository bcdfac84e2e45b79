package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/StWron/customnode4portfolio/internal/printer"
	"github.com/StWron/customnode4portfolio/internal/settings"
	"github.com/StWron/customnode4portfolio/pkg/pipeline"
)

var initAssetRoot string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold the category folders and default presets",
	Long: `Scaffold the six category folders with their default parameter presets.

Creates, under the asset root:
  • 01_Background/ ... 06_Audio/ - one folder per category
  • <category>/setting/order_list.txt - parameter scan order
  • <category>/setting/<param>/config.json - typed parameter presets

Existing files are never overwritten, so init is safe to re-run after
adding or removing parameters by hand.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVarP(&initAssetRoot, "root", "r", "", "Asset root to scaffold (defaults to the configured asset root)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	root := initAssetRoot
	if root == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		root = cfg.Asset.Root
	}

	created, err := settings.InitInfra(root)
	if err != nil {
		return fmt.Errorf("scaffolding failed: %w", err)
	}

	if created == 0 {
		printer.Info("Nothing to do: %s already scaffolded.\n", root)
		return nil
	}
	printer.Success("Scaffolded %d files under %s\n", created, root)
	for _, category := range pipeline.Categories() {
		printer.Printf("  %s/%s/\n", root, category)
	}
	return nil
}
