package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/StWron/customnode4portfolio/internal/catalog"
	"github.com/StWron/customnode4portfolio/internal/printer"
	"github.com/StWron/customnode4portfolio/internal/sender"
	"github.com/StWron/customnode4portfolio/pkg/bus"
)

var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "List the nodes the editor would load",
	Long: `List every node the catalog assembles for the host editor, with its
socket counts. Useful for checking that the asset root and transport in
pipeline.yml produce the node set you expect.`,
	RunE: runNodes,
}

func init() {
	rootCmd.AddCommand(nodesCmd)
}

func runNodes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Listing only queries schemas; the memory bus is enough even when the
	// configured transport is unreachable from here.
	reg, err := catalog.New(catalog.Options{
		Bus:       bus.NewMemory(),
		AssetRoot: cfg.Asset.Root,
		Sender:    sender.Config{MaxPayloadSize: cfg.Channel.MaxPayloadSize},
	})
	if err != nil {
		return fmt.Errorf("failed to assemble node catalog: %w", err)
	}

	names := reg.Names()
	printer.Printf("%-28s %-26s %-8s %s\n", "NAME", "DISPLAY", "INPUTS", "OUTPUTS")
	printer.Printf("%-28s %-26s %-8s %s\n", "----------------------------", "--------------------------", "--------", "--------")
	for _, name := range names {
		n, _ := reg.Get(name)
		schema := n.Describe()
		printer.Printf("%-28s %-26s %-8d %d\n", name, reg.DisplayName(name), len(schema.Inputs), len(schema.Outputs))
	}
	printer.Printf("\n%d nodes\n", len(names))
	return nil
}
