package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/StWron/customnode4portfolio/internal/archive"
	"github.com/StWron/customnode4portfolio/internal/printer"
)

var (
	archiveRoot         string
	archiveOutputFormat string
)

var archiveCmd = &cobra.Command{
	Use:   "archive [FILE]",
	Short: "Inspect archived pipeline runs",
	Long: `Inspect archived pipeline runs in list or get mode.

List Mode (no FILE):
  Displays the archive index as a table or JSON array, one entry per
  run the master controller has archived.

Get Mode (with FILE):
  Displays one archived run's full record as pretty-printed JSON.
  FILE is the dump file name from the index, or a path to any archived
  record.

Output Formats (list mode only):
  default - Human-readable table with timestamp, project, and file
  json    - JSON array of index entries

Examples:
  # List all archived runs
  pipectl archive

  # List runs under a different archive root
  pipectl archive --root /mnt/shared/Archive_Data

  # Extract dump file names for processing
  pipectl archive --output=json | jq -r '.[].file'

  # Show one run in full
  pipectl archive 20250117_143052_NOVELPIA_PROJ.json`,
	RunE: runArchive,
}

func init() {
	archiveCmd.Flags().StringVarP(&archiveRoot, "root", "r", "", "Archive root (defaults to the configured archive root)")
	archiveCmd.Flags().StringVarP(&archiveOutputFormat, "output", "o", "default", "Output format: default or json (ignored in get mode)")
	rootCmd.AddCommand(archiveCmd)
}

func runArchive(cmd *cobra.Command, args []string) error {
	root := archiveRoot
	if root == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		root = cfg.Archive.Root
	}

	// Get mode: display one archived run.
	if len(args) > 0 {
		path := args[0]
		if _, err := os.Stat(path); err != nil {
			// Not a path; resolve it as a dump file name under the root.
			path = filepath.Join(root, archive.DictionaryDirName, args[0])
		}
		rec, _, err := archive.Read(path)
		if err != nil {
			return printer.Error(
				fmt.Sprintf("could not read archived run '%s'", args[0]),
				fmt.Sprintf("Error: %v", err),
				[]string{"List archived runs:\n  pipectl archive"},
			)
		}
		return archive.FormatRecord(os.Stdout, rec)
	}

	// List mode: display the index.
	entries, err := archive.List(root)
	if err != nil {
		return fmt.Errorf("failed to list archived runs: %w", err)
	}

	switch archiveOutputFormat {
	case "default":
		archive.FormatTable(os.Stdout, entries, root)
		return nil
	case "json":
		return archive.FormatJSON(os.Stdout, entries)
	default:
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", archiveOutputFormat),
			[]string{"Valid formats: default, json"},
		)
	}
}
