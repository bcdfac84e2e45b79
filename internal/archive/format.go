package archive

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/StWron/customnode4portfolio/pkg/pipeline"
)

// FormatTable writes index entries as a formatted table to the provided
// writer. Returns the number of entries formatted.
func FormatTable(w io.Writer, entries []Entry, root string) int {
	if len(entries) == 0 {
		fmt.Fprintf(w, "No archived runs under '%s'\n", root)
		return 0
	}

	fmt.Fprintf(w, "Archived runs under '%s':\n\n", root)
	fmt.Fprintf(w, "%-17s %-24s %s\n", "TIMESTAMP", "PROJECT", "FILE")
	fmt.Fprintf(w, "%-17s %-24s %s\n", "-----------------", "------------------------", "----------------------------------------")

	for _, e := range entries {
		fmt.Fprintf(w, "%-17s %-24s %s\n", e.Timestamp, e.Project, e.File)
	}

	runMsg := "run"
	if len(entries) != 1 {
		runMsg = "runs"
	}
	fmt.Fprintf(w, "\n%d %s archived\n", len(entries), runMsg)

	return len(entries)
}

// FormatJSON writes index entries as a JSON array to the provided writer.
// Useful for scripting (piping into jq and friends).
func FormatJSON(w io.Writer, entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal archive entries: %w", err)
	}
	if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	return nil
}

// FormatRecord writes a single archived MasterRecord as pretty-printed JSON.
// Used in get mode to display one run in full.
func FormatRecord(w io.Writer, rec *pipeline.MasterRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	return nil
}
