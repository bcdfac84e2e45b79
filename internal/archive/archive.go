// Package archive persists the durable history of every MasterRecord the
// Master Controller publishes: an append-only index file plus one JSON dump
// per run. The archive outlives the bus's last-write-wins semantics - a
// receiver (or the CLI) can load any past run by file name.
package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/StWron/customnode4portfolio/pkg/pipeline"
)

const (
	// IndexFileName is the append-only run log under the archive root.
	IndexFileName = "archiving_list.txt"

	// DictionaryDirName holds the per-run MasterRecord dumps.
	DictionaryDirName = "archive_dictionary"
)

// Writer persists MasterRecords under an archive root directory.
type Writer struct {
	root string
}

// NewWriter creates a writer for the given archive root. Directories are
// created lazily on the first Write.
func NewWriter(root string) *Writer {
	return &Writer{root: root}
}

// Write appends one line to the archive index and dumps the record to a
// fresh JSON file named {timestamp}_{project}.json under the dictionary
// directory. Returns the dump's file name.
//
// The index is opened in append mode, so concurrent controller invocations
// each add exactly one line; the index is never truncated. Any I/O error
// propagates to the caller - archival is not best-effort.
func (w *Writer) Write(rec *pipeline.MasterRecord) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", fmt.Errorf("cannot archive invalid record: %w", err)
	}

	root, err := filepath.Abs(w.root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve archive root: %w", err)
	}
	dictDir := filepath.Join(root, DictionaryDirName)
	if err := os.MkdirAll(dictDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	ts := rec.ProjectInfo.Timestamp
	name := rec.ProjectInfo.Name
	fileName := fmt.Sprintf("%s_%s.json", ts, name)

	index, err := os.OpenFile(filepath.Join(root, IndexFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to open archive index: %w", err)
	}
	_, writeErr := fmt.Fprintf(index, "[%s] PROJ: %s | FILE: %s\n", ts, name, fileName)
	closeErr := index.Close()
	if writeErr != nil {
		return "", fmt.Errorf("failed to append to archive index: %w", writeErr)
	}
	if closeErr != nil {
		return "", fmt.Errorf("failed to close archive index: %w", closeErr)
	}

	data, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize record for archive: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dictDir, fileName), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write archive file: %w", err)
	}

	return fileName, nil
}

// Read loads and decodes one archived record. The file may hold either a
// bare MasterRecord or a full envelope; metadata is nil for bare records.
func Read(path string) (*pipeline.MasterRecord, *pipeline.Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read archive file: %w", err)
	}
	return pipeline.DecodeTransmission(data)
}

// Entry is one parsed line of the archive index.
type Entry struct {
	Timestamp string `json:"timestamp"`
	Project   string `json:"project"`
	File      string `json:"file"`
}

// List parses the archive index under root into entries, oldest first.
// A missing index means no runs have been archived yet and yields an empty
// list, not an error. Malformed lines are skipped.
func List(root string) ([]Entry, error) {
	data, err := os.ReadFile(filepath.Join(root, IndexFileName))
	if os.IsNotExist(err) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read archive index: %w", err)
	}

	var entries []Entry
	for _, line := range strings.Split(string(data), "\n") {
		if e, ok := parseLine(line); ok {
			entries = append(entries, e)
		}
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// parseLine decodes one index line of the form
// [timestamp] PROJ: name | FILE: file.json
func parseLine(line string) (Entry, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "[") {
		return Entry{}, false
	}
	end := strings.Index(line, "]")
	if end < 0 {
		return Entry{}, false
	}
	ts := line[1:end]

	rest := strings.TrimSpace(line[end+1:])
	proj, file, found := strings.Cut(rest, "|")
	if !found {
		return Entry{}, false
	}
	proj = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(proj), "PROJ:"))
	file = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(file), "FILE:"))
	if ts == "" || proj == "" || file == "" {
		return Entry{}, false
	}
	return Entry{Timestamp: ts, Project: proj, File: file}, true
}
