// Package receiver implements the Receiver / Slave Distributor node: it
// retrieves the most recent MasterRecord for a channel (or loads one from an
// archived file), verifies its integrity, and decomposes it back into the
// six fixed category records plus project info for downstream wiring.
package receiver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/StWron/customnode4portfolio/internal/archive"
	"github.com/StWron/customnode4portfolio/pkg/bus"
	"github.com/StWron/customnode4portfolio/pkg/pipeline"
)

// Mode selects where the receiver reads from.
type Mode string

const (
	// ModeChannel polls the bus for the channel's latest record.
	ModeChannel Mode = "Channel"

	// ModeArchive loads a named archive file, falling back to the bus when
	// the file cannot be read or parsed.
	ModeArchive Mode = "Archive"
)

// Options are the receiver's resolved inputs for one invocation.
type Options struct {
	Channel     string
	Mode        Mode   // empty defaults to ModeChannel
	ArchivePath string // Archive mode only

	// VerifyChecksum rejects an enveloped payload whose recomputed digest
	// mismatches; the rejection is reported as "no data", not an error.
	VerifyChecksum bool
}

// Output is the fixed-arity result handed back to the host. Categories
// always holds six records in declared category order; absent categories
// are empty records, never omitted.
type Output struct {
	Categories  []pipeline.CategoryRecord
	ProjectInfo pipeline.ProjectInfo
	Status      pipeline.Status
	Message     string
}

// Receiver reads and decomposes MasterRecords.
type Receiver struct {
	bus bus.Bus
}

// New creates a receiver polling b.
func New(b bus.Bus) *Receiver {
	return &Receiver{bus: b}
}

// Receive obtains a record per opts and decomposes it. It never returns an
// error to the host: an unobtainable or invalid record yields six empty
// category records and a FAILED status.
func (r *Receiver) Receive(ctx context.Context, opts Options) Output {
	mode := opts.Mode
	if mode == "" {
		mode = ModeChannel
	}

	var rec *pipeline.MasterRecord
	var meta *pipeline.Metadata
	var source string

	if mode == ModeArchive {
		loaded, loadedMeta, err := archive.Read(opts.ArchivePath)
		if err != nil {
			log.Printf("receiver: archive read failed, falling back to channel: %v", err)
		} else {
			rec, meta = loaded, loadedMeta
			source = fmt.Sprintf("archive %q", filepath.Base(opts.ArchivePath))
		}
	}

	if rec == nil {
		if strings.TrimSpace(opts.Channel) == "" {
			return noData("channel name cannot be empty")
		}
		data, err := r.bus.Get(ctx, opts.Channel)
		if err != nil {
			if errors.Is(err, bus.ErrNoData) {
				return noData(fmt.Sprintf("no data on channel %q", opts.Channel))
			}
			return noData(fmt.Sprintf("failed to read channel %q: %v", opts.Channel, err))
		}
		rec, meta, err = pipeline.DecodeTransmission(data)
		if err != nil {
			return noData(fmt.Sprintf("failed to decode channel %q: %v", opts.Channel, err))
		}
		source = fmt.Sprintf("channel %q", opts.Channel)
	}

	if opts.VerifyChecksum && meta != nil && meta.Checksum != "" {
		ok, err := pipeline.VerifyChecksum(meta.Checksum, rec)
		if err != nil {
			return noData(fmt.Sprintf("checksum verification failed: %v", err))
		}
		if !ok {
			return noData(fmt.Sprintf("checksum mismatch on %s", source))
		}
	}

	categories, info := Decompose(rec)
	populated := 0
	for _, c := range categories {
		if len(c) > 0 {
			populated++
		}
	}
	return Output{
		Categories:  categories,
		ProjectInfo: info,
		Status:      pipeline.StatusSuccess,
		Message:     fmt.Sprintf("received %d categories from %s", populated, source),
	}
}

// Decompose splits a MasterRecord into the six fixed category records, in
// declared order. A populated category is merged over a copy of the project
// info with the root path extended by the category key, so each category
// record can resolve its own working directory. Absent categories yield an
// empty record.
func Decompose(rec *pipeline.MasterRecord) ([]pipeline.CategoryRecord, pipeline.ProjectInfo) {
	info := rec.ProjectInfo

	categories := make([]pipeline.CategoryRecord, 0, len(pipeline.Categories()))
	for _, key := range pipeline.Categories() {
		params := rec.Settings[key]
		if len(params) == 0 {
			categories = append(categories, pipeline.CategoryRecord{})
			continue
		}

		merged := pipeline.CategoryRecord{
			"name":      info.Name,
			"root":      filepath.Join(info.Root, key),
			"timestamp": info.Timestamp,
		}
		for k, v := range params {
			merged[k] = v
		}
		categories = append(categories, merged)
	}
	return categories, info
}

// noData is the uniform "no valid record" output: six empty category
// records, empty project info, FAILED status.
func noData(message string) Output {
	categories := make([]pipeline.CategoryRecord, len(pipeline.Categories()))
	for i := range categories {
		categories[i] = pipeline.CategoryRecord{}
	}
	return Output{
		Categories: categories,
		Status:     pipeline.StatusFailed,
		Message:    message,
	}
}
