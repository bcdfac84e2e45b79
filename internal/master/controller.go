// Package master implements the Master Controller node: it aggregates the
// per-category settings records and the project identity into one
// MasterRecord, persists an archive copy, and publishes the record on a bus
// channel for decoupled parts of the graph to pick up.
package master

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/StWron/customnode4portfolio/internal/archive"
	"github.com/StWron/customnode4portfolio/pkg/bus"
	"github.com/StWron/customnode4portfolio/pkg/pipeline"
)

// TimestampLayout is the run timestamp format: YYYYMMDD_HHMMSS.
const TimestampLayout = "20060102_150405"

// Params are the controller's resolved inputs for one invocation. Absent
// categories are simply omitted from Settings.
type Params struct {
	ProjectName string
	AssetRoot   string // asset library root; project base path is AssetRoot/ProjectName
	ArchiveRoot string
	Channel     string
	Settings    map[string]pipeline.CategoryRecord
}

// Controller aggregates, archives, and publishes. Nothing is retried: any
// filesystem error during archival propagates to the caller.
type Controller struct {
	bus bus.Bus

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

// New creates a controller publishing to the given bus.
func New(b bus.Bus) *Controller {
	return &Controller{bus: b, now: time.Now}
}

// Run executes one controller invocation: build the MasterRecord, create
// the per-category asset folders, archive, publish. The record is also
// returned for direct graph wiring.
func (c *Controller) Run(ctx context.Context, p Params) (*pipeline.MasterRecord, error) {
	if strings.TrimSpace(p.ProjectName) == "" {
		return nil, fmt.Errorf("project name cannot be empty")
	}
	if strings.TrimSpace(p.Channel) == "" {
		return nil, fmt.Errorf("channel name cannot be empty")
	}

	timestamp := c.now().Format(TimestampLayout)

	assetRoot, err := filepath.Abs(p.AssetRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve asset root: %w", err)
	}
	basePath := filepath.Join(assetRoot, p.ProjectName)

	settings := make(map[string]pipeline.CategoryRecord, len(p.Settings))
	for key, rec := range p.Settings {
		if rec == nil {
			continue
		}
		settings[key] = rec
	}

	record := &pipeline.MasterRecord{
		ProjectInfo: pipeline.ProjectInfo{
			Name:      p.ProjectName,
			Root:      basePath,
			Timestamp: timestamp,
		},
		Settings: settings,
	}

	// Asset infrastructure: one subfolder per fixed category, idempotent.
	for _, cat := range pipeline.Categories() {
		if err := os.MkdirAll(filepath.Join(basePath, cat), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create asset folder %s: %w", cat, err)
		}
	}

	if _, err := archive.NewWriter(p.ArchiveRoot).Write(record); err != nil {
		return nil, fmt.Errorf("archival failed: %w", err)
	}

	payload, err := pipeline.Canonical(record)
	if err != nil {
		return nil, err
	}
	if err := c.bus.Set(ctx, p.Channel, payload); err != nil {
		return nil, fmt.Errorf("failed to publish to channel %q: %w", p.Channel, err)
	}

	return record, nil
}
