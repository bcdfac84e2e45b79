package master

import (
	"context"

	"github.com/StWron/customnode4portfolio/internal/node"
	"github.com/StWron/customnode4portfolio/pkg/pipeline"
)

// Input socket names.
const (
	InputProjectName = "project_name"
	InputAssetRoot   = "asset_save_root"
	InputArchiveRoot = "archive_root"
	InputChannel     = "CHANNEL"
)

// Output socket name for the direct-wiring variant.
const OutputMerged = "merged_data"

// Host-facing defaults.
const (
	DefaultProjectName = "NOVELPIA_PROJ"
	DefaultAssetRoot   = "output/Asset_Library"
	DefaultArchiveRoot = "output/Archive_Data"
	DefaultChannel     = "MASTER_CH"
)

// Describe declares the controller's sockets: project identity inputs plus
// one optional DICT input per fixed category, and the merged record output.
func (c *Controller) Describe() node.Schema {
	inputs := []node.Input{
		{Name: InputProjectName, Kind: node.KindString, Required: true, Default: DefaultProjectName},
		{Name: InputAssetRoot, Kind: node.KindString, Required: true, Default: DefaultAssetRoot},
		{Name: InputArchiveRoot, Kind: node.KindString, Required: true, Default: DefaultArchiveRoot},
		{Name: InputChannel, Kind: node.KindString, Required: true, Default: DefaultChannel},
	}
	for _, cat := range pipeline.Categories() {
		inputs = append(inputs, node.Input{Name: cat, Kind: node.KindDict})
	}
	return node.Schema{
		Inputs:  inputs,
		Outputs: []node.Output{{Name: OutputMerged, Kind: node.KindDict}},
	}
}

// Execute adapts resolved host inputs to Run.
func (c *Controller) Execute(ctx context.Context, in node.Values) (node.Values, error) {
	settings := make(map[string]pipeline.CategoryRecord)
	for _, cat := range pipeline.Categories() {
		switch rec := in[cat].(type) {
		case pipeline.CategoryRecord:
			settings[cat] = rec
		case map[string]any:
			settings[cat] = pipeline.CategoryRecord(rec)
		}
	}

	record, err := c.Run(ctx, Params{
		ProjectName: in.String(InputProjectName, DefaultProjectName),
		AssetRoot:   in.String(InputAssetRoot, DefaultAssetRoot),
		ArchiveRoot: in.String(InputArchiveRoot, DefaultArchiveRoot),
		Channel:     in.String(InputChannel, DefaultChannel),
		Settings:    settings,
	})
	if err != nil {
		return nil, err
	}
	return node.Values{OutputMerged: record}, nil
}
