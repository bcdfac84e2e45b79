package settings

import (
	"context"
	"fmt"

	"github.com/StWron/customnode4portfolio/internal/node"
	"github.com/StWron/customnode4portfolio/pkg/pipeline"
)

// ModeInput is the one input every settings node declares regardless of the
// scanned schema.
const ModeInput = "mode"

// Modes are the selectable generation modes.
var Modes = []string{"Standard", "Variant", "Draft"}

// Node is the settings node for one category. Dir points at the category
// folder holding the setting/ subtree that Describe scans.
type Node struct {
	Category string
	Dir      string
}

// New creates a settings node for a category rooted at dir.
func New(category, dir string) *Node {
	return &Node{Category: category, Dir: dir}
}

// Describe synthesizes the input schema by scanning the category folder.
// Scan failures surface as an empty parameter set rather than aborting the
// host's schema query; per-parameter config errors are already degraded by
// Scan itself.
func (n *Node) Describe() node.Schema {
	inputs := []node.Input{{
		Name:     ModeInput,
		Kind:     node.KindCombo,
		Required: true,
		Default:  Modes[0],
		Options:  Modes,
	}}

	params, err := Scan(n.Dir)
	if err != nil {
		params = nil
	}
	for _, p := range params {
		inputs = append(inputs, paramInput(p))
	}

	return node.Schema{
		Inputs:  inputs,
		Outputs: []node.Output{{Name: n.Category, Kind: node.KindDict}},
	}
}

// Execute packages the resolved values into the tagged record downstream
// nodes consume. No computation happens here.
func (n *Node) Execute(_ context.Context, in node.Values) (node.Values, error) {
	mode := in.String(ModeInput, Modes[0])

	params := make(map[string]any, len(in))
	for k, v := range in {
		if k == ModeInput {
			continue
		}
		params[k] = v
	}

	rec := pipeline.CategoryRecord{
		"category": n.Category,
		"mode":     mode,
		"params":   params,
	}
	return node.Values{n.Category: rec}, nil
}

// paramInput maps a scanned parameter to its socket declaration.
func paramInput(p Param) node.Input {
	in := node.Input{
		Name:     p.Name,
		Required: true,
		Default:  p.Default,
	}
	switch p.Kind {
	case ParamFloat:
		in.Kind = node.KindFloat
		in.Min, in.Max, in.Step = p.Min, p.Max, p.Step
	case ParamInt:
		in.Kind = node.KindInt
		in.Min, in.Max, in.Step = p.Min, p.Max, p.Step
	case ParamCombo, ParamError:
		in.Kind = node.KindCombo
		in.Options = p.Options
	case ParamString:
		in.Kind = node.KindString
	default:
		in.Kind = node.KindString
		in.Default = fmt.Sprintf("%v", p.Default)
	}
	return in
}
