package receiver

import (
	"context"

	"github.com/StWron/customnode4portfolio/internal/node"
	"github.com/StWron/customnode4portfolio/pkg/pipeline"
)

// Socket names.
const (
	InputChannel     = "CHANNEL"
	InputMode        = "reference_mode"
	InputArchivePath = "archive_file_path"

	OutputProjectInfo = "PROJECT_INFO"
	OutputStatus      = "STATUS"
	OutputMessage     = "MESSAGE"
)

// DefaultChannel is the host-facing default channel name.
const DefaultChannel = "MASTER_CH"

// Describe declares the receiver's sockets: the six category outputs in
// fixed order, then project info, status, and message.
func (r *Receiver) Describe() node.Schema {
	outputs := make([]node.Output, 0, len(pipeline.Categories())+3)
	for _, cat := range pipeline.Categories() {
		outputs = append(outputs, node.Output{Name: cat, Kind: node.KindDict})
	}
	outputs = append(outputs,
		node.Output{Name: OutputProjectInfo, Kind: node.KindDict},
		node.Output{Name: OutputStatus, Kind: node.KindString},
		node.Output{Name: OutputMessage, Kind: node.KindString},
	)

	return node.Schema{
		Inputs: []node.Input{
			{Name: InputChannel, Kind: node.KindString, Required: true, Default: DefaultChannel},
			{Name: InputMode, Kind: node.KindCombo, Required: true, Default: string(ModeChannel), Options: []string{string(ModeChannel), string(ModeArchive)}},
			{Name: InputArchivePath, Kind: node.KindString, Default: "output/Archive_Data/archive_dictionary/filename.json"},
		},
		Outputs: outputs,
	}
}

// Execute adapts resolved host inputs to Receive. The output values carry
// one entry per declared socket.
func (r *Receiver) Execute(ctx context.Context, in node.Values) (node.Values, error) {
	out := r.Receive(ctx, Options{
		Channel:        in.String(InputChannel, DefaultChannel),
		Mode:           Mode(in.String(InputMode, string(ModeChannel))),
		ArchivePath:    in.String(InputArchivePath, ""),
		VerifyChecksum: true,
	})

	values := make(node.Values, len(pipeline.Categories())+3)
	for i, cat := range pipeline.Categories() {
		values[cat] = out.Categories[i]
	}
	values[OutputProjectInfo] = out.ProjectInfo
	values[OutputStatus] = string(out.Status)
	values[OutputMessage] = out.Message
	return values, nil
}
