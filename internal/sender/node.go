package sender

import (
	"context"

	"github.com/StWron/customnode4portfolio/internal/node"
	"github.com/StWron/customnode4portfolio/pkg/pipeline"
)

// Socket names.
const (
	InputMasterData = "MASTER_DATA"
	InputChannel    = "CHANNEL"

	OutputStatus    = "STATUS"
	OutputMessage   = "MESSAGE"
	OutputTimestamp = "TIMESTAMP"
	OutputChecksum  = "CHECKSUM"
)

// DefaultChannel is the host-facing default channel name.
const DefaultChannel = "MASTER_CH"

// Describe declares the sender's sockets.
func (s *Sender) Describe() node.Schema {
	return node.Schema{
		Inputs: []node.Input{
			{Name: InputMasterData, Kind: node.KindDict, Required: true},
			{Name: InputChannel, Kind: node.KindString, Required: true, Default: DefaultChannel},
		},
		Outputs: []node.Output{
			{Name: OutputStatus, Kind: node.KindString},
			{Name: OutputMessage, Kind: node.KindString},
			{Name: OutputTimestamp, Kind: node.KindInt},
			{Name: OutputChecksum, Kind: node.KindString},
		},
	}
}

// Execute adapts resolved host inputs to Send. A malformed MASTER_DATA
// input comes back as a FAILED result, not an error: the node halts
// gracefully without raising to the host.
func (s *Sender) Execute(ctx context.Context, in node.Values) (node.Values, error) {
	rec, _ := in[InputMasterData].(*pipeline.MasterRecord)
	channel := in.String(InputChannel, DefaultChannel)

	res := s.Send(ctx, rec, channel)
	return node.Values{
		OutputStatus:    string(res.Status),
		OutputMessage:   res.Message,
		OutputTimestamp: res.Timestamp,
		OutputChecksum:  res.Checksum,
	}, nil
}
