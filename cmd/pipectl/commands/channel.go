package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/StWron/customnode4portfolio/internal/archive"
	"github.com/StWron/customnode4portfolio/internal/printer"
	"github.com/StWron/customnode4portfolio/pkg/bus"
	"github.com/StWron/customnode4portfolio/pkg/pipeline"
)

var channelNoVerify bool

var channelCmd = &cobra.Command{
	Use:   "channel [NAME]",
	Short: "Read the latest record on a channel",
	Long: `Read and decode the latest record published on a channel.

Uses the transport from pipeline.yml. The memory transport lives inside
a single process, so there is nothing for a separate CLI process to
read; configure the file or redis transport to inspect channels from
the command line.

Enveloped records have their checksum verified before display; pass
--no-verify to show a record even when its digest does not match.

Examples:
  # Read the configured default channel
  pipectl channel

  # Read a specific channel
  pipectl channel RENDER_CH

  # Show a record despite a checksum mismatch
  pipectl channel --no-verify`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChannel,
}

func init() {
	channelCmd.Flags().BoolVar(&channelNoVerify, "no-verify", false, "Skip checksum verification on enveloped records")
	rootCmd.AddCommand(channelCmd)
}

func runChannel(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := cfg.BusOptions()
	if opts.Transport == bus.TransportMemory {
		return printer.Error(
			"memory transport holds no channels outside its own process",
			"The memory bus is in-process only; a CLI invocation cannot see records published by the editor.",
			[]string{"Configure the file or redis transport in pipeline.yml:\n  channel:\n    transport: file"},
		)
	}

	b, err := bus.New(opts)
	if err != nil {
		return fmt.Errorf("failed to create bus: %w", err)
	}
	if rb, ok := b.(*bus.Redis); ok {
		defer rb.Close()
		if err := rb.Ping(ctx); err != nil {
			return printer.Error(
				"Redis connection failed",
				fmt.Sprintf("Could not connect to Redis at %s", opts.RedisAddr),
				[]string{"Check that the server is reachable and redis.addr in pipeline.yml is correct"},
			)
		}
	}

	channel := cfg.Channel.Default
	if len(args) > 0 {
		channel = args[0]
	}

	payload, err := b.Get(ctx, channel)
	if errors.Is(err, bus.ErrNoData) {
		printer.Warning("No data on channel '%s'\n", channel)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read channel '%s': %w", channel, err)
	}

	rec, meta, err := pipeline.DecodeTransmission(payload)
	if err != nil {
		return fmt.Errorf("failed to decode record on channel '%s': %w", channel, err)
	}

	if meta != nil && meta.Checksum != "" && !channelNoVerify {
		ok, err := pipeline.VerifyChecksum(meta.Checksum, rec)
		if err != nil {
			return fmt.Errorf("failed to verify checksum: %w", err)
		}
		if !ok {
			return printer.Error(
				fmt.Sprintf("checksum mismatch on channel '%s'", channel),
				"The record's payload does not match the digest in its envelope.",
				[]string{"Show the record anyway:\n  pipectl channel --no-verify"},
			)
		}
	}

	if meta != nil {
		printer.Info("Channel: %s  Sender: %s  Sent: %d\n\n", meta.Channel, meta.Sender, meta.Timestamp)
	}
	return archive.FormatRecord(os.Stdout, rec)
}
