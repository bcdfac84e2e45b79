// Package sender implements the Sender node: the optional indirection layer
// between the Master Controller and the bus. It validates a MasterRecord,
// wraps it in a checksummed envelope, and publishes it through whichever
// transport the bus was built with. Failures are reported to the host as a
// (status, message) result, never as a raised error.
package sender

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/StWron/customnode4portfolio/pkg/bus"
	"github.com/StWron/customnode4portfolio/pkg/pipeline"
)

// DefaultMaxPayloadSize caps the serialized payload at 100 MiB.
const DefaultMaxPayloadSize = 100 * 1024 * 1024

// FormatJSON is the only payload format currently produced.
const FormatJSON = "json"

// Config tunes one sender instance.
type Config struct {
	// ID identifies this sender in envelope metadata. Generated from a
	// UUID when empty.
	ID string

	// MaxPayloadSize is the serialized-payload cap in bytes; zero or
	// negative means DefaultMaxPayloadSize.
	MaxPayloadSize int64

	// DisableChecksum skips checksum computation. Checksums are on by
	// default.
	DisableChecksum bool
}

// Result is the fixed-arity outcome handed back to the host.
type Result struct {
	Status    pipeline.Status
	Message   string
	Timestamp int64  // Unix seconds of the attempt
	Checksum  string // empty when not computed
}

// Sender validates and publishes MasterRecords.
type Sender struct {
	bus bus.Bus
	cfg Config

	now func() time.Time
}

// New creates a sender publishing through b.
func New(b bus.Bus, cfg Config) *Sender {
	if cfg.ID == "" {
		cfg.ID = "sender-" + uuid.NewString()
	}
	if cfg.MaxPayloadSize <= 0 {
		cfg.MaxPayloadSize = DefaultMaxPayloadSize
	}
	return &Sender{bus: b, cfg: cfg, now: time.Now}
}

// ID returns the sender identity stamped into envelope metadata.
func (s *Sender) ID() string {
	return s.cfg.ID
}

// Send validates rec, envelopes it, and publishes it to channel. A
// validation or transport failure yields a FAILED result with a
// human-readable message; the record is not published.
func (s *Sender) Send(ctx context.Context, rec *pipeline.MasterRecord, channel string) Result {
	timestamp := s.now().Unix()

	if msg, ok := s.validate(rec, channel); !ok {
		return Result{Status: pipeline.StatusFailed, Message: msg, Timestamp: timestamp}
	}

	checksum := ""
	if !s.cfg.DisableChecksum {
		sum, err := pipeline.Checksum(rec)
		if err != nil {
			return Result{
				Status:    pipeline.StatusFailed,
				Message:   fmt.Sprintf("checksum computation failed: %v", err),
				Timestamp: timestamp,
			}
		}
		checksum = sum
	}

	env := pipeline.Envelope{
		Metadata: pipeline.Metadata{
			Channel:   channel,
			Sender:    s.cfg.ID,
			Timestamp: timestamp,
			Format:    FormatJSON,
			Checksum:  checksum,
		},
		Payload: rec,
	}
	data, err := json.Marshal(env)
	if err != nil {
		return Result{
			Status:    pipeline.StatusFailed,
			Message:   fmt.Sprintf("failed to serialize envelope: %v", err),
			Timestamp: timestamp,
			Checksum:  checksum,
		}
	}

	if err := s.bus.Set(ctx, channel, data); err != nil {
		return Result{
			Status:    pipeline.StatusFailed,
			Message:   fmt.Sprintf("failed to publish to channel %q: %v", channel, err),
			Timestamp: timestamp,
			Checksum:  checksum,
		}
	}

	return Result{
		Status:    pipeline.StatusSuccess,
		Message:   fmt.Sprintf("record published to channel %q", channel),
		Timestamp: timestamp,
		Checksum:  checksum,
	}
}

// validate applies the input checks: a structurally valid record, a
// non-empty channel name, and a payload under the size cap.
func (s *Sender) validate(rec *pipeline.MasterRecord, channel string) (string, bool) {
	if err := rec.Validate(); err != nil {
		return fmt.Sprintf("invalid master record: %v", err), false
	}
	if strings.TrimSpace(channel) == "" {
		return "channel name cannot be empty", false
	}

	payload, err := pipeline.Canonical(rec)
	if err != nil {
		return fmt.Sprintf("failed to serialize master record: %v", err), false
	}
	if size := int64(len(payload)); size > s.cfg.MaxPayloadSize {
		return fmt.Sprintf("payload size %d exceeds limit %d", size, s.cfg.MaxPayloadSize), false
	}
	return "", true
}
