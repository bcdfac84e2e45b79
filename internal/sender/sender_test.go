package sender

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StWron/customnode4portfolio/internal/node"
	"github.com/StWron/customnode4portfolio/pkg/bus"
	"github.com/StWron/customnode4portfolio/pkg/pipeline"
)

func testRecord() *pipeline.MasterRecord {
	return &pipeline.MasterRecord{
		ProjectInfo: pipeline.ProjectInfo{
			Name:      "DEMO",
			Root:      "/assets/DEMO",
			Timestamp: "20260101_120000",
		},
		Settings: map[string]pipeline.CategoryRecord{
			pipeline.CategoryBackground: {"prompt": "sunset"},
		},
	}
}

func testSender(b bus.Bus, cfg Config) *Sender {
	s := New(b, cfg)
	s.now = func() time.Time { return time.Unix(1767268800, 0) }
	return s
}

func TestSendSuccess(t *testing.T) {
	ctx := context.Background()
	b := bus.NewMemory()
	s := testSender(b, Config{ID: "sender-test"})

	res := s.Send(ctx, testRecord(), "MASTER_CH")

	assert.Equal(t, pipeline.StatusSuccess, res.Status)
	assert.Equal(t, int64(1767268800), res.Timestamp)
	assert.NotEmpty(t, res.Checksum)

	// The channel holds a verifiable envelope.
	data, err := b.Get(ctx, "MASTER_CH")
	require.NoError(t, err)
	rec, meta, err := pipeline.DecodeTransmission(data)
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, "sender-test", meta.Sender)
	assert.Equal(t, "MASTER_CH", meta.Channel)
	assert.Equal(t, FormatJSON, meta.Format)
	assert.Equal(t, res.Checksum, meta.Checksum)

	ok, err := pipeline.VerifyChecksum(meta.Checksum, rec)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSendValidationFailures(t *testing.T) {
	ctx := context.Background()
	b := bus.NewMemory()
	s := testSender(b, Config{})

	cases := []struct {
		name    string
		rec     *pipeline.MasterRecord
		channel string
		wantMsg string
	}{
		{"nil record", nil, "MASTER_CH", "invalid master record"},
		{"missing project name", &pipeline.MasterRecord{Settings: map[string]pipeline.CategoryRecord{}}, "MASTER_CH", "invalid master record"},
		{"empty channel", testRecord(), "   ", "channel name cannot be empty"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := s.Send(ctx, tc.rec, tc.channel)
			assert.Equal(t, pipeline.StatusFailed, res.Status)
			assert.Contains(t, res.Message, tc.wantMsg)
			assert.Empty(t, res.Checksum)
		})
	}

	// Nothing was published by any failed attempt.
	_, err := b.Get(ctx, "MASTER_CH")
	assert.ErrorIs(t, err, bus.ErrNoData)
}

func TestSendPayloadSizeLimit(t *testing.T) {
	ctx := context.Background()
	s := testSender(bus.NewMemory(), Config{MaxPayloadSize: 16})

	res := s.Send(ctx, testRecord(), "MASTER_CH")
	assert.Equal(t, pipeline.StatusFailed, res.Status)
	assert.Contains(t, res.Message, "exceeds limit")
}

func TestSendChecksumDisabled(t *testing.T) {
	ctx := context.Background()
	b := bus.NewMemory()
	s := testSender(b, Config{DisableChecksum: true})

	res := s.Send(ctx, testRecord(), "MASTER_CH")
	require.Equal(t, pipeline.StatusSuccess, res.Status)
	assert.Empty(t, res.Checksum)

	data, err := b.Get(ctx, "MASTER_CH")
	require.NoError(t, err)
	_, meta, err := pipeline.DecodeTransmission(data)
	require.NoError(t, err)
	assert.Empty(t, meta.Checksum)
}

func TestNewDefaults(t *testing.T) {
	s := New(bus.NewMemory(), Config{})
	assert.Contains(t, s.ID(), "sender-")
	assert.Equal(t, int64(DefaultMaxPayloadSize), s.cfg.MaxPayloadSize)
}

func TestSenderNodeContract(t *testing.T) {
	ctx := context.Background()
	b := bus.NewMemory()
	s := testSender(b, Config{ID: "sender-test"})

	t.Run("schema", func(t *testing.T) {
		schema := s.Describe()
		require.Len(t, schema.Inputs, 2)
		require.Len(t, schema.Outputs, 4)
		assert.Equal(t, OutputStatus, schema.Outputs[0].Name)
	})

	t.Run("execute success", func(t *testing.T) {
		out, err := s.Execute(ctx, node.Values{
			InputMasterData: testRecord(),
			InputChannel:    "NODE_CH",
		})
		require.NoError(t, err)
		assert.Equal(t, string(pipeline.StatusSuccess), out[OutputStatus])
		assert.NotEmpty(t, out[OutputChecksum])
	})

	t.Run("execute failure stays graceful", func(t *testing.T) {
		out, err := s.Execute(ctx, node.Values{InputChannel: "NODE_CH"})
		require.NoError(t, err)
		assert.Equal(t, string(pipeline.StatusFailed), out[OutputStatus])
	})
}
