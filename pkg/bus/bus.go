// Package bus provides last-value channel storage for the pipeline nodes:
// a process-wide mapping from channel name to the most recently published
// record. Writes overwrite, reads poll; there is no history and no
// subscriber notification.
//
// Three transports implement the same contract. Memory is the default
// in-process bus. File persists channel values under a cache directory so
// decoupled graphs can exchange records across processes. Redis namespaces
// channel keys on a shared server, following the same key discipline for
// every channel.
package bus

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// ErrNoData is returned by Get when a channel has never been set. Receivers
// treat it as the valid "no data yet" state, not a failure.
var ErrNoData = errors.New("no data on channel")

// Bus is process-wide last-value storage keyed by channel name.
// Set overwrites any existing value; Get returns the current value or
// ErrNoData. Implementations are safe for concurrent use.
type Bus interface {
	Set(ctx context.Context, channel string, payload []byte) error
	Get(ctx context.Context, channel string) ([]byte, error)
}

// Transport selects a Bus implementation.
type Transport string

const (
	TransportMemory Transport = "memory"
	TransportFile   Transport = "file"
	TransportRedis  Transport = "redis"
)

// Validate checks that the transport is a known value.
func (t Transport) Validate() error {
	switch t {
	case TransportMemory, TransportFile, TransportRedis:
		return nil
	default:
		return fmt.Errorf("unknown transport: %q", t)
	}
}

// Options configures the New factory.
type Options struct {
	Transport Transport
	CacheDir  string // file transport: channel cache directory
	RedisAddr string // redis transport: server address
	RedisDB   int    // redis transport: database number
	Namespace string // redis transport: key namespace
}

// New constructs the Bus selected by opts.Transport.
func New(opts Options) (Bus, error) {
	switch opts.Transport {
	case TransportMemory:
		return NewMemory(), nil
	case TransportFile:
		return NewFile(opts.CacheDir)
	case TransportRedis:
		return NewRedis(&redis.Options{Addr: opts.RedisAddr, DB: opts.RedisDB}, opts.Namespace)
	default:
		return nil, fmt.Errorf("unknown transport: %q", opts.Transport)
	}
}

// validChannel rejects empty or whitespace-only channel names.
func validChannel(channel string) error {
	if strings.TrimSpace(channel) == "" {
		return fmt.Errorf("channel name cannot be empty")
	}
	return nil
}
