package bus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File persists channel values under a cache directory. Each channel owns
// two files: <channel>_latest.json holds the current value and
// <channel>_backup.json the previous one, rotated on every write.
type File struct {
	dir string
}

// NewFile creates a file-backed bus rooted at dir, creating the directory
// if needed. An empty dir defaults to .cache/channels under the working
// directory.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		dir = filepath.Join(".cache", "channels")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create channel cache directory: %w", err)
	}
	return &File{dir: dir}, nil
}

// Dir returns the cache directory backing this bus.
func (b *File) Dir() string {
	return b.dir
}

// Set rotates the channel's previous value to its backup file and writes the
// new value to the latest file.
func (b *File) Set(_ context.Context, channel string, payload []byte) error {
	if err := validChannel(channel); err != nil {
		return err
	}

	latest := b.channelPath(channel, "latest")
	if _, err := os.Stat(latest); err == nil {
		backup := b.channelPath(channel, "backup")
		if err := os.Remove(backup); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove previous backup: %w", err)
		}
		if err := os.Rename(latest, backup); err != nil {
			return fmt.Errorf("failed to rotate channel cache: %w", err)
		}
	}

	if err := os.WriteFile(latest, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write channel cache: %w", err)
	}
	return nil
}

// Get reads the channel's latest value, or ErrNoData if none was written.
func (b *File) Get(_ context.Context, channel string) ([]byte, error) {
	if err := validChannel(channel); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(b.channelPath(channel, "latest"))
	if os.IsNotExist(err) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read channel cache: %w", err)
	}
	return data, nil
}

// channelPath maps a channel name to its cache file. Path separators in the
// name are flattened so a channel can never escape the cache directory.
func (b *File) channelPath(channel, suffix string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_").Replace(channel)
	return filepath.Join(b.dir, fmt.Sprintf("%s_%s.json", safe, suffix))
}
