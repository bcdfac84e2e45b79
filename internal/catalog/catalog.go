// Package catalog assembles the full node set a host loads: the master
// controller, sender, receiver, and one settings node per category, all
// sharing a single bus.
package catalog

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/StWron/customnode4portfolio/internal/master"
	"github.com/StWron/customnode4portfolio/internal/node"
	"github.com/StWron/customnode4portfolio/internal/receiver"
	"github.com/StWron/customnode4portfolio/internal/sender"
	"github.com/StWron/customnode4portfolio/internal/settings"
	"github.com/StWron/customnode4portfolio/pkg/bus"
	"github.com/StWron/customnode4portfolio/pkg/pipeline"
)

// Options configures the assembled node set.
type Options struct {
	Bus       bus.Bus       // shared channel bus, required
	AssetRoot string        // root the settings nodes scan
	Sender    sender.Config // sender identity and limits
}

// New builds a registry holding every pipeline node. Node names are
// stable identifiers the host persists in saved graphs; display names
// are what its UI shows.
func New(opts Options) (*node.Registry, error) {
	if opts.Bus == nil {
		return nil, fmt.Errorf("catalog requires a bus")
	}

	r := node.NewRegistry()

	if err := r.Register("MasterController", "Master Controller", master.New(opts.Bus)); err != nil {
		return nil, err
	}
	if err := r.Register("MasterSender", "Master Sender", sender.New(opts.Bus, opts.Sender)); err != nil {
		return nil, err
	}
	if err := r.Register("MasterReceiver", "Master Receiver", receiver.New(opts.Bus)); err != nil {
		return nil, err
	}

	for _, cat := range pipeline.Categories() {
		n := settings.New(cat, filepath.Join(opts.AssetRoot, cat))
		name := fmt.Sprintf("Settings_%s", cat)
		display := fmt.Sprintf("%s Settings", displayLabel(cat))
		if err := r.Register(name, display, n); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// displayLabel strips the ordering prefix from a category folder name:
// "05_SpecialEffects" becomes "SpecialEffects".
func displayLabel(category string) string {
	if _, rest, ok := strings.Cut(category, "_"); ok && rest != "" {
		return rest
	}
	return category
}
