package pipeline

import (
	"fmt"
	"strings"
)

// The six fixed content categories, in the order the host graph declares
// their output sockets. The numeric prefixes double as the asset subfolder
// names under a project's base path.
const (
	CategoryBackground     = "01_Background"
	CategoryEquipment      = "02_Equipment"
	CategoryCharacter      = "03_Character"
	CategoryStructure      = "04_Structure"
	CategorySpecialEffects = "05_SpecialEffects"
	CategoryAudio          = "06_Audio"
)

// Categories returns the fixed category keys in declared order.
// Callers must not mutate the returned slice's meaning by reordering it:
// receiver output sockets depend on this order.
func Categories() []string {
	return []string{
		CategoryBackground,
		CategoryEquipment,
		CategoryCharacter,
		CategoryStructure,
		CategorySpecialEffects,
		CategoryAudio,
	}
}

// Status is the two-valued outcome reported to the host by sender and
// receiver nodes. Nodes report failures through a (Status, message) pair
// rather than raising to the host.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// CategoryRecord is the resolved parameter set for one content category:
// a mapping from parameter name to a scalar value (string, int, float, or
// a selected option).
type CategoryRecord map[string]any

// Clone returns a shallow copy of the record. A nil record clones to an
// empty, non-nil record.
func (r CategoryRecord) Clone() CategoryRecord {
	out := make(CategoryRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ProjectInfo identifies the project a MasterRecord belongs to. It is
// created once per Master Controller invocation and immutable within that
// invocation's record.
type ProjectInfo struct {
	Name      string `json:"name"`      // project name
	Root      string `json:"root"`      // project base path: asset_root/name
	Timestamp string `json:"timestamp"` // YYYYMMDD_HHMMSS
}

// MasterRecord is the unified project configuration bundle exchanged
// between graph nodes. It is the unit placed on a bus channel and the unit
// persisted to the archive.
type MasterRecord struct {
	ProjectInfo ProjectInfo               `json:"project_info"`
	Settings    map[string]CategoryRecord `json:"settings"`
}

// Validate checks that the record carries the structure downstream nodes
// rely on: a project identity and a settings map (which may be empty).
func (m *MasterRecord) Validate() error {
	if m == nil {
		return fmt.Errorf("master record is nil")
	}
	if strings.TrimSpace(m.ProjectInfo.Name) == "" {
		return fmt.Errorf("master record has no project name")
	}
	if m.Settings == nil {
		return fmt.Errorf("master record has no settings map")
	}
	return nil
}

// Metadata describes one transmission of a MasterRecord.
type Metadata struct {
	Channel   string `json:"channel"`   // destination channel name
	Sender    string `json:"sender"`    // sender node identity
	Timestamp int64  `json:"timestamp"` // Unix seconds at packing time
	Format    string `json:"format"`    // payload serialization format
	Checksum  string `json:"checksum"`  // hex SHA-256 of the canonical payload, "" when disabled
}

// Envelope wraps a MasterRecord with transmission metadata. When
// Metadata.Checksum is non-empty it must equal Checksum(Payload); receivers
// treat a mismatch as "no valid data".
type Envelope struct {
	Metadata Metadata      `json:"metadata"`
	Payload  *MasterRecord `json:"payload"`
}
