package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Canonical serialization and integrity checking
//
// encoding/json emits struct fields in declared order and map keys sorted,
// so marshaling a MasterRecord is already canonical: the same record always
// produces the same bytes. Checksums are SHA-256 over that serialization.

// Canonical returns the stable serialization of a record, the byte form
// checksums are computed over.
func Canonical(rec *MasterRecord) ([]byte, error) {
	if rec == nil {
		return nil, fmt.Errorf("cannot serialize nil master record")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize master record: %w", err)
	}
	return data, nil
}

// Checksum computes the hex SHA-256 digest of the record's canonical
// serialization.
func Checksum(rec *MasterRecord) (string, error) {
	data, err := Canonical(rec)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// VerifyChecksum recomputes the record's checksum and reports whether it
// matches the expected digest.
func VerifyChecksum(expected string, rec *MasterRecord) (bool, error) {
	actual, err := Checksum(rec)
	if err != nil {
		return false, err
	}
	return actual == expected, nil
}

// DecodeTransmission decodes the value read from a bus channel or an
// archive file. Two shapes are accepted: a metadata-wrapped Envelope (the
// sender path) and a bare MasterRecord (the master controller publishes
// directly). The returned Metadata is nil for bare records.
func DecodeTransmission(data []byte) (*MasterRecord, *Metadata, error) {
	var probe struct {
		Metadata *Metadata     `json:"metadata"`
		Payload  *MasterRecord `json:"payload"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, nil, fmt.Errorf("failed to decode transmission: %w", err)
	}

	if probe.Payload != nil {
		return probe.Payload, probe.Metadata, nil
	}
	if probe.Metadata != nil {
		// An envelope without a payload is malformed, not a bare record.
		return nil, nil, fmt.Errorf("envelope has no payload")
	}

	var rec MasterRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, nil, fmt.Errorf("failed to decode master record: %w", err)
	}
	if rec.Settings == nil {
		rec.Settings = map[string]CategoryRecord{}
	}
	return &rec, nil, nil
}
