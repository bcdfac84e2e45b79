// Package pipeline defines the data model exchanged between the pipeline's
// graph nodes: the MasterRecord configuration bundle, the per-category
// parameter records it aggregates, and the checksummed Envelope that wraps a
// record in transit.
//
// A MasterRecord is created once per Master Controller invocation, archived
// to disk, and published on a bus channel. Both on-wire shapes the pipeline
// has used - the bare record and the metadata-wrapped envelope - decode
// through DecodeTransmission, so receivers do not care which producer wrote
// the channel.
package pipeline
