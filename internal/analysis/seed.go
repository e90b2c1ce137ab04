// Package analysis synthesizes a deterministic utility-analysis report for a
// match when no real round telemetry is available.
//
// Every value in a report is a pure function of the match id (and the map,
// which is passed through). Generation uses no clock, no I/O and no shared
// state, so concurrent calls for different matches are safe.
package analysis

import "unicode/utf16"

const (
	fnvOffset32 uint32 = 0x811c9dc5
	fnvPrime32  uint32 = 0x01000193
)

// DeriveSeed hashes id with 32-bit FNV-1a over its UTF-16 code units.
// The empty string yields the offset basis.
func DeriveSeed(id string) uint32 {
	h := fnvOffset32
	for _, u := range utf16.Encode([]rune(id)) {
		h ^= uint32(u)
		h *= fnvPrime32
	}
	return h
}
