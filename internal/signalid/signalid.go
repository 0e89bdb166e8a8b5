// Package signalid disambiguates full and partial signal ids and resolves
// partial ids against a scheme's partial-signal table.
package signalid

import "github.com/thomas-roos/aws-iot-fleetwise-edge/internal/scheme"

// InternalBitmask is the high bit that tags a signal id as partial.
const InternalBitmask uint32 = 1 << 31

// Invalid is the sentinel signal id used when resolution fails.
const Invalid uint32 = 0xFFFFFFFF

// IsPartial reports whether id addresses a path inside a complex parent
// signal rather than a whole signal.
func IsPartial(id uint32) bool {
	return id&InternalBitmask != 0
}

// Resolve maps a possibly-partial signal id to a (full id, path) pair using
// the scheme's partial-signal table. Full ids resolve to themselves with an
// empty path. ok is false when id is partial but absent from the table.
func Resolve(id uint32, sch *scheme.Scheme) (fullID uint32, path scheme.SignalPath, ok bool) {
	if !IsPartial(id) {
		return id, nil, true
	}

	entry, found := sch.PartialSignalLookup(id)
	if !found {
		return Invalid, nil, false
	}
	return entry.ParentSignalID, entry.Path, true
}
