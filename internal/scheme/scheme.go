// Package scheme defines the collection-scheme input contract consumed by
// the extractor. A scheme is a declarative description of what to collect;
// it carries no knowledge of wire formats (that lives in the decoder
// manifest).
package scheme

// SignalPath is an ordered sequence of struct-member/array-element indices
// inside a complex signal. An empty path references the whole signal.
type SignalPath []uint32

// Equal reports whether two paths address the same location.
func (p SignalPath) Equal(other SignalPath) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Less gives the lexicographic ascending order used to keep
// ComplexDataMessageFormat.SignalPaths sorted (spec P6).
func (p SignalPath) Less(other SignalPath) bool {
	for i := 0; i < len(p) && i < len(other); i++ {
		if p[i] != other[i] {
			return p[i] < other[i]
		}
	}
	return len(p) < len(other)
}

// SignalInfo is one entry of a scheme's collect-signals list.
type SignalInfo struct {
	SignalID uint32
}

// RawCanFrameInfo is one entry of a scheme's collect-raw-can-frames list.
type RawCanFrameInfo struct {
	FrameID   uint32
	Interface string
}

// PartialSignalEntry is the resolution target of a partial signal id.
type PartialSignalEntry struct {
	ParentSignalID uint32
	Path           SignalPath
}

// Scheme is a single active collection scheme.
type Scheme struct {
	ID                 uint64
	CollectSignals     []SignalInfo
	CollectRawCanFrames []RawCanFrameInfo
	partialSignals     map[uint32]PartialSignalEntry
}

// NewScheme builds a Scheme with an initialized partial-signal table.
func NewScheme(id uint64) *Scheme {
	return &Scheme{
		ID:             id,
		partialSignals: make(map[uint32]PartialSignalEntry),
	}
}

// AddPartialSignal registers an entry in the scheme's partial-signal table.
func (s *Scheme) AddPartialSignal(partialID uint32, parentSignalID uint32, path SignalPath) {
	if s.partialSignals == nil {
		s.partialSignals = make(map[uint32]PartialSignalEntry)
	}
	s.partialSignals[partialID] = PartialSignalEntry{ParentSignalID: parentSignalID, Path: path}
}

// PartialSignalLookup resolves a partial signal id against this scheme's
// table. found is false if the scheme never declared that id, which the
// extractor treats as a warn-and-skip condition (spec §7.1).
func (s *Scheme) PartialSignalLookup(partialID uint32) (PartialSignalEntry, bool) {
	entry, ok := s.partialSignals[partialID]
	return entry, ok
}
