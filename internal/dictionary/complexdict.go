package dictionary

import (
	"sort"

	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/scheme"
	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/wireformat"
)

// SignalPathEntry pairs a path inside a complex signal with the partial
// signal id a scheme used to address it.
type SignalPathEntry struct {
	Path            scheme.SignalPath
	PartialSignalID uint32
}

// ComplexDataMessageFormat is one (interface, message) entry of the
// complex-data dictionary (spec §3).
type ComplexDataMessageFormat struct {
	// SignalID is the parent full signal id. It stays InvalidSignalID
	// until the first accepted reference populates the entry, and never
	// changes afterward (spec P8).
	SignalID uint32
	// RootTypeID is the top-level complex type referenced by the first
	// accepted signal for this (interface, message).
	RootTypeID uint32
	// ComplexTypeMap is the transitive closure of types reachable from
	// RootTypeID, computed once and never shrunk (spec P7).
	ComplexTypeMap map[uint32]wireformat.ComplexDataType
	// CollectRaw is true once any scheme asked for the whole signal
	// (empty path).
	CollectRaw bool
	// SignalPaths is kept sorted ascending by path then partial id (spec
	// P6). Duplicates are allowed but discouraged at call sites.
	SignalPaths []SignalPathEntry
}

func newComplexDataMessageFormat() *ComplexDataMessageFormat {
	return &ComplexDataMessageFormat{
		SignalID:       InvalidSignalID,
		ComplexTypeMap: make(map[uint32]wireformat.ComplexDataType),
	}
}

// InsertPath inserts (path, partialSignalID) into SignalPaths at its sorted
// position, or sets CollectRaw when path is empty (spec §4.5, P6).
func (f *ComplexDataMessageFormat) InsertPath(path scheme.SignalPath, partialSignalID uint32) {
	if len(path) == 0 {
		f.CollectRaw = true
		return
	}

	entry := SignalPathEntry{Path: path, PartialSignalID: partialSignalID}
	idx := sort.Search(len(f.SignalPaths), func(i int) bool {
		existing := f.SignalPaths[i]
		if existing.Path.Less(path) {
			return false
		}
		if path.Less(existing.Path) {
			return true
		}
		return existing.PartialSignalID >= partialSignalID
	})
	f.SignalPaths = append(f.SignalPaths, SignalPathEntry{})
	copy(f.SignalPaths[idx+1:], f.SignalPaths[idx:])
	f.SignalPaths[idx] = entry
}

// ComplexDataDecoderDictionary is the two-level complex-data dictionary
// described in spec §3, keyed by (interface id, message id).
type ComplexDataDecoderDictionary struct {
	interfaces map[string]map[string]*ComplexDataMessageFormat
}

// NewComplexDataDecoderDictionary returns an empty dictionary.
func NewComplexDataDecoderDictionary() *ComplexDataDecoderDictionary {
	return &ComplexDataDecoderDictionary{interfaces: make(map[string]map[string]*ComplexDataMessageFormat)}
}

// Entry returns the (interface, message) entry, creating it if absent. The
// bool result reports whether the entry already existed, so callers know
// whether to run the first-population traversal (spec §4.5).
func (d *ComplexDataDecoderDictionary) Entry(interfaceID, messageID string) (*ComplexDataMessageFormat, bool) {
	messages, ok := d.interfaces[interfaceID]
	if !ok {
		messages = make(map[string]*ComplexDataMessageFormat)
		d.interfaces[interfaceID] = messages
	}
	entry, existed := messages[messageID]
	if !existed {
		entry = newComplexDataMessageFormat()
		messages[messageID] = entry
	}
	return entry, existed
}

// Interfaces returns the interface ids present in this dictionary.
func (d *ComplexDataDecoderDictionary) Interfaces() []string {
	ids := make([]string, 0, len(d.interfaces))
	for id := range d.interfaces {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Messages returns the message ids registered under interfaceID.
func (d *ComplexDataDecoderDictionary) Messages(interfaceID string) []string {
	messages, ok := d.interfaces[interfaceID]
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(messages))
	for id := range messages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Lookup returns the entry for (interfaceID, messageID) without creating
// one.
func (d *ComplexDataDecoderDictionary) Lookup(interfaceID, messageID string) (*ComplexDataMessageFormat, bool) {
	messages, ok := d.interfaces[interfaceID]
	if !ok {
		return nil, false
	}
	entry, ok := messages[messageID]
	return entry, ok
}
