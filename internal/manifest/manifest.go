// Package manifest provides the read-only decoder manifest the extractor
// consults on every pass: it maps a full signal id to its protocol, its
// wire location, and (for complex signals) its type graph. The manifest
// itself is never mutated during a pass (spec §5) — a new snapshot replaces
// the previous one atomically between passes.
package manifest

import "github.com/thomas-roos/aws-iot-fleetwise-edge/internal/wireformat"

// CanFrameRef names where a CAN signal lives on the bus.
type CanFrameRef struct {
	RawFrameID uint32
	Interface  string
}

// ComplexSignalRef names where a complex signal lives in the ROS2-style
// transport: an interface, a message, and the root of its type graph.
type ComplexSignalRef struct {
	InterfaceID string
	MessageID   string
	RootTypeID  uint32
}

// Manifest is the read-only lookup surface described in spec.md §3. It is
// satisfied by the in-memory *Snapshot built by Builder; callers that load
// manifests from some external catalog (out of scope here, §1) only need to
// implement this interface.
type Manifest interface {
	ProtocolOf(signalID uint32) wireformat.ProtocolTag
	CanFrameOf(signalID uint32) (CanFrameRef, bool)
	CanMessageFormat(rawFrameID uint32, interfaceName string) (wireformat.CanMessageFormat, bool)
	PidFormat(signalID uint32) (wireformat.PidDecoderFormat, bool)
	ComplexSignalOf(signalID uint32) (ComplexSignalRef, bool)
	ComplexType(typeID uint32) (wireformat.ComplexDataType, bool)
}

// Snapshot is a simple in-memory Manifest, immutable once built. Consumers
// hold a reference to one Snapshot for the duration of an extraction pass.
type Snapshot struct {
	protocols     map[uint32]wireformat.ProtocolTag
	canFrames     map[uint32]CanFrameRef
	canFormats    map[canFormatKey]wireformat.CanMessageFormat
	pidFormats    map[uint32]wireformat.PidDecoderFormat
	complexRefs   map[uint32]ComplexSignalRef
	complexTypes  map[uint32]wireformat.ComplexDataType
}

type canFormatKey struct {
	rawFrameID uint32
	interfaceName string
}

// ProtocolOf returns the protocol tag registered for signalID, or
// wireformat.ProtocolInvalid if the manifest has no entry for it — the
// extractor treats that identically to an explicitly-invalid tag (spec
// §7.2).
func (s *Snapshot) ProtocolOf(signalID uint32) wireformat.ProtocolTag {
	if tag, ok := s.protocols[signalID]; ok {
		return tag
	}
	return wireformat.ProtocolInvalid
}

// CanFrameOf returns the raw frame id and interface name a CAN signal
// belongs to.
func (s *Snapshot) CanFrameOf(signalID uint32) (CanFrameRef, bool) {
	ref, ok := s.canFrames[signalID]
	return ref, ok
}

// CanMessageFormat returns the full frame layout for (rawFrameID,
// interfaceName), used both to seed a fresh DECODE entry and to re-seed one
// upgraded from RAW to RAW_AND_DECODE (spec §4.4.1).
func (s *Snapshot) CanMessageFormat(rawFrameID uint32, interfaceName string) (wireformat.CanMessageFormat, bool) {
	f, ok := s.canFormats[canFormatKey{rawFrameID, interfaceName}]
	return f, ok
}

// PidFormat returns the OBD decoding recipe for a signal.
func (s *Snapshot) PidFormat(signalID uint32) (wireformat.PidDecoderFormat, bool) {
	f, ok := s.pidFormats[signalID]
	return f, ok
}

// ComplexSignalOf returns where a complex signal lives.
func (s *Snapshot) ComplexSignalOf(signalID uint32) (ComplexSignalRef, bool) {
	ref, ok := s.complexRefs[signalID]
	return ref, ok
}

// ComplexType returns the type graph node for typeID.
func (s *Snapshot) ComplexType(typeID uint32) (wireformat.ComplexDataType, bool) {
	t, ok := s.complexTypes[typeID]
	return t, ok
}

// Builder assembles a Snapshot field by field, mirroring the teacher's
// small New*-constructor idiom (app/models) rather than a config-file
// loader — loading manifests from an external catalog is out of scope here
// (spec §1); this is only the in-memory assembly path used by wiring code
// and tests.
type Builder struct {
	snap *Snapshot
}

// NewBuilder starts a fresh, empty manifest under construction.
func NewBuilder() *Builder {
	return &Builder{snap: &Snapshot{
		protocols:    make(map[uint32]wireformat.ProtocolTag),
		canFrames:    make(map[uint32]CanFrameRef),
		canFormats:   make(map[canFormatKey]wireformat.CanMessageFormat),
		pidFormats:   make(map[uint32]wireformat.PidDecoderFormat),
		complexRefs:  make(map[uint32]ComplexSignalRef),
		complexTypes: make(map[uint32]wireformat.ComplexDataType),
	}}
}

// WithCanSignal registers a CAN signal: its protocol, its frame, and the
// frame's layout (idempotent — later calls for the same frame overwrite the
// layout).
func (b *Builder) WithCanSignal(signalID, rawFrameID uint32, interfaceName string, format wireformat.CanMessageFormat) *Builder {
	b.snap.protocols[signalID] = wireformat.ProtocolCanRaw
	b.snap.canFrames[signalID] = CanFrameRef{RawFrameID: rawFrameID, Interface: interfaceName}
	b.snap.canFormats[canFormatKey{rawFrameID, interfaceName}] = format
	return b
}

// WithOBDSignal registers an OBD signal and its PID decoding recipe.
func (b *Builder) WithOBDSignal(signalID uint32, format wireformat.PidDecoderFormat) *Builder {
	b.snap.protocols[signalID] = wireformat.ProtocolOBD
	b.snap.pidFormats[signalID] = format
	return b
}

// WithComplexSignal registers a complex signal's location and root type.
func (b *Builder) WithComplexSignal(signalID uint32, ref ComplexSignalRef) *Builder {
	b.snap.protocols[signalID] = wireformat.ProtocolComplexData
	b.snap.complexRefs[signalID] = ref
	return b
}

// WithComplexType registers one node of the complex-type graph.
func (b *Builder) WithComplexType(typeID uint32, t wireformat.ComplexDataType) *Builder {
	b.snap.complexTypes[typeID] = t
	return b
}

// WithInvalidSignal registers a signal whose protocol tag is explicitly
// ProtocolInvalid, for exercising the invalid-protocol warn-and-skip path
// (spec §7.2).
func (b *Builder) WithInvalidSignal(signalID uint32) *Builder {
	b.snap.protocols[signalID] = wireformat.ProtocolInvalid
	return b
}

// Build finalizes the snapshot.
func (b *Builder) Build() *Snapshot {
	return b.snap
}
