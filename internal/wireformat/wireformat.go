// Package wireformat holds the wire-level types shared between the decoder
// manifest (which produces them) and the decoder dictionaries (which carry
// them to network consumers). Neither the manifest nor the dictionary
// package owns these types, so both can depend on this one without a cycle.
package wireformat

// ProtocolTag classifies a signal by the transport used to collect it.
type ProtocolTag int

const (
	ProtocolInvalid ProtocolTag = iota
	ProtocolCanRaw
	ProtocolOBD
	ProtocolComplexData
)

func (p ProtocolTag) String() string {
	switch p {
	case ProtocolCanRaw:
		return "CAN-RAW"
	case ProtocolOBD:
		return "OBD"
	case ProtocolComplexData:
		return "COMPLEX-DATA"
	default:
		return "INVALID"
	}
}

// AllProtocols lists every protocol tag the extractor produces a dictionary
// slot for, independent of whether any scheme actually uses it (spec P2).
var AllProtocols = []ProtocolTag{ProtocolCanRaw, ProtocolOBD, ProtocolComplexData}

// CanSignalFormat describes where and how one signal sits inside a CAN or
// OBD frame.
type CanSignalFormat struct {
	SignalID         uint32
	FirstBitPosition uint32
	SizeInBits       uint32
	Factor           float64
	Offset           float64
}

// CanMessageFormat describes the layout of one CAN frame or OBD response.
type CanMessageFormat struct {
	MessageID   uint32
	SizeInBytes uint32
	Signals     []CanSignalFormat
}

// PidDecoderFormat is the manifest's per-signal OBD decoding recipe.
type PidDecoderFormat struct {
	PID                  uint32
	StartByte            uint32
	BitRightShift        uint32
	ByteLength           uint32
	BitMaskLength        uint32
	Scaling              float64
	Offset               float64
	ExpectedResponseLength uint32
}

// ComplexDataTypeKind tags a ComplexDataType variant.
type ComplexDataTypeKind int

const (
	ComplexTypeInvalid ComplexDataTypeKind = iota
	ComplexTypePrimitive
	ComplexTypeArray
	ComplexTypeStruct
)

// ComplexDataType is a node of the complex-type graph: a primitive, an
// array of one element type, or a struct with an ordered member list. Types
// reference each other only through ids (never direct pointers) so the
// traversal in internal/extractor can hold the graph in a flat map.
type ComplexDataType struct {
	Kind           ComplexDataTypeKind
	ElementTypeID  uint32   // valid when Kind == ComplexTypeArray
	MemberTypeIDs  []uint32 // valid when Kind == ComplexTypeStruct, ordered
}
