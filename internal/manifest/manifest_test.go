package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/wireformat"
)

func TestBuilder_WithCanSignal(t *testing.T) {
	format := wireformat.CanMessageFormat{
		MessageID:   0x100,
		SizeInBytes: 8,
		Signals: []wireformat.CanSignalFormat{
			{SignalID: 7, FirstBitPosition: 0, SizeInBits: 16},
		},
	}

	snap := NewBuilder().WithCanSignal(7, 0x100, "can0", format).Build()

	assert.Equal(t, wireformat.ProtocolCanRaw, snap.ProtocolOf(7))

	ref, ok := snap.CanFrameOf(7)
	assert.True(t, ok)
	assert.Equal(t, CanFrameRef{RawFrameID: 0x100, Interface: "can0"}, ref)

	got, ok := snap.CanMessageFormat(0x100, "can0")
	assert.True(t, ok)
	assert.Equal(t, format, got)
}

func TestBuilder_WithOBDSignal(t *testing.T) {
	pid := wireformat.PidDecoderFormat{PID: 0x0C, StartByte: 3, ByteLength: 2}

	snap := NewBuilder().WithOBDSignal(500, pid).Build()

	assert.Equal(t, wireformat.ProtocolOBD, snap.ProtocolOf(500))
	got, ok := snap.PidFormat(500)
	assert.True(t, ok)
	assert.Equal(t, pid, got)
}

func TestBuilder_WithComplexSignal(t *testing.T) {
	ref := ComplexSignalRef{InterfaceID: "ros_iface", MessageID: "ImuMessage", RootTypeID: 1}

	snap := NewBuilder().
		WithComplexType(1, wireformat.ComplexDataType{Kind: wireformat.ComplexTypePrimitive}).
		WithComplexSignal(200, ref).
		Build()

	assert.Equal(t, wireformat.ProtocolComplexData, snap.ProtocolOf(200))
	got, ok := snap.ComplexSignalOf(200)
	assert.True(t, ok)
	assert.Equal(t, ref, got)

	typ, ok := snap.ComplexType(1)
	assert.True(t, ok)
	assert.Equal(t, wireformat.ComplexTypePrimitive, typ.Kind)
}

func TestBuilder_WithInvalidSignal(t *testing.T) {
	snap := NewBuilder().WithInvalidSignal(999).Build()

	assert.Equal(t, wireformat.ProtocolInvalid, snap.ProtocolOf(999))
}

func TestSnapshot_UnknownSignalIsInvalid(t *testing.T) {
	snap := NewBuilder().Build()

	assert.Equal(t, wireformat.ProtocolInvalid, snap.ProtocolOf(12345))

	_, ok := snap.CanFrameOf(12345)
	assert.False(t, ok)
}
