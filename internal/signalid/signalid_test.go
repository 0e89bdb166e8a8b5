package signalid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/scheme"
)

func TestIsPartial(t *testing.T) {
	assert.False(t, IsPartial(7))
	assert.False(t, IsPartial(0x7FFFFFFF))
	assert.True(t, IsPartial(0x80000001))
	assert.True(t, IsPartial(InternalBitmask))
}

func TestResolve_FullID(t *testing.T) {
	sch := scheme.NewScheme(1)

	full, path, ok := Resolve(200, sch)

	assert.True(t, ok)
	assert.Equal(t, uint32(200), full)
	assert.Nil(t, path)
}

func TestResolve_PartialKnown(t *testing.T) {
	sch := scheme.NewScheme(1)
	sch.AddPartialSignal(0x80000001, 200, scheme.SignalPath{0, 15, 1})

	full, path, ok := Resolve(0x80000001, sch)

	assert.True(t, ok)
	assert.Equal(t, uint32(200), full)
	assert.Equal(t, scheme.SignalPath{0, 15, 1}, path)
}

func TestResolve_PartialUnknown(t *testing.T) {
	sch := scheme.NewScheme(1)

	full, path, ok := Resolve(0x80000002, sch)

	assert.False(t, ok)
	assert.Equal(t, Invalid, full)
	assert.Nil(t, path)
}
