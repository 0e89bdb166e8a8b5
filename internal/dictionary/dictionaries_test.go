package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/wireformat"
)

func TestDictionaries_EnsureIsLazyAndIdempotent(t *testing.T) {
	d := NewDictionaries()
	assert.Nil(t, d.CanRaw)

	first := d.EnsureCanRaw()
	second := d.EnsureCanRaw()

	assert.NotNil(t, d.CanRaw)
	assert.Same(t, first, second)
}

func TestDictionaries_ForEachProtocolAlwaysVisitsAllThree(t *testing.T) {
	d := NewDictionaries()
	d.EnsureOBD()

	seen := make(map[wireformat.ProtocolTag]bool)
	var obdPresent bool
	d.ForEachProtocol(func(tag wireformat.ProtocolTag, dict interface{}) {
		seen[tag] = true
		if tag == wireformat.ProtocolOBD {
			obdPresent = dict != nil
		}
		if tag == wireformat.ProtocolCanRaw {
			assert.Nil(t, dict)
		}
	})

	assert.Len(t, seen, 3)
	assert.True(t, obdPresent)
}
