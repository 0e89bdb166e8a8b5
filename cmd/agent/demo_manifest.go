package main

import (
	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/caninterface"
	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/manifest"
	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/wireformat"
)

// demoManifest builds a small in-memory manifest (signal 7 on "can0",
// frame 0x100) so the agent has something to extract on startup. Loading
// a manifest from an external decoder-config catalog is out of scope here
// (spec §1); a real deployment swaps this Builder-based snapshot for one
// populated from that catalog between passes.
func demoManifest(translator *caninterface.Registry) *manifest.Snapshot {
	translator.Register("can0")

	return manifest.NewBuilder().
		WithCanSignal(7, 0x100, "can0", wireformat.CanMessageFormat{
			MessageID:   0x100,
			SizeInBytes: 8,
			Signals: []wireformat.CanSignalFormat{
				{SignalID: 7, FirstBitPosition: 0, SizeInBits: 16, Factor: 1, Offset: 0},
			},
		}).
		Build()
}
