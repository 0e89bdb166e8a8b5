// Package dictionary holds the decoder dictionary model: the per-protocol
// data structures downstream CAN, OBD, and complex-data network consumers
// use to decide what to extract from each incoming frame. Dictionaries are
// built fresh on every extraction pass and handed out as read-only
// snapshots (spec §3 "Lifecycle").
package dictionary

import (
	"sort"

	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/caninterface"
	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/wireformat"
)

// MaxComplexTypes bounds the transitive closure walked for any one complex
// signal (spec §4.5, §9 Open Question 2: overflow truncates without failing
// the pass — the partial graph still decodes what it has — and the traversal
// logs a single warning).
const MaxComplexTypes = 4096

// InvalidSignalID marks a ComplexDataMessageFormat whose SignalID has not
// yet been assigned by a first accepted reference.
const InvalidSignalID uint32 = 0xFFFFFFFF

// CollectType is the capture mode of one CAN/OBD frame entry.
type CollectType int

const (
	// Decode means at least one signal of the frame is decoded; no raw
	// passthrough was requested.
	Decode CollectType = iota
	// Raw means passthrough was requested with no per-signal decoding.
	Raw
	// RawAndDecode means both. Monotonic: once reached, an entry never
	// regresses to Decode or Raw (spec P3).
	RawAndDecode
)

func (c CollectType) String() string {
	switch c {
	case Decode:
		return "DECODE"
	case Raw:
		return "RAW"
	case RawAndDecode:
		return "RAW_AND_DECODE"
	default:
		return "UNKNOWN"
	}
}

// CanMessageDecoderMethod is one (channel, frame-or-PID) entry.
type CanMessageDecoderMethod struct {
	CollectType CollectType
	Format      wireformat.CanMessageFormat
}

// CanDecoderDictionary is the two-level CAN/OBD dictionary described in
// spec §3: channel id, then raw frame id (or PID, for OBD, which occupies
// the same slot).
type CanDecoderDictionary struct {
	channels           map[caninterface.ChannelID]map[uint32]*CanMessageDecoderMethod
	signalIDsToCollect map[uint32]struct{}
}

// NewCanDecoderDictionary returns an empty dictionary.
func NewCanDecoderDictionary() *CanDecoderDictionary {
	return &CanDecoderDictionary{
		channels:           make(map[caninterface.ChannelID]map[uint32]*CanMessageDecoderMethod),
		signalIDsToCollect: make(map[uint32]struct{}),
	}
}

// CollectSignalID records that signalID is to be collected by this
// dictionary (spec P5). Idempotent.
func (d *CanDecoderDictionary) CollectSignalID(signalID uint32) {
	d.signalIDsToCollect[signalID] = struct{}{}
}

// SignalIDsToCollect returns the set of signal ids collected by this
// dictionary. The returned map must be treated as read-only by callers.
func (d *CanDecoderDictionary) SignalIDsToCollect() map[uint32]struct{} {
	return d.signalIDsToCollect
}

// Channels returns the channel ids present in this dictionary (spec
// invariant: "a channel id appears iff at least one frame under it
// exists").
func (d *CanDecoderDictionary) Channels() []caninterface.ChannelID {
	ids := make([]caninterface.ChannelID, 0, len(d.channels))
	for id := range d.channels {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// FrameCount returns the total number of (channel, frame-or-PID) entries
// across the whole dictionary, used by diagnostics consumers that only
// need a summary count rather than the full structure.
func (d *CanDecoderDictionary) FrameCount() int {
	total := 0
	for _, frames := range d.channels {
		total += len(frames)
	}
	return total
}

// FramesOnChannel returns the frame-or-PID keys registered under channel.
func (d *CanDecoderDictionary) FramesOnChannel(channel caninterface.ChannelID) []uint32 {
	frames, ok := d.channels[channel]
	if !ok {
		return nil
	}
	ids := make([]uint32, 0, len(frames))
	for id := range frames {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Frame returns the entry for (channel, frameOrPID), if any.
func (d *CanDecoderDictionary) Frame(channel caninterface.ChannelID, frameOrPID uint32) (*CanMessageDecoderMethod, bool) {
	frames, ok := d.channels[channel]
	if !ok {
		return nil, false
	}
	entry, ok := frames[frameOrPID]
	return entry, ok
}

// ensureChannel returns the frame map for channel, creating it if absent.
func (d *CanDecoderDictionary) ensureChannel(channel caninterface.ChannelID) map[uint32]*CanMessageDecoderMethod {
	frames, ok := d.channels[channel]
	if !ok {
		frames = make(map[uint32]*CanMessageDecoderMethod)
		d.channels[channel] = frames
	}
	return frames
}

// getOrCreateFrame returns the existing entry for (channel, frameOrPID), or
// creates one with the given initial collect type and format if absent.
// This collapses the teacher source's redundant emplace/find pair for the
// OBD channel-0 slot into one call site (spec §9 Open Question 3) without
// changing behavior.
func (d *CanDecoderDictionary) getOrCreateFrame(channel caninterface.ChannelID, frameOrPID uint32, initial CanMessageDecoderMethod) (*CanMessageDecoderMethod, bool) {
	frames := d.ensureChannel(channel)
	entry, existed := frames[frameOrPID]
	if !existed {
		entry = &CanMessageDecoderMethod{CollectType: initial.CollectType, Format: initial.Format}
		frames[frameOrPID] = entry
	}
	return entry, existed
}

// InsertRawFrame implements the spec §4.4 step 2.2 raw-CAN-frame merge: if
// the (channel, frame) slot is empty it is created as RAW; a DECODE slot is
// upgraded to RAW_AND_DECODE; RAW and RAW_AND_DECODE slots are untouched.
func (d *CanDecoderDictionary) InsertRawFrame(channel caninterface.ChannelID, frameID uint32) {
	entry, existed := d.getOrCreateFrame(channel, frameID, CanMessageDecoderMethod{CollectType: Raw})
	if !existed {
		return
	}
	if entry.CollectType == Decode {
		entry.CollectType = RawAndDecode
	}
}

// InsertDecodedFrame implements the RAW-SOCKET dispatch of spec §4.4.1: a
// missing slot is created as DECODE seeded with format; a RAW slot is
// upgraded to RAW_AND_DECODE and its format (re)loaded from the manifest
// (raw-only inserts never populate a format); DECODE and RAW_AND_DECODE
// slots are left untouched — their format already lists the frame's
// signals.
func (d *CanDecoderDictionary) InsertDecodedFrame(channel caninterface.ChannelID, frameID uint32, format wireformat.CanMessageFormat) {
	entry, existed := d.getOrCreateFrame(channel, frameID, CanMessageDecoderMethod{CollectType: Decode, Format: format})
	if !existed {
		return
	}
	if entry.CollectType == Raw {
		entry.CollectType = RawAndDecode
		entry.Format = format
	}
}

// InsertOBDSignal implements the OBD dispatch of spec §4.4.2. The PID slot
// occupies the same frameOrPID key space CAN raw frame ids use, on the
// synthetic channel 0. A fresh slot is seeded with message_id=pid,
// size_in_bytes=respLen; every call appends one CanSignalFormat.
func (d *CanDecoderDictionary) InsertOBDSignal(channel caninterface.ChannelID, pid uint32, respLen uint32, signal wireformat.CanSignalFormat) {
	entry, _ := d.getOrCreateFrame(channel, pid, CanMessageDecoderMethod{
		CollectType: Decode,
		Format:      wireformat.CanMessageFormat{MessageID: pid, SizeInBytes: respLen},
	})
	entry.Format.Signals = append(entry.Format.Signals, signal)
}
