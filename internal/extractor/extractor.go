// Package extractor implements the join point between collection schemes
// (intent) and the decoder manifest (format): the core algorithm of spec.md
// §4.4 that produces per-protocol decoder dictionaries.
package extractor

import (
	"sort"

	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/caninterface"
	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/dictionary"
	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/manifest"
	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/scheme"
	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/signalid"
	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/wireformat"
)

// obdChannel is the synthetic channel every OBD signal shares (spec
// §4.4.2).
const obdChannel = caninterface.ChannelID(0)

// Extractor runs one extraction pass at a time against a fixed manifest and
// translator. It holds no scheme state between passes — the caller hands
// in a fresh, stable snapshot of enabled schemes each time (spec §5).
type Extractor struct {
	Manifest   manifest.Manifest
	Translator caninterface.Translator
	Log        Logger
}

// New builds an Extractor. A nil Logger defaults to the stdlib-backed one.
func New(m manifest.Manifest, translator caninterface.Translator, log Logger) *Extractor {
	if log == nil {
		log = NewStdLogger()
	}
	return &Extractor{Manifest: m, Translator: translator, Log: log}
}

// Extract runs one pass over enabledSchemes and returns a fresh
// Dictionaries value (spec §4.4). Scheme iteration is ordered by scheme id
// ascending so that, for a fixed input, repeated passes are byte-for-byte
// identical (spec P1) — including which scheme wins a first-root-wins
// conflict (spec §5, P8) — even though the caller's map has no iteration
// order of its own.
func (e *Extractor) Extract(enabledSchemes map[uint64]*scheme.Scheme) *dictionary.Dictionaries {
	dicts := dictionary.NewDictionaries()

	ids := make([]uint64, 0, len(enabledSchemes))
	for id := range enabledSchemes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		sch := enabledSchemes[id]
		e.extractScheme(dicts, sch)
	}

	return dicts
}

func (e *Extractor) extractScheme(dicts *dictionary.Dictionaries, sch *scheme.Scheme) {
	for _, sigInfo := range sch.CollectSignals {
		e.extractSignal(dicts, sch, sigInfo)
	}

	for _, frame := range sch.CollectRawCanFrames {
		e.extractRawFrame(dicts, frame)
	}
}

func (e *Extractor) extractSignal(dicts *dictionary.Dictionaries, sch *scheme.Scheme, sigInfo scheme.SignalInfo) {
	originalSID := sigInfo.SignalID
	sid := originalSID
	var path scheme.SignalPath

	if signalid.IsPartial(sid) {
		fullID, resolvedPath, ok := signalid.Resolve(sid, sch)
		if !ok {
			e.Log.Warnf("scheme %d: unknown partial signal id %#x, skipping", sch.ID, sid)
			sid = signalid.Invalid
		} else {
			sid = fullID
			path = resolvedPath
		}
	}

	proto := e.Manifest.ProtocolOf(sid)
	if proto == wireformat.ProtocolInvalid {
		e.Log.Warnf("scheme %d: signal %#x has invalid protocol, skipping", sch.ID, sid)
		return
	}

	switch proto {
	case wireformat.ProtocolCanRaw:
		e.dispatchCanRaw(dicts.EnsureCanRaw(), sid)
	case wireformat.ProtocolOBD:
		e.dispatchOBD(dicts.EnsureOBD(), sid, originalSID)
	case wireformat.ProtocolComplexData:
		e.dispatchComplexData(dicts.EnsureComplexData(), sid, originalSID, path)
	default:
		e.Log.Errorf("scheme %d: signal %#x has unrecognized protocol tag %v, skipping", sch.ID, sid, proto)
	}
}

// dispatchCanRaw implements spec §4.4.1.
func (e *Extractor) dispatchCanRaw(dict *dictionary.CanDecoderDictionary, sid uint32) {
	ref, ok := e.Manifest.CanFrameOf(sid)
	if !ok {
		e.Log.Warnf("signal %#x: no CAN frame registered in manifest, skipping", sid)
		return
	}

	channel := e.Translator.ChannelIDOf(ref.Interface)
	if channel == caninterface.InvalidChannel {
		e.Log.Warnf("signal %#x: unknown CAN interface %q, skipping", sid, ref.Interface)
		return
	}

	dict.CollectSignalID(sid)

	format, ok := e.Manifest.CanMessageFormat(ref.RawFrameID, ref.Interface)
	if !ok {
		e.Log.Warnf("signal %#x: no CAN message format for frame %#x on %q, skipping", sid, ref.RawFrameID, ref.Interface)
		return
	}
	dict.InsertDecodedFrame(channel, ref.RawFrameID, format)
}

// dispatchOBD implements spec §4.4.2. sid is the post-resolution id used to
// query the manifest; originalSID is the pre-resolution id spec §9's Open
// Question says the source preserves in the per-signal CanSignalFormat.
func (e *Extractor) dispatchOBD(dict *dictionary.CanDecoderDictionary, sid uint32, originalSID uint32) {
	pidFormat, ok := e.Manifest.PidFormat(sid)
	if !ok {
		e.Log.Warnf("signal %#x: no PID format registered in manifest, skipping", sid)
		return
	}

	dict.CollectSignalID(sid)

	signal := wireformat.CanSignalFormat{
		SignalID:         originalSID,
		FirstBitPosition: pidFormat.StartByte*8 + pidFormat.BitRightShift,
		SizeInBits:       (pidFormat.ByteLength-1)*8 + pidFormat.BitMaskLength,
		Factor:           pidFormat.Scaling,
		Offset:           pidFormat.Offset,
	}
	dict.InsertOBDSignal(obdChannel, pidFormat.PID, pidFormat.ExpectedResponseLength, signal)
}

// dispatchComplexData implements spec §4.4.3 and §4.5. sid is the
// post-resolution full signal id used to look up the manifest and become
// the entry's SignalID; originalSID is the (possibly partial) id the
// scheme actually referenced, which is what signal_paths records alongside
// the path (scenario 5/6 of spec §8 key on the partial id, not the
// resolved parent id).
func (e *Extractor) dispatchComplexData(dict *dictionary.ComplexDataDecoderDictionary, sid uint32, originalSID uint32, path scheme.SignalPath) {
	if sid == signalid.Invalid {
		return
	}

	ref, ok := e.Manifest.ComplexSignalOf(sid)
	if !ok {
		e.Log.Warnf("signal %#x: no complex-data registration in manifest, skipping", sid)
		return
	}
	if ref.InterfaceID == "" {
		e.Log.Warnf("signal %#x: empty complex interface id, skipping", sid)
		return
	}

	entry, existed := dict.Entry(ref.InterfaceID, ref.MessageID)
	if !existed {
		entry.SignalID = sid
		entry.RootTypeID = ref.RootTypeID
		traverseComplexType(entry, ref.RootTypeID, e.Manifest, e.Log)
	} else if entry.RootTypeID != ref.RootTypeID {
		e.Log.Warnf("signal %#x: (%s, %s) already has root type %d, ignoring differing root %d",
			sid, ref.InterfaceID, ref.MessageID, entry.RootTypeID, ref.RootTypeID)
	}

	entry.InsertPath(path, originalSID)
}

// extractRawFrame implements spec §4.4 step 2.2.
func (e *Extractor) extractRawFrame(dicts *dictionary.Dictionaries, frame scheme.RawCanFrameInfo) {
	channel := e.Translator.ChannelIDOf(frame.Interface)
	if channel == caninterface.InvalidChannel {
		e.Log.Warnf("raw CAN frame %#x: unknown interface %q, skipping", frame.FrameID, frame.Interface)
		return
	}

	dicts.EnsureCanRaw().InsertRawFrame(channel, frame.FrameID)
}
