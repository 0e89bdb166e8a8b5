package dictionary

import "github.com/thomas-roos/aws-iot-fleetwise-edge/internal/wireformat"

// Dictionaries is the extractor's output: one slot per supported protocol
// tag, always present even when the scheme set never populated it (spec
// P2). This is the tagged-variant alternative to a class hierarchy plus
// downcasts (spec §9 Design Notes): CanRaw and OBD are *CanDecoderDictionary,
// ComplexData is *ComplexDataDecoderDictionary, and a nil field means
// "absent", never a type that fails to assert.
type Dictionaries struct {
	CanRaw      *CanDecoderDictionary
	OBD         *CanDecoderDictionary
	ComplexData *ComplexDataDecoderDictionary
}

// NewDictionaries returns a Dictionaries value with every slot absent
// (spec §4.4 step 1). Lazy creation happens as the extractor encounters
// the first signal for a given protocol.
func NewDictionaries() *Dictionaries {
	return &Dictionaries{}
}

// EnsureCanRaw lazily creates the RAW-SOCKET dictionary.
func (d *Dictionaries) EnsureCanRaw() *CanDecoderDictionary {
	if d.CanRaw == nil {
		d.CanRaw = NewCanDecoderDictionary()
	}
	return d.CanRaw
}

// EnsureOBD lazily creates the OBD dictionary.
func (d *Dictionaries) EnsureOBD() *CanDecoderDictionary {
	if d.OBD == nil {
		d.OBD = NewCanDecoderDictionary()
	}
	return d.OBD
}

// EnsureComplexData lazily creates the complex-data dictionary.
func (d *Dictionaries) EnsureComplexData() *ComplexDataDecoderDictionary {
	if d.ComplexData == nil {
		d.ComplexData = NewComplexDataDecoderDictionary()
	}
	return d.ComplexData
}

// ForEachProtocol invokes fn once per supported protocol tag with the
// dictionary for that tag (nil if absent), regardless of which protocols
// any scheme actually used — used by the notifier to satisfy spec P9.
func (d *Dictionaries) ForEachProtocol(fn func(tag wireformat.ProtocolTag, dict interface{})) {
	fn(wireformat.ProtocolCanRaw, wrapOrNil(d.CanRaw))
	fn(wireformat.ProtocolOBD, wrapOrNil(d.OBD))
	fn(wireformat.ProtocolComplexData, wrapOrNil(d.ComplexData))
}

func wrapOrNil[T any](v *T) interface{} {
	if v == nil {
		return nil
	}
	return v
}
