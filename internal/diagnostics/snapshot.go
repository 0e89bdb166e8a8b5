package diagnostics

import (
	"sync"

	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/dictionary"
	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/wireformat"
)

// ProtocolSummary is the read-only view of one protocol's dictionary
// exposed over HTTP: counts only, never raw signal payloads.
type ProtocolSummary struct {
	Protocol       string `json:"protocol"`
	Present        bool   `json:"present"`
	ChannelCount   int    `json:"channel_count,omitempty"`
	FrameCount     int    `json:"frame_count,omitempty"`
	SignalCount    int    `json:"signal_count,omitempty"`
	InterfaceCount int    `json:"interface_count,omitempty"`
	MessageCount   int    `json:"message_count,omitempty"`
}

// Snapshot is a notifier.Listener that keeps the most recently published
// per-protocol summary in memory for the HTTP handlers to read. It never
// holds the dictionary itself past the call that produced the summary, so
// handlers never race with the next extraction pass writing into it (spec
// §3 "Lifecycle": dictionaries are immutable once emitted, but this keeps
// only derived counts, not even the structure).
type Snapshot struct {
	mu        sync.RWMutex
	summaries map[wireformat.ProtocolTag]ProtocolSummary
}

// NewSnapshot returns an empty Snapshot listener.
func NewSnapshot() *Snapshot {
	return &Snapshot{summaries: make(map[wireformat.ProtocolTag]ProtocolSummary)}
}

// Name implements notifier.Listener.
func (s *Snapshot) Name() string { return "diagnostics-snapshot" }

// OnChangeOfActiveDictionary implements notifier.Listener.
func (s *Snapshot) OnChangeOfActiveDictionary(tag wireformat.ProtocolTag, dict interface{}) {
	summary := ProtocolSummary{Protocol: tag.String(), Present: dict != nil}

	switch d := dict.(type) {
	case *dictionary.CanDecoderDictionary:
		summary.ChannelCount = len(d.Channels())
		summary.FrameCount = d.FrameCount()
		summary.SignalCount = len(d.SignalIDsToCollect())
	case *dictionary.ComplexDataDecoderDictionary:
		interfaces := d.Interfaces()
		summary.InterfaceCount = len(interfaces)
		messages := 0
		for _, iface := range interfaces {
			messages += len(d.Messages(iface))
		}
		summary.MessageCount = messages
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries[tag] = summary
}

// All returns the most recent summary for every protocol tag the extractor
// is aware of, in the same stable order as wireformat.AllProtocols.
func (s *Snapshot) All() []ProtocolSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ProtocolSummary, 0, len(wireformat.AllProtocols))
	for _, tag := range wireformat.AllProtocols {
		if summary, ok := s.summaries[tag]; ok {
			out = append(out, summary)
			continue
		}
		out = append(out, ProtocolSummary{Protocol: tag.String(), Present: false})
	}
	return out
}

// ByProtocol returns the most recent summary for one protocol name
// ("CAN-RAW", "OBD", "COMPLEX-DATA"), case-sensitive to match
// wireformat.ProtocolTag.String().
func (s *Snapshot) ByProtocol(name string) (ProtocolSummary, bool) {
	for _, tag := range wireformat.AllProtocols {
		if tag.String() != name {
			continue
		}
		s.mu.RLock()
		summary, ok := s.summaries[tag]
		s.mu.RUnlock()
		if !ok {
			return ProtocolSummary{Protocol: name, Present: false}, true
		}
		return summary, true
	}
	return ProtocolSummary{}, false
}
