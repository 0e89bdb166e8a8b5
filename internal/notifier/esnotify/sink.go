// Package esnotify adapts the Elasticsearch client the teacher repo
// declared in go.mod but never actually called (app/siem/elasticsearch
// ships a hand-rolled net/http wrapper instead) into a genuine
// notifier.Listener: every dictionary-change event is indexed for
// fleet-wide diagnostics, grounded on the connect-retry/mutex shape of
// app/siem/elasticsearch/service.go.
package esnotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/dictionary"
	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/wireformat"
)

// Sink indexes one document per (protocol, pass) into Elasticsearch. It
// implements notifier.Listener without importing that package directly,
// to keep this optional consumer decoupled from the registry.
type Sink struct {
	client      *elasticsearch.Client
	index       string
	mu          sync.Mutex
	initialized bool
}

// NewSink builds a Sink pointed at addr, targeting the given index.
func NewSink(addr, index string) (*Sink, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("esnotify: failed to build client: %w", err)
	}
	return &Sink{client: client, index: index}, nil
}

// Initialize verifies connectivity, retrying a handful of times the way
// app/siem/elasticsearch/service.go's Initialize does before giving up.
func (s *Sink) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	const maxRetries = 5
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		res, err := s.client.Info(s.client.Info.WithContext(ctx))
		if err == nil {
			res.Body.Close()
			s.initialized = true
			return nil
		}
		lastErr = err
		log.Printf("esnotify: elasticsearch not reachable yet, retrying (%d/%d): %v", i+1, maxRetries, err)
		time.Sleep(time.Second)
	}

	return fmt.Errorf("esnotify: failed to reach elasticsearch after %d attempts: %w", maxRetries, lastErr)
}

// Name identifies this listener in the notifier registry.
func (s *Sink) Name() string { return "elasticsearch-dictionary-sink" }

// dictionaryChangeDoc is the document indexed per protocol per pass.
type dictionaryChangeDoc struct {
	Timestamp  time.Time `json:"timestamp"`
	Protocol   string    `json:"protocol"`
	Present    bool      `json:"present"`
	ChannelCount int     `json:"channel_count,omitempty"`
	FrameCount   int     `json:"frame_count,omitempty"`
	SignalCount  int     `json:"signal_count,omitempty"`
	InterfaceCount int   `json:"interface_count,omitempty"`
}

// OnChangeOfActiveDictionary implements notifier.Listener. It builds a
// small summary document — counts, not raw signal payloads, since this is
// a fleet observability sink, not a data-collection surface — and indexes
// it. Errors are logged, never propagated: a notifier consumer must not
// be able to fail an extraction pass (spec §4.6/§7 apply the same "total,
// never aborts" posture to the whole pipeline).
func (s *Sink) OnChangeOfActiveDictionary(tag wireformat.ProtocolTag, dict interface{}) {
	doc := dictionaryChangeDoc{
		Timestamp: time.Now(),
		Protocol:  tag.String(),
		Present:   dict != nil,
	}

	switch d := dict.(type) {
	case *dictionary.CanDecoderDictionary:
		doc.ChannelCount = len(d.Channels())
		doc.SignalCount = len(d.SignalIDsToCollect())
		doc.FrameCount = d.FrameCount()
	case *dictionary.ComplexDataDecoderDictionary:
		doc.InterfaceCount = len(d.Interfaces())
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		log.Printf("esnotify: failed to encode document: %v", err)
		return
	}

	req := esapi.IndexRequest{
		Index:   s.index,
		Body:    &buf,
		Refresh: "false",
	}
	res, err := req.Do(context.Background(), s.client)
	if err != nil {
		log.Printf("esnotify: failed to index dictionary-change document: %v", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("esnotify: elasticsearch returned an error indexing dictionary-change document: %s", res.String())
	}
}
