// Package notifier broadcasts newly-extracted decoder dictionaries to
// registered consumers, one call per supported protocol tag, on every
// successful extraction pass (spec §4.6, §6). It is grounded on the
// teacher's NotificationManager
// (app/siem/notifications/manager.go): a mutex-guarded registry of named
// listeners, reworked from "alert fan-out" to "dictionary-change fan-out".
package notifier

import (
	"log"
	"sync"

	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/dictionary"
	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/wireformat"
)

// Listener is the ActiveDecoderDictionaryListener capability of spec §6:
// consumers implement one method and register/unregister outside an
// extraction pass.
type Listener interface {
	// Name identifies the listener for registration bookkeeping.
	Name() string
	// OnChangeOfActiveDictionary is called once per protocol tag, per
	// pass. dict is nil when the protocol's dictionary is absent.
	OnChangeOfActiveDictionary(tag wireformat.ProtocolTag, dict interface{})
}

// Registry manages registered listeners and fans out a Dictionaries value
// to all of them.
type Registry struct {
	mu        sync.Mutex
	listeners map[string]Listener
}

// NewRegistry creates an empty listener registry.
func NewRegistry() *Registry {
	return &Registry{listeners: make(map[string]Listener)}
}

// Register adds a listener. Re-registering under the same name replaces
// the previous listener.
func (r *Registry) Register(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listeners[l.Name()] = l
	log.Printf("registered decoder dictionary listener: %s", l.Name())
}

// Unregister removes a listener by name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.listeners, name)
	log.Printf("unregistered decoder dictionary listener: %s", name)
}

// Names returns the names of all currently registered listeners.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.listeners))
	for name := range r.listeners {
		names = append(names, name)
	}
	return names
}

// NotifyAll fans dicts out to every listener registered at the moment this
// call started, once per protocol tag (spec P9). Delivery order across
// protocols and across listeners is unspecified, but every listener
// snapshotted here is invoked before NotifyAll returns — this call is
// synchronous within the caller's goroutine (spec §4.6).
func (r *Registry) NotifyAll(dicts *dictionary.Dictionaries) {
	r.mu.Lock()
	snapshot := make([]Listener, 0, len(r.listeners))
	for _, l := range r.listeners {
		snapshot = append(snapshot, l)
	}
	r.mu.Unlock()

	dicts.ForEachProtocol(func(tag wireformat.ProtocolTag, dict interface{}) {
		for _, l := range snapshot {
			l.OnChangeOfActiveDictionary(tag, dict)
		}
	})
}
