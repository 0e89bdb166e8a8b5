package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/dictionary"
	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/wireformat"
)

type spyListener struct {
	name  string
	calls []wireformat.ProtocolTag
}

func (s *spyListener) Name() string { return s.name }
func (s *spyListener) OnChangeOfActiveDictionary(tag wireformat.ProtocolTag, dict interface{}) {
	s.calls = append(s.calls, tag)
}

// P9: every registered listener is called once per protocol tag, even for
// protocols the pass never populated.
func TestRegistry_NotifyAllIsTotalAcrossProtocols(t *testing.T) {
	r := NewRegistry()
	l := &spyListener{name: "l1"}
	r.Register(l)

	dicts := dictionary.NewDictionaries()
	dicts.EnsureCanRaw()

	r.NotifyAll(dicts)

	assert.Len(t, l.calls, len(wireformat.AllProtocols))
}

func TestRegistry_RegisterReplacesSameName(t *testing.T) {
	r := NewRegistry()
	first := &spyListener{name: "dup"}
	second := &spyListener{name: "dup"}
	r.Register(first)
	r.Register(second)

	r.NotifyAll(dictionary.NewDictionaries())

	assert.Empty(t, first.calls)
	assert.NotEmpty(t, second.calls)
}

func TestRegistry_Unregister(t *testing.T) {
	r := NewRegistry()
	l := &spyListener{name: "l1"}
	r.Register(l)
	r.Unregister("l1")

	r.NotifyAll(dictionary.NewDictionaries())

	assert.Empty(t, l.calls)
	assert.Empty(t, r.Names())
}

func TestRegistry_NamesReflectsRegisteredListeners(t *testing.T) {
	r := NewRegistry()
	r.Register(&spyListener{name: "a"})
	r.Register(&spyListener{name: "b"})

	names := r.Names()

	require.Len(t, names, 2)
	assert.ElementsMatch(t, []string{"a", "b"}, names)
}
