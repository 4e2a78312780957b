package joker

import "strings"

// Capabilities is the set of optional interfaces a joker implements.
type Capabilities uint8

const (
	CapGameplay Capabilities = 1 << iota
	CapModifiers
	CapLifecycle
	CapState
	CapEvents
)

// Has reports whether every capability in c2 is present.
func (c Capabilities) Has(c2 Capabilities) bool {
	return c&c2 == c2
}

func (c Capabilities) String() string {
	if c == 0 {
		return "legacy"
	}
	names := make([]string, 0, 5)
	for _, p := range []struct {
		c    Capabilities
		name string
	}{
		{CapGameplay, "gameplay"},
		{CapModifiers, "modifiers"},
		{CapLifecycle, "lifecycle"},
		{CapState, "state"},
		{CapEvents, "events"},
	} {
		if c.Has(p.c) {
			names = append(names, p.name)
		}
	}
	return strings.Join(names, "|")
}

// Shaped is implemented by wrappers whose capability set depends on the
// value they wrap rather than on their Go type. CapabilityKey must be stable
// for all values that report the same Capabilities.
type Shaped interface {
	CapabilityKey() string
	Capabilities() Capabilities
}

// Probe detects the capabilities of j by type assertion.
func Probe(j Joker) Capabilities {
	if s, ok := j.(Shaped); ok {
		return s.Capabilities()
	}

	var c Capabilities
	if _, ok := j.(Gameplay); ok {
		c |= CapGameplay
	}
	if _, ok := j.(Modifiers); ok {
		c |= CapModifiers
	}
	if _, ok := j.(Lifecycle); ok {
		c |= CapLifecycle
	}
	if _, ok := j.(Stateful); ok {
		c |= CapState
	}
	if _, ok := j.(EventListener); ok {
		c |= CapEvents
	}
	return c
}
