package engine

import (
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/udisondev/balatrogo/internal/joker"
)

// Profile summarizes a capability set for metrics and path selection.
type Profile uint8

const (
	// ProfileLegacyOnly jokers only have the unified callbacks.
	ProfileLegacyOnly Profile = iota
	ProfileGameplay
	ProfileModifier
	ProfileHybrid
	// ProfileFullTrait jokers implement gameplay, modifiers, lifecycle and state.
	ProfileFullTrait
)

func (p Profile) String() string {
	switch p {
	case ProfileLegacyOnly:
		return "legacy_only"
	case ProfileGameplay:
		return "gameplay_optimized"
	case ProfileModifier:
		return "modifier_optimized"
	case ProfileHybrid:
		return "hybrid_optimized"
	case ProfileFullTrait:
		return "full_trait_optimized"
	default:
		return "unknown"
	}
}

// Shape is the memoized classification of a joker type.
type Shape struct {
	Caps    joker.Capabilities
	Profile Profile
}

// Specialized reports whether scoring goes through Gameplay.Process instead
// of the unified callbacks.
func (s Shape) Specialized() bool {
	return s.Caps.Has(joker.CapGameplay)
}

func shapeOf(caps joker.Capabilities) Shape {
	gameplay := caps.Has(joker.CapGameplay)
	mods := caps.Has(joker.CapModifiers)

	p := ProfileLegacyOnly
	switch {
	case gameplay && mods && caps.Has(joker.CapLifecycle|joker.CapState):
		p = ProfileFullTrait
	case gameplay && mods:
		p = ProfileHybrid
	case gameplay:
		p = ProfileGameplay
	case mods:
		p = ProfileModifier
	}
	return Shape{Caps: caps, Profile: p}
}

// Classifier memoizes joker capability shapes per concrete Go type, or per
// CapabilityKey for joker.Shaped wrappers. Safe for concurrent use.
type Classifier struct {
	enabled bool

	mu     sync.RWMutex
	byType map[reflect.Type]Shape
	byKey  map[string]Shape

	coldProbes  atomic.Uint64
	warmHits    atomic.Uint64
	specialized atomic.Uint64
	legacy      atomic.Uint64
}

// NewClassifier creates a classifier. With cacheEnabled false every call
// probes; results are identical, only the metrics differ.
func NewClassifier(cacheEnabled bool) *Classifier {
	return &Classifier{
		enabled: cacheEnabled,
		byType:  make(map[reflect.Type]Shape),
		byKey:   make(map[string]Shape),
	}
}

// CacheEnabled reports whether shapes are memoized.
func (c *Classifier) CacheEnabled() bool {
	return c.enabled
}

// Classify returns the capability shape of j.
func (c *Classifier) Classify(j joker.Joker) Shape {
	if !c.enabled {
		c.coldProbes.Add(1)
		return shapeOf(joker.Probe(j))
	}

	if s, ok := j.(joker.Shaped); ok {
		return c.classifyKeyed(s.CapabilityKey(), j)
	}
	return c.classifyType(reflect.TypeOf(j), j)
}

func (c *Classifier) classifyType(t reflect.Type, j joker.Joker) Shape {
	c.mu.RLock()
	shape, ok := c.byType[t]
	c.mu.RUnlock()
	if ok {
		c.warmHits.Add(1)
		return shape
	}

	shape = shapeOf(joker.Probe(j))
	c.coldProbes.Add(1)

	c.mu.Lock()
	c.byType[t] = shape
	c.mu.Unlock()

	if IsDebugEnabled() {
		slog.Debug("joker type classified", "type", t.String(), "caps", shape.Caps, "profile", shape.Profile)
	}
	return shape
}

func (c *Classifier) classifyKeyed(key string, j joker.Joker) Shape {
	c.mu.RLock()
	shape, ok := c.byKey[key]
	c.mu.RUnlock()
	if ok {
		c.warmHits.Add(1)
		return shape
	}

	shape = shapeOf(joker.Probe(j))
	c.coldProbes.Add(1)

	c.mu.Lock()
	c.byKey[key] = shape
	c.mu.Unlock()

	if IsDebugEnabled() {
		slog.Debug("joker shape classified", "key", key, "caps", shape.Caps, "profile", shape.Profile)
	}
	return shape
}

// recordDispatch counts one evaluation on the given path.
func (c *Classifier) recordDispatch(specialized bool) {
	if specialized {
		c.specialized.Add(1)
	} else {
		c.legacy.Add(1)
	}
}

// ClearCache drops every memoized shape. Counters are kept.
func (c *Classifier) ClearCache() {
	c.mu.Lock()
	clear(c.byType)
	clear(c.byKey)
	c.mu.Unlock()
}

// ResetMetrics zeroes all counters.
func (c *Classifier) ResetMetrics() {
	c.coldProbes.Store(0)
	c.warmHits.Store(0)
	c.specialized.Store(0)
	c.legacy.Store(0)
}

// Metrics returns a snapshot of the counters.
func (c *Classifier) Metrics() Metrics {
	c.mu.RLock()
	cached := len(c.byType) + len(c.byKey)
	c.mu.RUnlock()

	return Metrics{
		ColdProbes:            c.coldProbes.Load(),
		WarmHits:              c.warmHits.Load(),
		SpecializedDispatches: c.specialized.Load(),
		LegacyDispatches:      c.legacy.Load(),
		CachedShapes:          cached,
	}
}
