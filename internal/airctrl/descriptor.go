package airctrl

import (
	"strings"
	"time"
)

// RawStatus is a decoded device status map. JSON numbers arrive as float64,
// everything else as string or bool. Keys and value encodings differ per
// firmware generation, the Descriptor is what gives them meaning.
type RawStatus = map[string]any

// Pattern is a set of raw key/value assertions. A pattern matches a status
// when every entry compares equal to the status value under the same key.
type Pattern map[string]any

// Mode binds a user facing mode name to the raw pattern that encodes it.
type Mode struct {
	Name    string
	Pattern Pattern
}

// ModeList is an ordered mode table. Declaration order is priority order:
// projection picks the first fully matching entry, so broader patterns must
// come after the more specific ones that shadow them.
type ModeList []Mode

func (l ModeList) find(name string) (Mode, bool) {
	for _, m := range l {
		if m.Name == name {
			return m, true
		}
	}
	return Mode{}, false
}

// Names returns the mode names in declaration order.
func (l ModeList) Names() []string {
	names := make([]string, 0, len(l))
	for _, m := range l {
		names = append(names, m.Name)
	}
	return names
}

// Transform post-processes a raw attribute value. The full status is passed
// for the rare attribute that is derived from more than one key.
type Transform func(value any, status RawStatus) any

// Attribute declares one extra state attribute: which raw key feeds it, an
// optional discrete label map and an optional transform. RawKey may carry a
// "#n" disambiguation marker which is stripped before the status lookup.
type Attribute struct {
	Name      string
	RawKey    string
	ValueMap  map[any]string
	Transform Transform
}

// KeyReplace substitutes one pattern key with another raw key when matching
// a status. Some models report a setting under a different key than the one
// it is written to, so projection reads the reported key while writes keep
// the declared pattern.
type KeyReplace struct {
	From string
	To   string
}

// Oscillation describes the oscillation register of a model. Any value other
// than Off projects as oscillating. On is the value written to enable it when
// the model has no angle map, OnMap the named angle values when it does.
type Oscillation struct {
	Key   string
	Off   any
	On    any
	OnMap map[string]any
}

// SequencedWrite configures the staged command strategy used by models whose
// firmware ignores mode writes unless the device is powered on and, for some
// transitions, already in manual mode. Each stage settles for SettleDelay
// before the next write.
type SequencedWrite struct {
	ModeKey          string
	ManualValue      any
	IntermediateMode string
	SettleDelay      time.Duration
}

// Descriptor is the fully composed capability description of one device
// model. Descriptors are built once at registry construction and never
// mutated afterwards, so they are safe to share between goroutines.
type Descriptor struct {
	Model string

	PowerKey string
	PowerOn  any
	PowerOff any

	PresetModes ModeList
	Speeds      ModeList

	// ReplacePreset/ReplaceSpeed apply a key substitution to the lookup key
	// when projecting. Writes always use the declared pattern unchanged.
	ReplacePreset *KeyReplace
	ReplaceSpeed  *KeyReplace

	Oscillation *Oscillation
	Sequenced   *SequencedWrite

	Attributes []Attribute

	// Entity hints for the MQTT discovery layer.
	CreateFan          bool
	Humidifier         bool
	Heater             bool
	Switches           []string
	Lights             []string
	Numbers            []string
	Selects            []string
	BinarySensors      []string
	UnavailableFilters []string
	UnavailableSensors []string
}

// HasPreset reports whether the model declares the named preset.
func (d *Descriptor) HasPreset(name string) bool {
	_, ok := d.PresetModes.find(name)
	return ok
}

// statusKey strips the "#n" disambiguation marker from a declared raw key.
func statusKey(key string) string {
	if i := strings.IndexByte(key, '#'); i >= 0 {
		return key[:i]
	}
	return key
}

// rawEqual compares a declared pattern value with a decoded status value.
// JSON decoding turns every number into float64 while declarations use
// untyped int constants, so numeric kinds are normalized before comparing.
func rawEqual(a, b any) bool {
	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		return ok && af == bf
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	}
	return 0, false
}

// matches reports whether every pattern entry equals the status value under
// the same key, after applying the optional key substitution.
func (p Pattern) matches(status RawStatus, repl *KeyReplace) bool {
	if len(p) == 0 {
		return false
	}
	for key, want := range p {
		key = replaceKey(key, repl)
		got, ok := status[key]
		if !ok || !rawEqual(want, got) {
			return false
		}
	}
	return true
}

// batch copies the pattern into a write set.
func (p Pattern) batch() RawStatus {
	out := make(RawStatus, len(p))
	for key, value := range p {
		out[key] = value
	}
	return out
}

func replaceKey(key string, repl *KeyReplace) string {
	if repl != nil && key == repl.From {
		return repl.To
	}
	return key
}
