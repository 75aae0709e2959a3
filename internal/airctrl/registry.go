package airctrl

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedModel is returned by Resolve when no declared family covers
// the model, not even through its family prefix. Callers must treat it as
// fatal for the device: without a descriptor no projection is possible.
var ErrUnsupportedModel = errors.New("unsupported model")

// Family is one declaration in the model tables. A family either stands on
// its own or extends Base, contributing deltas that the registry folds into
// the composed Descriptor. List fields concatenate onto the base, mode
// tables override per name keeping the base position, scalar fields replace
// the inherited value when set.
type Family struct {
	Name string
	Base string

	// abstract families exist only to be extended and never resolve
	// directly to a device model
	Abstract bool

	PowerKey string
	PowerOn  any
	PowerOff any

	PresetModes ModeList
	Speeds      ModeList

	ReplacePreset *KeyReplace
	ReplaceSpeed  *KeyReplace
	Oscillation   *Oscillation
	Sequenced     *SequencedWrite

	Attributes []Attribute

	NoFan      bool
	Humidifier bool
	Heater     bool

	Switches           []string
	Lights             []string
	Numbers            []string
	Selects            []string
	BinarySensors      []string
	UnavailableFilters []string
	UnavailableSensors []string
}

var registry = buildRegistry(allFamilies())

// Resolve finds the composed descriptor for a device. Candidates are tried
// in order: the exact model, the model qualified with the wifi firmware name
// (the part before '@'), and finally the six character family prefix.
func Resolve(model, wifiVersion string) (*Descriptor, error) {
	candidates := []string{model}
	if wifiVersion != "" {
		wifiName, _, _ := strings.Cut(wifiVersion, "@")
		candidates = append(candidates, model+" "+wifiName)
	}
	if len(model) > 6 {
		candidates = append(candidates, model[:6])
	}
	for _, c := range candidates {
		if d, ok := registry[c]; ok {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (wifi %q)", ErrUnsupportedModel, model, wifiVersion)
}

// SupportedModels returns the resolvable model names, for diagnostics.
func SupportedModels() []string {
	models := make([]string, 0, len(registry))
	for name := range registry {
		models = append(models, name)
	}
	return models
}

func buildRegistry(families []Family) map[string]*Descriptor {
	byName := make(map[string]*Family, len(families))
	for i := range families {
		f := &families[i]
		if _, dup := byName[f.Name]; dup {
			panic("airctrl: duplicate family " + f.Name)
		}
		byName[f.Name] = f
	}
	reg := make(map[string]*Descriptor, len(families))
	for i := range families {
		f := &families[i]
		if f.Abstract {
			continue
		}
		reg[f.Name] = compose(f, byName)
	}
	return reg
}

// lineage returns the ancestor chain root first, ending at f.
func lineage(f *Family, byName map[string]*Family) []*Family {
	var chain []*Family
	for cur := f; cur != nil; {
		chain = append(chain, cur)
		if cur.Base == "" {
			break
		}
		base, ok := byName[cur.Base]
		if !ok {
			panic("airctrl: family " + cur.Name + " extends unknown base " + cur.Base)
		}
		for _, seen := range chain {
			if seen == base {
				panic("airctrl: family cycle through " + base.Name)
			}
		}
		cur = base
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

func compose(f *Family, byName map[string]*Family) *Descriptor {
	d := &Descriptor{Model: f.Name, CreateFan: true}
	for _, anc := range lineage(f, byName) {
		if anc.PowerKey != "" {
			d.PowerKey = anc.PowerKey
			d.PowerOn = anc.PowerOn
			d.PowerOff = anc.PowerOff
		}
		d.PresetModes = mergeModes(d.PresetModes, anc.PresetModes)
		d.Speeds = mergeModes(d.Speeds, anc.Speeds)
		if anc.ReplacePreset != nil {
			d.ReplacePreset = anc.ReplacePreset
		}
		if anc.ReplaceSpeed != nil {
			d.ReplaceSpeed = anc.ReplaceSpeed
		}
		if anc.Oscillation != nil {
			d.Oscillation = anc.Oscillation
		}
		if anc.Sequenced != nil {
			d.Sequenced = anc.Sequenced
		}
		d.Attributes = mergeAttributes(d.Attributes, anc.Attributes)
		if anc.NoFan {
			d.CreateFan = false
		}
		if anc.Humidifier {
			d.Humidifier = true
		}
		if anc.Heater {
			d.Heater = true
		}
		d.Switches = appendUnique(d.Switches, anc.Switches)
		d.Lights = appendUnique(d.Lights, anc.Lights)
		d.Numbers = appendUnique(d.Numbers, anc.Numbers)
		d.Selects = appendUnique(d.Selects, anc.Selects)
		d.BinarySensors = appendUnique(d.BinarySensors, anc.BinarySensors)
		d.UnavailableFilters = appendUnique(d.UnavailableFilters, anc.UnavailableFilters)
		d.UnavailableSensors = appendUnique(d.UnavailableSensors, anc.UnavailableSensors)
	}
	return d
}

// mergeModes folds derived entries onto base ones. A redeclared name
// replaces the base pattern in place, new names append in declaration order.
func mergeModes(base, add ModeList) ModeList {
	out := make(ModeList, len(base), len(base)+len(add))
	copy(out, base)
	for _, m := range add {
		replaced := false
		for i := range out {
			if out[i].Name == m.Name {
				out[i] = m
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, m)
		}
	}
	return out
}

// mergeAttributes works like mergeModes keyed on the declared raw key, so a
// derived family can swap the value map of an inherited attribute.
func mergeAttributes(base, add []Attribute) []Attribute {
	out := make([]Attribute, len(base), len(base)+len(add))
	copy(out, base)
	for _, a := range add {
		replaced := false
		for i := range out {
			if out[i].RawKey == a.RawKey {
				out[i] = a
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, a)
		}
	}
	return out
}

func appendUnique(base, add []string) []string {
	for _, s := range add {
		found := false
		for _, have := range base {
			if have == s {
				found = true
				break
			}
		}
		if !found {
			base = append(base, s)
		}
	}
	return base
}
