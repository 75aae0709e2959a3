package airctrl

// ValueUnknown is reported when a mapped attribute carries a value the model
// table does not know, and as the preset of a powered on device in a state
// no pattern covers.
const ValueUnknown = "unknown"

// IsOn reports whether the status encodes a powered on device. A missing
// power key projects as off.
func (d *Descriptor) IsOn(status RawStatus) bool {
	v, ok := status[d.PowerKey]
	return ok && rawEqual(d.PowerOn, v)
}

// CurrentPresetMode projects the active preset. A powered off device has no
// preset. A powered on device whose state matches no pattern reports
// ValueUnknown with ok false, which happens transiently between the writes
// of a staged command.
func (d *Descriptor) CurrentPresetMode(status RawStatus) (string, bool) {
	if !d.IsOn(status) {
		return "", false
	}
	for _, m := range d.PresetModes {
		if m.Pattern.matches(status, d.ReplacePreset) {
			return m.Name, true
		}
	}
	return ValueUnknown, false
}

// SpeedPercentage projects the fan speed as a percentage over the ordered
// speed table: the n-th of N speeds maps to n*100/N, off maps to 0. The
// second result is false when the device is on but no speed pattern matches.
func (d *Descriptor) SpeedPercentage(status RawStatus) (int, bool) {
	if !d.IsOn(status) {
		return 0, true
	}
	for i, m := range d.Speeds {
		if m.Pattern.matches(status, d.ReplaceSpeed) {
			return (i + 1) * 100 / len(d.Speeds), true
		}
	}
	return 0, false
}

// speedForPercentage picks the slowest speed whose percentage band contains
// pct, saturating at the fastest. pct 0 is not a speed, callers translate it
// to a power off.
func (d *Descriptor) speedForPercentage(pct int) (Mode, bool) {
	n := len(d.Speeds)
	if n == 0 || pct <= 0 {
		return Mode{}, false
	}
	for i, m := range d.Speeds {
		if float64(pct) <= float64(i+1)*100/float64(n) {
			return m, true
		}
	}
	return d.Speeds[n-1], true
}

// Oscillating projects the oscillation state. Any value other than the
// declared off value counts as oscillating. ok is false when the model has
// no oscillation register or the key is absent from the status.
func (d *Descriptor) Oscillating(status RawStatus) (on bool, ok bool) {
	if d.Oscillation == nil {
		return false, false
	}
	v, ok := status[statusKey(d.Oscillation.Key)]
	if !ok {
		return false, false
	}
	return !rawEqual(d.Oscillation.Off, v), true
}

// ProjectAttributes projects the declared extra attributes. Keys absent from
// the status are skipped, mapped values the table does not know report
// ValueUnknown.
func (d *Descriptor) ProjectAttributes(status RawStatus) map[string]any {
	out := make(map[string]any, len(d.Attributes))
	for _, a := range d.Attributes {
		v, ok := status[statusKey(a.RawKey)]
		if !ok {
			continue
		}
		if a.ValueMap != nil {
			v = mapValue(a.ValueMap, v)
		}
		if a.Transform != nil {
			v = a.Transform(v, status)
		}
		out[a.Name] = v
	}
	return out
}

func mapValue(vm map[any]string, v any) string {
	if s, ok := vm[v]; ok {
		return s
	}
	// declarations use int keys, decoded JSON numbers are float64
	if f, isNum := toFloat(v); isNum && f == float64(int(f)) {
		if s, ok := vm[int(f)]; ok {
			return s
		}
	}
	return ValueUnknown
}
