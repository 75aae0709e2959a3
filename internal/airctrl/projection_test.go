package airctrl

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jsonVal mimics JSON decoding, which turns every number into float64.
func jsonVal(v any) any {
	if f, ok := toFloat(v); ok {
		return f
	}
	return v
}

// statusFor builds a raw status for a powered on device in the given mode.
func statusFor(d *Descriptor, p Pattern, repl *KeyReplace) RawStatus {
	st := RawStatus{d.PowerKey: jsonVal(d.PowerOn)}
	for k, v := range p {
		st[replaceKey(k, repl)] = jsonVal(v)
	}
	return st
}

func TestIsOn(t *testing.T) {
	d, err := Resolve("AC2729", "")
	require.NoError(t, err)

	assert.True(t, d.IsOn(RawStatus{KeyPower: "1"}))
	assert.False(t, d.IsOn(RawStatus{KeyPower: "0"}))
	assert.False(t, d.IsOn(RawStatus{}))
}

func TestIsOnNumericPower(t *testing.T) {
	d, err := Resolve("AC3220", "")
	require.NoError(t, err)

	// decoded JSON carries float64, the table declares int
	assert.True(t, d.IsOn(RawStatus{KeyNew2Power: float64(1)}))
	assert.False(t, d.IsOn(RawStatus{KeyNew2Power: float64(0)}))
}

func TestCurrentPresetModeOffDevice(t *testing.T) {
	d, err := Resolve("AC2729", "")
	require.NoError(t, err)

	_, ok := d.CurrentPresetMode(RawStatus{KeyPower: "0", KeyMode: "P"})
	assert.False(t, ok)
}

func TestCurrentPresetModeFirstMatchWins(t *testing.T) {
	d := &Descriptor{
		PowerKey: KeyNew2Power,
		PowerOn:  1,
		PowerOff: 0,
		PresetModes: ModeList{
			{Name: PresetAuto, Pattern: Pattern{KeyNew2ModeA: 0, KeyNew2ModeB: 0}},
			{Name: PresetSleep, Pattern: Pattern{KeyNew2ModeA: 0}},
		},
	}

	// both registers at zero satisfies both entries, the first one listed
	// wins
	st := RawStatus{
		KeyNew2Power: float64(1),
		KeyNew2ModeA: float64(0),
		KeyNew2ModeB: float64(0),
	}
	mode, ok := d.CurrentPresetMode(st)
	require.True(t, ok)
	assert.Equal(t, PresetAuto, mode)
}

func TestCurrentPresetModeLegacy(t *testing.T) {
	d, err := Resolve("AC3033", "")
	require.NoError(t, err)

	mode, ok := d.CurrentPresetMode(RawStatus{KeyPower: "1", KeyMode: "AG", KeySpeed: "1"})
	require.True(t, ok)
	assert.Equal(t, PresetAuto, mode)

	mode, ok = d.CurrentPresetMode(RawStatus{KeyPower: "1", KeyMode: "AS", KeySpeed: "as"})
	require.True(t, ok)
	assert.Equal(t, PresetSleepAllergy, mode)
}

func TestCurrentPresetModeLegacyNight(t *testing.T) {
	d, err := Resolve("AC2729", "")
	require.NoError(t, err)
	mode, ok := d.CurrentPresetMode(RawStatus{KeyPower: "1", KeyMode: "S", KeySpeed: "s"})
	require.True(t, ok)
	assert.Equal(t, PresetNight, mode)

	d, err = Resolve("AC1214", "")
	require.NoError(t, err)
	mode, ok = d.CurrentPresetMode(RawStatus{KeyPower: "1", KeyMode: "N"})
	require.True(t, ok)
	assert.Equal(t, PresetNight, mode)
	pct, ok := d.SpeedPercentage(RawStatus{KeyPower: "1", KeyMode: "N"})
	require.True(t, ok)
	assert.Equal(t, 100/len(d.Speeds), pct)
}

func TestCurrentPresetModeNew2Register(t *testing.T) {
	d, err := Resolve("AC0950", "")
	require.NoError(t, err)

	mode, ok := d.CurrentPresetMode(RawStatus{KeyNew2Power: float64(1), KeyNew2ModeB: float64(0)})
	require.True(t, ok)
	assert.Equal(t, PresetAuto, mode)

	mode, ok = d.CurrentPresetMode(RawStatus{KeyNew2Power: float64(1), KeyNew2ModeB: float64(19)})
	require.True(t, ok)
	assert.Equal(t, PresetMedium, mode)
}

func TestResolveSplitsGenerationsByFirmware(t *testing.T) {
	plain, err := Resolve("AC0850/11", "AWS_Philips_AIR@1.0.0")
	require.NoError(t, err)
	combo, err := Resolve("AC0850/11", "AWS_Philips_AIR_Combo@1.0.0")
	require.NoError(t, err)

	// the plain AWS firmware stays on string labels, only the Combo
	// firmware moved to the integer registers
	assert.Equal(t, KeyNewPower, plain.PowerKey)
	assert.Equal(t, "Auto General", plain.PresetModes[0].Pattern[KeyNewMode])
	assert.Equal(t, KeyNew2Power, combo.PowerKey)
	assert.Equal(t, 0, combo.PresetModes[0].Pattern[KeyNew2ModeB])
}

func TestCurrentPresetModeUnknown(t *testing.T) {
	d, err := Resolve("AC2889", "")
	require.NoError(t, err)

	mode, ok := d.CurrentPresetMode(RawStatus{KeyPower: "1", KeyMode: "Z"})
	assert.False(t, ok)
	assert.Equal(t, ValueUnknown, mode)
}

func TestCurrentPresetModeWithKeyReplace(t *testing.T) {
	d := &Descriptor{
		PowerKey: KeyNew2Power,
		PowerOn:  1,
		PowerOff: 0,
		PresetModes: ModeList{
			{Name: PresetSleep, Pattern: Pattern{KeyNew2ModeA: 17}},
		},
		ReplacePreset: &KeyReplace{From: KeyNew2ModeA, To: KeyNew2ModeB},
	}

	// the device reports the program under the replacement key
	st := RawStatus{KeyNew2Power: float64(1), KeyNew2ModeB: float64(17)}
	mode, ok := d.CurrentPresetMode(st)
	require.True(t, ok)
	assert.Equal(t, PresetSleep, mode)

	// the declared key must not match when a substitution is configured
	st = RawStatus{KeyNew2Power: float64(1), KeyNew2ModeA: float64(17)}
	_, ok = d.CurrentPresetMode(st)
	assert.False(t, ok)
}

func TestSpeedPercentageOffIsZero(t *testing.T) {
	d, err := Resolve("AC2889", "")
	require.NoError(t, err)

	pct, ok := d.SpeedPercentage(RawStatus{KeyPower: "0"})
	assert.True(t, ok)
	assert.Equal(t, 0, pct)
}

func TestSpeedPercentageRoundTrip(t *testing.T) {
	for _, model := range SupportedModels() {
		d, err := Resolve(model, "")
		require.NoError(t, err)
		for i, m := range d.Speeds {
			t.Run(fmt.Sprintf("%s/%s", model, m.Name), func(t *testing.T) {
				st := statusFor(d, m.Pattern, d.ReplaceSpeed)
				pct, ok := d.SpeedPercentage(st)
				require.True(t, ok)
				assert.Equal(t, (i+1)*100/len(d.Speeds), pct)

				back, ok := d.speedForPercentage(pct)
				require.True(t, ok)
				assert.Equal(t, m.Name, back.Name)
			})
		}
	}
}

func TestSpeedForPercentageSaturates(t *testing.T) {
	d, err := Resolve("AMF765", "")
	require.NoError(t, err)

	m, ok := d.speedForPercentage(100)
	require.True(t, ok)
	assert.Equal(t, PresetSpeed10, m.Name)

	m, ok = d.speedForPercentage(1)
	require.True(t, ok)
	assert.Equal(t, PresetSpeed1, m.Name)

	_, ok = d.speedForPercentage(0)
	assert.False(t, ok)
}

func TestOscillating(t *testing.T) {
	d, err := Resolve("CX5120", "")
	require.NoError(t, err)
	require.NotNil(t, d.Oscillation)

	on, ok := d.Oscillating(RawStatus{KeyNew2Oscillation: float64(17920)})
	assert.True(t, ok)
	assert.True(t, on)

	// any non off value projects as oscillating
	on, ok = d.Oscillating(RawStatus{KeyNew2Oscillation: float64(345)})
	assert.True(t, ok)
	assert.True(t, on)

	on, ok = d.Oscillating(RawStatus{KeyNew2Oscillation: float64(0)})
	assert.True(t, ok)
	assert.False(t, on)

	_, ok = d.Oscillating(RawStatus{})
	assert.False(t, ok)
}

func TestOscillatingUnsupportedModel(t *testing.T) {
	d, err := Resolve("AC2889", "")
	require.NoError(t, err)

	_, ok := d.Oscillating(RawStatus{KeyNew2Oscillation: float64(1)})
	assert.False(t, ok)
}

func TestAttributesProjection(t *testing.T) {
	d, err := Resolve("AC2729", "")
	require.NoError(t, err)

	st := RawStatus{
		KeyName:           "Bedroom",
		KeyModelID:        "AC2729/10",
		KeyPreferredIndex: "1",
		KeyFunction:       "PH",
		KeyRuntime:        float64(90061000),
	}
	attrs := d.ProjectAttributes(st)

	assert.Equal(t, "Bedroom", attrs[AttrName])
	assert.Equal(t, "pm25", attrs[AttrPreferredIndex])
	assert.Equal(t, "purification_humidification", attrs["function"])
	assert.Equal(t, "25h1m1s", attrs[AttrRuntime])
	// keys absent from the status are skipped entirely
	assert.NotContains(t, attrs, AttrLanguage)
}

func TestAttributesUnknownMappedValue(t *testing.T) {
	d, err := Resolve("AC2729", "")
	require.NoError(t, err)

	attrs := d.ProjectAttributes(RawStatus{KeyPreferredIndex: "9"})
	assert.Equal(t, ValueUnknown, attrs[AttrPreferredIndex])
}

func TestAttributesMarkerKeyLookup(t *testing.T) {
	d, err := Resolve("AC3259", "")
	require.NoError(t, err)

	// the gas index attribute declares "ddp#1" but reads plain "ddp"
	attrs := d.ProjectAttributes(RawStatus{KeyPreferredIndex: "2"})
	assert.Equal(t, "gas", attrs[AttrPreferredIndex])
}
