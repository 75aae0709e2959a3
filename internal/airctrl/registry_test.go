package airctrl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveExactModel(t *testing.T) {
	d, err := Resolve("AC1214", "")
	require.NoError(t, err)
	assert.Equal(t, "AC1214", d.Model)
}

func TestResolveFamilyPrefix(t *testing.T) {
	d, err := Resolve("AC3033/10", "")
	require.NoError(t, err)
	assert.Equal(t, "AC3033", d.Model)
}

func TestResolveWifiQualified(t *testing.T) {
	d, err := Resolve("AC3858/86", "AWS_Philips_AIR@62.1.28.32")
	require.NoError(t, err)
	assert.Equal(t, "AC3858/86 AWS_Philips_AIR", d.Model)

	// without the wifi firmware name the /86 line is ambiguous
	_, err = Resolve("AC3858/86", "")
	assert.ErrorIs(t, err, ErrUnsupportedModel)
}

func TestResolveLegacyGenerationFamilies(t *testing.T) {
	// the 29xx, 303x and 305x lines speak the legacy key set
	for _, model := range []string{"AC2936", "AC2959", "AC3033", "AC3055"} {
		d, err := Resolve(model, "")
		require.NoError(t, err)
		assert.Equal(t, KeyPower, d.PowerKey, model)
		assert.Equal(t, "1", d.PresetModes[0].Pattern[KeyPower], model)
	}
}

func TestResolveAddedModels(t *testing.T) {
	for _, tc := range []struct{ model, wifi string }{
		{"AC0850/31", "AWS_Philips_AIR@1.0"},
		{"AC0850/70", "AWS_Philips_AIR_Combo@1.0"},
		{"AC0850/81", ""},
		{"AC0850/85", ""},
		{"AC3210/10", ""},
		{"AC3421/10", ""},
		{"AC3836/10", ""},
		{"AC3854/50", ""},
		{"AC3858/83", ""},
		{"AC4221/10", ""},
		{"AC4236/10", ""},
		{"AC4550/10", ""},
		{"AC5660/10", ""},
	} {
		_, err := Resolve(tc.model, tc.wifi)
		assert.NoError(t, err, tc.model)
	}
}

func TestResolveUnsupported(t *testing.T) {
	_, err := Resolve("XX1234/00", "SomeFirmware@1.0")
	assert.ErrorIs(t, err, ErrUnsupportedModel)
}

func TestResolveAbstractFamilyNotResolvable(t *testing.T) {
	_, err := Resolve(legacyBase, "")
	assert.ErrorIs(t, err, ErrUnsupportedModel)
}

func TestComposeAccumulatesBaseDeclarations(t *testing.T) {
	d, err := Resolve("AC2729", "")
	require.NoError(t, err)

	// inherited from the legacy base
	assert.Equal(t, KeyPower, d.PowerKey)
	assert.Contains(t, d.Lights, KeyLightBrightness)

	// own declarations on top
	assert.Contains(t, d.Switches, KeyChildLock)
	assert.Contains(t, d.Numbers, KeyHumidityTarget)
	assert.True(t, d.Humidifier)

	names := make([]string, 0, len(d.Attributes))
	for _, a := range d.Attributes {
		names = append(names, a.Name)
	}
	assert.Contains(t, names, AttrRuntime)
	assert.Contains(t, names, "function")
}

func TestComposeOverridesAttributeByKey(t *testing.T) {
	base, err := Resolve("AC2889", "")
	require.NoError(t, err)
	derived, err := Resolve("AC3259", "")
	require.NoError(t, err)

	// later declarations shadow earlier ones of the same name at
	// projection time, so look at the last entry
	find := func(d *Descriptor) Attribute {
		var found Attribute
		for _, a := range d.Attributes {
			if a.Name == AttrPreferredIndex {
				found = a
			}
		}
		require.NotEmpty(t, found.RawKey, "preferred index attribute missing on %s", d.Model)
		return found
	}

	assert.Equal(t, KeyPreferredIndex, find(base).RawKey)
	// the gas capable derivative swaps in the extended label map
	assert.Equal(t, KeyGasPreferredIndex, find(derived).RawKey)
	assert.Contains(t, find(derived).ValueMap, any("2"))
}

func TestComposeModeOverrideKeepsPosition(t *testing.T) {
	base := ModeList{
		{Name: "a", Pattern: Pattern{"k": 1}},
		{Name: "b", Pattern: Pattern{"k": 2}},
	}
	add := ModeList{
		{Name: "a", Pattern: Pattern{"k": 9}},
		{Name: "c", Pattern: Pattern{"k": 3}},
	}
	merged := mergeModes(base, add)
	require.Len(t, merged, 3)
	assert.Equal(t, []string{"a", "b", "c"}, merged.Names())
	assert.Equal(t, Pattern{"k": 9}, merged[0].Pattern)
}

func TestComposedDescriptorsAreComplete(t *testing.T) {
	for _, model := range SupportedModels() {
		d, err := Resolve(model, "")
		require.NoError(t, err)
		assert.NotEmpty(t, d.PowerKey, "model %s has no power key", model)
		assert.NotNil(t, d.PowerOn, "model %s has no power on value", model)
		if d.CreateFan {
			assert.NotEmpty(t, d.PresetModes, "fan model %s has no presets", model)
		}
		for _, m := range d.PresetModes {
			assert.NotEmpty(t, m.Pattern, "model %s preset %s has an empty pattern", model, m.Name)
		}
		for _, m := range d.Speeds {
			assert.NotEmpty(t, m.Pattern, "model %s speed %s has an empty pattern", model, m.Name)
		}
	}
}
