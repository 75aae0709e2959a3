package domain

import (
	"testing"

	"github.com/foXaCe/philips-airpurifier-coap/internal/airctrl"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func legacyDescriptor(t *testing.T) *airctrl.Descriptor {
	desc, err := airctrl.Resolve("AC2729/10", "AWS_Philips_AIR@62.1")
	require.NoError(t, err)
	return desc
}

func TestDeviceSlugIsStable(t *testing.T) {

	assert := assert.New(t)

	slug := DeviceSlug("192.168.1.107")
	assert.Equal(slug, DeviceSlug("192.168.1.107"))
	assert.NotEqual(slug, DeviceSlug("192.168.1.108"))
	assert.Len(slug, 8)
}

func TestPurifierDeviceNameFallback(t *testing.T) {

	assert := assert.New(t)

	device := PurifierDevice("abc123", "", "AC2889/10", "1.0.7")
	assert.Equal("philips_abc123", device.Id)
	assert.Equal("Philips AC2889/10", device.Name)

	named := PurifierDevice("abc123", "Living room", "AC2889/10", "1.0.7")
	assert.Equal("Living room", named.Name)
}

func TestResolveSwitchCommand(t *testing.T) {

	assert := assert.New(t)
	desc := legacyDescriptor(t)

	key, value, ok := ResolveSwitchCommand(desc, "child_lock", true)
	assert.True(ok)
	assert.Equal(airctrl.KeyChildLock, key)
	assert.Equal(true, value)

	key, value, ok = ResolveSwitchCommand(desc, "display", false)
	assert.True(ok)
	assert.Equal(airctrl.KeyDisplayLight, key)
	assert.Equal("0", value)

	_, _, ok = ResolveSwitchCommand(desc, "no_such_switch", true)
	assert.False(ok)
}

func TestResolveNumberCommandClamps(t *testing.T) {

	assert := assert.New(t)
	desc := legacyDescriptor(t)

	key, value, ok := ResolveNumberCommand(desc, "light_brightness", 50)
	assert.True(ok)
	assert.Equal(airctrl.KeyLightBrightness, key)
	assert.Equal(50, value)

	_, value, ok = ResolveNumberCommand(desc, "light_brightness", 300)
	assert.True(ok)
	assert.Equal(100, value, "clamped to range")
}

func TestResolveSelectCommand(t *testing.T) {

	assert := assert.New(t)
	desc := legacyDescriptor(t)

	key, value, ok := ResolveSelectCommand(desc, "preferred_index", "pm25")
	assert.True(ok)
	assert.Equal(airctrl.KeyPreferredIndex, key)
	assert.Equal("1", value)

	_, _, ok = ResolveSelectCommand(desc, "preferred_index", "no_such_option")
	assert.False(ok)
}

func TestResolveSelectCommandGasIndex(t *testing.T) {

	assert := assert.New(t)
	desc, err := airctrl.Resolve("AC3033/10", "")
	require.NoError(t, err)

	key, value, ok := ResolveSelectCommand(desc, "preferred_index", "gas")
	assert.True(ok)
	assert.Equal(airctrl.KeyGasPreferredIndex, key)
	assert.Equal("2", value)

	// the reported register has no disambiguation marker
	readings := PurifierSelectReadings(desc, airctrl.RawStatus{"ddp": "2"})
	require.Len(t, readings, 1)
	assert.Equal("preferred_index", readings[0].Id)
	assert.Equal("gas", readings[0].Value)
}

func TestPurifierSensorsPresenceGated(t *testing.T) {

	assert := assert.New(t)
	desc := legacyDescriptor(t)
	device := PurifierDevice("abc123", "Living room", "AC2889/10", "1.0.7")

	status := airctrl.RawStatus{
		"pwr":       "1",
		"pm25":      float64(4),
		"fltsts0":   200,
		"flttotal0": 360,
	}
	sensors := PurifierSensors(device, "abc123", desc, status)

	ids := make([]string, 0, len(sensors))
	for _, sensor := range sensors {
		ids = append(ids, sensor.Id)
	}
	assert.Contains(ids, "abc123_pm25")
	assert.Contains(ids, "abc123_filter_pre")
	assert.NotContains(ids, "abc123_humidity", "absent raw key, no sensor")
}

func TestPurifierSensorsSkipUnavailableFilters(t *testing.T) {

	assert := assert.New(t)
	desc, err := airctrl.Resolve("AC0850/11", "AWS_Philips_AIR_Combo@0.2.1")
	require.NoError(t, err)
	device := PurifierDevice("abc123", "Bedroom", "AC0850/11", "0.2.1")

	// the firmware reports a prefilter block the hardware does not have
	status := airctrl.RawStatus{
		airctrl.KeyFilterNanoProtect:               float64(200),
		airctrl.KeyFilterNanoProtectTotal:          float64(360),
		airctrl.KeyFilterNanoProtectPrefilter:      float64(100),
		airctrl.KeyFilterNanoProtectPrefilterTotal: float64(360),
	}
	sensors := PurifierSensors(device, "abc123", desc, status)

	ids := make([]string, 0, len(sensors))
	for _, sensor := range sensors {
		ids = append(ids, sensor.Id)
	}
	assert.Contains(ids, "abc123_filter_nanoprotect")
	assert.NotContains(ids, "abc123_filter_nanoprotect_pre")

	readings := PurifierSensorReadings(desc, status)
	for _, reading := range readings {
		assert.NotEqual("filter_nanoprotect_pre", reading.Id)
	}
}

func TestPurifierSensorReadingsFilterPercentage(t *testing.T) {

	assert := assert.New(t)
	desc := legacyDescriptor(t)

	status := airctrl.RawStatus{
		"fltsts0":   float64(180),
		"flttotal0": float64(360),
	}
	readings := PurifierSensorReadings(desc, status)

	require.Len(t, readings, 1)
	assert.Equal("filter_pre", readings[0].Id)
	assert.Equal(float64(50), readings[0].Value)
}
