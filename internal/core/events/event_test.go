package events

import (
	"testing"

	"github.com/foXaCe/philips-airpurifier-coap/internal/airctrl"
	"github.com/foXaCe/philips-airpurifier-coap/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusToUpdateEvents(t *testing.T) {

	assert := assert.New(t)

	desc, err := airctrl.Resolve("AC2729/10", "AWS_Philips_AIR@62.1")
	require.NoError(t, err)

	status := airctrl.RawStatus{
		"pwr":     "1",
		"mode":    "P",
		"om":      "1",
		"pm25":    float64(4),
		"iaql":    float64(2),
		"cl":      false,
		"aqil":    float64(75),
		"fltsts0": 200,
	}

	events := StatusToUpdateEvents("abc123", desc, status)
	require.NotEmpty(t, events)

	fan, ok := events[0].(domain.FanStateUpdateEvent)
	require.True(t, ok, "first event is the fan state")
	assert.Equal("abc123_fan", fan.Id)
	assert.True(fan.Power)
	assert.Equal("auto", fan.Preset)

	byId := map[string]any{}
	for _, ev := range events {
		if e, ok := ev.(domain.SensorUpdateEvent); ok {
			byId[e.SensorId()] = ev
		}
	}

	pm25, ok := byId["abc123_pm25"].(domain.FloatSensorUpdateEvent)
	require.True(t, ok, "pm25 event present")
	assert.Equal(float64(4), pm25.Value)

	lock, ok := byId["abc123_child_lock"].(domain.SwitchSensorUpdateEvent)
	require.True(t, ok, "child lock event present")
	assert.False(lock.Value)
}

func TestAvailabilityToUpdateEvent(t *testing.T) {

	assert := assert.New(t)

	ev := AvailabilityToUpdateEvent("abc123", false)
	assert.Equal("abc123", ev.Id)
	assert.False(ev.Available)
}
