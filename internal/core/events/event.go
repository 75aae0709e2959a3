package events

import (
	"github.com/foXaCe/philips-airpurifier-coap/internal/airctrl"

	. "github.com/foXaCe/philips-airpurifier-coap/internal/core/domain"
)

// StatusToUpdateEvents projects one device status into the sensor update
// events the MQTT actor publishes. Entity ids are prefixed with the device
// slug so events from several devices share one stream.
func StatusToUpdateEvents(slug string, desc *airctrl.Descriptor, status airctrl.RawStatus) []any {
	var events []any

	// Fan state
	if desc.CreateFan {
		percentage, percentageKnown := desc.SpeedPercentage(status)
		preset, _ := desc.CurrentPresetMode(status)
		var oscillating *bool
		if on, ok := desc.Oscillating(status); ok {
			oscillating = &on
		}
		events = append(events, FanStateUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: EntityId(slug, SENSOR_ID_FAN),
			},
			Power:           desc.IsOn(status),
			Preset:          preset,
			Percentage:      percentage,
			PercentageKnown: percentageKnown,
			Oscillating:     oscillating,
			Attributes:      desc.ProjectAttributes(status),
		})
	}

	// Numeric and filter sensors
	for _, reading := range PurifierSensorReadings(desc, status) {
		events = append(events, FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: EntityId(slug, reading.Id),
			},
			Value:    reading.Value,
			Decimals: reading.Decimals,
		})
	}

	// Error register
	if problem, ok := PurifierProblem(desc, status); ok {
		events = append(events, BinarySensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: EntityId(slug, SENSOR_ID_ERROR),
			},
			Value: problem,
		})
	}

	// Switch entities
	for _, reading := range PurifierSwitchReadings(desc, status) {
		events = append(events, SwitchSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: EntityId(slug, reading.Id),
			},
			Value: reading.On,
		})
	}

	// Number entities
	for _, reading := range PurifierNumberReadings(desc, status) {
		events = append(events, InputNumberSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: EntityId(slug, reading.Id),
			},
			Value: reading.Value,
		})
	}

	// Select entities
	for _, reading := range PurifierSelectReadings(desc, status) {
		events = append(events, SelectSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: EntityId(slug, reading.Id),
			},
			Value: reading.Value,
		})
	}

	return events
}

// AvailabilityToUpdateEvent flips the device availability topic. The event
// id is the device slug itself, not an entity id.
func AvailabilityToUpdateEvent(slug string, available bool) DeviceAvailabilityUpdateEvent {
	return DeviceAvailabilityUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: slug,
		},
		Available: available,
	}
}

// FilterAlertToEvent converts a tracker alert into its published event.
func FilterAlertToEvent(slug string, alert airctrl.FilterAlert) FilterAlertEvent {
	return FilterAlertEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: slug,
		},
		DeviceName: alert.DeviceName,
		FilterKey:  alert.FilterKey,
		FilterName: alert.FilterName,
		Percentage: alert.Percentage,
		Threshold:  alert.Threshold,
	}
}
