package domain

import "fmt"

type SensorUpdateEventMixIn struct {
	Id string
}

type SensorUpdateEvent interface {
	SensorUpdateEvent() string
	SensorId() string
}

func (e SensorUpdateEventMixIn) SensorUpdateEvent() string {
	return fmt.Sprintf("%T", e)
}

func (e SensorUpdateEventMixIn) SensorId() string {
	return e.Id
}

type FloatSensorUpdateEvent struct {
	SensorUpdateEventMixIn
	Value    float64
	Decimals uint
}

type BinarySensorUpdateEvent struct {
	SensorUpdateEventMixIn
	Value bool
}

type SwitchSensorUpdateEvent struct {
	SensorUpdateEventMixIn
	Value bool
}

type TextSensorUpdateEvent struct {
	SensorUpdateEventMixIn
	Value string
}

type BridgeStateUpdateEvent struct {
	SensorUpdateEventMixIn
	Value bool
}

type InputNumberSensorUpdateEvent struct {
	SensorUpdateEventMixIn
	Value    float64
	Decimals uint
}

type SelectSensorUpdateEvent struct {
	SensorUpdateEventMixIn
	Value string
}

// FanStateUpdateEvent carries the full projected fan state of one device.
type FanStateUpdateEvent struct {
	SensorUpdateEventMixIn
	Power bool
	// Preset is empty while off and "unknown" in unmapped states
	Preset          string
	Percentage      int
	PercentageKnown bool
	Oscillating     *bool
	Attributes      map[string]any
}

// DeviceAvailabilityUpdateEvent flips the per device availability topic.
type DeviceAvailabilityUpdateEvent struct {
	SensorUpdateEventMixIn
	Available bool
}

// FilterAlertEvent is published when a filter newly crosses into the low
// range.
type FilterAlertEvent struct {
	SensorUpdateEventMixIn
	DeviceName string
	FilterKey  string
	FilterName string
	Percentage int
	Threshold  int
}
