package domain

import (
	"github.com/foXaCe/philips-airpurifier-coap/internal/airctrl"
)

const (
	ACTOR_ID_MASTER       = "master"
	ACTOR_ID_MQTT         = "mqtt"
	ACTOR_ID_DISCOVERY    = "discovery"
	ACTOR_ID_HA_DISCOVERY = "hadiscovery"

	// per device actors are named with the device slug appended
	ACTOR_ID_COAP_PREFIX    = "coap_"
	ACTOR_ID_MONITOR_PREFIX = "monitor_"
)

// CoAP transport actor messages

type GetRawStatusRequest struct {
	ActorRequestMixIn
}

type GetRawStatusResponse struct {
	ActorResponseMixIn
	Status airctrl.RawStatus
}

type SetControlValuesRequest struct {
	ActorRequestMixIn
	Values airctrl.RawStatus
}

type SetControlValuesResponse struct {
	ActorResponseMixIn
}

// StatusObserved is pushed by the CoAP actor to its parent monitor whenever
// the device notifies a status change.
type StatusObserved struct {
	Status airctrl.RawStatus
}

// Monitor actor messages

type GetDeviceInfoRequest struct {
	ActorRequestMixIn
}

type GetDeviceInfoResponse struct {
	ActorResponseMixIn
	Device Device
	Model  string
	Host   string
}

type GetDiscoveryEntitiesRequest struct {
	ActorRequestMixIn
}

type GetDiscoveryEntitiesResponse struct {
	ActorResponseMixIn
	Fans         []GenericFan
	Sensors      []GenericSensor
	Switches     []GenericSwitch
	InputNumbers []GenericInputNumber
	Selects      []GenericSelect
}

// Fan commands translated from MQTT

type FanPowerRequest struct {
	ActorRequestMixIn
	On bool
}

type FanPresetRequest struct {
	ActorRequestMixIn
	Preset string
}

type FanPercentageRequest struct {
	ActorRequestMixIn
	Percentage int
}

type FanOscillationRequest struct {
	ActorRequestMixIn
	On bool
}

// EntityCommandRequest carries a switch, number or select command for one
// entity. EntityId is the id suffix after the device slug.
type EntityCommandRequest struct {
	ActorRequestMixIn
	EntityId string
	Command  string
	Payload  string
}

type FanCommandResponse struct {
	ActorResponseMixIn
}

// MQTT actor messages

type PublishMessageRequest struct {
	ActorRequestMixIn
	Topic   string
	Payload string
	Retain  bool
}

type PublishMessageResponse struct {
	ActorResponseMixIn
}

type PublishSensorUpdateRequest struct {
	ActorRequestMixIn
	Retain bool
	Event  SensorUpdateEvent
}

type PublishSensorUpdateResponse struct {
	ActorResponseMixIn
}

type PublishDiscoveryRequest struct {
	ActorRequestMixIn
	Fans         []GenericFan
	Sensors      []GenericSensor
	Switches     []GenericSwitch
	InputNumbers []GenericInputNumber
	Selects      []GenericSelect
}

type PublishDiscoveryResponse struct {
	ActorResponseMixIn
}

// Master actor messages for the diagnostics HTTP surface

type GetDevicesRequest struct {
	ActorRequestMixIn
}

type DeviceEntry struct {
	Id   string `json:"id"`
	Host string `json:"host"`
	Name string `json:"name,omitempty"`
}

type GetDevicesResponse struct {
	ActorResponseMixIn
	Devices []DeviceEntry
}

// DeviceRawStatusRequest asks the master for the last status of one device,
// addressed by slug. The master forwards it to the owning monitor.
type DeviceRawStatusRequest struct {
	ActorRequestMixIn
	DeviceId string
}

// Discovery actor messages

type DeviceDiscovered struct {
	Host   string
	Status airctrl.RawStatus
}

type ActorHealthRequest struct {
	ActorRequestMixIn
}

type ActorHealthResponse struct {
	ActorResponseMixIn
	Id      string
	Healthy bool
	State   string
}
