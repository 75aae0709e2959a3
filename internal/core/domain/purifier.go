package domain

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/foXaCe/philips-airpurifier-coap/internal/airctrl"

	"github.com/carlmjohnson/versioninfo"
)

const (
	SENSOR_ID_BRIDGE_STATE   = "bridge"
	SENSOR_ID_FAN            = "fan"
	SENSOR_ID_PM25           = "pm25"
	SENSOR_ID_ALLERGEN_INDEX = "allergen_index"
	SENSOR_ID_TVOC           = "tvoc"
	SENSOR_ID_TEMPERATURE    = "temperature"
	SENSOR_ID_HUMIDITY       = "humidity"
	SENSOR_ID_WATER_LEVEL    = "water_level"
	SENSOR_ID_ERROR          = "error"

	STATE_CLASS_MEASUREMENT   = "measurement"
	DEVICE_CLASS_PM25         = "pm25"
	DEVICE_CLASS_TEMPERATURE  = "temperature"
	DEVICE_CLASS_HUMIDITY     = "humidity"
	DEVICE_CLASS_VOC          = "volatile_organic_compounds_parts"
	DEVICE_CLASS_PROBLEM      = "problem"
	DEVICE_CLASS_CONNECTIVITY = "connectivity"
	ENTITY_CLASS_DIAGNOSTIC   = "diagnostic"
	ENTITY_CLASS_CONFIG       = "config"
	SENSOR_TYPE_SENSOR        = "sensor"
	SENSOR_TYPE_BINARY        = "binary_sensor"
	INPUT_NUMBER_MODE_BOX     = "box"
	INPUT_NUMBER_MODE_SLIDER  = "slider"
)

// purifierSensorSpec binds one numeric sensor to the raw keys the firmware
// generations report it under. A sensor entity is only announced when the
// device status actually carries one of the keys.
type purifierSensorSpec struct {
	Id          string
	Name        string
	RawKeys     []string
	DeviceClass string
	Unit        string
	Icon        string
	Decimals    uint
}

var purifierSensorSpecs = []purifierSensorSpec{
	{Id: SENSOR_ID_PM25, Name: "PM2.5", RawKeys: []string{airctrl.KeyPM25, airctrl.KeyNewPM25},
		DeviceClass: DEVICE_CLASS_PM25, Unit: "µg/m³"},
	{Id: SENSOR_ID_ALLERGEN_INDEX, Name: "Indoor allergen index", RawKeys: []string{airctrl.KeyAllergenIndex, airctrl.KeyNewAllergenIndex},
		Icon: "mdi:blur"},
	{Id: SENSOR_ID_TVOC, Name: "Total VOC", RawKeys: []string{airctrl.KeyTVOC},
		DeviceClass: DEVICE_CLASS_VOC, Unit: "ppb"},
	{Id: SENSOR_ID_TEMPERATURE, Name: "Temperature", RawKeys: []string{airctrl.KeyTemperature},
		DeviceClass: DEVICE_CLASS_TEMPERATURE, Unit: "°C", Decimals: 1},
	{Id: SENSOR_ID_HUMIDITY, Name: "Humidity", RawKeys: []string{airctrl.KeyHumidity},
		DeviceClass: DEVICE_CLASS_HUMIDITY, Unit: "%"},
	{Id: SENSOR_ID_WATER_LEVEL, Name: "Water level", RawKeys: []string{airctrl.KeyWaterLevel},
		Unit: "%", Icon: "mdi:water"},
}

// filterSensorIds maps the raw filter keys onto stable entity id suffixes.
var filterSensorIds = map[string]string{
	airctrl.KeyFilterPre:                  "filter_pre",
	airctrl.KeyFilterHEPA:                 "filter_hepa",
	airctrl.KeyFilterActiveCarbon:         "filter_carbon",
	airctrl.KeyFilterWick:                 "filter_wick",
	airctrl.KeyFilterNanoProtect:          "filter_nanoprotect",
	airctrl.KeyFilterNanoProtectPrefilter: "filter_nanoprotect_pre",
}

// SwitchSpec describes the raw encoding behind an on/off entity.
type SwitchSpec struct {
	Id   string
	Name string
	Icon string
	On   any
	Off  any
}

var switchSpecs = map[string]SwitchSpec{
	airctrl.KeyChildLock:         {Id: "child_lock", Name: "Child lock", Icon: "mdi:lock", On: true, Off: false},
	airctrl.KeyDisplayLight:      {Id: "display", Name: "Display", Icon: "mdi:lightbulb", On: "1", Off: "0"},
	airctrl.KeyNewDisplayLight:   {Id: "display", Name: "Display", Icon: "mdi:lightbulb", On: "ON", Off: "OFF"},
	airctrl.KeyNew2ChildLock:     {Id: "child_lock", Name: "Child lock", Icon: "mdi:lock", On: 1, Off: 0},
	airctrl.KeyNew2Beep:          {Id: "beep", Name: "Beep", Icon: "mdi:volume-high", On: 100, Off: 0},
	airctrl.KeyNew2DisplayLight:  {Id: "display", Name: "Display", Icon: "mdi:lightbulb", On: 100, Off: 0},
	airctrl.KeyNew2DisplayLight2: {Id: "display", Name: "Display", Icon: "mdi:lightbulb", On: 100, Off: 0},
}

// NumberSpec describes a writable numeric entity.
type NumberSpec struct {
	Id   string
	Name string
	Icon string
	Min  float64
	Max  float64
	Step float64
}

var numberSpecs = map[string]NumberSpec{
	airctrl.KeyLightBrightness:    {Id: "light_brightness", Name: "Light brightness", Icon: "mdi:brightness-6", Min: 0, Max: 100, Step: 25},
	airctrl.KeyHumidityTarget:     {Id: "humidity_target", Name: "Humidity target", Icon: "mdi:water-percent", Min: 40, Max: 70, Step: 10},
	airctrl.KeyNew2HumidityTarget: {Id: "humidity_target", Name: "Humidity target", Icon: "mdi:water-percent", Min: 30, Max: 70, Step: 10},
	airctrl.KeyNew2TargetTemp:     {Id: "target_temperature", Name: "Target temperature", Icon: "mdi:thermometer", Min: 1, Max: 37, Step: 1},
}

// SelectSpec describes an option entity with its label to raw value map.
type SelectSpec struct {
	Id      string
	Name    string
	Icon    string
	Options map[string]any
}

var selectSpecs = map[string]SelectSpec{
	airctrl.KeyFunction: {Id: "function", Name: "Function", Icon: "mdi:air-purifier", Options: map[string]any{
		"purification":                "P",
		"purification_humidification": "PH",
	}},
	airctrl.KeyPreferredIndex: {Id: "preferred_index", Name: "Preferred index", Icon: "mdi:chart-line", Options: map[string]any{
		"indoor_allergen_index": "0",
		"pm25":                  "1",
	}},
	airctrl.KeyNewPreferredIndex: {Id: "preferred_index", Name: "Preferred index", Icon: "mdi:chart-line", Options: map[string]any{
		"indoor_allergen_index": "0",
		"pm25":                  "1",
	}},
	airctrl.KeyNew2PreferredIndex: {Id: "preferred_index", Name: "Preferred index", Icon: "mdi:chart-line", Options: map[string]any{
		"indoor_allergen_index": 0,
		"pm25":                  1,
	}},
	airctrl.KeyGasPreferredIndex: {Id: "preferred_index", Name: "Preferred index", Icon: "mdi:chart-line", Options: map[string]any{
		"indoor_allergen_index": "0",
		"pm25":                  "1",
		"gas":                   "2",
	}},
	airctrl.KeyNew2GasPreferredIndex: {Id: "preferred_index", Name: "Preferred index", Icon: "mdi:chart-line", Options: map[string]any{
		"indoor_allergen_index": 0,
		"pm25":                  1,
		"gas":                   2,
	}},
}

// rawStatusKey strips the "#n" disambiguation marker a declared key may
// carry, the device reports the plain register.
func rawStatusKey(key string) string {
	base, _, _ := strings.Cut(key, "#")
	return base
}

func BridgeDevice(baseTopic string) Device {
	return Device{
		Id:           fmt.Sprintf("airctrl_bridge_%s", md5HashShort(baseTopic)),
		Manufacturer: "foXaCe",
		Model:        "philips-airpurifier-coap",
		Version:      versioninfo.Short(),
		Name:         fmt.Sprintf("Air purifier bridge %s", md5HashShort(baseTopic)),
	}
}

func BridgeSensors(bridgeDevice Device) []GenericSensor {

	var sensors []GenericSensor

	sensors = append(sensors, GenericSensor{
		Device:         bridgeDevice,
		Id:             SENSOR_ID_BRIDGE_STATE,
		SensorType:     SENSOR_TYPE_BINARY,
		Name:           "Connection state",
		DeviceClass:    DEVICE_CLASS_CONNECTIVITY,
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:       uniqueId(bridgeDevice.Id, SENSOR_ID_BRIDGE_STATE),
	})

	return sensors
}

// PurifierDevice builds the HA device descriptor for one purifier. The slug
// is stable per host and prefixes every entity id of the device.
func PurifierDevice(slug, name, model, version string) Device {
	if name == "" {
		name = fmt.Sprintf("Philips %s", model)
	}
	return Device{
		Id:           fmt.Sprintf("philips_%s", slug),
		Manufacturer: "Philips",
		Model:        model,
		Version:      version,
		Name:         name,
	}
}

func IdDevice(device Device) Device {
	return Device{
		Id:   device.Id,
		Name: device.Name,
	}
}

// DeviceSlug derives the stable entity id prefix for a device host.
func DeviceSlug(host string) string {
	return md5HashShort(host)
}

// EntityId builds the flat, globally unique entity id used in topics.
func EntityId(slug, suffix string) string {
	return fmt.Sprintf("%s_%s", slug, suffix)
}

func PurifierFan(device Device, slug string, desc *airctrl.Descriptor) *GenericFan {
	if !desc.CreateFan {
		return nil
	}
	return &GenericFan{
		Device:      device,
		Id:          EntityId(slug, SENSOR_ID_FAN),
		Name:        "Fan",
		UniqueId:    uniqueId(device.Id, SENSOR_ID_FAN),
		Icon:        "mdi:air-purifier",
		PresetModes: desc.PresetModes.Names(),
		SpeedCount:  len(desc.Speeds),
		Oscillation: desc.Oscillation != nil,
	}
}

// PurifierSensors announces the numeric and filter sensors a device actually
// reports, judged by the keys of its first status.
func PurifierSensors(device Device, slug string, desc *airctrl.Descriptor, status airctrl.RawStatus) []GenericSensor {
	var sensors []GenericSensor
	for _, spec := range purifierSensorSpecs {
		key, ok := presentKey(status, spec.RawKeys)
		if !ok || unavailable(desc, key) {
			continue
		}
		sensors = append(sensors, GenericSensor{
			Device:            device,
			Id:                EntityId(slug, spec.Id),
			SensorType:        SENSOR_TYPE_SENSOR,
			Name:              spec.Name,
			StateClass:        STATE_CLASS_MEASUREMENT,
			DeviceClass:       spec.DeviceClass,
			UnitOfMeasurement: spec.Unit,
			Icon:              spec.Icon,
			UniqueId:          uniqueId(device.Id, spec.Id),
		})
	}
	for _, ft := range airctrl.FilterTypes {
		id := filterSensorIds[ft.Key]
		if _, ok := status[ft.Key]; !ok || unavailable(desc, ft.Key) || id == "" {
			continue
		}
		unit := "%"
		if ft.TotalKey == "" {
			unit = "h"
		}
		sensors = append(sensors, GenericSensor{
			Device:            device,
			Id:                EntityId(slug, id),
			SensorType:        SENSOR_TYPE_SENSOR,
			Name:              ft.Name,
			UnitOfMeasurement: unit,
			EntityCategory:    ENTITY_CLASS_DIAGNOSTIC,
			Icon:              "mdi:air-filter",
			UniqueId:          uniqueId(device.Id, id),
		})
	}
	if len(desc.BinarySensors) > 0 {
		sensors = append(sensors, GenericSensor{
			Device:         device,
			Id:             EntityId(slug, SENSOR_ID_ERROR),
			SensorType:     SENSOR_TYPE_BINARY,
			Name:           "Problem",
			DeviceClass:    DEVICE_CLASS_PROBLEM,
			EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
			UniqueId:       uniqueId(device.Id, SENSOR_ID_ERROR),
		})
	}
	return sensors
}

func PurifierSwitches(device Device, slug string, desc *airctrl.Descriptor) []GenericSwitch {
	var switches []GenericSwitch
	for _, key := range append(append([]string{}, desc.Switches...), desc.Lights...) {
		spec, ok := switchSpecs[key]
		if !ok {
			continue
		}
		switches = append(switches, GenericSwitch{
			Device:   device,
			Id:       EntityId(slug, spec.Id),
			Name:     spec.Name,
			UniqueId: uniqueId(device.Id, spec.Id),
			Icon:     spec.Icon,
		})
	}
	return switches
}

func PurifierInputNumbers(device Device, slug string, desc *airctrl.Descriptor) []GenericInputNumber {
	var numbers []GenericInputNumber
	for _, key := range append(append([]string{}, desc.Numbers...), desc.Lights...) {
		spec, ok := numberSpecs[key]
		if !ok {
			continue
		}
		numbers = append(numbers, GenericInputNumber{
			Device:   device,
			Id:       EntityId(slug, spec.Id),
			Name:     spec.Name,
			UniqueId: uniqueId(device.Id, spec.Id),
			Icon:     spec.Icon,
			Min:      spec.Min,
			Max:      spec.Max,
			Step:     spec.Step,
			Mode:     INPUT_NUMBER_MODE_SLIDER,
		})
	}
	return numbers
}

func PurifierSelects(device Device, slug string, desc *airctrl.Descriptor) []GenericSelect {
	var selects []GenericSelect
	for _, key := range desc.Selects {
		spec, ok := selectSpecs[key]
		if !ok {
			continue
		}
		options := make([]string, 0, len(spec.Options))
		for label := range spec.Options {
			options = append(options, label)
		}
		sort.Strings(options)
		selects = append(selects, GenericSelect{
			Device:   device,
			Id:       EntityId(slug, spec.Id),
			Name:     spec.Name,
			UniqueId: uniqueId(device.Id, spec.Id),
			Icon:     spec.Icon,
			Options:  options,
		})
	}
	return selects
}

// ResolveSwitchCommand maps an entity id suffix and payload back to the raw
// key and value to write for this model.
func ResolveSwitchCommand(desc *airctrl.Descriptor, suffix string, on bool) (string, any, bool) {
	for _, key := range append(append([]string{}, desc.Switches...), desc.Lights...) {
		spec, ok := switchSpecs[key]
		if !ok || spec.Id != suffix {
			continue
		}
		if on {
			return key, spec.On, true
		}
		return key, spec.Off, true
	}
	return "", nil, false
}

// ResolveNumberCommand maps an entity id suffix and value back to a raw
// write, clamping to the declared range.
func ResolveNumberCommand(desc *airctrl.Descriptor, suffix string, value float64) (string, any, bool) {
	for _, key := range append(append([]string{}, desc.Numbers...), desc.Lights...) {
		spec, ok := numberSpecs[key]
		if !ok || spec.Id != suffix {
			continue
		}
		if value < spec.Min {
			value = spec.Min
		}
		if value > spec.Max {
			value = spec.Max
		}
		return key, int(value), true
	}
	return "", nil, false
}

// ResolveSelectCommand maps an entity id suffix and option label back to a
// raw write.
func ResolveSelectCommand(desc *airctrl.Descriptor, suffix, label string) (string, any, bool) {
	for _, key := range desc.Selects {
		spec, ok := selectSpecs[key]
		if !ok || spec.Id != suffix {
			continue
		}
		value, ok := spec.Options[label]
		if !ok {
			return "", nil, false
		}
		return key, value, true
	}
	return "", nil, false
}

// SensorReading is a projected numeric sensor value, id suffix plus value.
type SensorReading struct {
	Id       string
	Value    float64
	Decimals uint
}

type SwitchReading struct {
	Id string
	On bool
}

type NumberReading struct {
	Id    string
	Value float64
}

type SelectReading struct {
	Id    string
	Value string
}

// PurifierSensorReadings projects the numeric and filter sensor values out
// of a raw status. Keys the device does not report are skipped.
func PurifierSensorReadings(desc *airctrl.Descriptor, status airctrl.RawStatus) []SensorReading {
	var readings []SensorReading
	for _, spec := range purifierSensorSpecs {
		key, ok := presentKey(status, spec.RawKeys)
		if !ok || unavailable(desc, key) {
			continue
		}
		value, ok := numericValue(status[key])
		if !ok {
			continue
		}
		readings = append(readings, SensorReading{Id: spec.Id, Value: value, Decimals: spec.Decimals})
	}
	for _, ft := range airctrl.FilterTypes {
		id := filterSensorIds[ft.Key]
		raw, present := status[ft.Key]
		if !present || unavailable(desc, ft.Key) || id == "" {
			continue
		}
		value, ok := numericValue(raw)
		if !ok {
			continue
		}
		if ft.TotalKey != "" {
			total, ok := numericValue(status[ft.TotalKey])
			if !ok || total <= 0 {
				continue
			}
			value = math.Round(100 * value / total)
		}
		readings = append(readings, SensorReading{Id: id, Value: value})
	}
	return readings
}

func PurifierSwitchReadings(desc *airctrl.Descriptor, status airctrl.RawStatus) []SwitchReading {
	var readings []SwitchReading
	for _, key := range append(append([]string{}, desc.Switches...), desc.Lights...) {
		spec, ok := switchSpecs[key]
		raw, present := status[key]
		if !ok || !present {
			continue
		}
		readings = append(readings, SwitchReading{Id: spec.Id, On: valueEqual(raw, spec.On)})
	}
	return readings
}

func PurifierNumberReadings(desc *airctrl.Descriptor, status airctrl.RawStatus) []NumberReading {
	var readings []NumberReading
	for _, key := range append(append([]string{}, desc.Numbers...), desc.Lights...) {
		spec, ok := numberSpecs[key]
		raw, present := status[key]
		if !ok || !present {
			continue
		}
		value, ok := numericValue(raw)
		if !ok {
			continue
		}
		readings = append(readings, NumberReading{Id: spec.Id, Value: value})
	}
	return readings
}

func PurifierSelectReadings(desc *airctrl.Descriptor, status airctrl.RawStatus) []SelectReading {
	var readings []SelectReading
	for _, key := range desc.Selects {
		spec, ok := selectSpecs[key]
		raw, present := status[rawStatusKey(key)]
		if !ok || !present {
			continue
		}
		value := airctrl.ValueUnknown
		for label, optValue := range spec.Options {
			if valueEqual(raw, optValue) {
				value = label
				break
			}
		}
		readings = append(readings, SelectReading{Id: spec.Id, Value: value})
	}
	return readings
}

// PurifierProblem reports whether any declared error register is non-zero.
// The second return is false when the model has no error register.
func PurifierProblem(desc *airctrl.Descriptor, status airctrl.RawStatus) (bool, bool) {
	if len(desc.BinarySensors) == 0 {
		return false, false
	}
	for _, key := range desc.BinarySensors {
		raw, present := status[key]
		if !present {
			continue
		}
		if value, ok := numericValue(raw); ok && value != 0 {
			return true, true
		}
	}
	return false, true
}

func presentKey(status airctrl.RawStatus, keys []string) (string, bool) {
	for _, key := range keys {
		if _, ok := status[key]; ok {
			return key, true
		}
	}
	return "", false
}

func unavailable(desc *airctrl.Descriptor, key string) bool {
	for _, k := range desc.UnavailableSensors {
		if k == key {
			return true
		}
	}
	for _, k := range desc.UnavailableFilters {
		if k == key {
			return true
		}
	}
	return false
}

func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func valueEqual(a, b any) bool {
	if a == b {
		return true
	}
	fa, oka := numericValue(a)
	fb, okb := numericValue(b)
	return oka && okb && fa == fb
}

func uniqueId(baseId, id string) string {
	return fmt.Sprintf("uid_%s_%s", baseId, id)
}

func md5Hash(text string) string {
	hash := md5.Sum([]byte(text))
	return hex.EncodeToString(hash[:])
}

func md5HashShort(text string) string {
	return md5Hash(text)[0:8]
}
