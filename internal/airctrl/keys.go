package airctrl

// Raw status keys as used by the three incompatible firmware generations.
// Legacy devices use short mnemonic keys with string-coded values, the newer
// generations use opaque "D.." registers with either string labels (new) or
// small integers (new2).

// legacy generation
const (
	KeyName            = "name"
	KeyType            = "type"
	KeyModelID         = "modelid"
	KeyProductID       = "ProductId"
	KeyDeviceID        = "DeviceId"
	KeyDeviceVersion   = "DeviceVersion"
	KeySoftwareVersion = "swversion"
	KeyWifiVersion     = "WifiVersion"
	KeyErrorCode       = "err"
	KeyLanguage        = "language"
	KeyRuntime         = "Runtime"
	KeyPower           = "pwr"
	KeyMode            = "mode"
	KeySpeed           = "om"
	KeyChildLock       = "cl"
	KeyLightBrightness = "aqil"
	KeyDisplayLight    = "uil"
	KeyPreferredIndex  = "ddp"
	// the gas-capable models reuse "ddp" with a different label map, the
	// marker keeps both entries apart in declaration tables
	KeyGasPreferredIndex = "ddp#1"
	KeyFunction          = "func"
	KeyHumidity          = "rh"
	KeyHumidityTarget    = "rhset"
	KeyTemperature       = "temp"
	KeyPM25              = "pm25"
	KeyAllergenIndex     = "iaql"
	KeyTVOC              = "tvoc"
	KeyWaterLevel        = "wl"
	KeyTimerHours        = "dt"
	KeyTimerMinutesLeft  = "dtrs"
)

// legacy filter keys
const (
	KeyFilterPre               = "fltsts0"
	KeyFilterPreTotal          = "flttotal0"
	KeyFilterHEPA              = "fltsts1"
	KeyFilterHEPATotal         = "flttotal1"
	KeyFilterActiveCarbon      = "fltsts2"
	KeyFilterActiveCarbonTotal = "flttotal2"
	KeyFilterWick              = "wicksts"
	KeyFilterWickTotal         = "wicktotal"
)

// new generation
const (
	KeyNewName            = "D01-03"
	KeyNewModelID         = "D01-05"
	KeyNewLanguage        = "D01-07"
	KeyNewSoftwareVersion = "D01-21"
	KeyNewPower           = "D03-02"
	KeyNewDisplayLight    = "D03-05"
	KeyNewMode            = "D03-12"
	KeyNewAllergenIndex   = "D03-32"
	KeyNewPM25            = "D03-33"
	KeyNewPreferredIndex  = "D03-42"
)

// new generation filter keys
const (
	KeyFilterNanoProtect               = "D05-13"
	KeyFilterNanoProtectTotal          = "D05-07"
	KeyFilterNanoProtectPrefilter      = "D05-14"
	KeyFilterNanoProtectPrefilterTotal = "D05-08"
)

// new2 generation
const (
	KeyNew2Name              = "D01S03"
	KeyNew2ModelID           = "D01S05"
	KeyNew2SoftwareVersion   = "D01S12"
	KeyNew2Power             = "D03102"
	KeyNew2ChildLock         = "D03103"
	KeyNew2ModeA             = "D0310A"
	KeyNew2ModeB             = "D0310C"
	KeyNew2ModeC             = "D0310D"
	KeyNew2TargetTemp        = "D0310E"
	KeyNew2FanSpeed          = "D0310F"
	KeyNew2Oscillation       = "D0320F"
	KeyNew2Gas               = "D03122"
	KeyNew2HumidityTarget    = "D03128"
	KeyNew2Beep              = "D03130"
	KeyNew2DisplayLight      = "D0312D"
	KeyNew2DisplayLight2     = "D03105"
	KeyNew2AmbientLightMode  = "D03137"
	KeyNew2Timer             = "D03110"
	KeyNew2Circulation       = "D0320A"
	KeyNew2Heating           = "D0320B"
	KeyNew2PreferredIndex    = "D0312C"
	KeyNew2GasPreferredIndex = "D0312C#1"
	KeyNew2ErrorCode         = "D03240"
)

// attribute display names used in projections and MQTT payloads
const (
	AttrName            = "name"
	AttrType            = "type"
	AttrModelID         = "model_id"
	AttrProductID       = "product_id"
	AttrDeviceID        = "device_id"
	AttrDeviceVersion   = "device_version"
	AttrSoftwareVersion = "software_version"
	AttrWifiVersion     = "wifi_version"
	AttrErrorCode       = "error_code"
	AttrLanguage        = "language"
	AttrPreferredIndex  = "preferred_index"
	AttrRuntime         = "runtime"
)

// preset mode names shared by the model tables
const (
	PresetAuto         = "auto"
	PresetAutoPlus     = "auto_plus"
	PresetAllergen     = "allergen"
	PresetBacteria     = "bacteria"
	PresetGas          = "gas"
	PresetPollution    = "pollution"
	PresetGentle       = "gentle"
	PresetNight        = "night"
	PresetSleep        = "sleep"
	PresetSleepAllergy = "sleep_allergy"
	PresetNatural      = "natural"
	PresetVentilation  = "ventilation"
	PresetLow          = "low"
	PresetMedium       = "medium"
	PresetHigh         = "high"
	PresetTurbo        = "turbo"
	PresetSpeed1       = "speed_1"
	PresetSpeed2       = "speed_2"
	PresetSpeed3       = "speed_3"
	PresetSpeed4       = "speed_4"
	PresetSpeed5       = "speed_5"
	PresetSpeed6       = "speed_6"
	PresetSpeed7       = "speed_7"
	PresetSpeed8       = "speed_8"
	PresetSpeed9       = "speed_9"
	PresetSpeed10      = "speed_10"
)
