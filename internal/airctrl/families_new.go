package airctrl

// The new generation moved to "Dxx-yy" register keys with spelled out string
// values: power is "ON"/"OFF" and the single D03-12 mode register carries
// labels like "Auto General" for both programs and manual speeds.

const newBase = "new-base"

var newPreferredIndexMap = map[any]string{
	"0": "indoor_allergen_index",
	"1": "pm25",
}

var newFamilies = []Family{
	{
		Name:     newBase,
		Abstract: true,
		PowerKey: KeyNewPower,
		PowerOn:  "ON",
		PowerOff: "OFF",
		Attributes: []Attribute{
			{Name: AttrName, RawKey: KeyNewName},
			{Name: AttrModelID, RawKey: KeyNewModelID},
			{Name: AttrProductID, RawKey: KeyProductID},
			{Name: AttrDeviceID, RawKey: KeyDeviceID},
			{Name: AttrLanguage, RawKey: KeyNewLanguage},
			{Name: AttrSoftwareVersion, RawKey: KeyNewSoftwareVersion},
			{Name: AttrWifiVersion, RawKey: KeyWifiVersion},
			{Name: AttrPreferredIndex, RawKey: KeyNewPreferredIndex, ValueMap: newPreferredIndexMap},
			{Name: AttrRuntime, RawKey: KeyRuntime, Transform: runtimeText},
		},
		Selects: []string{KeyNewPreferredIndex},
	},
	{
		Name:     "AC0850",
		Base:     newBase,
		Abstract: true,
		PresetModes: ModeList{
			{Name: PresetAuto, Pattern: Pattern{KeyNewPower: "ON", KeyNewMode: "Auto General"}},
			{Name: PresetTurbo, Pattern: Pattern{KeyNewPower: "ON", KeyNewMode: "Turbo"}},
			{Name: PresetSleep, Pattern: Pattern{KeyNewPower: "ON", KeyNewMode: "Sleep"}},
		},
		Speeds: ModeList{
			{Name: PresetSleep, Pattern: Pattern{KeyNewPower: "ON", KeyNewMode: "Sleep"}},
			{Name: PresetTurbo, Pattern: Pattern{KeyNewPower: "ON", KeyNewMode: "Turbo"}},
		},
		// the status reports a prefilter block the hardware does not have
		UnavailableFilters: []string{KeyFilterNanoProtectPrefilter},
	},
	{Name: "AC0850/11 AWS_Philips_AIR", Base: "AC0850"},
	{Name: "AC0850/20 AWS_Philips_AIR", Base: "AC0850"},
	{Name: "AC0850/31 AWS_Philips_AIR", Base: "AC0850"},
	{Name: "AC0850/41 AWS_Philips_AIR", Base: "AC0850"},
	{Name: "AC0850/70 AWS_Philips_AIR", Base: "AC0850"},
	{Name: "AC0850/85", Base: "AC0850"},
	{
		Name: "AC1715",
		Base: newBase,
		PresetModes: ModeList{
			{Name: PresetAuto, Pattern: Pattern{KeyNewPower: "ON", KeyNewMode: "Auto General"}},
			{Name: PresetSpeed1, Pattern: Pattern{KeyNewPower: "ON", KeyNewMode: "Gentle/Speed 1"}},
			{Name: PresetSpeed2, Pattern: Pattern{KeyNewPower: "ON", KeyNewMode: "Speed 2"}},
			{Name: PresetTurbo, Pattern: Pattern{KeyNewPower: "ON", KeyNewMode: "Turbo"}},
			{Name: PresetSleep, Pattern: Pattern{KeyNewPower: "ON", KeyNewMode: "Sleep"}},
		},
		Speeds: ModeList{
			{Name: PresetSleep, Pattern: Pattern{KeyNewPower: "ON", KeyNewMode: "Sleep"}},
			{Name: PresetSpeed1, Pattern: Pattern{KeyNewPower: "ON", KeyNewMode: "Gentle/Speed 1"}},
			{Name: PresetSpeed2, Pattern: Pattern{KeyNewPower: "ON", KeyNewMode: "Speed 2"}},
			{Name: PresetTurbo, Pattern: Pattern{KeyNewPower: "ON", KeyNewMode: "Turbo"}},
		},
		Lights: []string{KeyNewDisplayLight},
	},
}
