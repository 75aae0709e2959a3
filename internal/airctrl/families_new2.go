package airctrl

// The new2 generation keeps the register style keys but switches every value
// to small integers. D0310C is the program register for nearly the whole
// line; the fan and heater models combine it with D0310A and D0310D, and use
// negative program values for their airflow modes. Power is the integer pair
// 1/0 and every pattern carries it, so activating a program on a powered off
// device powers it on in the same write.

const new2Base = "new2-base"

var new2Families = []Family{
	{
		Name:     new2Base,
		Abstract: true,
		PowerKey: KeyNew2Power,
		PowerOn:  1,
		PowerOff: 0,
		Attributes: []Attribute{
			{Name: AttrName, RawKey: KeyNew2Name},
			{Name: AttrModelID, RawKey: KeyNew2ModelID},
			{Name: AttrProductID, RawKey: KeyProductID},
			{Name: AttrDeviceID, RawKey: KeyDeviceID},
			{Name: AttrSoftwareVersion, RawKey: KeyNew2SoftwareVersion},
			{Name: AttrWifiVersion, RawKey: KeyWifiVersion},
			{Name: AttrErrorCode, RawKey: KeyNew2ErrorCode},
			{Name: AttrRuntime, RawKey: KeyRuntime, Transform: runtimeText},
		},
	},
	// the Combo firmware of the AC0850 line reports new2 registers while the
	// plain AWS firmware stays on the new generation keys
	{
		Name:     "AC0850 Combo",
		Base:     new2Base,
		Abstract: true,
		PresetModes: ModeList{
			{Name: PresetAuto, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 0}},
			{Name: PresetTurbo, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 18}},
			{Name: PresetSleep, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 17}},
		},
		Speeds: ModeList{
			{Name: PresetSleep, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 17}},
			{Name: PresetTurbo, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 18}},
		},
		UnavailableFilters: []string{KeyFilterNanoProtectPrefilter},
	},
	{Name: "AC0850/11 AWS_Philips_AIR_Combo", Base: "AC0850 Combo"},
	{Name: "AC0850/20 AWS_Philips_AIR_Combo", Base: "AC0850 Combo"},
	{Name: "AC0850/31 AWS_Philips_AIR_Combo", Base: "AC0850 Combo"},
	{Name: "AC0850/41 AWS_Philips_AIR_Combo", Base: "AC0850 Combo"},
	{Name: "AC0850/70 AWS_Philips_AIR_Combo", Base: "AC0850 Combo"},
	{Name: "AC0850/81", Base: "AC0850 Combo"},
	{
		Name: "AC0950",
		Base: new2Base,
		PresetModes: ModeList{
			{Name: PresetAuto, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 0}},
			{Name: PresetTurbo, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 18}},
			{Name: PresetMedium, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 19}},
			{Name: PresetSleep, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 17}},
		},
		Speeds: ModeList{
			{Name: PresetSleep, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 17}},
			{Name: PresetMedium, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 19}},
			{Name: PresetTurbo, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 18}},
		},
		UnavailableFilters: []string{KeyFilterNanoProtectPrefilter},
		Switches:           []string{KeyNew2ChildLock, KeyNew2Beep},
		Lights:             []string{KeyNew2DisplayLight},
		Selects:            []string{KeyNew2GasPreferredIndex},
	},
	{Name: "AC0951", Base: "AC0950"},
	{
		Name:     "AC32xx",
		Base:     new2Base,
		Abstract: true,
		PresetModes: ModeList{
			{Name: PresetAuto, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 0}},
			{Name: PresetMedium, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 19}},
			{Name: PresetTurbo, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 18}},
			{Name: PresetSleep, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 17}},
		},
		Speeds: ModeList{
			{Name: PresetSpeed1, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 1}},
			{Name: PresetSpeed2, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 2}},
			{Name: PresetSpeed3, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 3}},
			{Name: PresetSpeed4, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 4}},
			{Name: PresetSpeed5, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 5}},
		},
		Switches: []string{KeyNew2ChildLock, KeyNew2Beep},
		Lights:   []string{KeyNew2DisplayLight},
	},
	{Name: "AC3210", Base: "AC32xx", Selects: []string{KeyNewPreferredIndex}},
	{Name: "AC3220", Base: "AC3210"},
	{Name: "AC3221", Base: "AC3210"},
	{Name: "AC4220", Base: "AC32xx", Selects: []string{KeyNew2GasPreferredIndex}},
	{Name: "AC4221", Base: "AC4220"},
	{
		Name:          "AC3420",
		Base:          "AC0950",
		Humidifier:    true,
		Numbers:       []string{KeyNew2HumidityTarget},
		BinarySensors: []string{KeyNew2ErrorCode},
	},
	{Name: "AC3421", Base: "AC3420"},
	{
		Name: "AC3737",
		Base: new2Base,
		PresetModes: ModeList{
			{Name: PresetAuto, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 2, KeyNew2ModeB: 0}},
			{Name: PresetSleep, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 2, KeyNew2ModeB: 17}},
			{Name: PresetTurbo, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 3, KeyNew2ModeB: 18}},
		},
		Speeds: ModeList{
			{Name: PresetSleep, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 2, KeyNew2ModeB: 17}},
			{Name: PresetSpeed1, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 2, KeyNew2ModeB: 1}},
			{Name: PresetSpeed2, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 2, KeyNew2ModeB: 2}},
			{Name: PresetTurbo, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 3, KeyNew2ModeB: 18}},
		},
		Humidifier:    true,
		Numbers:       []string{KeyNew2HumidityTarget},
		Switches:      []string{KeyNew2ChildLock},
		Lights:        []string{KeyNew2DisplayLight2},
		BinarySensors: []string{KeyNew2ErrorCode},
		// the combo firmware mirrors a fan speed field that never updates
		UnavailableSensors: []string{KeyNew2FanSpeed},
	},
	{
		Name:     "AMFxxx",
		Base:     new2Base,
		Abstract: true,
		PresetModes: ModeList{
			{Name: PresetAuto, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 0}},
			{Name: PresetSleep, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 17}},
			{Name: PresetTurbo, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 18}},
		},
		Speeds: ModeList{
			{Name: PresetSpeed1, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 1}},
			{Name: PresetSpeed2, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 2}},
			{Name: PresetSpeed3, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 3}},
			{Name: PresetSpeed4, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 4}},
			{Name: PresetSpeed5, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 5}},
			{Name: PresetSpeed6, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 6}},
			{Name: PresetSpeed7, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 7}},
			{Name: PresetSpeed8, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 8}},
			{Name: PresetSpeed9, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 9}},
			{Name: PresetSpeed10, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 10}},
		},
		Switches: []string{KeyNew2ChildLock, KeyNew2Beep},
		Lights:   []string{KeyNew2DisplayLight},
		Selects:  []string{KeyNew2Timer},
		Numbers:  []string{KeyNew2Oscillation},
	},
	{
		Name:               "AMF765",
		Base:               "AMFxxx",
		Selects:            []string{KeyNew2Circulation},
		UnavailableSensors: []string{KeyNew2Gas},
	},
	{
		Name:    "AMF870",
		Base:    "AMFxxx",
		Heater:  true,
		Selects: []string{KeyNew2GasPreferredIndex, KeyNew2Heating},
		Numbers: []string{KeyNew2TargetTemp},
	},
	{
		Name:   "CX3120",
		Base:   new2Base,
		Heater: true,
		PresetModes: ModeList{
			{Name: PresetAutoPlus, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 3, KeyNew2ModeB: 0}},
			{Name: PresetVentilation, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 1, KeyNew2ModeB: -127}},
			{Name: PresetLow, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 3, KeyNew2ModeB: 66}},
			{Name: PresetMedium, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 3, KeyNew2ModeB: 67}},
			{Name: PresetHigh, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 3, KeyNew2ModeB: 65}},
		},
		Speeds: ModeList{
			{Name: PresetLow, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 3, KeyNew2ModeB: 66}},
			{Name: PresetMedium, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 3, KeyNew2ModeB: 67}},
			{Name: PresetHigh, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 3, KeyNew2ModeB: 65}},
		},
		Oscillation:        &Oscillation{Key: KeyNew2Oscillation, Off: 0, On: 17920},
		Switches:           []string{KeyNew2ChildLock},
		Numbers:            []string{KeyNew2TargetTemp},
		UnavailableSensors: []string{KeyNew2FanSpeed, KeyNew2Gas},
	},
	{
		Name:   "CX5120",
		Base:   new2Base,
		Heater: true,
		PresetModes: ModeList{
			{Name: PresetAuto, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 3, KeyNew2ModeB: 0}},
			{Name: PresetVentilation, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 1, KeyNew2ModeB: -127}},
			{Name: PresetLow, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 3, KeyNew2ModeB: 66}},
			{Name: PresetHigh, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 3, KeyNew2ModeB: 65}},
		},
		Speeds: ModeList{
			{Name: PresetLow, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 3, KeyNew2ModeB: 66}},
			{Name: PresetHigh, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 3, KeyNew2ModeB: 65}},
		},
		Oscillation: &Oscillation{
			Key: KeyNew2Oscillation,
			Off: 0,
			On:  17920,
			OnMap: map[string]any{
				"oscillate": 17920,
			},
		},
		Switches:           []string{KeyNew2Beep},
		Lights:             []string{KeyNew2DisplayLight2},
		Numbers:            []string{KeyNew2TargetTemp},
		UnavailableSensors: []string{KeyNew2FanSpeed, KeyNew2Gas},
	},
	{
		Name: "CX3550",
		Base: new2Base,
		PresetModes: ModeList{
			{Name: PresetSpeed1, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 1, KeyNew2ModeB: 1, KeyNew2ModeC: 1}},
			{Name: PresetSpeed2, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 1, KeyNew2ModeB: 2, KeyNew2ModeC: 2}},
			{Name: PresetSpeed3, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 1, KeyNew2ModeB: 3, KeyNew2ModeC: 3}},
			{Name: PresetNatural, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 1, KeyNew2ModeB: -126, KeyNew2ModeC: 1}},
			{Name: PresetSleep, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 1, KeyNew2ModeB: 17, KeyNew2ModeC: 2}},
		},
		Speeds: ModeList{
			{Name: PresetSpeed1, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 1, KeyNew2ModeB: 1, KeyNew2ModeC: 1}},
			{Name: PresetSpeed2, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 1, KeyNew2ModeB: 2, KeyNew2ModeC: 2}},
			{Name: PresetSpeed3, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 1, KeyNew2ModeB: 3, KeyNew2ModeC: 3}},
		},
		Oscillation: &Oscillation{Key: KeyNew2Oscillation, Off: 0, On: 17920},
		Switches:    []string{KeyNew2Beep},
	},
	{
		Name:     "HUxxxx",
		Base:     new2Base,
		Abstract: true,
		NoFan:    true,
		PresetModes: ModeList{
			{Name: PresetAuto, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 0}},
			{Name: PresetSleep, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 17}},
			{Name: PresetMedium, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 19}},
			{Name: PresetHigh, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 65}},
		},
		Speeds: ModeList{
			{Name: PresetSleep, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 17}},
			{Name: PresetMedium, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 19}},
			{Name: PresetHigh, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeB: 65}},
		},
		Humidifier:    true,
		Switches:      []string{KeyNew2Beep},
		Numbers:       []string{KeyNew2HumidityTarget},
		BinarySensors: []string{KeyNew2ErrorCode},
	},
	{Name: "HU1509", Base: "HUxxxx"},
	{Name: "HU1510", Base: "HUxxxx"},
	{Name: "HU5710", Base: "HUxxxx", Switches: []string{KeyNew2ChildLock}},
}

func allFamilies() []Family {
	all := make([]Family, 0, len(legacyFamilies)+len(newFamilies)+len(new2Families))
	all = append(all, legacyFamilies...)
	all = append(all, newFamilies...)
	all = append(all, new2Families...)
	return all
}
