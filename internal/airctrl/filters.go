package airctrl

import "math"

// DefaultFilterAlertThreshold is the remaining life percentage below which a
// filter counts as low.
const DefaultFilterAlertThreshold = 10

// filterLowHours applies to filters that report raw hours without a total:
// below this many hours remaining the filter counts as low.
const filterLowHours = 72

// FilterType describes one replaceable filter: the raw key holding remaining
// life, the key holding its total capacity (empty when the firmware reports
// plain hours) and a display name.
type FilterType struct {
	Key      string
	TotalKey string
	Name     string
}

// FilterTypes lists every filter any supported model reports. Models that
// lack one simply omit the key from their status, models that report a
// bogus value for a filter they do not have declare it in
// UnavailableFilters.
var FilterTypes = []FilterType{
	{Key: KeyFilterPre, TotalKey: KeyFilterPreTotal, Name: "Pre-filter"},
	{Key: KeyFilterHEPA, TotalKey: KeyFilterHEPATotal, Name: "HEPA filter"},
	{Key: KeyFilterActiveCarbon, TotalKey: KeyFilterActiveCarbonTotal, Name: "Active carbon filter"},
	{Key: KeyFilterWick, TotalKey: KeyFilterWickTotal, Name: "Wick"},
	{Key: KeyFilterNanoProtect, TotalKey: KeyFilterNanoProtectTotal, Name: "NanoProtect filter"},
	{Key: KeyFilterNanoProtectPrefilter, TotalKey: KeyFilterNanoProtectPrefilterTotal, Name: "NanoProtect pre-filter"},
}

// FilterAlert is raised once per filter when it crosses into the low range.
type FilterAlert struct {
	DeviceID   string
	DeviceName string
	FilterKey  string
	FilterName string
	// Percentage is the remaining life, -1 for hour based filters.
	Percentage int
	Threshold  int
}

// FilterTracker detects filters that newly became low. It is edge triggered:
// a filter already low in the previous observation does not alert again, and
// the very first observation after startup never alerts so a restart does
// not replay alerts for filters that were low all along.
type FilterTracker struct {
	deviceID   string
	deviceName string
	threshold  int
	filters    []FilterType
	prev       map[string]bool
	primed     bool
}

// NewFilterTracker builds a tracker for one device, skipping the filters the
// descriptor declares unavailable. threshold <= 0 selects the default.
func NewFilterTracker(deviceID, deviceName string, desc *Descriptor, threshold int) *FilterTracker {
	if threshold <= 0 {
		threshold = DefaultFilterAlertThreshold
	}
	var filters []FilterType
	for _, ft := range FilterTypes {
		if !containsString(desc.UnavailableFilters, ft.Key) {
			filters = append(filters, ft)
		}
	}
	return &FilterTracker{
		deviceID:   deviceID,
		deviceName: deviceName,
		threshold:  threshold,
		filters:    filters,
	}
}

// Update inspects a status and returns alerts for filters that were not low
// before and are low now.
func (t *FilterTracker) Update(status RawStatus) []FilterAlert {
	current := make(map[string]bool, len(t.filters))
	pct := make(map[string]int, len(t.filters))
	for _, ft := range t.filters {
		low, percentage, ok := t.check(ft, status)
		if !ok {
			continue
		}
		current[ft.Key] = low
		pct[ft.Key] = percentage
	}

	var alerts []FilterAlert
	if t.primed {
		for _, ft := range t.filters {
			if current[ft.Key] && !t.prev[ft.Key] {
				alerts = append(alerts, FilterAlert{
					DeviceID:   t.deviceID,
					DeviceName: t.deviceName,
					FilterKey:  ft.Key,
					FilterName: ft.Name,
					Percentage: pct[ft.Key],
					Threshold:  t.threshold,
				})
			}
		}
	}
	t.prev = current
	t.primed = true
	return alerts
}

// check classifies one filter. Filters with a total capacity are judged on
// the rounded remaining percentage, the rest on raw hours.
func (t *FilterTracker) check(ft FilterType, status RawStatus) (low bool, percentage int, ok bool) {
	raw, present := status[ft.Key]
	value, isNum := toFloat(raw)
	if !present || !isNum {
		return false, 0, false
	}
	if ft.TotalKey != "" {
		if rawTotal, has := status[ft.TotalKey]; has {
			if total, isNum := toFloat(rawTotal); isNum && total > 0 {
				percentage = int(math.Round(100 * value / total))
				return percentage < t.threshold, percentage, true
			}
		}
	}
	return value < filterLowHours, -1, true
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
