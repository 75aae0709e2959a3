package airctrl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterStatus(pre, preTotal float64) RawStatus {
	return RawStatus{
		KeyFilterPre:      pre,
		KeyFilterPreTotal: preTotal,
	}
}

func newTestTracker(t *testing.T, model string) *FilterTracker {
	t.Helper()
	d, err := Resolve(model, "")
	require.NoError(t, err)
	return NewFilterTracker("dev-1", "Bedroom", d, 0)
}

func TestFilterTrackerFirstObservationIsSilent(t *testing.T) {
	tr := newTestTracker(t, "AC2889")

	// already low at startup, no alert but the state is remembered
	alerts := tr.Update(filterStatus(5, 360))
	assert.Empty(t, alerts)

	alerts = tr.Update(filterStatus(5, 360))
	assert.Empty(t, alerts)
}

func TestFilterTrackerAlertsOnFallingEdge(t *testing.T) {
	tr := newTestTracker(t, "AC2889")

	require.Empty(t, tr.Update(filterStatus(300, 360)))
	alerts := tr.Update(filterStatus(18, 360))

	require.Len(t, alerts, 1)
	a := alerts[0]
	assert.Equal(t, "dev-1", a.DeviceID)
	assert.Equal(t, "Bedroom", a.DeviceName)
	assert.Equal(t, KeyFilterPre, a.FilterKey)
	assert.Equal(t, "Pre-filter", a.FilterName)
	assert.Equal(t, 5, a.Percentage)
	assert.Equal(t, DefaultFilterAlertThreshold, a.Threshold)

	// still low next cycle, no repeat
	assert.Empty(t, tr.Update(filterStatus(17, 360)))
}

func TestFilterTrackerAlertsAgainAfterRecovery(t *testing.T) {
	tr := newTestTracker(t, "AC2889")

	require.Empty(t, tr.Update(filterStatus(20, 360)))
	require.Len(t, tr.Update(filterStatus(10, 360)), 1)

	// filter replaced, then wears down again
	require.Empty(t, tr.Update(filterStatus(360, 360)))
	assert.Len(t, tr.Update(filterStatus(10, 360)), 1)
}

func TestFilterTrackerPercentageRounding(t *testing.T) {
	tr := NewFilterTracker("dev-1", "Bedroom", mustResolve(t, "AC2889"), 50)

	require.Empty(t, tr.Update(filterStatus(360, 360)))
	// 178/360 rounds to 49, just under the threshold of 50
	alerts := tr.Update(filterStatus(178, 360))
	require.Len(t, alerts, 1)
	assert.Equal(t, 49, alerts[0].Percentage)

	// 180/360 is exactly 50 and not low
	tr2 := NewFilterTracker("dev-1", "Bedroom", mustResolve(t, "AC2889"), 50)
	require.Empty(t, tr2.Update(filterStatus(360, 360)))
	assert.Empty(t, tr2.Update(filterStatus(180, 360)))
}

func TestFilterTrackerHourBasedFilter(t *testing.T) {
	tr := newTestTracker(t, "AC2729")

	// the wick reports plain hours without a total
	require.Empty(t, tr.Update(RawStatus{KeyFilterWick: float64(500)}))
	alerts := tr.Update(RawStatus{KeyFilterWick: float64(48)})

	require.Len(t, alerts, 1)
	assert.Equal(t, KeyFilterWick, alerts[0].FilterKey)
	assert.Equal(t, -1, alerts[0].Percentage)
}

func TestFilterTrackerSkipsUnavailableFilters(t *testing.T) {
	d := mustResolve(t, "AC2889")
	clone := *d
	clone.UnavailableFilters = []string{KeyFilterPre}
	tr := NewFilterTracker("dev-1", "Bedroom", &clone, 0)

	require.Empty(t, tr.Update(filterStatus(300, 360)))
	assert.Empty(t, tr.Update(filterStatus(1, 360)))
}

func TestFilterTrackerIgnoresAbsentKeys(t *testing.T) {
	tr := newTestTracker(t, "AC2889")

	require.Empty(t, tr.Update(RawStatus{}))
	assert.Empty(t, tr.Update(RawStatus{}))
}

func mustResolve(t *testing.T, model string) *Descriptor {
	t.Helper()
	d, err := Resolve(model, "")
	require.NoError(t, err)
	return d
}
