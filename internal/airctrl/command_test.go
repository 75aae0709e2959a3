package airctrl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	batches []map[string]any
	err     error
}

func (w *recordingWriter) SetControlValues(_ context.Context, values map[string]any) error {
	if w.err != nil {
		return w.err
	}
	batch := make(map[string]any, len(values))
	for k, v := range values {
		batch[k] = v
	}
	w.batches = append(w.batches, batch)
	return nil
}

func newTestCommander(t *testing.T, model string, status RawStatus) (*Commander, *Store, *recordingWriter) {
	t.Helper()
	d, err := Resolve(model, "")
	require.NoError(t, err)
	store := NewStore()
	store.Replace(status)
	w := &recordingWriter{}
	return NewCommander(d, store, w), store, w
}

func TestTurnOnWritesPowerOnly(t *testing.T) {
	c, store, w := newTestCommander(t, "AC2889", RawStatus{KeyPower: "0"})

	require.NoError(t, c.TurnOn(context.Background()))
	require.Len(t, w.batches, 1)
	assert.Equal(t, map[string]any{KeyPower: "1"}, w.batches[0])

	// optimistic update, the projection flips before the next observation
	v, _ := store.Get(KeyPower)
	assert.Equal(t, "1", v)
}

func TestTurnOff(t *testing.T) {
	c, _, w := newTestCommander(t, "AC2889", RawStatus{KeyPower: "1"})

	require.NoError(t, c.TurnOff(context.Background()))
	require.Len(t, w.batches, 1)
	assert.Equal(t, map[string]any{KeyPower: "0"}, w.batches[0])
}

func TestSetPresetModeSingleBatch(t *testing.T) {
	c, _, w := newTestCommander(t, "AC2889",
		RawStatus{KeyPower: "1", KeyMode: "P"})

	require.NoError(t, c.SetPresetMode(context.Background(), PresetSleep))
	require.Len(t, w.batches, 1)
	assert.Equal(t, map[string]any{KeyPower: "1", KeyMode: "M", KeySpeed: "s"}, w.batches[0])
}

func TestSetPresetModePowersOnDevice(t *testing.T) {
	c, store, w := newTestCommander(t, "AC2729", RawStatus{KeyPower: "0"})

	// the pattern carries the power key, so one write both powers the
	// device on and selects the program
	require.NoError(t, c.SetPresetMode(context.Background(), PresetAuto))
	require.Len(t, w.batches, 1)
	assert.Equal(t, map[string]any{KeyPower: "1", KeyMode: "P"}, w.batches[0])

	v, _ := store.Get(KeyPower)
	assert.Equal(t, "1", v)
}

func TestSetPercentagePowersOnDevice(t *testing.T) {
	c, _, w := newTestCommander(t, "AC0950", RawStatus{KeyNew2Power: float64(0)})

	require.NoError(t, c.SetPercentage(context.Background(), 100))
	require.Len(t, w.batches, 1)
	assert.Equal(t, map[string]any{KeyNew2Power: 1, KeyNew2ModeB: 18}, w.batches[0])
}

func TestSetPresetModeUndeclaredIsNoop(t *testing.T) {
	c, _, w := newTestCommander(t, "AC2889", RawStatus{KeyPower: "1"})

	require.NoError(t, c.SetPresetMode(context.Background(), "plasma"))
	assert.Empty(t, w.batches)
}

func TestSetPresetModeWritesDeclaredKeys(t *testing.T) {
	// a key substitution only affects how the status is read, the write
	// always carries the declared pattern
	d := &Descriptor{
		PowerKey: KeyNew2Power,
		PowerOn:  1,
		PowerOff: 0,
		PresetModes: ModeList{
			{Name: PresetSleep, Pattern: Pattern{KeyNew2Power: 1, KeyNew2ModeA: 17}},
		},
		ReplacePreset: &KeyReplace{From: KeyNew2ModeA, To: KeyNew2ModeB},
	}
	store := NewStore()
	store.Replace(RawStatus{KeyNew2Power: float64(1)})
	w := &recordingWriter{}
	c := NewCommander(d, store, w)

	require.NoError(t, c.SetPresetMode(context.Background(), PresetSleep))
	require.Len(t, w.batches, 1)
	assert.Equal(t, map[string]any{KeyNew2Power: 1, KeyNew2ModeA: 17}, w.batches[0])
}

func TestSetPercentageZeroTurnsOff(t *testing.T) {
	c, _, w := newTestCommander(t, "AC2889",
		RawStatus{KeyPower: "1", KeyMode: "M", KeySpeed: "2"})

	require.NoError(t, c.SetPercentage(context.Background(), 0))
	require.Len(t, w.batches, 1)
	assert.Equal(t, map[string]any{KeyPower: "0"}, w.batches[0])
}

func TestSetPercentagePicksSpeedBand(t *testing.T) {
	c, _, w := newTestCommander(t, "AC2889", RawStatus{KeyPower: "1"})

	// five speeds, 40% falls into the second band
	require.NoError(t, c.SetPercentage(context.Background(), 40))
	require.Len(t, w.batches, 1)
	assert.Equal(t, map[string]any{KeyPower: "1", KeyMode: "M", KeySpeed: "1"}, w.batches[0])
}

func TestSetOscillation(t *testing.T) {
	c, _, w := newTestCommander(t, "CX5120", RawStatus{KeyNew2Power: float64(1)})

	require.NoError(t, c.SetOscillation(context.Background(), true))
	require.NoError(t, c.SetOscillation(context.Background(), false))
	require.Len(t, w.batches, 2)
	assert.Equal(t, map[string]any{KeyNew2Oscillation: 17920}, w.batches[0])
	assert.Equal(t, map[string]any{KeyNew2Oscillation: 0}, w.batches[1])
}

func TestSetOscillationUnsupportedIsNoop(t *testing.T) {
	c, _, w := newTestCommander(t, "AC2889", RawStatus{KeyPower: "1"})

	require.NoError(t, c.SetOscillation(context.Background(), true))
	assert.Empty(t, w.batches)
}

// sequencedDescriptor clones the AC1214 descriptor with a short settle delay
// so staged command tests do not sleep for real.
func sequencedDescriptor(t *testing.T) *Descriptor {
	t.Helper()
	orig, err := Resolve("AC1214", "")
	require.NoError(t, err)
	d := *orig
	seq := *orig.Sequenced
	seq.SettleDelay = time.Millisecond
	d.Sequenced = &seq
	return &d
}

func TestSequencedPresetFromPoweredOff(t *testing.T) {
	d := sequencedDescriptor(t)
	store := NewStore()
	store.Replace(RawStatus{KeyPower: "0", KeyMode: "P"})
	w := &recordingWriter{}
	c := NewCommander(d, store, w)

	require.NoError(t, c.SetPresetMode(context.Background(), PresetAuto))
	// power on, forced allergen transition, then the target pattern
	require.Len(t, w.batches, 3)
	assert.Equal(t, map[string]any{KeyPower: "1"}, w.batches[0])
	assert.Equal(t, map[string]any{KeyMode: "A"}, w.batches[1])
	assert.Equal(t, map[string]any{KeyMode: "P"}, w.batches[2])
}

func TestSequencedPresetSkipsStagesWhenSafe(t *testing.T) {
	d := sequencedDescriptor(t)
	store := NewStore()
	// already on and in manual mode, no staging needed
	store.Replace(RawStatus{KeyPower: "1", KeyMode: "M", KeySpeed: "1"})
	w := &recordingWriter{}
	c := NewCommander(d, store, w)

	require.NoError(t, c.SetPresetMode(context.Background(), PresetAuto))
	require.Len(t, w.batches, 1)
	assert.Equal(t, map[string]any{KeyMode: "P"}, w.batches[0])
}

func TestSequencedIntermediateTargetNeedsNoTransition(t *testing.T) {
	d := sequencedDescriptor(t)
	store := NewStore()
	store.Replace(RawStatus{KeyPower: "1", KeyMode: "P"})
	w := &recordingWriter{}
	c := NewCommander(d, store, w)

	// the allergen program is the forced intermediate itself
	require.NoError(t, c.SetPresetMode(context.Background(), PresetAllergen))
	require.Len(t, w.batches, 1)
	assert.Equal(t, map[string]any{KeyMode: "A"}, w.batches[0])
}

func TestSequencedSpeedFromAutoGoesThroughIntermediate(t *testing.T) {
	d := sequencedDescriptor(t)
	store := NewStore()
	store.Replace(RawStatus{KeyPower: "1", KeyMode: "P"})
	w := &recordingWriter{}
	c := NewCommander(d, store, w)

	require.NoError(t, c.SetPercentage(context.Background(), 100))
	require.Len(t, w.batches, 2)
	assert.Equal(t, map[string]any{KeyMode: "A"}, w.batches[0])
	assert.Equal(t, map[string]any{KeyMode: "M", KeySpeed: "t"}, w.batches[1])
}

func TestCommandErrorSkipsOptimisticMerge(t *testing.T) {
	c, store, w := newTestCommander(t, "AC2889", RawStatus{KeyPower: "0"})
	w.err = assert.AnError

	require.Error(t, c.TurnOn(context.Background()))
	v, _ := store.Get(KeyPower)
	assert.Equal(t, "0", v)
}
