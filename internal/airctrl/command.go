package airctrl

import (
	"context"
	"time"
)

// Writer applies a batch of raw control values to a device. All values of a
// batch travel in one request so the firmware sees them as a single change.
type Writer interface {
	SetControlValues(ctx context.Context, values map[string]any) error
}

// Commander translates entity level commands into raw write batches for one
// device. Accepted writes are merged into the store optimistically, so the
// next projection reflects the command before the device confirms it.
//
// Like the Store it is confined to the owning actor.
type Commander struct {
	desc  *Descriptor
	store *Store
	write Writer
}

func NewCommander(desc *Descriptor, store *Store, write Writer) *Commander {
	return &Commander{desc: desc, store: store, write: write}
}

// TurnOn powers the device on without touching mode or speed.
func (c *Commander) TurnOn(ctx context.Context) error {
	return c.apply(ctx, RawStatus{c.desc.PowerKey: c.desc.PowerOn})
}

// TurnOff powers the device off.
func (c *Commander) TurnOff(ctx context.Context) error {
	return c.apply(ctx, RawStatus{c.desc.PowerKey: c.desc.PowerOff})
}

// SetPresetMode activates the named preset as one batched write. Presets the
// model does not declare are ignored.
func (c *Commander) SetPresetMode(ctx context.Context, name string) error {
	m, ok := c.desc.PresetModes.find(name)
	if !ok {
		return nil
	}
	batch := m.Pattern.batch()
	if err := c.stage(ctx, batch); err != nil {
		return err
	}
	return c.apply(ctx, batch)
}

// SetPercentage maps a fan percentage onto the speed table and writes the
// matching pattern. Percentage 0 is a power off, not a speed.
func (c *Commander) SetPercentage(ctx context.Context, pct int) error {
	if pct == 0 {
		return c.TurnOff(ctx)
	}
	m, ok := c.desc.speedForPercentage(pct)
	if !ok {
		return nil
	}
	batch := m.Pattern.batch()
	if err := c.stage(ctx, batch); err != nil {
		return err
	}
	return c.apply(ctx, batch)
}

// SetOscillation toggles oscillation on models that have the register.
func (c *Commander) SetOscillation(ctx context.Context, on bool) error {
	osc := c.desc.Oscillation
	if osc == nil {
		return nil
	}
	value := osc.Off
	if on {
		value = osc.On
	}
	return c.apply(ctx, RawStatus{statusKey(osc.Key): value})
}

// Set writes a single raw control value. The MQTT layer uses it for the
// auxiliary switch, light and number entities.
func (c *Commander) Set(ctx context.Context, key string, value any) error {
	return c.apply(ctx, RawStatus{statusKey(key): value})
}

// stage runs the staged preamble required by models with a SequencedWrite
// strategy. Their firmware drops a mode write while powered off, and drops
// transitions into some modes unless the device is in manual mode first, so
// each preparatory write settles before the next one.
func (c *Commander) stage(ctx context.Context, batch RawStatus) error {
	seq := c.desc.Sequenced
	if seq == nil {
		return nil
	}
	if !c.desc.IsOn(c.store.Current()) {
		if err := c.apply(ctx, RawStatus{c.desc.PowerKey: c.desc.PowerOn}); err != nil {
			return err
		}
		if err := settle(ctx, seq.SettleDelay); err != nil {
			return err
		}
	}
	inter, ok := c.desc.PresetModes.find(seq.IntermediateMode)
	if !ok {
		return nil
	}
	targetMode, hasMode := batch[seq.ModeKey]
	current, _ := c.store.Get(seq.ModeKey)
	if hasMode && !rawEqual(targetMode, inter.Pattern[seq.ModeKey]) && !rawEqual(seq.ManualValue, current) {
		if err := c.apply(ctx, inter.Pattern.batch()); err != nil {
			return err
		}
		if err := settle(ctx, seq.SettleDelay); err != nil {
			return err
		}
	}
	return nil
}

func (c *Commander) apply(ctx context.Context, batch RawStatus) error {
	if err := c.write.SetControlValues(ctx, batch); err != nil {
		return err
	}
	c.store.Merge(batch)
	return nil
}

func settle(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
