package aircoap

import (
	"context"
	"sync"
)

// TestClient is an in-memory Client for tests. Writes are merged into the
// backing status and pushed to any active observer.
type TestClient struct {
	mu       sync.Mutex
	status   RawStatus
	writes   []RawStatus
	observer func(RawStatus)
}

func CreateTestClient(initial RawStatus) *TestClient {
	status := RawStatus{}
	for k, v := range initial {
		status[k] = v
	}
	return &TestClient{status: status}
}

func (c *TestClient) GetStatus(ctx context.Context) (RawStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot(), nil
}

func (c *TestClient) SetControlValue(ctx context.Context, key string, value any) error {
	return c.SetControlValues(ctx, RawStatus{key: value})
}

func (c *TestClient) SetControlValues(ctx context.Context, values RawStatus) error {
	c.mu.Lock()
	batch := RawStatus{}
	for k, v := range values {
		batch[k] = v
		c.status[k] = v
	}
	c.writes = append(c.writes, batch)
	observer := c.observer
	status := c.snapshot()
	c.mu.Unlock()

	if observer != nil {
		observer(status)
	}
	return nil
}

func (c *TestClient) ObserveStatus(callback func(RawStatus)) (Observation, error) {
	c.mu.Lock()
	c.observer = callback
	c.mu.Unlock()
	return testObservation{client: c}, nil
}

func (c *TestClient) Shutdown() error {
	return nil
}

// PushStatus replaces the backing status and notifies the observer, as a
// device-originated push would.
func (c *TestClient) PushStatus(status RawStatus) {
	c.mu.Lock()
	c.status = RawStatus{}
	for k, v := range status {
		c.status[k] = v
	}
	observer := c.observer
	snapshot := c.snapshot()
	c.mu.Unlock()

	if observer != nil {
		observer(snapshot)
	}
}

// Writes returns every batch written so far, oldest first.
func (c *TestClient) Writes() []RawStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]RawStatus, len(c.writes))
	copy(out, c.writes)
	return out
}

func (c *TestClient) snapshot() RawStatus {
	out := RawStatus{}
	for k, v := range c.status {
		out[k] = v
	}
	return out
}

type testObservation struct {
	client *TestClient
}

func (o testObservation) Cancel() error {
	o.client.mu.Lock()
	o.client.observer = nil
	o.client.mu.Unlock()
	return nil
}
