package aircoap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/go-ocf/go-coap"
)

const (
	syncPath    = "/sys/dev/sync"
	controlPath = "/sys/dev/control"
	statusPath  = "/sys/dev/status"

	// DefaultPort is the CoAP port the purifiers listen on.
	DefaultPort = 5683

	rpcTimeout = 5 * time.Second
)

// RawStatus is the flat key-value state as reported by the device.
// Values are strings, numbers (json float64) or booleans depending on the
// firmware generation.
type RawStatus = map[string]any

// Observation is a cancellable status subscription.
type Observation interface {
	Cancel() error
}

// Client talks the vendor's encrypted CoAP dialect to a single device.
// All methods are safe to call from one goroutine at a time; the session
// counter is advanced on every control message.
type Client interface {
	GetStatus(ctx context.Context) (RawStatus, error)
	SetControlValue(ctx context.Context, key string, value any) error
	SetControlValues(ctx context.Context, values RawStatus) error
	ObserveStatus(callback func(RawStatus)) (Observation, error)
	Shutdown() error
}

type client struct {
	addr string
	cc   *coap.ClientConn
	ctx  context.Context
	id   SessionID
}

// Connect dials a device and performs the session sync handshake.
// host may omit the port, in which case DefaultPort is used.
func Connect(ctx context.Context, host string) (Client, error) {
	if _, _, err := net.SplitHostPort(host); err != nil {
		host = fmt.Sprintf("%s:%d", host, DefaultPort)
	}

	cl := coap.Client{
		Net:         "udp",
		DialTimeout: rpcTimeout,
		// Internally divided by 6, so this pings every 5s, same as the
		// vendor app does.
		KeepAlive: coap.MustMakeKeepAlive(30 * time.Second),
	}

	conn, err := cl.DialWithContext(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("error dialing %s: %w", host, err)
	}

	c := &client{
		addr: host,
		cc:   conn,
		ctx:  ctx,
	}

	if err := c.sync(); err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

// sync posts a client-chosen counter and stores the device's answer as the
// session base. The device expects the next control message at base+1.
func (c *client) sync() error {
	ctx, cancel := context.WithTimeout(c.ctx, rpcTimeout)
	defer cancel()

	seed := NewSessionID()
	rsp, err := c.cc.PostWithContext(ctx, syncPath, coap.TextPlain, bytes.NewReader([]byte(seed.Hex())))
	if err != nil {
		return fmt.Errorf("session sync failed: %w", err)
	}
	c.id = ParseSessionID(rsp.Payload()) + 1
	return nil
}

// statusEnvelope is the JSON shape of a decrypted status payload.
type statusEnvelope struct {
	State struct {
		Reported RawStatus `json:"reported"`
	} `json:"state"`
}

type controlEnvelope struct {
	State struct {
		Desired RawStatus `json:"desired"`
	} `json:"state"`
}

func decodeStatus(payload []byte) (RawStatus, error) {
	plain, err := DecodeMessage(payload)
	if err != nil {
		return nil, err
	}
	var env statusEnvelope
	if err := json.Unmarshal(plain, &env); err != nil {
		return nil, fmt.Errorf("could not decode status: %w", err)
	}
	if env.State.Reported == nil {
		return nil, fmt.Errorf("status payload has no reported state")
	}
	return env.State.Reported, nil
}

// GetStatus observes the status resource and returns the first notification.
// The devices have no plain GET for status, so a one-shot observe is the only
// way to read current state.
func (c *client) GetStatus(ctx context.Context) (RawStatus, error) {
	first := make(chan RawStatus, 1)
	obs, err := c.cc.ObserveWithContext(ctx, statusPath, func(req *coap.Request) {
		status, err := decodeStatus(req.Msg.Payload())
		if err != nil {
			return
		}
		select {
		case first <- status:
		default:
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to observe %s: %w", statusPath, err)
	}
	defer obs.Cancel()

	select {
	case status := <-first:
		return status, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *client) SetControlValue(ctx context.Context, key string, value any) error {
	return c.SetControlValues(ctx, RawStatus{key: value})
}

// SetControlValues writes a batch of raw keys in a single control message.
// Devices reject some stepwise updates that pass through invalid key
// combinations, so a batch must never be split into per-key writes.
func (c *client) SetControlValues(ctx context.Context, values RawStatus) error {
	var env controlEnvelope
	env.State.Desired = values
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}

	msg, err := EncodeMessage(c.id, data)
	if err != nil {
		return err
	}

	rctx, cancel := context.WithTimeout(ctx, rpcTimeout)
	defer cancel()

	rsp, err := c.cc.PostWithContext(rctx, controlPath, coap.AppJSON, bytes.NewReader(msg))
	if err != nil {
		return fmt.Errorf("control write failed: %w", err)
	}
	c.id++

	result := map[string]string{}
	if err := json.Unmarshal(rsp.Payload(), &result); err != nil {
		return fmt.Errorf("could not decode control response: %w", err)
	}
	if result["status"] != "success" {
		// The firmware also answers "success" to nonsense, so "failed" means
		// it is seriously unhappy. Resync the session in case the counter
		// drifted.
		if err := c.sync(); err != nil {
			return err
		}
		return fmt.Errorf("device rejected control values")
	}
	return nil
}

// ObserveStatus subscribes to status pushes until the observation is
// cancelled. Undecodable notifications are dropped silently.
func (c *client) ObserveStatus(callback func(RawStatus)) (Observation, error) {
	ctx, cancel := context.WithTimeout(c.ctx, rpcTimeout)
	defer cancel()

	obs, err := c.cc.ObserveWithContext(ctx, statusPath, func(req *coap.Request) {
		status, err := decodeStatus(req.Msg.Payload())
		if err != nil {
			return
		}
		callback(status)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to observe %s: %w", statusPath, err)
	}
	return obs, nil
}

func (c *client) Shutdown() error {
	return c.cc.Close()
}
