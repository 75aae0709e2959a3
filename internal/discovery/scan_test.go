package discovery

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/foXaCe/philips-airpurifier-coap/pkg/aircoap"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const arpTable = `IP address       HW type     Flags       HW address            Mask     Device
192.168.1.1      0x1         0x2         a4:2b:b0:aa:bb:cc     *        eth0
192.168.1.54     0x1         0x0         00:00:00:00:00:00     *        eth0
192.168.1.107    0x1         0x2         64:16:66:dd:ee:ff     *        eth0
10.0.0.12        0x1         0x2         b8:27:eb:11:22:33     *        wlan0
`

func TestActiveIPsFromARP(t *testing.T) {

	assert := assert.New(t)

	ips := ActiveIPsFromARP(strings.NewReader(arpTable))

	assert.Equal([]string{"192.168.1.1", "192.168.1.107", "10.0.0.12"}, ips)
}

func TestActiveIPsFromARPEmpty(t *testing.T) {

	assert := assert.New(t)

	ips := ActiveIPsFromARP(strings.NewReader(""))

	assert.Empty(ips)
}

func TestNetworkPrefix(t *testing.T) {

	assert := assert.New(t)

	prefix, ok := networkPrefix("192.168.1.54")
	assert.True(ok)
	assert.Equal("192.168.1", prefix)

	_, ok = networkPrefix("fe80::1")
	assert.False(ok)
}

func TestProbeAll(t *testing.T) {

	assert := assert.New(t)

	scanner := &Scanner{
		probeTimeout: 1 * time.Second,
		logger:       zap.Must(zap.NewDevelopment()),
		connect: func(ctx context.Context, host string) (aircoap.Client, error) {
			if host == "192.168.1.107" {
				return aircoap.CreateTestClient(aircoap.RawStatus{
					"name":    "Bedroom",
					"modelid": "AC2889/10",
				}), nil
			}
			return nil, errors.New("timeout")
		},
	}

	found := scanner.probeAll(context.Background(), []string{"192.168.1.1", "192.168.1.107", "192.168.1.200"})

	assert.Equal(len(found), 1, "one device found")
	assert.Equal(found[0].Host, "192.168.1.107")
	assert.Equal(found[0].Model, "AC2889/10")
	assert.Equal(found[0].Name, "Bedroom")
}
