package actor

import (
	"testing"
	"time"

	adactor "github.com/foXaCe/philips-airpurifier-coap/internal/adapter/actor"
	"github.com/foXaCe/philips-airpurifier-coap/internal/core/domain"
	"github.com/foXaCe/philips-airpurifier-coap/internal/util"
	"github.com/foXaCe/philips-airpurifier-coap/pkg/aircoap"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func spawnTestMonitor(t *testing.T, client *aircoap.TestClient) (*actor.ActorSystem, *actor.PID, string) {
	as := actor.NewActorSystem()

	cfg := util.LoadTestConfig()
	logger := zap.Must(zap.NewDevelopment())

	deviceConfig := cfg.Devices[0]
	slug := domain.DeviceSlug(deviceConfig.Host)
	es := eventstream.EventStream{}

	producer := func() actor.Actor {
		return adactor.NewTestCoAPActor(client, slug, logger)
	}
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewMonitorActor(&cfg, deviceConfig, slug, producer, &es, logger)
	})
	pid, err := as.Root.SpawnNamed(props, domain.ACTOR_ID_MONITOR_PREFIX+slug)
	require.NoError(t, err)

	time.Sleep(200 * time.Millisecond)

	return as, pid, slug
}

func TestMonitorActorDeviceInfo(t *testing.T) {

	assert := assert.New(t)

	client := aircoap.CreateTestClient(testPurifierStatus())
	as, pid, slug := spawnTestMonitor(t, client)
	defer as.Shutdown()
	context := as.Root

	res, err := context.RequestFuture(pid, domain.GetDeviceInfoRequest{}, 10*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := res.(domain.GetDeviceInfoResponse)

	assert.NoError(resp.ResponseError)
	assert.Equal("AC2729/10", resp.Model)
	assert.Equal("philips_"+slug, resp.Device.Id)
	assert.Equal("Living room", resp.Device.Name)

	context.Stop(pid)
}

func TestMonitorActorDiscoveryEntities(t *testing.T) {

	assert := assert.New(t)

	client := aircoap.CreateTestClient(testPurifierStatus())
	as, pid, slug := spawnTestMonitor(t, client)
	defer as.Shutdown()
	context := as.Root

	res, err := context.RequestFuture(pid, domain.GetDiscoveryEntitiesRequest{}, 10*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := res.(domain.GetDiscoveryEntitiesResponse)

	assert.NoError(resp.ResponseError)
	assert.Equal(len(resp.Fans), 1, "one fan entity")
	assert.Equal(slug+"_fan", resp.Fans[0].Id)
	assert.Contains(resp.Fans[0].PresetModes, "auto")

	sensorIds := make([]string, 0, len(resp.Sensors))
	for _, sensor := range resp.Sensors {
		sensorIds = append(sensorIds, sensor.Id)
	}
	assert.Contains(sensorIds, slug+"_pm25")
	assert.Contains(sensorIds, slug+"_allergen_index")

	switchIds := make([]string, 0, len(resp.Switches))
	for _, sw := range resp.Switches {
		switchIds = append(switchIds, sw.Id)
	}
	assert.Contains(switchIds, slug+"_child_lock")

	context.Stop(pid)
}

func TestMonitorActorFanPower(t *testing.T) {

	assert := assert.New(t)

	client := aircoap.CreateTestClient(testPurifierStatus())
	as, pid, _ := spawnTestMonitor(t, client)
	defer as.Shutdown()
	context := as.Root

	res, err := context.RequestFuture(pid, domain.FanPowerRequest{On: false}, 10*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := res.(domain.FanCommandResponse)
	assert.NoError(resp.ResponseError)

	writes := client.Writes()
	if assert.Equal(len(writes), 1, "one write batch") {
		assert.Equal(writes[0]["pwr"], "0", "power off write")
	}

	context.Stop(pid)
}

func TestMonitorActorEntityCommand(t *testing.T) {

	assert := assert.New(t)

	client := aircoap.CreateTestClient(testPurifierStatus())
	as, pid, _ := spawnTestMonitor(t, client)
	defer as.Shutdown()
	context := as.Root

	msg := domain.EntityCommandRequest{
		EntityId: "child_lock",
		Command:  "switch",
		Payload:  "on",
	}
	res, err := context.RequestFuture(pid, msg, 10*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := res.(domain.FanCommandResponse)
	assert.NoError(resp.ResponseError)

	writes := client.Writes()
	if assert.Equal(len(writes), 1, "one write batch") {
		assert.Equal(writes[0]["cl"], true, "child lock write")
	}

	context.Stop(pid)
}

func TestMonitorActorUnsupportedModel(t *testing.T) {

	assert := assert.New(t)

	client := aircoap.CreateTestClient(aircoap.RawStatus{
		"name":    "Attic",
		"modelid": "ZZ9999/00",
	})
	as, pid, slug := spawnTestMonitor(t, client)
	defer as.Shutdown()
	context := as.Root

	res, err := context.RequestFuture(pid, domain.ActorHealthRequest{}, 10*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	health := res.(domain.ActorHealthResponse)
	assert.False(health.Healthy, "unsupported device is unhealthy")
	assert.Equal("unsupported", health.State)
	assert.Equal(domain.ACTOR_ID_MONITOR_PREFIX+slug, health.Id)

	context.Stop(pid)
}
