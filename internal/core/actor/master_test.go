package actor

import (
	"fmt"
	"testing"
	"time"

	adactor "github.com/foXaCe/philips-airpurifier-coap/internal/adapter/actor"
	"github.com/foXaCe/philips-airpurifier-coap/internal/config"
	"github.com/foXaCe/philips-airpurifier-coap/internal/core/domain"
	"github.com/foXaCe/philips-airpurifier-coap/internal/util"
	"github.com/foXaCe/philips-airpurifier-coap/pkg/aircoap"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func testPurifierStatus() aircoap.RawStatus {
	return aircoap.RawStatus{
		"name":        "Living room",
		"modelid":     "AC2729/10",
		"swversion":   "1.0.7",
		"WifiVersion": "AWS_Philips_AIR@62.1",
		"pwr":         "1",
		"mode":        "P",
		"om":          "1",
		"aqil":        50,
		"uil":         "1",
		"cl":          false,
		"pm25":        float64(4),
		"iaql":        float64(2),
		"fltsts0":     200,
		"flttotal0":   360,
		"fltsts1":     250,
		"flttotal1":   4800,
	}
}

func testCoAPProvider() CoAPActorProvider {
	logger := zap.Must(zap.NewDevelopment())
	return func(deviceConfig config.DeviceConfig, slug string) actor.Producer {
		return func() actor.Actor {
			return adactor.NewTestCoAPActor(aircoap.CreateTestClient(testPurifierStatus()), slug, logger)
		}
	}
}

func TestMasterActor(t *testing.T) {

	as := actor.NewActorSystem()
	context := as.Root

	cfg := util.LoadTestConfig()
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger := zap.Must(logCfg.Build())

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewMasterOfPuppetsActor(cfg, testCoAPProvider(), func(es *eventstream.EventStream) *adactor.MQTTActor {
			return adactor.NewTestMQTTActor(&cfg, es, logger)
		}, logger)
	})
	pid, err := context.SpawnNamed(props, "master")
	if err != nil {
		t.Error(err)
		return
	}

	time.Sleep(2 * time.Second)

	res, err := context.RequestFuture(pid, domain.ActorHealthRequest{}, 10*time.Second).Result()
	if err != nil {
		t.Error(err)
	}
	healthResp, ok := res.(domain.ActorHealthResponse)
	assert.True(t, ok)
	fmt.Printf("Health response: %+v\n", healthResp)
	assert.NotNil(t, healthResp)

	assert.True(t, healthResp.Healthy, "healthy is true")

	context.Stop(pid)

	as.Shutdown()
}

func TestMasterActorDeviceList(t *testing.T) {

	as := actor.NewActorSystem()
	context := as.Root

	cfg := util.LoadTestConfig()
	logger := zap.Must(zap.NewDevelopment())

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewMasterOfPuppetsActor(cfg, testCoAPProvider(), func(es *eventstream.EventStream) *adactor.MQTTActor {
			return adactor.NewTestMQTTActor(&cfg, es, logger)
		}, logger)
	})
	pid, err := context.SpawnNamed(props, "master")
	if err != nil {
		t.Error(err)
		return
	}

	time.Sleep(1 * time.Second)

	res, err := context.RequestFuture(pid, domain.GetDevicesRequest{}, 10*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	devicesResp, ok := res.(domain.GetDevicesResponse)
	assert.True(t, ok)
	assert.Equal(t, len(cfg.Devices), len(devicesResp.Devices))
	assert.Equal(t, cfg.Devices[0].Host, devicesResp.Devices[0].Host)
	assert.Equal(t, domain.DeviceSlug(cfg.Devices[0].Host), devicesResp.Devices[0].Id)

	context.Stop(pid)

	as.Shutdown()
}
