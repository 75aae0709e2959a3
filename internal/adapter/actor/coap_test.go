package actor

import (
	"testing"
	"time"

	"github.com/foXaCe/philips-airpurifier-coap/internal/core/domain"
	"github.com/foXaCe/philips-airpurifier-coap/internal/util/actorutil"
	"github.com/foXaCe/philips-airpurifier-coap/pkg/aircoap"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGetRawStatusCoAPActor(t *testing.T) {

	assert := assert.New(t)

	client := aircoap.CreateTestClient(aircoap.RawStatus{
		"name":        "Living room",
		"modelid":     "AC2889/10",
		"pwr":         "1",
		"mode":        "P",
		"pm25":        float64(4),
		"WifiVersion": "AWS_Philips_AIR@62.1",
	})

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewTestCoAPActor(client, "abc123", logger) })
	pid := context.Spawn(props)

	time.Sleep(100 * time.Millisecond)

	result, err := context.RequestFuture(pid, domain.GetRawStatusRequest{}, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.GetRawStatusResponse)

	assert.NoError(resp.ResponseError)
	assert.Equal(resp.Status["name"], "Living room", "device name")
	assert.Equal(resp.Status["modelid"], "AC2889/10", "model id")
	assert.Equal(resp.Status["pm25"], float64(4), "pm25 value")

	context.Stop(pid)

	as.Shutdown()
}

func TestSetControlValuesCoAPActor(t *testing.T) {

	assert := assert.New(t)

	client := aircoap.CreateTestClient(aircoap.RawStatus{
		"pwr":  "0",
		"mode": "P",
	})

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewTestCoAPActor(client, "abc123", logger) })
	pid := context.Spawn(props)

	time.Sleep(100 * time.Millisecond)

	msg := domain.SetControlValuesRequest{
		Values: map[string]any{"pwr": "1"},
	}
	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.SetControlValuesResponse)

	assert.NoError(resp.ResponseError)

	writes := client.Writes()
	assert.Equal(len(writes), 1, "one write batch")
	assert.Equal(writes[0]["pwr"], "1", "power write")

	context.Stop(pid)

	as.Shutdown()
}
