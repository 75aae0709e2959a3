package actor

import (
	"testing"
	"time"

	"github.com/foXaCe/philips-airpurifier-coap/internal/core/domain"
	"github.com/foXaCe/philips-airpurifier-coap/internal/util"
	"github.com/foXaCe/philips-airpurifier-coap/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMQTTActor(t *testing.T) {

	cfg := util.LoadTestConfig()

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)

	context := as.Root

	es := eventstream.EventStream{}

	props := actor.PropsFromProducer(func() actor.Actor { return NewTestMQTTActor(&cfg, &es, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.ActorHealthRequest{}
	result, err := context.RequestFuture(pid, msg, 2*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp, ok := result.(domain.ActorHealthResponse)
	assert.True(t, ok)
	assert.NotNil(t, resp)

	context.Stop(pid)

	time.Sleep(1 * time.Second)

	as.Shutdown()
}

func TestFanStateFanOut(t *testing.T) {

	assert := assert.New(t)

	cfg := util.LoadTestConfig()
	logger := zap.Must(zap.NewDevelopment())

	es := eventstream.EventStream{}
	act := NewTestMQTTActor(&cfg, &es, logger)
	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root
	props := actor.PropsFromProducer(func() actor.Actor { return act })
	pid := context.Spawn(props)

	time.Sleep(100 * time.Millisecond)

	osc := true
	messages := act.event2MQTTMessages(domain.FanStateUpdateEvent{
		SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{
			Id: "abc123_fan",
		},
		Power:           true,
		Preset:          "auto",
		Percentage:      66,
		PercentageKnown: true,
		Oscillating:     &osc,
		Attributes:      map[string]any{"mode": "auto"},
	})

	assert.Equal(5, len(messages), "five fan messages")
	topics := make([]string, 0, len(messages))
	for _, m := range messages {
		topics = append(topics, m.topic)
	}
	assert.Contains(topics, "philips_air/fan/abc123_fan/state")
	assert.Contains(topics, "philips_air/fan/abc123_fan/preset/state")
	assert.Contains(topics, "philips_air/fan/abc123_fan/percentage/state")
	assert.Contains(topics, "philips_air/fan/abc123_fan/oscillation/state")
	assert.Contains(topics, "philips_air/fan/abc123_fan/attributes")

	context.Stop(pid)

	as.Shutdown()
}
