package actor

import (
	"errors"
	"fmt"
	"time"

	"github.com/foXaCe/philips-airpurifier-coap/internal/config"
	"github.com/foXaCe/philips-airpurifier-coap/internal/core/domain"

	. "github.com/foXaCe/philips-airpurifier-coap/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

// HADiscoveryActor publishes the Home Assistant discovery documents once,
// after the MQTT link and the device monitors report healthy. Monitors that
// never come up (offline or unsupported devices) are skipped.
type HADiscoveryActor struct {
	config           *config.Config
	behavior         actor.Behavior
	stash            *Stash
	monitors         map[string]*actor.PID
	mqttActor        *actor.PID
	mqttActorHealthy bool
	healthyMonitors  []*actor.PID
	healthyRecv      int

	fans         []domain.GenericFan
	sensors      []domain.GenericSensor
	switches     []domain.GenericSwitch
	inputNumbers []domain.GenericInputNumber
	selects      []domain.GenericSelect
	entitiesRecv int

	logger *zap.Logger
}

func NewHADiscoveryActor(config *config.Config, monitors map[string]*actor.PID, mqttActor *actor.PID, logger *zap.Logger) *HADiscoveryActor {
	act := &HADiscoveryActor{
		config:    config,
		monitors:  monitors,
		mqttActor: mqttActor,
		behavior:  actor.NewBehavior(),
		stash:     &Stash{},
		logger:    ActorLogger(domain.ACTOR_ID_HA_DISCOVERY, logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *HADiscoveryActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *HADiscoveryActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("hadiscovery@starting started")

		// check MQTT actor and monitors healthy
		state.healthyRecv = 0
		state.mqttActorHealthy = false
		state.healthyMonitors = nil
		// MQTT Actor Request
		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.mqttActor, domain.ActorHealthRequest{}, 2*time.Second), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_MQTT,
				Healthy: false,
			}
		})
		// Monitor Actor Requests
		for slug, monitor := range state.monitors {
			monitorId := domain.ACTOR_ID_MONITOR_PREFIX + slug
			PipeToSelfWithRecover(ctx, ctx.RequestFuture(monitor, domain.ActorHealthRequest{}, 30*time.Second), func(err error) any {
				return domain.ActorHealthResponse{
					Id:      monitorId,
					Healthy: false,
				}
			})
		}
		state.behavior.Become(state.WaitingHealthyReceive)
	case *actor.Restarting:
	default:
		state.logger.Debug("hadiscovery@starting stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *HADiscoveryActor) WaitingHealthyReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthResponse:
		state.logger.Debug("hadiscovery@healthcheck ActorHealthResponse", zap.String("sender", msg.Id), zap.Bool("healthy", msg.Healthy))
		state.healthyRecv++
		if msg.Id == domain.ACTOR_ID_MQTT {
			state.mqttActorHealthy = msg.Healthy
		} else if msg.Healthy {
			slug := msg.Id[len(domain.ACTOR_ID_MONITOR_PREFIX):]
			if monitor, ok := state.monitors[slug]; ok {
				state.healthyMonitors = append(state.healthyMonitors, monitor)
			}
		}
		if state.healthyRecv == 1+len(state.monitors) {

			if !state.mqttActorHealthy {
				panic(errors.New("MQTT Actor is not healthy"))
			}

			// bridge entities are always announced
			bridgeDevice := domain.BridgeDevice(state.config.MQTT.BaseTopic)
			state.sensors = append(state.sensors, domain.BridgeSensors(bridgeDevice)...)

			if len(state.healthyMonitors) == 0 {
				state.publish(ctx)
				return
			}

			state.entitiesRecv = 0
			for _, monitor := range state.healthyMonitors {
				PipeToSelfWithRecover(ctx, ctx.RequestFuture(monitor, domain.GetDiscoveryEntitiesRequest{}, 5*time.Second), func(err error) any {
					return domain.GetDiscoveryEntitiesResponse{
						ActorResponseMixIn: domain.ActorResponseMixIn{
							ResponseError: err,
						},
					}
				})
			}
			state.behavior.Become(state.WaitingEntitiesReceive)
			state.stash.UnstashAll(ctx)
		}
	default:
		state.logger.Debug("hadiscovery@healthcheck stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *HADiscoveryActor) WaitingEntitiesReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.GetDiscoveryEntitiesResponse:
		state.logger.Debug("hadiscovery@entities GetDiscoveryEntitiesResponse", zap.Error(msg.GetResponseError()))
		state.entitiesRecv++
		if !msg.HasResponseError() {
			state.fans = append(state.fans, msg.Fans...)
			state.sensors = append(state.sensors, msg.Sensors...)
			state.switches = append(state.switches, msg.Switches...)
			state.inputNumbers = append(state.inputNumbers, msg.InputNumbers...)
			state.selects = append(state.selects, msg.Selects...)
		}
		if state.entitiesRecv == len(state.healthyMonitors) {
			state.publish(ctx)
		}
	default:
		state.logger.Debug("hadiscovery@entities default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *HADiscoveryActor) Done(ctx actor.Context) {

}

func (state *HADiscoveryActor) publish(ctx actor.Context) {
	ctx.Send(state.mqttActor, domain.PublishDiscoveryRequest{
		Fans:         state.fans,
		Sensors:      state.sensors,
		Switches:     state.switches,
		InputNumbers: state.inputNumbers,
		Selects:      state.selects,
	})
	state.behavior.Become(state.Done)
}
