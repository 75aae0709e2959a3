package actor

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	adactor "github.com/foXaCe/philips-airpurifier-coap/internal/adapter/actor"
	"github.com/foXaCe/philips-airpurifier-coap/internal/config"
	"github.com/foXaCe/philips-airpurifier-coap/internal/core/domain"
	"github.com/foXaCe/philips-airpurifier-coap/internal/mqtt"

	. "github.com/foXaCe/philips-airpurifier-coap/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"go.uber.org/zap"
)

type MQTTActorProvider func(*eventstream.EventStream) *adactor.MQTTActor

// CoAPActorProvider builds the producer for the CoAP session actor of one
// device. Tests swap it for an in-memory client.
type CoAPActorProvider func(deviceConfig config.DeviceConfig, slug string) actor.Producer

type MasterOfPuppetsActor struct {
	config   config.Config
	behavior actor.Behavior
	stash    *Stash

	currentHealthCheck healthCheckResult
	eventStream        *eventstream.EventStream
	mqttActor          *actor.PID
	monitors           map[string]*actor.PID
	devices            map[string]config.DeviceConfig
	coapProvider       CoAPActorProvider
	mqttActorProvider  MQTTActorProvider
	logger             *zap.Logger
	baseLogger         *zap.Logger
}

type healthCheckResult struct {
	expected       int
	healthy        int
	checksReceived int
	respondTo      *actor.PID
}

func NewMasterOfPuppetsActor(cfg config.Config, coapProvider CoAPActorProvider, mqttActorProvider MQTTActorProvider, logger *zap.Logger) *MasterOfPuppetsActor {
	act := &MasterOfPuppetsActor{
		config:            cfg,
		behavior:          actor.NewBehavior(),
		stash:             &Stash{},
		logger:            ActorLogger(domain.ACTOR_ID_MASTER, logger),
		baseLogger:        logger,
		eventStream:       &eventstream.EventStream{},
		monitors:          map[string]*actor.PID{},
		devices:           map[string]config.DeviceConfig{},
		coapProvider:      coapProvider,
		mqttActorProvider: mqttActorProvider,
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *MasterOfPuppetsActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *MasterOfPuppetsActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("master@starting started")

		state.currentHealthCheck = healthCheckResult{}

		// start MQTT child
		mqttActorPID, err := state.startMQTTActor(ctx)
		if err != nil {
			panic(err)
		}
		state.mqttActor = mqttActorPID

		// start one monitor per configured device
		for _, deviceConfig := range state.config.Devices {
			if err := state.startMonitorActor(ctx, deviceConfig); err != nil {
				panic(err)
			}
		}

		// start HA Discovery
		if state.config.MQTT.HADiscoveryEnable {
			_, err := state.startHADiscoveryActor(ctx)
			if err != nil {
				panic(err)
			}
		}

		// start network discovery
		if state.config.DiscoveryConfig.Enable {
			_, err := state.startDiscoveryActor(ctx)
			if err != nil {
				panic(err)
			}
		}

		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	default:
		state.logger.Debug("master@starting stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MasterOfPuppetsActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("master@default ActorHealthRequest")
		state.currentHealthCheck = healthCheckResult{
			expected:  1 + len(state.monitors),
			respondTo: ctx.Sender(),
		}
		// MQTT Actor Request
		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.mqttActor, domain.ActorHealthRequest{}, 500*time.Millisecond), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_MQTT,
				Healthy: false,
			}
		})
		// Monitor Actor Requests
		for slug, monitor := range state.monitors {
			monitorId := domain.ACTOR_ID_MONITOR_PREFIX + slug
			PipeToSelfWithRecover(ctx, ctx.RequestFuture(monitor, domain.ActorHealthRequest{}, 500*time.Millisecond), func(err error) any {
				return domain.ActorHealthResponse{
					Id:      monitorId,
					Healthy: false,
				}
			})
		}

		ctx.SetReceiveTimeout(1 * time.Second)

		state.behavior.BecomeStacked(state.HealthCheckReceive)
	case adactor.ParsedCommand:
		// route parsed command to the owning monitor
		state.logger.Debug("master@default parsedCommand", zap.Any("command", msg.Command))
		if msg.Command != nil {
			state.routeCommand(ctx, *msg.Command)
		}
	case domain.GetDevicesRequest:
		entries := make([]domain.DeviceEntry, 0, len(state.devices))
		for slug, deviceConfig := range state.devices {
			entries = append(entries, domain.DeviceEntry{
				Id:   slug,
				Host: deviceConfig.Host,
				Name: deviceConfig.Name,
			})
		}
		ctx.Respond(domain.GetDevicesResponse{Devices: entries})
	case domain.DeviceRawStatusRequest:
		// diagnostics passthrough, the monitor answers the caller directly
		if monitor, ok := state.monitors[msg.DeviceId]; ok {
			ctx.RequestWithCustomSender(monitor, domain.GetRawStatusRequest{}, ctx.Sender())
		} else {
			ctx.Respond(domain.GetRawStatusResponse{
				ActorResponseMixIn: domain.ActorResponseMixIn{
					ResponseError: fmt.Errorf("unknown device %s", msg.DeviceId),
				},
			})
		}
	case domain.DeviceDiscovered:
		slug := domain.DeviceSlug(msg.Host)
		if _, known := state.monitors[slug]; known {
			return
		}
		state.logger.Info("master@default discovered device", zap.String("host", msg.Host))
		deviceConfig := config.DeviceConfig{Host: msg.Host}
		if err := state.startMonitorActor(ctx, deviceConfig); err != nil {
			state.logger.Error("master@default could not start monitor", zap.Error(err))
		}
	case *actor.Terminated:
		// if the MQTT link fails permanently, terminate
		if msg.Who.Id == fmt.Sprintf("%s/%s", domain.ACTOR_ID_MASTER, domain.ACTOR_ID_MQTT) {
			state.logger.Error("master@default mqtt terminated")
			panic(errors.New("mqtt terminated"))
		}
	default:
		state.logger.Debug("master@default stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

// routeCommand picks the monitor by the device slug that prefixes every
// entity id in a command topic.
func (state *MasterOfPuppetsActor) routeCommand(ctx actor.Context, parsed mqtt.ParsedMQTTCommand) {
	slug, suffix, _ := strings.Cut(parsed.DeviceId, "_")
	monitor, ok := state.monitors[slug]
	if !ok {
		state.logger.Warn("master@default command for unknown device", zap.String("entityId", parsed.DeviceId))
		return
	}
	cmd, err := ParsedMQTTCommandToCommand(parsed)
	if err != nil || cmd == nil {
		return
	}
	if entityCmd, ok := cmd.(domain.EntityCommandRequest); ok {
		// the monitor addresses entities by the id suffix
		entityCmd.EntityId = suffix
		ctx.Send(monitor, entityCmd)
		return
	}
	ctx.Send(monitor, cmd)
}

func (state *MasterOfPuppetsActor) HealthCheckReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.ReceiveTimeout:
		// if some actor does not respond to healthCheck, assume not healthy
		state.currentHealthCheck.respond(ctx)
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	case domain.ActorHealthResponse:
		state.logger.Debug("master@healthcheck ActorHealthResponse", zap.String("sender", msg.Id), zap.Bool("healthy", msg.Healthy))
		state.currentHealthCheck.checksReceived++
		if msg.Healthy {
			state.currentHealthCheck.healthy++
		}
		if state.currentHealthCheck.allReceived() {

			state.currentHealthCheck.respond(ctx)

			state.behavior.UnbecomeStacked()
			state.stash.UnstashAll(ctx)
		} else {
			ctx.SetReceiveTimeout(1 * time.Second)
		}
	default:
		state.logger.Debug("master@healthcheck stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MasterOfPuppetsActor) startMonitorActor(ctx actor.Context, deviceConfig config.DeviceConfig) error {
	slug := domain.DeviceSlug(deviceConfig.Host)

	decider := func(reason interface{}) actor.Directive {
		log.Printf("handling failure for child. reason: %v", reason)
		return actor.RestartDirective
	}
	supervisor := actor.NewOneForOneStrategy(5, 1*time.Minute, decider)

	monitorProps := actor.PropsFromProducer(func() actor.Actor {
		return NewMonitorActor(&state.config, deviceConfig, slug, state.coapProvider(deviceConfig, slug), state.eventStream, state.baseLogger)
	}, actor.WithSupervisor(supervisor))
	monitorPID, err := ctx.SpawnNamed(monitorProps, domain.ACTOR_ID_MONITOR_PREFIX+slug)
	if err != nil {
		return err
	}
	state.monitors[slug] = monitorPID
	state.devices[slug] = deviceConfig
	return nil
}

func (state *MasterOfPuppetsActor) startHADiscoveryActor(ctx actor.Context) (*actor.PID, error) {

	decider := func(reason interface{}) actor.Directive {
		log.Printf("handling failure for child. reason: %v", reason)
		return actor.RestartDirective
	}
	supervisor := actor.NewOneForOneStrategy(1, 10*time.Second, decider)

	haDiscProps := actor.PropsFromProducer(func() actor.Actor {
		return NewHADiscoveryActor(&state.config, state.monitors, state.mqttActor, state.baseLogger)
	}, actor.WithSupervisor(supervisor))
	haDiscPID, err := ctx.SpawnNamed(haDiscProps, domain.ACTOR_ID_HA_DISCOVERY)
	if err != nil {
		return nil, err
	}

	return haDiscPID, nil
}

func (state *MasterOfPuppetsActor) startDiscoveryActor(ctx actor.Context) (*actor.PID, error) {

	supervisor := actor.NewExponentialBackoffStrategy(10*time.Second, 1*time.Second)

	discProps := actor.PropsFromProducer(func() actor.Actor {
		return NewDiscoveryActor(&state.config, state.baseLogger)
	}, actor.WithSupervisor(supervisor))
	discPID, err := ctx.SpawnNamed(discProps, domain.ACTOR_ID_DISCOVERY)
	if err != nil {
		return nil, err
	}

	return discPID, nil
}

func (state *MasterOfPuppetsActor) startMQTTActor(ctx actor.Context) (*actor.PID, error) {

	supervisor := actor.NewExponentialBackoffStrategy(10*time.Second, 1*time.Second)

	mqttProps := actor.PropsFromProducer(func() actor.Actor {
		return state.mqttActorProvider(state.eventStream)
	}, actor.WithSupervisor(supervisor))
	mqttActorPID, err := ctx.SpawnNamed(mqttProps, domain.ACTOR_ID_MQTT)
	if err != nil {
		return nil, err
	}

	return mqttActorPID, nil
}

func (state *healthCheckResult) allReceived() bool {
	return state.checksReceived == state.expected
}

func (state *healthCheckResult) allHealthy() bool {
	return state.healthy == state.expected
}

func (state *healthCheckResult) respond(ctx actor.Context) {
	resp := domain.ActorHealthResponse{
		Id:      domain.ACTOR_ID_MASTER,
		Healthy: state.allHealthy(),
	}
	if state.respondTo != nil {
		ctx.Send(state.respondTo, resp)
	}
}
