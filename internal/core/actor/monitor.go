package actor

import (
	"context"
	"fmt"
	"time"

	"github.com/foXaCe/philips-airpurifier-coap/internal/airctrl"
	"github.com/foXaCe/philips-airpurifier-coap/internal/config"
	"github.com/foXaCe/philips-airpurifier-coap/internal/core/domain"
	"github.com/foXaCe/philips-airpurifier-coap/internal/core/events"

	. "github.com/foXaCe/philips-airpurifier-coap/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/asynkron/protoactor-go/scheduler"
	"go.uber.org/zap"
)

const commandTimeout = 20 * time.Second

// MonitorActor owns one purifier: it spawns the CoAP session actor, resolves
// the device model on the first status, projects every status into update
// events and executes entity commands.
type MonitorActor struct {
	behavior  actor.Behavior
	stash     *Stash
	scheduler *scheduler.TimerScheduler

	config       *config.Config
	deviceConfig config.DeviceConfig
	slug         string
	coapProducer actor.Producer
	coapActor    *actor.PID
	eventStream  *eventstream.EventStream

	desc      *airctrl.Descriptor
	store     *airctrl.Store
	filters   *airctrl.FilterTracker
	device    domain.Device
	model     string
	available bool

	logger *zap.Logger
}

type monitorTick struct {
}

type commandOutcome struct {
	status  airctrl.RawStatus
	replyTo *actor.PID
	err     error
}

func NewMonitorActor(cfg *config.Config, deviceConfig config.DeviceConfig, slug string,
	coapProducer actor.Producer, eventStream *eventstream.EventStream, logger *zap.Logger) *MonitorActor {
	act := &MonitorActor{
		config:       cfg,
		deviceConfig: deviceConfig,
		slug:         slug,
		coapProducer: coapProducer,
		behavior:     actor.NewBehavior(),
		stash:        &Stash{},
		eventStream:  eventStream,
		store:        airctrl.NewStore(),
		logger:       ActorLogger(domain.ACTOR_ID_MONITOR_PREFIX+slug, logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *MonitorActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *MonitorActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("monitor@starting started", zap.String("host", state.deviceConfig.Host))

		coap, err := ctx.SpawnNamed(actor.PropsFromProducer(state.coapProducer), domain.ACTOR_ID_COAP_PREFIX+state.slug)
		if err != nil {
			panic(err)
		}
		state.coapActor = coap

		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.coapActor, domain.GetRawStatusRequest{}, 30*time.Second), func(err error) any {
			return domain.GetRawStatusResponse{
				ActorResponseMixIn: domain.ActorResponseMixIn{
					ResponseError: err,
				},
			}
		})
		state.behavior.Become(state.WaitingFirstStatusReceive)
	case *actor.Restarting:
	default:
		state.logger.Debug("monitor@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MonitorActor) WaitingFirstStatusReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.GetRawStatusResponse:
		if msg.HasResponseError() {
			state.logger.Error("monitor@waitingFirst GetRawStatusResponse error", zap.Error(msg.GetResponseError()))
			panic(msg.GetResponseError())
		}
		state.logger.Debug("monitor@waitingFirst GetRawStatusResponse")
		if err := state.initDevice(msg.Status); err != nil {
			// unsupported model, keep the actor alive so the health
			// check can report it
			state.logger.Error("monitor@waitingFirst unsupported device",
				zap.String("host", state.deviceConfig.Host), zap.Error(err))
			state.behavior.Become(state.UnsupportedReceive)
			state.stash.UnstashAll(ctx)
			return
		}
		state.handleStatus(msg.Status)

		if state.config.MonitorConfig.PollIntervalMillis > 0 {
			state.scheduler = scheduler.NewTimerScheduler(ctx)
			state.scheduler.RequestOnce(state.pollInterval(), ctx.Self(), monitorTick{})
		}

		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	case domain.StatusObserved:
		// first poll response carries the same data, drop
	case *actor.Restarting:
	default:
		state.logger.Debug("monitor@waitingFirst: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MonitorActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("monitor@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_MONITOR_PREFIX + state.slug,
			Healthy: true,
			State:   "idle",
		})
	case monitorTick:
		state.logger.Debug("monitor@default tick")
		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.coapActor, domain.GetRawStatusRequest{}, 15*time.Second), func(err error) any {
			return domain.GetRawStatusResponse{
				ActorResponseMixIn: domain.ActorResponseMixIn{
					ResponseError: err,
				},
			}
		})
		state.scheduler.RequestOnce(state.pollInterval(), ctx.Self(), monitorTick{})
		state.behavior.BecomeStacked(state.WaitingPollReceive)
	case domain.StatusObserved:
		state.logger.Debug("monitor@default StatusObserved")
		state.handleStatus(msg.Status)
	case domain.GetDeviceInfoRequest:
		state.logger.Debug("monitor@default GetDeviceInfoRequest")
		ForRequest(msg).Respond(ctx, domain.GetDeviceInfoResponse{
			Device: state.device,
			Model:  state.model,
			Host:   state.deviceConfig.Host,
		})
	case domain.GetRawStatusRequest:
		// diagnostics passthrough, answer from the store
		ForRequest(msg).Respond(ctx, domain.GetRawStatusResponse{
			Status: state.store.Current(),
		})
	case domain.GetDiscoveryEntitiesRequest:
		state.logger.Debug("monitor@default GetDiscoveryEntitiesRequest")
		ForRequest(msg).Respond(ctx, state.discoveryEntities())
	case domain.FanPowerRequest:
		state.runCommand(ctx, ForRequest(msg).ReplyTo(ctx), func(cmdCtx context.Context, cmdr *airctrl.Commander) error {
			if msg.On {
				return cmdr.TurnOn(cmdCtx)
			}
			return cmdr.TurnOff(cmdCtx)
		})
	case domain.FanPresetRequest:
		state.runCommand(ctx, ForRequest(msg).ReplyTo(ctx), func(cmdCtx context.Context, cmdr *airctrl.Commander) error {
			return cmdr.SetPresetMode(cmdCtx, msg.Preset)
		})
	case domain.FanPercentageRequest:
		state.runCommand(ctx, ForRequest(msg).ReplyTo(ctx), func(cmdCtx context.Context, cmdr *airctrl.Commander) error {
			return cmdr.SetPercentage(cmdCtx, msg.Percentage)
		})
	case domain.FanOscillationRequest:
		state.runCommand(ctx, ForRequest(msg).ReplyTo(ctx), func(cmdCtx context.Context, cmdr *airctrl.Commander) error {
			return cmdr.SetOscillation(cmdCtx, msg.On)
		})
	case domain.EntityCommandRequest:
		key, value, ok := state.resolveEntityCommand(msg)
		if !ok {
			state.logger.Warn("monitor@default unresolved entity command",
				zap.String("entity", msg.EntityId), zap.String("payload", msg.Payload))
			ForRequest(msg).Respond(ctx, domain.FanCommandResponse{
				ActorResponseMixIn: domain.ActorResponseMixIn{
					ResponseError: fmt.Errorf("unknown entity %s", msg.EntityId),
				},
			})
			return
		}
		state.runCommand(ctx, ForRequest(msg).ReplyTo(ctx), func(cmdCtx context.Context, cmdr *airctrl.Commander) error {
			return cmdr.Set(cmdCtx, key, value)
		})
	default:
		state.logger.Debug("monitor@default: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MonitorActor) WaitingPollReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.GetRawStatusResponse:
		if msg.HasResponseError() {
			state.logger.Error("monitor@waitingPoll GetRawStatusResponse error", zap.Error(msg.GetResponseError()))
			state.markUnavailable()
			state.behavior.UnbecomeStacked()
			state.stash.UnstashAll(ctx)
			return
		}
		state.logger.Debug("monitor@waitingPoll GetRawStatusResponse")
		state.handleStatus(msg.Status)
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	default:
		state.logger.Debug("monitor@waitingPoll: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MonitorActor) WaitingCommandReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case commandOutcome:
		if msg.err != nil {
			state.logger.Error("monitor@waitingCommand command error", zap.Error(msg.err))
		} else {
			// optimistic state, next poll confirms
			state.store.Replace(msg.status)
			state.publishStatusEvents(state.store.Current())
		}
		if msg.replyTo != nil {
			ctx.Send(msg.replyTo, domain.FanCommandResponse{
				ActorResponseMixIn: domain.ActorResponseMixIn{
					ResponseError: msg.err,
				},
			})
		}
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	default:
		state.logger.Debug("monitor@waitingCommand: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

// UnsupportedReceive keeps the actor answering health checks after a model
// resolution failure.
func (state *MonitorActor) UnsupportedReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_MONITOR_PREFIX + state.slug,
			Healthy: false,
			State:   "unsupported",
		})
	case domain.GetDeviceInfoRequest:
		ForRequest(msg).Respond(ctx, domain.GetDeviceInfoResponse{
			ActorResponseMixIn: domain.ActorResponseMixIn{
				ResponseError: airctrl.ErrUnsupportedModel,
			},
			Model: state.model,
			Host:  state.deviceConfig.Host,
		})
	case domain.GetDiscoveryEntitiesRequest:
		ForRequest(msg).Respond(ctx, domain.GetDiscoveryEntitiesResponse{
			ActorResponseMixIn: domain.ActorResponseMixIn{
				ResponseError: airctrl.ErrUnsupportedModel,
			},
		})
	default:
	}
}

func (state *MonitorActor) initDevice(status airctrl.RawStatus) error {
	state.model, _ = airctrl.ExtractModel(status)
	wifi, _ := status[airctrl.KeyWifiVersion].(string)
	desc, err := airctrl.Resolve(state.model, wifi)
	if err != nil {
		return err
	}
	state.desc = desc

	name := state.deviceConfig.Name
	if name == "" {
		name, _ = airctrl.ExtractName(status)
	}
	version, _ := status[airctrl.KeySoftwareVersion].(string)
	state.device = domain.PurifierDevice(state.slug, name, state.model, version)
	state.filters = airctrl.NewFilterTracker(state.slug, state.device.Name, desc,
		state.config.MonitorConfig.FilterAlertThreshold)
	return nil
}

func (state *MonitorActor) handleStatus(status airctrl.RawStatus) {
	state.store.Replace(status)
	if !state.available {
		state.available = true
		state.eventStream.Publish(events.AvailabilityToUpdateEvent(state.slug, true))
	}
	state.publishStatusEvents(status)
	for _, alert := range state.filters.Update(status) {
		state.logger.Warn("monitor: filter alert",
			zap.String("filter", alert.FilterName), zap.Int("percentage", alert.Percentage))
		state.eventStream.Publish(events.FilterAlertToEvent(state.slug, alert))
	}
}

func (state *MonitorActor) publishStatusEvents(status airctrl.RawStatus) {
	for _, ev := range events.StatusToUpdateEvents(state.slug, state.desc, status) {
		state.eventStream.Publish(ev)
	}
}

func (state *MonitorActor) markUnavailable() {
	state.store.SetUnavailable()
	if state.available {
		state.available = false
		state.eventStream.Publish(events.AvailabilityToUpdateEvent(state.slug, false))
	}
}

func (state *MonitorActor) discoveryEntities() domain.GetDiscoveryEntitiesResponse {
	status := state.store.Current()
	resp := domain.GetDiscoveryEntitiesResponse{
		Sensors:      domain.PurifierSensors(state.device, state.slug, state.desc, status),
		Switches:     domain.PurifierSwitches(state.device, state.slug, state.desc),
		InputNumbers: domain.PurifierInputNumbers(state.device, state.slug, state.desc),
		Selects:      domain.PurifierSelects(state.device, state.slug, state.desc),
	}
	if fan := domain.PurifierFan(state.device, state.slug, state.desc); fan != nil {
		resp.Fans = append(resp.Fans, *fan)
	}
	return resp
}

func (state *MonitorActor) resolveEntityCommand(msg domain.EntityCommandRequest) (string, any, bool) {
	switch msg.Command {
	case "switch":
		return domain.ResolveSwitchCommand(state.desc, msg.EntityId, msg.Payload == "on" || msg.Payload == "ON")
	case "number":
		var value float64
		if _, err := fmt.Sscanf(msg.Payload, "%f", &value); err != nil {
			return "", nil, false
		}
		return domain.ResolveNumberCommand(state.desc, msg.EntityId, value)
	case "select":
		return domain.ResolveSelectCommand(state.desc, msg.EntityId, msg.Payload)
	}
	return "", nil, false
}

// runCommand executes a command sequence on a snapshot of the store in a
// background task. The actor stays stacked until the outcome arrives, so the
// snapshot cannot race live status updates.
func (state *MonitorActor) runCommand(ctx actor.Context, replyTo *actor.PID, fn func(context.Context, *airctrl.Commander) error) {
	snapshot := airctrl.NewStore()
	snapshot.Replace(state.store.Current())
	writer := futureWriter{
		system:  ctx.ActorSystem(),
		coap:    state.coapActor,
		timeout: commandTimeout,
	}
	cmdr := airctrl.NewCommander(state.desc, snapshot, writer)

	NewBackgroundTask(ctx, func() (*commandOutcome, error) {
		cmdCtx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		err := fn(cmdCtx, cmdr)
		return &commandOutcome{
			status:  snapshot.Current(),
			replyTo: replyTo,
			err:     err,
		}, nil
	}).Recover(func(err error) commandOutcome {
		return commandOutcome{
			replyTo: replyTo,
			err:     err,
		}
	}).WithTimeout(commandTimeout + 5*time.Second).PipeTo(ctx.Self())
	state.behavior.BecomeStacked(state.WaitingCommandReceive)
}

func (state *MonitorActor) pollInterval() time.Duration {
	return time.Duration(state.config.MonitorConfig.PollIntervalMillis) * time.Millisecond
}

// futureWriter bridges the synchronous write interface of the commander to
// a request against the CoAP session actor.
type futureWriter struct {
	system  *actor.ActorSystem
	coap    *actor.PID
	timeout time.Duration
}

func (w futureWriter) SetControlValues(ctx context.Context, values map[string]any) error {
	result, err := w.system.Root.RequestFuture(w.coap, domain.SetControlValuesRequest{Values: values}, w.timeout).Result()
	if err != nil {
		return err
	}
	resp, ok := result.(domain.SetControlValuesResponse)
	if !ok {
		return fmt.Errorf("unexpected response %T", result)
	}
	return resp.ResponseError
}
