package actor

import (
	"context"
	"fmt"
	"time"

	"github.com/foXaCe/philips-airpurifier-coap/internal/core/domain"
	"github.com/foXaCe/philips-airpurifier-coap/internal/util/actorutil"
	"github.com/foXaCe/philips-airpurifier-coap/pkg/aircoap"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

const (
	coapRequestTimeout = 10 * time.Second
	coapWriteTimeout   = 15 * time.Second
)

// CoAPActor owns the encrypted CoAP session of one purifier. It serializes
// reads and writes over that session and pushes observed status updates to
// its parent.
type CoAPActor struct {
	behavior actor.Behavior
	stash    *actorutil.Stash
	host     string
	deviceId string
	connect  func(ctx context.Context) (aircoap.Client, error)
	client   aircoap.Client
	obs      aircoap.Observation
	logger   *zap.Logger
}

type backgroundTaskResult struct {
	message any
	replyTo *actor.PID
}

type statusPush struct {
	status aircoap.RawStatus
}

func NewCoAPActor(host, deviceId string, logger *zap.Logger) *CoAPActor {
	act := &CoAPActor{
		host:     host,
		deviceId: deviceId,
		behavior: actor.NewBehavior(),
		stash:    &actorutil.Stash{},
		connect: func(ctx context.Context) (aircoap.Client, error) {
			return aircoap.Connect(ctx, host)
		},
		logger: actorutil.ActorLogger(domain.ACTOR_ID_COAP_PREFIX+deviceId, logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

// NewTestCoAPActor wires the actor to an in-memory client.
func NewTestCoAPActor(client aircoap.Client, deviceId string, logger *zap.Logger) *CoAPActor {
	act := &CoAPActor{
		host:     "test",
		deviceId: deviceId,
		behavior: actor.NewBehavior(),
		stash:    &actorutil.Stash{},
		connect: func(ctx context.Context) (aircoap.Client, error) {
			return client, nil
		},
		logger: actorutil.ActorLogger(domain.ACTOR_ID_COAP_PREFIX+deviceId, logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *CoAPActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *CoAPActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("coap@starting started", zap.String("host", state.host))
		connCtx, cancel := context.WithTimeout(context.Background(), coapRequestTimeout)
		defer cancel()
		client, err := state.connect(connCtx)
		if err != nil {
			panic(err)
		}
		state.client = client

		// observation callbacks run off the actor goroutine, reenter
		// through the mailbox
		self := ctx.Self()
		root := ctx.ActorSystem().Root
		obs, err := client.ObserveStatus(func(status aircoap.RawStatus) {
			root.Send(self, statusPush{status: status})
		})
		if err != nil {
			state.stop()
			panic(err)
		}
		state.obs = obs
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	case *actor.Restarting:
		state.stop()
	default:
		state.logger.Debug("coap@starting stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *CoAPActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("coap@default ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_COAP_PREFIX + state.deviceId,
			Healthy: state.client != nil,
			State:   "idle",
		})
	case statusPush:
		if parent := ctx.Parent(); parent != nil {
			ctx.Send(parent, domain.StatusObserved{Status: msg.status})
		}
	case domain.GetRawStatusRequest:
		state.logger.Debug("coap@default GetRawStatusRequest")
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)
		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, state.getStatus),
			mapTaskResult[domain.GetRawStatusResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.GetRawStatusResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(coapRequestTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingCoAP)
	case domain.SetControlValuesRequest:
		state.logger.Debug("coap@default SetControlValuesRequest", zap.Any("values", msg.Values))
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)
		values := msg.Values
		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, func() (*domain.SetControlValuesResponse, error) {
			return state.setControlValues(values)
		}),
			mapTaskResult[domain.SetControlValuesResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.SetControlValuesResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(coapWriteTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingCoAP)
	case *actor.Restarting:
		state.stop()
	case *actor.Stopping:
		state.stop()
	default:
		state.logger.Debug("coap@default default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *CoAPActor) WaitingCoAP(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case backgroundTaskResult:
		state.logger.Debug("coap@waiting backgroundTaskResult", zap.String("type", fmt.Sprintf("%T", msg.message)))
		ctx.Send(msg.replyTo, msg.message)
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	case statusPush:
		if parent := ctx.Parent(); parent != nil {
			ctx.Send(parent, domain.StatusObserved{Status: msg.status})
		}
	case *actor.Restarting:
		state.stop()
	case *actor.Stopping:
		state.stop()
	default:
		state.logger.Debug("coap@waiting stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (a *CoAPActor) getStatus() (*domain.GetRawStatusResponse, error) {
	reqCtx, cancel := context.WithTimeout(context.Background(), coapRequestTimeout)
	defer cancel()
	status, err := a.client.GetStatus(reqCtx)
	if err != nil {
		return nil, err
	}
	return &domain.GetRawStatusResponse{
		Status: status,
	}, nil
}

func (a *CoAPActor) setControlValues(values map[string]any) (*domain.SetControlValuesResponse, error) {
	reqCtx, cancel := context.WithTimeout(context.Background(), coapWriteTimeout)
	defer cancel()
	if err := a.client.SetControlValues(reqCtx, values); err != nil {
		return nil, err
	}
	return &domain.SetControlValuesResponse{}, nil
}

func (state *CoAPActor) stop() {
	if state.obs != nil {
		_ = state.obs.Cancel()
		state.obs = nil
	}
	if state.client != nil {
		if err := state.client.Shutdown(); err != nil {
			state.logger.Debug("coap: shutdown error", zap.Error(err))
		}
		state.client = nil
	}
}

func mapTaskResult[T any](sender *actor.PID) func(t *T) *backgroundTaskResult {
	return func(t *T) *backgroundTaskResult {
		return &backgroundTaskResult{
			message: *t,
			replyTo: sender,
		}
	}
}
