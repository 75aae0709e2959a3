package actor

import (
	"context"
	"fmt"
	"time"

	"github.com/foXaCe/philips-airpurifier-coap/internal/config"
	"github.com/foXaCe/philips-airpurifier-coap/internal/core/domain"
	"github.com/foXaCe/philips-airpurifier-coap/internal/discovery"

	. "github.com/foXaCe/philips-airpurifier-coap/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/reugn/go-quartz/job"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/zap"
)

// DiscoveryActor periodically scans the local network and reports purifiers
// it finds to the master, which spawns a monitor for every new one.
type DiscoveryActor struct {
	config   *config.Config
	behavior actor.Behavior
	scanner  *discovery.Scanner

	scheduler quartz.Scheduler
	schedStop context.CancelFunc
	scanning  bool

	logger *zap.Logger
}

type rescanTick struct {
}

type scanResult struct {
	devices []discovery.FoundDevice
	err     error
}

func NewDiscoveryActor(config *config.Config, logger *zap.Logger) *DiscoveryActor {
	act := &DiscoveryActor{
		config:   config,
		behavior: actor.NewBehavior(),
		scanner:  discovery.NewScanner(time.Duration(config.DiscoveryConfig.ProbeTimeoutMillis)*time.Millisecond, logger),
		logger:   ActorLogger(domain.ACTOR_ID_DISCOVERY, logger),
	}
	act.behavior.Become(act.DefaultReceive)
	return act
}

func (state *DiscoveryActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *DiscoveryActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("discovery@default started")

		if err := state.startScheduler(ctx); err != nil {
			panic(err)
		}
		ctx.Send(ctx.Self(), rescanTick{})
	case *actor.Restarting:
		state.stop()
	case *actor.Stopping:
		state.stop()
	case domain.ActorHealthRequest:
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_DISCOVERY,
			Healthy: true,
			State:   "idle",
		})
	case rescanTick:
		if state.scanning {
			state.logger.Debug("discovery@default rescan skipped, scan in progress")
			return
		}
		state.logger.Debug("discovery@default rescan")
		state.scanning = true
		NewBackgroundTask(ctx, func() (*scanResult, error) {
			devices, err := state.scanner.Scan(context.Background())
			return &scanResult{devices: devices, err: err}, nil
		}).Recover(func(err error) scanResult {
			return scanResult{err: err}
		}).PipeTo(ctx.Self())
	case scanResult:
		state.scanning = false
		if msg.err != nil {
			state.logger.Warn("discovery@default scan failed", zap.Error(msg.err))
			return
		}
		for _, device := range msg.devices {
			ctx.Send(ctx.Parent(), domain.DeviceDiscovered{
				Host:   device.Host,
				Status: device.Status,
			})
		}
	default:
		state.logger.Debug("discovery@default unhandled", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

// startScheduler runs the quartz scheduler that feeds rescan ticks through
// the mailbox.
func (state *DiscoveryActor) startScheduler(ctx actor.Context) error {
	interval := time.Duration(state.config.DiscoveryConfig.RescanIntervalMillis) * time.Millisecond
	if interval <= 0 {
		return nil
	}

	schedCtx, cancel := context.WithCancel(context.Background())
	state.schedStop = cancel
	state.scheduler = quartz.NewStdScheduler()
	state.scheduler.Start(schedCtx)

	self := ctx.Self()
	root := ctx.ActorSystem().Root
	rescanJob := job.NewFunctionJob(func(context.Context) (bool, error) {
		root.Send(self, rescanTick{})
		return true, nil
	})
	return state.scheduler.ScheduleJob(
		quartz.NewJobDetail(rescanJob, quartz.NewJobKey("rescan")),
		quartz.NewSimpleTrigger(interval))
}

func (state *DiscoveryActor) stop() {
	if state.schedStop != nil {
		state.schedStop()
		state.schedStop = nil
		state.scheduler = nil
	}
}
