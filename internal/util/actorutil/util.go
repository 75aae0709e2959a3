package actorutil

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/foXaCe/philips-airpurifier-coap/internal/core/domain"
	"github.com/foXaCe/philips-airpurifier-coap/internal/mqtt"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/lmittmann/tint"
	"go.uber.org/zap"
)

func PipeToSelfWithRecover(ctx actor.Context, future *actor.Future, mapFn func(error) any) {
	ctx.ReenterAfter(future, func(msg any, err error) {
		if err != nil {
			ctx.Send(ctx.Self(), mapFn(err))
			return
		}
		ctx.Send(ctx.Self(), msg)
	})
}

func NewActorSystemWithZapLogger(logger *zap.Logger) *actor.ActorSystem {
	stdOutLogger := zap.NewStdLog(logger)

	var slogLevel slog.Level = slog.LevelInfo

	switch logger.Level() {
	case zap.DebugLevel:
		slogLevel = slog.LevelDebug
	case zap.InfoLevel:
		slogLevel = slog.LevelInfo
	case zap.WarnLevel:
		slogLevel = slog.LevelWarn
	case zap.ErrorLevel:
		slogLevel = slog.LevelError
	case zap.PanicLevel:
		slogLevel = slog.LevelError
	}

	return actor.NewActorSystem(actor.WithLoggerFactory(func(system *actor.ActorSystem) *slog.Logger {

		// create a new logger
		return slog.New(tint.NewHandler(stdOutLogger.Writer(), &tint.Options{
			Level:      slogLevel,
			TimeFormat: time.DateTime,
		}))
	}))
}

func ActorLogger(actorName string, logger *zap.Logger) *zap.Logger {
	return logger.With(zap.String("actor", actorName))
}

// ParsedMQTTCommandToCommand maps a parsed command topic to the actor
// request the owning device monitor understands. The request carries no
// routing info: the master routes by the entity id prefix.
func ParsedMQTTCommandToCommand(cmd mqtt.ParsedMQTTCommand) (domain.ActorRequest, error) {
	switch cmd.Command {
	case mqtt.COMMAND_FAN_POWER:
		return domain.FanPowerRequest{
			On: isOnPayload(cmd.Payload),
		}, nil
	case mqtt.COMMAND_FAN_PRESET:
		return domain.FanPresetRequest{
			Preset: cmd.Payload,
		}, nil
	case mqtt.COMMAND_FAN_PERCENTAGE:
		value, err := strconv.ParseFloat(cmd.Payload, 64)
		if err != nil || value < 0 || value > 100 {
			return nil, err
		}
		return domain.FanPercentageRequest{
			Percentage: int(value),
		}, nil
	case mqtt.COMMAND_FAN_OSCILLATION:
		return domain.FanOscillationRequest{
			On: cmd.Payload == "oscillate_on" || isOnPayload(cmd.Payload),
		}, nil
	case mqtt.COMMAND_SWITCH, mqtt.COMMAND_NUMBER, mqtt.COMMAND_SELECT:
		return domain.EntityCommandRequest{
			EntityId: cmd.DeviceId,
			Command:  cmd.Command,
			Payload:  cmd.Payload,
		}, nil
	}
	return nil, nil
}

func isOnPayload(payload string) bool {
	return strings.EqualFold(payload, mqtt.MQTT_PAYLOAD_ON)
}
