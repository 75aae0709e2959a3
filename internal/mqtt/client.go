package mqtt

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"time"

	"github.com/foXaCe/philips-airpurifier-coap/internal/config"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	MQTT_PAYLOAD_ONLINE  = "online"
	MQTT_PAYLOAD_OFFLINE = "offline"
	MQTT_PAYLOAD_ON      = "on"
	MQTT_PAYLOAD_OFF     = "off"

	COMMAND_SWITCH          = "switch"
	COMMAND_NUMBER          = "number"
	COMMAND_SELECT          = "select"
	COMMAND_FAN_POWER       = "fan_power"
	COMMAND_FAN_PRESET      = "fan_preset"
	COMMAND_FAN_PERCENTAGE  = "fan_percentage"
	COMMAND_FAN_OSCILLATION = "fan_oscillation"
)

func OptsFromConfig(cfg *config.Config) *mqtt.ClientOptions {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.MQTT.Host, cfg.MQTT.Port))
	opts.SetClientID(fmt.Sprintf("airctrl_%d", rand.Intn(1000)))
	if cfg.MQTT.Username != "" && cfg.MQTT.Password != "" {
		opts.SetUsername(cfg.MQTT.Username)
		opts.SetPassword(cfg.MQTT.Password)
	}
	opts.WillEnabled = true
	opts.WillPayload = []byte(MQTT_PAYLOAD_OFFLINE)
	opts.WillRetained = true
	opts.WillTopic = bridgeStateTopic(cfg.MQTT.BaseTopic)
	opts.WillQos = 0

	return opts
}

func CreateMQTTClient(cfg *config.Config, opts *mqtt.ClientOptions, onConnectHandler func(client mqtt.Client),
	onConnectionLostHandler func(mqtt.Client, error)) *MQTTClient {
	if onConnectHandler != nil {
		opts.OnConnect = onConnectHandler
	}
	if onConnectionLostHandler != nil {
		opts.OnConnectionLost = onConnectionLostHandler
	}
	return &MQTTClient{
		client:            mqtt.NewClient(opts),
		cfg:               cfg.MQTT,
		commandExtractors: commandExtractors(cfg.MQTT.BaseTopic),
	}
}

type MQTTClient struct {
	client            mqtt.Client
	cfg               config.MQTTConfig
	commandExtractors []commandExtractor
}

type ParsedMQTTCommand struct {
	DeviceId string
	Command  string
	Param    string
	Payload  string
}

type commandExtractor struct {
	command      string
	regexp       *regexp.Regexp
	numericValue bool
}

// commandExtractors builds the topic matchers, one per writable entity
// platform. Order matters: the plain fan command topic must come after the
// fan subcommand topics it prefixes.
func commandExtractors(baseTopic string) []commandExtractor {
	return []commandExtractor{
		{command: COMMAND_FAN_PRESET, regexp: fanPresetCommandRegexp(baseTopic)},
		{command: COMMAND_FAN_PERCENTAGE, regexp: fanPercentageCommandRegexp(baseTopic), numericValue: true},
		{command: COMMAND_FAN_OSCILLATION, regexp: fanOscillationCommandRegexp(baseTopic)},
		{command: COMMAND_FAN_POWER, regexp: fanCommandRegexp(baseTopic)},
		{command: COMMAND_SWITCH, regexp: switchCommandRegexp(baseTopic)},
		{command: COMMAND_NUMBER, regexp: inputNumberCommandRegexp(baseTopic), numericValue: true},
		{command: COMMAND_SELECT, regexp: selectCommandRegexp(baseTopic)},
	}
}

func (c *MQTTClient) baseTopic() string {
	return c.cfg.BaseTopic
}

func (c *MQTTClient) BridgeStateTopic() string {
	return bridgeStateTopic(c.baseTopic())
}

func (c *MQTTClient) DeviceAvailabilityTopic(deviceId string) string {
	return fmt.Sprintf("%s/device/%s/availability", c.baseTopic(), deviceId)
}

func (c *MQTTClient) SensorStateTopic(sensorId string) string {
	return fmt.Sprintf("%s/sensor/%s/state", c.baseTopic(), sensorId)
}

func (c *MQTTClient) BinarySensorStateTopic(sensorId string) string {
	return fmt.Sprintf("%s/binary_sensor/%s/state", c.baseTopic(), sensorId)
}

func (c *MQTTClient) SwitchStateTopic(switchId string) string {
	return fmt.Sprintf("%s/switch/%s/state", c.baseTopic(), switchId)
}

func (c *MQTTClient) SwitchCommandTopic(switchId string) string {
	return fmt.Sprintf("%s/switch/%s/command", c.baseTopic(), switchId)
}

func (c *MQTTClient) InputNumberStateTopic(id string) string {
	return fmt.Sprintf("%s/number/%s/state", c.baseTopic(), id)
}

func (c *MQTTClient) InputNumberCommandTopic(id string) string {
	return fmt.Sprintf("%s/number/%s/set", c.baseTopic(), id)
}

func (c *MQTTClient) SelectStateTopic(id string) string {
	return fmt.Sprintf("%s/select/%s/state", c.baseTopic(), id)
}

func (c *MQTTClient) SelectCommandTopic(id string) string {
	return fmt.Sprintf("%s/select/%s/set", c.baseTopic(), id)
}

func (c *MQTTClient) FanStateTopic(id string) string {
	return fmt.Sprintf("%s/fan/%s/state", c.baseTopic(), id)
}

func (c *MQTTClient) FanCommandTopic(id string) string {
	return fmt.Sprintf("%s/fan/%s/command", c.baseTopic(), id)
}

func (c *MQTTClient) FanPresetStateTopic(id string) string {
	return fmt.Sprintf("%s/fan/%s/preset/state", c.baseTopic(), id)
}

func (c *MQTTClient) FanPresetCommandTopic(id string) string {
	return fmt.Sprintf("%s/fan/%s/preset/set", c.baseTopic(), id)
}

func (c *MQTTClient) FanPercentageStateTopic(id string) string {
	return fmt.Sprintf("%s/fan/%s/percentage/state", c.baseTopic(), id)
}

func (c *MQTTClient) FanPercentageCommandTopic(id string) string {
	return fmt.Sprintf("%s/fan/%s/percentage/set", c.baseTopic(), id)
}

func (c *MQTTClient) FanOscillationStateTopic(id string) string {
	return fmt.Sprintf("%s/fan/%s/oscillation/state", c.baseTopic(), id)
}

func (c *MQTTClient) FanOscillationCommandTopic(id string) string {
	return fmt.Sprintf("%s/fan/%s/oscillation/set", c.baseTopic(), id)
}

func (c *MQTTClient) FanAttributesTopic(id string) string {
	return fmt.Sprintf("%s/fan/%s/attributes", c.baseTopic(), id)
}

func (c *MQTTClient) FilterAlertTopic(deviceId string) string {
	return fmt.Sprintf("%s/device/%s/filter_alert", c.baseTopic(), deviceId)
}

func (c *MQTTClient) ParseMQTTCommand(msg mqtt.Message) (*ParsedMQTTCommand, error) {
	topic := msg.Topic()
	for _, extractor := range c.commandExtractors {
		matches := extractor.regexp.FindAllStringSubmatch(topic, 1)
		if len(matches) == 0 || len(matches[0]) != 2 {
			continue
		}
		payload := string(msg.Payload())
		if extractor.numericValue {
			if _, err := strconv.ParseFloat(payload, 64); err != nil {
				return nil, err
			}
		}
		return &ParsedMQTTCommand{
			DeviceId: matches[0][1],
			Command:  extractor.command,
			Payload:  payload,
		}, nil
	}
	return nil, errors.New("invalid command")
}

func (c *MQTTClient) Publish(topic string, payload any, qos byte, retain bool, continuation func(error), timeout time.Duration) {
	token := c.client.Publish(topic, qos, retain, payload)
	go func() {
		didTO := token.WaitTimeout(timeout)
		if !didTO {
			continuation(errors.New("MQTT publish timed out"))
		} else {
			continuation(token.Error())
		}
	}()
}

func (c *MQTTClient) Subscribe(topic string, qos byte, handler mqtt.MessageHandler, continuation func(error), timeout time.Duration) {
	token := c.client.Subscribe(topic, qos, handler)
	go func() {
		didTO := token.WaitTimeout(timeout)
		if !didTO {
			continuation(errors.New("MQTT subscribe timed out"))
		} else {
			continuation(token.Error())
		}
	}()
}

func (c *MQTTClient) SubscribeToCommandTopic(handler mqtt.MessageHandler, continuation func(error), timeout time.Duration) {
	c.Subscribe(c.commandTopic(), 1, handler, continuation, timeout)
}

func (c *MQTTClient) Unsubscribe(topic string, continuation func(error), timeout time.Duration) {
	token := c.client.Unsubscribe(topic)
	go func() {
		didTO := token.WaitTimeout(timeout)
		if !didTO {
			continuation(errors.New("MQTT unsubscribe timed out"))
		} else {
			continuation(token.Error())
		}
	}()
}

func (c *MQTTClient) Connect(continuation func(error), timeout time.Duration) {
	token := c.client.Connect()
	go func() {
		didTO := token.WaitTimeout(timeout)
		if !didTO {
			continuation(errors.New("MQTT connect timed out"))
		} else {
			continuation(token.Error())
		}
	}()
}

func (c *MQTTClient) Disconnect(timeout time.Duration) {
	c.client.Disconnect(uint(timeout.Milliseconds()))
}

func (c *MQTTClient) commandTopic() string {
	return fmt.Sprintf("%s/#", c.baseTopic())
}

func switchCommandRegexp(baseTopic string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf("^%s/switch/([a-zA-Z0-9_]+)/command$", baseTopic))
}

func inputNumberCommandRegexp(baseTopic string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf("^%s/number/([a-zA-Z0-9_]+)/set$", baseTopic))
}

func selectCommandRegexp(baseTopic string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf("^%s/select/([a-zA-Z0-9_]+)/set$", baseTopic))
}

func fanCommandRegexp(baseTopic string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf("^%s/fan/([a-zA-Z0-9_]+)/command$", baseTopic))
}

func fanPresetCommandRegexp(baseTopic string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf("^%s/fan/([a-zA-Z0-9_]+)/preset/set$", baseTopic))
}

func fanPercentageCommandRegexp(baseTopic string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf("^%s/fan/([a-zA-Z0-9_]+)/percentage/set$", baseTopic))
}

func fanOscillationCommandRegexp(baseTopic string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf("^%s/fan/([a-zA-Z0-9_]+)/oscillation/set$", baseTopic))
}

func bridgeStateTopic(baseTopic string) string {
	return fmt.Sprintf("%s/bridge/state", baseTopic)
}
