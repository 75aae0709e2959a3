package config

import (
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap/zapcore"
)

type Config struct {
	LogLevel zapcore.Level
	Devices  []DeviceConfig `mapstructure:"devices"`
	MQTT     MQTTConfig     `mapstructure:"mqtt"`

	MonitorConfig   MonitorConfig   `mapstructure:"monitor"`
	DiscoveryConfig DiscoveryConfig `mapstructure:"discovery"`
	Port            uint            `mapstructure:"port"`
	HttpLog         bool            `mapstructure:"http_log"`
}

type DeviceConfig struct {
	Host string
	// Name overrides the name the device reports
	Name string
}

type MonitorConfig struct {
	PollIntervalMillis   uint32 `mapstructure:"poll_interval_millis"`
	FilterAlertThreshold int    `mapstructure:"filter_alert_threshold"`
}

type DiscoveryConfig struct {
	Enable               bool   `mapstructure:"enable"`
	ProbeTimeoutMillis   uint32 `mapstructure:"probe_timeout_millis"`
	RescanIntervalMillis uint32 `mapstructure:"rescan_interval_millis"`
}

type MQTTConfig struct {
	Host              string
	Port              int
	Username          string
	Password          string
	BaseTopic         string `mapstructure:"base_topic"`
	HADiscoveryEnable bool   `mapstructure:"ha_discovery_enable"`
	HADiscoveryTopic  string `mapstructure:"ha_discovery_topic"`
}

func CheckMQTTTopic(baseTopic string) (string, error) {
	// check and fix base topic
	lowerBaseTopic := strings.ToLower(baseTopic)
	baseTopicRegexp := regexp.MustCompile("^[a-z0-9_]+$")
	matches := baseTopicRegexp.FindAllStringSubmatch(lowerBaseTopic, 1)
	if len(matches) <= 0 {
		return "", errors.New("invalid topic. can only contain letters, numbers and underscores")
	}
	return lowerBaseTopic, nil
}
