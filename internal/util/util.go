package util

import (
	"github.com/foXaCe/philips-airpurifier-coap/internal/config"

	"go.uber.org/zap"
)

func LoadTestConfig() config.Config {
	return config.Config{
		LogLevel: zap.DebugLevel,
		Devices: []config.DeviceConfig{
			{
				Host: "-.-.-.-",
			},
		},
		MQTT: config.MQTTConfig{
			Host:      "localhost",
			Port:      1883,
			BaseTopic: "philips_air",
		},
		MonitorConfig: config.MonitorConfig{
			PollIntervalMillis:   5000,
			FilterAlertThreshold: 10,
		},
		DiscoveryConfig: config.DiscoveryConfig{
			Enable:             false,
			ProbeTimeoutMillis: 1000,
		},
		Port: 8080,
	}
}
