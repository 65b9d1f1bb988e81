// Package model defines the configuration structure used to initialize the EcuLink bridge.
// It covers the serial port, the MQTT broker endpoint and the polling cadence.
package model

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the configuration file omits a value.
const (
	DefaultBaudRate      = 9600
	DefaultMQTTPort      = 1883
	DefaultRefreshRateMs = 1000
	DefaultFrameLength   = 60
)

// Config represents the root structure loaded from configs/config.yml.
// It is constructed once at startup and never mutated afterwards.
type Config struct {
	PortName      string `yaml:"port_name"`       // serial port path (e.g. /dev/ttyUSB0)
	BaudRate      int    `yaml:"baud_rate"`       // serial baud rate
	MQTTHost      string `yaml:"mqtt_host"`       // MQTT broker host address
	MQTTPort      int    `yaml:"mqtt_port"`       // MQTT broker port
	MQTTBaseTopic string `yaml:"mqtt_base_topic"` // prefix concatenated with each field suffix
	RefreshRateMs int    `yaml:"refresh_rate_ms"` // poll interval in milliseconds
	FrameLength   int    `yaml:"frame_length"`    // full ECU response length, confirmation byte included
}

// Load reads the YAML configuration at path and applies defaults for
// any omitted optional value.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.BaudRate == 0 {
		c.BaudRate = DefaultBaudRate
	}
	if c.MQTTPort == 0 {
		c.MQTTPort = DefaultMQTTPort
	}
	if c.RefreshRateMs == 0 {
		c.RefreshRateMs = DefaultRefreshRateMs
	}
	if c.FrameLength == 0 {
		c.FrameLength = DefaultFrameLength
	}
}

func (c *Config) validate() error {
	if c.PortName == "" {
		return errors.New("port_name is required")
	}
	if c.MQTTHost == "" {
		return errors.New("mqtt_host is required")
	}
	if c.MQTTBaseTopic == "" {
		return errors.New("mqtt_base_topic is required")
	}
	if c.RefreshRateMs < 0 {
		return errors.New("refresh_rate_ms must not be negative")
	}
	if c.FrameLength < 3 {
		return errors.New("frame_length must be at least 3")
	}
	return nil
}
