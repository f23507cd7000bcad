// Package config loads the watch configuration from an optional TOML
// file. There is no runtime configuration surface: the file is read once
// at startup and the start time, pins, and endpoints are fixed for the
// life of the process. Flags may override individual values on top.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/masd01/one-led-watch/internal/clock"
	"github.com/masd01/one-led-watch/internal/gpio"
)

// Config is the daemon configuration.
type Config struct {
	Start Start `toml:"start"`
	Pins  Pins  `toml:"pins"`
	MQTT  MQTT  `toml:"mqtt"`
	HTTP  HTTP  `toml:"http"`
}

// Start is the wall-clock instant the watch begins counting from.
type Start struct {
	Hour     int    `toml:"hour"`
	Minute   int    `toml:"minute"`
	Second   int    `toml:"second"`
	Meridiem string `toml:"meridiem"` // "AM" or "PM"
}

// Pins holds the BCM pin assignments.
type Pins struct {
	LED    int `toml:"led"`
	Button int `toml:"button"`
}

// MQTT holds broker settings. An empty broker disables telemetry.
type MQTT struct {
	Broker string `toml:"broker"`
}

// HTTP holds the status server settings. An empty addr disables it.
type HTTP struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Start: Start{Hour: 12, Minute: 0, Second: 0, Meridiem: "AM"},
		Pins:  Pins{LED: gpio.DefaultPinLED, Button: gpio.DefaultPinButton},
		MQTT:  MQTT{Broker: ""},
		HTTP:  HTTP{Addr: ""},
	}
}

// Load reads the TOML file at path over the defaults. An empty path just
// returns the defaults; a missing or malformed file is an error, since a
// misconfigured clock silently starting at noon is worse than not starting.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// StartState converts the configured start time into a clock state.
func (c Config) StartState() (clock.State, error) {
	var m clock.Meridiem
	switch c.Start.Meridiem {
	case "AM", "am":
		m = clock.AM
	case "PM", "pm":
		m = clock.PM
	default:
		return clock.State{}, fmt.Errorf("meridiem must be AM or PM, got %q", c.Start.Meridiem)
	}

	s := clock.State{
		Hour:     c.Start.Hour,
		Minute:   c.Start.Minute,
		Second:   c.Start.Second,
		Meridiem: m,
	}
	if !s.Valid() {
		return clock.State{}, fmt.Errorf("start time %02d:%02d:%02d out of range",
			c.Start.Hour, c.Start.Minute, c.Start.Second)
	}
	return s, nil
}
