// Command one-led-watch keeps 12-hour wall-clock time and plays it as LED
// pulses when the button is pressed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"

	"github.com/masd01/one-led-watch/internal/button"
	"github.com/masd01/one-led-watch/internal/clock"
	"github.com/masd01/one-led-watch/internal/config"
	"github.com/masd01/one-led-watch/internal/gpio"
	"github.com/masd01/one-led-watch/internal/mqtt"
	"github.com/masd01/one-led-watch/internal/pulse"
	"github.com/masd01/one-led-watch/internal/sched"
	"github.com/masd01/one-led-watch/internal/status"
	"github.com/masd01/one-led-watch/internal/web"
)

func main() {
	def := config.Default()
	configPath := flag.String("config", "", "TOML config file")
	tick := flag.Duration("tick", time.Second, "clock tick period")
	pinLED := flag.Int("pin-led", def.Pins.LED, "BCM pin number for the LED")
	pinButton := flag.Int("pin-button", def.Pins.Button, "BCM pin number for the button")
	broker := flag.String("broker", def.MQTT.Broker, "MQTT broker address (empty to disable telemetry)")
	httpAddr := flag.String("http", def.HTTP.Addr, "HTTP status address (empty to disable)")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	applyFlagOverrides(&cfg, flag.Visit, *pinLED, *pinButton, *broker, *httpAddr)

	if err := run(cfg, *tick); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

// applyFlagOverrides copies explicitly set flags over file values, so the
// precedence is CLI > config file > defaults.
func applyFlagOverrides(cfg *config.Config, visit func(func(*flag.Flag)), pinLED, pinButton int, broker, httpAddr string) {
	visit(func(f *flag.Flag) {
		switch f.Name {
		case "pin-led":
			cfg.Pins.LED = pinLED
		case "pin-button":
			cfg.Pins.Button = pinButton
		case "broker":
			cfg.MQTT.Broker = broker
		case "http":
			cfg.HTTP.Addr = httpAddr
		}
	})
}

func run(cfg config.Config, tick time.Duration) error {
	start, err := cfg.StartState()
	if err != nil {
		return err
	}
	keeper, err := clock.NewKeeper(start)
	if err != nil {
		return err
	}

	// Initialize hardware
	led, err := gpio.NewRealLED(cfg.Pins.LED)
	if err != nil {
		return fmt.Errorf("init LED: %w", err)
	}
	defer led.Close()

	btn, err := gpio.NewRealButton(cfg.Pins.Button)
	if err != nil {
		return fmt.Errorf("init button: %w", err)
	}
	defer btn.Close()

	// Initialize MQTT (optional)
	var publisher mqtt.Publisher
	var mqttStatus mqtt.ConnectionStatus
	if cfg.MQTT.Broker != "" {
		real := mqtt.NewRealPublisher(cfg.MQTT.Broker)
		defer real.Close()
		publisher, mqttStatus = real, real
	}

	schedCfg := sched.DefaultConfig()
	tracker := status.NewTracker(time.Now(), status.Config{
		TickMs:     tick.Milliseconds(),
		IdlePollMs: schedCfg.IdlePoll.Milliseconds(),
		DebounceMs: button.DebounceDelay.Milliseconds(),
		PinLED:     cfg.Pins.LED,
		PinButton:  cfg.Pins.Button,
		Broker:     cfg.MQTT.Broker,
		HTTPAddr:   cfg.HTTP.Addr,
	})
	tracker.SetClock(start.String())

	// Publish startup event with full status snapshot
	if publisher != nil {
		snap := tracker.Snapshot()
		startupEvent := mqtt.SystemEvent{
			Timestamp:  snap.Now,
			Event:      "STARTUP",
			Retained:   true,
			RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
		}
		if err := publisher.PublishSystem(startupEvent); err != nil {
			log.Printf("failed to publish startup event: %v", err)
		}
	}

	// Start HTTP status server
	if cfg.HTTP.Addr != "" {
		srv := web.New(cfg.HTTP.Addr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.HTTP.Addr)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sigReason := make(chan string, 1)
	go func() {
		s := <-sigCh
		log.Printf("received %v, shutting down", s)
		sigReason <- signalName(s)
		cancel()
	}()

	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	go keeper.Run(ctx, ticker.C, func(s clock.State) {
		tracker.SetClock(s.String())
	})

	in := button.New(btn)
	obs := &watchObserver{tracker: tracker, publisher: publisher, mqttStatus: mqttStatus}
	scheduler := sched.New(led, in, keeper, schedCfg, obs)

	log.Printf("one-led-watch started: time=%s led=GPIO%d button=GPIO%d tick=%v",
		start, cfg.Pins.LED, cfg.Pins.Button, tick)
	daemon.SdNotify(false, daemon.SdNotifyReady) // no-op outside systemd

	runErr := scheduler.Run(ctx)

	reason := ""
	select {
	case reason = <-sigReason:
	default:
		if runErr != nil {
			reason = "ERROR"
		}
	}
	if publisher != nil {
		if mqttStatus != nil {
			tracker.SetMQTTConnected(mqttStatus.IsConnected())
		}
		snap := tracker.Snapshot()
		event := mqtt.SystemEvent{
			Timestamp:  snap.Now,
			Event:      "SHUTDOWN",
			Reason:     reason,
			Retained:   true,
			RawPayload: status.FormatStatusEvent(snap, "SHUTDOWN", reason),
		}
		if err := publisher.PublishSystem(event); err != nil {
			log.Printf("failed to publish shutdown event: %v", err)
		} else {
			log.Printf("published shutdown event")
		}
	}

	return runErr
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	}
	return "UNKNOWN"
}

// watchObserver fans scheduler notifications out to the log, the status
// tracker, and MQTT.
type watchObserver struct {
	tracker    *status.Tracker
	publisher  mqtt.Publisher
	mqttStatus mqtt.ConnectionStatus
}

func (o *watchObserver) StateChanged(s sched.State) {
	o.tracker.SetSchedulerState(string(s))
}

func (o *watchObserver) DisplayStarted(at time.Time, snap clock.State, groups []pulse.Group) {
	log.Printf("showing time: %s (%d pulses, ~%v)", snap, pulse.Pulses(groups), pulse.Duration(groups))
	o.tracker.RecordPress(at, snap.String())

	if o.publisher == nil {
		return
	}
	event := mqtt.DisplayEvent{
		Timestamp: at,
		Shown:     snap.String(),
		Hours:     snap.Hour,
		Quarters:  snap.Minute / 15,
		Minutes:   snap.Minute % 15,
	}
	if err := o.publisher.PublishDisplay(event); err != nil {
		log.Printf("publish display event: %v", err)
	}
	if o.mqttStatus != nil {
		o.tracker.SetMQTTConnected(o.mqttStatus.IsConnected())
	}
}

func (o *watchObserver) DisplayFinished(at time.Time) {
	o.tracker.RecordDisplay(at)
}
